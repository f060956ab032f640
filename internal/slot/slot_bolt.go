package slot

import (
	"context"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var boltBucket = []byte("slots")

// BoltSlot keeps every key in a single bbolt bucket.
type BoltSlot struct {
	db *bolt.DB
}

func NewBoltSlot(path string) (*BoltSlot, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("bolt slot: open %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bolt slot: create bucket: %w", err)
	}

	return &BoltSlot{db: db}, nil
}

func (s *BoltSlot) Get(_ context.Context, key string) ([]byte, bool, error) {
	var (
		out   []byte
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(boltBucket).Get([]byte(key))
		if v == nil {
			return nil
		}
		// v is only valid inside the transaction.
		out, found = clone(v), true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, found, nil
}

func (s *BoltSlot) Set(_ context.Context, key string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Put([]byte(key), value)
	})
}

func (s *BoltSlot) Ping(context.Context) error {
	return s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(boltBucket) == nil {
			return fmt.Errorf("bolt slot: bucket %q missing", boltBucket)
		}
		return nil
	})
}

func (s *BoltSlot) Close() error { return s.db.Close() }
