package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"MiniCatalog/internal/slot"
	"MiniCatalog/pkg/kit"
)

const DefaultSlotKey = "mini-catalog"

const reasonUnreadable = "unreadable"

// Store adapts a durable slot to whole-document reads and writes under one
// fixed key.
type Store struct {
	slot    slot.Slot
	key     string
	log     *zap.Logger
	metrics *kit.Metrics
}

type StoreOption func(*Store)

func WithLogger(l *zap.Logger) StoreOption { return func(s *Store) { s.log = l } }

func WithMetrics(m *kit.Metrics) StoreOption { return func(s *Store) { s.metrics = m } }

func NewStore(sl slot.Slot, key string, opts ...StoreOption) *Store {
	if key == "" {
		key = DefaultSlotKey
	}
	s := &Store{slot: sl, key: key, log: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load never fails. Anything other than a well-formed document is replaced by
// the seed, and the slot itself is left untouched.
func (s *Store) Load(ctx context.Context) Document {
	raw, found, err := s.slot.Get(ctx, s.key)
	if err != nil {
		s.fallback(reasonUnreadable, err)
		return Seed()
	}
	if !found {
		return Seed()
	}

	doc, err := DecodeDocument(raw)
	if err != nil {
		reason := ReasonMalformed
		var de *DecodeError
		if errors.As(err, &de) {
			reason = de.Reason
		}
		s.fallback(reason, err)
		return Seed()
	}
	return doc
}

func (s *Store) Save(ctx context.Context, d Document) error {
	raw, err := EncodeDocument(d)
	if err != nil {
		s.metrics.ObserveSave(err)
		return fmt.Errorf("encode document: %w", err)
	}

	err = s.slot.Set(ctx, s.key, raw)
	s.metrics.ObserveSave(err)
	if err != nil {
		s.log.Error("document write refused", zap.String("key", s.key), zap.Int("bytes", len(raw)), zap.Error(err))
		return fmt.Errorf("write slot %q: %w", s.key, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error { return s.slot.Ping(ctx) }

func (s *Store) fallback(reason string, err error) {
	s.metrics.ObserveFallback(reason)
	s.log.Warn("stored document unusable, using seed",
		zap.String("key", s.key),
		zap.String("reason", reason),
		zap.Error(err),
	)
}
