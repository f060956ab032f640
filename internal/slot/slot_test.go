package slot

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func backends(t *testing.T) map[string]Slot {
	t.Helper()

	fs, err := NewFileSlot(filepath.Join(t.TempDir(), "slots"))
	if err != nil {
		t.Fatalf("NewFileSlot: %v", err)
	}

	bs, err := NewBoltSlot(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("NewBoltSlot: %v", err)
	}
	t.Cleanup(func() { _ = bs.Close() })

	return map[string]Slot{
		"memory": NewMemSlot(),
		"file":   fs,
		"bolt":   bs,
	}
}

func TestSlot_GetMissing(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			v, found, err := s.Get(ctx, "catalog")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if found || v != nil {
				t.Fatalf("found=%v v=%q, want nothing", found, v)
			}
		})
	}
}

func TestSlot_SetOverwritesInFull(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Set(ctx, "catalog", []byte(`{"a":"a much longer first value"}`)); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := s.Set(ctx, "catalog", []byte(`{"b":1}`)); err != nil {
				t.Fatalf("Set: %v", err)
			}

			v, found, err := s.Get(ctx, "catalog")
			if err != nil || !found {
				t.Fatalf("Get: found=%v err=%v", found, err)
			}
			if !bytes.Equal(v, []byte(`{"b":1}`)) {
				t.Fatalf("value=%q", v)
			}

			if err := s.Ping(ctx); err != nil {
				t.Fatalf("Ping: %v", err)
			}
		})
	}
}

func TestSlot_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_ = s.Set(ctx, "a", []byte("1"))
			_ = s.Set(ctx, "b/../c", []byte("2"))

			v, _, _ := s.Get(ctx, "a")
			if string(v) != "1" {
				t.Fatalf("a=%q", v)
			}
			v, _, _ = s.Get(ctx, "b/../c")
			if string(v) != "2" {
				t.Fatalf("b/../c=%q", v)
			}
		})
	}
}

func TestMemSlot_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	s := NewMemSlot()

	in := []byte("abc")
	_ = s.Set(ctx, "k", in)
	in[0] = 'x'

	out, _, _ := s.Get(ctx, "k")
	if string(out) != "abc" {
		t.Fatalf("stored value aliased input: %q", out)
	}
	out[0] = 'y'

	again, _, _ := s.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("stored value aliased output: %q", again)
	}
}

func TestMemSlot_SetErr(t *testing.T) {
	s := NewMemSlot()
	s.SetErr = errors.New("quota exceeded")

	if err := s.Set(context.Background(), "k", []byte("v")); !errors.Is(err, s.SetErr) {
		t.Fatalf("err=%v", err)
	}
	if _, found, _ := s.Get(context.Background(), "k"); found {
		t.Fatalf("rejected write became visible")
	}
}

func TestBoltSlot_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	s, err := NewBoltSlot(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Set(ctx, "catalog", []byte("doc")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = NewBoltSlot(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	v, found, err := s.Get(ctx, "catalog")
	if err != nil || !found || string(v) != "doc" {
		t.Fatalf("v=%q found=%v err=%v", v, found, err)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{name: "default is memory", opts: Options{}},
		{name: "memory", opts: Options{Backend: "Memory"}},
		{name: "file", opts: Options{Backend: BackendFile, Dir: t.TempDir()}},
		{name: "bolt", opts: Options{Backend: BackendBolt, BoltPath: filepath.Join(t.TempDir(), "x", "c.db")}},
		{name: "unknown", opts: Options{Backend: "floppy"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(ctx, tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer s.Close()
			if err := s.Ping(ctx); err != nil {
				t.Fatalf("Ping: %v", err)
			}
		})
	}
}
