package memory

import (
	"context"
	"testing"
)

func TestMemoryStoreLoadSave(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, ok, err := s.Load(ctx, "expenses"); ok || err != nil {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}

	if err := s.Save(ctx, "expenses", []byte("[]")); err != nil {
		t.Fatalf("save: %v", err)
	}
	v, ok, err := s.Load(ctx, "expenses")
	if err != nil || !ok || string(v) != "[]" {
		t.Fatalf("unexpected load: v=%q ok=%v err=%v", v, ok, err)
	}
	if s.Writes() != 1 {
		t.Fatalf("expected 1 write, got %d", s.Writes())
	}
}

func TestSeedDoesNotCountAsWrite(t *testing.T) {
	s := New()
	s.Seed("recurring", []byte("[]"))
	if s.Writes() != 0 {
		t.Fatalf("expected no writes after seed, got %d", s.Writes())
	}
	if keys := s.Keys(); len(keys) != 1 || keys[0] != "recurring" {
		t.Fatalf("unexpected keys: %v", keys)
	}
}

func TestLoadReturnsCopy(t *testing.T) {
	s := New()
	s.Seed("k", []byte("abc"))
	v, _, _ := s.Load(context.Background(), "k")
	v[0] = 'x'
	again, _, _ := s.Load(context.Background(), "k")
	if string(again) != "abc" {
		t.Fatalf("stored value was mutated through returned slice: %q", again)
	}
}
