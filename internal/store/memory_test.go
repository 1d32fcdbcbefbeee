package store

import (
	"context"
	"testing"
)

func TestMemory_GetSet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, ok, err := m.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("Get missing key: ok=%v err=%v", ok, err)
	}

	if err := m.Set(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := m.Get(ctx, "k")
	if err != nil || !ok || string(got) != "v1" {
		t.Fatalf("Get = %s, %v, %v; want v1, true, nil", got, ok, err)
	}

	// Overwrite replaces the prior value
	if err := m.Set(ctx, "k", []byte("v2")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, _, _ = m.Get(ctx, "k")
	if string(got) != "v2" {
		t.Fatalf("Get after overwrite = %s, want v2", got)
	}
}

func TestMemory_CopiesValues(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	src := []byte("abc")
	if err := m.Set(ctx, "k", src); err != nil {
		t.Fatalf("Set: %v", err)
	}
	src[0] = 'x'

	got, _, _ := m.Get(ctx, "k")
	if string(got) != "abc" {
		t.Fatalf("stored value mutated through caller slice: %s", got)
	}

	got[0] = 'y'
	again, _, _ := m.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("stored value mutated through returned slice: %s", again)
	}
}
