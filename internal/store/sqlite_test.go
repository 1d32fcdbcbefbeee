package store

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLite_GetSetRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "resto.db")
	s, err := NewSQLite(dbPath)
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("Get missing key: ok=%v err=%v", ok, err)
	}

	if err := s.Set(ctx, "k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || string(got) != `{"a":1}` {
		t.Fatalf("Get = %s, %v, %v", got, ok, err)
	}

	// Upsert replaces the value for an existing key
	if err := s.Set(ctx, "k", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("Set upsert: %v", err)
	}
	got, _, _ = s.Get(ctx, "k")
	if string(got) != `{"a":2}` {
		t.Fatalf("Get after upsert = %s", got)
	}
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "resto.db")
	ctx := context.Background()

	s, err := NewSQLite(dbPath)
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	if err := s.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewSQLite(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, ok, err := reopened.Get(ctx, "k")
	if err != nil || !ok || string(got) != "v" {
		t.Fatalf("Get after reopen = %s, %v, %v", got, ok, err)
	}
}
