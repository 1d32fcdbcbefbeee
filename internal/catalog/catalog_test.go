package catalog

import (
	"context"
	"encoding/json"
	"sort"
	"testing"

	"resto/internal/store"
)

func TestRegistry_StartsWithSortedDefaults(t *testing.T) {
	kv := store.NewMemory()
	r, err := NewVendors(context.Background(), kv)
	if err != nil {
		t.Fatalf("NewVendors: %v", err)
	}

	names := r.Names()
	if len(names) != len(DefaultVendors) {
		t.Fatalf("len(Names()) = %d, want %d", len(names), len(DefaultVendors))
	}
	if !sort.StringsAreSorted(names) {
		t.Fatalf("names not sorted: %v", names)
	}
}

func TestRegistry_AddPersistsOnlyDelta(t *testing.T) {
	kv := store.NewMemory()
	ctx := context.Background()
	r, err := NewVendors(ctx, kv)
	if err != nil {
		t.Fatalf("NewVendors: %v", err)
	}

	added, err := r.Add(ctx, "Corner Greengrocer")
	if err != nil || !added {
		t.Fatalf("Add = %v, %v; want true, nil", added, err)
	}

	raw, ok, err := kv.Get(ctx, VendorsKey)
	if err != nil || !ok {
		t.Fatalf("Get delta: ok=%v err=%v", ok, err)
	}
	var delta []string
	if err := json.Unmarshal(raw, &delta); err != nil {
		t.Fatalf("unmarshal delta: %v", err)
	}
	if len(delta) != 1 || delta[0] != "Corner Greengrocer" {
		t.Fatalf("persisted delta = %v, want only the user addition", delta)
	}
}

func TestRegistry_AddRejectsDuplicatesAndEmpty(t *testing.T) {
	kv := store.NewMemory()
	ctx := context.Background()
	r, err := NewProducts(ctx, kv)
	if err != nil {
		t.Fatalf("NewProducts: %v", err)
	}

	before := len(r.Names())

	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"exact default", "Olive Oil"},
		{"case-insensitive default", "olive oil"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			added, err := r.Add(ctx, tt.input)
			if err != nil {
				t.Fatalf("Add(%q) error: %v", tt.input, err)
			}
			if added {
				t.Fatalf("Add(%q) = true, want rejected", tt.input)
			}
		})
	}

	if _, err := r.Add(ctx, "Saffron"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if added, _ := r.Add(ctx, "SAFFRON"); added {
		t.Fatal("case variant of user addition was accepted")
	}
	if got := len(r.Names()); got != before+1 {
		t.Fatalf("len(Names()) = %d, want %d", got, before+1)
	}
}

func TestRegistry_ReloadsDeltaAcrossRestart(t *testing.T) {
	kv := store.NewMemory()
	ctx := context.Background()

	r, err := NewVendors(ctx, kv)
	if err != nil {
		t.Fatalf("NewVendors: %v", err)
	}
	if _, err := r.Add(ctx, "Corner Greengrocer"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	reloaded, err := NewVendors(ctx, kv)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	names := reloaded.Names()
	found := false
	for _, n := range names {
		if n == "Corner Greengrocer" {
			found = true
		}
	}
	if !found {
		t.Fatalf("user addition missing after reload: %v", names)
	}
	if len(names) != len(DefaultVendors)+1 {
		t.Fatalf("len(Names()) = %d, want defaults plus one", len(names))
	}
}

func TestRegistry_CorruptSnapshotFallsBackToDefaults(t *testing.T) {
	kv := store.NewMemory()
	ctx := context.Background()
	if err := kv.Set(ctx, ProductsKey, []byte("oops")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	r, err := NewProducts(ctx, kv)
	if err != nil {
		t.Fatalf("NewProducts with corrupt snapshot: %v", err)
	}
	if len(r.Names()) != len(DefaultProducts) {
		t.Fatalf("len(Names()) = %d, want defaults only", len(r.Names()))
	}
}
