// Package catalog keeps the autocomplete name lists for vendors and
// products. The displayed list is always the union of built-in defaults and
// user additions; only the additions are persisted.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"resto/internal/store"
)

const (
	VendorsKey  = "restaurant_vendors"
	ProductsKey = "restaurant_products"
)

type Registry struct {
	mu       sync.Mutex
	kv       store.KV
	key      string
	defaults []string
	names    []string
}

// NewVendors loads the vendor registry.
func NewVendors(ctx context.Context, kv store.KV) (*Registry, error) {
	return newRegistry(ctx, kv, VendorsKey, DefaultVendors)
}

// NewProducts loads the product registry.
func NewProducts(ctx context.Context, kv store.KV) (*Registry, error) {
	return newRegistry(ctx, kv, ProductsKey, DefaultProducts)
}

func newRegistry(ctx context.Context, kv store.KV, key string, defaults []string) (*Registry, error) {
	r := &Registry{kv: kv, key: key, defaults: defaults}

	var stored []string
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", key, err)
	}
	if ok && len(raw) > 0 {
		if err := json.Unmarshal(raw, &stored); err != nil {
			slog.Warn("Discarding unparsable catalog snapshot", "key", key, "error", err)
			stored = nil
		}
	}

	r.names = merge(defaults, stored)
	return r, nil
}

// merge unions defaults with stored names, dropping case-insensitive
// duplicates. The first-seen spelling wins, so a default's casing is kept
// over a later variant. The result is sorted ascending.
func merge(defaults, stored []string) []string {
	seen := make(map[string]struct{}, len(defaults)+len(stored))
	out := make([]string, 0, len(defaults)+len(stored))
	for _, name := range append(append([]string{}, defaults...), stored...) {
		lower := strings.ToLower(name)
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Names returns the current sorted list.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Add inserts a new name. Whitespace is trimmed; empty input and
// case-insensitive duplicates are rejected without error, reported through
// the bool. Only names outside the defaults are written back.
func (r *Registry) Add(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	lower := strings.ToLower(name)
	for _, existing := range r.names {
		if strings.ToLower(existing) == lower {
			return false, nil
		}
	}

	r.names = append(r.names, name)
	sort.Strings(r.names)

	if err := r.persistLocked(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// persistLocked writes the user-added delta: every name whose lowercase form
// does not appear among the defaults.
func (r *Registry) persistLocked(ctx context.Context) error {
	defaultSet := make(map[string]struct{}, len(r.defaults))
	for _, d := range r.defaults {
		defaultSet[strings.ToLower(d)] = struct{}{}
	}

	delta := make([]string, 0)
	for _, name := range r.names {
		if _, isDefault := defaultSet[strings.ToLower(name)]; !isDefault {
			delta = append(delta, name)
		}
	}

	data, err := json.Marshal(delta)
	if err != nil {
		return fmt.Errorf("marshal catalog %s: %w", r.key, err)
	}
	if err := r.kv.Set(ctx, r.key, data); err != nil {
		return fmt.Errorf("persist catalog %s: %w", r.key, err)
	}
	return nil
}
