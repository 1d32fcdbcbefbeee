// Package ledger owns the ordered expense list. It is the sole writer of
// the expense snapshot; every mutation rewrites the full list through the
// KV store.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"resto/internal/core"
	"resto/internal/store"
)

// StorageKey is the fixed key the ledger snapshot lives under.
const StorageKey = "restaurant_expenses"

var ErrNotFound = errors.New("expense not found")

type Ledger struct {
	mu    sync.Mutex
	kv    store.KV
	items []core.Expense
}

// New loads the persisted snapshot. An unparsable snapshot is discarded and
// the ledger starts empty; corruption is logged, never surfaced.
func New(ctx context.Context, kv store.KV) (*Ledger, error) {
	l := &Ledger{kv: kv}

	raw, ok, err := kv.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("load ledger snapshot: %w", err)
	}
	if ok && len(raw) > 0 {
		if err := json.Unmarshal(raw, &l.items); err != nil {
			slog.Warn("Discarding unparsable ledger snapshot", "key", StorageKey, "error", err)
			l.items = nil
		}
	}

	return l, nil
}

// Add appends a new record. Validation is the caller's responsibility: the
// ledger computes total = rate x quantity, assigns the identifier and the
// next serial number, and persists.
func (l *Ledger) Add(ctx context.Context, in core.ExpenseInput) (core.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := core.Expense{
		ID:       uuid.NewString(),
		SN:       len(l.items) + 1,
		Date:     in.Date,
		Vendor:   in.Vendor,
		Product:  in.Product,
		Unit:     in.Unit,
		Rate:     in.Rate,
		Quantity: in.Quantity,
		Total:    in.Rate * in.Quantity,
	}
	l.items = append(l.items, e)

	if err := l.persistLocked(ctx); err != nil {
		return core.Expense{}, err
	}
	return e, nil
}

// Delete removes the matching record and reassigns serial numbers 1..N to
// the remaining records in their existing order.
func (l *Ledger) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i, e := range l.items {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	l.items = append(l.items[:idx], l.items[idx+1:]...)
	for i := range l.items {
		l.items[i].SN = i + 1
	}

	return l.persistLocked(ctx)
}

// List returns a copy of the current snapshot in insertion order.
func (l *Ledger) List() []core.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]core.Expense, len(l.items))
	copy(out, l.items)
	return out
}

// Count returns the number of records.
func (l *Ledger) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// ReplaceAll discards the entire prior list and installs the given records
// with fresh identifiers and 1-based serials by row order. Totals are kept
// verbatim: an imported file that carries an inconsistent total wins.
func (l *Ledger) ReplaceAll(ctx context.Context, rows []core.Expense) ([]core.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := make([]core.Expense, len(rows))
	for i, row := range rows {
		row.ID = uuid.NewString()
		row.SN = i + 1
		items[i] = row
	}
	l.items = items

	if err := l.persistLocked(ctx); err != nil {
		return nil, err
	}

	out := make([]core.Expense, len(items))
	copy(out, items)
	return out, nil
}

// ExportRows maps the ledger to flat rows with the fixed column order used
// by the workbook bridge, header row first.
func (l *Ledger) ExportRows() [][]any {
	l.mu.Lock()
	defer l.mu.Unlock()

	rows := make([][]any, 0, len(l.items)+1)
	rows = append(rows, []any{"SN", "Date", "Vendor", "Product", "Unit", "Rate", "Quantity", "Total"})
	for _, e := range l.items {
		rows = append(rows, []any{e.SN, e.Date, e.Vendor, e.Product, e.Unit, e.Rate, e.Quantity, e.Total})
	}
	return rows
}

func (l *Ledger) persistLocked(ctx context.Context) error {
	items := l.items
	if items == nil {
		// An emptied ledger persists as an empty array, not null.
		items = []core.Expense{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal ledger snapshot: %w", err)
	}
	if err := l.kv.Set(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("persist ledger snapshot: %w", err)
	}
	return nil
}
