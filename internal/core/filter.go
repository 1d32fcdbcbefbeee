package core

import "strings"

// Filter is the predicate set applied to a ledger snapshot. Empty fields
// are inactive; a record matches only when every active predicate matches.
type Filter struct {
	Search   string
	DateFrom string
	DateTo   string
	Vendor   string
	Product  string
}

// Active reports whether any predicate is set.
func (f Filter) Active() bool {
	return f.Search != "" || f.DateFrom != "" || f.DateTo != "" || f.Vendor != "" || f.Product != ""
}

// Match reports whether a single record passes the filter. Free-text search
// covers vendor, product and unit case-insensitively; date bounds are
// inclusive string comparisons over ISO dates; vendor and product are
// independent substring matches layered on top.
func (f Filter) Match(e Expense) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(e.Vendor), q) &&
			!strings.Contains(strings.ToLower(e.Product), q) &&
			!strings.Contains(strings.ToLower(e.Unit), q) {
			return false
		}
	}
	if f.DateFrom != "" && e.Date < f.DateFrom {
		return false
	}
	if f.DateTo != "" && e.Date > f.DateTo {
		return false
	}
	if f.Vendor != "" && !strings.Contains(strings.ToLower(e.Vendor), strings.ToLower(f.Vendor)) {
		return false
	}
	if f.Product != "" && !strings.Contains(strings.ToLower(e.Product), strings.ToLower(f.Product)) {
		return false
	}
	return true
}

// Apply returns the matching subset in ledger order together with the sum
// of total over the subset.
func (f Filter) Apply(expenses []Expense) ([]Expense, float64) {
	matched := make([]Expense, 0, len(expenses))
	var total float64
	for _, e := range expenses {
		if !f.Match(e) {
			continue
		}
		matched = append(matched, e)
		total += e.Total
	}
	return matched, total
}
