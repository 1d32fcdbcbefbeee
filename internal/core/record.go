package core

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the calendar-day format used throughout: zero-padded ISO
// dates compare lexicographically, which the filter relies on.
const DateLayout = "2006-01-02"

type (
	// Expense is a single purchase line item. Total is stored redundantly
	// (rate x quantity at creation time) so exports reproduce exactly what
	// was displayed; it is not re-validated after creation.
	Expense struct {
		ID       string  `json:"id"`
		SN       int     `json:"sn"`
		Date     string  `json:"date"`
		Vendor   string  `json:"vendor"`
		Product  string  `json:"product"`
		Unit     string  `json:"unit"`
		Rate     float64 `json:"rate"`
		Quantity float64 `json:"quantity"`
		Total    float64 `json:"total"`
	}

	// ExpenseInput carries the user-supplied fields of a new expense.
	// Identifier, serial number and total are assigned by the ledger.
	ExpenseInput struct {
		Date     string  `json:"date"`
		Vendor   string  `json:"vendor"`
		Product  string  `json:"product"`
		Unit     string  `json:"unit"`
		Rate     float64 `json:"rate"`
		Quantity float64 `json:"quantity"`
	}
)

var (
	ErrEmptyVendor     = errors.New("empty vendor")
	ErrEmptyProduct    = errors.New("empty product")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidRate     = errors.New("invalid rate")
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// Day formats t as a calendar day.
func Day(t time.Time) string {
	return t.Format(DateLayout)
}

// Validate checks the fields a caller must supply before handing the input
// to the ledger; the ledger itself rejects nothing.
func (in ExpenseInput) Validate() error {
	if strings.TrimSpace(in.Vendor) == "" {
		return ErrEmptyVendor
	}
	if strings.TrimSpace(in.Product) == "" {
		return ErrEmptyProduct
	}
	if _, err := time.Parse(DateLayout, in.Date); err != nil {
		return ErrInvalidDate
	}
	if in.Rate <= 0 {
		return ErrInvalidRate
	}
	if in.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}
