package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"resto/internal/core"
	"resto/internal/ledger"
)

// handleExpenses dispatches /api/expenses to the list and create handlers.
func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListExpenses(w, r)
	case http.MethodPost:
		s.handleCreateExpense(w, r)
	default:
		MethodNotAllowedError("GET, POST").Write(w)
	}
}

// handleExpensesSubtree dispatches /api/expenses/{export,import,<id>}.
func (s *Server) handleExpensesSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/expenses/")
	switch rest {
	case "":
		s.handleExpenses(w, r)
	case "export":
		s.handleExport(w, r)
	case "import":
		s.handleImport(w, r)
	default:
		s.handleDeleteExpense(w, r, rest)
	}
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	all := s.ledger.List()
	filter := parseFilter(r)
	matched, filteredTotal := filter.Apply(all)

	NewResponse().JSON(map[string]any{
		"expenses":       matched,
		"count":          len(matched),
		"total_count":    len(all),
		"filtered_total": filteredTotal,
	}).Write(w)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var in core.ExpenseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		slog.ErrorContext(r.Context(), "Parse expense body error", "error", err, "method", r.Method, "url", r.URL.Path)
		BadRequestError("invalid request body").Write(w)
		return
	}

	in.Vendor = sanitizeInput(in.Vendor)
	in.Product = sanitizeInput(in.Product)
	in.Unit = sanitizeInput(in.Unit)
	if strings.TrimSpace(in.Date) == "" {
		in.Date = core.Day(time.Now())
	}

	if err := in.Validate(); err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}

	created, err := s.ledger.Add(r.Context(), in)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to save expense",
			"error", err,
			"vendor", in.Vendor,
			"product", in.Product,
			"rate", in.Rate,
			"quantity", in.Quantity,
			"component", "ledger",
			"operation", "create")
		InternalServerError("error saving expense").Write(w)
		return
	}

	atomic.AddInt64(&s.appMetrics.totalExpenses, 1)
	s.dashCache.Clear()

	slog.InfoContext(r.Context(), "Expense created successfully",
		"expense_id", created.ID,
		"vendor", created.Vendor,
		"product", created.Product,
		"total", created.Total,
		"component", "expense_handler",
		"operation", "create")

	NewResponse().Status(http.StatusCreated).JSON(created).Write(w)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodDelete {
		MethodNotAllowedError("DELETE").Write(w)
		return
	}

	if err := s.ledger.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			NotFoundError("expense not found").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Failed to delete expense",
			"error", err,
			"expense_id", id,
			"component", "ledger",
			"operation", "delete")
		InternalServerError("error deleting expense").Write(w)
		return
	}

	s.dashCache.Clear()

	slog.InfoContext(r.Context(), "Expense deleted",
		"expense_id", id,
		"component", "expense_handler",
		"operation", "delete")

	NewResponse().Status(http.StatusNoContent).Write(w)
}
