package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"resto/internal/sheets"
)

// handleExport streams the whole ledger as an xlsx attachment.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError("GET").Write(w)
		return
	}

	f, err := sheets.WriteWorkbook(s.ledger.List())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to build workbook",
			"error", err,
			"component", "workbook",
			"operation", "export")
		InternalServerError("error building workbook").Write(w)
		return
	}
	defer f.Close()

	filename := sheets.ExportFilename(time.Now())
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))

	if err := f.Write(w); err != nil {
		slog.ErrorContext(r.Context(), "Failed to stream workbook",
			"error", err,
			"component", "workbook",
			"operation", "export")
		return
	}

	slog.InfoContext(r.Context(), "Ledger exported",
		"count", s.ledger.Count(),
		"filename", filename,
		"component", "workbook",
		"operation", "export")
}

// handleImport replaces the whole ledger with the uploaded workbook. A file
// that cannot be parsed leaves the ledger untouched.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		BadRequestError("invalid multipart request").Write(w)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		BadRequestError("missing file field").Write(w)
		return
	}
	defer file.Close()

	rows, err := sheets.ReadWorkbook(file)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to parse uploaded workbook",
			"error", err,
			"component", "workbook",
			"operation", "import")
		BadRequestError("failed to import file").Write(w)
		return
	}

	imported, err := s.ledger.ReplaceAll(r.Context(), rows)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to persist imported ledger",
			"error", err,
			"component", "ledger",
			"operation", "import")
		InternalServerError("error saving imported expenses").Write(w)
		return
	}

	atomic.AddInt64(&s.appMetrics.totalImports, 1)
	s.dashCache.Clear()

	slog.InfoContext(r.Context(), "Ledger imported",
		"count", len(imported),
		"component", "workbook",
		"operation", "import")

	NewResponse().JSON(map[string]any{
		"imported": len(imported),
		"expenses": imported,
	}).Write(w)
}
