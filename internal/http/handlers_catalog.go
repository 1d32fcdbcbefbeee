package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"resto/internal/catalog"
)

func (s *Server) handleVendors(w http.ResponseWriter, r *http.Request) {
	s.handleCatalog(w, r, s.vendors, "vendor")
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	s.handleCatalog(w, r, s.products, "product")
}

// handleCatalog serves a name registry: GET lists, POST adds. Duplicate and
// empty additions are not errors; the response just reports added=false.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request, reg *catalog.Registry, kind string) {
	switch r.Method {
	case http.MethodGet:
		NewResponse().JSON(map[string]any{"names": reg.Names()}).Write(w)

	case http.MethodPost:
		var body struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			BadRequestError("invalid request body").Write(w)
			return
		}

		added, err := reg.Add(r.Context(), sanitizeInput(body.Name))
		if err != nil {
			slog.ErrorContext(r.Context(), "Failed to save catalog entry",
				"error", err,
				"component", "catalog",
				"kind", kind)
			InternalServerError("error saving " + kind).Write(w)
			return
		}

		status := http.StatusOK
		if added {
			status = http.StatusCreated
			slog.InfoContext(r.Context(), "Catalog entry added",
				"component", "catalog",
				"kind", kind)
		}
		NewResponse().Status(status).JSON(map[string]any{
			"added": added,
			"names": reg.Names(),
		}).Write(w)

	default:
		MethodNotAllowedError("GET, POST").Write(w)
	}
}
