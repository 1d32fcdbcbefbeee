package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"resto/internal/auth"
)

// handleLogin exchanges credentials for a session token. With no identity
// service configured the endpoint reports that the gate is disabled.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}

	if s.identity == nil {
		NewResponse().JSON(map[string]any{"auth": "disabled"}).Write(w)
		return
	}

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		BadRequestError("invalid request body").Write(w)
		return
	}

	body.Email = strings.TrimSpace(body.Email)
	if body.Email == "" || body.Password == "" {
		UnprocessableEntityError("email and password are required").Write(w)
		return
	}

	session, err := s.identity.SignIn(r.Context(), body.Email, body.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			UnauthorizedError("invalid credentials").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Sign-in failed",
			"error", err,
			"component", "auth",
			"operation", "sign_in")
		InternalServerError("sign-in failed").Write(w)
		return
	}

	slog.InfoContext(r.Context(), "User signed in",
		"component", "auth",
		"operation", "sign_in")

	NewResponse().JSON(session).Write(w)
}
