package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/BetulAktoprak/task-management-system/internal/api/shared"
	"github.com/BetulAktoprak/task-management-system/internal/domain"
	"github.com/BetulAktoprak/task-management-system/internal/platform/logger"
	"github.com/BetulAktoprak/task-management-system/internal/redact"
	"github.com/BetulAktoprak/task-management-system/internal/service/auth"
)

// getPathID parses a positive integer path parameter.
func getPathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", domain.ErrInvalidID, name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s has invalid format", domain.ErrInvalidID, name)
	}
	return id, nil
}

// handlePathID extracts a path ID or writes a 400 and returns false.
func handlePathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := getPathID(r, name)
	if err != nil {
		logger.FromContext(r.Context()).Debug("invalid path parameter",
			slog.String("param_name", name),
			slog.String("value", chi.URLParam(r, name)))
		HandleAPIError(w, r, err, "")
		return 0, false
	}
	return id, true
}

// handleIdentity returns the authenticated caller or writes a 401.
func handleIdentity(w http.ResponseWriter, r *http.Request) (*auth.Identity, bool) {
	identity, ok := shared.IdentityFrom(r.Context())
	if !ok {
		logger.FromContext(r.Context()).Warn("identity missing from request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return nil, false
	}
	return identity, true
}

// decodeAndValidate reads the JSON body into v and validates it, writing a
// 400 on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		logger.FromContext(r.Context()).Debug("invalid request body", "error", redact.Error(err))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}
