package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

// listResponse is the shared paginated envelope.
type listResponse struct {
	Items any   `json:"items"`
	Total int32 `json:"total"`
}

// newListResponse wraps a page of results. An empty page serializes as an
// empty array, never as null.
func newListResponse[T any](items []T, total int32) listResponse {
	return listResponse{Items: orEmpty(items), Total: total}
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("response encoding failed", "error", err)
		}
	}
}

// respondError maps the domain error taxonomy onto HTTP statuses. Upstream
// causes are logged in full but never shown to the caller.
func respondError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	var ue *domain.UpstreamError
	switch {
	case errors.As(err, &ve):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: ve.Message})
	case errors.Is(err, domain.ErrUnauthorized):
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "you are not allowed to do that"})
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrInvalidTransition):
		respondJSON(w, http.StatusConflict, errorResponse{Error: domain.ErrInvalidTransition.Error()})
	case errors.As(err, &ue):
		logger.Error("upstream failure", "op", ue.Op, "error", ue.Err)
		respondJSON(w, http.StatusBadGateway, errorResponse{Error: ue.Display()})
	default:
		logger.Error("unhandled error", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.Validationf("invalid request body")
	}
	return nil
}

// decodeJSONString parses the JSON payload field of a multipart form.
func decodeJSONString(s string, dst any) error {
	if err := json.Unmarshal([]byte(s), dst); err != nil {
		return domain.Validationf("invalid payload field")
	}
	return nil
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// queryInt32 parses an int32 query parameter, falling back when absent or
// malformed.
func queryInt32(r *http.Request, name string, fallback int32) int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return fallback
	}
	return int32(v)
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
