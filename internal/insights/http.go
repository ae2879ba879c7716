package insights

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	httperrors "github.com/devanshsoni09/prep-platform/pkg/http/errors"
)

// HTTPHandler exposes the insights REST endpoints.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs an insights HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "insights_http").Logger(),
	}
}

// HandleGet serves insights for a company and role level.
// Route: GET /v1/insights?company=Google&role=senior
func (h *HTTPHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	company := r.URL.Query().Get("company")
	role := r.URL.Query().Get("role")
	if company == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "company is required", "company")
		return
	}
	if role == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "role is required", "role")
		return
	}

	entry, err := h.svc.Get(r.Context(), company, role)
	if err != nil {
		h.logger.Error().Err(err).Str("company", company).Msg("insights fetch failed")
		httperrors.RespondError(w, http.StatusBadGateway, httperrors.ErrCodeInsightsFailed,
			"Interview insights are unavailable right now. Please try again.")
		return
	}
	writeJSON(w, entry)
}

// HandleRefresh regenerates insights, bypassing the cache.
// Route: POST /v1/insights/refresh
func (h *HTTPHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Company string `json:"company"`
		Role    string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Request body must be valid JSON")
		return
	}
	if req.Company == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "company is required", "company")
		return
	}
	if req.Role == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "role is required", "role")
		return
	}

	entry, err := h.svc.Refresh(r.Context(), req.Company, req.Role)
	if err != nil {
		h.logger.Error().Err(err).Str("company", req.Company).Msg("insights refresh failed")
		httperrors.RespondError(w, http.StatusBadGateway, httperrors.ErrCodeInsightsFailed,
			"Interview insights are unavailable right now. Please try again.")
		return
	}
	writeJSON(w, entry)
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
