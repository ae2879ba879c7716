package problem

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/devanshsoni09/prep-platform/internal/auth/jwt"
	httperrors "github.com/devanshsoni09/prep-platform/pkg/http/errors"
)

// HTTPHandler exposes the problem-generation REST endpoint.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs a problem HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "problem_http").Logger(),
	}
}

// HandleGenerate produces a practice problem.
// Route: POST /v1/problems/generate
func (h *HTTPHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Request body must be valid JSON")
		return
	}
	if req.InterviewType == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "interview_type is required", "interview_type")
		return
	}

	userID, _ := jwt.UserIDFromContext(r.Context())

	env, fallback, err := h.svc.Generate(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrMalformedResponse) {
			httperrors.RespondError(w, http.StatusBadGateway, httperrors.ErrCodeMalformedResponse,
				"The generated content could not be read. Please try again.")
			return
		}
		h.logger.Error().Err(err).Str("type", req.InterviewType).Msg("problem generation failed")
		httperrors.RespondError(w, http.StatusBadGateway, httperrors.ErrCodeGenerationFailed, ClassifyUpstreamError(err))
		return
	}

	writeJSON(w, map[string]interface{}{
		"type":     env.Type(),
		"problem":  env,
		"fallback": fallback,
	})
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
