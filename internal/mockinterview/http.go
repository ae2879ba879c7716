package mockinterview

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/devanshsoni09/prep-platform/internal/auth"
	"github.com/devanshsoni09/prep-platform/internal/problem"
	"github.com/devanshsoni09/prep-platform/internal/progress"
	httperrors "github.com/devanshsoni09/prep-platform/pkg/http/errors"
)

// HTTPHandler exposes REST fallbacks for the mock-interview flow.
type HTTPHandler struct {
	svc      InterviewService
	progress *progress.Service
	logger   zerolog.Logger
}

// NewHTTPHandler constructs a mock-interview HTTP handler. progressSvc may
// be nil.
func NewHTTPHandler(svc InterviewService, progressSvc *progress.Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:      svc,
		progress: progressSvc,
		logger:   logger.With().Str("component", "mockinterview_http").Logger(),
	}
}

// HandleProblem generates a mock-interview problem.
// Route: POST /v1/interviews/mock/problem
func (h *HTTPHandler) HandleProblem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req problem.MockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Request body must be valid JSON")
		return
	}
	if req.RoundType == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "round_type is required", "round_type")
		return
	}

	p, fallback := h.svc.GenerateMockProblem(r.Context(), req)
	writeJSON(w, map[string]interface{}{
		"problem":  p,
		"fallback": fallback,
	})
}

// HandleEvaluate evaluates a submission against a problem the client holds.
// Route: POST /v1/interviews/mock/evaluate
func (h *HTTPHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Problem       problem.MockInterviewProblem `json:"problem"`
		Code          string                       `json:"code,omitempty"`
		DrawingBase64 string                       `json:"drawing_base64,omitempty"`
		DrawingMIME   string                       `json:"drawing_mime,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Request body must be valid JSON")
		return
	}
	if err := req.Problem.Validate(); err != nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, err.Error(), "problem")
		return
	}

	sub := problem.Submission{
		ProblemID:   req.Problem.ID,
		Code:        req.Code,
		DrawingMIME: req.DrawingMIME,
	}
	if req.DrawingBase64 != "" {
		drawing, err := base64.StdEncoding.DecodeString(req.DrawingBase64)
		if err != nil {
			httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidRequest, "drawing_base64 is not valid base64", "drawing_base64")
			return
		}
		sub.Drawing = drawing
	}

	userID, _ := auth.UserIDFromContext(r.Context())

	eval, fallback, err := h.svc.EvaluateSubmission(r.Context(), userID, req.Problem, sub)
	if err != nil {
		if errors.Is(err, problem.ErrEmptySubmission) {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeEmptySubmission, "Submit code, a drawing, or both")
			return
		}
		h.logger.Error().Err(err).Str("problem_id", sub.ProblemID).Msg("submission evaluation failed")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeSaveFailed, problem.ClassifyStorageError(err))
		return
	}

	if userID != "" && h.progress != nil {
		displayName := ""
		if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
			displayName = claims.DisplayName
		}
		if err := h.progress.Record(r.Context(), progress.RecordRequest{
			UserID:      userID,
			DisplayName: displayName,
			ProblemType: req.Problem.Type,
			Score:       eval.Score,
		}); err != nil {
			h.logger.Warn().Err(err).Str("user_id", userID).Msg("progress record failed")
		}
	}

	writeJSON(w, map[string]interface{}{
		"evaluation": eval,
		"fallback":   fallback,
	})
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
