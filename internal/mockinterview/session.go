// Package mockinterview runs timed interview sessions over WebSocket, with
// REST fallbacks for clients that cannot hold a socket open.
package mockinterview

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/devanshsoni09/prep-platform/internal/auth"
	"github.com/devanshsoni09/prep-platform/internal/problem"
	"github.com/devanshsoni09/prep-platform/internal/progress"
	"github.com/devanshsoni09/prep-platform/internal/server"
	httperrors "github.com/devanshsoni09/prep-platform/pkg/http/errors"
	ws "github.com/devanshsoni09/prep-platform/pkg/http/ws"
)

// InterviewService produces problems and evaluations for a session.
type InterviewService interface {
	GenerateMockProblem(ctx context.Context, req problem.MockRequest) (problem.MockInterviewProblem, bool)
	EvaluateSubmission(ctx context.Context, userID string, p problem.MockInterviewProblem, sub problem.Submission) (problem.Evaluation, bool, error)
}

// Handler manages mock-interview WebSocket connections.
type Handler struct {
	svc      InterviewService
	authSvc  *auth.Service
	progress *progress.Service
	logger   zerolog.Logger
}

// NewHandler creates a mock-interview handler. progress may be nil.
func NewHandler(svc InterviewService, authSvc *auth.Service, progressSvc *progress.Service, logger zerolog.Logger) *Handler {
	return &Handler{
		svc:      svc,
		authSvc:  authSvc,
		progress: progressSvc,
		logger:   logger.With().Str("component", "mockinterview").Logger(),
	}
}

// HandleWebSocket upgrades the connection and runs the session loop.
// Route: GET /ws/interviews?token=<access token>
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeInvalidToken, "Missing token")
		return
	}

	claims, err := h.authSvc.ValidateToken(token)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket token validation failed")
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeInvalidToken, "Invalid token")
		return
	}

	conn, err := server.WSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	sess := &session{
		handler:     h,
		conn:        conn,
		userID:      claims.UserID.String(),
		displayName: claims.DisplayName,
		problems:    make(map[string]problem.MockInterviewProblem),
		logger:      h.logger.With().Str("user_id", claims.UserID.String()).Logger(),
	}
	sess.run(r.Context())
}

// session holds the state of one live interview: the problems served so far
// keyed by ID, and submission counters for the closing summary.
type session struct {
	handler     *Handler
	conn        *websocket.Conn
	userID      string
	displayName string
	logger      zerolog.Logger

	writeMu     sync.Mutex
	problems    map[string]problem.MockInterviewProblem
	served      int
	submissions int
}

func (s *session) run(ctx context.Context) {
	defer s.conn.Close()

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn().Err(err).Msg("websocket read failed")
			}
			return
		}

		var msg ws.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			s.sendError("", httperrors.ErrCodeInvalidPayload, "Message must be valid JSON")
			continue
		}

		switch msg.Type {
		case ws.TypeStartInterview:
			s.handleStart(ctx, msg)
		case ws.TypeSubmitSolution:
			s.handleSubmit(ctx, msg)
		case ws.TypeEndInterview:
			s.handleEnd(msg)
			return
		case ws.TypePing:
			s.send(ws.Message{Type: ws.TypePong, RequestID: msg.RequestID})
		default:
			s.sendError(msg.RequestID, httperrors.ErrCodeUnknownMessageType, fmt.Sprintf("Unknown message type: %s", msg.Type))
		}
	}
}

func (s *session) handleStart(ctx context.Context, msg ws.Message) {
	var req ws.StartInterviewPayload
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		s.sendError(msg.RequestID, httperrors.ErrCodeInvalidPayload, "Invalid start_interview payload")
		return
	}
	if req.RoundType == "" {
		s.sendError(msg.RequestID, httperrors.ErrCodeInvalidPayload, "round_type is required")
		return
	}

	p, fallback := s.handler.svc.GenerateMockProblem(ctx, problem.MockRequest{
		RoundType:  req.RoundType,
		Company:    req.Company,
		Role:       req.Role,
		Difficulty: req.Difficulty,
	})
	s.problems[p.ID] = p
	s.served++

	payload, err := json.Marshal(p)
	if err != nil {
		s.sendError(msg.RequestID, httperrors.ErrCodeInternalError, "Failed to encode problem")
		return
	}
	s.sendPayload(ws.TypeProblem, msg.RequestID, ws.ProblemPayload{Problem: payload, Fallback: fallback})
}

func (s *session) handleSubmit(ctx context.Context, msg ws.Message) {
	var req ws.SubmitSolutionPayload
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		s.sendError(msg.RequestID, httperrors.ErrCodeInvalidPayload, "Invalid submit_solution payload")
		return
	}
	p, ok := s.problems[req.ProblemID]
	if !ok {
		s.sendError(msg.RequestID, httperrors.ErrCodeNotFound, "Unknown problem_id for this session")
		return
	}

	sub := problem.Submission{
		ProblemID:   req.ProblemID,
		Code:        req.Code,
		DrawingMIME: req.DrawingMIME,
	}
	if req.DrawingBase64 != "" {
		drawing, err := base64.StdEncoding.DecodeString(req.DrawingBase64)
		if err != nil {
			s.sendError(msg.RequestID, httperrors.ErrCodeInvalidPayload, "drawing_base64 is not valid base64")
			return
		}
		sub.Drawing = drawing
	}

	eval, fallback, err := s.handler.svc.EvaluateSubmission(ctx, s.userID, p, sub)
	if err != nil {
		if errors.Is(err, problem.ErrEmptySubmission) {
			s.sendError(msg.RequestID, httperrors.ErrCodeEmptySubmission, "Submit code, a drawing, or both")
			return
		}
		s.logger.Error().Err(err).Str("problem_id", req.ProblemID).Msg("submission evaluation failed")
		s.sendError(msg.RequestID, httperrors.ErrCodeSaveFailed, problem.ClassifyStorageError(err))
		return
	}
	s.submissions++
	s.handler.recordProgress(ctx, s.userID, s.displayName, p.Type, eval.Score)

	payload, err := json.Marshal(eval)
	if err != nil {
		s.sendError(msg.RequestID, httperrors.ErrCodeInternalError, "Failed to encode evaluation")
		return
	}
	s.sendPayload(ws.TypeEvaluation, msg.RequestID, ws.EvaluationPayload{Evaluation: payload, Fallback: fallback})
}

func (s *session) handleEnd(msg ws.Message) {
	s.sendPayload(ws.TypeEnded, msg.RequestID, ws.EndedPayload{
		ProblemsServed: s.served,
		Submissions:    s.submissions,
	})
}

func (s *session) sendPayload(msgType, requestID string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error().Err(err).Str("type", msgType).Msg("payload encode failed")
		return
	}
	s.send(ws.Message{Type: msgType, Payload: data, RequestID: requestID})
}

func (s *session) sendError(requestID, code, message string) {
	s.sendPayload(ws.TypeError, requestID, ws.ErrorPayload{Code: code, Message: message})
}

func (s *session) send(msg ws.Message) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.WriteJSON(msg); err != nil {
		s.logger.Warn().Err(err).Msg("websocket write failed")
	}
}

func (h *Handler) recordProgress(ctx context.Context, userID, displayName, problemType string, score int) {
	if h.progress == nil {
		return
	}
	err := h.progress.Record(ctx, progress.RecordRequest{
		UserID:      userID,
		DisplayName: displayName,
		ProblemType: problemType,
		Score:       score,
	})
	if err != nil {
		h.logger.Warn().Err(err).Str("user_id", userID).Msg("progress record failed")
	}
}
