package ws

import "encoding/json"

// MessageType constants for the mock-interview WebSocket protocol.
const (
	// Client -> Server
	TypeStartInterview = "start_interview"
	TypeSubmitSolution = "submit_solution"
	TypeEndInterview   = "end_interview"
	TypePing           = "ping"

	// Server -> Client
	TypeProblem    = "problem"
	TypeEvaluation = "evaluation"
	TypeEnded      = "ended"
	TypeError      = "error"
	TypePong       = "pong"
)

// Message wraps all WebSocket payloads with type and optional request ID.
type Message struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	RequestID string          `json:"request_id,omitempty"`
}

// Client Messages (incoming)

type StartInterviewPayload struct {
	RoundType  string `json:"round_type"`
	Company    string `json:"company,omitempty"`
	Role       string `json:"role,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

type SubmitSolutionPayload struct {
	ProblemID     string `json:"problem_id"`
	Code          string `json:"code,omitempty"`
	DrawingBase64 string `json:"drawing_base64,omitempty"`
	DrawingMIME   string `json:"drawing_mime,omitempty"`
}

type EndInterviewPayload struct {
	Reason string `json:"reason,omitempty"`
}

// Server Messages (outgoing)

type ProblemPayload struct {
	Problem  json.RawMessage `json:"problem"`
	Fallback bool            `json:"fallback"`
}

type EvaluationPayload struct {
	Evaluation json.RawMessage `json:"evaluation"`
	Fallback   bool            `json:"fallback"`
}

type EndedPayload struct {
	ProblemsServed int `json:"problems_served"`
	Submissions    int `json:"submissions"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
