package problem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/devanshsoni09/prep-platform/internal/metrics"
)

// TextGenerator produces model completions. A nil generator means the
// service runs offline and serves deterministic sample content.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateWithImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

// GeneratedStore records generated problems for auditing. Writes are
// best-effort; the service logs and swallows failures.
type GeneratedStore interface {
	SaveGenerated(ctx context.Context, userID string, req GenerateRequest, env Envelope, fallback bool) error
}

// SubmissionStore records submissions with their evaluations. These writes
// are required and their failures are surfaced to the caller.
type SubmissionStore interface {
	SaveSubmission(ctx context.Context, userID string, sub Submission, eval Evaluation) error
}

// Service orchestrates problem generation and submission evaluation.
type Service struct {
	gen         TextGenerator
	problems    GeneratedStore
	submissions SubmissionStore
	logger      zerolog.Logger
}

// NewService wires the pipeline. gen may be nil for offline mode; the
// stores may be nil when persistence is not configured.
func NewService(gen TextGenerator, problems GeneratedStore, submissions SubmissionStore, logger zerolog.Logger) *Service {
	return &Service{
		gen:         gen,
		problems:    problems,
		submissions: submissions,
		logger:      logger.With().Str("component", "problem_service").Logger(),
	}
}

// Offline reports whether the service has no generator configured.
func (s *Service) Offline() bool {
	return s.gen == nil
}

// Generate produces a validated practice problem. Output that parses but
// violates the schema is replaced with the fallback for the requested type;
// output with no decodable JSON is a hard error. The returned bool reports
// whether fallback content was substituted.
func (s *Service) Generate(ctx context.Context, userID string, req GenerateRequest) (Envelope, bool, error) {
	if req.InterviewType == "" {
		return Envelope{}, false, fmt.Errorf("interview_type is required")
	}
	problemType := NormalizeRoundType(req.InterviewType)
	metrics.GenerationsTotal.WithLabelValues(problemType).Inc()

	if s.gen == nil {
		env := FallbackEnvelope(problemType, req.Difficulty)
		metrics.GenerationFallbacksTotal.WithLabelValues(problemType, "offline").Inc()
		s.persistGenerated(ctx, userID, req, env, true)
		return env, true, nil
	}

	raw, err := s.gen.GenerateText(ctx, BuildGenerationPrompt(req))
	if err != nil {
		s.logger.Error().Err(err).Str("type", problemType).Msg("generation call failed")
		return Envelope{}, false, fmt.Errorf("generate problem: %w", err)
	}

	env, substituted := s.decodeGenerated(raw, problemType, req.Difficulty)
	if env == (Envelope{}) && !substituted {
		return Envelope{}, false, fmt.Errorf("generate problem: %w", ErrMalformedResponse)
	}
	s.persistGenerated(ctx, userID, req, env, substituted)
	return env, substituted, nil
}

// decodeGenerated extracts and validates model output. A schema violation
// or failed validation yields the fallback; a malformed reply yields the
// zero envelope with substituted=false so the caller can report the error.
func (s *Service) decodeGenerated(raw, problemType, difficulty string) (Envelope, bool) {
	fallback := func(reason string, cause error) (Envelope, bool) {
		s.logger.Warn().Err(cause).Str("type", problemType).Str("reason", reason).Msg("substituting fallback problem")
		metrics.GenerationFallbacksTotal.WithLabelValues(problemType, reason).Inc()
		return FallbackEnvelope(problemType, difficulty), true
	}

	data, err := ExtractJSONObject(raw)
	if err != nil {
		s.logger.Error().Err(err).Str("type", problemType).Msg("model reply had no JSON object")
		return Envelope{}, false
	}
	env, err := DecodeEnvelope(data)
	if err != nil {
		if isMalformed(err) {
			s.logger.Error().Err(err).Str("type", problemType).Msg("model reply was not valid JSON")
			return Envelope{}, false
		}
		return fallback("schema_violation", err)
	}
	if env.Type() == "" {
		return fallback("schema_violation", fmt.Errorf("empty envelope"))
	}
	if err := env.Validate(); err != nil {
		return fallback("schema_violation", err)
	}
	return env, false
}

// GenerateMockProblem produces a problem for a live mock-interview round.
// Unlike Generate, a session must always receive a problem, so upstream
// and decoding failures degrade to the fallback instead of erroring.
func (s *Service) GenerateMockProblem(ctx context.Context, req MockRequest) (MockInterviewProblem, bool) {
	problemType := NormalizeRoundType(req.RoundType)
	metrics.GenerationsTotal.WithLabelValues(problemType).Inc()

	if s.gen == nil {
		metrics.GenerationFallbacksTotal.WithLabelValues(problemType, "offline").Inc()
		return FallbackMockProblem(problemType, req.Difficulty), true
	}

	fallback := func(reason string, cause error) (MockInterviewProblem, bool) {
		s.logger.Warn().Err(cause).Str("type", problemType).Str("reason", reason).Msg("substituting fallback mock problem")
		metrics.GenerationFallbacksTotal.WithLabelValues(problemType, reason).Inc()
		return FallbackMockProblem(problemType, req.Difficulty), true
	}

	raw, err := s.gen.GenerateText(ctx, BuildMockProblemPrompt(req))
	if err != nil {
		return fallback("upstream_error", err)
	}
	data, err := ExtractJSONObject(raw)
	if err != nil {
		return fallback("malformed", err)
	}
	env, err := DecodeEnvelope(data)
	if err != nil {
		reason := "schema_violation"
		if isMalformed(err) {
			reason = "malformed"
		}
		return fallback(reason, err)
	}
	if err := env.Validate(); err != nil {
		return fallback("schema_violation", err)
	}
	p, ok := envelopeToMock(env)
	if !ok {
		return fallback("schema_violation", fmt.Errorf("empty envelope"))
	}
	return p, false
}

// EvaluateSubmission scores a submission against its problem. A reply
// without a numeric score is replaced wholesale by the fallback
// evaluation; scores outside 0..100 are clamped. The returned bool
// reports whether the fallback evaluation was substituted.
func (s *Service) EvaluateSubmission(ctx context.Context, userID string, p MockInterviewProblem, sub Submission) (Evaluation, bool, error) {
	if !sub.HasContent() {
		return Evaluation{}, false, ErrEmptySubmission
	}
	prompt, err := BuildEvaluationPrompt(p, sub)
	if err != nil {
		return Evaluation{}, false, err
	}

	eval, substituted := s.runEvaluation(ctx, prompt, p, sub)
	if substituted {
		metrics.EvaluationsTotal.WithLabelValues("fallback").Inc()
	} else {
		metrics.EvaluationsTotal.WithLabelValues("ok").Inc()
	}

	if s.submissions != nil {
		if err := s.submissions.SaveSubmission(ctx, userID, sub, eval); err != nil {
			s.logger.Error().Err(err).Str("problem_id", sub.ProblemID).Msg("submission save failed")
			return eval, substituted, fmt.Errorf("save submission: %w", err)
		}
	}
	return eval, substituted, nil
}

func (s *Service) runEvaluation(ctx context.Context, prompt string, p MockInterviewProblem, sub Submission) (Evaluation, bool) {
	fallback := func(cause error) (Evaluation, bool) {
		if cause != nil {
			s.logger.Warn().Err(cause).Str("problem_id", sub.ProblemID).Msg("substituting fallback evaluation")
		}
		return FallbackEvaluation(sub.ProblemID, p.Type, sub.HasContent()), true
	}

	if s.gen == nil {
		return fallback(nil)
	}

	var raw string
	var err error
	if len(sub.Drawing) > 0 {
		raw, err = s.gen.GenerateWithImage(ctx, prompt, sub.Drawing, sub.DrawingMIME)
	} else {
		raw, err = s.gen.GenerateText(ctx, prompt)
	}
	if err != nil {
		return fallback(err)
	}

	data, err := ExtractJSONObject(raw)
	if err != nil {
		return fallback(err)
	}
	var probe struct {
		Score               *float64 `json:"score"`
		Feedback            string   `json:"feedback"`
		Strengths           []string `json:"strengths"`
		AreasForImprovement []string `json:"areasForImprovement"`
		Suggestions         []string `json:"suggestions"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return fallback(err)
	}
	if probe.Score == nil {
		return fallback(fmt.Errorf("score missing or non-numeric"))
	}

	score := int(*probe.Score)
	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}
	return Evaluation{
		ProblemID:           sub.ProblemID,
		Score:               score,
		Feedback:            probe.Feedback,
		Strengths:           emptyIfNil(probe.Strengths),
		AreasForImprovement: emptyIfNil(probe.AreasForImprovement),
		Suggestions:         emptyIfNil(probe.Suggestions),
	}, false
}

func (s *Service) persistGenerated(ctx context.Context, userID string, req GenerateRequest, env Envelope, fallback bool) {
	if s.problems == nil {
		return
	}
	if err := s.problems.SaveGenerated(ctx, userID, req, env, fallback); err != nil {
		s.logger.Warn().Err(err).Msg("generated problem audit write failed")
	}
}

func isMalformed(err error) bool {
	return errors.Is(err, ErrMalformedResponse)
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func envelopeToMock(env Envelope) (MockInterviewProblem, bool) {
	p := MockInterviewProblem{ID: uuid.NewString(), Type: env.Type()}
	switch {
	case env.DSA != nil:
		v := env.DSA
		p.Title, p.Description, p.Difficulty, p.EstimatedTime = v.Title, v.Description, v.Difficulty, v.EstimatedTime
		p.ProblemStatement, p.InputFormat, p.OutputFormat = v.ProblemStatement, v.InputFormat, v.OutputFormat
		p.Constraints, p.Examples, p.Tags = v.Constraints, v.Examples, v.Tags
	case env.MachineCoding != nil:
		v := env.MachineCoding
		p.Title, p.Description, p.Difficulty, p.EstimatedTime = v.Title, v.Description, v.Difficulty, v.EstimatedTime
		p.Requirements, p.Constraints = v.Requirements, v.Constraints
		p.AcceptanceCriteria, p.Technologies = v.AcceptanceCriteria, v.Technologies
	case env.SystemDesign != nil:
		v := env.SystemDesign
		p.Title, p.Description, p.Difficulty, p.EstimatedTime = v.Title, v.Description, v.Difficulty, v.EstimatedTime
		p.FunctionalRequirements, p.NonFunctionalRequirements = v.FunctionalRequirements, v.NonFunctionalRequirements
		p.Scale, p.ExpectedDeliverables = v.Scale, v.ExpectedDeliverables
	case env.Theory != nil:
		v := env.Theory
		p.Title, p.Description, p.Difficulty, p.EstimatedTime = v.Title, v.Description, v.Difficulty, v.EstimatedTime
		p.Question, p.ExpectedAnswer, p.KeyPoints = v.Question, v.ExpectedAnswer, v.KeyPoints
	default:
		return MockInterviewProblem{}, false
	}
	return p, true
}
