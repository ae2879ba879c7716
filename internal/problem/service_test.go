package problem

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	reply      string
	err        error
	calls      int
	imageCalls int
}

func (s *stubGenerator) GenerateText(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func (s *stubGenerator) GenerateWithImage(_ context.Context, _ string, _ []byte, _ string) (string, error) {
	s.imageCalls++
	return s.reply, s.err
}

type memorySubmissionStore struct {
	saved []Evaluation
	err   error
}

func (m *memorySubmissionStore) SaveSubmission(_ context.Context, _ string, _ Submission, eval Evaluation) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, eval)
	return nil
}

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func TestGenerateOfflineServesSampleWithoutNetwork(t *testing.T) {
	svc := NewService(nil, nil, nil, testLogger())

	env, fallback, err := svc.Generate(context.Background(), "", GenerateRequest{InterviewType: "dsa", Difficulty: "hard"})
	require.NoError(t, err)
	assert.True(t, fallback)
	require.NotNil(t, env.DSA)
	assert.NoError(t, env.Validate())

	again, _, err := svc.Generate(context.Background(), "", GenerateRequest{InterviewType: "dsa", Difficulty: "hard"})
	require.NoError(t, err)
	assert.Equal(t, env, again, "offline content is deterministic")
}

func TestGenerateRequiresInterviewType(t *testing.T) {
	svc := NewService(nil, nil, nil, testLogger())
	_, _, err := svc.Generate(context.Background(), "", GenerateRequest{})
	assert.Error(t, err)
}

func TestGenerateValidOutputPassesThrough(t *testing.T) {
	gen := &stubGenerator{reply: `Here you go: {"theoryProblem": {"title": "Event Loop", "description": "d", "difficulty": "easy", "estimatedTime": "10 minutes", "question": "q", "expectedAnswer": "a", "keyPoints": ["k"]}}`}
	svc := NewService(gen, nil, nil, testLogger())

	env, fallback, err := svc.Generate(context.Background(), "", GenerateRequest{InterviewType: "theory"})
	require.NoError(t, err)
	assert.False(t, fallback)
	require.NotNil(t, env.Theory)
	assert.Equal(t, "Event Loop", env.Theory.Title)
}

func TestGenerateSchemaViolationFallsBack(t *testing.T) {
	gen := &stubGenerator{reply: `{"dsaProblem": {"title": "only a title"}}`}
	svc := NewService(gen, nil, nil, testLogger())

	env, fallback, err := svc.Generate(context.Background(), "", GenerateRequest{InterviewType: "dsa", Difficulty: "easy"})
	require.NoError(t, err)
	assert.True(t, fallback)
	require.NotNil(t, env.DSA)
	assert.NoError(t, env.Validate(), "substituted content always validates")
}

func TestGenerateWrongTypeFieldFallsBack(t *testing.T) {
	gen := &stubGenerator{reply: `{"dsaProblem": "a string, not an object"}`}
	svc := NewService(gen, nil, nil, testLogger())

	env, fallback, err := svc.Generate(context.Background(), "", GenerateRequest{InterviewType: "dsa"})
	require.NoError(t, err)
	assert.True(t, fallback)
	assert.NotNil(t, env.DSA)
}

func TestGenerateMalformedIsHardError(t *testing.T) {
	gen := &stubGenerator{reply: "I could not produce JSON today, sorry."}
	svc := NewService(gen, nil, nil, testLogger())

	_, _, err := svc.Generate(context.Background(), "", GenerateRequest{InterviewType: "dsa"})
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.Equal(t, 1, gen.calls, "no automatic retry")
}

func TestGenerateUpstreamErrorSurfaces(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota exceeded")}
	svc := NewService(gen, nil, nil, testLogger())

	_, _, err := svc.Generate(context.Background(), "", GenerateRequest{InterviewType: "dsa"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformedResponse)
}

func TestGenerateMockProblemDegradesToFallback(t *testing.T) {
	gen := &stubGenerator{err: errors.New("service down")}
	svc := NewService(gen, nil, nil, testLogger())

	p, fallback := svc.GenerateMockProblem(context.Background(), MockRequest{RoundType: "system_design", Difficulty: "hard"})
	assert.True(t, fallback)
	assert.Equal(t, TypeSystemDesign, p.Type)
	assert.NoError(t, p.Validate())
}

func TestEvaluateEmptySubmissionRejected(t *testing.T) {
	gen := &stubGenerator{}
	svc := NewService(gen, nil, nil, testLogger())
	p := FallbackMockProblem(TypeDSA, DifficultyEasy)

	_, _, err := svc.EvaluateSubmission(context.Background(), "", p, Submission{ProblemID: p.ID})
	assert.ErrorIs(t, err, ErrEmptySubmission)
	assert.Zero(t, gen.calls, "rejected before any model call")
}

func TestEvaluateParsesScore(t *testing.T) {
	gen := &stubGenerator{reply: `{"score": 88, "feedback": "solid", "strengths": ["s"], "areasForImprovement": [], "suggestions": []}`}
	store := &memorySubmissionStore{}
	svc := NewService(gen, nil, store, testLogger())
	p := FallbackMockProblem(TypeDSA, DifficultyEasy)

	eval, fallback, err := svc.EvaluateSubmission(context.Background(), "u1", p, Submission{ProblemID: p.ID, Code: "code"})
	require.NoError(t, err)
	assert.False(t, fallback)
	assert.Equal(t, 88, eval.Score)
	assert.Equal(t, "solid", eval.Feedback)
	assert.Len(t, store.saved, 1)
}

func TestEvaluateNonNumericScoreFallsBack(t *testing.T) {
	gen := &stubGenerator{reply: `{"score": "excellent", "feedback": "great"}`}
	svc := NewService(gen, nil, nil, testLogger())
	p := FallbackMockProblem(TypeTheory, DifficultyEasy)

	eval, fallback, err := svc.EvaluateSubmission(context.Background(), "", p, Submission{ProblemID: p.ID, Code: "x"})
	require.NoError(t, err)
	assert.True(t, fallback, "whole evaluation replaced, not just the score")
	assert.Equal(t, 75, eval.Score)
	assert.NotEqual(t, "great", eval.Feedback)
}

func TestEvaluateClampsScore(t *testing.T) {
	gen := &stubGenerator{reply: `{"score": 180, "feedback": "f"}`}
	svc := NewService(gen, nil, nil, testLogger())
	p := FallbackMockProblem(TypeDSA, DifficultyEasy)

	eval, _, err := svc.EvaluateSubmission(context.Background(), "", p, Submission{ProblemID: p.ID, Code: "x"})
	require.NoError(t, err)
	assert.Equal(t, 100, eval.Score)
}

func TestEvaluateDrawingUsesImageCall(t *testing.T) {
	gen := &stubGenerator{reply: `{"score": 60, "feedback": "f"}`}
	svc := NewService(gen, nil, nil, testLogger())
	p := FallbackMockProblem(TypeSystemDesign, DifficultyMedium)

	_, _, err := svc.EvaluateSubmission(context.Background(), "", p, Submission{ProblemID: p.ID, Drawing: []byte{1, 2, 3}, DrawingMIME: "image/png"})
	require.NoError(t, err)
	assert.Equal(t, 1, gen.imageCalls)
	assert.Zero(t, gen.calls)
}

func TestEvaluateSaveFailureSurfaces(t *testing.T) {
	gen := &stubGenerator{reply: `{"score": 50, "feedback": "f"}`}
	store := &memorySubmissionStore{err: errors.New("disk full")}
	svc := NewService(gen, nil, store, testLogger())
	p := FallbackMockProblem(TypeDSA, DifficultyEasy)

	eval, _, err := svc.EvaluateSubmission(context.Background(), "u1", p, Submission{ProblemID: p.ID, Code: "x"})
	assert.Error(t, err)
	assert.Equal(t, 50, eval.Score, "evaluation still returned alongside the save error")
}
