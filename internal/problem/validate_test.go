package problem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbacksPassValidation(t *testing.T) {
	types := []string{TypeDSA, TypeMachineCoding, TypeSystemDesign, TypeTheory}
	difficulties := []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

	for _, pt := range types {
		for _, d := range difficulties {
			env := FallbackEnvelope(pt, d)
			assert.NoError(t, env.Validate(), "fallback %s/%s must validate", pt, d)
			assert.Equal(t, pt, env.Type())

			mock := FallbackMockProblem(pt, d)
			assert.NoError(t, mock.Validate(), "fallback mock %s/%s must validate", pt, d)
		}
	}
}

func TestEmptyEnvelopeIsValid(t *testing.T) {
	env := Envelope{}
	assert.NoError(t, env.Validate())
	assert.Equal(t, "", env.Type())
}

func TestEnvelopeRejectsIncompleteVariant(t *testing.T) {
	env := Envelope{DSA: &DSAProblem{Title: "x"}}
	err := env.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "dsaProblem")
}

func TestDSARequiresExamples(t *testing.T) {
	p := FallbackDSA(DifficultyEasy)
	p.Examples = nil
	assert.ErrorContains(t, p.Validate(), "examples")

	p = FallbackDSA(DifficultyEasy)
	p.Examples = []Example{{Input: "", Output: "[1]"}}
	assert.ErrorContains(t, p.Validate(), "examples[0]")
}

func TestDifficultyEnum(t *testing.T) {
	p := FallbackTheory(DifficultyMedium)
	p.Difficulty = "extreme"
	assert.ErrorContains(t, p.Validate(), "difficulty")
}

func TestScaleHeuristic(t *testing.T) {
	p := FallbackSystemDesign(DifficultyMedium)

	p.Scale = map[string]string{"users": "1M"}
	assert.ErrorContains(t, p.Validate(), "scale")

	p.Scale = map[string]string{"users": "1M", "requestsPerSecond": "10k"}
	assert.NoError(t, p.Validate())

	p.Scale = map[string]string{"dailyActiveUsers": "5M", "storage": "2TB"}
	assert.NoError(t, p.Validate())

	p.Scale = map[string]string{"requestsPerSecond": "10k", "storage": "2TB"}
	assert.ErrorContains(t, p.Validate(), "user")
}

func TestMockProblemTypeSwitch(t *testing.T) {
	p := FallbackMockProblem(TypeTheory, DifficultyEasy)
	p.Type = "brainstorming"
	assert.ErrorContains(t, p.Validate(), "type")

	p = FallbackMockProblem(TypeDSA, DifficultyEasy)
	p.ID = ""
	assert.ErrorContains(t, p.Validate(), "id")
}

func TestFallbackEvaluationScoring(t *testing.T) {
	eval := FallbackEvaluation("p1", TypeDSA, true)
	assert.Equal(t, 75, eval.Score)
	assert.Equal(t, "p1", eval.ProblemID)
	assert.NotEmpty(t, eval.Feedback)

	eval = FallbackEvaluation("p1", TypeDSA, false)
	assert.Equal(t, 0, eval.Score)
}

func TestFallbackDeterminism(t *testing.T) {
	a := FallbackMockProblem(TypeSystemDesign, DifficultyHard)
	b := FallbackMockProblem(TypeSystemDesign, DifficultyHard)
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, a.Title, b.Title)
}

func TestNormalizeRoundType(t *testing.T) {
	assert.Equal(t, TypeDSA, NormalizeRoundType("coding"))
	assert.Equal(t, TypeMachineCoding, NormalizeRoundType("machine-coding"))
	assert.Equal(t, TypeSystemDesign, NormalizeRoundType("design"))
	assert.Equal(t, TypeTheory, NormalizeRoundType("fundamentals"))
	assert.Equal(t, TypeTheory, NormalizeRoundType("bar_raiser"))
}
