package problem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerationPromptSelectsTemplate(t *testing.T) {
	dsa := BuildGenerationPrompt(GenerateRequest{InterviewType: "dsa", Difficulty: "easy"})
	assert.Contains(t, dsa, "dsaProblem")
	assert.NotContains(t, dsa, "theoryProblem")
	assert.Contains(t, dsa, "Use: easy")

	theory := BuildGenerationPrompt(GenerateRequest{InterviewType: "theory"})
	assert.Contains(t, theory, "theoryProblem")
	assert.Contains(t, theory, "Use: medium", "unknown difficulty defaults to medium")

	practical := BuildGenerationPrompt(GenerateRequest{InterviewType: "machine_coding", Round: "UI round"})
	assert.Contains(t, practical, "machineCodingProblem")
	assert.Contains(t, practical, "systemDesignProblem", "practical template offers both schemas")

	generic := BuildGenerationPrompt(GenerateRequest{InterviewType: "bar_raiser", Companies: []string{"Acme", "Globex"}})
	assert.Contains(t, generic, "theoryProblem", "unknown rounds get theory-style questions")
	assert.Contains(t, generic, "Acme, Globex")
}

func TestGenerationPromptCarriesUnknownRoundName(t *testing.T) {
	byType := BuildGenerationPrompt(GenerateRequest{InterviewType: "behavioral"})
	assert.Contains(t, byType, "interview round: behavioral")

	byRound := BuildGenerationPrompt(GenerateRequest{InterviewType: "bar_raiser", Round: "Bar Raiser (final)"})
	assert.Contains(t, byRound, "interview round: Bar Raiser (final)", "an explicit round label wins over the type")

	plainTheory := BuildGenerationPrompt(GenerateRequest{InterviewType: "theory", Round: "ignored"})
	assert.NotContains(t, plainTheory, "interview round:", "real theory requests get no round framing")
}

func TestEvaluationPromptModalities(t *testing.T) {
	p := FallbackMockProblem(TypeMachineCoding, DifficultyMedium)

	codeOnly, err := BuildEvaluationPrompt(p, Submission{ProblemID: p.ID, Code: "const x = 1"})
	require.NoError(t, err)
	assert.Contains(t, codeOnly, "const x = 1")
	assert.NotContains(t, codeOnly, "BOTH")

	drawingOnly, err := BuildEvaluationPrompt(p, Submission{ProblemID: p.ID, Drawing: []byte{1, 2}})
	require.NoError(t, err)
	assert.Contains(t, drawingOnly, "drawing")

	both, err := BuildEvaluationPrompt(p, Submission{ProblemID: p.ID, Code: "x", Drawing: []byte{1}})
	require.NoError(t, err)
	assert.Contains(t, both, "BOTH")

	_, err = BuildEvaluationPrompt(p, Submission{ProblemID: p.ID})
	assert.ErrorIs(t, err, ErrEmptySubmission)
}

func TestInsightsPromptNamesCompany(t *testing.T) {
	prompt := BuildInsightsPrompt("Globex", "senior")
	assert.Contains(t, prompt, "Globex")
	assert.Contains(t, prompt, "senior")
	assert.Contains(t, prompt, "rounds")
}
