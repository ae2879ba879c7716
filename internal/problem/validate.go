package problem

import (
	"fmt"
	"strings"
)

// Validation is structural: required fields must exist with the right types,
// unknown fields are ignored, and optional fields (hints, followUpQuestions,
// explanation) never fail a payload. Validators return a reason instead of
// logging so callers decide how a failure is observed.

func validDifficulty(d string) error {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return nil
	}
	return fmt.Errorf("difficulty: %q is not one of easy|medium|hard", d)
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s: required non-empty string", field)
	}
	return nil
}

func (p *DSAProblem) Validate() error {
	for _, check := range []struct{ field, value string }{
		{"title", p.Title},
		{"description", p.Description},
		{"estimatedTime", p.EstimatedTime},
		{"problemStatement", p.ProblemStatement},
		{"inputFormat", p.InputFormat},
		{"outputFormat", p.OutputFormat},
	} {
		if err := requireText(check.field, check.value); err != nil {
			return err
		}
	}
	if err := validDifficulty(p.Difficulty); err != nil {
		return err
	}
	if len(p.Examples) == 0 {
		return fmt.Errorf("examples: at least one example required")
	}
	for i, ex := range p.Examples {
		if ex.Input == "" || ex.Output == "" {
			return fmt.Errorf("examples[%d]: input and output must be non-empty strings", i)
		}
	}
	return nil
}

func (p *MachineCodingProblem) Validate() error {
	for _, check := range []struct{ field, value string }{
		{"title", p.Title},
		{"description", p.Description},
		{"estimatedTime", p.EstimatedTime},
	} {
		if err := requireText(check.field, check.value); err != nil {
			return err
		}
	}
	return validDifficulty(p.Difficulty)
}

func (p *SystemDesignProblem) Validate() error {
	for _, check := range []struct{ field, value string }{
		{"title", p.Title},
		{"description", p.Description},
		{"estimatedTime", p.EstimatedTime},
	} {
		if err := requireText(check.field, check.value); err != nil {
			return err
		}
	}
	if err := validDifficulty(p.Difficulty); err != nil {
		return err
	}
	return validateScale(p.Scale)
}

// validateScale requires at least two string-valued sizing metrics, one of
// which must look like a user count (users, dailyActiveUsers, any *user* key).
func validateScale(scale map[string]string) error {
	if len(scale) < 2 {
		return fmt.Errorf("scale: need at least 2 metrics, got %d", len(scale))
	}
	for key := range scale {
		if strings.Contains(strings.ToLower(key), "user") {
			return nil
		}
	}
	return fmt.Errorf("scale: missing a user-count metric")
}

func (p *TheoryProblem) Validate() error {
	for _, check := range []struct{ field, value string }{
		{"title", p.Title},
		{"description", p.Description},
		{"estimatedTime", p.EstimatedTime},
		{"question", p.Question},
		{"expectedAnswer", p.ExpectedAnswer},
	} {
		if err := requireText(check.field, check.value); err != nil {
			return err
		}
	}
	return validDifficulty(p.Difficulty)
}

// Validate checks every variant present on the envelope. An empty envelope is
// vacuously valid; the caller decides whether "nothing generated" is useful.
func (e *Envelope) Validate() error {
	if e.DSA != nil {
		if err := e.DSA.Validate(); err != nil {
			return fmt.Errorf("dsaProblem: %w", err)
		}
	}
	if e.MachineCoding != nil {
		if err := e.MachineCoding.Validate(); err != nil {
			return fmt.Errorf("machineCodingProblem: %w", err)
		}
	}
	if e.SystemDesign != nil {
		if err := e.SystemDesign.Validate(); err != nil {
			return fmt.Errorf("systemDesignProblem: %w", err)
		}
	}
	if e.Theory != nil {
		if err := e.Theory.Validate(); err != nil {
			return fmt.Errorf("theoryProblem: %w", err)
		}
	}
	return nil
}

// Validate checks the fields relevant to the problem's type; irrelevant
// fields are simply absent and never inspected.
func (p *MockInterviewProblem) Validate() error {
	if err := requireText("id", p.ID); err != nil {
		return err
	}
	switch p.Type {
	case TypeDSA:
		v := DSAProblem{
			Title:            p.Title,
			Description:      p.Description,
			Difficulty:       p.Difficulty,
			EstimatedTime:    p.EstimatedTime,
			ProblemStatement: p.ProblemStatement,
			InputFormat:      p.InputFormat,
			OutputFormat:     p.OutputFormat,
			Constraints:      p.Constraints,
			Examples:         p.Examples,
			Tags:             p.Tags,
		}
		return v.Validate()
	case TypeMachineCoding:
		v := MachineCodingProblem{
			Title:              p.Title,
			Description:        p.Description,
			Difficulty:         p.Difficulty,
			EstimatedTime:      p.EstimatedTime,
			Requirements:       p.Requirements,
			Constraints:        p.Constraints,
			AcceptanceCriteria: p.AcceptanceCriteria,
			Technologies:       p.Technologies,
		}
		return v.Validate()
	case TypeSystemDesign:
		v := SystemDesignProblem{
			Title:                     p.Title,
			Description:               p.Description,
			Difficulty:                p.Difficulty,
			EstimatedTime:             p.EstimatedTime,
			FunctionalRequirements:    p.FunctionalRequirements,
			NonFunctionalRequirements: p.NonFunctionalRequirements,
			Scale:                     p.Scale,
			ExpectedDeliverables:      p.ExpectedDeliverables,
		}
		return v.Validate()
	case TypeTheory:
		v := TheoryProblem{
			Title:          p.Title,
			Description:    p.Description,
			Difficulty:     p.Difficulty,
			EstimatedTime:  p.EstimatedTime,
			Question:       p.Question,
			ExpectedAnswer: p.ExpectedAnswer,
			KeyPoints:      p.KeyPoints,
		}
		return v.Validate()
	}
	return fmt.Errorf("type: %q is not a known problem type", p.Type)
}
