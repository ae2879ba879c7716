package problem

import "fmt"

// Fallback payloads replace generated content whenever the model call fails
// or its output fails validation, and double as the sample content served
// when no API key is configured. They are deterministic for a given
// (type, difficulty) and always pass their own validator.

func fallbackTime(difficulty string) string {
	switch difficulty {
	case DifficultyEasy:
		return "20 minutes"
	case DifficultyHard:
		return "60 minutes"
	}
	return "40 minutes"
}

func normalizeDifficulty(d string) string {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d
	}
	return DifficultyMedium
}

// FallbackDSA returns a static algorithmic problem.
func FallbackDSA(difficulty string) *DSAProblem {
	difficulty = normalizeDifficulty(difficulty)
	return &DSAProblem{
		Title:            "Flatten a Nested Array",
		Description:      "Implement a utility that flattens an arbitrarily nested array of values into a single-level array, preserving order.",
		Difficulty:       difficulty,
		EstimatedTime:    fallbackTime(difficulty),
		ProblemStatement: "Write a function flatten(input) that takes an array whose elements may themselves be arrays, nested to any depth, and returns a new array containing every non-array value in depth-first order.",
		InputFormat:      "A single array literal; elements are integers or arrays of the same shape.",
		OutputFormat:     "A single-level array of integers in traversal order.",
		Constraints: []string{
			"Total element count does not exceed 10^5",
			"Nesting depth does not exceed 1000",
			"Do not use the built-in Array.prototype.flat",
		},
		Examples: []Example{
			{Input: "[1, [2, [3, 4]], 5]", Output: "[1, 2, 3, 4, 5]", Explanation: "Nested arrays are expanded depth-first."},
			{Input: "[[], [1], 2]", Output: "[1, 2]"},
		},
		Tags:  []string{"arrays", "recursion"},
		Hints: []string{"An explicit stack avoids recursion-depth limits."},
	}
}

// FallbackMachineCoding returns a static component-building exercise.
func FallbackMachineCoding(difficulty string) *MachineCodingProblem {
	difficulty = normalizeDifficulty(difficulty)
	return &MachineCodingProblem{
		Title:         "Debounced Search Autocomplete",
		Description:   "Build a search box that fetches suggestions as the user types, without flooding the backend.",
		Difficulty:    difficulty,
		EstimatedTime: fallbackTime(difficulty),
		Requirements: []string{
			"Suggestions appear after the user pauses typing for 300ms",
			"In-flight requests are cancelled when a newer query is issued",
			"Keyboard navigation selects a suggestion",
		},
		Constraints: []string{
			"No third-party autocomplete library",
			"The suggestion list renders at most 10 items",
		},
		AcceptanceCriteria: []string{
			"Typing quickly issues at most one request per pause",
			"Stale responses never overwrite newer results",
		},
		Technologies: []string{"React", "TypeScript"},
	}
}

// FallbackSystemDesign returns a static architecture exercise.
func FallbackSystemDesign(difficulty string) *SystemDesignProblem {
	difficulty = normalizeDifficulty(difficulty)
	return &SystemDesignProblem{
		Title:         "Design a News Feed",
		Description:   "Design the frontend architecture for an infinite-scrolling, personalized news feed.",
		Difficulty:    difficulty,
		EstimatedTime: fallbackTime(difficulty),
		FunctionalRequirements: []string{
			"Infinite scroll with stable item ordering",
			"Optimistic like/unlike interactions",
			"New-post indicator without a full refresh",
		},
		NonFunctionalRequirements: []string{
			"First contentful paint under 1.5s on a mid-range device",
			"Feed remains usable offline with previously cached items",
		},
		Scale: map[string]string{
			"dailyActiveUsers":  "10M",
			"requestsPerSecond": "5k",
			"feedItemsPerDay":   "50M",
		},
		ExpectedDeliverables: []string{
			"Component hierarchy and data-flow diagram",
			"Caching and pagination strategy",
			"API contract sketch",
		},
	}
}

// FallbackTheory returns a static conceptual question.
func FallbackTheory(difficulty string) *TheoryProblem {
	difficulty = normalizeDifficulty(difficulty)
	return &TheoryProblem{
		Title:          "The JavaScript Event Loop",
		Description:    "Explain how JavaScript schedules and executes asynchronous work.",
		Difficulty:     difficulty,
		EstimatedTime:  fallbackTime(difficulty),
		Question:       "Walk through what happens when a script calls setTimeout(fn, 0) followed by Promise.resolve().then(gn). Which callback runs first, and why?",
		ExpectedAnswer: "gn runs first. Promise reactions are queued as microtasks, which drain completely after the current task before the event loop picks the next macrotask; the setTimeout callback is a macrotask and waits for the following turn.",
		KeyPoints: []string{
			"Call stack vs task queue vs microtask queue",
			"Microtasks drain fully between macrotasks",
			"setTimeout(fn, 0) still yields to the event loop",
		},
	}
}

// FallbackEnvelope returns a static envelope carrying the requested variant.
func FallbackEnvelope(problemType, difficulty string) Envelope {
	switch problemType {
	case TypeMachineCoding:
		return Envelope{MachineCoding: FallbackMachineCoding(difficulty)}
	case TypeSystemDesign:
		return Envelope{SystemDesign: FallbackSystemDesign(difficulty)}
	case TypeTheory:
		return Envelope{Theory: FallbackTheory(difficulty)}
	default:
		return Envelope{DSA: FallbackDSA(difficulty)}
	}
}

// FallbackMockProblem returns a static mock-interview problem of the given
// type. The ID is derived from (type, difficulty) so repeated failures for
// the same request yield the same problem.
func FallbackMockProblem(problemType, difficulty string) MockInterviewProblem {
	problemType = NormalizeRoundType(problemType)
	difficulty = normalizeDifficulty(difficulty)
	p := MockInterviewProblem{
		ID:   fmt.Sprintf("fallback-%s-%s", problemType, difficulty),
		Type: problemType,
	}
	switch problemType {
	case TypeMachineCoding:
		v := FallbackMachineCoding(difficulty)
		p.Title, p.Description, p.Difficulty, p.EstimatedTime = v.Title, v.Description, v.Difficulty, v.EstimatedTime
		p.Requirements, p.Constraints = v.Requirements, v.Constraints
		p.AcceptanceCriteria, p.Technologies = v.AcceptanceCriteria, v.Technologies
	case TypeSystemDesign:
		v := FallbackSystemDesign(difficulty)
		p.Title, p.Description, p.Difficulty, p.EstimatedTime = v.Title, v.Description, v.Difficulty, v.EstimatedTime
		p.FunctionalRequirements, p.NonFunctionalRequirements = v.FunctionalRequirements, v.NonFunctionalRequirements
		p.Scale, p.ExpectedDeliverables = v.Scale, v.ExpectedDeliverables
	case TypeTheory:
		v := FallbackTheory(difficulty)
		p.Title, p.Description, p.Difficulty, p.EstimatedTime = v.Title, v.Description, v.Difficulty, v.EstimatedTime
		p.Question, p.ExpectedAnswer, p.KeyPoints = v.Question, v.ExpectedAnswer, v.KeyPoints
	default:
		v := FallbackDSA(difficulty)
		p.Title, p.Description, p.Difficulty, p.EstimatedTime = v.Title, v.Description, v.Difficulty, v.EstimatedTime
		p.ProblemStatement, p.InputFormat, p.OutputFormat = v.ProblemStatement, v.InputFormat, v.OutputFormat
		p.Constraints, p.Examples, p.Tags = v.Constraints, v.Examples, v.Tags
	}
	return p
}

// FallbackEvaluation substitutes a canned evaluation when the model's
// response is unusable. A submission with content earns a neutral score;
// an empty one scores zero.
func FallbackEvaluation(problemID, problemType string, hasContent bool) Evaluation {
	score := 0
	feedback := "No submission content was provided, so the attempt could not be assessed."
	if hasContent {
		score = 75
		switch NormalizeRoundType(problemType) {
		case TypeSystemDesign:
			feedback = "Your design was received but automatic review was unavailable. The structure suggests a reasonable approach; walk through trade-offs, data flow, and failure modes with a peer to validate it."
		case TypeTheory:
			feedback = "Your answer was received but automatic review was unavailable. Compare it against the key points for this question and check that each is covered with an example."
		default:
			feedback = "Your solution was received but automatic review was unavailable. It compiles against the stated requirements at a structural level; verify edge cases and complexity yourself."
		}
	}
	return Evaluation{
		ProblemID:           problemID,
		Score:               score,
		Feedback:            feedback,
		Strengths:           []string{},
		AreasForImprovement: []string{},
		Suggestions:         []string{"Retry the evaluation once the review service is available."},
	}
}

// NormalizeRoundType maps interview round names onto a problem type.
// Unknown rounds (behavioral, bar raiser, etc.) get theory-style questions.
func NormalizeRoundType(round string) string {
	switch round {
	case TypeDSA, "coding", "algorithms":
		return TypeDSA
	case TypeMachineCoding, "machine-coding", "ui_coding":
		return TypeMachineCoding
	case TypeSystemDesign, "system-design", "design":
		return TypeSystemDesign
	case TypeTheory, "technical_theory", "fundamentals":
		return TypeTheory
	}
	return TypeTheory
}
