package problem

// Difficulty constants for generated problems.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Problem type constants.
const (
	TypeDSA           = "dsa"
	TypeMachineCoding = "machine_coding"
	TypeSystemDesign  = "system_design"
	TypeTheory        = "theory"
)

// Example is a single worked input/output pair on a DSA problem.
type Example struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation,omitempty"`
}

// DSAProblem is an algorithmic coding problem.
type DSAProblem struct {
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Difficulty        string    `json:"difficulty"`
	EstimatedTime     string    `json:"estimatedTime"`
	ProblemStatement  string    `json:"problemStatement"`
	InputFormat       string    `json:"inputFormat"`
	OutputFormat      string    `json:"outputFormat"`
	Constraints       []string  `json:"constraints"`
	Examples          []Example `json:"examples"`
	Tags              []string  `json:"tags"`
	Hints             []string  `json:"hints,omitempty"`
	FollowUpQuestions []string  `json:"followUpQuestions,omitempty"`
}

// MachineCodingProblem is a build-a-component / build-a-widget exercise.
type MachineCodingProblem struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Difficulty         string   `json:"difficulty"`
	EstimatedTime      string   `json:"estimatedTime"`
	Requirements       []string `json:"requirements"`
	Constraints        []string `json:"constraints"`
	AcceptanceCriteria []string `json:"acceptanceCriteria"`
	Technologies       []string `json:"technologies"`
}

// SystemDesignProblem is an open-ended architecture exercise. Scale carries
// string-valued sizing metrics and must include a user-count-like key.
type SystemDesignProblem struct {
	Title                     string            `json:"title"`
	Description               string            `json:"description"`
	Difficulty                string            `json:"difficulty"`
	EstimatedTime             string            `json:"estimatedTime"`
	FunctionalRequirements    []string          `json:"functionalRequirements"`
	NonFunctionalRequirements []string          `json:"nonFunctionalRequirements"`
	Scale                     map[string]string `json:"scale"`
	ExpectedDeliverables      []string          `json:"expectedDeliverables"`
}

// TheoryProblem is a conceptual question with an expected answer outline.
type TheoryProblem struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Difficulty     string   `json:"difficulty"`
	EstimatedTime  string   `json:"estimatedTime"`
	Question       string   `json:"question"`
	ExpectedAnswer string   `json:"expectedAnswer"`
	KeyPoints      []string `json:"keyPoints"`
}

// Envelope is the top-level object the model is asked to return. At most one
// variant is populated; Validate enforces the shape of whichever is present.
type Envelope struct {
	DSA           *DSAProblem           `json:"dsaProblem,omitempty"`
	MachineCoding *MachineCodingProblem `json:"machineCodingProblem,omitempty"`
	SystemDesign  *SystemDesignProblem  `json:"systemDesignProblem,omitempty"`
	Theory        *TheoryProblem        `json:"theoryProblem,omitempty"`
}

// Type reports which variant the envelope carries, or "" when empty.
func (e *Envelope) Type() string {
	switch {
	case e.DSA != nil:
		return TypeDSA
	case e.MachineCoding != nil:
		return TypeMachineCoding
	case e.SystemDesign != nil:
		return TypeSystemDesign
	case e.Theory != nil:
		return TypeTheory
	}
	return ""
}

// MockInterviewProblem unifies all four variant shapes into one record for
// mock-interview sessions. Only the fields relevant to Type are populated.
type MockInterviewProblem struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Difficulty    string `json:"difficulty"`
	EstimatedTime string `json:"estimatedTime"`

	// DSA
	ProblemStatement string    `json:"problemStatement,omitempty"`
	InputFormat      string    `json:"inputFormat,omitempty"`
	OutputFormat     string    `json:"outputFormat,omitempty"`
	Constraints      []string  `json:"constraints,omitempty"`
	Examples         []Example `json:"examples,omitempty"`
	Tags             []string  `json:"tags,omitempty"`

	// Machine coding
	Requirements       []string `json:"requirements,omitempty"`
	AcceptanceCriteria []string `json:"acceptanceCriteria,omitempty"`
	Technologies       []string `json:"technologies,omitempty"`

	// System design
	FunctionalRequirements    []string          `json:"functionalRequirements,omitempty"`
	NonFunctionalRequirements []string          `json:"nonFunctionalRequirements,omitempty"`
	Scale                     map[string]string `json:"scale,omitempty"`
	ExpectedDeliverables      []string          `json:"expectedDeliverables,omitempty"`

	// Theory
	Question       string   `json:"question,omitempty"`
	ExpectedAnswer string   `json:"expectedAnswer,omitempty"`
	KeyPoints      []string `json:"keyPoints,omitempty"`
}

// Evaluation scores a mock-interview submission.
type Evaluation struct {
	ProblemID           string   `json:"problemId"`
	Score               int      `json:"score"`
	Feedback            string   `json:"feedback"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areasForImprovement"`
	Suggestions         []string `json:"suggestions"`
}

// Submission carries the material a candidate hands in for evaluation. Either
// code or a drawing (or both) must be present.
type Submission struct {
	ProblemID   string
	Code        string
	Drawing     []byte
	DrawingMIME string
}

// HasContent reports whether the submission carries any reviewable material.
func (s Submission) HasContent() bool {
	return s.Code != "" || len(s.Drawing) > 0
}

// GenerateRequest guides practice-problem generation.
type GenerateRequest struct {
	InterviewType string   `json:"interview_type"`
	Designation   string   `json:"designation,omitempty"`
	Companies     []string `json:"companies,omitempty"`
	Round         string   `json:"round,omitempty"`
	Difficulty    string   `json:"difficulty,omitempty"`
}

// MockRequest guides mock-interview problem generation.
type MockRequest struct {
	RoundType  string `json:"round_type"`
	Company    string `json:"company,omitempty"`
	Role       string `json:"role,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}
