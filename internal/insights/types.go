// Package insights serves per-company interview process breakdowns, generated
// once and cached until explicitly refreshed.
package insights

// Round describes one stage of a company's interview process.
type Round struct {
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	SampleProblems     []string `json:"sampleProblems"`
	Duration           string   `json:"duration"`
	FocusAreas         []string `json:"focusAreas"`
	EvaluationCriteria []string `json:"evaluationCriteria"`
	Difficulty         string   `json:"difficulty"`
	Tips               []string `json:"tips"`
}

// Data is the full insights payload for a (company, role) pair.
type Data struct {
	TotalRounds          int      `json:"totalRounds"`
	EstimatedDuration    string   `json:"estimatedDuration"`
	Rounds               []Round  `json:"rounds"`
	OverallTips          []string `json:"overallTips"`
	CompanySpecificNotes string   `json:"companySpecificNotes"`
}

// Entry is the cached record, carrying the lookup key and freshness alongside
// the payload.
type Entry struct {
	CompanyName string `json:"companyName"`
	RoleLevel   string `json:"roleLevel"`
	Data        Data   `json:"data"`
	UpdatedAt   string `json:"updatedAt"`
}
