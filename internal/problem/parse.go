package problem

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSONObject pulls the first top-level JSON object out of a model
// reply that may wrap it in prose or markdown fences. Scanning is
// string-and-escape aware so braces inside string values do not unbalance
// the match. A reply without a complete object is malformed.
func ExtractJSONObject(raw string) ([]byte, error) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return nil, fmt.Errorf("%w: no JSON object found", ErrMalformedResponse)
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		switch {
		case escaped:
			escaped = false
		case inString:
			if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return []byte(raw[start : i+1]), nil
			}
		}
	}
	return nil, fmt.Errorf("%w: unbalanced JSON object", ErrMalformedResponse)
}

// DecodeEnvelope unmarshals an extracted object into an Envelope,
// distinguishing unparseable text from text that parses but breaks the
// schema. Syntax errors are malformed; type errors are schema violations
// the caller resolves with a fallback.
func DecodeEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		if _, ok := err.(*json.SyntaxError); ok {
			return Envelope{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		return Envelope{}, fmt.Errorf("envelope schema: %w", err)
	}
	return env, nil
}

// Document is the legacy stored-problem shape: metadata fields plus each
// variant serialized as its own JSON string.
type Document struct {
	InterviewType        string `json:"interviewType"`
	Title                string `json:"title"`
	Company              string `json:"company,omitempty"`
	Role                 string `json:"role,omitempty"`
	Difficulty           string `json:"difficulty,omitempty"`
	DSAProblem           string `json:"dsaProblem,omitempty"`
	MachineCodingProblem string `json:"machineCodingProblem,omitempty"`
	SystemDesignProblem  string `json:"systemDesignProblem,omitempty"`
	TheoryProblem        string `json:"theoryProblem,omitempty"`
}

// ParsedProblem is a Document with its variant strings decoded. A variant
// that fails to decode is nil; the rest of the document still parses.
type ParsedProblem struct {
	InterviewType string
	Title         string
	Company       string
	Role          string
	Difficulty    string
	Problem       Envelope
}

// Parse decodes each embedded variant independently. Decoding is tolerant:
// one corrupt field never discards the others.
func (d Document) Parse() ParsedProblem {
	p := ParsedProblem{
		InterviewType: d.InterviewType,
		Title:         d.Title,
		Company:       d.Company,
		Role:          d.Role,
		Difficulty:    d.Difficulty,
	}
	if d.DSAProblem != "" {
		var v DSAProblem
		if json.Unmarshal([]byte(d.DSAProblem), &v) == nil {
			p.Problem.DSA = &v
		}
	}
	if d.MachineCodingProblem != "" {
		var v MachineCodingProblem
		if json.Unmarshal([]byte(d.MachineCodingProblem), &v) == nil {
			p.Problem.MachineCoding = &v
		}
	}
	if d.SystemDesignProblem != "" {
		var v SystemDesignProblem
		if json.Unmarshal([]byte(d.SystemDesignProblem), &v) == nil {
			p.Problem.SystemDesign = &v
		}
	}
	if d.TheoryProblem != "" {
		var v TheoryProblem
		if json.Unmarshal([]byte(d.TheoryProblem), &v) == nil {
			p.Problem.Theory = &v
		}
	}
	return p
}

// unifiedDoc is the newer stored shape: a typed wrapper around a single
// snake_case problem object.
type unifiedDoc struct {
	Title      string          `json:"title"`
	Type       string          `json:"type"`
	Company    string          `json:"company,omitempty"`
	Role       string          `json:"role,omitempty"`
	Difficulty string          `json:"difficulty,omitempty"`
	Problem    json.RawMessage `json:"problem"`
}

type unifiedProblem struct {
	Description       string   `json:"description"`
	Difficulty        string   `json:"difficulty"`
	EstimatedTime     string   `json:"estimated_time"`
	InputFormat       string   `json:"input_format"`
	OutputFormat      string   `json:"output_format"`
	Constraints       string   `json:"constraints"`
	SampleInput       string   `json:"sample_input"`
	SampleOutput      string   `json:"sample_output"`
	FollowUpQuestions []string `json:"follow_up_questions"`
}

// splitLines turns a newline-delimited field into a list, dropping blanks.
func splitLines(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// NormalizeDocument accepts either stored shape and returns the legacy
// ParsedProblem view. Unified documents are detected by the presence of a
// "problem" object alongside a "type"; everything else is treated as legacy.
// Fields the unified shape does not carry default to empty, never to null.
func NormalizeDocument(raw []byte) (ParsedProblem, error) {
	var probe struct {
		Type    string          `json:"type"`
		Problem json.RawMessage `json:"problem"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return ParsedProblem{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if probe.Type == "" || len(probe.Problem) == 0 || probe.Problem[0] != '{' {
		var d Document
		if err := json.Unmarshal(raw, &d); err != nil {
			return ParsedProblem{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		return d.Parse(), nil
	}

	var d unifiedDoc
	if err := json.Unmarshal(raw, &d); err != nil {
		return ParsedProblem{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	var up unifiedProblem
	if err := json.Unmarshal(d.Problem, &up); err != nil {
		return ParsedProblem{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	difficulty := up.Difficulty
	if difficulty == "" {
		difficulty = d.Difficulty
	}

	p := ParsedProblem{
		InterviewType: d.Type,
		Title:         d.Title,
		Company:       d.Company,
		Role:          d.Role,
		Difficulty:    difficulty,
	}

	followUps := up.FollowUpQuestions
	if followUps == nil {
		followUps = []string{}
	}

	switch NormalizeRoundType(d.Type) {
	case TypeDSA:
		examples := []Example{}
		if up.SampleInput != "" || up.SampleOutput != "" {
			examples = append(examples, Example{Input: up.SampleInput, Output: up.SampleOutput})
		}
		p.Problem.DSA = &DSAProblem{
			Title:             d.Title,
			Description:       up.Description,
			Difficulty:        difficulty,
			EstimatedTime:     up.EstimatedTime,
			ProblemStatement:  up.Description,
			InputFormat:       up.InputFormat,
			OutputFormat:      up.OutputFormat,
			Constraints:       splitLines(up.Constraints),
			Examples:          examples,
			Tags:              []string{},
			FollowUpQuestions: followUps,
		}
	case TypeMachineCoding:
		p.Problem.MachineCoding = &MachineCodingProblem{
			Title:              d.Title,
			Description:        up.Description,
			Difficulty:         difficulty,
			EstimatedTime:      up.EstimatedTime,
			Requirements:       splitLines(up.Description),
			Constraints:        splitLines(up.Constraints),
			AcceptanceCriteria: []string{},
			Technologies:       []string{},
		}
	case TypeSystemDesign:
		p.Problem.SystemDesign = &SystemDesignProblem{
			Title:                     d.Title,
			Description:               up.Description,
			Difficulty:                difficulty,
			EstimatedTime:             up.EstimatedTime,
			FunctionalRequirements:    splitLines(up.Description),
			NonFunctionalRequirements: splitLines(up.Constraints),
			Scale:                     map[string]string{},
			ExpectedDeliverables:      []string{},
		}
	default:
		p.Problem.Theory = &TheoryProblem{
			Title:          d.Title,
			Description:    up.Description,
			Difficulty:     difficulty,
			EstimatedTime:  up.EstimatedTime,
			Question:       up.Description,
			ExpectedAnswer: up.OutputFormat,
			KeyPoints:      splitLines(up.Constraints),
		}
	}
	return p, nil
}
