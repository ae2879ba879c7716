package problem

import (
	"fmt"
	"strings"
)

// Prompt construction embeds the exact output schema as literal JSON so the
// model's reply can be extracted and decoded deterministically. One of four
// templates is selected per interview/round type.

const dsaSchema = `{"dsaProblem": {"title": "string", "description": "string", "difficulty": "easy|medium|hard", "estimatedTime": "string", "problemStatement": "string", "inputFormat": "string", "outputFormat": "string", "constraints": ["string"], "examples": [{"input": "string", "output": "string", "explanation": "string"}], "tags": ["string"], "hints": ["string"], "followUpQuestions": ["string"]}}`

const theorySchema = `{"theoryProblem": {"title": "string", "description": "string", "difficulty": "easy|medium|hard", "estimatedTime": "string", "question": "string", "expectedAnswer": "string", "keyPoints": ["string"]}}`

const machineCodingSchema = `{"machineCodingProblem": {"title": "string", "description": "string", "difficulty": "easy|medium|hard", "estimatedTime": "string", "requirements": ["string"], "constraints": ["string"], "acceptanceCriteria": ["string"], "technologies": ["string"]}}`

const systemDesignSchema = `{"systemDesignProblem": {"title": "string", "description": "string", "difficulty": "easy|medium|hard", "estimatedTime": "string", "functionalRequirements": ["string"], "nonFunctionalRequirements": ["string"], "scale": {"dailyActiveUsers": "string", "requestsPerSecond": "string"}, "expectedDeliverables": ["string"]}}`

const evaluationSchema = `{"score": 0, "feedback": "string", "strengths": ["string"], "areasForImprovement": ["string"], "suggestions": ["string"]}`

const insightsSchema = `{"totalRounds": 0, "estimatedDuration": "string", "rounds": [{"name": "string", "description": "string", "sampleProblems": ["string"], "duration": "string", "focusAreas": ["string"], "evaluationCriteria": ["string"], "difficulty": "easy|medium|hard", "tips": ["string"]}], "overallTips": ["string"], "companySpecificNotes": "string"}`

func promptHeader(b *strings.Builder) {
	b.WriteString("You are an experienced frontend-engineering interviewer.\n")
	b.WriteString("Return ONLY a single valid JSON object. No markdown, no commentary.\n")
}

func promptContext(b *strings.Builder, designation string, companies []string, difficulty string) {
	if designation != "" {
		b.WriteString("Target role: ")
		b.WriteString(designation)
		b.WriteString(".\n")
	}
	if len(companies) > 0 {
		b.WriteString("Style the problem after interviews at: ")
		b.WriteString(strings.Join(companies, ", "))
		b.WriteString(".\n")
	}
	b.WriteString("Difficulty must be exactly one of: easy, medium, hard. Use: ")
	b.WriteString(normalizeDifficulty(difficulty))
	b.WriteString(".\n")
}

// BuildGenerationPrompt produces the instruction for a practice problem.
// Template selection: dsa | theory | machine_coding+system_design (combined
// schema guidance) | anything else falls back to a generic round prompt.
func BuildGenerationPrompt(req GenerateRequest) string {
	var b strings.Builder
	promptHeader(&b)
	promptContext(&b, req.Designation, req.Companies, req.Difficulty)

	switch NormalizeRoundType(req.InterviewType) {
	case TypeDSA:
		b.WriteString("Generate one algorithmic coding problem suited to frontend interviews.\n")
		b.WriteString("The examples array must contain at least one entry with concrete input and output.\n")
		b.WriteString("The JSON object must match this schema exactly:\n")
		b.WriteString(dsaSchema)
	case TypeMachineCoding, TypeSystemDesign:
		b.WriteString("Generate one hands-on frontend problem for round: ")
		b.WriteString(req.Round)
		b.WriteString(".\n")
		b.WriteString("If the round is about building a component, match this schema exactly:\n")
		b.WriteString(machineCodingSchema)
		b.WriteString("\nIf the round is about architecture, match this schema exactly instead:\n")
		b.WriteString(systemDesignSchema)
		b.WriteString("\nThe scale object must contain at least two metrics including a user-count metric.")
	case TypeTheory:
		if round := genericRoundName(req); round != "" {
			b.WriteString("Generate one question for the interview round: ")
			b.WriteString(round)
			b.WriteString(". Frame it as a conceptual frontend question appropriate for that round.\n")
		} else {
			b.WriteString("Generate one conceptual frontend theory question.\n")
		}
		b.WriteString("The JSON object must match this schema exactly:\n")
		b.WriteString(theorySchema)
	}
	b.WriteString("\n")
	return b.String()
}

// genericRoundName returns the original round name for requests that only
// normalize to theory because no dedicated template exists (behavioral, bar
// raiser, ...). Requests that actually ask for theory get no round framing.
func genericRoundName(req GenerateRequest) string {
	switch req.InterviewType {
	case TypeTheory, "technical_theory", "fundamentals":
		return ""
	}
	if round := strings.TrimSpace(req.Round); round != "" {
		return round
	}
	return req.InterviewType
}

// BuildMockProblemPrompt produces the instruction for a mock-interview round.
func BuildMockProblemPrompt(req MockRequest) string {
	var b strings.Builder
	promptHeader(&b)
	b.WriteString("You are running a timed mock interview round of type: ")
	b.WriteString(req.RoundType)
	b.WriteString(".\n")
	if req.Company != "" {
		b.WriteString("Company: ")
		b.WriteString(req.Company)
		b.WriteString(".\n")
	}
	if req.Role != "" {
		b.WriteString("Candidate level: ")
		b.WriteString(req.Role)
		b.WriteString(".\n")
	}
	b.WriteString("Difficulty must be exactly one of: easy, medium, hard. Use: ")
	b.WriteString(normalizeDifficulty(req.Difficulty))
	b.WriteString(".\n")

	switch NormalizeRoundType(req.RoundType) {
	case TypeDSA:
		b.WriteString("Produce the problem as the dsaProblem schema:\n")
		b.WriteString(dsaSchema)
	case TypeMachineCoding:
		b.WriteString("Produce the problem as the machineCodingProblem schema:\n")
		b.WriteString(machineCodingSchema)
	case TypeSystemDesign:
		b.WriteString("Produce the problem as the systemDesignProblem schema:\n")
		b.WriteString(systemDesignSchema)
	default:
		b.WriteString("Produce the problem as the theoryProblem schema:\n")
		b.WriteString(theorySchema)
	}
	b.WriteString("\n")
	return b.String()
}

// BuildEvaluationPrompt produces the instruction for scoring a submission.
// When the submission carries both code and a drawing, a combined
// dual-analysis prompt is used; a single modality gets a focused prompt;
// an empty submission is rejected before any network call.
func BuildEvaluationPrompt(p MockInterviewProblem, sub Submission) (string, error) {
	hasCode := sub.Code != ""
	hasDrawing := len(sub.Drawing) > 0
	if !hasCode && !hasDrawing {
		return "", ErrEmptySubmission
	}

	var b strings.Builder
	b.WriteString("You are grading a mock-interview submission.\n")
	b.WriteString("Return ONLY a single valid JSON object matching this schema, with score as an integer from 0 to 100:\n")
	b.WriteString(evaluationSchema)
	b.WriteString("\n\nProblem (")
	b.WriteString(p.Type)
	b.WriteString(", ")
	b.WriteString(p.Difficulty)
	b.WriteString("): ")
	b.WriteString(p.Title)
	b.WriteString("\n")
	b.WriteString(p.Description)
	b.WriteString("\n\n")

	switch {
	case hasCode && hasDrawing:
		b.WriteString("The candidate submitted BOTH code and a design drawing. Analyse both: judge the code against the requirements, judge the drawing as the supporting architecture, and score the combined solution for consistency between the two.\n")
		b.WriteString("Candidate code:\n")
		b.WriteString(sub.Code)
		b.WriteString("\nThe drawing is attached as an image.\n")
	case hasCode:
		b.WriteString("Evaluate the candidate's code against the requirements, correctness, edge cases, and readability.\n")
		b.WriteString("Candidate code:\n")
		b.WriteString(sub.Code)
		b.WriteString("\n")
	default:
		b.WriteString("Evaluate the candidate's design drawing, attached as an image, against the problem's deliverables: component boundaries, data flow, and scalability concerns.\n")
	}
	return b.String(), nil
}

// BuildInsightsPrompt produces the instruction for company interview insights.
func BuildInsightsPrompt(company, role string) string {
	var b strings.Builder
	promptHeader(&b)
	b.WriteString(fmt.Sprintf("Describe the frontend-engineer interview process at %s for a %s candidate.\n", company, role))
	b.WriteString("Cover every round in order, with realistic durations and sample problems.\n")
	b.WriteString("The JSON object must match this schema exactly:\n")
	b.WriteString(insightsSchema)
	b.WriteString("\n")
	return b.String()
}
