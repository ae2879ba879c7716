package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/devanshsoni09/prep-platform/internal/metrics"
	"github.com/devanshsoni09/prep-platform/internal/problem"
)

// Service is the read-through gateway in front of the insights cache. A hit
// is returned unchanged; a miss generates, caches best-effort, and returns.
// Concurrent misses may each generate; the last write wins.
type Service struct {
	gen    problem.TextGenerator
	store  Store
	logger zerolog.Logger
}

// NewService wires the gateway. gen may be nil for offline mode.
func NewService(gen problem.TextGenerator, store Store, logger zerolog.Logger) *Service {
	return &Service{
		gen:    gen,
		store:  store,
		logger: logger.With().Str("component", "insights").Logger(),
	}
}

// Get returns insights for a company and role, generating them on a cache
// miss. Cache read failures are logged and treated as misses so the request
// still succeeds.
func (s *Service) Get(ctx context.Context, company, role string) (*Entry, error) {
	company = strings.TrimSpace(company)
	role = strings.TrimSpace(role)
	if company == "" {
		return nil, fmt.Errorf("company is required")
	}
	if role == "" {
		return nil, fmt.Errorf("role is required")
	}

	if s.store != nil {
		entry, err := s.store.Get(ctx, company, role)
		if err != nil {
			s.logger.Warn().Err(err).Str("company", company).Msg("insights cache read failed")
		} else if entry != nil {
			metrics.InsightsCacheHits.Inc()
			return entry, nil
		}
	}
	metrics.InsightsCacheMisses.Inc()
	return s.regenerate(ctx, company, role)
}

// Refresh regenerates insights unconditionally and overwrites the cache,
// even when a cached entry exists.
func (s *Service) Refresh(ctx context.Context, company, role string) (*Entry, error) {
	company = strings.TrimSpace(company)
	role = strings.TrimSpace(role)
	if company == "" {
		return nil, fmt.Errorf("company is required")
	}
	if role == "" {
		return nil, fmt.Errorf("role is required")
	}
	return s.regenerate(ctx, company, role)
}

// regenerate builds a fresh entry. Substituted samples are never written to
// the cache, so a transient generation failure cannot pin canned content
// under a key; the next request tries the model again.
func (s *Service) regenerate(ctx context.Context, company, role string) (*Entry, error) {
	data, sample := s.generate(ctx, company, role)
	entry := &Entry{
		CompanyName: company,
		RoleLevel:   role,
		Data:        data,
		UpdatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if s.store != nil && !sample {
		if err := s.store.Set(ctx, *entry); err != nil {
			s.logger.Warn().Err(err).Str("company", company).Msg("insights cache write failed")
		}
	}
	return entry, nil
}

// generate asks the model for insights and falls back to the sample payload
// when the reply is unusable or no generator is configured. The bool reports
// whether the sample was substituted.
func (s *Service) generate(ctx context.Context, company, role string) (Data, bool) {
	if s.gen == nil {
		return SampleData(company), true
	}
	raw, err := s.gen.GenerateText(ctx, problem.BuildInsightsPrompt(company, role))
	if err != nil {
		s.logger.Warn().Err(err).Str("company", company).Msg("insights generation failed, serving sample")
		return SampleData(company), true
	}
	obj, err := problem.ExtractJSONObject(raw)
	if err != nil {
		s.logger.Warn().Err(err).Str("company", company).Msg("insights reply had no JSON object, serving sample")
		return SampleData(company), true
	}

	var probe struct {
		Rounds json.RawMessage `json:"rounds"`
	}
	if err := json.Unmarshal(obj, &probe); err != nil || len(probe.Rounds) == 0 || probe.Rounds[0] != '[' {
		s.logger.Warn().Str("company", company).Msg("insights reply missing rounds array, serving sample")
		return SampleData(company), true
	}

	var data Data
	if err := json.Unmarshal(obj, &data); err != nil || len(data.Rounds) == 0 {
		s.logger.Warn().Err(err).Str("company", company).Msg("insights reply failed shape check, serving sample")
		return SampleData(company), true
	}
	if data.TotalRounds == 0 {
		data.TotalRounds = len(data.Rounds)
	}
	return data, false
}

// SampleData is the deterministic payload served when generation is
// unavailable. It reflects a typical frontend interview loop.
func SampleData(company string) Data {
	return Data{
		TotalRounds:       4,
		EstimatedDuration: "3-4 weeks",
		Rounds: []Round{
			{
				Name:               "Online Screen",
				Description:        "A timed coding screen with one or two JavaScript problems.",
				SampleProblems:     []string{"Implement debounce", "Flatten a nested object"},
				Duration:           "60 minutes",
				FocusAreas:         []string{"JavaScript fundamentals", "problem solving"},
				EvaluationCriteria: []string{"Correctness", "code clarity"},
				Difficulty:         "medium",
				Tips:               []string{"Talk through your approach before coding."},
			},
			{
				Name:               "Machine Coding",
				Description:        "Build a small UI component live with an interviewer.",
				SampleProblems:     []string{"Typeahead search", "Star-rating widget"},
				Duration:           "90 minutes",
				FocusAreas:         []string{"Component design", "state management", "accessibility"},
				EvaluationCriteria: []string{"Working solution", "edge-case handling"},
				Difficulty:         "medium",
				Tips:               []string{"Start with a minimal working version, then iterate."},
			},
			{
				Name:               "Frontend System Design",
				Description:        "Design the architecture of a large frontend application.",
				SampleProblems:     []string{"Design a photo-sharing feed", "Design a collaborative editor"},
				Duration:           "60 minutes",
				FocusAreas:         []string{"Data flow", "caching", "performance"},
				EvaluationCriteria: []string{"Trade-off reasoning", "scalability awareness"},
				Difficulty:         "hard",
				Tips:               []string{"Clarify requirements and scale before drawing boxes."},
			},
			{
				Name:               "Behavioral",
				Description:        "Past projects, collaboration, and conflict resolution.",
				SampleProblems:     []string{"Tell me about a project you led"},
				Duration:           "45 minutes",
				FocusAreas:         []string{"Ownership", "communication"},
				EvaluationCriteria: []string{"Structured answers", "concrete examples"},
				Difficulty:         "easy",
				Tips:               []string{"Prepare stories in the situation-task-action-result format."},
			},
		},
		OverallTips: []string{
			"Practice coding in the browser without an IDE.",
			"Review the company's public engineering blog beforehand.",
		},
		CompanySpecificNotes: fmt.Sprintf("Process details for %s were unavailable; this is a typical frontend loop.", company),
	}
}
