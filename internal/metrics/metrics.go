// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GenerationsTotal counts problem-generation attempts by problem type.
	GenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prep_generations_total",
		Help: "Problem generation attempts by problem type.",
	}, []string{"type"})

	// GenerationFallbacksTotal counts fallback substitutions by type and
	// reason (upstream_error, malformed, schema_violation, offline).
	GenerationFallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prep_generation_fallbacks_total",
		Help: "Fallback content substitutions by problem type and reason.",
	}, []string{"type", "reason"})

	// EvaluationsTotal counts submission evaluations by outcome
	// (ok, fallback).
	EvaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prep_evaluations_total",
		Help: "Submission evaluations by outcome.",
	}, []string{"outcome"})

	// InsightsCacheHits counts insights served from cache.
	InsightsCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prep_insights_cache_hits_total",
		Help: "Insights requests served from cache.",
	})

	// InsightsCacheMisses counts insights requests that regenerated content.
	InsightsCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prep_insights_cache_misses_total",
		Help: "Insights requests that required generation.",
	})
)
