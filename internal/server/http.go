package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/devanshsoni09/prep-platform/internal/auth"
	"github.com/devanshsoni09/prep-platform/internal/config"
)

// WSUpgrader handles WebSocket upgrades (configure CORS/security as needed).
var WSUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: implement proper origin checking for production
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Handlers collects the route handlers wired by the app bootstrap. Nil
// entries leave their routes unregistered.
type Handlers struct {
	Auth            *auth.HTTPHandlers
	AuthMiddleware  func(http.Handler) http.Handler
	GenerateProblem http.HandlerFunc
	InsightsGet     http.HandlerFunc
	InsightsRefresh http.HandlerFunc
	MockProblem     http.HandlerFunc
	MockEvaluate    http.HandlerFunc
	InterviewWS     http.HandlerFunc
	ProgressTop     http.HandlerFunc
	ProgressMe      http.HandlerFunc
}

// NewHTTPServer wires all routes for the API service.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, redis *redis.Client, h Handlers) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		if err := pingDependencies(r.Context(), pool, redis); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			http.Error(w, "upstream error", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	withAuth := func(fn http.HandlerFunc) http.Handler {
		var handler http.Handler = fn
		if h.AuthMiddleware != nil {
			handler = h.AuthMiddleware(handler)
		}
		return handler
	}
	protected := func(fn http.HandlerFunc) http.Handler {
		return withAuth(func(w http.ResponseWriter, r *http.Request) {
			auth.RequireAuth(fn).ServeHTTP(w, r)
		})
	}

	if h.Auth != nil {
		mux.HandleFunc("/v1/auth/register", h.Auth.Register)
		mux.HandleFunc("/v1/auth/login", h.Auth.Login)
		mux.HandleFunc("/v1/auth/refresh", h.Auth.RefreshToken)
		mux.Handle("/v1/users/me", protected(h.Auth.GetMe))
	}

	if h.GenerateProblem != nil {
		mux.Handle("/v1/problems/generate", withAuth(h.GenerateProblem))
	}
	if h.InsightsGet != nil {
		mux.Handle("/v1/insights", withAuth(h.InsightsGet))
	}
	if h.InsightsRefresh != nil {
		mux.Handle("/v1/insights/refresh", withAuth(h.InsightsRefresh))
	}
	if h.MockProblem != nil {
		mux.Handle("/v1/interviews/mock/problem", withAuth(h.MockProblem))
	}
	if h.MockEvaluate != nil {
		mux.Handle("/v1/interviews/mock/evaluate", withAuth(h.MockEvaluate))
	}
	if h.InterviewWS != nil {
		mux.HandleFunc("/ws/interviews", h.InterviewWS)
	}
	if h.ProgressTop != nil {
		mux.Handle("/v1/progress/top", withAuth(h.ProgressTop))
	}
	if h.ProgressMe != nil {
		mux.Handle("/v1/progress/me", protected(h.ProgressMe))
	}

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: corsMiddleware(cfg.CORS, mux),
	}
}

// corsMiddleware applies the configured CORS policy and answers preflights.
func corsMiddleware(cfg config.CORS, next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		allowed[origin] = true
	}
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			if cfg.AllowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
		}
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", methods)
			w.Header().Set("Access-Control-Allow-Headers", headers)
			w.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func pingDependencies(ctx context.Context, pool *pgxpool.Pool, redis *redis.Client) error {
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	if err := redis.Ping(ctx).Err(); err != nil {
		return err
	}
	return nil
}
