// Package progress tracks practice scores per user in Redis sorted sets,
// aggregated overall and per problem type.
package progress

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Entry is one user's standing on the progress board.
type Entry struct {
	UserID      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Score       int     `json:"score"`
	Attempts    int     `json:"attempts"`
	AvgScore    float64 `json:"avg_score"`
}

// Stats summarizes one user's practice history.
type Stats struct {
	UserID       string         `json:"user_id"`
	TotalScore   int            `json:"total_score"`
	Attempts     int            `json:"attempts"`
	AvgScore     float64        `json:"avg_score"`
	ScoreByType  map[string]int `json:"score_by_type"`
	AttemptsRank int64          `json:"rank"`
}

// RecordRequest captures one accepted evaluation.
type RecordRequest struct {
	UserID      string
	DisplayName string
	ProblemType string
	Score       int
}

// Service manages progress state in Redis.
type Service struct {
	redis  *redis.Client
	logger zerolog.Logger
	topN   int
	prefix string
}

// NewService constructs a progress service. topN caps Top queries.
func NewService(redis *redis.Client, logger zerolog.Logger, topN int) *Service {
	if topN <= 0 {
		topN = 50
	}
	return &Service{
		redis:  redis,
		logger: logger.With().Str("component", "progress").Logger(),
		topN:   topN,
		prefix: "progress",
	}
}

// Record adds an evaluation score to the user's aggregates.
func (s *Service) Record(ctx context.Context, req RecordRequest) error {
	if req.UserID == "" {
		return fmt.Errorf("user id is required")
	}

	zKey := s.boardKey()
	typeKey := s.typeKey(req.ProblemType)
	metaKey := s.metaKey(req.UserID)

	pipe := s.redis.TxPipeline()
	pipe.ZIncrBy(ctx, zKey, float64(req.Score), req.UserID)
	pipe.ZIncrBy(ctx, typeKey, float64(req.Score), req.UserID)
	pipe.HIncrBy(ctx, metaKey, "attempts", 1)
	pipe.HIncrBy(ctx, metaKey, "score_"+req.ProblemType, int64(req.Score))
	pipe.HSet(ctx, metaKey, map[string]interface{}{
		"display_name": req.DisplayName,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record progress: %w", err)
	}
	return nil
}

// Top retrieves the highest-scoring users overall.
func (s *Service) Top(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > s.topN {
		limit = s.topN
	}

	results, err := s.redis.ZRevRangeWithScores(ctx, s.boardKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch progress board: %w", err)
	}

	entries := make([]Entry, 0, len(results))
	for _, z := range results {
		userID := z.Member.(string)
		meta, err := s.redis.HGetAll(ctx, s.metaKey(userID)).Result()
		if err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("progress metadata read failed")
			continue
		}
		entry := Entry{
			UserID:      userID,
			DisplayName: meta["display_name"],
			Score:       int(z.Score),
			Attempts:    parseInt(meta["attempts"]),
		}
		if entry.Attempts > 0 {
			entry.AvgScore = float64(entry.Score) / float64(entry.Attempts)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// UserStats returns one user's aggregates and rank.
func (s *Service) UserStats(ctx context.Context, userID string) (*Stats, error) {
	score, err := s.redis.ZScore(ctx, s.boardKey(), userID).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("fetch progress score: %w", err)
	}

	meta, err := s.redis.HGetAll(ctx, s.metaKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch progress metadata: %w", err)
	}

	stats := &Stats{
		UserID:      userID,
		TotalScore:  int(score),
		Attempts:    parseInt(meta["attempts"]),
		ScoreByType: map[string]int{},
	}
	for field, val := range meta {
		if t, ok := strings.CutPrefix(field, "score_"); ok && t != "" {
			stats.ScoreByType[t] = parseInt(val)
		}
	}
	if stats.Attempts > 0 {
		stats.AvgScore = float64(stats.TotalScore) / float64(stats.Attempts)
	}

	rank, err := s.redis.ZRevRank(ctx, s.boardKey(), userID).Result()
	if err == nil {
		stats.AttemptsRank = rank + 1
	} else if err != redis.Nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("progress rank read failed")
	}
	return stats, nil
}

func (s *Service) boardKey() string {
	return s.prefix + ":overall"
}

func (s *Service) typeKey(problemType string) string {
	return fmt.Sprintf("%s:type:%s", s.prefix, problemType)
}

func (s *Service) metaKey(userID string) string {
	return fmt.Sprintf("%s:meta:%s", s.prefix, userID)
}

func parseInt(val string) int {
	if val == "" {
		return 0
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return i
}
