package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/devanshsoni09/prep-platform/internal/problem"
)

// ProblemRepository keeps an audit trail of generated problems.
type ProblemRepository struct {
	db DBTX
}

func NewProblemRepository(db DBTX) *ProblemRepository {
	return &ProblemRepository{db: db}
}

var _ problem.GeneratedStore = (*ProblemRepository)(nil)

// SaveGenerated records one generated problem with its request parameters.
// userID may be empty for unauthenticated requests.
func (r *ProblemRepository) SaveGenerated(ctx context.Context, userID string, req problem.GenerateRequest, env problem.Envelope, fallback bool) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal problem: %w", err)
	}
	request, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	var uid *uuid.UUID
	if userID != "" {
		parsed, err := uuid.Parse(userID)
		if err == nil {
			uid = &parsed
		}
	}

	const q = `
		INSERT INTO generated_problems (problem_id, user_id, problem_type, request, payload, is_fallback, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())`

	if _, err := r.db.Exec(ctx, q, uuid.New(), uid, env.Type(), request, payload, fallback); err != nil {
		return fmt.Errorf("save generated problem: %w", err)
	}
	return nil
}
