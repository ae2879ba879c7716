package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/devanshsoni09/prep-platform/internal/problem"
)

// SubmissionRepository persists submissions with their evaluations.
type SubmissionRepository struct {
	db DBTX
}

func NewSubmissionRepository(db DBTX) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

var _ problem.SubmissionStore = (*SubmissionRepository)(nil)

// SaveSubmission records one evaluated submission. The drawing bytes are
// stored alongside the code so past attempts can be reviewed.
func (r *SubmissionRepository) SaveSubmission(ctx context.Context, userID string, sub problem.Submission, eval problem.Evaluation) error {
	evalJSON, err := json.Marshal(eval)
	if err != nil {
		return fmt.Errorf("marshal evaluation: %w", err)
	}

	var uid *uuid.UUID
	if userID != "" {
		parsed, err := uuid.Parse(userID)
		if err == nil {
			uid = &parsed
		}
	}

	const q = `
		INSERT INTO submissions (submission_id, user_id, problem_id, code, drawing, drawing_mime, score, evaluation, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())`

	if _, err := r.db.Exec(ctx, q, uuid.New(), uid, sub.ProblemID, sub.Code, sub.Drawing, sub.DrawingMIME, eval.Score, evalJSON); err != nil {
		return fmt.Errorf("save submission: %w", err)
	}
	return nil
}
