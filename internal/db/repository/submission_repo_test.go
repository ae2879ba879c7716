package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devanshsoni09/prep-platform/internal/problem"
)

func TestSaveSubmissionStoresEvaluation(t *testing.T) {
	db := &fakeDB{}
	repo := NewSubmissionRepository(db)

	userID := uuid.New()
	sub := problem.Submission{
		ProblemID:   "p1",
		Code:        "const x = 1",
		Drawing:     []byte{1, 2, 3},
		DrawingMIME: "image/png",
	}
	eval := problem.Evaluation{ProblemID: "p1", Score: 88, Feedback: "solid"}

	require.NoError(t, repo.SaveSubmission(context.Background(), userID.String(), sub, eval))
	require.Len(t, db.statements, 1)
	assert.Contains(t, db.statements[0], "INSERT INTO submissions")

	args := db.args[0]
	assert.Equal(t, userID, *(args[1].(*uuid.UUID)))
	assert.Equal(t, "p1", args[2])
	assert.Equal(t, "const x = 1", args[3])
	assert.Equal(t, []byte{1, 2, 3}, args[4])
	assert.Equal(t, 88, args[6])

	var stored problem.Evaluation
	require.NoError(t, json.Unmarshal(args[7].([]byte), &stored))
	assert.Equal(t, "solid", stored.Feedback)
}

func TestSaveSubmissionExecFailure(t *testing.T) {
	db := &fakeDB{execErr: errors.New("connection reset")}
	repo := NewSubmissionRepository(db)

	err := repo.SaveSubmission(context.Background(), "", problem.Submission{ProblemID: "p1", Code: "x"}, problem.Evaluation{ProblemID: "p1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save submission")
}
