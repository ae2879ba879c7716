package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devanshsoni09/prep-platform/internal/problem"
)

func TestSaveGeneratedRecordsTypeAndPayload(t *testing.T) {
	db := &fakeDB{}
	repo := NewProblemRepository(db)

	userID := uuid.New()
	env := problem.FallbackEnvelope(problem.TypeDSA, problem.DifficultyEasy)
	req := problem.GenerateRequest{InterviewType: "dsa", Difficulty: "easy"}

	require.NoError(t, repo.SaveGenerated(context.Background(), userID.String(), req, env, true))
	require.Len(t, db.statements, 1)
	assert.Contains(t, db.statements[0], "INSERT INTO generated_problems")

	args := db.args[0]
	require.NotNil(t, args[1])
	assert.Equal(t, userID, *(args[1].(*uuid.UUID)))
	assert.Equal(t, problem.TypeDSA, args[2])
	assert.Equal(t, true, args[5])

	var stored problem.Envelope
	require.NoError(t, json.Unmarshal(args[4].([]byte), &stored))
	require.NotNil(t, stored.DSA)
	assert.Equal(t, env.DSA.Title, stored.DSA.Title)
}

func TestSaveGeneratedAnonymousUser(t *testing.T) {
	db := &fakeDB{}
	repo := NewProblemRepository(db)

	env := problem.FallbackEnvelope(problem.TypeTheory, problem.DifficultyMedium)
	require.NoError(t, repo.SaveGenerated(context.Background(), "", problem.GenerateRequest{InterviewType: "theory"}, env, false))

	uid := db.args[0][1].(*uuid.UUID)
	assert.Nil(t, uid, "anonymous requests store a null user id")
}
