package insights

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	reply string
	err   error
	calls int
}

func (s *stubGenerator) GenerateText(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func (s *stubGenerator) GenerateWithImage(_ context.Context, _ string, _ []byte, _ string) (string, error) {
	return "", errors.New("not used")
}

type memoryStore struct {
	entries map[string]Entry
	getErr  error
	setErr  error
	sets    int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: map[string]Entry{}}
}

func (m *memoryStore) key(company, role string) string {
	return company + ":" + role
}

func (m *memoryStore) Get(_ context.Context, company, role string) (*Entry, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if e, ok := m.entries[m.key(company, role)]; ok {
		return &e, nil
	}
	return nil, nil
}

func (m *memoryStore) Set(_ context.Context, entry Entry) error {
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	m.entries[m.key(entry.CompanyName, entry.RoleLevel)] = entry
	return nil
}

const validReply = `{"totalRounds": 2, "estimatedDuration": "2 weeks", "rounds": [{"name": "Screen", "duration": "1h", "difficulty": "medium"}, {"name": "Onsite", "duration": "4h", "difficulty": "hard"}], "overallTips": ["prepare"], "companySpecificNotes": "notes"}`

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func TestGetMissThenHit(t *testing.T) {
	gen := &stubGenerator{reply: validReply}
	store := newMemoryStore()
	svc := NewService(gen, store, testLogger())

	first, err := svc.Get(context.Background(), "Acme", "senior")
	require.NoError(t, err)
	assert.Equal(t, 2, first.Data.TotalRounds)
	assert.Equal(t, 1, gen.calls)

	second, err := svc.Get(context.Background(), "Acme", "senior")
	require.NoError(t, err)
	assert.Equal(t, 1, gen.calls, "hit must not regenerate")
	assert.Equal(t, first.Data, second.Data)
}

func TestGetKeysAreExactStrings(t *testing.T) {
	gen := &stubGenerator{reply: validReply}
	store := newMemoryStore()
	svc := NewService(gen, store, testLogger())

	_, err := svc.Get(context.Background(), "Google", "senior")
	require.NoError(t, err)
	_, err = svc.Get(context.Background(), "google", "senior")
	require.NoError(t, err)
	assert.Equal(t, 2, gen.calls, "case-variant companies are distinct entries")
}

func TestRefreshAlwaysRegenerates(t *testing.T) {
	gen := &stubGenerator{reply: validReply}
	store := newMemoryStore()
	svc := NewService(gen, store, testLogger())

	_, err := svc.Get(context.Background(), "Acme", "mid")
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), "Acme", "mid")
	require.NoError(t, err)
	assert.Equal(t, 2, gen.calls, "refresh bypasses the cached entry")
	assert.Equal(t, 2, store.sets, "refresh overwrites the cache")
}

func TestGetRequiresCompanyAndRole(t *testing.T) {
	svc := NewService(nil, newMemoryStore(), testLogger())

	_, err := svc.Get(context.Background(), "", "senior")
	assert.ErrorContains(t, err, "company")

	_, err = svc.Get(context.Background(), "Acme", "  ")
	assert.ErrorContains(t, err, "role")
}

func TestCacheWriteFailureIsSwallowed(t *testing.T) {
	gen := &stubGenerator{reply: validReply}
	store := newMemoryStore()
	store.setErr = errors.New("redis down")
	svc := NewService(gen, store, testLogger())

	entry, err := svc.Get(context.Background(), "Acme", "senior")
	require.NoError(t, err, "write failure must not fail the request")
	assert.Equal(t, 2, entry.Data.TotalRounds)
}

func TestCacheReadFailureTreatedAsMiss(t *testing.T) {
	gen := &stubGenerator{reply: validReply}
	store := newMemoryStore()
	store.getErr = errors.New("redis down")
	svc := NewService(gen, store, testLogger())

	entry, err := svc.Get(context.Background(), "Acme", "senior")
	require.NoError(t, err)
	assert.Equal(t, 1, gen.calls)
	assert.NotNil(t, entry)
}

func TestBadReplyServesSample(t *testing.T) {
	gen := &stubGenerator{reply: `{"totalRounds": 3, "rounds": "not an array"}`}
	store := newMemoryStore()
	svc := NewService(gen, store, testLogger())

	entry, err := svc.Get(context.Background(), "Acme", "senior")
	require.NoError(t, err)
	assert.NotEmpty(t, entry.Data.Rounds, "sample payload substituted")
	assert.Contains(t, entry.Data.CompanySpecificNotes, "Acme")
	assert.Zero(t, store.sets, "substituted samples are not cached")
}

func TestOfflineServesSample(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(nil, store, testLogger())

	entry, err := svc.Get(context.Background(), "Acme", "junior")
	require.NoError(t, err)
	assert.NotEmpty(t, entry.Data.Rounds)
	assert.Zero(t, store.sets, "sample content never occupies a cache key")
}

func TestTransientFailureDoesNotPinSample(t *testing.T) {
	gen := &stubGenerator{err: errors.New("gemini unavailable")}
	store := newMemoryStore()
	svc := NewService(gen, store, testLogger())

	first, err := svc.Get(context.Background(), "Acme", "senior")
	require.NoError(t, err)
	assert.Contains(t, first.Data.CompanySpecificNotes, "unavailable", "sample served while the model is down")
	assert.Zero(t, store.sets)

	gen.err = nil
	gen.reply = validReply

	second, err := svc.Get(context.Background(), "Acme", "senior")
	require.NoError(t, err)
	assert.Equal(t, 2, gen.calls, "next request retries generation instead of hitting a cached sample")
	assert.Equal(t, 2, second.Data.TotalRounds, "real content replaces the sample once the model recovers")
	assert.Equal(t, 1, store.sets)
}
