package lead

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"questio/internal/types"
)

func sampleAnswers() types.Answers {
	return types.Answers{
		Tier:               types.TierMid,
		TargetUniversities: []string{"건국대", "", ""},
		CSATSubject:        types.SubjectCalculus,
		StudyScope:         []string{types.ScopeMath1, types.ScopeMath2},
		SolvingStyle:       types.StyleComputation,
		WritingConcern:     types.ConcernTime,
	}
}

func TestNormalizeContact(t *testing.T) {
	got, err := NormalizeContact("  Kim <Kim@Example.com> ")
	require.NoError(t, err)
	assert.Equal(t, "kim@example.com", got)

	for _, bad := range []string{"", "   ", "010-1234-5678", "kim@", "@example.com"} {
		_, err := NormalizeContact(bad)
		assert.ErrorIs(t, err, ErrInvalidContact, bad)
	}
}

func TestServiceRecordsIntoStore(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store)
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	a := sampleAnswers()
	require.NoError(t, svc.Record(context.Background(), "kim@example.com", a))
	a.TargetUniversities[0] = "mutated"

	recs, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.NotEmpty(t, recs[0].ID)
	assert.Equal(t, "kim@example.com", recs[0].Contact)
	assert.Equal(t, "건국대", recs[0].Answers.TargetUniversities[0])
	assert.Equal(t, fixed, recs[0].CreatedAt)
}

func TestServiceRejectsBadContactWithoutWriting(t *testing.T) {
	store := NewMemoryStore()
	err := NewService(store).Record(context.Background(), "not-an-email", sampleAnswers())
	assert.ErrorIs(t, err, ErrInvalidContact)

	recs, _ := store.List(context.Background())
	assert.Empty(t, recs)
}

type failingStore struct{ MemoryStore }

func (f *failingStore) Append(context.Context, Record) error { return errors.New("disk full") }

func TestServiceWrapsStoreErrors(t *testing.T) {
	err := NewService(&failingStore{}).Record(context.Background(), "kim@example.com", sampleAnswers())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NotErrorIs(t, err, ErrInvalidContact)
}

func TestSQLiteStoreAppendOnlyRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "leads.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	svc := NewService(store)
	ctx := context.Background()
	require.NoError(t, svc.Record(ctx, "a@example.com", sampleAnswers()))
	require.NoError(t, svc.Record(ctx, "b@example.com", sampleAnswers()))

	recs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "a@example.com", recs[0].Contact)
	assert.Equal(t, "b@example.com", recs[1].Contact)
	assert.Equal(t, sampleAnswers(), recs[0].Answers)
	assert.False(t, recs[0].CreatedAt.IsZero())

	// Reopen: records survive.
	require.NoError(t, store.Close())
	again, err := NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = again.Close() })
	recs, err = again.List(ctx)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestSQLiteStoreRequiresPath(t *testing.T) {
	_, err := NewSQLiteStore(" ")
	assert.Error(t, err)
}
