package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"questio/internal/result"
	"questio/internal/types"
)

func TestLRUStorePutGet(t *testing.T) {
	s := NewLRUStore(Config{})
	res := result.Compose(nil, types.AnalysisSummary{PersonaName: "p"})
	a := types.Answers{TargetUniversities: []string{"연세대"}}

	s.Put(State{ID: " abc ", Answers: a, Result: res})
	a.TargetUniversities[0] = "changed"

	got, ok := s.Get("abc")
	require.True(t, ok)
	assert.Equal(t, "abc", got.ID)
	assert.Equal(t, "연세대", got.Answers.TargetUniversities[0])
	assert.Same(t, res, got.Result)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestLRUStoreIgnoresBlankID(t *testing.T) {
	s := NewLRUStore(Config{})
	s.Put(State{ID: "  "})
	assert.Equal(t, 0, s.Len())
}

func TestLRUStoreEvictsOldest(t *testing.T) {
	s := NewLRUStore(Config{MaxEntries: 2, TTL: time.Hour})
	s.Put(State{ID: "a"})
	s.Put(State{ID: "b"})
	s.Put(State{ID: "c"})

	_, ok := s.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 2, s.Len())
}

func TestLRUStoreExpires(t *testing.T) {
	s := NewLRUStore(Config{MaxEntries: 4, TTL: 20 * time.Millisecond})
	s.Put(State{ID: "a"})
	require.Eventually(t, func() bool {
		_, ok := s.Get("a")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestNilStore(t *testing.T) {
	var s *LRUStore
	s.Put(State{ID: "a"})
	_, ok := s.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}
