// Package session keeps per-session questionnaire state in memory. Nothing
// outlives the process; entries expire after the configured TTL.
package session

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"questio/internal/result"
	"questio/internal/types"
)

type State struct {
	ID        string
	Answers   types.Answers
	Result    *result.Result
	CreatedAt time.Time
}

type Store interface {
	Put(st State)
	Get(id string) (State, bool)
	Len() int
}

type Config struct {
	MaxEntries int
	TTL        time.Duration
}

func DefaultConfig() Config {
	return Config{MaxEntries: 1024, TTL: 2 * time.Hour}
}

type LRUStore struct {
	cache *expirable.LRU[string, State]
}

func NewLRUStore(cfg Config) *LRUStore {
	def := DefaultConfig()
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = def.MaxEntries
	}
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	return &LRUStore{cache: expirable.NewLRU[string, State](cfg.MaxEntries, nil, cfg.TTL)}
}

func (s *LRUStore) Put(st State) {
	if s == nil || s.cache == nil {
		return
	}
	id := strings.TrimSpace(st.ID)
	if id == "" {
		return
	}
	st.ID = id
	st.Answers = st.Answers.Clone()
	s.cache.Add(id, st)
}

func (s *LRUStore) Get(id string) (State, bool) {
	if s == nil || s.cache == nil {
		return State{}, false
	}
	return s.cache.Get(strings.TrimSpace(id))
}

func (s *LRUStore) Len() int {
	if s == nil || s.cache == nil {
		return 0
	}
	return s.cache.Len()
}
