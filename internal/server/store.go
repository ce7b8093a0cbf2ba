package server

import (
	"sync"

	"github.com/ziadkadry99/navchart/internal/build"
)

// Store holds the build the server is currently showing. A rebuild replaces the whole
// result, so a reader sees either the old tree or the new one.
type Store struct {
	mu  sync.RWMutex
	cur *build.Result
}

// NewStore returns a store holding res, which may be nil until the first build finishes.
func NewStore(res *build.Result) *Store {
	return &Store{cur: res}
}

// Current returns the latest build or nil.
func (s *Store) Current() *build.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Set swaps in a new build.
func (s *Store) Set(res *build.Result) {
	s.mu.Lock()
	s.cur = res
	s.mu.Unlock()
}
