// Package glossary maintains the source→target term mapping carried across
// a whole book. One Store is owned by exactly one engine instance; the lock
// only guards the read-for-prompt vs merge-from-refresh race inside it.
package glossary

import (
	"sort"
	"strings"
	"sync"
)

// ReservedPrefix marks bookkeeping entries (e.g. "_comment" in profile
// seeds). Keys carrying it are never stored and never rendered.
const ReservedPrefix = "_"

const (
	maxKeyLen   = 100
	maxValueLen = 200
)

// Store is a mutex-guarded term mapping.
type Store struct {
	mu    sync.Mutex
	terms map[string]string
}

func NewStore() *Store {
	return &Store{terms: make(map[string]string)}
}

// Seed loads profile seed entries, dropping the reserved comment key.
// Unlike Merge it applies no length filtering: seed files are trusted input.
func (s *Store) Seed(seed map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range seed {
		if strings.HasPrefix(k, ReservedPrefix) {
			continue
		}
		s.terms[k] = v
	}
}

// Merge adds extracted term pairs, keeping only plausible entries: both
// sides non-empty, key < 100 chars, value < 200 chars, key not reserved.
// Re-merging a key overwrites its value, so the operation is idempotent.
// It returns the number of entries applied.
func (s *Store) Merge(pairs map[string]string) int {
	applied := 0
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range pairs {
		if k == "" || v == "" {
			continue
		}
		if len(k) >= maxKeyLen || len(v) >= maxValueLen {
			continue
		}
		if strings.HasPrefix(k, ReservedPrefix) {
			continue
		}
		s.terms[k] = v
		applied++
	}
	return applied
}

// Len returns the number of stored terms.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.terms)
}

// Format renders up to limit entries as "  src → tgt" lines, sorted
// alphabetically by source term. Reserved-prefix keys are skipped even if
// present in the underlying map. Returns "" when there is nothing to show.
func (s *Store) Format(limit int) string {
	s.mu.Lock()
	keys := make([]string, 0, len(s.terms))
	for k := range s.terms {
		if strings.HasPrefix(k, ReservedPrefix) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, "  "+k+" → "+s.terms[k])
	}
	s.mu.Unlock()

	if limit > 0 && len(lines) > limit {
		lines = lines[:limit]
	}
	return strings.Join(lines, "\n")
}
