package engine

import (
	"fmt"
	"sync"

	"github.com/oukeidos/litra/internal/llm"
	"github.com/oukeidos/litra/internal/logger"
	"github.com/oukeidos/litra/internal/metadata"
)

// stats holds the engine's monotonically increasing counters. The mutex
// only protects counter updates against a future parallel refresh; the
// engine itself stays single-stream.
type stats struct {
	mu sync.Mutex

	usage    llm.Usage
	requests int

	chunks           int
	pass1Only        int
	full3Pass        int
	reviewsOK        int
	reviewsFixed     int
	glossaryFailures int
}

func (s *stats) nextChunk() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks++
	return s.chunks
}

func (s *stats) countMode(mode Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mode == ModePass1Only {
		s.pass1Only++
	} else {
		s.full3Pass++
	}
}

func (s *stats) countReview(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		s.reviewsOK++
	} else {
		s.reviewsFixed++
	}
}

func (s *stats) addUsage(u llm.Usage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usage.InputTokens += u.InputTokens
	s.usage.OutputTokens += u.OutputTokens
	s.usage.CacheReadTokens += u.CacheReadTokens
	s.usage.CacheCreationTokens += u.CacheCreationTokens
	s.requests++
}

func (s *stats) countGlossaryFailure() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.glossaryFailures++
	return s.glossaryFailures
}

// Stats is a point-in-time snapshot of one engine's counters.
type Stats struct {
	Model   string
	Profile string

	Requests int
	Usage    llm.Usage

	Chunks           int
	Pass1Only        int
	Full3Pass        int
	ReviewsOK        int
	ReviewsFixed     int
	GlossaryTerms    int
	GlossaryFailures int

	Cost        float64
	CostNoCache float64
}

// Stats returns the current snapshot, including the cost estimate for the
// configured model.
func (e *Engine) Stats() Stats {
	e.stats.mu.Lock()
	snapshot := Stats{
		Model:            e.client.ModelID(),
		Profile:          e.prof.Name,
		Requests:         e.stats.requests,
		Usage:            e.stats.usage,
		Chunks:           e.stats.chunks,
		Pass1Only:        e.stats.pass1Only,
		Full3Pass:        e.stats.full3Pass,
		ReviewsOK:        e.stats.reviewsOK,
		ReviewsFixed:     e.stats.reviewsFixed,
		GlossaryFailures: e.stats.glossaryFailures,
	}
	e.stats.mu.Unlock()

	snapshot.GlossaryTerms = e.glossary.Len()
	snapshot.Cost, snapshot.CostNoCache = metadata.CostEstimate(snapshot.Usage, snapshot.Model)
	return snapshot
}

// LogFinalStats writes the run summary. It logs nothing when no request
// was made, so aborted runs stay quiet.
func (e *Engine) LogFinalStats() {
	s := e.Stats()
	if s.Requests == 0 {
		return
	}

	args := []any{
		"profile", s.Profile,
		"model", s.Model,
		"chunks", s.Chunks,
		"requests", s.Requests,
		"input_tokens", s.Usage.InputTokens,
		"output_tokens", s.Usage.OutputTokens,
		"pass1_only", s.Pass1Only,
		"full_3pass", s.Full3Pass,
		"reviews_ok", s.ReviewsOK,
		"reviews_fixed", s.ReviewsFixed,
		"glossary_terms", s.GlossaryTerms,
		"cost_usd", fmt.Sprintf("%.2f", s.Cost),
	}
	if s.Usage.CacheReadTokens > 0 {
		hitRate := float64(s.Usage.CacheReadTokens) / float64(max(1, s.Usage.InputTokens)) * 100
		args = append(args,
			"cache_read_tokens", s.Usage.CacheReadTokens,
			"cache_write_tokens", s.Usage.CacheCreationTokens,
			"cache_hit_pct", fmt.Sprintf("%.0f", hitRate),
			"cache_saved_usd", fmt.Sprintf("%.2f", s.CostNoCache-s.Cost),
		)
	}
	if s.GlossaryFailures > 0 {
		args = append(args, "glossary_failures", s.GlossaryFailures)
	}
	logger.Info("Translation complete", args...)
}
