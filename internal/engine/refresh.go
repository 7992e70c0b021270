package engine

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/oukeidos/litra/internal/apperrors"
	"github.com/oukeidos/litra/internal/logger"
	"github.com/oukeidos/litra/internal/prompt"
)

// Logging of repeated glossary failures is rate-limited: detail for the
// first few, then one suppression notice.
const glossaryFailureLogLimit = 5

// maybeRefreshState runs the periodic context and glossary refreshes.
// Both are best-effort: any failure is surfaced as an event and logged,
// never propagated, so a broken refresh cannot lose a translated chunk.
// Refresh prompts vary on every call, so prompt caching is pointless and
// stays off here.
func (e *Engine) maybeRefreshState(ctx context.Context, chunk int, original, translation string) {
	if e.contextEnabled && intervalDue(chunk, e.prof.ContextUpdateInterval) {
		e.refreshContext(ctx, chunk, original, translation)
	}
	if intervalDue(chunk, e.prof.GlossaryUpdateInterval) {
		e.refreshGlossary(ctx, chunk, original, translation)
	}
}

func intervalDue(chunk, interval int) bool {
	return interval > 0 && chunk%interval == 0
}

func (e *Engine) refreshContext(ctx context.Context, chunk int, original, translation string) {
	system := prompt.ContextSystem(e.tgtLang)
	user := prompt.ContextUser(e.contextSummary, original, translation)

	summary, err := e.call(ctx, system, user, contextTemperature, contextMaxTokens, false)
	if err != nil {
		e.emit(Event{Kind: EventContextRefreshFailed, Chunk: chunk, Err: err})
		logger.Warn("Context refresh failed, keeping previous summary",
			"chunk", chunk, "error", apperrors.PublicMessage(err))
		return
	}
	e.contextSummary = strings.TrimSpace(summary)
}

func (e *Engine) refreshGlossary(ctx context.Context, chunk int, original, translation string) {
	system := prompt.GlossarySystem(e.tgtLang)
	user := prompt.GlossaryUser(e.srcLang, e.tgtLang, original, translation)

	resp, err := e.call(ctx, system, user, glossaryTemperature, glossaryMaxTokens, false)
	if err != nil {
		e.glossaryRefreshFailed(chunk, err)
		return
	}

	pairs, err := parseTermPairs(resp)
	if err != nil {
		e.glossaryRefreshFailed(chunk, err)
		return
	}

	if applied := e.glossary.Merge(pairs); applied > 0 {
		logger.Debug("Glossary updated", "chunk", chunk, "added", applied, "total", e.glossary.Len())
	}
}

func (e *Engine) glossaryRefreshFailed(chunk int, err error) {
	failures := e.stats.countGlossaryFailure()
	e.emit(Event{Kind: EventGlossaryRefreshFailed, Chunk: chunk, Err: err})

	if failures <= glossaryFailureLogLimit {
		logger.Warn("Glossary refresh failed, glossary unchanged",
			"chunk", chunk, "error", apperrors.PublicMessage(err))
	} else if failures == glossaryFailureLogLimit+1 {
		logger.Warn("Suppressing further glossary refresh warnings")
	}
}

// parseTermPairs decodes the extraction response: an optional markdown
// code fence around a JSON object of string-to-string pairs. Non-string
// values are dropped; shape errors are returned for failure accounting.
func parseTermPairs(resp string) (map[string]string, error) {
	resp = stripCodeFence(resp)

	var raw map[string]any
	if err := json.Unmarshal([]byte(resp), &raw); err != nil {
		return nil, err
	}

	pairs := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			pairs[k] = s
		}
	}
	return pairs, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	if j := strings.LastIndex(s, "```"); j >= 0 {
		s = s[:j]
	}
	return strings.TrimSpace(s)
}
