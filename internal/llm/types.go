// Package llm defines the provider-neutral completion primitive the engine
// runs on. Every pass and every rolling-state refresh is one Complete call.
package llm

import "context"

// Request describes a single completion call: one system prompt and one
// user message. CacheSystem asks the provider to cache the system prompt
// across calls; providers without prompt caching ignore it.
type Request struct {
	MaxTokens   int
	Temperature float64
	System      string
	CacheSystem bool
	User        string
}

// Usage holds the token counters reported for one call. CacheRead and
// CacheCreation stay zero on providers without prompt caching.
type Usage struct {
	InputTokens         int
	OutputTokens        int
	CacheReadTokens     int
	CacheCreationTokens int
}

// Response is the text of a completed call plus its usage counters.
// Non-text content blocks are dropped by the client before this point.
type Response struct {
	Text  string
	Usage Usage
}

// Completer is the single external dependency of the engine.
type Completer interface {
	Complete(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}
