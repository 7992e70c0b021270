package engine

// EventKind names a recoverable incident the engine survived.
type EventKind string

const (
	// EventBatchMismatch: the model returned a different segment count
	// than requested; the reassembler merged or padded to compensate.
	EventBatchMismatch EventKind = "batch_mismatch"
	// EventContextRefreshFailed: the rolling summary update failed; the
	// previous summary was kept.
	EventContextRefreshFailed EventKind = "context_refresh_failed"
	// EventGlossaryRefreshFailed: term extraction failed or returned
	// unusable JSON; the glossary was left unchanged.
	EventGlossaryRefreshFailed EventKind = "glossary_refresh_failed"
)

// Event is a typed warning surfaced to the caller. None of these abort a
// unit; they exist so quality degradation is observable instead of silent.
type Event struct {
	Kind  EventKind
	Chunk int

	// Batch mismatch details. Padded counts paragraphs filled with the
	// untranslated original.
	Requested int
	Returned  int
	Padded    int

	Err error
}
