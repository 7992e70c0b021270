// Package engine drives the three-pass literary translation flow:
// translate, review, refine, with a rolling glossary and narrative context
// maintained across the whole book.
//
// An Engine owns mutable shared state (glossary, context summary, chunk
// counter) and is designed for one sequential stream of units. Do not call
// Translate concurrently; translate several books by giving each its own
// Engine.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/oukeidos/litra/internal/glossary"
	"github.com/oukeidos/litra/internal/llm"
	"github.com/oukeidos/litra/internal/logger"
	"github.com/oukeidos/litra/internal/profile"
	"github.com/oukeidos/litra/internal/prompt"
)

const (
	defaultMaxTokens  = 8192
	contextMaxTokens  = 512
	glossaryMaxTokens = 1024

	contextTemperature  = 0.3
	glossaryTemperature = 0.1

	glossaryPromptLimit = 60
	statsLogInterval    = 10
)

// Mode is the execution mode the dispatcher selected for a unit.
type Mode string

const (
	ModePass1Only Mode = "pass1-only"
	Mode3Pass     Mode = "3-pass"
	ModeBatch     Mode = "batch"
)

// ReviewOutcome records how the review pass resolved.
type ReviewOutcome string

const (
	ReviewSkipped ReviewOutcome = "skipped"
	ReviewOK      ReviewOutcome = "ok"
	ReviewFixed   ReviewOutcome = "fixed"
)

// Result is the outcome of translating one unit.
type Result struct {
	Text   string
	Mode   Mode
	Review ReviewOutcome
	Chunk  int

	// BatchMismatch is set when the model returned a different segment
	// count than requested (batch mode only).
	BatchMismatch *MismatchInfo
}

// Config assembles an Engine.
type Config struct {
	Client         llm.Completer
	Profile        profile.Profile
	TargetLanguage string

	// SkipReview forces Pass-1-only for every unit.
	SkipReview bool
	// ContextEnabled turns on the rolling narrative summary refresh.
	ContextEnabled bool
	// CacheDisabled turns off prompt-cache annotations on pass prompts.
	CacheDisabled bool
	// OnEvent receives recoverable-incident notifications. Optional.
	OnEvent func(Event)
}

// Engine executes units sequentially against one Completer.
type Engine struct {
	client  llm.Completer
	prof    profile.Profile
	tgtLang string
	srcLang string

	skipReview     bool
	contextEnabled bool
	cacheEnabled   bool
	onEvent        func(Event)

	glossary       *glossary.Store
	contextSummary string

	stats stats

	// sleep is a seam for tests; defaults to a ctx-aware time.Sleep.
	sleep func(ctx context.Context, d time.Duration) error
}

// New builds an Engine from a loaded profile.
func New(cfg Config) (*Engine, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("completion client is required")
	}
	if cfg.TargetLanguage == "" {
		return nil, fmt.Errorf("target language is required")
	}

	e := &Engine{
		client:         cfg.Client,
		prof:           cfg.Profile,
		tgtLang:        cfg.TargetLanguage,
		srcLang:        cfg.Profile.SourceLanguage,
		skipReview:     cfg.SkipReview,
		contextEnabled: cfg.ContextEnabled,
		cacheEnabled:   !cfg.CacheDisabled,
		onEvent:        cfg.OnEvent,
		glossary:       glossary.NewStore(),
		sleep:          sleepCtx,
	}
	if e.srcLang == "" {
		e.srcLang = "English"
	}
	e.glossary.Seed(cfg.Profile.GlossarySeed)
	return e, nil
}

// Glossary exposes the engine's term store (for seeding from files and
// for reporting).
func (e *Engine) Glossary() *glossary.Store {
	return e.glossary
}

// Translate is the string-in/string-out entry point: one paragraph, or
// several joined by newline.
func (e *Engine) Translate(ctx context.Context, text string) (string, error) {
	res, err := e.TranslateUnit(ctx, UnitFromText(text))
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// TranslateUnit dispatches one unit to the mode its shape and length call
// for. Exactly one chunk is counted per call, success or failure.
func (e *Engine) TranslateUnit(ctx context.Context, u Unit) (Result, error) {
	chunk := e.stats.nextChunk()

	var res Result
	var err error
	switch {
	case u.IsBatch():
		res, err = e.translateBatch(ctx, chunk, u)
	case u.Chars() < e.prof.MinReviewChars || e.skipReview:
		res, err = e.translatePass1Only(ctx, chunk, u)
	default:
		res, err = e.translate3Pass(ctx, chunk, u)
	}
	if err == nil && chunk%statsLogInterval == 0 {
		e.logProgress()
	}
	return res, err
}

func (e *Engine) translatePass1Only(ctx context.Context, chunk int, u Unit) (Result, error) {
	e.stats.countMode(ModePass1Only)
	logger.Debug("Translating unit", "chunk", chunk, "chars", u.Chars(), "mode", ModePass1Only)

	translation, err := e.pass1(ctx, u.Text(), "")
	if err != nil {
		return Result{}, err
	}
	e.maybeRefreshState(ctx, chunk, u.Text(), translation)
	return Result{Text: translation, Mode: ModePass1Only, Review: ReviewSkipped, Chunk: chunk}, nil
}

func (e *Engine) translate3Pass(ctx context.Context, chunk int, u Unit) (Result, error) {
	e.stats.countMode(Mode3Pass)
	logger.Debug("Translating unit", "chunk", chunk, "chars", u.Chars(), "mode", Mode3Pass)

	text := u.Text()
	translation, err := e.pass1(ctx, text, "")
	if err != nil {
		return Result{}, err
	}

	review, err := e.pass2(ctx, text, translation, false)
	if err != nil {
		return Result{}, err
	}
	if prompt.QualityOK(review) {
		e.stats.countReview(true)
		logger.Debug("Review passed", "chunk", chunk)
		e.maybeRefreshState(ctx, chunk, text, translation)
		return Result{Text: translation, Mode: Mode3Pass, Review: ReviewOK, Chunk: chunk}, nil
	}

	e.stats.countReview(false)
	refined, err := e.pass3(ctx, text, translation, review, "")
	if err != nil {
		return Result{}, err
	}
	logger.Debug("Review fixed", "chunk", chunk)
	e.maybeRefreshState(ctx, chunk, text, refined)
	return Result{Text: refined, Mode: Mode3Pass, Review: ReviewFixed, Chunk: chunk}, nil
}

func (e *Engine) translateBatch(ctx context.Context, chunk int, u Unit) (Result, error) {
	e.stats.countMode(ModeBatch)
	paragraphs := u.Paragraphs()
	totalChars := u.Chars()
	logger.Debug("Translating batch", "chunk", chunk, "paragraphs", len(paragraphs), "chars", totalChars)

	delimited := joinDelimited(paragraphs)
	batchInstruction := prompt.BatchInstruction(len(paragraphs))

	translation, err := e.pass1(ctx, delimited, batchInstruction)
	if err != nil {
		return Result{}, err
	}

	outcome := ReviewSkipped
	if !e.skipReview && totalChars >= e.prof.MinReviewChars {
		review, err := e.pass2(ctx, delimited, translation, true)
		if err != nil {
			return Result{}, err
		}
		if prompt.QualityOK(review) {
			e.stats.countReview(true)
			outcome = ReviewOK
		} else {
			e.stats.countReview(false)
			translation, err = e.pass3(ctx, delimited, translation, review, batchInstruction)
			if err != nil {
				return Result{}, err
			}
			outcome = ReviewFixed
		}
	}

	result, mismatch := Reassemble(paragraphs, translation)
	if mismatch != nil {
		e.emit(Event{
			Kind:      EventBatchMismatch,
			Chunk:     chunk,
			Requested: mismatch.Requested,
			Returned:  mismatch.Returned,
			Padded:    mismatch.Padded,
		})
		logger.Warn("Batch segment count mismatch",
			"chunk", chunk, "requested", mismatch.Requested, "returned", mismatch.Returned, "padded", mismatch.Padded)
	}

	e.maybeRefreshState(ctx, chunk, u.Text(), result)
	return Result{Text: result, Mode: ModeBatch, Review: outcome, Chunk: chunk, BatchMismatch: mismatch}, nil
}

// --- Pass prompts ---

func (e *Engine) promptParams(batchInstruction string) prompt.Params {
	return prompt.Params{
		SourceLanguage:    e.srcLang,
		TargetLanguage:    e.tgtLang,
		StyleInstructions: e.prof.StyleInstructions,
		ProtectedNouns:    e.prof.ProtectedNouns,
		Glossary:          e.glossary.Format(glossaryPromptLimit),
		Context:           e.contextSummary,
		BatchInstruction:  batchInstruction,
	}
}

func (e *Engine) pass1(ctx context.Context, text, batchInstruction string) (string, error) {
	system := prompt.TranslateSystem(e.promptParams(batchInstruction))
	user := prompt.TranslateUser(e.srcLang, e.tgtLang, text)
	return e.call(ctx, system, user, e.prof.TempTranslate, defaultMaxTokens, e.cacheEnabled)
}

func (e *Engine) pass2(ctx context.Context, original, translation string, isBatch bool) (string, error) {
	params := e.promptParams("")
	if isBatch {
		params.BatchInstruction = prompt.BatchReviewNote()
	}
	params.Context = "" // the reviewer judges the text pair, not the story arc
	system := prompt.ReviewSystem(params)
	user := prompt.ReviewUser(e.srcLang, e.tgtLang, original, translation)
	return e.call(ctx, system, user, e.prof.TempReview, defaultMaxTokens, e.cacheEnabled)
}

func (e *Engine) pass3(ctx context.Context, original, translation, review, batchInstruction string) (string, error) {
	system := prompt.RefineSystem(e.promptParams(batchInstruction))
	user := prompt.RefineUser(e.srcLang, e.tgtLang, original, translation, review)
	return e.call(ctx, system, user, e.prof.TempRefine, defaultMaxTokens, e.cacheEnabled)
}

func (e *Engine) emit(ev Event) {
	if e.onEvent != nil {
		e.onEvent(ev)
	}
}

func (e *Engine) logProgress() {
	s := e.Stats()
	logger.Info("Progress",
		"profile", e.prof.Name,
		"chunks", s.Chunks,
		"requests", s.Requests,
		"glossary_terms", s.GlossaryTerms,
		"cost_usd", fmt.Sprintf("%.2f", s.Cost))
}
