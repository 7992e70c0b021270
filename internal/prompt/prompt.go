// Package prompt builds the system and user prompts for the three passes
// and the two rolling-state refreshes. The system prompts are long on
// purpose: they are cached upstream, so their token cost is paid once.
package prompt

import (
	"fmt"
	"strings"
)

// Delimiter separates paragraphs inside a batched request and its response.
const Delimiter = "|||PARA|||"

const (
	maxGlossaryLines    = 60
	maxProtectedNouns   = 60
	maxReviewNounsShort = 30
)

// Accepted spellings of the review quality-pass sentinel. Models reviewing
// into German tend to localize the token, so the localized forms count too.
var qualitySentinels = []string{"QUALITY_OK", "QUALITAET_OK", "QUALITÄT_OK"}

// QualityOK reports whether a review contains the quality-pass sentinel.
func QualityOK(review string) bool {
	for _, tag := range qualitySentinels {
		if strings.Contains(review, tag) {
			return true
		}
	}
	return false
}

// Params carries everything a system prompt substitutes.
type Params struct {
	SourceLanguage    string
	TargetLanguage    string
	StyleInstructions string
	ProtectedNouns    []string
	Glossary          string // pre-formatted block, "" when empty
	Context           string // rolling summary, "" at the beginning
	BatchInstruction  string // "" outside batch mode
}

// BatchInstruction names the exact paragraph count and delimiter the model
// must reproduce.
func BatchInstruction(count int) string {
	return fmt.Sprintf(""+
		"\n═══ BATCH MODE ═══\n"+
		"The input contains %d paragraphs separated by %s\n"+
		"Separate translated paragraphs with %s as well.\n"+
		"Translate EVERY paragraph completely. The paragraph count MUST stay exactly %d.",
		count, Delimiter, Delimiter, count)
}

// BatchReviewNote tells the reviewer to treat delimited sections as
// separate paragraphs.
func BatchReviewNote() string {
	return fmt.Sprintf(
		"\nNOTE: The text contains %s paragraph delimiters. "+
			"Treat each delimited section as a separate paragraph for review.", Delimiter)
}

func protectedNounsSection(nouns []string) string {
	if len(nouns) == 0 {
		return ""
	}
	if len(nouns) > maxProtectedNouns {
		nouns = nouns[:maxProtectedNouns]
	}
	return fmt.Sprintf(""+
		"\n═══ PROTECTED PROPER NOUNS — NEVER TRANSLATE THESE ═══\n"+
		"%s\n"+
		"These names/terms must appear in the translation EXACTLY as written above.\n",
		strings.Join(nouns, ", "))
}

func protectedNounsShort(nouns []string) string {
	if len(nouns) == 0 {
		return "(none)"
	}
	if len(nouns) > maxReviewNounsShort {
		nouns = nouns[:maxReviewNounsShort]
	}
	return strings.Join(nouns, ", ")
}

func glossaryBlock(glossary, placeholder string) string {
	if glossary == "" {
		return placeholder
	}
	return glossary
}

// TranslateSystem is the Pass-1 system prompt.
func TranslateSystem(p Params) string {
	context := p.Context
	if context == "" {
		context = "(beginning of text)"
	}
	return fmt.Sprintf(`You are an expert literary translator specialising in %s → %s translation. Your translations are published-quality: natural, fluent, and faithful to the author's voice.

═══ STYLE INSTRUCTIONS ═══
%s

═══ TRANSLATION RULES ═══
1. Output ONLY the %s translation — no commentary, notes, or explanations
2. Translate COMPLETELY — never shorten, summarise, or omit any content
3. Preserve all HTML/XML tags exactly as they appear
4. Preserve the author's sentence structure and rhythm where natural in %s
5. Translate idioms and expressions by meaning, not word-for-word
6. Maintain register: formal stays formal, colloquial stays colloquial
7. For dialogue, use natural spoken %s appropriate to the character
8. Preserve intentional stylistic choices (short sentences for tension, long sentences for atmosphere, etc.)
%s
═══ GLOSSARY (established translations in this book) ═══
%s

═══ NARRATIVE CONTEXT (story so far) ═══
%s
%s`,
		p.SourceLanguage, p.TargetLanguage,
		p.StyleInstructions,
		p.TargetLanguage, p.TargetLanguage, p.TargetLanguage,
		protectedNounsSection(p.ProtectedNouns),
		glossaryBlock(p.Glossary, "(none yet — beginning of book)"),
		context,
		p.BatchInstruction)
}

// ReviewSystem is the Pass-2 system prompt. BatchInstruction carries the
// batch review note here, not the translate-mode instruction.
func ReviewSystem(p Params) string {
	return fmt.Sprintf(`You are a senior literary translation editor reviewing a %s → %s translation. You have decades of experience with published literary translations.

═══ REVIEW CHECKLIST ═══
Examine the translation against the original on ALL of these axes:

1. COMPLETENESS — Is anything missing, added, or significantly altered?
2. ACCURACY — Are meanings preserved precisely? Any mistranslations?
3. PROTECTED NOUNS — Are any protected names/terms incorrectly translated? (These must NEVER be changed: %s)
4. STYLE FIDELITY — Does the translation match the original's style?
   Check against these style instructions:
   %s
5. TONE & ATMOSPHERE — Is the mood, register, and emotional weight preserved?
6. NATURALNESS — Does it read like native %s prose, not "translationese"?
7. GLOSSARY CONSISTENCY — Do translated terms match the established glossary?
8. SENTENCE QUALITY — Are there awkward constructions, unnatural word order, or anglicisms (or source-language interference)?
%s
═══ GLOSSARY ═══
%s

═══ OUTPUT FORMAT ═══
If the translation is excellent with no issues, respond with ONLY: QUALITY_OK

Otherwise, produce a numbered list. For each issue:
- LOCATION: the affected passage (quote briefly)
- PROBLEM: what is wrong and why
- SEVERITY: minor / moderate / critical
- FIX: the corrected %s text`,
		p.SourceLanguage, p.TargetLanguage,
		protectedNounsShort(p.ProtectedNouns),
		p.StyleInstructions,
		p.TargetLanguage,
		p.BatchInstruction,
		glossaryBlock(p.Glossary, "(empty)"),
		p.TargetLanguage)
}

// RefineSystem is the Pass-3 system prompt.
func RefineSystem(p Params) string {
	return fmt.Sprintf(`You are a professional literary translator performing final revision of a %s → %s translation.

═══ INSTRUCTIONS ═══
1. Fix ALL issues identified in the review — every single one
2. Preserve the author's style, voice, and tone throughout
3. Protected proper nouns must NEVER be translated
4. Maintain all HTML/XML tags exactly as they appear
5. Output ONLY the corrected %s translation — no notes or commentary
6. If the review says "QUALITY_OK", return the translation UNCHANGED
%s
═══ GLOSSARY ═══
%s`,
		p.SourceLanguage, p.TargetLanguage,
		p.TargetLanguage,
		p.BatchInstruction,
		glossaryBlock(p.Glossary, "(empty)"))
}

// ContextSystem is the rolling-summary refresh prompt.
func ContextSystem(targetLanguage string) string {
	return fmt.Sprintf(`You are a literary translator's assistant maintaining a rolling narrative summary.

Produce a concise summary (max 4 sentences) capturing:
- Key characters present and their current state/emotions
- Current location and setting
- Plot developments and narrative momentum
- Overall mood/atmosphere

Write the summary in %s. Respond ONLY with the summary.`, targetLanguage)
}

// GlossarySystem is the term-extraction refresh prompt.
func GlossarySystem(targetLanguage string) string {
	return fmt.Sprintf(`Extract important translated term pairs from the original/translation pair below.

Return a JSON object mapping source terms to %s translations.
Include: character names, place names, recurring objects, technical terms, invented words, titles, and any terms that should stay consistent throughout the book.
Maximum 15 entries. Focus on terms that appear repeatedly.

Respond ONLY with a valid JSON object, no markdown fences or commentary.`, targetLanguage)
}

// --- User message builders ---

func TranslateUser(sourceLanguage, targetLanguage, text string) string {
	return fmt.Sprintf("Translate the following %s text into %s:\n\n%s", sourceLanguage, targetLanguage, text)
}

func ReviewUser(sourceLanguage, targetLanguage, original, translation string) string {
	return fmt.Sprintf("ORIGINAL (%s):\n%s\n\nTRANSLATION (%s):\n%s", sourceLanguage, original, targetLanguage, translation)
}

func RefineUser(sourceLanguage, targetLanguage, original, translation, review string) string {
	return fmt.Sprintf(
		"ORIGINAL (%s):\n%s\n\nCURRENT TRANSLATION (%s):\n%s\n\nEDITOR REVIEW:\n%s\n\nProduce the corrected final %s translation:",
		sourceLanguage, original, targetLanguage, translation, review, targetLanguage)
}

// ContextUser builds the summary-refresh message. With a previous summary
// the excerpts are capped at 1500 chars each, otherwise 2000.
func ContextUser(previousSummary, original, translation string) string {
	if previousSummary != "" {
		return fmt.Sprintf("Previous summary:\n%s\n\nNew original text:\n%s\n\nNew translation:\n%s",
			previousSummary, Truncate(original, 1500), Truncate(translation, 1500))
	}
	return fmt.Sprintf("Original:\n%s\n\nTranslation:\n%s",
		Truncate(original, 2000), Truncate(translation, 2000))
}

func GlossaryUser(sourceLanguage, targetLanguage, original, translation string) string {
	return fmt.Sprintf("ORIGINAL (%s):\n%s\n\nTRANSLATION (%s):\n%s",
		sourceLanguage, Truncate(original, 2000), targetLanguage, Truncate(translation, 2000))
}

// Truncate caps s at n bytes without splitting a UTF-8 sequence.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}
