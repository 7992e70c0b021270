// Package logger owns the process-wide slog logger: a human-oriented
// console handler on stderr, an optional JSONL stream for machine
// consumption, and attribute redaction.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"golang.org/x/term"
)

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var globalLogger *slog.Logger
var isTerminal = term.IsTerminal

// Book text and prompts must never land in logs: a log file of a
// translation run would otherwise duplicate the copyrighted source.
var redactedKeys = map[string]bool{
	"api_key":       true,
	"apikey":        true,
	"authorization": true,
	"bearer":        true,
	"glossary_term": true,
	"original":      true,
	"password":      true,
	"prompt":        true,
	"review":        true,
	"secret":        true,
	"summary":       true,
	"system":        true,
	"token":         true,
	"translation":   true,
}

var redactedKeyFragments = []string{
	"key", "token", "secret", "password", "authorization", "bearer",
	"api", "prompt", "original", "translation", "review", "summary", "text",
}

var redactedValuePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bsk-ant-[A-Za-z0-9_-]{10,}\b`),
	regexp.MustCompile(`(?i)\bsk-[A-Za-z0-9_-]{10,}\b`),
	regexp.MustCompile(`\bAIza[0-9A-Za-z\-_]{10,}\b`),
	regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9\-._~+/]+=*\b`),
	regexp.MustCompile(`(?i)\b(api[_-]?key|access[_-]?token|secret)\b\s*[:=]\s*\S+`),
}

// RedactAttr is a slog ReplaceAttr hook masking sensitive attributes.
func RedactAttr(_ []string, a slog.Attr) slog.Attr {
	if sensitiveAttr(a) {
		return slog.String(a.Key, "[REDACTED]")
	}
	return a
}

func sensitiveAttr(a slog.Attr) bool {
	key := strings.ToLower(a.Key)
	if redactedKeys[key] {
		return true
	}
	for _, fragment := range redactedKeyFragments {
		if strings.Contains(key, fragment) {
			return true
		}
	}

	var value string
	if a.Value.Kind() == slog.KindString {
		value = a.Value.String()
	} else {
		value = fmt.Sprint(a.Value.Any())
	}
	if value == "" {
		return false
	}
	for _, re := range redactedValuePatterns {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}

func init() {
	Init(LevelInfo, nil)
}

// Init installs the global logger. level is the minimum level; jsonlFile,
// when non-nil, additionally receives every record as a JSON line.
func Init(level slog.Level, jsonlFile io.Writer) {
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: RedactAttr,
	}

	color := jsonlFile == nil && isTerminal(int(os.Stderr.Fd()))
	var handler slog.Handler = &consoleHandler{w: os.Stderr, opts: opts, color: color}
	if jsonlFile != nil {
		handler = teeHandler{handler, slog.NewJSONHandler(jsonlFile, opts)}
	}

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}

func Debug(msg string, args ...any) { globalLogger.Debug(msg, args...) }
func Info(msg string, args ...any)  { globalLogger.Info(msg, args...) }
func Warn(msg string, args ...any)  { globalLogger.Warn(msg, args...) }
func Error(msg string, args ...any) { globalLogger.Error(msg, args...) }

// Fatal logs at error level and exits.
func Fatal(msg string, args ...any) {
	globalLogger.Error(msg, args...)
	os.Exit(1)
}

// consoleHandler renders "15:04:05 LEVEL message key=value ..." lines,
// colorized when stderr is a terminal.
type consoleHandler struct {
	w      io.Writer
	opts   *slog.HandlerOptions
	attrs  []slog.Attr
	groups []string
	color  bool
}

const ansiReset = "\033[0m"

var levelColors = map[slog.Level]string{
	slog.LevelDebug: "\033[90m",
	slog.LevelInfo:  "\033[32m",
	slog.LevelWarn:  "\033[33m",
	slog.LevelError: "\033[31m",
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	if h.color {
		fmt.Fprintf(h.w, "%s %s%-5s%s %s",
			r.Time.Format("15:04:05"), levelColors[r.Level], r.Level.String(), ansiReset, r.Message)
	} else {
		fmt.Fprintf(h.w, "%s %-5s %s", r.Time.Format("15:04:05"), r.Level.String(), r.Message)
	}

	for _, a := range h.attrs {
		h.writeAttr(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(a)
		return true
	})

	fmt.Fprintln(h.w)
	return nil
}

func (h *consoleHandler) writeAttr(a slog.Attr) {
	if h.opts != nil && h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(h.groups, a)
	}
	if a.Key == "" {
		return
	}
	key := a.Key
	for i := len(h.groups) - 1; i >= 0; i-- {
		key = h.groups[i] + "." + key
	}
	if h.color {
		fmt.Fprintf(h.w, " \033[90m%s=%s%v", key, ansiReset, a.Value)
	} else {
		fmt.Fprintf(h.w, " %s=%v", key, a.Value)
	}
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	h2.attrs = append(h2.attrs[:len(h2.attrs):len(h2.attrs)], attrs...)
	return &h2
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.groups = append(h2.groups[:len(h2.groups):len(h2.groups)], name)
	return &h2
}

// teeHandler fans every record out to each wrapped handler.
type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range t {
		if err := h.Handle(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithGroup(name)
	}
	return out
}
