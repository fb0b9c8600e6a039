package sweatci

import (
	"fmt"
	"strings"
)

// LogLevel orders messages from least to most severe
type LogLevel int

const (
	LevelTrace LogLevel = iota
	LevelInfo
	LevelDebug
	LevelNotice // Notice and above print even with debug off
	LevelWarn
	LevelError
	LevelFatal
)

// LogCategory names the part of the engine a message comes from
type LogCategory string

const (
	CatNone     LogCategory = ""
	CatParse    LogCategory = "parse"    // tokenizer, statement loop
	CatCommand  LogCategory = "command"  // registration, dispatch
	CatVariable LogCategory = "variable" // aliases, CVARs
	CatArgument LogCategory = "argument" // substitution, arity
	CatIO       LogCategory = "io"       // script files
	CatMacro    LogCategory = "macro"    // alias expansion, loops, toggles
	CatSystem   LogCategory = "system"   // host
	CatApp      LogCategory = "app"
	CatUser     LogCategory = "user"
)

// AllLogCategories returns every named category
func AllLogCategories() []LogCategory {
	return []LogCategory{
		CatParse, CatCommand, CatVariable, CatArgument, CatIO,
		CatMacro, CatSystem, CatApp, CatUser,
	}
}

// ParseLogCategory maps a category name to a LogCategory
func ParseLogCategory(name string) (LogCategory, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, cat := range AllLogCategories() {
		if string(cat) == name {
			return cat, true
		}
	}
	return CatNone, false
}

// Logger writes leveled, categorized diagnostics to the interpreter's
// output sink rather than straight to a terminal.
type Logger struct {
	enabled           bool
	enabledCategories map[LogCategory]bool
	out               Printer
}

// NewLogger creates a new logger writing to out
func NewLogger(enabled bool, out Printer) *Logger {
	return &Logger{
		enabled:           enabled,
		enabledCategories: make(map[LogCategory]bool),
		out:               out,
	}
}

// SetEnabled turns debug output on or off
func (l *Logger) SetEnabled(enabled bool) {
	l.enabled = enabled
}

// Enabled reports whether debug logging is on
func (l *Logger) Enabled() bool {
	return l.enabled
}

// EnableCategory lets debug output for cat through
func (l *Logger) EnableCategory(cat LogCategory) {
	l.enabledCategories[cat] = true
}

// DisableCategory silences debug output for cat
func (l *Logger) DisableCategory(cat LogCategory) {
	delete(l.enabledCategories, cat)
}

// EnableAllCategories enables every named category
func (l *Logger) EnableAllCategories() {
	for _, cat := range AllLogCategories() {
		l.enabledCategories[cat] = true
	}
}

// IsCategoryEnabled reports whether cat is enabled
func (l *Logger) IsCategoryEnabled(cat LogCategory) bool {
	return l.enabledCategories[cat]
}

// Notice and above always print. Lower levels need debug on and, for a
// categorized message, the category enabled.
func (l *Logger) shouldLog(level LogLevel, cat LogCategory) bool {
	if level >= LevelNotice {
		return true
	}
	return l.enabled && (cat == CatNone || l.enabledCategories[cat])
}

var levelStyles = map[LogLevel]struct {
	tag    string
	loud   bool
	output OutputLevel
}{
	LevelTrace:  {"TRACE", false, OutputDefault},
	LevelInfo:   {"INFO", false, OutputDefault},
	LevelDebug:  {"DEBUG", false, OutputDefault},
	LevelNotice: {"NOTICE", true, OutputEcho},
	LevelWarn:   {"WARN", true, OutputWarning},
	LevelError:  {"ERROR", true, OutputError},
	LevelFatal:  {"ERROR", true, OutputError},
}

// Log prints message at level. A non-nil position adds an "at line" suffix.
func (l *Logger) Log(level LogLevel, cat LogCategory, message string, position *SourcePosition) {
	if !l.shouldLog(level, cat) || l.out == nil {
		return
	}

	style := levelStyles[level]
	var sb strings.Builder
	sb.WriteByte('[')
	if style.loud {
		sb.WriteString("SweatCI")
		if cat != CatNone {
			sb.WriteString(":" + string(cat))
		}
		sb.WriteString(" " + style.tag)
	} else {
		sb.WriteString(style.tag)
		if cat != CatNone {
			sb.WriteString(":" + string(cat))
		}
	}
	sb.WriteString("] ")
	sb.WriteString(message)

	if position != nil && (position.Filename != "" || position.Line > 0) {
		filename := position.Filename
		if filename == "" {
			filename = "<console>"
		}
		fmt.Fprintf(&sb, "\n  at line %d, column %d in %s", position.Line, position.Column, filename)
	}
	sb.WriteByte('\n')

	l.out.Print(style.output, sb.String())
}

// logf skips formatting entirely when the message would be dropped
func (l *Logger) logf(level LogLevel, cat LogCategory, format string, args []interface{}) {
	if !l.shouldLog(level, cat) {
		return
	}
	l.Log(level, cat, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) ErrorCat(cat LogCategory, format string, args ...interface{}) {
	l.logf(LevelError, cat, format, args)
}

func (l *Logger) WarnCat(cat LogCategory, format string, args ...interface{}) {
	l.logf(LevelWarn, cat, format, args)
}

func (l *Logger) NoticeCat(cat LogCategory, format string, args ...interface{}) {
	l.logf(LevelNotice, cat, format, args)
}

func (l *Logger) DebugCat(cat LogCategory, format string, args ...interface{}) {
	l.logf(LevelDebug, cat, format, args)
}

func (l *Logger) TraceCat(cat LogCategory, format string, args ...interface{}) {
	l.logf(LevelTrace, cat, format, args)
}

// ErrorAt logs an error pointing at a script position
func (l *Logger) ErrorAt(cat LogCategory, position SourcePosition, format string, args ...interface{}) {
	l.Log(LevelError, cat, fmt.Sprintf(format, args...), &position)
}
