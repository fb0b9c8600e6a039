package sweatci

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// OutputLevel classifies text sent to the output sink
type OutputLevel int

const (
	OutputDefault OutputLevel = iota // Text not caused by user interaction
	OutputEcho                       // Non-error text produced by a command
	OutputWarning                    // Usage lines and warnings
	OutputError                      // Anything that went wrong
)

// String returns the level name
func (l OutputLevel) String() string {
	switch l {
	case OutputDefault:
		return "DEFAULT"
	case OutputEcho:
		return "ECHO"
	case OutputWarning:
		return "WARNING"
	case OutputError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Printer receives every piece of text the interpreter emits.
// Implementations must not block for long; the interpreter calls Print synchronously.
type Printer interface {
	Print(level OutputLevel, text string)
}

// PrintFunc adapts a plain function to the Printer interface
type PrintFunc func(level OutputLevel, text string)

// Print calls f
func (f PrintFunc) Print(level OutputLevel, text string) {
	f(level, text)
}

// ANSI color codes for terminal output
const (
	colorYellow = "\x1b[93m"
	colorRed    = "\x1b[91m"
	colorReset  = "\x1b[0m"
)

// ConsolePrinter writes echo/default text to out and warnings/errors to errOut
type ConsolePrinter struct {
	mu           sync.Mutex
	out          io.Writer
	errOut       io.Writer
	colorEnabled bool
}

// NewConsolePrinter creates a printer over the given writers.
// Nil writers fall back to os.Stdout and os.Stderr.
func NewConsolePrinter(out, errOut io.Writer) *ConsolePrinter {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &ConsolePrinter{
		out:          out,
		errOut:       errOut,
		colorEnabled: supportsColor(errOut),
	}
}

// SetColorEnabled overrides terminal color detection
func (p *ConsolePrinter) SetColorEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.colorEnabled = enabled
}

// Print writes text to the writer matching its level
func (p *ConsolePrinter) Print(level OutputLevel, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch level {
	case OutputWarning, OutputError:
		if p.colorEnabled {
			color := colorYellow
			if level == OutputError {
				color = colorRed
			}
			// Keep the trailing newline outside the color span
			body := strings.TrimSuffix(text, "\n")
			_, _ = fmt.Fprintf(p.errOut, "%s%s%s%s", color, body, colorReset, text[len(body):])
			return
		}
		_, _ = io.WriteString(p.errOut, text)
	default:
		_, _ = io.WriteString(p.out, text)
	}
}

// supportsColor checks if w is a terminal that supports color output
func supportsColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false
	}

	// Respect NO_COLOR environment variable (https://no-color.org/)
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}

	if t := os.Getenv("TERM"); t == "dumb" {
		return false
	}

	return true
}

// OutputLine is one captured Print call
type OutputLine struct {
	Level OutputLevel
	Text  string
}

// BufferPrinter keeps everything printed in memory
type BufferPrinter struct {
	mu    sync.Mutex
	lines []OutputLine
}

// NewBufferPrinter creates an empty BufferPrinter
func NewBufferPrinter() *BufferPrinter {
	return &BufferPrinter{}
}

// Print records the text
func (b *BufferPrinter) Print(level OutputLevel, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, OutputLine{Level: level, Text: text})
}

// Lines returns a copy of everything printed so far
func (b *BufferPrinter) Lines() []OutputLine {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]OutputLine, len(b.lines))
	copy(out, b.lines)
	return out
}

// String concatenates all printed text
func (b *BufferPrinter) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var sb strings.Builder
	for _, l := range b.lines {
		sb.WriteString(l.Text)
	}
	return sb.String()
}

// Text concatenates the text printed at the given level
func (b *BufferPrinter) Text(level OutputLevel) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var sb strings.Builder
	for _, l := range b.lines {
		if l.Level == level {
			sb.WriteString(l.Text)
		}
	}
	return sb.String()
}

// Reset discards everything printed so far
func (b *BufferPrinter) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = nil
}
