package sweatci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"
)

// REPLConfig configures the console loop
type REPLConfig struct {
	// Prompt is called before every line; nil means DefaultPrompt
	Prompt func() string
	// HistoryFile is loaded on start and saved on exit; "" disables history
	HistoryFile string
	// Input is read line by line when it is not an interactive terminal.
	// Nil means os.Stdin.
	Input io.Reader
	// Output receives prompts and the final newline; nil means os.Stdout
	Output io.Writer
}

// DefaultPrompt is the prompt used when none is configured
const DefaultPrompt = "> "

// REPL feeds console lines to a Session
type REPL struct {
	session *Session
	config  REPLConfig
}

// NewREPL creates a console loop over session
func NewREPL(session *Session, config REPLConfig) *REPL {
	if config.Input == nil {
		config.Input = os.Stdin
	}
	if config.Output == nil {
		config.Output = os.Stdout
	}
	return &REPL{session: session, config: config}
}

// Run reads lines until end of input, ctx is cancelled or the session stops.
// Interactive terminals get line editing and history; anything else is read
// as plain lines without a prompt.
func (r *REPL) Run(ctx context.Context) error {
	if f, ok := r.config.Input.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return r.runInteractive(ctx)
	}
	return r.runLines(ctx)
}

func (r *REPL) runInteractive(ctx context.Context) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	r.loadHistory(ln)
	defer r.saveHistory(ln)

	for !r.finished(ctx) {
		line, err := ln.Prompt(r.prompt())
		if errors.Is(err, liner.ErrPromptAborted) {
			// Ctrl+C drops the current line
			continue
		}
		if errors.Is(err, io.EOF) {
			_, _ = fmt.Fprintln(r.config.Output)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read console: %w", err)
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		r.session.RunLine(line, FromConsole)
	}
	return nil
}

func (r *REPL) runLines(ctx context.Context) error {
	scanner := bufio.NewScanner(r.config.Input)
	for !r.finished(ctx) && scanner.Scan() {
		r.session.RunLine(scanner.Text(), FromConsole)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

func (r *REPL) finished(ctx context.Context) bool {
	return ctx.Err() != nil || r.session.Stopped()
}

func (r *REPL) prompt() string {
	if r.config.Prompt == nil {
		return DefaultPrompt
	}
	return r.config.Prompt()
}

// loadHistory loads history (best-effort)
func (r *REPL) loadHistory(ln *liner.State) {
	if r.config.HistoryFile == "" {
		return
	}
	if f, err := os.Open(r.config.HistoryFile); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
}

// saveHistory persists history (best-effort)
func (r *REPL) saveHistory(ln *liner.State) {
	if r.config.HistoryFile == "" {
		return
	}
	_ = os.MkdirAll(filepath.Dir(r.config.HistoryFile), 0o755)
	if f, err := os.Create(r.config.HistoryFile); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
}
