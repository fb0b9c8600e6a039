// Package sweatci provides a developer-console command language that can be
// embedded in Go applications.
//
// This package re-exports the public API from the implementation in src/.
// For full documentation, see the implementation package.
//
// Basic usage:
//
//	console := sweatci.New(nil)
//	console.RegisterStandardLibrary()
//
//	var sensitivity float64 = 2.5
//	console.BindCvar("sensitivity", sweatci.Float64Var(&sensitivity), "<value> - mouse sensitivity")
//
//	console.ParseLine(`alias +zoom "sensitivity 1"; alias -zoom "sensitivity 2.5"`, sweatci.FromConsole)
//	console.ParseLine("+zoom", sweatci.FromConsole)
package sweatci

import (
	"io"
	"time"

	impl "github.com/phroun/sweatci/src"
)

// =============================================================================
// CORE TYPES
// =============================================================================

// Interpreter is one console session.
type Interpreter = impl.Interpreter

// Config holds configuration options for the interpreter.
type Config = impl.Config

// Context is passed to command handlers.
type Context = impl.Context

// Handler is the function signature for command handlers.
type Handler = impl.Handler

// Command is a registered command.
type Command = impl.Command

// Registry is the ordered table of commands.
type Registry = impl.Registry

// SourcePosition tracks location in source text for diagnostics.
type SourcePosition = impl.SourcePosition

// Origin records where a statement came from.
type Origin = impl.Origin

// Origin flags.
const (
	FromAlias     = impl.FromAlias
	FromLoopAlias = impl.FromLoopAlias
	FromFile      = impl.FromFile
	FromConsole   = impl.FromConsole
	FromInternal  = impl.FromInternal
)

// Engine limits.
const (
	DefaultMaxAliasDepth = impl.DefaultMaxAliasDepth
	DefaultMaxExecDepth  = impl.DefaultMaxExecDepth
)

// =============================================================================
// TOKENS
// =============================================================================

// Tokenizer turns a statement buffer into tokens.
type Tokenizer = impl.Tokenizer

// Token is a single lexical unit.
type Token = impl.Token

// TokenKind identifies a token's role.
type TokenKind = impl.TokenKind

// Token kinds.
const (
	TokenNothing = impl.TokenNothing
	TokenString  = impl.TokenString
	TokenCommand = impl.TokenCommand
	TokenEOF     = impl.TokenEOF
	TokenEOS     = impl.TokenEOS
)

// =============================================================================
// VARIABLES
// =============================================================================

// VariableStore holds alias names and bodies.
type VariableStore = impl.VariableStore

// MapVariables is the default VariableStore.
type MapVariables = impl.MapVariables

// Value is a host variable bound as a CVAR.
type Value = impl.Value

// CVar is a named binding of a host Value.
type CVar = impl.CVar

// CVarStorage keeps CVAR bindings.
type CVarStorage = impl.CVarStorage

// ValueFuncs adapts a pair of functions to Value.
type ValueFuncs = impl.ValueFuncs

// AliasRunState tracks loop aliases and engaged toggles.
type AliasRunState = impl.AliasRunState

// =============================================================================
// OUTPUT AND LOGGING
// =============================================================================

// OutputLevel classifies printed text.
type OutputLevel = impl.OutputLevel

// Output levels.
const (
	OutputDefault = impl.OutputDefault
	OutputEcho    = impl.OutputEcho
	OutputWarning = impl.OutputWarning
	OutputError   = impl.OutputError
)

// Printer receives all interpreter output.
type Printer = impl.Printer

// PrintFunc adapts a function to Printer.
type PrintFunc = impl.PrintFunc

// ConsolePrinter writes to a pair of writers.
type ConsolePrinter = impl.ConsolePrinter

// BufferPrinter collects output in memory.
type BufferPrinter = impl.BufferPrinter

// OutputLine is one captured Print call.
type OutputLine = impl.OutputLine

// Logger handles debug and diagnostic logging.
type Logger = impl.Logger

// LogLevel represents log severity.
type LogLevel = impl.LogLevel

// Log level constants.
const (
	LevelTrace  = impl.LevelTrace
	LevelInfo   = impl.LevelInfo
	LevelDebug  = impl.LevelDebug
	LevelNotice = impl.LevelNotice
	LevelWarn   = impl.LevelWarn
	LevelError  = impl.LevelError
	LevelFatal  = impl.LevelFatal
)

// LogCategory identifies the logging subsystem.
type LogCategory = impl.LogCategory

// Log category constants.
const (
	CatNone     = impl.CatNone
	CatParse    = impl.CatParse
	CatCommand  = impl.CatCommand
	CatVariable = impl.CatVariable
	CatArgument = impl.CatArgument
	CatIO       = impl.CatIO
	CatMacro    = impl.CatMacro
	CatSystem   = impl.CatSystem
	CatApp      = impl.CatApp
	CatUser     = impl.CatUser
)

// =============================================================================
// HOST SUPPORT
// =============================================================================

// Session serializes an Interpreter shared between goroutines.
type Session = impl.Session

// REPL feeds console lines to a Session.
type REPL = impl.REPL

// REPLConfig configures the console loop.
type REPLConfig = impl.REPLConfig

// FileConfig is the host TOML configuration.
type FileConfig = impl.FileConfig

// ScriptWatcher reports changed script files.
type ScriptWatcher = impl.ScriptWatcher

// DefaultPrompt is the console prompt used when none is configured.
const DefaultPrompt = impl.DefaultPrompt

// =============================================================================
// ERROR TYPES
// =============================================================================

// ScriptError is an error with position information.
type ScriptError = impl.ScriptError

// Sentinel errors.
var (
	ErrCommandExists = impl.ErrCommandExists
	ErrInvalidArity  = impl.ErrInvalidArity
	ErrInvalidName   = impl.ErrInvalidName
	ErrNilHandler    = impl.ErrNilHandler
	ErrInvalidValue  = impl.ErrInvalidValue
	ErrUnknownCvar   = impl.ErrUnknownCvar
)

// =============================================================================
// CONSTRUCTORS
// =============================================================================

// New creates a new interpreter. A nil config uses DefaultConfig().
func New(config *Config) *Interpreter {
	return impl.New(config)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return impl.DefaultConfig()
}

// NewMapVariables creates an empty variable store.
func NewMapVariables() MapVariables {
	return impl.NewMapVariables()
}

// NewTokenizer creates a tokenizer over input.
func NewTokenizer(input string, isCommand func(string) bool) Tokenizer {
	return impl.NewTokenizer(input, isCommand)
}

// ClassifyWord decides whether a bare word is a command name or data.
func ClassifyWord(text string, last TokenKind, isCommand func(string) bool) TokenKind {
	return impl.ClassifyWord(text, last, isCommand)
}

// StripComments removes // and /* */ comments outside quoted strings.
func StripComments(source string) string {
	return impl.StripComments(source)
}

// FormatNumber prints a number without trailing zeros.
func FormatNumber(f float64) string {
	return impl.FormatNumber(f)
}

// NewConsolePrinter creates a printer over an output and an error writer.
// Nil writers mean os.Stdout and os.Stderr.
func NewConsolePrinter(out, errOut io.Writer) *ConsolePrinter {
	return impl.NewConsolePrinter(out, errOut)
}

// NewBufferPrinter creates an in-memory printer.
func NewBufferPrinter() *BufferPrinter {
	return impl.NewBufferPrinter()
}

// NewLogger creates a logger writing to out.
func NewLogger(enabled bool, out Printer) *Logger {
	return impl.NewLogger(enabled, out)
}

// ParseLogCategory maps a category name to a LogCategory.
func ParseLogCategory(name string) (LogCategory, bool) {
	return impl.ParseLogCategory(name)
}

// NewSession wraps an interpreter for concurrent hosts.
func NewSession(interp *Interpreter, tick time.Duration) *Session {
	return impl.NewSession(interp, tick)
}

// NewREPL creates a console loop.
func NewREPL(session *Session, config REPLConfig) *REPL {
	return impl.NewREPL(session, config)
}

// NewScriptWatcher creates a script file watcher.
func NewScriptWatcher(onChange func(path string), onError func(err error)) (*ScriptWatcher, error) {
	return impl.NewScriptWatcher(onChange, onError)
}

// LoadFileConfig reads a TOML host configuration file.
func LoadFileConfig(path string) (*FileConfig, error) {
	return impl.LoadFileConfig(path)
}

// DefaultConfigPath returns ~/.sweatci/config.toml.
func DefaultConfigPath() string {
	return impl.DefaultConfigPath()
}

// ParseTick parses a tick interval ("50ms", or seconds as a number).
func ParseTick(text string) (time.Duration, error) {
	return impl.ParseTick(text)
}

// =============================================================================
// CVAR BINDINGS
// =============================================================================

// StringVar binds a string.
func StringVar(p *string) Value { return impl.StringVar(p) }

// BoolVar binds a bool.
func BoolVar(p *bool) Value { return impl.BoolVar(p) }

// IntVar binds an int.
func IntVar(p *int) Value { return impl.IntVar(p) }

// Int16Var binds an int16.
func Int16Var(p *int16) Value { return impl.Int16Var(p) }

// Uint16Var binds a uint16.
func Uint16Var(p *uint16) Value { return impl.Uint16Var(p) }

// Uint8Var binds a uint8.
func Uint8Var(p *uint8) Value { return impl.Uint8Var(p) }

// Float32Var binds a float32.
func Float32Var(p *float32) Value { return impl.Float32Var(p) }

// Float64Var binds a float64.
func Float64Var(p *float64) Value { return impl.Float64Var(p) }

// FlagVar binds one bit of a flags byte.
func FlagVar(flags *uint8, bit uint8) Value { return impl.FlagVar(flags, bit) }
