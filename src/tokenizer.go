package sweatci

import (
	"strings"
	"unicode/utf8"
)

// Tokenizer turns one statement buffer into tokens, one at a time.
// The zero value is an empty buffer that only yields TokenEOF.
type Tokenizer struct {
	input     string
	pos       int
	line      int
	column    int
	last      TokenKind
	isCommand func(string) bool
}

// NewTokenizer creates a tokenizer over input.
// isCommand decides whether a bare word names a registered command; nil means never.
func NewTokenizer(input string, isCommand func(string) bool) Tokenizer {
	return Tokenizer{
		input:     input,
		line:      1,
		column:    1,
		last:      TokenNothing,
		isCommand: isCommand,
	}
}

// ClassifyWord decides whether a bare word is a command name or data.
// A word is a command only when it is registered and the token emitted just
// before it was not itself a command; "echo echo" passes the second echo as data.
func ClassifyWord(text string, last TokenKind, isCommand func(string) bool) TokenKind {
	if isCommand != nil && last != TokenCommand && isCommand(text) {
		return TokenCommand
	}
	return TokenString
}

// Last returns the kind of the most recently emitted token
func (t *Tokenizer) Last() TokenKind {
	return t.last
}

// Line returns the current line (1-based)
func (t *Tokenizer) Line() int {
	return t.line
}

// Next returns the next token. After the end of input it keeps returning TokenEOF.
func (t *Tokenizer) Next() Token {
	for t.pos < len(t.input) {
		c := t.input[t.pos]
		if c == '\n' {
			tok := t.emit(TokenEOS, "\n", t.line, t.column)
			t.pos++
			t.line++
			t.column = 1
			return tok
		}
		if !isBlank(c) {
			break
		}
		t.pos++
		t.column++
	}

	if t.pos >= len(t.input) {
		return t.emit(TokenEOF, "", t.line, t.column)
	}

	line, column := t.line, t.column
	switch t.input[t.pos] {
	case ';':
		t.pos++
		t.column++
		return t.emit(TokenEOS, ";", line, column)
	case '"':
		return t.emit(TokenString, t.readQuoted(), line, column)
	}

	word := t.readBare()
	return t.emit(ClassifyWord(word, t.last, t.isCommand), word, line, column)
}

func (t *Tokenizer) emit(kind TokenKind, text string, line, column int) Token {
	t.last = kind
	return Token{Kind: kind, Text: text, Line: line, Column: column}
}

// readBare consumes a run of characters up to whitespace or an unescaped ';'
func (t *Tokenizer) readBare() string {
	var sb strings.Builder
	for t.pos < len(t.input) {
		c := t.input[t.pos]
		if c == '\\' && t.pos+1 < len(t.input) && t.input[t.pos+1] == ';' {
			sb.WriteByte(';')
			t.pos += 2
			t.column += 2
			continue
		}
		if c == ';' || c == '\n' || isBlank(c) {
			break
		}
		t.writeRune(&sb)
	}
	return sb.String()
}

// readQuoted consumes a double-quoted string. Only \\ and \" are escapes;
// any other backslash is kept so later stages (e.g. \$) can see it.
func (t *Tokenizer) readQuoted() string {
	var sb strings.Builder
	t.pos++ // opening quote
	t.column++

	for t.pos < len(t.input) {
		c := t.input[t.pos]
		switch {
		case c == '\\' && t.pos+1 < len(t.input) && (t.input[t.pos+1] == '\\' || t.input[t.pos+1] == '"'):
			sb.WriteByte(t.input[t.pos+1])
			t.pos += 2
			t.column += 2
		case c == '"':
			t.pos++
			t.column++
			return sb.String()
		case c == '\n':
			sb.WriteByte(c)
			t.pos++
			t.line++
			t.column = 1
		default:
			t.writeRune(&sb)
		}
	}

	// Unterminated strings run to the end of input
	return sb.String()
}

func (t *Tokenizer) writeRune(sb *strings.Builder) {
	r, width := utf8.DecodeRuneInString(t.input[t.pos:])
	if r == utf8.RuneError && width <= 1 {
		sb.WriteByte(t.input[t.pos])
		width = 1
	} else {
		sb.WriteString(t.input[t.pos : t.pos+width])
	}
	t.pos += width
	t.column++
}

func isBlank(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\v', '\f':
		return true
	}
	return false
}
