package sweatci

import (
	"fmt"
	"strings"
)

// parser runs one top-level invocation. frames[0] is the input text;
// every further frame is an alias body, innermost last.
type parser struct {
	interp   *Interpreter
	frames   []Tokenizer
	current  Token
	origin   Origin
	filename string
	// line/column of the top-level statement being run
	line   int
	column int
}

func newParser(interp *Interpreter, text string, origin Origin, filename string) *parser {
	return &parser{
		interp:   interp,
		frames:   []Tokenizer{NewTokenizer(text, interp.registry.Has)},
		origin:   origin,
		filename: filename,
	}
}

// parse runs statements until the input is exhausted
func (p *parser) parse() {
	p.advance()
	for {
		switch p.current.Kind {
		case TokenEOF:
			if len(p.frames) == 1 {
				return
			}
			p.pop()
			p.advance()
		case TokenEOS:
			p.advance()
		default:
			if len(p.frames) == 1 {
				p.line, p.column = p.current.Line, p.current.Column
			}
			p.statement()
		}
	}
}

// statement handles one statement starting at p.current. It leaves p.current
// at the statement's terminator, or at the first token of a pushed alias body.
func (p *parser) statement() {
	name := p.current.Text

	if body, ok := p.interp.vars.Get(name); ok {
		expand := p.interp.state.ShouldExpand(name)
		// Anything after an alias name up to the terminator is ignored
		p.skipStatement()
		if expand {
			p.push(name, body)
		}
		return
	}

	if p.current.Kind == TokenCommand {
		p.dispatch()
		return
	}

	p.interp.registry.PrintUnknown(name)
	p.skipStatement()
}

// dispatch resolves arguments and runs the command named by p.current
func (p *parser) dispatch() {
	cmd, ok := p.interp.registry.Lookup(p.current.Text, true)
	if !ok {
		p.skipStatement()
		return
	}
	p.advance()

	args := p.arguments()

	// Single-parameter commands take the whole phrase as one argument
	if cmd.MaxArgs == 1 && len(args) > 1 {
		args = []string{strings.Join(args, " ")}
	}

	if len(args) > int(cmd.MaxArgs) || len(args) < int(cmd.MinArgs) {
		p.interp.registry.PrintUsage(cmd)
		if len(args) > 0 {
			p.interp.out.Print(OutputEcho, fmt.Sprintf("arguments size must be within range [%d,%d], but size is %d\n",
				cmd.MinArgs, cmd.MaxArgs, len(args)))
		}
		p.interp.logger.DebugCat(CatArgument, "%q called with %d args, wants [%d,%d]", cmd.Name, len(args), cmd.MinArgs, cmd.MaxArgs)
		return
	}

	if !p.interp.state.GateCommand(cmd.Name) {
		p.interp.logger.DebugCat(CatMacro, "toggle command %q gated", cmd.Name)
		return
	}

	ctx := &Context{
		Args: args,
		Position: SourcePosition{
			Filename: p.filename,
			Line:     p.line,
			Column:   p.column,
		},
		Origin: p.currentOrigin(),
		interp: p.interp,
	}
	p.interp.registry.Run(cmd, ctx)
}

// arguments collects the statement's remaining tokens, substituting $variables
func (p *parser) arguments() []string {
	var args []string
	for p.current.Kind != TokenEOF && p.current.Kind != TokenEOS {
		switch p.current.Kind {
		case TokenCommand:
			args = append(args, p.current.Text)
		case TokenString:
			args = append(args, p.interp.substitute(p.current.Text))
		}
		p.advance()
	}
	return args
}

// push starts running an alias body, unless MaxAliasDepth alias frames are live
func (p *parser) push(name, body string) {
	depth := len(p.frames) - 1
	if depth >= p.interp.config.MaxAliasDepth {
		p.abortExpansion(name)
		return
	}
	p.interp.logger.TraceCat(CatMacro, "expand alias %q at depth %d", name, depth+1)
	p.frames = append(p.frames, NewTokenizer(body, p.interp.registry.Has))
	p.advance()
}

// pop drops the innermost alias frame
func (p *parser) pop() {
	p.frames[len(p.frames)-1] = Tokenizer{}
	p.frames = p.frames[:len(p.frames)-1]
}

// abortExpansion drops every alias frame and abandons the outermost statement.
// The root frame is already past that statement, so parsing resumes with the next one.
func (p *parser) abortExpansion(name string) {
	p.interp.overflows++
	limit := p.interp.config.MaxAliasDepth
	p.interp.logger.DebugCat(CatMacro, "alias depth limit %d reached expanding %q", limit, name)
	if p.interp.config.ReportAliasOverflow {
		p.interp.out.Print(OutputWarning, fmt.Sprintf("alias recursion limit (%d) reached while expanding \"%s\"\n", limit, name))
	}

	for len(p.frames) > 1 {
		p.pop()
	}
	p.current = Token{Kind: TokenEOS}
}

// advance reads the next token from the innermost frame
func (p *parser) advance() {
	p.current = p.frames[len(p.frames)-1].Next()
}

// skipStatement consumes tokens until the current frame's terminator
func (p *parser) skipStatement() {
	for p.current.Kind != TokenEOS && p.current.Kind != TokenEOF {
		p.advance()
	}
}

// currentOrigin adds FromAlias when running inside an alias body
func (p *parser) currentOrigin() Origin {
	if len(p.frames) > 1 {
		return p.origin | FromAlias
	}
	return p.origin
}
