package sweatci

import (
	"fmt"
	"os"
	"strings"
)

// StripComments removes // line comments and /* */ block comments.
// Double-quoted strings are copied verbatim, comment markers included.
// Newlines are always kept, even inside block comments, so line numbers
// in the result match the source.
func StripComments(source string) string {
	var result strings.Builder
	result.Grow(len(source))

	runes := []rune(source)
	length := len(runes)
	i := 0

	for i < length {
		char := runes[i]

		// Escape sequences pass through untouched
		if char == '\\' && i+1 < length {
			result.WriteRune(char)
			result.WriteRune(runes[i+1])
			i += 2
			continue
		}

		// Quoted strings - skip comment processing inside quotes
		if char == '"' {
			result.WriteRune(char)
			i++
			for i < length {
				c := runes[i]
				result.WriteRune(c)
				if c == '\\' && i+1 < length {
					result.WriteRune(runes[i+1])
					i += 2
					continue
				}
				i++
				if c == '"' {
					break
				}
			}
			continue
		}

		if char == '/' && i+1 < length {
			switch runes[i+1] {
			case '/':
				// Line comment runs up to (not including) the newline
				i += 2
				for i < length && runes[i] != '\n' {
					i++
				}
				continue
			case '*':
				i += 2
				for i < length {
					if runes[i] == '*' && i+1 < length && runes[i+1] == '/' {
						i += 2
						break
					}
					if runes[i] == '\n' {
						result.WriteRune('\n')
					}
					i++
				}
				continue
			}
		}

		result.WriteRune(char)
		i++
	}

	return result.String()
}

// ExecFile runs a script file. A file that can not be read is reported as
// could not load file "<path>" and returned as an error.
func (in *Interpreter) ExecFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		in.out.Print(OutputError, fmt.Sprintf("could not load file \"%s\"\n", path))
		in.logger.DebugCat(CatIO, "read %s: %v", path, err)
		return &ScriptError{
			Message:  "could not load file",
			Position: SourcePosition{Filename: path},
			Err:      err,
		}
	}
	return in.ExecSource(path, string(content))
}

// ExecSource runs script text as if it were read from filename
func (in *Interpreter) ExecSource(filename, source string) error {
	if in.execDepth >= in.config.MaxExecDepth {
		in.out.Print(OutputError, fmt.Sprintf("exec depth limit (%d) reached, not running \"%s\"\n", in.config.MaxExecDepth, filename))
		return &ScriptError{
			Message:  fmt.Sprintf("exec depth limit (%d) reached", in.config.MaxExecDepth),
			Position: SourcePosition{Filename: filename},
		}
	}

	in.execDepth++
	defer func() { in.execDepth-- }()

	in.logger.DebugCat(CatIO, "exec %s (depth %d)", filename, in.execDepth)
	in.ParseLineAt(StripComments(source), FromFile, filename)
	return nil
}
