package sweatci

import (
	"strings"
)

// substitute replaces $name references in a string argument.
// A name runs up to the next whitespace or '"'. Variables win over CVARs, and an
// unresolved reference is kept as written. "\$" produces a literal '$'.
func (in *Interpreter) substitute(text string) string {
	if !strings.ContainsRune(text, '$') {
		return text
	}

	var result strings.Builder
	i := 0
	for i < len(text) {
		c := text[i]

		if c == '\\' && i+1 < len(text) && text[i+1] == '$' {
			result.WriteByte('$')
			i += 2
			continue
		}

		if c != '$' {
			result.WriteByte(c)
			i++
			continue
		}

		i++ // skip '$'
		start := i
		for i < len(text) && !endsReference(text[i]) {
			i++
		}
		name := text[start:i]

		if value, ok := in.resolveReference(name); ok {
			result.WriteString(value)
		} else {
			in.logger.TraceCat(CatVariable, "unresolved reference $%s", name)
			result.WriteByte('$')
			result.WriteString(name)
		}
	}
	return result.String()
}

func endsReference(c byte) bool {
	return isBlank(c) || c == '\n' || c == '"'
}

// resolveReference looks name up in the variable store, then among the CVARs
func (in *Interpreter) resolveReference(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	if value, ok := in.vars.Get(name); ok {
		return value, true
	}
	if cvar, ok := in.cvars.Resolve(name); ok {
		return cvar.Get(), true
	}
	return "", false
}

// ResolveCvar returns a CVAR's current text
func (in *Interpreter) ResolveCvar(name string) (string, error) {
	cvar, ok := in.cvars.Resolve(name)
	if !ok {
		return "", &ScriptError{Message: "unknown cvar \"" + name + "\"", Err: ErrUnknownCvar}
	}
	return cvar.Get(), nil
}
