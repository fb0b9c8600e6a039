package sweatci

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// RegisterVariablesLib registers alias, variables, cvars, variable, incrementvar and toggle
func (in *Interpreter) RegisterVariablesLib() {
	// alias <name> - delete; alias <name> <body> - create or replace
	in.mustRegister("alias", 1, 2, func(ctx *Context) {
		vars := ctx.Variables()
		name := ctx.Args[0]

		if len(ctx.Args) == 1 {
			if !vars.Delete(name) {
				ctx.Printf(OutputError, "\"%s\" variable not found\n", name)
				return
			}
			switch kind, base := classifyAlias(name); kind {
			case aliasLoop:
				in.state.StopLoop(name)
			case aliasEngage:
				in.state.Disengage(base)
			}
			in.logger.DebugCat(CatVariable, "deleted alias %q", name)
			return
		}

		if in.registry.Has(name) {
			ctx.Print(OutputError, "varName is a command name, therefore this variable can not be created\n")
			return
		}
		if name == "" || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
			ctx.Print(OutputError, "variable name can not have whitespace.\n")
			return
		}

		// A +toggle always gets a matching -toggle so releasing it is never an unknown command
		if kind, base := classifyAlias(name); kind == aliasEngage {
			release := string(aliasDisengage) + base
			if _, ok := vars.Get(release); !ok && !in.registry.Has(release) {
				vars.Set(release, "")
			}
		}

		vars.Set(name, ctx.Args[1])
		in.logger.DebugCat(CatVariable, "alias %q = %q", name, ctx.Args[1])
	}, "<var> <commands?> - creates/deletes variables")

	// variables - count, then every alias with its body
	in.mustRegister("variables", 0, 0, func(ctx *Context) {
		vars := ctx.Variables()
		var sb strings.Builder
		sb.WriteString("amount of variables: ")
		sb.WriteString(strconv.Itoa(vars.Len()))
		for _, name := range vars.Names() {
			value, _ := vars.Get(name)
			sb.WriteString("\n" + name + " = \"" + value + "\"")
		}
		sb.WriteByte('\n')
		ctx.Print(OutputEcho, sb.String())
	}, "- list of variables")

	// cvars - count, then every bound CVAR with its current value
	in.mustRegister("cvars", 0, 0, func(ctx *Context) {
		names := in.cvars.Names()
		var sb strings.Builder
		sb.WriteString("amount of cvars: ")
		sb.WriteString(strconv.Itoa(len(names)))
		for _, name := range names {
			if cvar, ok := in.cvars.Resolve(name); ok {
				sb.WriteString("\n" + name + " = \"" + cvar.Get() + "\"")
			}
		}
		sb.WriteByte('\n')
		ctx.Print(OutputEcho, sb.String())
	}, "- list of cvars with their values")

	in.mustRegister("variable", 1, 1, func(ctx *Context) {
		name := ctx.Args[0]
		value, ok := ctx.Variables().Get(name)
		if !ok {
			ctx.Printf(OutputError, "variable \"%s\" does not exist\n", name)
			return
		}
		ctx.Printf(OutputEcho, "%s = \"%s\"\n", name, value)
	}, "- shows variable value")

	// incrementvar <var|cvar> <min> <max> <delta>
	in.mustRegister("incrementvar", 4, 4, func(ctx *Context) {
		name := ctx.Args[0]
		minValue, err1 := parseNumber(ctx.Args[1])
		maxValue, err2 := parseNumber(ctx.Args[2])
		delta, err3 := parseNumber(ctx.Args[3])
		if err1 != nil || err2 != nil || err3 != nil {
			ctx.Print(OutputError, "one of the variables is not a number\n")
			return
		}
		if minValue > maxValue {
			ctx.Print(OutputError, "minValue is higher than maxValue\n")
			return
		}

		if cvar, ok := in.cvars.Resolve(name); ok {
			current, err := parseNumber(cvar.Get())
			if err != nil {
				ctx.Printf(OutputError, "variable \"%s\" does not contain a number\n", name)
				return
			}
			next := FormatNumber(wrapNumber(current+delta, minValue, maxValue))
			if err := cvar.Set(next); err != nil {
				in.logger.DebugCat(CatVariable, "cvar %q rejected %q: %v", name, next, err)
				if cmd, ok := in.registry.Lookup(name, false); ok {
					in.registry.PrintUsage(cmd)
				}
			}
			return
		}

		vars := ctx.Variables()
		value, ok := vars.Get(name)
		if !ok {
			ctx.Printf(OutputError, "unknown variable \"%s\"\n", name)
			return
		}
		current, err := parseNumber(value)
		if err != nil {
			ctx.Printf(OutputError, "variable value \"%s\" is not a number\n", value)
			return
		}
		vars.Set(name, FormatNumber(wrapNumber(current+delta, minValue, maxValue)))
	}, "<var|cvar> <minValue> <maxValue> <delta> - increments the value of a variable")

	// toggle <var|cvar> <a> <b>
	in.mustRegister("toggle", 3, 3, func(ctx *Context) {
		name, first, second := ctx.Args[0], ctx.Args[1], ctx.Args[2]

		if cvar, ok := in.cvars.Resolve(name); ok {
			next := first
			if cvar.Get() == first {
				next = second
			}
			if err := cvar.Set(next); err != nil {
				in.logger.DebugCat(CatVariable, "cvar %q rejected %q: %v", name, next, err)
				if cmd, ok := in.registry.Lookup(name, false); ok {
					in.registry.PrintUsage(cmd)
				}
			}
			return
		}

		vars := ctx.Variables()
		value, ok := vars.Get(name)
		if !ok {
			ctx.Printf(OutputError, "unknown variable \"%s\"\n", name)
			return
		}
		if value == first {
			vars.Set(name, second)
		} else {
			vars.Set(name, first)
		}
	}, "<var|cvar> <option1> <option2> - toggles value between option1 and option2")
}

// parseNumber accepts finite decimal numbers only
func parseNumber(text string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, strconv.ErrSyntax
	}
	return f, nil
}

// wrapNumber brings v back into [lo, hi] by whole steps of hi-lo.
// A zero-width range pins v to lo.
func wrapNumber(v, lo, hi float64) float64 {
	span := hi - lo
	if span <= 0 {
		return lo
	}
	if v > hi {
		v -= math.Ceil((v-hi)/span) * span
	} else if v < lo {
		v += math.Ceil((lo-v)/span) * span
	}
	return v
}
