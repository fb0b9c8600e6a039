package sweatci

import (
	"strings"
)

// RegisterCoreLib registers help, commands, echo and exec
func (in *Interpreter) RegisterCoreLib() {
	// help - usage of one command, or how to find the rest
	in.mustRegister("help", 0, 1, func(ctx *Context) {
		if len(ctx.Args) == 1 {
			if cmd, ok := in.registry.Lookup(ctx.Args[0], true); ok {
				in.registry.PrintUsage(cmd)
			}
			return
		}
		ctx.Printf(OutputWarning, "%s %s - see \"commands\" command to get a list of commands\n",
			ctx.Command.Name, ctx.Command.Usage)
	}, "<command> - shows the usage of the command specified")

	// commands - every command with its usage, in registration order
	in.mustRegister("commands", 0, 0, func(ctx *Context) {
		var sb strings.Builder
		for _, cmd := range in.registry.Commands() {
			sb.WriteString(cmd.Name)
			sb.WriteByte(' ')
			sb.WriteString(cmd.Usage)
			sb.WriteByte('\n')
		}
		ctx.Print(OutputEcho, sb.String())
	}, "- shows a list of commands with their usages")

	// echo - the whole statement is one argument
	in.mustRegister("echo", 1, 1, func(ctx *Context) {
		ctx.Print(OutputEcho, ctx.Args[0]+"\n")
	}, "<message> - echoes a message to the console")

	// exec - run a script file
	in.mustRegister("exec", 1, 1, func(ctx *Context) {
		// Failures are already reported to the console
		_ = in.ExecFile(ctx.Args[0])
	}, "- executes a .cfg file that contains SweatCI script")
}
