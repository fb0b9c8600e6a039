package sweatci

// RegisterStandardLibrary registers the built-in console commands
// Modules: core (help, commands, echo, exec), variables (alias, variables,
// variable, incrementvar, toggle)
func (in *Interpreter) RegisterStandardLibrary() {
	in.RegisterCoreLib()
	in.RegisterVariablesLib()
}

// mustRegister registers a built-in. Failures (a host command already using
// the name) are logged by the registry and the host's command is kept.
func (in *Interpreter) mustRegister(name string, minArgs, maxArgs uint8, handler Handler, usage string) {
	if _, err := in.RegisterCommand(name, minArgs, maxArgs, handler, usage); err != nil {
		in.logger.DebugCat(CatSystem, "built-in %q not registered: %v", name, err)
	}
}
