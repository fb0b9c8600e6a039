package sweatci

// AliasRunState tracks loop aliases and engaged toggles.
// Both sets keep insertion order so listings and loop runs are deterministic.
type AliasRunState struct {
	loopAliases    []string
	engagedToggles []string
	logger         *Logger
}

// NewAliasRunState creates an empty state
func NewAliasRunState(logger *Logger) *AliasRunState {
	return &AliasRunState{logger: logger}
}

// ShouldExpand applies the special-alias rules to an alias reference and
// reports whether its body must run now.
//
//	!name  toggles loop membership, never runs now
//	+name  runs only if name is not engaged, then engages it
//	-name  runs only if name is engaged, then disengages it
//	other  always runs
func (s *AliasRunState) ShouldExpand(aliasName string) bool {
	kind, base := classifyAlias(aliasName)
	switch kind {
	case aliasLoop:
		running := s.ToggleLoop(aliasName)
		s.debug("loop alias %q running: %v", aliasName, running)
		return false
	case aliasEngage:
		if !s.Engage(base) {
			s.debug("toggle %q already engaged, skipping %q", base, aliasName)
			return false
		}
		return true
	case aliasDisengage:
		if !s.Disengage(base) {
			s.debug("toggle %q not engaged, skipping %q", base, aliasName)
			return false
		}
		return true
	}
	return true
}

// GateCommand applies engagement bookkeeping to a directly invoked command.
// Commands named +x run only when x is not engaged; -x only when it is.
func (s *AliasRunState) GateCommand(commandName string) bool {
	kind, base := classifyAlias(commandName)
	switch kind {
	case aliasEngage:
		return s.Engage(base)
	case aliasDisengage:
		return s.Disengage(base)
	}
	return true
}

// ToggleLoop adds name to the loop set, or removes it if present.
// It returns true when the alias is looping afterwards.
func (s *AliasRunState) ToggleLoop(name string) bool {
	if s.StopLoop(name) {
		return false
	}
	s.loopAliases = append(s.loopAliases, name)
	return true
}

// StopLoop removes name from the loop set, reporting whether it was there
func (s *AliasRunState) StopLoop(name string) bool {
	var removed bool
	s.loopAliases, removed = removeString(s.loopAliases, name)
	return removed
}

// IsLooping reports whether name is in the loop set
func (s *AliasRunState) IsLooping(name string) bool {
	return indexString(s.loopAliases, name) >= 0
}

// LoopAliases returns a copy of the loop set in start order
func (s *AliasRunState) LoopAliases() []string {
	return append([]string(nil), s.loopAliases...)
}

// Engage marks base as held down. It returns false if it already was.
func (s *AliasRunState) Engage(base string) bool {
	if s.IsEngaged(base) {
		return false
	}
	s.engagedToggles = append(s.engagedToggles, base)
	return true
}

// Disengage releases base. It returns false if it was not engaged.
func (s *AliasRunState) Disengage(base string) bool {
	var removed bool
	s.engagedToggles, removed = removeString(s.engagedToggles, base)
	return removed
}

// IsEngaged reports whether base is held down
func (s *AliasRunState) IsEngaged(base string) bool {
	return indexString(s.engagedToggles, base) >= 0
}

// EngagedToggles returns a copy of the engaged set
func (s *AliasRunState) EngagedToggles() []string {
	return append([]string(nil), s.engagedToggles...)
}

// Reset clears both sets
func (s *AliasRunState) Reset() {
	s.loopAliases = nil
	s.engagedToggles = nil
}

func (s *AliasRunState) debug(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.DebugCat(CatMacro, format, args...)
	}
}

func indexString(list []string, value string) int {
	for i, v := range list {
		if v == value {
			return i
		}
	}
	return -1
}

func removeString(list []string, value string) ([]string, bool) {
	i := indexString(list, value)
	if i < 0 {
		return list, false
	}
	return append(list[:i], list[i+1:]...), true
}
