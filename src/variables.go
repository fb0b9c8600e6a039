package sweatci

import "sort"

// VariableStore maps variable and alias names to their text.
// The interpreter only reads and writes through it; the host owns it.
type VariableStore interface {
	Get(name string) (string, bool)
	Set(name, value string)
	Delete(name string) bool
	Names() []string
	Len() int
}

// MapVariables is the default map-backed VariableStore
type MapVariables map[string]string

// NewMapVariables creates an empty MapVariables
func NewMapVariables() MapVariables {
	return make(MapVariables)
}

// Get returns the value stored under name
func (m MapVariables) Get(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// Set stores value under name
func (m MapVariables) Set(name, value string) {
	m[name] = value
}

// Delete removes name, reporting whether it existed
func (m MapVariables) Delete(name string) bool {
	if _, ok := m[name]; !ok {
		return false
	}
	delete(m, name)
	return true
}

// Names returns all names in sorted order
func (m MapVariables) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of stored names
func (m MapVariables) Len() int {
	return len(m)
}

// aliasKind is the leading character that gives an alias special behavior
type aliasKind byte

const (
	aliasPlain     aliasKind = 0
	aliasLoop      aliasKind = '!'
	aliasEngage    aliasKind = '+'
	aliasDisengage aliasKind = '-'
)

// classifyAlias returns the special kind of name and its base name without the prefix
func classifyAlias(name string) (aliasKind, string) {
	if name == "" {
		return aliasPlain, name
	}
	switch k := aliasKind(name[0]); k {
	case aliasLoop, aliasEngage, aliasDisengage:
		return k, name[1:]
	}
	return aliasPlain, name
}
