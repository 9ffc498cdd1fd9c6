package engine

import "regexp"

var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.\[\]]+$`)

// Named is implemented by anything addressable by a human-readable name.
type Named interface {
	Name() string
}

// NameMustBeValid panics if the given name contains characters that would
// make it unsafe to use as a port or component identifier.
func NameMustBeValid(name string) {
	if !nameRegex.MatchString(name) {
		panic("invalid name: " + name)
	}
}

// NamedBase provides a default Named implementation.
type NamedBase struct {
	name string
}

// MakeNamedBase creates a NamedBase with the given name.
func MakeNamedBase(name string) NamedBase {
	NameMustBeValid(name)
	return NamedBase{name: name}
}

// Name returns the name of the object.
func (n NamedBase) Name() string {
	return n.name
}
