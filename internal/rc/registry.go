package rc

import (
	"fmt"
	"strings"
)

// Registry maps command names to commands. It is built once and never
// modified.
type Registry struct {
	commands []Command
	byName   map[string]Command
}

// Builtins returns the commands served by default, in help order.
func Builtins() []Command {
	return []Command{
		CreateMarker{},
		RemoveMarker{},
		SetTabTitle{},
		SetWindowTitle{},
	}
}

// NewRegistry registers cmds. Names must be non-empty and unique.
func NewRegistry(cmds ...Command) (*Registry, error) {
	r := &Registry{byName: make(map[string]Command, len(cmds))}
	for _, c := range cmds {
		name := c.Descriptor().Name
		if name == "" {
			return nil, fmt.Errorf("register %T: empty command name", c)
		}
		if NormalizeName(name) != name {
			return nil, fmt.Errorf("register %q: names use underscores", name)
		}
		if _, dup := r.byName[name]; dup {
			return nil, fmt.Errorf("register %q: duplicate command name", name)
		}
		r.byName[name] = c
		r.commands = append(r.commands, c)
	}
	return r, nil
}

// DefaultRegistry returns a registry of the builtin commands.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(Builtins()...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup finds a command by name. Dashes and underscores are
// interchangeable, so "set-tab-title" finds set_tab_title.
func (r *Registry) Lookup(name string) (Command, error) {
	if c, ok := r.byName[NormalizeName(name)]; ok {
		return c, nil
	}
	return nil, &UnknownCommandError{Name: name}
}

// Commands returns the registered commands in registration order.
func (r *Registry) Commands() []Command {
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// NormalizeName converts a CLI spelling to the registry spelling.
func NormalizeName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// CLIName converts a registry name to its CLI spelling.
func CLIName(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}
