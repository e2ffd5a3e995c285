package rc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedCommand struct {
	CreateMarker
	name string
}

func (c namedCommand) Descriptor() Descriptor {
	d := c.CreateMarker.Descriptor()
	d.Name = c.name
	return d
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	var names []string
	for _, c := range r.Commands() {
		names = append(names, c.Descriptor().Name)
	}
	assert.Equal(t, []string{"create_marker", "remove_marker", "set_tab_title", "set_window_title"}, names)
}

func TestRegistry_Lookup(t *testing.T) {
	r := DefaultRegistry()

	for _, name := range []string{"create_marker", "create-marker"} {
		c, err := r.Lookup(name)
		require.NoError(t, err, name)
		assert.IsType(t, CreateMarker{}, c)
	}

	_, err := r.Lookup("launch")
	var unknown *UnknownCommandError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "launch", unknown.Name)
}

func TestNewRegistry_RejectsBadNames(t *testing.T) {
	tests := []struct {
		name string
		cmds []Command
	}{
		{name: "duplicate", cmds: []Command{CreateMarker{}, CreateMarker{}}},
		{name: "empty", cmds: []Command{namedCommand{name: ""}}},
		{name: "dashes", cmds: []Command{namedCommand{name: "create-marker"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.cmds...)
			assert.Error(t, err)
		})
	}
}

func TestRegistry_CommandsIsACopy(t *testing.T) {
	r := DefaultRegistry()
	cmds := r.Commands()
	cmds[0] = nil

	assert.NotNil(t, r.Commands()[0])
}

func TestCLIName(t *testing.T) {
	assert.Equal(t, "set-tab-title", CLIName("set_tab_title"))
	assert.Equal(t, "set_tab_title", NormalizeName("set-tab-title"))
}
