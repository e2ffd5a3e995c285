package rc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timvw/pane-remote/internal/marker"
)

func TestCreateMarker_EncodeRejectsShortArgs(t *testing.T) {
	cmd := CreateMarker{}
	for _, args := range [][]string{nil, {}, {"text"}} {
		payload, err := cmd.Encode(GlobalOptions{}, flags(cmd), args)

		var argErr *ArgumentError
		require.ErrorAs(t, err, &argErr, "args %v", args)
		assert.Nil(t, payload)
		assert.Equal(t, "create_marker", argErr.Command)
	}
}

func TestCreateMarker_EncodeRejectsBadGrammar(t *testing.T) {
	cmd := CreateMarker{}
	args := []string{"text", "one", "ERROR"}

	payload, err := cmd.Encode(GlobalOptions{}, flags(cmd), args)

	var markerErr *MarkerError
	require.ErrorAs(t, err, &markerErr)
	assert.Nil(t, payload)
	assert.Equal(t, args, markerErr.Args)
	assert.Contains(t, err.Error(), "text one ERROR")

	var synErr *marker.SyntaxError
	assert.True(t, errors.As(err, &synErr))
}

func TestCreateMarker_EncodeKeepsTokens(t *testing.T) {
	cmd := CreateMarker{}
	tests := [][]string{
		{"text", "1", "ERROR"},
		{"iregex", "2", `warn\w*`, "3", "fatal"},
		{"itext", "1", "a b c"},
	}
	for _, args := range tests {
		payload, err := cmd.Encode(GlobalOptions{}, flags(cmd, "--match", "title:x", "--self"), args)
		require.NoError(t, err)

		assert.Equal(t, []string{"match", "self", "marker_spec"}, payload.Fields())
		assert.Equal(t, args, payload.Strings("marker_spec"))
		assert.Equal(t, "title:x", payload.String("match"))
		assert.True(t, payload.Bool("self"))
	}
}

func TestCreateMarker_DecodeActiveWindow(t *testing.T) {
	w := &fakeWindow{id: 1}
	other := &fakeWindow{id: 2}
	r := &fakeResolver{windows: []*fakeWindow{w, other}, activeWindow: w}
	payload := NewPayload().
		SetString("match", "").
		SetBool("self", false).
		SetStrings("marker_spec", []string{"text", "1", "ERROR"})

	require.NoError(t, CreateMarker{}.Decode(r, other, payload))

	assert.Equal(t, []string{"text", "1", "ERROR"}, w.marker)
	assert.Nil(t, other.marker)
	assert.Zero(t, r.matchCalls)
}

func TestCreateMarker_DecodeSelf(t *testing.T) {
	active := &fakeWindow{id: 1}
	self := &fakeWindow{id: 2}
	r := &fakeResolver{windows: []*fakeWindow{active, self}, activeWindow: active}
	payload := NewPayload().SetBool("self", true).SetStrings("marker_spec", []string{"text", "1", "x"})

	require.NoError(t, CreateMarker{}.Decode(r, self, payload))

	assert.Equal(t, []string{"text", "1", "x"}, self.marker)
	assert.Nil(t, active.marker)
}

func TestCreateMarker_DecodeSelfWithoutArrivingWindow(t *testing.T) {
	active := &fakeWindow{id: 1}
	r := &fakeResolver{windows: []*fakeWindow{active}, activeWindow: active}
	payload := NewPayload().SetBool("self", true).SetStrings("marker_spec", []string{"text", "1", "x"})

	require.NoError(t, CreateMarker{}.Decode(r, nil, payload))
	assert.Equal(t, 1, active.applied)
}

func TestCreateMarker_DecodeMatch(t *testing.T) {
	w1, w2, w3 := &fakeWindow{id: 1}, &fakeWindow{id: 2}, &fakeWindow{id: 3}
	r := (&fakeResolver{
		windows:      []*fakeWindow{w1, w2, w3},
		activeWindow: w1,
		windowsFor:   map[string][]int{"title:log": {3, 2}},
	}).track()
	payload := NewPayload().SetString("match", "title:log").SetStrings("marker_spec", []string{"regex", "1", "E.*"})

	require.NoError(t, CreateMarker{}.Decode(r, nil, payload))

	assert.Nil(t, w1.marker)
	assert.Equal(t, []string{"regex", "1", "E.*"}, w2.marker)
	assert.Equal(t, []string{"regex", "1", "E.*"}, w3.marker)
	assert.Equal(t, []int{3, 2}, r.mutated)
}

func TestCreateMarker_DecodeEmptyMatch(t *testing.T) {
	w := &fakeWindow{id: 1}
	r := &fakeResolver{windows: []*fakeWindow{w}, activeWindow: w}
	payload := NewPayload().SetString("match", "title:nothing").SetBool("self", true).
		SetStrings("marker_spec", []string{"text", "1", "x"})

	err := CreateMarker{}.Decode(r, w, payload)

	var matchErr *MatchError
	require.ErrorAs(t, err, &matchErr)
	assert.Equal(t, "title:nothing", matchErr.Expression)
	assert.Equal(t, "windows", matchErr.Kind)
	assert.Zero(t, w.applied)
}

func TestCreateMarker_DecodeResolverError(t *testing.T) {
	w := &fakeWindow{id: 1}
	r := &fakeResolver{windows: []*fakeWindow{w}, activeWindow: w}
	payload := NewPayload().SetString("match", "fail:x").SetStrings("marker_spec", []string{"text", "1", "x"})

	require.Error(t, CreateMarker{}.Decode(r, nil, payload))
	assert.Zero(t, w.applied)
}

func TestCreateMarker_DecodeContinuesAfterTargetFailure(t *testing.T) {
	boom := errors.New("pane went away")
	w1, w2 := &fakeWindow{id: 1, setErr: boom}, &fakeWindow{id: 2}
	r := &fakeResolver{
		windows:    []*fakeWindow{w1, w2},
		windowsFor: map[string][]int{"session:work": {1, 2}},
	}
	payload := NewPayload().SetString("match", "session:work").SetStrings("marker_spec", []string{"text", "1", "x"})

	err := CreateMarker{}.Decode(r, nil, payload)

	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"text", "1", "x"}, w2.marker)
}

func TestCreateMarker_DecodeNoActiveWindow(t *testing.T) {
	r := &fakeResolver{}
	payload := NewPayload().SetStrings("marker_spec", []string{"text", "1", "x"})

	assert.NoError(t, CreateMarker{}.Decode(r, nil, payload))
}

func TestRemoveMarker(t *testing.T) {
	cmd := RemoveMarker{}
	payload, err := cmd.Encode(GlobalOptions{}, flags(cmd, "--self"), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"match", "self"}, payload.Fields())

	active := &fakeWindow{id: 1, marker: []string{"text", "1", "a"}}
	self := &fakeWindow{id: 2, marker: []string{"text", "1", "b"}}
	r := &fakeResolver{windows: []*fakeWindow{active, self}, activeWindow: active}

	require.NoError(t, cmd.Decode(r, self, payload))
	assert.Nil(t, self.marker)
	assert.Equal(t, []string{"text", "1", "a"}, active.marker)
}

func TestSetTabTitle_Encode(t *testing.T) {
	cmd := SetTabTitle{}
	tests := []struct {
		args []string
		want string
	}{
		{args: []string{"Hello", "World"}, want: "Hello World"},
		{args: []string{"one"}, want: "one"},
		{args: nil, want: ""},
		{args: []string{}, want: ""},
	}
	for _, tt := range tests {
		payload, err := cmd.Encode(GlobalOptions{}, flags(cmd), tt.args)
		require.NoError(t, err)
		assert.Equal(t, tt.want, payload.String("title"))
		assert.True(t, payload.Has("title"))
		assert.Equal(t, []string{"title", "match"}, payload.Fields())
	}
}

func TestSetTabTitle_DecodeMatchInOrder(t *testing.T) {
	t1, t2, t3 := &fakeTab{id: 1}, &fakeTab{id: 2}, &fakeTab{id: 3}
	r := (&fakeResolver{
		tabs:      []*fakeTab{t1, t2, t3},
		activeTab: t3,
		tabsFor:   map[string][]int{"title:foo": {2, 1}},
	}).track()
	payload := NewPayload().SetString("title", "Build Log").SetString("match", "title:foo")

	require.NoError(t, SetTabTitle{}.Decode(r, nil, payload))

	assert.Equal(t, "Build Log", t1.title)
	assert.Equal(t, "Build Log", t2.title)
	assert.Empty(t, t3.titled)
	assert.Equal(t, []int{2, 1}, r.mutated)
}

func TestSetTabTitle_DecodeEmptyMatch(t *testing.T) {
	tab := &fakeTab{id: 1}
	r := &fakeResolver{tabs: []*fakeTab{tab}, activeTab: tab}
	payload := NewPayload().SetString("title", "x").SetString("match", "title:none")

	err := SetTabTitle{}.Decode(r, nil, payload)

	var matchErr *MatchError
	require.ErrorAs(t, err, &matchErr)
	assert.Equal(t, "title:none", matchErr.Expression)
	assert.Equal(t, "tabs", matchErr.Kind)
	assert.Contains(t, err.Error(), "tabs")
	assert.Empty(t, tab.titled)
}

func TestSetTabTitle_DecodeArrivingWindowTab(t *testing.T) {
	own, active := &fakeTab{id: 1}, &fakeTab{id: 2}
	w := &fakeWindow{id: 5, tab: own}
	r := &fakeResolver{windows: []*fakeWindow{w}, tabs: []*fakeTab{own, active}, activeTab: active}
	payload := NewPayload().SetString("title", "").SetString("match", "")

	require.NoError(t, SetTabTitle{}.Decode(r, w, payload))

	assert.Equal(t, []string{""}, own.titled)
	assert.Empty(t, active.titled)
}

func TestSetTabTitle_DecodeActiveTab(t *testing.T) {
	active := &fakeTab{id: 2}
	r := &fakeResolver{tabs: []*fakeTab{active}, activeTab: active}
	payload := NewPayload().SetString("title", "hi")

	require.NoError(t, SetTabTitle{}.Decode(r, nil, payload))
	assert.Equal(t, "hi", active.title)
}

func TestSetTabTitle_DecodeNoTabIsSilent(t *testing.T) {
	r := &fakeResolver{}
	payload := NewPayload().SetString("title", "hi").SetString("match", "")

	assert.NoError(t, SetTabTitle{}.Decode(r, nil, payload))

	// An arriving window that belongs to no tab is skipped the same way.
	orphan := &fakeWindow{id: 9}
	assert.NoError(t, SetTabTitle{}.Decode(r, orphan, payload))
}

func TestSetWindowTitle(t *testing.T) {
	cmd := SetWindowTitle{}
	payload, err := cmd.Encode(GlobalOptions{}, flags(cmd), []string{"my", "pane"})
	require.NoError(t, err)

	active, self := &fakeWindow{id: 1}, &fakeWindow{id: 2}
	r := &fakeResolver{windows: []*fakeWindow{active, self}, activeWindow: active}

	require.NoError(t, cmd.Decode(r, self, payload))
	assert.Equal(t, "my pane", self.title)
	assert.Empty(t, active.title)

	require.NoError(t, cmd.Decode(r, nil, payload))
	assert.Equal(t, "my pane", active.title)

	empty := NewPayload().SetString("title", "x").SetString("match", "id:42")
	var matchErr *MatchError
	require.ErrorAs(t, cmd.Decode(r, nil, empty), &matchErr)
	assert.Equal(t, "windows", matchErr.Kind)
}

func TestDescriptors(t *testing.T) {
	for _, cmd := range Builtins() {
		d := cmd.Descriptor()
		assert.NotEmpty(t, d.Name)
		assert.NotEmpty(t, d.Short, d.Name)
		assert.NotEmpty(t, d.Long, d.Name)
		require.NotEmpty(t, d.Options, d.Name)
		assert.Equal(t, "match", d.Options[0].Name, d.Name)
	}
}
