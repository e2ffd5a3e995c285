package rc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayload_JSONKeepsFieldOrder(t *testing.T) {
	p := NewPayload().
		SetString("match", "id:1").
		SetBool("self", true).
		SetStrings("marker_spec", []string{"text", "1", "ERROR"})

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, `{"match":"id:1","self":true,"marker_spec":["text","1","ERROR"]}`, string(data))

	var back Payload
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, p.Fields(), back.Fields())
	assert.Equal(t, "id:1", back.String("match"))
	assert.True(t, back.Bool("self"))
	assert.Equal(t, []string{"text", "1", "ERROR"}, back.Strings("marker_spec"))
}

func TestPayload_SetOverwritesInPlace(t *testing.T) {
	p := NewPayload().SetString("a", "1").SetString("b", "2").SetString("a", "3")

	assert.Equal(t, []string{"a", "b"}, p.Fields())
	assert.Equal(t, "3", p.String("a"))
}

func TestPayload_SetStringsCopies(t *testing.T) {
	tokens := []string{"text", "1", "x"}
	p := NewPayload().SetStrings("marker_spec", tokens)
	tokens[2] = "changed"

	got := p.Strings("marker_spec")
	assert.Equal(t, "x", got[2])
	got[0] = "changed"
	assert.Equal(t, "text", p.Strings("marker_spec")[0])
}

func TestPayload_MissingAndMistypedFields(t *testing.T) {
	p := NewPayload().SetString("title", "x")

	assert.Equal(t, "", p.String("match"))
	assert.False(t, p.Bool("title"))
	assert.Nil(t, p.Strings("title"))
	assert.False(t, p.Has("match"))
}

func TestPayload_UnmarshalDropsNull(t *testing.T) {
	var p Payload
	require.NoError(t, json.Unmarshal([]byte(`{"title":"x","match":null}`), &p))

	assert.Equal(t, []string{"title"}, p.Fields())
}

func TestPayload_UnmarshalRejectsOtherTypes(t *testing.T) {
	for _, raw := range []string{
		`{"n":1}`,
		`{"o":{"a":"b"}}`,
		`{"l":[1,2]}`,
		`["not","an","object"]`,
	} {
		var p Payload
		assert.Error(t, json.Unmarshal([]byte(raw), &p), raw)
	}
}

func TestPayload_ZeroValueUsable(t *testing.T) {
	var p Payload
	p.SetBool("self", true)
	assert.True(t, p.Bool("self"))
}
