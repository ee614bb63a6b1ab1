package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ie "github.com/voidshard/jobgate/pkg/errors"
)

func TestFromFormSpecList(t *testing.T) {
	doc, err := FromFormSpec([]byte(`[
		{"name": "input_url", "type": "url", "required": true},
		{"name": "quality", "type": "select", "required": true, "options": [{"value": "high"}, {"label": "low"}]},
		{"name": "preset", "type": "select", "options": [{"value": "a"}]},
		{"name": "count", "type": "number", "default": 2},
		{"name": "title"},
		{"name": "opts", "grouped": true, "required": true, "properties": [
			{"name": "loop", "type": "boolean"},
			{"name": "speed", "type": "number", "required": false}
		]},
		{"name": "outputs", "type": "array", "items": [{"name": "format", "type": "text", "required": true}]},
		{"name": "tags", "type": "array", "items": {"type": "text"}},
		{"name": "extra", "type": "collection", "spec": {"key": {"type": "text"}}}
	]`))
	require.Nil(t, err)

	assert.Equal(t, []string{"input_url", "quality", "preset", "count", "title", "opts", "outputs", "tags", "extra"}, names(doc))
	assert.Equal(t, []string{"input_url", "quality", "opts"}, doc.Required)

	assert.Equal(t, []Type{TypeURI}, doc.Property("input_url").Types)
	assert.Equal(t, []any{"high", "low"}, doc.Property("quality").Enum)
	assert.Nil(t, doc.Property("preset").Enum)
	assert.Equal(t, json.Number("2"), doc.Property("count").Default)
	assert.Equal(t, []Type{TypeString}, doc.Property("title").Types)

	opts := doc.Property("opts")
	assert.Equal(t, []Type{TypeObject}, opts.Types)
	assert.Equal(t, []string{"loop", "speed"}, names(opts.Object))
	assert.Equal(t, []string{"loop"}, opts.Object.Required) // inherited from the group

	outputs := doc.Property("outputs")
	assert.Equal(t, []Type{TypeArray}, outputs.Types)
	assert.Equal(t, []string{"format"}, outputs.Items.Object.Required)

	assert.Equal(t, []Type{TypeString}, doc.Property("tags").Items.Types)
	assert.Equal(t, []string{"key"}, names(doc.Property("extra").Object))
}

func TestFromFormSpecObject(t *testing.T) {
	doc, err := FromFormSpec([]byte(`{
		"webhook_url": {"type": "url", "required": true},
		"name": {"type": "text", "default": "x"}
	}`))
	require.Nil(t, err)

	assert.Equal(t, []string{"webhook_url", "name"}, names(doc))
	assert.Equal(t, []string{"webhook_url"}, doc.Required)

	result, err := Validate(doc, Example(doc))
	assert.Nil(t, err)
	assert.Empty(t, result.Errors)
}

func TestFromFormSpecErrors(t *testing.T) {
	cases := []struct {
		Name   string
		Given  string
		Expect error
	}{
		{"UnknownType", `[{"name": "c", "type": "colour"}]`, ie.ErrUnsupportedFieldType},
		{"NoName", `[{"type": "text"}]`, ie.ErrInvalidArg},
		{"NotAField", `[1]`, ie.ErrInvalidArg},
		{"Scalar", `"text"`, ie.ErrInvalidArg},
		{"FieldNotObject", `{"a": 1}`, ie.ErrInvalidArg},
		{"BadOptions", `[{"name": "s", "type": "select", "required": true, "options": "abc"}]`, ie.ErrInvalidArg},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			doc, err := FromFormSpec([]byte(c.Given))

			assert.Nil(t, doc)
			assert.ErrorIs(t, err, c.Expect)
		})
	}
}
