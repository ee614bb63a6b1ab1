package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	ie "github.com/voidshard/jobgate/pkg/errors"
)

func TestParseKeepsDeclarationOrder(t *testing.T) {
	doc := mustParse(t, `{
		"type": "object",
		"properties": {
			"zebra": {"type": "string"},
			"apple": {"type": "number"},
			"mango": {"type": "boolean"}
		},
		"required": ["mango", "zebra"]
	}`)

	assert.Equal(t, []string{"zebra", "apple", "mango"}, names(doc))
	assert.Equal(t, []string{"mango", "zebra"}, doc.Required)
	assert.True(t, doc.IsRequired("zebra"))
	assert.False(t, doc.IsRequired("apple"))
}

func TestParseProperty(t *testing.T) {
	doc := mustParse(t, `{
		"properties": {
			"webhook_url": {"type": "string", "default": "", "description": "where to call"},
			"maybe": {"type": ["string", "null"], "default": null},
			"mode": {"type": "string", "enum": ["fast", "slow"]},
			"link": {"type": "string", "format": "uri"},
			"meta": {
				"type": "object",
				"properties": {"name": {"type": "string"}},
				"required": ["name"]
			},
			"things": {
				"type": "array",
				"items": {"type": "object", "properties": {"id": {"type": "integer"}}}
			}
		}
	}`)

	hook := doc.Property("webhook_url")
	assert.Equal(t, []Type{TypeString}, hook.Types)
	assert.True(t, hook.HasDefault)
	assert.Equal(t, "", hook.Default)
	assert.Equal(t, "where to call", hook.Description)

	maybe := doc.Property("maybe")
	assert.Equal(t, []Type{TypeString}, maybe.Types)
	assert.True(t, maybe.Nullable)
	assert.True(t, maybe.HasDefault)
	assert.Nil(t, maybe.Default)

	assert.Equal(t, []any{"fast", "slow"}, doc.Property("mode").Enum)
	assert.Equal(t, "uri", doc.Property("link").Format)

	meta := doc.Property("meta")
	assert.NotNil(t, meta.Object)
	assert.Equal(t, []string{"name"}, meta.Object.Required)

	things := doc.Property("things")
	assert.NotNil(t, things.Items)
	assert.NotNil(t, things.Items.Object)
	assert.Equal(t, []Type{TypeInteger}, things.Items.Object.Property("id").Types)

	assert.Nil(t, doc.Property("nope"))
}

func TestParseNumbersKeepPrecision(t *testing.T) {
	doc := mustParse(t, `{"properties": {"n": {"type": "number", "default": 24, "enum": [24, 48.5]}}}`)

	assert.Equal(t, json.Number("24"), doc.Property("n").Default)
	assert.Equal(t, []any{json.Number("24"), json.Number("48.5")}, doc.Property("n").Enum)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		Name   string
		Given  string
		Expect []error
	}{
		{"NotJSON", `{"properties":`, []error{ie.ErrSchemaMalformed}},
		{"Null", `null`, []error{ie.ErrSchemaMalformed}},
		{"NotObject", `[1, 2]`, []error{ie.ErrSchemaMalformed}},
		{"TopLevelArray", `{"type": "array"}`, []error{ie.ErrSchemaMalformed}},
		{"PropertiesNotObject", `{"properties": []}`, []error{ie.ErrSchemaMalformed}},
		{"RequiredNotDeclared", `{"properties": {"a": {"type": "string"}}, "required": ["b"]}`, []error{ie.ErrSchemaMalformed}},
		{"UnknownType", `{"properties": {"a": {"type": "date"}}}`, []error{ie.ErrSchemaMalformed, ie.ErrUnsupportedFieldType}},
		{"UnknownNestedType", `{"properties": {"a": {"type": "array", "items": {"type": "tuple"}}}}`, []error{ie.ErrSchemaMalformed, ie.ErrUnsupportedFieldType}},
		{"EmptyTypeList", `{"properties": {"a": {"type": []}}}`, []error{ie.ErrSchemaMalformed}},
		{"EmptyEnum", `{"properties": {"a": {"type": "string", "enum": []}}}`, []error{ie.ErrSchemaMalformed}},
		{"NestedRequiredNotDeclared", `{"properties": {"a": {"type": "object", "properties": {}, "required": ["x"]}}}`, []error{ie.ErrSchemaMalformed}},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			doc, err := Parse([]byte(c.Given))

			assert.Nil(t, doc)
			for _, e := range c.Expect {
				assert.ErrorIs(t, err, e)
			}
		})
	}
}

func TestParseMissingTypeMeansAny(t *testing.T) {
	doc := mustParse(t, `{"properties": {"anything": {"description": "no type"}}}`)

	result, err := Validate(doc, payload(t, `{"anything": [1, "two", {"three": 3}]}`))

	assert.Nil(t, err)
	assert.True(t, result.Valid())
}
