package schema

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// mustParse parses a schema document or fails the test
func mustParse(t *testing.T, in string) *Document {
	t.Helper()
	doc, err := Parse([]byte(in))
	require.Nil(t, err)
	return doc
}

// payload decodes json the same way the admission pipeline does
func payload(t *testing.T, in string) map[string]any {
	t.Helper()
	out := map[string]any{}
	d := json.NewDecoder(bytes.NewReader([]byte(in)))
	d.UseNumber()
	require.Nil(t, d.Decode(&out))
	return out
}

func names(doc *Document) []string {
	out := []string{}
	for _, p := range doc.Properties {
		out = append(out, p.Name)
	}
	return out
}
