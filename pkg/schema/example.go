package schema

import (
	"encoding/json"
)

const (
	exampleString = "test_string"
	exampleNumber = json.Number("24")
	exampleURI    = "http://example.com"
)

// Example builds a payload that satisfies the document; each property is set to its
// default if it has one, the first enum value if it has those, or a placeholder value
// of the right type.
func Example(doc *Document) map[string]any {
	out := map[string]any{}
	for _, p := range doc.Properties {
		out[p.Name] = exampleValue(p.Spec)
	}
	return out
}

func exampleValue(spec *PropertySpec) any {
	if spec.HasDefault {
		return spec.Default
	}
	if len(spec.Enum) > 0 {
		return spec.Enum[0]
	}
	if len(spec.Types) == 0 {
		if spec.Nullable {
			return nil
		}
		return exampleString
	}

	switch spec.Types[0] {
	case TypeNumber, TypeInteger:
		return exampleNumber
	case TypeBoolean:
		return true
	case TypeURI:
		return exampleURI
	case TypeArray:
		return []any{}
	case TypeObject:
		if spec.Object != nil {
			return Example(spec.Object)
		}
		return map[string]any{}
	default:
		if spec.Format == "uri" {
			return exampleURI
		}
		return exampleString
	}
}
