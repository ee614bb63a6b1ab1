package schema

// Filter returns a copy of the payload holding only the properties the document declares.
//
// Anything else the caller sent is dropped without complaint; nothing undeclared is ever
// passed on. Only top level keys are considered.
func Filter(doc *Document, payload map[string]any) map[string]any {
	out := make(map[string]any, len(doc.Properties))
	for _, p := range doc.Properties {
		if value, ok := payload[p.Name]; ok {
			out[p.Name] = value
		}
	}
	return out
}

// Defaults returns every declared property default, keyed by property name.
func Defaults(doc *Document) map[string]any {
	out := map[string]any{}
	for _, p := range doc.Properties {
		if p.Spec.HasDefault {
			out[p.Name] = p.Spec.Default
		}
	}
	return out
}
