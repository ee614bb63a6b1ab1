package model

import (
	"github.com/go-openapi/spec"

	"github.com/voidshard/jobgate/pkg/schema"
)

const (
	definitionsRef = "#/definitions/"
)

// OpenAPI renders the set as OpenAPI (swagger 2.0) definitions, one per descriptor.
// Nested descriptors are referenced with "#/definitions/<name>".
func (s *DescriptorSet) OpenAPI() spec.Definitions {
	defs := spec.Definitions{}
	for _, d := range s.Descriptors {
		obj := spec.Schema{}
		obj.Typed("object", "")
		required := []string{}
		for _, f := range d.Fields {
			obj.SetProperty(f.Name, *fieldSchema(f))
			if f.Required {
				required = append(required, f.Name)
			}
		}
		if len(required) > 0 {
			obj.WithRequired(required...)
		}
		defs[d.Name] = obj
	}
	return defs
}

func fieldSchema(f *Field) *spec.Schema {
	var s *spec.Schema
	switch f.Type {
	case schema.TypeObject:
		s = spec.RefSchema(definitionsRef + f.Nested)
	case schema.TypeArray:
		if f.Nested != "" {
			s = spec.ArrayProperty(spec.RefSchema(definitionsRef + f.Nested))
		} else {
			s = spec.ArrayProperty(typeSchema(f.Items))
		}
	default:
		s = typeSchema(f.Type)
	}

	if f.Description != "" {
		s.WithDescription(f.Description)
	}
	if len(f.Enum) > 0 {
		s.WithEnum(f.Enum...)
	}
	if f.HasDefault() {
		s.WithDefault(f.Default)
	}
	return s
}

func typeSchema(t schema.Type) *spec.Schema {
	switch t {
	case schema.TypeNumber:
		return spec.Float64Property()
	case schema.TypeInteger:
		return spec.Int64Property()
	case schema.TypeBoolean:
		return spec.BoolProperty()
	case schema.TypeURI:
		return spec.StrFmtProperty("uri")
	default:
		return spec.StringProperty()
	}
}
