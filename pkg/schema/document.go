// schema module loads declarative request / response schemas & validates payloads against them.
package schema

import (
	"fmt"

	ie "github.com/voidshard/jobgate/pkg/errors"
)

// Type is one of the closed set of property types a schema may declare.
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
	TypeURI     Type = "uri"

	// typeNull is permitted in a type list, where it marks the property as nullable.
	typeNull = "null"
)

// Direction says which side of an exchange a schema describes.
type Direction string

const (
	Request  Direction = "request"
	Response Direction = "response"
)

// IsValid returns if the type is one of the supported types.
func (t Type) IsValid() bool {
	switch t {
	case TypeString, TypeNumber, TypeInteger, TypeBoolean, TypeArray, TypeObject, TypeURI:
		return true
	default:
		return false
	}
}

// Document is a parsed schema. Documents are never altered once built.
type Document struct {
	// Properties in the order they were declared
	Properties []*Property

	// Required property names. Every name here must be in Properties.
	Required []string
}

// Property is a named PropertySpec within a Document.
type Property struct {
	Name string
	Spec *PropertySpec
}

// PropertySpec describes the value a single property may hold.
type PropertySpec struct {
	// Types the value may be. Normally one; more than one is allowed by validation but
	// can't be turned into a documentation model.
	// No types at all means any value is accepted.
	Types []Type

	// Nullable is set when the declared type list includes "null"
	Nullable bool

	// Format is an optional string format; only "uri" is checked.
	Format string

	Description string

	// Default is only meaningful when HasDefault is set (a default may be null)
	Default    any
	HasDefault bool

	// Enum, if set, is the set of values permitted
	Enum []any

	// Items describes array elements, when Types includes array.
	Items *PropertySpec

	// Object describes the fields of an object value, when Types includes object.
	// If nil any object is accepted.
	Object *Document
}

// Property returns the named property, or nil.
func (d *Document) Property(name string) *PropertySpec {
	for _, p := range d.Properties {
		if p.Name == name {
			return p.Spec
		}
	}
	return nil
}

// IsRequired returns if the named property is required.
func (d *Document) IsRequired(name string) bool {
	for _, r := range d.Required {
		if r == name {
			return true
		}
	}
	return false
}

// Has returns if the spec permits the given type.
func (p *PropertySpec) Has(t Type) bool {
	for _, have := range p.Types {
		if have == t {
			return true
		}
	}
	return false
}

// Check walks the document tree and returns an error if the document is not something we can
// validate against; cycles, required fields that aren't declared, unknown types.
func (d *Document) Check() error {
	return checkDocument(d, "", map[*Document]bool{}, map[*PropertySpec]bool{})
}

func checkDocument(d *Document, path string, docs map[*Document]bool, specs map[*PropertySpec]bool) error {
	if d == nil {
		return nil
	}
	if docs[d] {
		return fmt.Errorf("%w: document at '%s' refers to itself", ie.ErrSchemaInvalid, path)
	}
	docs[d] = true
	defer delete(docs, d)

	seen := map[string]bool{}
	for _, p := range d.Properties {
		if p == nil || p.Spec == nil {
			return fmt.Errorf("%w: nil property in document at '%s'", ie.ErrSchemaInvalid, path)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: property '%s' declared twice", ie.ErrSchemaInvalid, join(path, p.Name))
		}
		seen[p.Name] = true
		err := checkSpec(p.Spec, join(path, p.Name), docs, specs)
		if err != nil {
			return err
		}
	}
	for _, r := range d.Required {
		if !seen[r] {
			return fmt.Errorf("%w: required property '%s' is not declared", ie.ErrSchemaInvalid, join(path, r))
		}
	}
	return nil
}

func checkSpec(p *PropertySpec, path string, docs map[*Document]bool, specs map[*PropertySpec]bool) error {
	if specs[p] {
		return fmt.Errorf("%w: property at '%s' refers to itself", ie.ErrSchemaInvalid, path)
	}
	specs[p] = true
	defer delete(specs, p)

	for _, t := range p.Types {
		if !t.IsValid() {
			return fmt.Errorf("%w: %w '%s' at '%s'", ie.ErrSchemaInvalid, ie.ErrUnsupportedFieldType, t, path)
		}
	}
	if p.Items != nil {
		err := checkSpec(p.Items, path+".items", docs, specs)
		if err != nil {
			return err
		}
	}
	return checkDocument(p.Object, path, docs, specs)
}

// join builds a dotted path
func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
