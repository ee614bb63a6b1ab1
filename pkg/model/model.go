// model package turns schema documents into flat, named documentation models.
package model

import (
	"fmt"

	ie "github.com/voidshard/jobgate/pkg/errors"
	"github.com/voidshard/jobgate/pkg/schema"
)

// Field is a single documented property of a Descriptor.
type Field struct {
	Name        string
	Type        schema.Type
	Required    bool
	Enum        []any
	Default     any
	Description string

	// Nested is the name of the Descriptor describing an object value (or the elements
	// of an array of objects).
	Nested string

	// Items is the element type of an array of scalars.
	Items schema.Type
}

// HasDefault returns if the field documents a default value.
func (f *Field) HasDefault() bool {
	return f.Default != nil
}

// Descriptor is a named, flat model; object properties point at other descriptors.
type Descriptor struct {
	Name   string
	Fields []*Field
}

// DescriptorSet is every Descriptor needed to document one schema.
// The root descriptor is always first, nested ones follow in the order they were found.
type DescriptorSet struct {
	Root        string
	Descriptors []*Descriptor
}

// Get returns the named descriptor, or nil.
func (s *DescriptorSet) Get(name string) *Descriptor {
	for _, d := range s.Descriptors {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// Project builds the descriptors for a document.
// Nested objects are named "<parent>_<property>".
func Project(name string, doc *schema.Document) (*DescriptorSet, error) {
	if name == "" || doc == nil {
		return nil, fmt.Errorf("%w: a name and document are required", ie.ErrInvalidArg)
	}
	err := doc.Check()
	if err != nil {
		return nil, err
	}

	set := &DescriptorSet{Root: name, Descriptors: []*Descriptor{}}
	err = project(set, name, doc)
	if err != nil {
		return nil, err
	}
	return set, nil
}

func project(set *DescriptorSet, name string, doc *schema.Document) error {
	if set.Get(name) != nil {
		return fmt.Errorf("%w: model name '%s' is used twice", ie.ErrModelNameCollision, name)
	}

	desc := &Descriptor{Name: name, Fields: []*Field{}}
	set.Descriptors = append(set.Descriptors, desc)

	for _, p := range doc.Properties {
		ftype, err := fieldType(p.Spec)
		if err != nil {
			return fmt.Errorf("%w (%s.%s)", err, name, p.Name)
		}

		field := &Field{
			Name:        p.Name,
			Type:        ftype,
			Required:    doc.IsRequired(p.Name),
			Enum:        p.Spec.Enum,
			Description: p.Spec.Description,
		}

		switch ftype {
		case schema.TypeObject:
			field.Nested = name + "_" + p.Name
			nested := p.Spec.Object
			if nested == nil {
				nested = &schema.Document{}
			}
			err = project(set, field.Nested, nested)
		case schema.TypeArray:
			err = projectItems(set, field, name+"_"+p.Name, p.Spec.Items)
		default:
			field.Default = defaultValue(ftype, p.Spec)
		}
		if err != nil {
			return err
		}

		desc.Fields = append(desc.Fields, field)
	}

	return nil
}

// projectItems fills in the element details of an array field.
// Elements with no declared type are documented as strings.
func projectItems(set *DescriptorSet, field *Field, name string, items *schema.PropertySpec) error {
	if items == nil {
		field.Items = schema.TypeString
		return nil
	}
	if len(items.Types) == 0 {
		field.Items = schema.TypeString
		return nil
	}

	itype, err := fieldType(items)
	if err != nil {
		return fmt.Errorf("%w (%s.items)", err, name)
	}
	if itype != schema.TypeObject {
		field.Items = itype
		return nil
	}

	field.Nested = name
	nested := items.Object
	if nested == nil {
		nested = &schema.Document{}
	}
	return project(set, name, nested)
}

// fieldType returns the single non-null type of a property.
func fieldType(spec *schema.PropertySpec) (schema.Type, error) {
	switch len(spec.Types) {
	case 0:
		return "", fmt.Errorf("%w: no type given", ie.ErrUnsupportedFieldType)
	case 1:
		if !spec.Types[0].IsValid() {
			return "", fmt.Errorf("%w '%s'", ie.ErrUnsupportedFieldType, spec.Types[0])
		}
		return spec.Types[0], nil
	default:
		return "", fmt.Errorf("%w: %v", ie.ErrAmbiguousType, spec.Types)
	}
}

// defaultValue is the documented default of a scalar field.
// Strings with an enum carry no default unless one is given.
func defaultValue(t schema.Type, spec *schema.PropertySpec) any {
	if spec.HasDefault {
		return spec.Default
	}
	switch t {
	case schema.TypeString, schema.TypeURI:
		if len(spec.Enum) > 0 {
			return nil
		}
		return ""
	case schema.TypeNumber, schema.TypeInteger:
		return 0
	case schema.TypeBoolean:
		return false
	default:
		return nil
	}
}
