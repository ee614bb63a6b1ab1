package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	ie "github.com/voidshard/jobgate/pkg/errors"
)

// form field types, as written by the front end form builder
const (
	formText       = "text"
	formURL        = "url"
	formNumber     = "number"
	formInteger    = "integer"
	formBoolean    = "boolean"
	formArray      = "array"
	formObject     = "object"
	formCollection = "collection"
	formSelect     = "select"
)

// FromFormSpec converts a form specification into a Document.
//
// A form spec is either a list of fields (each with a "name") or an object of fields keyed by
// name. A field has a "type", optionally "required", "default", "options" (for select
// fields), "spec" (the fields of a collection), "items" (the element of an array; a list
// of fields means an array of objects) or "grouped" + "properties" (a nested group).
// A field that doesn't say if it's required inherits the setting of its parent.
func FromFormSpec(data []byte) (*Document, error) {
	doc, err := convertFields(data, false, "")
	if err != nil {
		return nil, err
	}
	err = doc.Check()
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func convertFields(data []byte, parentRequired bool, path string) (*Document, error) {
	names, fields, err := formFields(data, path)
	if err != nil {
		return nil, err
	}

	doc := &Document{Properties: []*Property{}}
	for _, name := range names {
		field := fields[name]
		fpath := join(path, name)

		required := parentRequired
		if raw, ok := field["required"]; ok {
			err = json.Unmarshal(raw, &required)
			if err != nil {
				return nil, fmt.Errorf("%w: field '%s' required: %v", ie.ErrInvalidArg, fpath, err)
			}
		}

		ftype := formText
		if raw, ok := field["type"]; ok {
			err = json.Unmarshal(raw, &ftype)
			if err != nil {
				return nil, fmt.Errorf("%w: field '%s' type: %v", ie.ErrInvalidArg, fpath, err)
			}
		}

		grouped := false
		if raw, ok := field["grouped"]; ok {
			_ = json.Unmarshal(raw, &grouped)
		}

		var spec *PropertySpec
		switch {
		case grouped:
			nested, err := convertFields(orEmptyList(field["properties"]), required, fpath)
			if err != nil {
				return nil, err
			}
			spec = &PropertySpec{Types: []Type{TypeObject}, Object: nested}
		case ftype == formCollection && field["spec"] != nil:
			nested, err := convertFields(field["spec"], required, fpath)
			if err != nil {
				return nil, err
			}
			spec = &PropertySpec{Types: []Type{TypeObject}, Object: nested}
		case ftype == formArray && field["items"] != nil:
			spec = &PropertySpec{Types: []Type{TypeArray}}
			items := bytes.TrimSpace(field["items"])
			if len(items) > 0 && items[0] == '[' {
				nested, err := convertFields(items, required, fpath+".items")
				if err != nil {
					return nil, err
				}
				spec.Items = &PropertySpec{Types: []Type{TypeObject}, Object: nested}
			} else {
				itemFields, err := decodeFields(items)
				if err != nil {
					return nil, fmt.Errorf("%w: field '%s' items: %v", ie.ErrInvalidArg, fpath, err)
				}
				spec.Items, err = convertField(itemFields, required, fpath+".items")
				if err != nil {
					return nil, err
				}
			}
		default:
			spec, err = convertField(field, required, fpath)
			if err != nil {
				return nil, err
			}
		}

		doc.Properties = append(doc.Properties, &Property{Name: name, Spec: spec})
		if required {
			doc.Required = append(doc.Required, name)
		}
	}

	return doc, nil
}

// convertField converts a single (non nested) form field.
func convertField(field map[string]json.RawMessage, required bool, path string) (*PropertySpec, error) {
	ftype := formText
	if raw, ok := field["type"]; ok {
		err := json.Unmarshal(raw, &ftype)
		if err != nil {
			return nil, fmt.Errorf("%w: field '%s' type: %v", ie.ErrInvalidArg, path, err)
		}
	}

	spec := &PropertySpec{}
	switch ftype {
	case formText, formSelect:
		spec.Types = []Type{TypeString}
	case formURL:
		spec.Types = []Type{TypeURI}
	case formNumber:
		spec.Types = []Type{TypeNumber}
	case formInteger:
		spec.Types = []Type{TypeInteger}
	case formBoolean:
		spec.Types = []Type{TypeBoolean}
	case formArray:
		spec.Types = []Type{TypeArray}
	case formObject, formCollection:
		spec.Types = []Type{TypeObject}
	default:
		return nil, fmt.Errorf("%w '%s' for field '%s'", ie.ErrUnsupportedFieldType, ftype, path)
	}

	if raw, ok := field["default"]; ok {
		value, err := decodeValue(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: field '%s' default: %v", ie.ErrInvalidArg, path, err)
		}
		spec.Default = value
		spec.HasDefault = true
	}

	if raw, ok := field["description"]; ok {
		_ = json.Unmarshal(raw, &spec.Description)
	}

	// optional select fields accept any string, so only required ones are restricted
	if ftype == formSelect && required && field["options"] != nil {
		options := []struct {
			Value any    `json:"value"`
			Label string `json:"label"`
		}{}
		err := json.Unmarshal(field["options"], &options)
		if err != nil {
			return nil, fmt.Errorf("%w: field '%s' options: %v", ie.ErrInvalidArg, path, err)
		}
		for _, o := range options {
			if o.Value != nil {
				spec.Enum = append(spec.Enum, o.Value)
			} else {
				spec.Enum = append(spec.Enum, o.Label)
			}
		}
	}

	return spec, nil
}

// formFields reads fields either from a list (named by their "name") or an object keyed by name.
func formFields(data []byte, path string) ([]string, map[string]map[string]json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("%w: no fields at '%s'", ie.ErrInvalidArg, path)
	}

	names := []string{}
	fields := map[string]map[string]json.RawMessage{}

	switch data[0] {
	case '[':
		list := []json.RawMessage{}
		err := json.Unmarshal(data, &list)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: fields at '%s': %v", ie.ErrInvalidArg, path, err)
		}
		for i, raw := range list {
			field, err := decodeFields(raw)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: field %d at '%s' must be an object", ie.ErrInvalidArg, i, path)
			}
			name := ""
			err = json.Unmarshal(field["name"], &name)
			if err != nil || name == "" {
				return nil, nil, fmt.Errorf("%w: field %d at '%s' has no name", ie.ErrInvalidArg, i, path)
			}
			if _, dupe := fields[name]; !dupe {
				names = append(names, name)
			}
			fields[name] = field
		}
	case '{':
		keys, values, err := decodeOrdered(data)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: fields at '%s': %v", ie.ErrInvalidArg, path, err)
		}
		for _, k := range keys {
			field, err := decodeFields(values[k])
			if err != nil {
				return nil, nil, fmt.Errorf("%w: field '%s' must be an object", ie.ErrInvalidArg, join(path, k))
			}
			names = append(names, k)
			fields[k] = field
		}
	default:
		return nil, nil, fmt.Errorf("%w: fields at '%s' must be a list or object", ie.ErrInvalidArg, path)
	}

	return names, fields, nil
}

func orEmptyList(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return json.RawMessage("[]")
	}
	return raw
}
