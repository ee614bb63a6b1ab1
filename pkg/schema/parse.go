package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	ie "github.com/voidshard/jobgate/pkg/errors"
)

// Parse builds a Document from a JSON schema file. Property declaration order is kept.
//
// Any problem with the data is returned as ErrSchemaMalformed.
func Parse(data []byte) (*Document, error) {
	fields, err := decodeFields(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ie.ErrSchemaMalformed, err)
	}
	if raw, ok := fields["type"]; ok {
		types, _, err := parseTypes(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ie.ErrSchemaMalformed, err)
		}
		if len(types) != 1 || types[0] != TypeObject {
			return nil, fmt.Errorf("%w: top level type must be object", ie.ErrSchemaMalformed)
		}
	}

	doc, err := parseDocument(fields, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ie.ErrSchemaMalformed, err)
	}
	err = doc.Check()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ie.ErrSchemaMalformed, err)
	}
	return doc, nil
}

func parseDocument(fields map[string]json.RawMessage, path string) (*Document, error) {
	doc := &Document{Properties: []*Property{}}

	if raw, ok := fields["properties"]; ok {
		keys, values, err := decodeOrdered(raw)
		if err != nil {
			return nil, fmt.Errorf("properties at '%s': %v", path, err)
		}
		for _, k := range keys {
			spec, err := parseProperty(values[k], join(path, k))
			if err != nil {
				return nil, err
			}
			doc.Properties = append(doc.Properties, &Property{Name: k, Spec: spec})
		}
	}

	if raw, ok := fields["required"]; ok {
		required := []string{}
		err := json.Unmarshal(raw, &required)
		if err != nil {
			return nil, fmt.Errorf("required at '%s': %v", path, err)
		}
		for _, r := range required {
			if doc.Property(r) == nil {
				return nil, fmt.Errorf("required property '%s' is not declared", join(path, r))
			}
			if !doc.IsRequired(r) {
				doc.Required = append(doc.Required, r)
			}
		}
	}

	return doc, nil
}

func parseProperty(data json.RawMessage, path string) (*PropertySpec, error) {
	fields, err := decodeFields(data)
	if err != nil {
		return nil, fmt.Errorf("property '%s': %v", path, err)
	}

	spec := &PropertySpec{}
	if raw, ok := fields["type"]; ok {
		spec.Types, spec.Nullable, err = parseTypes(raw)
		if err != nil {
			return nil, fmt.Errorf("property '%s': %w", path, err)
		}
	}

	if raw, ok := fields["description"]; ok {
		err = json.Unmarshal(raw, &spec.Description)
		if err != nil {
			return nil, fmt.Errorf("property '%s' description: %v", path, err)
		}
	}

	if raw, ok := fields["format"]; ok {
		err = json.Unmarshal(raw, &spec.Format)
		if err != nil {
			return nil, fmt.Errorf("property '%s' format: %v", path, err)
		}
	}

	if raw, ok := fields["default"]; ok {
		spec.Default, err = decodeValue(raw)
		if err != nil {
			return nil, fmt.Errorf("property '%s' default: %v", path, err)
		}
		spec.HasDefault = true
	}

	if raw, ok := fields["enum"]; ok {
		val, err := decodeValue(raw)
		if err != nil {
			return nil, fmt.Errorf("property '%s' enum: %v", path, err)
		}
		enum, ok := val.([]any)
		if !ok || len(enum) == 0 {
			return nil, fmt.Errorf("property '%s' enum must be a non empty list", path)
		}
		spec.Enum = enum
	}

	if raw, ok := fields["items"]; ok {
		spec.Items, err = parseProperty(raw, path+".items")
		if err != nil {
			return nil, err
		}
	}

	_, hasProps := fields["properties"]
	if spec.Has(TypeObject) && hasProps {
		spec.Object, err = parseDocument(fields, path)
		if err != nil {
			return nil, err
		}
	}

	return spec, nil
}

// parseTypes reads a "type" field, which is either a single name or a list of names.
func parseTypes(raw json.RawMessage) ([]Type, bool, error) {
	names := []string{}
	single := ""
	if err := json.Unmarshal(raw, &single); err == nil {
		names = append(names, single)
	} else if err := json.Unmarshal(raw, &names); err != nil {
		return nil, false, fmt.Errorf("type must be a string or list of strings")
	}
	if len(names) == 0 {
		return nil, false, fmt.Errorf("empty type list")
	}

	types := []Type{}
	nullable := false
	for _, n := range names {
		if n == typeNull {
			nullable = true
			continue
		}
		t := Type(n)
		if !t.IsValid() {
			return nil, false, fmt.Errorf("%w '%s'", ie.ErrUnsupportedFieldType, n)
		}
		types = append(types, t)
	}
	return types, nullable, nil
}

func decodeFields(data []byte) (map[string]json.RawMessage, error) {
	fields := map[string]json.RawMessage{}
	err := json.Unmarshal(data, &fields)
	if err != nil {
		return nil, err
	}
	if fields == nil { // ie. the literal 'null'
		return nil, fmt.Errorf("expected an object")
	}
	return fields, nil
}

// decodeValue decodes arbitrary json, keeping numbers as json.Number so they compare
// the same way as payload values do.
func decodeValue(data []byte) (any, error) {
	var v any
	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()
	err := d.Decode(&v)
	return v, err
}

// decodeOrdered decodes a json object returning its keys in the order they appear.
// If a key is repeated the last value wins, but the first position is kept.
func decodeOrdered(data []byte) ([]string, map[string]json.RawMessage, error) {
	d := json.NewDecoder(bytes.NewReader(data))
	tok, err := d.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected an object")
	}

	keys := []string{}
	values := map[string]json.RawMessage{}
	for d.More() {
		tok, err = d.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected an object key")
		}
		var value json.RawMessage
		err = d.Decode(&value)
		if err != nil {
			return nil, nil, err
		}
		if _, dupe := values[key]; !dupe {
			keys = append(keys, key)
		}
		values[key] = value
	}

	_, err = d.Token() // closing brace
	return keys, values, err
}
