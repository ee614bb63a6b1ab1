package schema

import (
	"bytes"
	"encoding/json"
)

const (
	draft07 = "http://json-schema.org/draft-07/schema#"
)

// MarshalJSON writes the document as a JSON schema, with properties in declaration order.
func (d *Document) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	err := writeDocument(buf, d, false)
	return buf.Bytes(), err
}

// Encode writes the document as a standalone schema file (with a $schema marker), indented.
func Encode(d *Document) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := writeDocument(buf, d, true)
	if err != nil {
		return nil, err
	}
	out := &bytes.Buffer{}
	err = json.Indent(out, buf.Bytes(), "", "  ")
	return out.Bytes(), err
}

func writeDocument(buf *bytes.Buffer, d *Document, root bool) error {
	buf.WriteString("{")
	if root {
		buf.WriteString(`"$schema":`)
		writeString(buf, draft07)
		buf.WriteString(",")
	}
	buf.WriteString(`"type":"object"`)
	err := writeFields(buf, d)
	buf.WriteString("}")
	return err
}

// writeFields writes the properties & required fields of a document (without braces).
func writeFields(buf *bytes.Buffer, d *Document) error {
	buf.WriteString(`,"properties":{`)
	for i, p := range d.Properties {
		if i > 0 {
			buf.WriteString(",")
		}
		writeString(buf, p.Name)
		buf.WriteString(":")
		err := writeProperty(buf, p.Spec)
		if err != nil {
			return err
		}
	}
	buf.WriteString("}")

	if len(d.Required) > 0 {
		buf.WriteString(`,"required":`)
		err := writeJSON(buf, d.Required)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeProperty(buf *bytes.Buffer, p *PropertySpec) error {
	buf.WriteString("{")
	fields := 0
	next := func(key string) {
		if fields > 0 {
			buf.WriteString(",")
		}
		fields++
		writeString(buf, key)
		buf.WriteString(":")
	}

	names := []string{}
	for _, t := range p.Types {
		names = append(names, string(t))
	}
	if p.Nullable {
		names = append(names, typeNull)
	}
	if len(names) == 1 {
		next("type")
		writeString(buf, names[0])
	} else if len(names) > 1 {
		next("type")
		if err := writeJSON(buf, names); err != nil {
			return err
		}
	}

	if p.Description != "" {
		next("description")
		writeString(buf, p.Description)
	}
	if p.Format != "" {
		next("format")
		writeString(buf, p.Format)
	}
	if p.HasDefault {
		next("default")
		if err := writeJSON(buf, p.Default); err != nil {
			return err
		}
	}
	if len(p.Enum) > 0 {
		next("enum")
		if err := writeJSON(buf, p.Enum); err != nil {
			return err
		}
	}
	if p.Items != nil {
		next("items")
		if err := writeProperty(buf, p.Items); err != nil {
			return err
		}
	}
	if p.Object != nil {
		if fields == 0 {
			// writeFields leads with a comma
			buf.WriteString(`"type":"object"`)
		}
		if err := writeFields(buf, p.Object); err != nil {
			return err
		}
	}

	buf.WriteString("}")
	return nil
}

func writeString(buf *bytes.Buffer, s string) {
	// strings always marshal
	data, _ := json.Marshal(s)
	buf.Write(data)
}

func writeJSON(buf *bytes.Buffer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}
