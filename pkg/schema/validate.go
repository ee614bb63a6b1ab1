package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Result of validating a payload.
type Result struct {
	// Errors in the order they were found. Empty if the payload is valid.
	Errors []string

	// Data is the validated payload; set only if there are no errors.
	Data map[string]any
}

// Valid returns if no errors were found.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

// Validate checks a payload against a document.
//
// Errors are reported in property declaration order; for a single property a missing
// required value is reported before type / enum problems & those before problems
// with nested values.
// No attempt is made to coerce values; the payload is never altered.
//
// An error is returned (ErrSchemaInvalid) only if the document itself can't be used.
func Validate(doc *Document, payload map[string]any) (*Result, error) {
	err := doc.Check()
	if err != nil {
		return nil, err
	}

	errs := validateDocument(doc, payload, "")
	if len(errs) > 0 {
		return &Result{Errors: errs}, nil
	}
	return &Result{Data: payload}, nil
}

func validateDocument(doc *Document, obj map[string]any, path string) []string {
	errs := []string{}
	for _, p := range doc.Properties {
		value, ok := obj[p.Name]
		if !ok {
			if doc.IsRequired(p.Name) {
				errs = append(errs, prefix(path, fmt.Sprintf("'%s' is a required property", p.Name)))
			}
			continue
		}
		errs = append(errs, validateValue(p.Spec, value, join(path, p.Name))...)
	}
	return errs
}

func validateValue(spec *PropertySpec, value any, path string) []string {
	if value == nil {
		if spec.Nullable || len(spec.Types) == 0 {
			return nil
		}
		return []string{prefix(path, fmt.Sprintf("null is not of type %s", typeList(spec.Types)))}
	}

	if len(spec.Types) > 0 && !matchesAny(spec.Types, value) {
		return []string{prefix(path, fmt.Sprintf("%s is not of type %s", repr(value), typeList(spec.Types)))}
	}

	if spec.Format == "uri" {
		if s, ok := value.(string); ok && !isURI(s) {
			return []string{prefix(path, fmt.Sprintf("%s is not a 'uri'", repr(value)))}
		}
	}

	if len(spec.Enum) > 0 && !inEnum(spec.Enum, value) {
		return []string{prefix(path, fmt.Sprintf("%s is not one of %s", repr(value), reprList(spec.Enum)))}
	}

	errs := []string{}
	switch v := value.(type) {
	case map[string]any:
		if spec.Object != nil {
			errs = append(errs, validateDocument(spec.Object, v, path)...)
		}
	case []any:
		if spec.Items != nil {
			for i, elem := range v {
				errs = append(errs, validateValue(spec.Items, elem, join(path, strconv.Itoa(i)))...)
			}
		}
	}
	return errs
}

func matchesAny(types []Type, value any) bool {
	for _, t := range types {
		if matches(t, value) {
			return true
		}
	}
	return false
}

func matches(t Type, value any) bool {
	switch t {
	case TypeString:
		_, ok := value.(string)
		return ok
	case TypeURI:
		s, ok := value.(string)
		return ok && isURI(s)
	case TypeBoolean:
		_, ok := value.(bool)
		return ok
	case TypeNumber:
		_, ok := toFloat(value)
		return ok
	case TypeInteger:
		f, ok := toFloat(value)
		return ok && f == math.Trunc(f) && !math.IsInf(f, 0)
	case TypeArray:
		_, ok := value.([]any)
		return ok
	case TypeObject:
		_, ok := value.(map[string]any)
		return ok
	default:
		return false
	}
}

func isURI(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != ""
}

// toFloat returns the numeric value of a decoded json number (or a go number, for payloads
// built in code). Numbers too large for a float64 come back as +/-Inf.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil || errors.Is(err, strconv.ErrRange)
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func inEnum(enum []any, value any) bool {
	for _, e := range enum {
		if equalScalar(e, value) {
			return true
		}
	}
	return false
}

// equalScalar compares two decoded json scalars; numbers compare by value.
func equalScalar(a, b any) bool {
	fa, aNum := toFloat(a)
	fb, bNum := toFloat(b)
	if aNum || bNum {
		return aNum && bNum && fa == fb
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	default:
		return false
	}
}

func typeList(types []Type) string {
	names := []string{}
	for _, t := range types {
		names = append(names, fmt.Sprintf("'%s'", t))
	}
	return strings.Join(names, ", ")
}

// repr renders a value for an error message; strings are single quoted.
func repr(value any) string {
	switch v := value.(type) {
	case string:
		return fmt.Sprintf("'%s'", v)
	case nil:
		return "null"
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}

func reprList(values []any) string {
	out := []string{}
	for _, v := range values {
		out = append(out, repr(v))
	}
	return "[" + strings.Join(out, ", ") + "]"
}

func prefix(path, msg string) string {
	if path == "" {
		return msg
	}
	return path + ": " + msg
}
