package ast

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// ToJSON renders a node tree as indented JSON. Every node object carries a
// "node" discriminator (the node's type name) and its span, so dumps are
// self-describing without per-type marshalers.
func ToJSON(n Node) ([]byte, error) {
	return json.MarshalIndent(encodeValue(reflect.ValueOf(n)), "", "  ")
}

func encodeValue(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Invalid:
		return nil
	case reflect.Interface, reflect.Ptr:
		if v.IsNil() {
			return nil
		}
		return encodeValue(v.Elem())
	case reflect.Slice:
		if v.IsNil() {
			return nil
		}
		out := make([]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			out[i] = encodeValue(v.Index(i))
		}
		return out
	case reflect.Struct:
		return encodeStruct(v)
	default:
		if v.CanInterface() {
			if s, ok := v.Interface().(fmt.Stringer); ok {
				return s.String()
			}
			return v.Interface()
		}
		return nil
	}
}

func encodeStruct(v reflect.Value) any {
	m := map[string]any{}

	if v.CanInterface() {
		if n, ok := v.Interface().(Node); ok {
			m["node"] = v.Type().Name()
			m["span"] = n.Span()
		}
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue // unexported, including the embedded base
		}
		name, omitempty := jsonName(field)
		if name == "-" {
			continue
		}
		fv := v.Field(i)
		if omitempty && fv.IsZero() {
			continue
		}
		m[name] = encodeValue(fv)
	}
	return m
}

func jsonName(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name, false
	}
	parts := strings.Split(tag, ",")
	name := parts[0]
	if name == "" {
		name = field.Name
	}
	omitempty := false
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitempty = true
		}
	}
	return name, omitempty
}
