// Package payload provides default-supplying accessors over loosely shaped JSON
// objects returned by the identity API.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"strconv"

	"github.com/google/uuid"
)

// Identity keys recognized on raw records.
const (
	KeyGGID   = "ggId"
	KeyArdaID = "ardaId"
)

// Object is a decoded JSON object of unconstrained shape.
// Numbers are expected as json.Number (see Decode) but float64 is accepted too.
type Object map[string]any

// Decode parses a single JSON value, keeping numbers as json.Number.
// It returns ok=false when data is not a JSON object.
func Decode(data []byte) (Object, bool, error) {
	var v any
	if err := unmarshalNumber(data, &v); err != nil {
		return nil, false, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false, nil
	}
	return Object(obj), true, nil
}

// HasIdentity reports whether the object carries a usable ggId or ardaId.
func (o Object) HasIdentity() bool {
	return o.Truthy(KeyGGID) || o.Truthy(KeyArdaID)
}

// Identity returns ggId, else ardaId as a string, else a random placeholder.
// The placeholder is not stable across calls.
func (o Object) Identity() string {
	if id, ok := o.String(KeyGGID, KeyArdaID); ok {
		return id
	}
	return PlaceholderID()
}

// PlaceholderID returns a fresh random id for records that carry none.
func PlaceholderID() string {
	return uuid.NewString()
}

// Truthy reports whether the value under key would pass a loose truthiness check:
// present, non-null, non-empty string, non-zero number, true, or any array/object.
func (o Object) Truthy(key string) bool {
	v, ok := o[key]
	if !ok {
		return false
	}
	return truthy(v)
}

// String returns the first truthy value among keys, rendered as a string.
func (o Object) String(keys ...string) (string, bool) {
	for _, key := range keys {
		v, ok := o[key]
		if !ok || !truthy(v) {
			continue
		}
		if s, ok := scalarString(v); ok {
			return s, true
		}
	}
	return "", false
}

// StringOr returns the first truthy value among keys, or def.
func (o Object) StringOr(def string, keys ...string) string {
	if s, ok := o.String(keys...); ok {
		return s
	}
	return def
}

// OptString returns a pointer to the first truthy value among keys, or nil.
func (o Object) OptString(keys ...string) *string {
	if s, ok := o.String(keys...); ok {
		return &s
	}
	return nil
}

// Float returns the numeric value under key, or nil when absent or not a number.
func (o Object) Float(key string) *float64 {
	switch v := o[key].(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil
		}
		return &f
	case float64:
		return &v
	}
	return nil
}

// Bool returns the boolean under key, or nil when absent or not a boolean.
func (o Object) Bool(key string) *bool {
	if b, ok := o[key].(bool); ok {
		return &b
	}
	return nil
}

// Flag returns true when any of keys holds a truthy value.
func (o Object) Flag(keys ...string) bool {
	for _, key := range keys {
		if o.Truthy(key) {
			return true
		}
	}
	return false
}

// Array returns the array under key, or nil when absent or not an array.
func (o Object) Array(key string) []any {
	arr, _ := o[key].([]any)
	return arr
}

// Objects returns the object entries of the array under key. Non-object
// entries become empty objects so that positions are preserved.
func (o Object) Objects(key string) []Object {
	arr := o.Array(key)
	out := make([]Object, 0, len(arr))
	for _, item := range arr {
		out = append(out, AsObject(item))
	}
	return out
}

// Object returns the nested object under key, or an empty object.
func (o Object) Object(key string) Object {
	return AsObject(o[key])
}

// AsObject converts v to an Object, or returns an empty one.
func AsObject(v any) Object {
	if m, ok := v.(map[string]any); ok {
		return Object(m)
	}
	if m, ok := v.(Object); ok {
		return m
	}
	return Object{}
}

// Values returns the array under key with a non-nil empty default.
func (o Object) Values(key string) []any {
	if arr := o.Array(key); arr != nil {
		return arr
	}
	return []any{}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return t != ""
		}
		return f != 0 && !math.IsNaN(f)
	case float64:
		return t != 0 && !math.IsNaN(t)
	default:
		return true
	}
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}

// unmarshalNumber decodes exactly one JSON value from data; trailing content is an error.
func unmarshalNumber(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after top-level JSON value")
	}
	return nil
}
