// Package patch turns partial JSON request bodies into column assignments.
//
// Every patchable entity declares a Table: the JSON fields a client may send,
// the column each one writes, and whether an explicit null clears the column.
// A field that is absent from the body is never written.
package patch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidValue is returned when a present field cannot be decoded into
// its column type.
var ErrInvalidValue = errors.New("invalid field value")

// FieldError reports which field failed to decode.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidValue
}

// Field maps one JSON body field onto a column.
type Field struct {
	JSON     string
	Column   string
	Nullable bool
	decode   func(raw json.RawMessage) (interface{}, error)
	empty    func(v interface{}) bool
}

// Of declares a field whose JSON value decodes into T.
func Of[T any](jsonName, column string, nullable bool) Field {
	return Field{
		JSON:     jsonName,
		Column:   column,
		Nullable: nullable,
		decode: func(raw json.RawMessage) (interface{}, error) {
			var v T
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, err
			}
			return v, nil
		},
	}
}

// NonEmpty declares a non-nullable field whose zero value is ignored like
// an absent field.
func NonEmpty[T comparable](jsonName, column string) Field {
	f := Of[T](jsonName, column, false)
	f.empty = func(v interface{}) bool {
		var zero T
		return v.(T) == zero
	}
	return f
}

// Table is the full set of patchable fields for an entity.
type Table []Field

// Body is a decoded request body keyed by JSON field name.
type Body map[string]json.RawMessage

// Has reports whether the body carries the named field, null included.
func (b Body) Has(name string) bool {
	_, ok := b[name]
	return ok
}

// IsNull reports whether the named field is present and explicitly null.
func (b Body) IsNull(name string) bool {
	raw, ok := b[name]
	return ok && isNull(raw)
}

// Decode unmarshals the named field into dst.
func (b Body) Decode(name string, dst interface{}) error {
	raw, ok := b[name]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return &FieldError{Field: name, Err: err}
	}
	return nil
}

// ParseBody decodes a request body. An empty body is an empty patch.
func ParseBody(data []byte) (Body, error) {
	body := Body{}
	if len(bytes.TrimSpace(data)) == 0 {
		return body, nil
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, err
	}
	return body, nil
}

// Updates returns the column assignments for the fields present in body.
// Explicit nulls clear nullable columns and are ignored for the rest.
func (t Table) Updates(body Body) (map[string]interface{}, error) {
	updates := make(map[string]interface{})
	for _, f := range t {
		raw, ok := body[f.JSON]
		if !ok {
			continue
		}
		if isNull(raw) {
			if f.Nullable {
				updates[f.Column] = nil
			}
			continue
		}
		v, err := f.decode(raw)
		if err != nil {
			return nil, &FieldError{Field: f.JSON, Err: err}
		}
		if f.empty != nil && f.empty(v) {
			continue
		}
		updates[f.Column] = v
	}
	return updates, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
