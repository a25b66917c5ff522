// Package table renders arbitrary API records as a searchable, paginated
// table with role-dependent row actions.
package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind is the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindRecord
	KindArray
)

// Value is a cell value: a primitive, null, a nested record or an array.
// Arrays are held as their compact JSON text.
// The zero Value is null.
type Value struct {
	kind Kind
	text string // string content or the literal form of a number
	b    bool
	rec  *Record
}

func Null() Value { return Value{} }

func String(s string) Value { return Value{kind: KindString, text: s} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

func Int(n int64) Value { return Value{kind: KindNumber, text: strconv.FormatInt(n, 10)} }

func Float(f float64) Value { return Value{kind: KindNumber, text: strconv.FormatFloat(f, 'f', -1, 64)} }

// Number returns a number value from its literal form, e.g. "49.99".
func Number(literal string) Value { return Value{kind: KindNumber, text: literal} }

func Nested(r *Record) Value { return Value{kind: KindRecord, rec: r} }

// Array returns an array value from its compact JSON literal, e.g. `["a","b"]`.
func Array(literal string) Value { return Value{kind: KindArray, text: literal} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) Record() *Record { return v.rec }

// Text is the plain string form used for search: null is "", booleans are
// "true"/"false", nested records and arrays are their JSON text.
func (v Value) Text() string {
	switch v.kind {
	case KindString, KindNumber, KindArray:
		return v.text
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindRecord:
		return v.rec.JSON()
	default:
		return ""
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.text)
	case KindNumber, KindArray:
		return []byte(v.text), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindRecord:
		return v.rec.MarshalJSON()
	default:
		return []byte("null"), nil
	}
}

// Record is a string-keyed map of values that remembers insertion order.
type Record struct {
	keys   []string
	values map[string]Value
}

func NewRecord() *Record {
	return &Record{values: make(map[string]Value)}
}

// Set stores v under key and returns the record for chaining.
func (r *Record) Set(key string, v Value) *Record {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
	return r
}

func (r *Record) Get(key string) (Value, bool) {
	if r == nil {
		return Value{}, false
	}
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.keys...)
}

func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// ID is the text form of the record's "id" field.
func (r *Record) ID() string {
	v, _ := r.Get("id")
	return v.Text()
}

// Clone copies the top level of the record.
func (r *Record) Clone() *Record {
	c := NewRecord()
	for _, k := range r.keys {
		c.Set(k, r.values[k])
	}
	return c
}

func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(k)
		buf.Write(key)
		buf.WriteByte(':')
		val, err := r.values[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// JSON is the compact serialized form of the record.
func (r *Record) JSON() string {
	if r == nil {
		return "null"
	}
	b, err := r.MarshalJSON()
	if err != nil {
		return ""
	}
	return string(b)
}

// FromJSON decodes a JSON array of objects, keeping key order.
func FromJSON(data []byte) ([]*Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	if tok == nil {
		return nil, nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, fmt.Errorf("decode records: expected array, got %v", tok)
	}

	var out []*Record
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
		if v.kind != KindRecord {
			return nil, fmt.Errorf("decode records: element %d is not an object", len(out))
		}
		out = append(out, v.rec)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return out, nil
}

// FromAny converts a slice of structs or maps by round-tripping through JSON.
func FromAny(v any) ([]*Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	return FromJSON(data)
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t.String()), nil
	case json.Delim:
		switch t {
		case '{':
			rec := NewRecord()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, _ := keyTok.(string)
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				rec.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Nested(rec), nil
		case '[':
			var parts []string
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				b, _ := val.MarshalJSON()
				parts = append(parts, string(b))
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Array("[" + strings.Join(parts, ",") + "]"), nil
		}
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}
