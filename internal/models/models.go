package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind identifies the shape of a Value. It is a closed set: every Value
// is exactly one of these, and renderer/updater dispatch switches over it
// exhaustively instead of probing runtime types.
type Kind int

const (
	// Unsupported covers JSON null and anything else with no editable
	// representation. It round-trips as null.
	Unsupported Kind = iota
	String
	Number
	Boolean
	Sequence
	Mapping
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	case Sequence:
		return "sequence"
	case Mapping:
		return "mapping"
	default:
		return "unsupported"
	}
}

// Value is a JSON-shaped datum: a scalar (string, number, boolean), an
// ordered index-addressed sequence, a keyed mapping, or an unsupported
// placeholder (null). Values are immutable once constructed; the With*
// methods return new containers that share untouched children with the
// original by reference.
type Value struct {
	kind Kind
	str  string
	num  json.Number
	b    bool
	seq  []*Value
	keys []string
	vals map[string]*Value
}

var unsupported = &Value{kind: Unsupported}

// NewString constructs a string Value.
func NewString(s string) *Value { return &Value{kind: String, str: s} }

// NewNumber constructs a number Value from a json.Number, preserving the
// textual form the number arrived in.
func NewNumber(n json.Number) *Value { return &Value{kind: Number, num: n} }

// NewBool constructs a boolean Value.
func NewBool(b bool) *Value { return &Value{kind: Boolean, b: b} }

// NewUnsupported returns the placeholder Value used for null and anything
// else without an editable shape.
func NewUnsupported() *Value { return unsupported }

// NewSequence constructs a sequence Value from the given elements. The
// slice is taken over by the Value and must not be mutated afterwards.
func NewSequence(elems ...*Value) *Value {
	return &Value{kind: Sequence, seq: elems}
}

// Pair is a single mapping entry, used by NewMapping to fix display order.
type Pair struct {
	Key   string
	Value *Value
}

// NewMapping constructs a mapping Value with keys in the given order.
// A repeated key keeps its first position but takes the last value.
func NewMapping(pairs ...Pair) *Value {
	m := &Value{
		kind: Mapping,
		keys: make([]string, 0, len(pairs)),
		vals: make(map[string]*Value, len(pairs)),
	}
	for _, p := range pairs {
		if _, seen := m.vals[p.Key]; !seen {
			m.keys = append(m.keys, p.Key)
		}
		m.vals[p.Key] = p.Value
	}
	return m
}

// Kind reports the shape of the value. A nil Value reads as Unsupported
// so callers don't have to guard every lookup.
func (v *Value) Kind() Kind {
	if v == nil {
		return Unsupported
	}
	return v.kind
}

// Str returns the string payload. Zero value for non-strings.
func (v *Value) Str() string { return v.str }

// Num returns the number payload. Zero value for non-numbers.
func (v *Value) Num() json.Number { return v.num }

// Bool returns the boolean payload. Zero value for non-booleans.
func (v *Value) Bool() bool { return v.b }

// Len returns the element count for sequences and the key count for
// mappings, and 0 for everything else.
func (v *Value) Len() int {
	switch v.Kind() {
	case Sequence:
		return len(v.seq)
	case Mapping:
		return len(v.keys)
	default:
		return 0
	}
}

// At returns the sequence element at i, or nil if v is not a sequence or
// i is out of range.
func (v *Value) At(i int) *Value {
	if v.Kind() != Sequence || i < 0 || i >= len(v.seq) {
		return nil
	}
	return v.seq[i]
}

// Key returns the mapping value bound to key, or nil if absent or v is
// not a mapping.
func (v *Value) Key(key string) *Value {
	if v.Kind() != Mapping {
		return nil
	}
	return v.vals[key]
}

// Contains reports whether a mapping has the key.
func (v *Value) Contains(key string) bool {
	if v.Kind() != Mapping {
		return false
	}
	_, ok := v.vals[key]
	return ok
}

// Keys returns the mapping's keys in display order. The returned slice is
// shared and must not be mutated.
func (v *Value) Keys() []string {
	if v.Kind() != Mapping {
		return nil
	}
	return v.keys
}

// WithIndex returns a new sequence identical to v except that element i is
// replaced by child. The backing slice is shallow-copied; all other
// elements are reused by reference. An index past the end grows the
// sequence, filling any gap with Unsupported placeholders (null on
// export). A negative index returns v unchanged.
func (v *Value) WithIndex(i int, child *Value) *Value {
	if v.Kind() != Sequence || i < 0 {
		return v
	}
	n := len(v.seq)
	if i >= n {
		n = i + 1
	}
	seq := make([]*Value, n)
	copy(seq, v.seq)
	for j := len(v.seq); j < n; j++ {
		seq[j] = unsupported
	}
	seq[i] = child
	return &Value{kind: Sequence, seq: seq}
}

// WithKey returns a new mapping identical to v except that key is bound
// to child. The key slice and map are shallow-copied; all other entries
// are reused by reference. A missing key is appended in display order.
func (v *Value) WithKey(key string, child *Value) *Value {
	if v.Kind() != Mapping {
		return v
	}
	keys := make([]string, len(v.keys), len(v.keys)+1)
	copy(keys, v.keys)
	vals := make(map[string]*Value, len(v.vals)+1)
	for k, val := range v.vals {
		vals[k] = val
	}
	if _, seen := vals[key]; !seen {
		keys = append(keys, key)
	}
	vals[key] = child
	return &Value{kind: Mapping, keys: keys, vals: vals}
}

// Equal reports deep equality of two values. Numbers compare by their
// textual form, which is what a round-trip through the parser preserves.
func (v *Value) Equal(other *Value) bool {
	if v.Kind() != other.Kind() {
		return false
	}
	switch v.Kind() {
	case Unsupported:
		return true
	case String:
		return v.str == other.str
	case Number:
		return v.num == other.num
	case Boolean:
		return v.b == other.b
	case Sequence:
		if len(v.seq) != len(other.seq) {
			return false
		}
		for i, elem := range v.seq {
			if !elem.Equal(other.seq[i]) {
				return false
			}
		}
		return true
	case Mapping:
		if len(v.keys) != len(other.keys) {
			return false
		}
		for _, k := range v.keys {
			ov, ok := other.vals[k]
			if !ok || !v.vals[k].Equal(ov) {
				return false
			}
		}
		return true
	}
	return false
}

// FromInterface normalizes the output of an encoding/json decode (run with
// UseNumber) into a Value tree. Anything that is not a recognized JSON
// shape becomes Unsupported.
func FromInterface(raw interface{}) *Value {
	switch val := raw.(type) {
	case string:
		return NewString(val)
	case json.Number:
		return NewNumber(val)
	case float64:
		// Decoders run without UseNumber hand back float64.
		return NewNumber(json.Number(formatFloat(val)))
	case bool:
		return NewBool(val)
	case []interface{}:
		elems := make([]*Value, len(val))
		for i, e := range val {
			elems[i] = FromInterface(e)
		}
		return NewSequence(elems...)
	case map[string]interface{}:
		pairs := make([]Pair, 0, len(val))
		for k, e := range val {
			pairs = append(pairs, Pair{Key: k, Value: FromInterface(e)})
		}
		return NewMapping(pairs...)
	default:
		return NewUnsupported()
	}
}

// Interface converts the value back to the plain shapes encoding/json
// understands. Unsupported values come back as nil (null).
func (v *Value) Interface() interface{} {
	switch v.Kind() {
	case String:
		return v.str
	case Number:
		return v.num
	case Boolean:
		return v.b
	case Sequence:
		out := make([]interface{}, len(v.seq))
		for i, elem := range v.seq {
			out[i] = elem.Interface()
		}
		return out
	case Mapping:
		out := make(map[string]interface{}, len(v.vals))
		for k, elem := range v.vals {
			out[k] = elem.Interface()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON emits the value as compact JSON with mapping keys in display
// order. encoding/json would otherwise sort map keys alphabetically.
func (v *Value) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	if err := v.writeJSON(&b); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

func (v *Value) writeJSON(b *strings.Builder) error {
	switch v.Kind() {
	case String:
		data, err := json.Marshal(v.str)
		if err != nil {
			return err
		}
		b.Write(data)
	case Number:
		if v.num == "" {
			b.WriteString("0")
			return nil
		}
		b.WriteString(v.num.String())
	case Boolean:
		if v.b {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case Sequence:
		b.WriteByte('[')
		for i, elem := range v.seq {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := elem.writeJSON(b); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case Mapping:
		b.WriteByte('{')
		for i, k := range v.keys {
			if i > 0 {
				b.WriteByte(',')
			}
			key, err := json.Marshal(k)
			if err != nil {
				return err
			}
			b.Write(key)
			b.WriteByte(':')
			if err := v.vals[k].writeJSON(b); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	default:
		b.WriteString("null")
	}
	return nil
}

// String returns the compact JSON form, mostly for logs and test failures.
func (v *Value) String() string {
	data, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<invalid value: %v>", err)
	}
	return string(data)
}

func formatFloat(f float64) string {
	n, err := json.Marshal(f)
	if err != nil {
		return "0"
	}
	return string(n)
}
