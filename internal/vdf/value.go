package vdf

import "math"

// Kind is the binary type tag of a value.
type Kind byte

const (
	KindMap     Kind = 0x00
	KindString  Kind = 0x01
	KindInt32   Kind = 0x02
	KindFloat32 Kind = 0x03
	KindPointer Kind = 0x04
	KindColor   Kind = 0x06
	KindUint64  Kind = 0x07
	KindInt64   Kind = 0x0A
)

// tagMapEnd terminates a map's child list. It carries no key.
const tagMapEnd byte = 0x08

func (k Kind) String() string {
	switch k {
	case KindMap:
		return "map"
	case KindString:
		return "string"
	case KindInt32:
		return "int32"
	case KindFloat32:
		return "float32"
	case KindPointer:
		return "pointer"
	case KindColor:
		return "color"
	case KindUint64:
		return "uint64"
	case KindInt64:
		return "int64"
	default:
		return "unknown"
	}
}

// width returns the payload size of fixed-width kinds and zero otherwise.
func (k Kind) width() int {
	switch k {
	case KindInt32, KindFloat32, KindPointer, KindColor:
		return 4
	case KindUint64, KindInt64:
		return 8
	default:
		return 0
	}
}

// Value is a tagged KeyValues value. Fixed-width kinds keep their raw bits so
// floats and opaque pointer/color payloads re-encode exactly.
type Value struct {
	kind Kind
	str  string
	bits uint64
	m    *Map
}

// String builds a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int32 builds a signed 32-bit value.
func Int32(v int32) Value { return Value{kind: KindInt32, bits: uint64(uint32(v))} }

// Float32 builds a 32-bit float value.
func Float32(v float32) Value {
	return Value{kind: KindFloat32, bits: uint64(math.Float32bits(v))}
}

// Uint64 builds an unsigned 64-bit value.
func Uint64(v uint64) Value { return Value{kind: KindUint64, bits: v} }

// Int64 builds a signed 64-bit value.
func Int64(v int64) Value { return Value{kind: KindInt64, bits: uint64(v)} }

// MapValue wraps m as a nested map value. A nil map becomes an empty map.
func MapValue(m *Map) Value {
	if m == nil {
		m = NewMap()
	}
	return Value{kind: KindMap, m: m}
}

func rawValue(kind Kind, bits uint64) Value { return Value{kind: kind, bits: bits} }

// Kind reports the value's type tag.
func (v Value) Kind() Kind { return v.kind }

// Str returns the string payload.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Int returns the int32 payload.
func (v Value) Int() (int32, bool) {
	if v.kind != KindInt32 {
		return 0, false
	}
	return int32(uint32(v.bits)), true
}

// Float returns the float32 payload.
func (v Value) Float() (float32, bool) {
	if v.kind != KindFloat32 {
		return 0, false
	}
	return math.Float32frombits(uint32(v.bits)), true
}

// Map returns the nested map.
func (v Value) Map() (*Map, bool) {
	if v.kind != KindMap || v.m == nil {
		return nil, false
	}
	return v.m, true
}

// Bits returns the raw payload of fixed-width kinds.
func (v Value) Bits() uint64 { return v.bits }

// Clone returns a deep copy; nested maps are copied.
func (v Value) Clone() Value {
	if v.kind == KindMap && v.m != nil {
		v.m = v.m.Clone()
	}
	return v
}

// Entry is one keyed child of a map.
type Entry struct {
	Key   string
	Value Value
}

// Map is an ordered list of keyed children. Keys are not required to be
// unique; Get and Set act on the first match.
type Map struct {
	entries []Entry
}

// NewMap returns an empty map.
func NewMap() *Map { return &Map{} }

// Len returns the number of children.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Entries returns the children in order. The slice must not be modified.
func (m *Map) Entries() []Entry {
	if m == nil {
		return nil
	}
	return m.entries
}

// Keys returns child keys in order.
func (m *Map) Keys() []string {
	keys := make([]string, 0, m.Len())
	for _, e := range m.Entries() {
		keys = append(keys, e.Key)
	}
	return keys
}

func (m *Map) index(key string) int {
	for i, e := range m.Entries() {
		if e.Key == key {
			return i
		}
	}
	return -1
}

// Get returns the first child with key.
func (m *Map) Get(key string) (Value, bool) {
	if i := m.index(key); i >= 0 {
		return m.entries[i].Value, true
	}
	return Value{}, false
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool { return m.index(key) >= 0 }

// GetString returns the string child with key.
func (m *Map) GetString(key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	return v.Str()
}

// GetInt returns the int32 child with key.
func (m *Map) GetInt(key string) (int32, bool) {
	v, ok := m.Get(key)
	if !ok {
		return 0, false
	}
	return v.Int()
}

// GetMap returns the nested map child with key.
func (m *Map) GetMap(key string) (*Map, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	return v.Map()
}

// Set replaces the first child with key in place, or appends it.
func (m *Map) Set(key string, v Value) {
	if i := m.index(key); i >= 0 {
		m.entries[i].Value = v
		return
	}
	m.entries = append(m.entries, Entry{Key: key, Value: v})
}

// Append adds a child without checking for an existing key.
func (m *Map) Append(key string, v Value) {
	m.entries = append(m.entries, Entry{Key: key, Value: v})
}

// Delete removes every child with key and reports whether any was removed.
func (m *Map) Delete(key string) bool {
	kept := m.entries[:0]
	removed := false
	for _, e := range m.entries {
		if e.Key == key {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	m.entries = kept
	return removed
}

// Clone returns a deep copy of m.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}
	out := &Map{entries: make([]Entry, len(m.entries))}
	for i, e := range m.entries {
		out.entries[i] = Entry{Key: e.Key, Value: e.Value.Clone()}
	}
	return out
}
