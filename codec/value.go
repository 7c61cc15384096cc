package codec

import "fmt"

// Value is a QPack value. Concrete types:
//
//   - Null   (the null singleton)
//   - Bool
//   - Int    (signed 64-bit)
//   - Double (IEEE-754 64-bit)
//   - Str    (byte string)
//   - List   (ordered sequence of values)
//   - *Map   (ordered key/value pairs, keys restricted to Int or Str)
type Value interface {
	qpackValue() // sealed marker; implement by embedding an existing Value
}

type nullValue struct{}

// Null is the QPack null value.
var Null Value = nullValue{}

// Bool is a QPack boolean.
type Bool bool

// Int is a QPack signed 64-bit integer.
type Int int64

// Double is a QPack IEEE-754 64-bit float.
type Double float64

// Str is a QPack byte string.
type Str string

// List is a QPack array. Element order is preserved through the wire
// format.
type List []Value

func (nullValue) qpackValue() {}
func (Bool) qpackValue()      {}
func (Int) qpackValue()       {}
func (Double) qpackValue()    {}
func (Str) qpackValue()       {}
func (List) qpackValue()      {}
func (*Map) qpackValue()      {}

// Entry is one key/value pair of an aggregate.
type Entry struct {
	Key   Value
	Value Value
}

// Aggregate is the capability interface the encoder walks. It models a
// host table: an ordered sequence of key/value entries plus an optional
// explicit length override. When Len reports (n, true) the encoder
// skips the pure-array scan and encodes the aggregate positionally as
// an array of n elements. Custom implementations embed a Value to
// satisfy the sealed marker, typically a *Map.
type Aggregate interface {
	Value
	Entries() []Entry
	Len() (int, bool)
}

// Map is a QPack map: ordered key/value pairs. Pairs whose keys form
// the dense integer range 1..N encode as an array instead (see the
// encoder's pure-array scan); everything else encodes as a map.
type Map struct {
	Pairs []Entry
}

// NewMap creates a Map from pairs. Keys are not validated here; the
// encoder rejects non-Int/non-Str keys.
func NewMap(pairs ...Entry) *Map {
	return &Map{Pairs: pairs}
}

// Entries returns the pairs in insertion order.
func (m *Map) Entries() []Entry { return m.Pairs }

// Len reports no explicit length override.
func (m *Map) Len() (int, bool) { return 0, false }

// Set appends a pair.
func (m *Map) Set(key, value Value) {
	m.Pairs = append(m.Pairs, Entry{Key: key, Value: value})
}

// Get returns the value for the first pair whose key equals key.
func (m *Map) Get(key Value) (Value, bool) {
	for _, p := range m.Pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// IsValidKey reports whether v may be used as a map key on the wire.
func IsValidKey(v Value) bool {
	switch v.(type) {
	case Int, Str:
		return true
	}
	return false
}

// typeName names a value's kind for error messages.
func typeName(v Value) string {
	switch v.(type) {
	case nil:
		return "nil"
	case nullValue:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Double:
		return "double"
	case Str:
		return "string"
	case List:
		return "array"
	case *Map:
		return "map"
	case Aggregate:
		return "aggregate"
	default:
		return fmt.Sprintf("%T", v)
	}
}
