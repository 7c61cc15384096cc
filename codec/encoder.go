package codec

import (
	"encoding/binary"
	"math"

	"github.com/transceptor/qpack/errors"
)

// Encoder serialises values into QPack bytes. An Encoder is cheap to
// create but maintains internal buffer state and is NOT safe for
// concurrent use; use separate instances per goroutine.
type Encoder struct {
	cfg *Config
	buf []byte
}

// NewEncoder creates an Encoder. A nil cfg selects the defaults.
func NewEncoder(cfg *Config) *Encoder {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Encoder{cfg: cfg}
}

// Encode serialises v. On failure no partial output is returned.
func (e *Encoder) Encode(v Value) ([]byte, error) {
	scratch := getBuf()
	e.buf = (*scratch)[:0]

	err := e.appendData(v, 0)

	*scratch = e.buf
	e.buf = nil
	if err != nil {
		putBuf(scratch)
		return nil, err
	}

	out := make([]byte, len(*scratch))
	copy(out, *scratch)
	putBuf(scratch)

	debugf("encode: %d bytes", len(out))
	return out, nil
}

// appendData walks one value. depth counts the containers entered so
// far; it is incremented before descending into a List or Aggregate.
func (e *Encoder) appendData(v Value, depth int) error {
	switch val := v.(type) {
	case nil, nullValue:
		e.buf = append(e.buf, TagNull)

	case Bool:
		if val {
			e.buf = append(e.buf, TagTrue)
		} else {
			e.buf = append(e.buf, TagFalse)
		}

	case Int:
		e.appendInt(int64(val))

	case Double:
		e.appendDouble(float64(val))

	case Str:
		e.appendRaw([]byte(val))

	case List:
		depth++
		if depth > e.cfg.EncodeMaxDepth {
			return errors.ExcessiveNesting(errors.PhaseEncode, depth)
		}
		return e.appendArray([]Value(val), depth)

	case Aggregate:
		depth++
		if depth > e.cfg.EncodeMaxDepth {
			return errors.ExcessiveNesting(errors.PhaseEncode, depth)
		}
		entries := val.Entries()

		// Explicit length override: encode positionally, no scan. A
		// negative reported length encodes as an empty array.
		if n, ok := val.Len(); ok {
			if n < 0 {
				n = 0
			}
			return e.appendPositional(entries, n, depth)
		}

		length, err := e.arrayLength(entries)
		if err != nil {
			return err
		}
		if length > 0 || (length == 0 && e.cfg.EncodeEmptyTableAsArray) {
			return e.appendPositional(entries, length, depth)
		}
		return e.appendMap(entries, depth)

	default:
		return errors.UnsupportedType(typeName(v))
	}
	return nil
}

// arrayLength runs the pure-array scan over an aggregate's entries.
//
//	-1   not a pure array, encode as a map
//	>=0  elements in the array
//
// Every key must be a positive integer and the keys must form the
// dense range 1..max (max == entry count). The sparse policy, when
// enabled, runs before the density test so that gappy aggregates can
// be rejected rather than silently mapped.
func (e *Encoder) arrayLength(entries []Entry) (int, error) {
	max, items := 0, 0
	for _, ent := range entries {
		k, ok := ent.Key.(Int)
		if !ok || k < 1 {
			return -1, nil
		}
		if int(k) > max {
			max = int(k)
		}
		items++
	}

	if e.cfg.EncodeSparseRatio > 0 &&
		max > items*e.cfg.EncodeSparseRatio &&
		max > e.cfg.EncodeSparseSafe {
		if !e.cfg.EncodeSparseConvert {
			return 0, errors.SparseArray(max, items)
		}
		return -1, nil
	}

	if max != items {
		return -1, nil
	}
	return max, nil
}

// appendPositional encodes entries as an array of n elements read by
// position. Positions without an entry encode as null.
func (e *Encoder) appendPositional(entries []Entry, n int, depth int) error {
	elems := make([]Value, n)
	for _, ent := range entries {
		if k, ok := ent.Key.(Int); ok && k >= 1 && int(k) <= n {
			elems[k-1] = ent.Value
		}
	}
	return e.appendArray(elems, depth)
}

func (e *Encoder) appendArray(elems []Value, depth int) error {
	if len(elems) <= smallContainerMax {
		// Small-container fast path: count inlined in the tag, no
		// close marker.
		e.buf = append(e.buf, TagArray0+byte(len(elems)))
		for _, elem := range elems {
			if err := e.appendData(elem, depth); err != nil {
				return err
			}
		}
		return nil
	}

	e.buf = append(e.buf, TagArrayOpen)
	for _, elem := range elems {
		if err := e.appendData(elem, depth); err != nil {
			return err
		}
	}
	e.buf = append(e.buf, TagArrayClose)
	return nil
}

func (e *Encoder) appendMap(entries []Entry, depth int) error {
	small := len(entries) <= smallContainerMax
	if small {
		e.buf = append(e.buf, TagMap0+byte(len(entries)))
	} else {
		e.buf = append(e.buf, TagMapOpen)
	}

	for _, ent := range entries {
		if !IsValidKey(ent.Key) {
			return errors.InvalidKey(typeName(ent.Key))
		}
		if err := e.appendData(ent.Key, depth); err != nil {
			return err
		}
		if err := e.appendData(ent.Value, depth); err != nil {
			return err
		}
	}

	if !small {
		e.buf = append(e.buf, TagMapClose)
	}
	return nil
}

// appendInt picks the narrowest wire representation for an integer.
func (e *Encoder) appendInt(v int64) {
	switch {
	case v >= 0 && v <= tinyIntMax:
		e.buf = append(e.buf, byte(v))
	case v < 0 && v >= tinyNegMin:
		e.buf = append(e.buf, byte(63-v))
	case v >= math.MinInt8 && v <= math.MaxInt8:
		e.buf = append(e.buf, TagInt8, byte(int8(v)))
	case v >= math.MinInt16 && v <= math.MaxInt16:
		e.buf = append(e.buf, TagInt16)
		e.buf = binary.LittleEndian.AppendUint16(e.buf, uint16(int16(v)))
	case v >= math.MinInt32 && v <= math.MaxInt32:
		e.buf = append(e.buf, TagInt32)
		e.buf = binary.LittleEndian.AppendUint32(e.buf, uint32(int32(v)))
	default:
		e.buf = append(e.buf, TagInt64)
		e.buf = binary.LittleEndian.AppendUint64(e.buf, uint64(v))
	}
}

// appendDouble uses the dedicated one-byte tags for -1, 0 and 1.
func (e *Encoder) appendDouble(f float64) {
	switch f {
	case -1.0:
		e.buf = append(e.buf, TagDoubleN1)
	case 0.0:
		e.buf = append(e.buf, TagDouble0)
	case 1.0:
		e.buf = append(e.buf, TagDouble1)
	default:
		e.buf = append(e.buf, TagDouble)
		e.buf = binary.LittleEndian.AppendUint64(e.buf, math.Float64bits(f))
	}
}

// appendRaw writes a byte string. The stored length counts one
// terminator byte appended after the contents; the decoder strips it.
func (e *Encoder) appendRaw(b []byte) {
	n := uint64(len(b)) + 1
	switch {
	case n <= rawInlineMax:
		e.buf = append(e.buf, rawFirst+byte(n))
	case n < 1<<8:
		e.buf = append(e.buf, TagRaw8, byte(n))
	case n < 1<<16:
		e.buf = append(e.buf, TagRaw16)
		e.buf = binary.LittleEndian.AppendUint16(e.buf, uint16(n))
	case n < 1<<32:
		e.buf = append(e.buf, TagRaw32)
		e.buf = binary.LittleEndian.AppendUint32(e.buf, uint32(n))
	default:
		e.buf = append(e.buf, TagRaw64)
		e.buf = binary.LittleEndian.AppendUint64(e.buf, n)
	}
	e.buf = append(e.buf, b...)
	e.buf = append(e.buf, 0x00)
}
