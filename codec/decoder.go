package codec

import (
	"encoding/binary"
	"math"

	"github.com/transceptor/qpack/errors"
)

// tokClass is the normalized type of one stream token. All integer
// widths collapse to tokInt and all raw length classes to tokRaw.
type tokClass int

const (
	tokEnd tokClass = iota
	tokNull
	tokTrue
	tokFalse
	tokInt
	tokDouble
	tokRaw
	tokArray // fixed count in cnt
	tokMap   // fixed count in cnt
	tokArrayOpen
	tokMapOpen
	tokArrayClose
	tokMapClose
)

type token struct {
	class  tokClass
	tag    byte
	offset int
	i      int64
	f      float64
	raw    []byte
	cnt    int
}

// name renders the token for unexpected-token errors.
func (t token) name() string {
	if t.class == tokEnd {
		return "end of stream"
	}
	return TagName(t.tag)
}

// Decoder reads a QPack tag stream back into values. A Decoder is NOT
// safe for concurrent use; use separate instances per goroutine.
type Decoder struct {
	cfg  *Config
	data []byte
	pos  int
}

// NewDecoder creates a Decoder. A nil cfg selects the defaults.
func NewDecoder(cfg *Config) *Decoder {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Decoder{cfg: cfg}
}

// Decode reconstructs the first value of data. An empty input is an
// error, never null. Bytes past the first top-level value are ignored.
func (d *Decoder) Decode(data []byte) (Value, error) {
	d.data = data
	d.pos = 0

	tok, err := d.next()
	if err != nil {
		return nil, err
	}
	if tok.class == tokEnd {
		return nil, errors.EmptyInput()
	}

	v, err := d.readValue(tok, 0)
	if err != nil {
		return nil, err
	}
	debugf("decode: %d of %d bytes consumed", d.pos, len(data))
	return v, nil
}

// readValue turns one token into a value, descending recursively for
// containers. depth counts the containers entered so far.
func (d *Decoder) readValue(tok token, depth int) (Value, error) {
	switch tok.class {
	case tokEnd, tokArrayClose, tokMapClose:
		return nil, errors.UnexpectedToken(tok.offset, "value", tok.name())

	case tokNull:
		return Null, nil

	case tokTrue:
		return Bool(true), nil

	case tokFalse:
		return Bool(false), nil

	case tokInt:
		return Int(tok.i), nil

	case tokDouble:
		return Double(tok.f), nil

	case tokRaw:
		// The stored length counts the encoder's terminator byte.
		if len(tok.raw) == 0 {
			return Str(""), nil
		}
		return Str(tok.raw[:len(tok.raw)-1]), nil

	case tokArray:
		depth++
		if depth > d.cfg.DecodeMaxDepth {
			return nil, errors.ExcessiveNesting(errors.PhaseDecode, depth)
		}
		list := make(List, 0, tok.cnt)
		for i := 0; i < tok.cnt; i++ {
			elem, err := d.readNext(depth)
			if err != nil {
				return nil, err
			}
			list = append(list, elem)
		}
		return list, nil

	case tokMap:
		depth++
		if depth > d.cfg.DecodeMaxDepth {
			return nil, errors.ExcessiveNesting(errors.PhaseDecode, depth)
		}
		m := &Map{Pairs: make([]Entry, 0, tok.cnt)}
		for i := 0; i < tok.cnt; i++ {
			if err := d.readPair(m, depth); err != nil {
				return nil, err
			}
		}
		return m, nil

	case tokArrayOpen:
		depth++
		if depth > d.cfg.DecodeMaxDepth {
			return nil, errors.ExcessiveNesting(errors.PhaseDecode, depth)
		}
		list := List{}
		for {
			elem, err := d.next()
			if err != nil {
				return nil, err
			}
			if elem.class == tokArrayClose {
				return list, nil
			}
			if elem.class == tokEnd {
				return nil, errors.Truncated(elem.offset, "array close")
			}
			v, err := d.readValue(elem, depth)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}

	case tokMapOpen:
		depth++
		if depth > d.cfg.DecodeMaxDepth {
			return nil, errors.ExcessiveNesting(errors.PhaseDecode, depth)
		}
		m := &Map{}
		for {
			key, err := d.next()
			if err != nil {
				return nil, err
			}
			if key.class == tokMapClose {
				return m, nil
			}
			if key.class == tokEnd {
				return nil, errors.Truncated(key.offset, "map close")
			}
			if err := d.readPairFrom(m, key, depth); err != nil {
				return nil, err
			}
		}
	}

	return nil, errors.UnexpectedToken(tok.offset, "value", tok.name())
}

// readNext reads one token and converts it to a value.
func (d *Decoder) readNext(depth int) (Value, error) {
	tok, err := d.next()
	if err != nil {
		return nil, err
	}
	return d.readValue(tok, depth)
}

// readPair reads one key token plus value and appends the pair.
func (d *Decoder) readPair(m *Map, depth int) error {
	key, err := d.next()
	if err != nil {
		return err
	}
	return d.readPairFrom(m, key, depth)
}

// readPairFrom finishes a pair whose key token is already read. Keys
// must decode to Int or Str.
func (d *Decoder) readPairFrom(m *Map, key token, depth int) error {
	k, err := d.readValue(key, depth)
	if err != nil {
		return err
	}
	if !IsValidKey(k) {
		return errors.UnexpectedToken(key.offset, "map key (int or raw)", key.name())
	}
	v, err := d.readNext(depth)
	if err != nil {
		return err
	}
	m.Pairs = append(m.Pairs, Entry{Key: k, Value: v})
	return nil
}

// next reads one token from the stream. End of input yields a tokEnd
// token rather than an error so container loops can decide how to
// treat it.
func (d *Decoder) next() (token, error) {
	if d.pos >= len(d.data) {
		return token{class: tokEnd, offset: d.pos}, nil
	}

	off := d.pos
	tag := d.data[d.pos]
	d.pos++
	tok := token{tag: tag, offset: off}

	switch {
	case tag <= tinyIntMax:
		tok.class = tokInt
		tok.i = int64(tag)
		return tok, nil

	case tag <= tinyNegLast:
		tok.class = tokInt
		tok.i = 63 - int64(tag)
		return tok, nil

	case tag == TagHook:
		return tok, errors.UnknownTag(off, tag)

	case tag == TagDoubleN1, tag == TagDouble0, tag == TagDouble1:
		tok.class = tokDouble
		tok.f = float64(int(tag) - int(TagDouble0))
		return tok, nil

	case tag <= rawLast:
		return d.rawToken(tok, uint64(tag-rawFirst))
	}

	switch tag {
	case TagRaw8:
		n, err := d.uint(&tok, 1, "raw length")
		if err != nil {
			return tok, err
		}
		return d.rawToken(tok, n)
	case TagRaw16:
		n, err := d.uint(&tok, 2, "raw length")
		if err != nil {
			return tok, err
		}
		return d.rawToken(tok, n)
	case TagRaw32:
		n, err := d.uint(&tok, 4, "raw length")
		if err != nil {
			return tok, err
		}
		return d.rawToken(tok, n)
	case TagRaw64:
		n, err := d.uint(&tok, 8, "raw length")
		if err != nil {
			return tok, err
		}
		return d.rawToken(tok, n)

	case TagInt8:
		n, err := d.uint(&tok, 1, "1-byte integer")
		if err != nil {
			return tok, err
		}
		tok.class = tokInt
		tok.i = int64(int8(n))
	case TagInt16:
		n, err := d.uint(&tok, 2, "2-byte integer")
		if err != nil {
			return tok, err
		}
		tok.class = tokInt
		tok.i = int64(int16(n))
	case TagInt32:
		n, err := d.uint(&tok, 4, "4-byte integer")
		if err != nil {
			return tok, err
		}
		tok.class = tokInt
		tok.i = int64(int32(n))
	case TagInt64:
		n, err := d.uint(&tok, 8, "8-byte integer")
		if err != nil {
			return tok, err
		}
		tok.class = tokInt
		tok.i = int64(n)

	case TagDouble:
		n, err := d.uint(&tok, 8, "8-byte double")
		if err != nil {
			return tok, err
		}
		tok.class = tokDouble
		tok.f = math.Float64frombits(n)

	case TagTrue:
		tok.class = tokTrue
	case TagFalse:
		tok.class = tokFalse
	case TagNull:
		tok.class = tokNull
	case TagArrayOpen:
		tok.class = tokArrayOpen
	case TagMapOpen:
		tok.class = tokMapOpen
	case TagArrayClose:
		tok.class = tokArrayClose
	case TagMapClose:
		tok.class = tokMapClose

	default:
		switch {
		case tag >= TagArray0 && tag <= TagArray5:
			tok.class = tokArray
			tok.cnt = int(tag - TagArray0)
		case tag >= TagMap0 && tag <= TagMap5:
			tok.class = tokMap
			tok.cnt = int(tag - TagMap0)
		default:
			return tok, errors.UnknownTag(off, tag)
		}
	}
	return tok, nil
}

// rawToken slices n payload bytes out of the stream.
func (d *Decoder) rawToken(tok token, n uint64) (token, error) {
	if n > uint64(len(d.data)-d.pos) {
		return tok, errors.Truncated(tok.offset, "raw payload")
	}
	tok.class = tokRaw
	tok.raw = d.data[d.pos : d.pos+int(n)]
	d.pos += int(n)
	return tok, nil
}

// uint reads a little-endian unsigned integer of the given width.
func (d *Decoder) uint(tok *token, width int, what string) (uint64, error) {
	if len(d.data)-d.pos < width {
		return 0, errors.Truncated(tok.offset, what)
	}
	p := d.data[d.pos:]
	d.pos += width
	switch width {
	case 1:
		return uint64(p[0]), nil
	case 2:
		return uint64(binary.LittleEndian.Uint16(p)), nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(p)), nil
	default:
		return binary.LittleEndian.Uint64(p), nil
	}
}
