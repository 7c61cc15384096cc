package qpack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/transceptor/qpack/errors"
)

// FromJSON converts a JSON document into the QPack value model. Object
// member order is preserved. Numbers become Int when they parse as a
// 64-bit integer, Double otherwise.
func FromJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err == io.EOF {
		return nil, errors.EmptyInput()
	}
	if err != nil {
		return nil, err
	}
	return jsonValue(dec, tok)
}

func jsonValue(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null, nil

	case bool:
		return Bool(t), nil

	case string:
		return Str(t), nil

	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return Double(f), nil

	case json.Delim:
		switch t {
		case '[':
			list := List{}
			for dec.More() {
				elem, err := dec.Token()
				if err != nil {
					return nil, err
				}
				v, err := jsonValue(dec, elem)
				if err != nil {
					return nil, err
				}
				list = append(list, v)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return list, nil

		case '{':
			m := &Map{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("qpack: unexpected JSON object key %v", keyTok)
				}
				valTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				v, err := jsonValue(dec, valTok)
				if err != nil {
					return nil, err
				}
				m.Set(Str(key), v)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return m, nil
		}
	}
	return nil, fmt.Errorf("qpack: unexpected JSON token %v", tok)
}

// ToJSON renders a value as JSON. Map pair order is preserved; Int keys
// render as quoted decimal strings since JSON object keys must be
// strings. Strings must be valid UTF-8 for faithful output.
func ToJSON(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v Value) error {
	if v == nil || v == Null {
		buf.WriteString("null")
		return nil
	}
	switch val := v.(type) {
	case Bool:
		buf.WriteString(strconv.FormatBool(bool(val)))

	case Int:
		buf.WriteString(strconv.FormatInt(int64(val), 10))

	case Double:
		b, err := json.Marshal(float64(val))
		if err != nil {
			return err
		}
		buf.Write(b)

	case Str:
		b, err := json.Marshal(string(val))
		if err != nil {
			return err
		}
		buf.Write(b)

	case List:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')

	case Aggregate:
		buf.WriteByte('{')
		for i, pair := range val.Entries() {
			if i > 0 {
				buf.WriteByte(',')
			}
			switch k := pair.Key.(type) {
			case Str:
				b, err := json.Marshal(string(k))
				if err != nil {
					return err
				}
				buf.Write(b)
			case Int:
				buf.WriteByte('"')
				buf.WriteString(strconv.FormatInt(int64(k), 10))
				buf.WriteByte('"')
			default:
				return errors.InvalidKey(fmt.Sprintf("%T", pair.Key))
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, pair.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')

	default:
		return errors.UnsupportedType(fmt.Sprintf("%T", v))
	}
	return nil
}
