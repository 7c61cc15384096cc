package qpack

import (
	"fmt"

	"github.com/transceptor/qpack/codec"
)

// Re-exported codec types. The codec package holds the engine; this
// package is the public surface.
type (
	Value     = codec.Value
	Bool      = codec.Bool
	Int       = codec.Int
	Double    = codec.Double
	Str       = codec.Str
	List      = codec.List
	Map       = codec.Map
	Entry     = codec.Entry
	Aggregate = codec.Aggregate
	Config    = codec.Config
)

// Null is the QPack null value.
var Null = codec.Null

// NewMap creates a Map from pairs.
func NewMap(pairs ...Entry) *Map { return codec.NewMap(pairs...) }

// DefaultConfig returns a Config with the default limits.
func DefaultConfig() *Config { return codec.DefaultConfig() }

// Encode serialises v into QPack bytes. A nil cfg selects the default
// configuration. On failure no partial output is returned.
func Encode(v Value, cfg *Config) ([]byte, error) {
	return codec.NewEncoder(cfg).Encode(v)
}

// Decode reconstructs a value from QPack bytes. A nil cfg selects the
// default configuration. An empty input is an error, never null.
func Decode(data []byte, cfg *Config) (Value, error) {
	return codec.NewDecoder(cfg).Decode(data)
}

// SafeEncode is the protected variant of Encode: any failure, including
// panics out of custom Aggregate implementations, is converted into a
// (nil, message) pair instead of an error or unwind.
func SafeEncode(v Value, cfg *Config) (out []byte, errMsg string) {
	defer func() {
		if r := recover(); r != nil {
			out, errMsg = nil, fmt.Sprint(r)
		}
	}()
	b, err := Encode(v, cfg)
	if err != nil {
		return nil, err.Error()
	}
	return b, ""
}

// SafeDecode is the protected variant of Decode.
func SafeDecode(data []byte, cfg *Config) (v Value, errMsg string) {
	defer func() {
		if r := recover(); r != nil {
			v, errMsg = nil, fmt.Sprint(r)
		}
	}()
	val, err := Decode(data, cfg)
	if err != nil {
		return nil, err.Error()
	}
	return val, ""
}
