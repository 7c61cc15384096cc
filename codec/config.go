package codec

import "github.com/transceptor/qpack/errors"

// Default configuration values.
const (
	DefaultEncodeMaxDepth = 1000
	DefaultDecodeMaxDepth = 1000
)

// Config holds the knobs consulted by the encoder and decoder. A Config
// is read-only during a single encode or decode call; callers sharing
// one Config across concurrent calls must not mutate it concurrently.
type Config struct {
	// EncodeMaxDepth bounds container nesting on the encode side.
	EncodeMaxDepth int

	// DecodeMaxDepth bounds container nesting on the decode side.
	DecodeMaxDepth int

	// EncodeEmptyTableAsArray classifies an aggregate with no entries
	// and no length override: true encodes it as an empty array, false
	// (the default) as an empty map.
	EncodeEmptyTableAsArray bool

	// Sparse-array policy. With EncodeSparseRatio > 0, an aggregate
	// whose integer keys satisfy max > items*ratio and max >
	// EncodeSparseSafe is either converted to a map
	// (EncodeSparseConvert) or rejected. Ratio 0 disables the policy.
	EncodeSparseRatio   int
	EncodeSparseSafe    int
	EncodeSparseConvert bool
}

// DefaultConfig returns a Config with the default limits.
func DefaultConfig() *Config {
	return &Config{
		EncodeMaxDepth: DefaultEncodeMaxDepth,
		DecodeMaxDepth: DefaultDecodeMaxDepth,
	}
}

// SetEncodeMaxDepth configures the maximum number of nested containers
// allowed when encoding. Must be positive.
func (c *Config) SetEncodeMaxDepth(n int) error {
	if n < 1 {
		return errors.InvalidConfig("encode max depth must be positive")
	}
	c.EncodeMaxDepth = n
	return nil
}

// SetDecodeMaxDepth configures the maximum number of nested containers
// allowed when decoding. Must be positive.
func (c *Config) SetDecodeMaxDepth(n int) error {
	if n < 1 {
		return errors.InvalidConfig("decode max depth must be positive")
	}
	c.DecodeMaxDepth = n
	return nil
}

// SetEncodeEmptyTableAsArray configures the empty-aggregate policy.
func (c *Config) SetEncodeEmptyTableAsArray(v bool) {
	c.EncodeEmptyTableAsArray = v
}

// SetEncodeSparse configures the sparse-array policy. Ratio 0 disables
// it; negative values are rejected.
func (c *Config) SetEncodeSparse(ratio, safe int, convert bool) error {
	if ratio < 0 {
		return errors.InvalidConfig("sparse ratio must not be negative")
	}
	if safe < 0 {
		return errors.InvalidConfig("sparse safe limit must not be negative")
	}
	c.EncodeSparseRatio = ratio
	c.EncodeSparseSafe = safe
	c.EncodeSparseConvert = convert
	return nil
}
