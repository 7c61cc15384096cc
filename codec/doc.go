// Package codec implements the QPack binary codec engine.
//
// QPack is a compact self-describing binary format: every value starts
// with a single tag byte that encodes its type and, for small payloads,
// the value or length itself.
//
// # Wire Format
//
// The tag space is fully assigned:
//
//	Tag            Meaning                     Payload
//	─────────────────────────────────────────────────────────────
//	0x00-0x3f      integer 0..63               none
//	0x40-0x7b      integer -1..-60             none
//	0x7c           reserved (hook)             -
//	0x7d-0x7f      double -1.0 / 0.0 / 1.0     none
//	0x80-0xe3      raw, length 0..99           that many bytes
//	0xe4-0xe7      RAW8/16/32/64               uint length + bytes
//	0xe8-0xeb      INT8/16/32/64               signed int (LE)
//	0xec           DOUBLE                      8 bytes IEEE-754 (LE)
//	0xed-0xf2      ARRAY0..ARRAY5              0-5 values inline
//	0xf3-0xf8      MAP0..MAP5                  0-5 pairs inline
//	0xf9/0xfa/0xfb TRUE / FALSE / NULL         none
//	0xfc/0xfd      ARRAY_OPEN / MAP_OPEN       values until close
//	0xfe/0xff      ARRAY_CLOSE / MAP_CLOSE     -
//
// Containers of 0-5 elements are inlined: the count lives in the tag
// and no close marker follows. Larger containers use the open/close
// bracket tags. The decoder accepts both forms interchangeably, and
// likewise accepts any integer width for any integer value.
//
// Raw strings store their length plus one: the encoder appends a
// terminator byte after the contents, and the decoder strips exactly
// one byte from a non-zero reported length.
//
// # Key Types
//
//	Value    - the host value sum type (Null, Bool, Int, Double, Str, List, *Map)
//	Encoder  - walks a Value recursively, emits tag bytes
//	Decoder  - reads a tag stream recursively, rebuilds Values
//	Config   - depth limits and container classification policy
//
// # Array vs Map Classification
//
// A *Map (or custom Aggregate) whose keys are exactly the dense integer
// range 1..N encodes as an array of N positional elements. Any
// non-positive-integer key forces map encoding. An aggregate with no
// entries encodes as an empty map unless Config.EncodeEmptyTableAsArray
// is set. An Aggregate reporting an explicit length override encodes
// positionally without the scan, with missing positions as null.
//
// # Limits
//
// Encoding checks Config.EncodeMaxDepth before descending into each
// nested container; decoding checks Config.DecodeMaxDepth the same way.
// Depth failures carry the depth reached.
//
// # Thread Safety
//
// Config and the tag tables are read-only after construction. Encoder
// and Decoder maintain internal state and are NOT thread-safe; use
// separate instances per goroutine.
//
// # Error Handling
//
// Errors use the structured types from the errors package:
//
//	[encode] invalid_key: table key must be an integer or a string, got double
//	[decode] unknown_tag at offset 3: unknown tag 0x7c
package codec
