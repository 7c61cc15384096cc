// Package qpack implements the QPack binary serialization format: a
// compact, self-describing encoding for dynamic values (null, booleans,
// integers, doubles, byte strings, arrays and maps) with single-byte
// type tags and inlined small containers.
//
// # Architecture Overview
//
// The library is organized into a small set of packages:
//
//	qpack/           Public API: Value model, Encode/Decode, Safe* variants, JSON bridge
//	├── codec/       The codec engine: tag model, Encoder, Decoder
//	└── errors/      Structured error types for debugging
//
// # Quick Start
//
// Encode a value and read it back:
//
//	v := qpack.NewMap(
//	    qpack.Entry{Key: qpack.Str("name"), Value: qpack.Str("siri")},
//	    qpack.Entry{Key: qpack.Str("points"), Value: qpack.List{qpack.Int(1), qpack.Int(2)}},
//	)
//
//	data, err := qpack.Encode(v, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := qpack.Decode(data, nil)
//	fmt.Println(out)
//
// # Value Model
//
// Values form a closed sum type: Null, Bool, Int, Double, Str, List and
// *Map. Map keys are restricted to Int or Str. Maps preserve insertion
// order through encode and read order through decode; the wire format
// imposes no canonical ordering.
//
// A *Map whose keys form the dense range 1..N encodes as an array.
// Custom aggregates can implement the Aggregate interface to supply an
// explicit length override, mirroring a host runtime's length hook.
//
// # Configuration
//
// Config carries the depth limits (default 1000 on both sides) and the
// empty-container and sparse-array policies. Pass nil to use defaults.
//
// # Protected Variants
//
// SafeEncode and SafeDecode never propagate failures: they return the
// result paired with an error message, empty on success.
//
// # Thread Safety
//
// All exported entry points are safe for concurrent use on independent
// inputs. A Config shared across concurrent calls must not be mutated
// while in use.
package qpack
