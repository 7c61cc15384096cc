package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which half of the codec produced the error
type Phase string

const (
	PhaseEncode Phase = "encode" // value to wire bytes
	PhaseDecode Phase = "decode" // wire bytes to value
)

// Kind categorizes the error
type Kind string

const (
	// Encode kinds
	KindUnsupportedType  Kind = "unsupported_type"
	KindInvalidKey       Kind = "invalid_key"
	KindExcessiveNesting Kind = "excessive_nesting"
	KindSparseArray      Kind = "sparse_array"

	// Decode kinds
	KindEmptyInput      Kind = "empty_input"
	KindUnexpectedToken Kind = "unexpected_token"
	KindUnknownTag      Kind = "unknown_tag"
	KindTruncated       Kind = "truncated"

	// Shared
	KindInvalidConfig Kind = "invalid_config"
)

// Error is the structured error type used throughout the codec.
//
// Offset is a byte position in the input stream and is only meaningful
// for decode errors; -1 means "not applicable". Depth carries the
// nesting level reached for excessive_nesting errors. Tag carries the
// offending tag byte for unknown_tag errors.
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Offset int
	Depth  int
	Tag    byte
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Offset >= 0 {
		fmt.Fprintf(&b, " at offset %d", e.Offset)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Depth > 0 {
		fmt.Fprintf(&b, " (depth %d)", e.Depth)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Kind:   kind,
			Offset: -1,
		},
	}
}

// Offset sets the stream byte offset
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	return b
}

// Depth sets the nesting depth reached
func (b *Builder) Depth(depth int) *Builder {
	b.err.Depth = depth
	return b
}

// Tag sets the offending tag byte
func (b *Builder) Tag(tag byte) *Builder {
	b.err.Tag = tag
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnsupportedType creates an encode error for a value kind that has no
// wire representation
func UnsupportedType(typeName string) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindUnsupportedType,
		Detail: fmt.Sprintf("cannot serialise %s: type not supported", typeName),
		Offset: -1,
	}
}

// InvalidKey creates an encode error for a map key that is not an
// integer or a string
func InvalidKey(typeName string) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindInvalidKey,
		Detail: fmt.Sprintf("table key must be an integer or a string, got %s", typeName),
		Offset: -1,
	}
}

// ExcessiveNesting creates a depth-limit error carrying the depth reached
func ExcessiveNesting(phase Phase, depth int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindExcessiveNesting,
		Detail: "excessive nesting",
		Depth:  depth,
		Offset: -1,
	}
}

// SparseArray creates an encode error for an aggregate rejected by the
// sparse-array policy
func SparseArray(maxKey, items int) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindSparseArray,
		Detail: fmt.Sprintf("excessively sparse array: max key %d with %d items", maxKey, items),
		Offset: -1,
	}
}

// EmptyInput creates the error returned when decoding an empty stream
func EmptyInput() *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindEmptyInput,
		Detail: "cannot parse empty input",
		Offset: 0,
	}
}

// UnexpectedToken creates a decode error for a structural token found
// where a value (or key) was expected
func UnexpectedToken(offset int, expected, found string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnexpectedToken,
		Detail: fmt.Sprintf("expected %s but found %s", expected, found),
		Offset: offset,
	}
}

// UnknownTag creates a decode error carrying the offending tag byte and
// its stream offset
func UnknownTag(offset int, tag byte) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnknownTag,
		Detail: fmt.Sprintf("unknown tag 0x%02x", tag),
		Offset: offset,
		Tag:    tag,
	}
}

// Truncated creates a decode error for a payload that runs past the end
// of the input
func Truncated(offset int, what string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindTruncated,
		Detail: fmt.Sprintf("input truncated reading %s", what),
		Offset: offset,
	}
}

// InvalidConfig creates an error for an out-of-range configuration value
func InvalidConfig(detail string) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindInvalidConfig,
		Detail: detail,
		Offset: -1,
	}
}
