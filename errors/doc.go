// Package errors provides structured error types for the QPack codec.
//
// Every failure carries a Phase (encode or decode) and a Kind, so
// callers can match on error categories with errors.Is:
//
//	if errors.Is(err, &qperrors.Error{Phase: qperrors.PhaseDecode, Kind: qperrors.KindTruncated}) {
//	    // handle short input
//	}
//
// Decode errors additionally carry the byte offset where the problem
// was found, and unknown-tag errors carry the offending tag byte.
// Depth-limit errors carry the nesting depth reached.
package errors
