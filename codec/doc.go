// Package codec implements the per-kind, per-format encoders and
// decoders for PostgreSQL temporal values.
//
// Encoders are stateless values (except the interval text encoder,
// which snapshots the connection's IntervalStyle at construction) and
// append wire bytes for a native value. An encoder may delegate to a
// more specific sibling after inspecting the value: the time and
// timestamp encoders choose between the plain and offset-aware wire
// types per value, not per declared column type, because the same
// declared type can carry either kind of value.
//
// Decoders are constructed against a ConnContext snapshot. Construction
// resolves the connection's DateStyle, IntervalStyle and timezone
// exactly once; a style change on the live connection does not affect
// existing instances, and the owning registry is expected to discard
// and recreate them. Unrecognized style values fail construction
// eagerly with errs.ErrInvalidStyle, never at first decode. Recognized
// but unsupported styles (a non-ISO timestamptz style, a non-postgres
// interval style) bind an unimplemented strategy that fails every
// decode with errs.ErrNotImplemented.
//
// All operations are pure, synchronous transforms without shared
// mutable state; any instance is safe for concurrent use.
package codec
