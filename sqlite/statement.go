package sqlite

// Statement is immutable, pre-validated SQL text with positional ?
// placeholders (1-indexed on the engine side).
//
// The injection-safety property is a construction discipline, not a runtime
// behaviour: convert string literals only, and pass every runtime value as
// a bound parameter. The distinct type exists so that the conversion is a
// deliberate act rather than an accident of string plumbing; this layer
// treats the text as already trusted and opaque.
type Statement string
