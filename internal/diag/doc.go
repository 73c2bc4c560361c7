// Package diag defines the diagnostic model shared by the classifier,
// the contract validator and the enumeration pipeline.
//
// Diagnostics are plain data with stable identities. Code partitions
// the space into the equality-contract family (CON1xxx), the
// enumeration family (ENM2xxx) and loader I/O (IO4xxx); the rendered
// IDs are consumed by editors, build pipelines and the repair layer,
// so existing values must never be reassigned.
//
// Producers report through a Reporter and never abort: every
// independently detectable violation of a declaration lands in the
// same Bag so one fix cycle can resolve them all. Severity encodes the
// taxonomy — SevError is a structural violation that blocks synthesis
// for the owning declaration, SevWarning is a style violation that
// does not.
//
// Fix records are suggestions only. internal/fix materialises and
// applies them; internal/diagfmt renders diagnostics as pretty text,
// JSON or SARIF. Nothing in this package performs I/O.
package diag
