// Package eq is the runtime companion of the eqgen generator. User
// code embeds the base shapes declared here; generated methods call
// the hash and sequence helpers. Everything in this package is
// deterministic across processes, so generated hashes are stable and
// safe to persist.
package eq
