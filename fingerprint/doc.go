// Package fingerprint derives deterministic content fingerprints for
// ledger entities.
//
// A Fingerprint is a 64-bit digest of a canonical byte encoding. The
// encoding is structural: equal logical values always produce equal bytes,
// and therefore equal fingerprints, across processes and runs.
//
// The hash behind a fingerprint is injected through the Hasher interface.
// XXHash is the fast default; Suite builds a hasher from the hash factory
// of a kyber cipher suite when a digest-based fingerprint is preferred.
// Neither is meant to resist deliberate collisions.
package fingerprint
