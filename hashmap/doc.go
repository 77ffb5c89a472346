// Package hashmap implements a generic associative container with separate
// chaining and automatic growth.
//
// # Layout
//
// A Map holds an array of buckets. Each bucket is an ordered slice of
// entries; a key lives in bucket hash(key) mod Buckets(). Keys are hashed
// by an injected Hasher so that bucket placement is deterministic across
// processes and independent of Go's randomized map seeds.
//
// # Growth
//
// Whenever an insertion makes the entry count exceed twice the bucket
// count, the bucket array doubles and every entry is redistributed before
// Set returns. Starting from the default of 8 buckets the sequence is
// 8, 16, 32 and so on.
//
// # Misses
//
// Get reports absence with a boolean instead of a placeholder value, so a
// stored zero can always be told apart from a missing key.
package hashmap
