package hashmap

import (
	"iter"

	"github.com/cespare/xxhash/v2"
)

// DefaultBuckets is the bucket count of a Map created without WithBuckets.
const DefaultBuckets = 8

// loadFactor is the entries-per-bucket ratio that triggers a rehash.
const loadFactor = 2

// Hasher maps a key to its bucket fingerprint. It must return the same
// value for equal keys.
type Hasher[K comparable] func(K) uint64

// String hashes string-like keys with xxhash.
func String[K ~string](key K) uint64 {
	return xxhash.Sum64String(string(key))
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// Map is a chained hash table. The zero value is not usable; create one
// with New. A Map is not safe for concurrent use.
type Map[K comparable, V any] struct {
	buckets [][]entry[K, V]
	count   int
	hash    Hasher[K]
}

type config struct {
	buckets int
}

// Option configures a Map.
type Option func(config) config

// WithBuckets sets the initial bucket count. Non-positive values fall back
// to DefaultBuckets.
func WithBuckets(n int) Option {
	return func(c config) config {
		if n > 0 {
			c.buckets = n
		}
		return c
	}
}

// New creates an empty Map that places keys with hash.
func New[K comparable, V any](hash Hasher[K], opts ...Option) *Map[K, V] {
	c := config{buckets: DefaultBuckets}
	for _, opt := range opts {
		c = opt(c)
	}
	return &Map[K, V]{
		buckets: make([][]entry[K, V], c.buckets),
		hash:    hash,
	}
}

// Len returns the number of stored entries.
func (m *Map[K, V]) Len() int {
	return m.count
}

// Buckets returns the current bucket count.
func (m *Map[K, V]) Buckets() int {
	return len(m.buckets)
}

// Contains reports whether key is stored.
func (m *Map[K, V]) Contains(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Get returns the value stored under key. The boolean is false, and the
// value is V's zero value, when key is absent.
func (m *Map[K, V]) Get(key K) (V, bool) {
	for _, e := range m.buckets[m.bucketOf(key)] {
		if e.key == key {
			return e.value, true
		}
	}
	var zero V
	return zero, false
}

// Set stores value under key, overwriting an existing entry in place.
// Inserting a new key may grow the table before Set returns.
func (m *Map[K, V]) Set(key K, value V) {
	idx := m.bucketOf(key)
	bucket := m.buckets[idx]
	for i := range bucket {
		if bucket[i].key == key {
			bucket[i].value = value
			return
		}
	}

	m.buckets[idx] = append(bucket, entry[K, V]{key: key, value: value})
	m.count++

	if m.count > loadFactor*len(m.buckets) {
		m.rehash(2 * len(m.buckets))
	}
}

// All yields every entry, bucket by bucket. The order is stable for a
// given hasher and insertion history but carries no other meaning.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, bucket := range m.buckets {
			for _, e := range bucket {
				if !yield(e.key, e.value) {
					return
				}
			}
		}
	}
}

func (m *Map[K, V]) bucketOf(key K) int {
	return int(m.hash(key) % uint64(len(m.buckets)))
}

// rehash moves every entry into a fresh array of n buckets.
func (m *Map[K, V]) rehash(n int) {
	old := m.buckets
	m.buckets = make([][]entry[K, V], n)
	for _, bucket := range old {
		for _, e := range bucket {
			idx := m.bucketOf(e.key)
			m.buckets[idx] = append(m.buckets[idx], e)
		}
	}
}
