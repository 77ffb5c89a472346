package fingerprint

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.dedis.ch/kyber/v4/suites"
	"go.dedis.ch/protobuf"
)

var ErrUnknownSuite = errors.New("fingerprint: unknown suite")

// Fingerprint is a 64-bit content digest.
type Fingerprint uint64

func (f Fingerprint) String() string {
	return fmt.Sprintf("%016x", uint64(f))
}

// Hasher turns a canonical encoding into a Fingerprint.
type Hasher interface {
	Sum(data []byte) Fingerprint
}

// HasherFunc adapts a plain function to Hasher.
type HasherFunc func(data []byte) Fingerprint

func (f HasherFunc) Sum(data []byte) Fingerprint {
	return f(data)
}

// XXHash fingerprints with 64-bit xxhash.
var XXHash Hasher = HasherFunc(func(data []byte) Fingerprint {
	return Fingerprint(xxhash.Sum64(data))
})

// Suite returns a Hasher that digests with the hash factory of the named
// kyber suite (for example "Ed25519") and keeps the first eight bytes of
// the digest, big-endian.
func Suite(name string) (Hasher, error) {
	suite, err := suites.Find(name)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrUnknownSuite, name, err)
	}
	return HasherFunc(func(data []byte) Fingerprint {
		h := suite.Hash()
		h.Write(data)
		return Fingerprint(binary.BigEndian.Uint64(h.Sum(nil)[:8]))
	}), nil
}

// Record fingerprints the canonical protobuf encoding of record, which must
// be a pointer to a struct whose exported fields are protobuf-encodable.
// It panics if the record cannot be encoded, since that is a programming
// error in the caller's record type.
func Record(h Hasher, record any) Fingerprint {
	data, err := protobuf.Encode(record)
	if err != nil {
		panic(fmt.Sprintf("fingerprint: encode %T: %v", record, err))
	}
	return h.Sum(data)
}

// Sequence fingerprints an ordered list of fingerprints. The result depends
// on both the values and their order; an empty list fingerprints the empty
// encoding.
func Sequence(h Hasher, parts ...Fingerprint) Fingerprint {
	data := make([]byte, 0, 8*len(parts))
	for _, p := range parts {
		data = binary.BigEndian.AppendUint64(data, uint64(p))
	}
	return h.Sum(data)
}
