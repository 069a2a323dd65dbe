package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
)

// RandomSource supplies the random bytes used for private keys, salts, IVs and ids.
// Every call allocates a fresh buffer, nothing is shared between draws.
type RandomSource struct {
	reader io.Reader
}

// NewRandomSource wraps r. A nil reader falls back to crypto/rand.
func NewRandomSource(r io.Reader) *RandomSource {
	if r == nil {
		r = rand.Reader
	}
	return &RandomSource{reader: r}
}

// defaultRandom is backed by crypto/rand, which is safe for concurrent draws
var defaultRandom = NewRandomSource(nil)

// Bytes returns n random bytes.
func (s *RandomSource) Bytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.reader, buf); err != nil {
		return nil, fmt.Errorf("%w: failed to read %d bytes: %v", ErrRandomSource, n, err)
	}
	return buf, nil
}

// PrivateKey draws a 32-byte candidate private key.
func (s *RandomSource) PrivateKey() ([PrivateKeyLen]byte, error) {
	var key [PrivateKeyLen]byte
	if _, err := io.ReadFull(s.reader, key[:]); err != nil {
		return key, fmt.Errorf("%w: failed to read private key: %v", ErrRandomSource, err)
	}
	return key, nil
}

// Reader exposes the underlying reader, e.g. for UUID generation.
func (s *RandomSource) Reader() io.Reader {
	return s.reader
}
