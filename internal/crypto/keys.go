package crypto

import (
	"encoding/hex"
	"fmt"

	"github.com/AlexZinkM/eth-paper-wallet/internal/common"

	"github.com/btcsuite/btcd/btcec/v2"
	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/sha3"
)

const (
	PrivateKeyLen = 32
	PublicKeyLen  = 64 // X || Y, no 0x04 prefix
	AddressLen    = 20
)

// Keccak256 returns the legacy (pre-NIST) Keccak-256 digest of the concatenated input.
func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// ValidateScalar checks that the big-endian scalar lies in [1, N-1] for secp256k1.
func ValidateScalar(privateKey [PrivateKeyLen]byte) error {
	var s secp.ModNScalar
	defer s.Zero()
	if overflow := s.SetBytes(&privateKey); overflow != 0 {
		return fmt.Errorf("%w: scalar is not below the curve order", ErrInvalidScalar)
	}
	if s.IsZero() {
		return fmt.Errorf("%w: scalar is zero", ErrInvalidScalar)
	}
	return nil
}

// DerivePublicKey multiplies the secp256k1 generator by privateKey and returns the
// affine point as X || Y, each coordinate left-padded to 32 bytes.
func DerivePublicKey(privateKey [PrivateKeyLen]byte) ([PublicKeyLen]byte, error) {
	var out [PublicKeyLen]byte
	if err := ValidateScalar(privateKey); err != nil {
		return out, err
	}

	priv, pub := btcec.PrivKeyFromBytes(privateKey[:])
	defer priv.Zero()

	// SerializeUncompressed is 0x04 || X || Y with fixed-width coordinates
	copy(out[:], pub.SerializeUncompressed()[1:])
	return out, nil
}

// DeriveAddress returns "0x" + lowercase hex of the last 20 bytes of Keccak-256(publicKey).
func DeriveAddress(publicKey [PublicKeyLen]byte) string {
	digest := Keccak256(publicKey[:])
	return "0x" + hex.EncodeToString(digest[len(digest)-AddressLen:])
}

// AddressFromPrivateKey runs DerivePublicKey and DeriveAddress back to back.
func AddressFromPrivateKey(privateKey [PrivateKeyLen]byte) (string, error) {
	pub, err := DerivePublicKey(privateKey)
	if err != nil {
		return "", err
	}
	return DeriveAddress(pub), nil
}

// ParsePrivateKey decodes a 64-character hex private key. A leading "0x" is accepted.
func ParsePrivateKey(s string) ([PrivateKeyLen]byte, error) {
	var key [PrivateKeyLen]byte
	s = common.Strip0x(s)
	if len(s) != 2*PrivateKeyLen {
		return key, fmt.Errorf("%w: expected %d hex characters, got %d", ErrMalformedInput, 2*PrivateKeyLen, len(s))
	}
	if !common.IsHex(s) {
		return key, fmt.Errorf("%w: private key contains non-hex characters", ErrMalformedInput)
	}
	if _, err := hex.Decode(key[:], []byte(s)); err != nil {
		return key, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return key, nil
}
