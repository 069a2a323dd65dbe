package crypto

import "errors"

var (
	// ErrInvalidScalar is returned when a private key is zero or not below the curve order.
	ErrInvalidScalar = errors.New("invalid private key scalar")

	// ErrMalformedInput is returned when a user-supplied private key is not 64 hex characters.
	ErrMalformedInput = errors.New("malformed private key input")

	// ErrKdfFailure is returned when the scrypt parameters cannot produce a usable key.
	ErrKdfFailure = errors.New("key derivation failed")

	// ErrRandomSource is returned when the random source cannot supply enough bytes.
	ErrRandomSource = errors.New("random source failure")

	// ErrMacMismatch means a wrong password or a tampered keystore.
	ErrMacMismatch = errors.New("keystore mac mismatch: wrong password or corrupted file")

	// ErrAddressMismatch means the decrypted key does not belong to the stored address.
	ErrAddressMismatch = errors.New("keystore address does not match decrypted key")

	// ErrUnsupportedKeystore is returned for keystores using another version, cipher or kdf.
	ErrUnsupportedKeystore = errors.New("unsupported keystore format")
)
