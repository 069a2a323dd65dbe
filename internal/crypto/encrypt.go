package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"fmt"
	"math/bits"

	"github.com/AlexZinkM/eth-paper-wallet/internal/common"
	"github.com/AlexZinkM/eth-paper-wallet/internal/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/scrypt"
)

const (
	KeystoreVersion = 3
	CipherAES128CTR = "aes-128-ctr"
	KDFScrypt       = "scrypt"

	// scrypt parameters written into every keystore
	scryptN     = 1 << 13
	scryptR     = 8
	scryptP     = 1
	scryptDKLen = 32

	saltLen = 32
	ivLen   = aes.BlockSize // 16
	keyHalf = 16
)

// KDFParams are the scrypt cost parameters used to derive the keystore key.
type KDFParams struct {
	N     int
	R     int
	P     int
	DKLen int
}

// StandardKDFParams are the fixed parameters used for every generated keystore.
var StandardKDFParams = KDFParams{N: scryptN, R: scryptR, P: scryptP, DKLen: scryptDKLen}

// Validate rejects combinations scrypt cannot honour or that leave no room for
// both the 16-byte encryption key and the 16-byte MAC key.
func (p KDFParams) Validate() error {
	switch {
	case p.N <= 1 || bits.OnesCount(uint(p.N)) != 1:
		return fmt.Errorf("%w: N must be a power of two greater than 1, got %d", ErrKdfFailure, p.N)
	case p.R <= 0 || p.P <= 0:
		return fmt.Errorf("%w: r and p must be positive, got r=%d p=%d", ErrKdfFailure, p.R, p.P)
	case uint64(p.R)*uint64(p.P) >= 1<<30:
		return fmt.Errorf("%w: r*p must be below 2^30", ErrKdfFailure)
	case p.DKLen < 2*keyHalf:
		return fmt.Errorf("%w: dklen must be at least %d, got %d", ErrKdfFailure, 2*keyHalf, p.DKLen)
	}
	return nil
}

// Encryptor builds keystore records, drawing salts, IVs and ids from its random source.
type Encryptor struct {
	random *RandomSource
	params KDFParams
}

// NewEncryptor returns an Encryptor using random and the standard KDF parameters.
// A nil random source means crypto/rand.
func NewEncryptor(random *RandomSource) *Encryptor {
	if random == nil {
		random = defaultRandom
	}
	return &Encryptor{random: random, params: StandardKDFParams}
}

var defaultEncryptor = NewEncryptor(nil)

// BuildKeystore encrypts privateKey with password using crypto/rand and the standard parameters.
func BuildKeystore(privateKey [PrivateKeyLen]byte, password []byte) (*model.KeystoreRecord, error) {
	return defaultEncryptor.BuildKeystore(privateKey, password)
}

// BuildKeystore encrypts privateKey with password into a version 3 keystore record.
// A fresh salt, IV and id are drawn for every call.
func (e *Encryptor) BuildKeystore(privateKey [PrivateKeyLen]byte, password []byte) (*model.KeystoreRecord, error) {
	address, err := AddressFromPrivateKey(privateKey)
	if err != nil {
		return nil, err
	}

	salt, err := e.random.Bytes(saltLen)
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	iv, err := e.random.Bytes(ivLen)
	if err != nil {
		return nil, fmt.Errorf("failed to generate iv: %w", err)
	}
	id, err := uuid.NewRandomFromReader(e.random.Reader())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate keystore id: %v", ErrRandomSource, err)
	}

	record, err := encryptKey(privateKey, password, salt, iv, e.params)
	if err != nil {
		return nil, err
	}
	record.ID = id.String()
	record.Address = common.Strip0x(address)
	return record, nil
}

// encryptKey is the deterministic part of BuildKeystore: same inputs, same ciphertext and mac.
// ID and Address are left for the caller.
func encryptKey(privateKey [PrivateKeyLen]byte, password, salt, iv []byte, params KDFParams) (*model.KeystoreRecord, error) {
	if len(iv) != ivLen {
		return nil, fmt.Errorf("invalid iv length %d, want %d", len(iv), ivLen)
	}

	derivedKey, err := deriveKey(password, salt, params)
	if err != nil {
		return nil, err
	}
	defer clear(derivedKey)

	encryptionKey := derivedKey[:keyHalf]
	macKey := derivedKey[keyHalf : 2*keyHalf]

	cipherText, err := aesCTRXOR(encryptionKey, privateKey[:], iv)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt private key: %w", err)
	}
	mac := Keccak256(macKey, cipherText)

	return &model.KeystoreRecord{
		Version: KeystoreVersion,
		Crypto: model.CryptoJSON{
			CipherText:   hex.EncodeToString(cipherText),
			CipherParams: model.CipherParams{IV: hex.EncodeToString(iv)},
			Cipher:       CipherAES128CTR,
			KDF:          KDFScrypt,
			KDFParams: model.ScryptParams{
				DKLen: params.DKLen,
				Salt:  hex.EncodeToString(salt),
				N:     params.N,
				R:     params.R,
				P:     params.P,
			},
			MAC: hex.EncodeToString(mac),
		},
	}, nil
}

// deriveKey runs scrypt after validating params, so a bad combination fails loudly
// instead of producing a short or truncated key.
func deriveKey(password, salt []byte, params KDFParams) ([]byte, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	key, err := scrypt.Key(password, salt, params.N, params.R, params.P, params.DKLen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKdfFailure, err)
	}
	if len(key) != params.DKLen {
		return nil, fmt.Errorf("%w: derived %d bytes, want %d", ErrKdfFailure, len(key), params.DKLen)
	}
	return key, nil
}

// aesCTRXOR encrypts or decrypts in with AES-CTR. The key size selects AES-128.
func aesCTRXOR(key, in, iv []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	stream := cipher.NewCTR(block, iv)
	out := make([]byte, len(in))
	stream.XORKeyStream(out, in)
	return out, nil
}
