package ethereum

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/AlexZinkM/eth-paper-wallet/internal/crypto"
	"github.com/AlexZinkM/eth-paper-wallet/internal/model"
)

var (
	// ErrInvalidCount is returned when a batch of fewer than one wallet is requested
	ErrInvalidCount = errors.New("wallet count must be at least 1")

	// ErrIoFailure wraps every failure to persist a wallet artifact
	ErrIoFailure = errors.New("failed to write wallet artifact")
)

// Wallet is the result of one pipeline run. Only Wipe modifies it after construction.
type Wallet struct {
	PrivateKey [crypto.PrivateKeyLen]byte
	PublicKey  [crypto.PublicKeyLen]byte
	Address    string // 0x-prefixed, lowercase
	Keystore   *model.KeystoreRecord
}

// PrivateKeyHex returns the private key as 64 lowercase hex characters
func (w *Wallet) PrivateKeyHex() string {
	return hex.EncodeToString(w.PrivateKey[:])
}

// PublicKeyHex returns X || Y as 128 lowercase hex characters
func (w *Wallet) PublicKeyHex() string {
	return hex.EncodeToString(w.PublicKey[:])
}

// PublicKeyHashHex returns the full Keccak-256 of the public key; the address is its last 20 bytes
func (w *Wallet) PublicKeyHashHex() string {
	return hex.EncodeToString(crypto.Keccak256(w.PublicKey[:]))
}

// Wipe zeroes the private key held by w
func (w *Wallet) Wipe() {
	clear(w.PrivateKey[:])
}

// Stage names a step of the wallet pipeline
type Stage string

const (
	StageInput     Stage = "input validation"
	StageRandom    Stage = "private key generation"
	StagePublicKey Stage = "public key derivation"
	StageKeystore  Stage = "keystore encryption"
	StageExport    Stage = "export"
)

// StageError reports which stage failed for which wallet of a batch.
type StageError struct {
	Stage Stage
	Index int // zero based position in the batch
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("wallet %d: %s failed: %v", e.Index+1, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// IsStageError checks if err is a StageError and returns it
func IsStageError(err error) (*StageError, bool) {
	var se *StageError
	ok := errors.As(err, &se)
	return se, ok
}
