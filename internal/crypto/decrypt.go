package crypto

import (
	"bytes"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/AlexZinkM/eth-paper-wallet/internal/common"
	"github.com/AlexZinkM/eth-paper-wallet/internal/model"
)

// scrypt limits accepted from a file. N*r*p = 2^23 allows N=2^20 with r=8 and p=1 (~1GB RAM).
const (
	maxDecryptN    = 1 << 20
	maxDecryptCost = 1 << 23
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseKeystore decodes keystore JSON. A leading UTF-8 BOM is skipped.
func ParseKeystore(data []byte) (*model.KeystoreRecord, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var record model.KeystoreRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal keystore: %w", err)
	}
	return &record, nil
}

// ReadKeystoreFile reads and parses a keystore file without decrypting it.
func ReadKeystoreFile(filePath string) (*model.KeystoreRecord, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("file does not exist")
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if fileInfo.Size() == 0 {
		return nil, errors.New("file is empty")
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseKeystore(data)
}

// ReadKeystoreAddress returns the 0x-prefixed address stored in a keystore file.
func ReadKeystoreAddress(filePath string) (string, error) {
	record, err := ReadKeystoreFile(filePath)
	if err != nil {
		return "", err
	}
	return "0x" + record.Address, nil
}

// DecryptKeystore recovers the private key from record using password.
// The MAC is checked before decryption, and the recovered key must derive the stored address.
func DecryptKeystore(record *model.KeystoreRecord, password []byte) ([PrivateKeyLen]byte, error) {
	var key [PrivateKeyLen]byte

	if record == nil {
		return key, fmt.Errorf("%w: nil record", ErrUnsupportedKeystore)
	}
	if record.Version != KeystoreVersion {
		return key, fmt.Errorf("%w: version %d", ErrUnsupportedKeystore, record.Version)
	}
	if record.Crypto.Cipher != CipherAES128CTR {
		return key, fmt.Errorf("%w: cipher %q", ErrUnsupportedKeystore, record.Crypto.Cipher)
	}
	if record.Crypto.KDF != KDFScrypt {
		return key, fmt.Errorf("%w: kdf %q", ErrUnsupportedKeystore, record.Crypto.KDF)
	}

	mac, err := hex.DecodeString(record.Crypto.MAC)
	if err != nil {
		return key, fmt.Errorf("failed to decode mac: %w", err)
	}
	iv, err := hex.DecodeString(record.Crypto.CipherParams.IV)
	if err != nil {
		return key, fmt.Errorf("failed to decode iv: %w", err)
	}
	if len(iv) != ivLen {
		return key, fmt.Errorf("%w: iv is %d bytes", ErrUnsupportedKeystore, len(iv))
	}
	cipherText, err := hex.DecodeString(record.Crypto.CipherText)
	if err != nil {
		return key, fmt.Errorf("failed to decode ciphertext: %w", err)
	}
	if len(cipherText) != PrivateKeyLen {
		return key, fmt.Errorf("%w: ciphertext is %d bytes", ErrUnsupportedKeystore, len(cipherText))
	}
	salt, err := hex.DecodeString(record.Crypto.KDFParams.Salt)
	if err != nil {
		return key, fmt.Errorf("failed to decode salt: %w", err)
	}

	params := KDFParams{
		N:     record.Crypto.KDFParams.N,
		R:     record.Crypto.KDFParams.R,
		P:     record.Crypto.KDFParams.P,
		DKLen: record.Crypto.KDFParams.DKLen,
	}
	if err := checkDecryptCost(params); err != nil {
		return key, err
	}

	derivedKey, err := deriveKey(password, salt, params)
	if err != nil {
		return key, err
	}
	defer clear(derivedKey)

	calculatedMAC := Keccak256(derivedKey[keyHalf:2*keyHalf], cipherText)
	if subtle.ConstantTimeCompare(calculatedMAC, mac) != 1 {
		return key, ErrMacMismatch
	}

	plain, err := aesCTRXOR(derivedKey[:keyHalf], cipherText, iv)
	if err != nil {
		return key, fmt.Errorf("failed to decrypt private key: %w", err)
	}
	copy(key[:], plain)
	clear(plain)

	address, err := AddressFromPrivateKey(key)
	if err != nil {
		clear(key[:])
		return key, err
	}
	if record.Address != "" && !common.EqualHexFold(record.Address, address) {
		clear(key[:])
		return key, ErrAddressMismatch
	}
	return key, nil
}

// checkDecryptCost rejects parameters whose memory or time cost is out of bounds for decryption
func checkDecryptCost(params KDFParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if params.N > maxDecryptN {
		return fmt.Errorf("%w: scrypt N=%d exceeds %d", ErrKdfFailure, params.N, maxDecryptN)
	}
	if cost := uint64(params.N) * uint64(params.R) * uint64(params.P); cost > maxDecryptCost {
		return fmt.Errorf("%w: scrypt N*r*p=%d exceeds %d", ErrKdfFailure, cost, maxDecryptCost)
	}
	return nil
}
