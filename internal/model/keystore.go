package model

// KeystoreRecord is the version 3 encrypted keystore file understood by Ethereum wallets.
// Field order follows the usual layout of these files.
type KeystoreRecord struct {
	Version int        `json:"version"`
	ID      string     `json:"id"`
	Address string     `json:"address"` // 40 lowercase hex chars, no 0x
	Crypto  CryptoJSON `json:"crypto"`
}

// CryptoJSON holds the cipher and kdf description plus the encrypted key
type CryptoJSON struct {
	CipherText   string       `json:"ciphertext"`
	CipherParams CipherParams `json:"cipherparams"`
	Cipher       string       `json:"cipher"`
	KDF          string       `json:"kdf"`
	KDFParams    ScryptParams `json:"kdfparams"`
	MAC          string       `json:"mac"`
}

// CipherParams holds the AES-CTR initialization vector (hex)
type CipherParams struct {
	IV string `json:"iv"`
}

// ScryptParams holds the scrypt parameters; Salt is hex encoded
type ScryptParams struct {
	DKLen int    `json:"dklen"`
	Salt  string `json:"salt"`
	N     int    `json:"n"`
	R     int    `json:"r"`
	P     int    `json:"p"`
}
