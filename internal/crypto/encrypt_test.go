package crypto

import (
	"encoding/hex"
	"encoding/json"
	"regexp"
	"testing"

	"github.com/AlexZinkM/eth-paper-wallet/internal/model"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var lowerHex = regexp.MustCompile(`^[0-9a-f]+$`)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestBuildKeystoreJSONShape(t *testing.T) {
	key := scalar(t, testPrivHex)
	record, err := BuildKeystore(key, []byte("foo"))
	require.NoError(t, err)

	data, err := json.Marshal(record)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	require.EqualValues(t, 3, raw["version"])
	_, err = uuid.Parse(raw["id"].(string))
	require.NoError(t, err)
	require.Equal(t, testAddrHex[2:], raw["address"])

	c := raw["crypto"].(map[string]any)
	require.Equal(t, "aes-128-ctr", c["cipher"])
	require.Equal(t, "scrypt", c["kdf"])

	for field, length := range map[string]int{"ciphertext": 64, "mac": 64} {
		v := c[field].(string)
		require.Len(t, v, length, field)
		require.Regexp(t, lowerHex, v, field)
	}
	iv := c["cipherparams"].(map[string]any)["iv"].(string)
	require.Len(t, iv, 32)
	require.Regexp(t, lowerHex, iv)

	kdf := c["kdfparams"].(map[string]any)
	require.EqualValues(t, 32, kdf["dklen"])
	require.EqualValues(t, 8192, kdf["n"])
	require.EqualValues(t, 8, kdf["r"])
	require.EqualValues(t, 1, kdf["p"])
	require.Len(t, kdf["salt"].(string), 64)
	require.Regexp(t, lowerHex, kdf["salt"].(string))
	require.Len(t, kdf, 5)
}

func TestBuildKeystoreDoesNotLeakKey(t *testing.T) {
	key := scalar(t, testPrivHex)
	record, err := BuildKeystore(key, []byte("foo"))
	require.NoError(t, err)

	data, err := json.Marshal(record)
	require.NoError(t, err)
	require.NotContains(t, string(data), testPrivHex)
	require.NotEqual(t, testPrivHex, record.Crypto.CipherText)
}

func TestKeystoreRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		key := validScalar().Draw(t, "key")
		password := rapid.SliceOfN(rapid.Byte(), 0, 32).Draw(t, "password")

		record, err := BuildKeystore(key, password)
		require.NoError(t, err)

		got, err := DecryptKeystore(record, password)
		require.NoError(t, err)
		require.Equal(t, key, got)
	})
}

func TestKeystoreTamperDetection(t *testing.T) {
	key := scalar(t, testPrivHex)
	password := []byte("foo")
	record, err := BuildKeystore(key, password)
	require.NoError(t, err)

	cipherText := mustHex(t, record.Crypto.CipherText)
	mac := mustHex(t, record.Crypto.MAC)
	derived, err := deriveKey(password, mustHex(t, record.Crypto.KDFParams.Salt), StandardKDFParams)
	require.NoError(t, err)
	require.Equal(t, mac, Keccak256(derived[16:32], cipherText))

	// every single-bit flip must change the mac
	for bit := 0; bit < 8*len(cipherText); bit++ {
		tampered := append([]byte(nil), cipherText...)
		tampered[bit/8] ^= 1 << (bit % 8)
		require.NotEqual(t, mac, Keccak256(derived[16:32], tampered), "bit %d", bit)
	}

	// and the full decryption path reports it
	tampered := append([]byte(nil), cipherText...)
	tampered[0] ^= 0x01
	record.Crypto.CipherText = hex.EncodeToString(tampered)
	_, err = DecryptKeystore(record, password)
	require.ErrorIs(t, err, ErrMacMismatch)
}

func TestEncryptKeyFixedInputsRegression(t *testing.T) {
	key := scalar(t, testPrivHex)
	password := []byte("regression")
	salt := mustHex(t, "ab0c7876052600dd703518d6fc3fe8984592145b591fc8fb5c6d43190334ba19")
	iv := mustHex(t, "83dbcc02d8ccb40e466191a123791e0e")

	record, err := encryptKey(key, password, salt, iv, StandardKDFParams)
	require.NoError(t, err)
	require.Equal(t, "95f2b63412ca947a95cab27631d974ce2583fa46490b375961b61d5bc34de31b", record.Crypto.CipherText)
	require.Equal(t, "cae4234a86c26bc6111698180fc340c10df2ef93d52f46f26c7067ad076cdd14", record.Crypto.MAC)
	require.Equal(t, model.ScryptParams{DKLen: 32, Salt: hex.EncodeToString(salt), N: 8192, R: 8, P: 1}, record.Crypto.KDFParams)

	// the same bytes must open with go-ethereum
	record.ID = "3198bc9c-6672-5ab3-d995-4942343ae5b6"
	record.Address = testAddrHex[2:]
	data, err := json.Marshal(record)
	require.NoError(t, err)
	gethKey, err := keystore.DecryptKey(data, string(password))
	require.NoError(t, err)
	require.Equal(t, key[:], gethcrypto.FromECDSA(gethKey.PrivateKey))

	otherIV := append([]byte(nil), iv...)
	otherIV[15] ^= 0xff
	other, err := encryptKey(key, password, salt, otherIV, StandardKDFParams)
	require.NoError(t, err)
	require.NotEqual(t, record.Crypto.CipherText, other.Crypto.CipherText)
	require.NotEqual(t, record.Crypto.MAC, other.Crypto.MAC)
}

// Published Web3 Secret Storage test vector (scrypt variant).
func TestEncryptKeySecretStorageVector(t *testing.T) {
	if testing.Short() {
		t.Skip("scrypt N=2^18 is slow")
	}
	key := scalar(t, "7a28b5ba57c53603b0b07b56bba752f7784bf506fa95edc395f5cf6c7514fe9d")
	salt := mustHex(t, "ab0c7876052600dd703518d6fc3fe8984592145b591fc8fb5c6d43190334ba19")
	iv := mustHex(t, "83dbcc02d8ccb40e466191a123791e0e")
	params := KDFParams{N: 262144, R: 1, P: 8, DKLen: 32}

	record, err := encryptKey(key, []byte("testpassword"), salt, iv, params)
	require.NoError(t, err)
	require.Equal(t, "d172bf743a674da9cdad04534d56926ef8358534d458fffccd4e6ad2fbde479c", record.Crypto.CipherText)
	require.Equal(t, "2103ac29920d71da29f15d75b4a16dbe95cfd7ff8faea1056c33131d846e3097", record.Crypto.MAC)

	got, err := DecryptKeystore(record, []byte("testpassword"))
	require.NoError(t, err)
	require.Equal(t, key, got)
}

func TestKeystoreReadableByGoEthereum(t *testing.T) {
	key := scalar(t, testPrivHex)
	record, err := BuildKeystore(key, []byte("foo"))
	require.NoError(t, err)

	data, err := json.Marshal(record)
	require.NoError(t, err)

	gethKey, err := keystore.DecryptKey(data, "foo")
	require.NoError(t, err)
	require.Equal(t, key[:], gethcrypto.FromECDSA(gethKey.PrivateKey))
	require.Equal(t, record.Address, hex.EncodeToString(gethKey.Address[:]))
	require.Equal(t, record.ID, gethKey.Id.String())

	_, err = keystore.DecryptKey(data, "bar")
	require.Error(t, err)
}

func TestBuildKeystoreFreshRandomness(t *testing.T) {
	key := scalar(t, testPrivHex)
	a, err := BuildKeystore(key, []byte("foo"))
	require.NoError(t, err)
	b, err := BuildKeystore(key, []byte("foo"))
	require.NoError(t, err)

	require.NotEqual(t, a.ID, b.ID)
	require.NotEqual(t, a.Crypto.KDFParams.Salt, b.Crypto.KDFParams.Salt)
	require.NotEqual(t, a.Crypto.CipherParams.IV, b.Crypto.CipherParams.IV)
	require.NotEqual(t, a.Crypto.CipherText, b.Crypto.CipherText)
}

func TestBuildKeystoreErrors(t *testing.T) {
	var zero [PrivateKeyLen]byte
	_, err := BuildKeystore(zero, []byte("foo"))
	require.ErrorIs(t, err, ErrInvalidScalar)

	enc := NewEncryptor(NewRandomSource(failingReader{}))
	_, err = enc.BuildKeystore(scalar(t, testPrivHex), []byte("foo"))
	require.ErrorIs(t, err, ErrRandomSource)
}

func TestKDFParamsValidate(t *testing.T) {
	require.NoError(t, StandardKDFParams.Validate())

	bad := []KDFParams{
		{N: 0, R: 8, P: 1, DKLen: 32},
		{N: 1, R: 8, P: 1, DKLen: 32},
		{N: 3000, R: 8, P: 1, DKLen: 32},
		{N: 8192, R: 0, P: 1, DKLen: 32},
		{N: 8192, R: 8, P: -1, DKLen: 32},
		{N: 8192, R: 1 << 15, P: 1 << 15, DKLen: 32},
		{N: 8192, R: 8, P: 1, DKLen: 16},
	}
	for _, p := range bad {
		require.ErrorIs(t, p.Validate(), ErrKdfFailure, "%+v", p)
		_, err := deriveKey([]byte("pw"), []byte("salt"), p)
		require.ErrorIs(t, err, ErrKdfFailure, "%+v", p)
	}
}
