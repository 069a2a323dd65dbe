package ethereum

import (
	"fmt"

	"github.com/AlexZinkM/eth-paper-wallet/internal/common"
	"github.com/AlexZinkM/eth-paper-wallet/internal/crypto"
	"github.com/AlexZinkM/eth-paper-wallet/internal/logging"

	"go.uber.org/zap"
)

// Generator runs the wallet pipeline: random key -> public key -> address -> keystore.
// Wallets are generated strictly one after another.
type Generator struct {
	random    *crypto.RandomSource
	encryptor *crypto.Encryptor
	log       *zap.Logger
}

// Option configures a Generator
type Option func(*Generator)

// WithRandomSource makes the generator draw keys, salts, IVs and ids from random.
func WithRandomSource(random *crypto.RandomSource) Option {
	return func(g *Generator) {
		g.random = random
		g.encryptor = crypto.NewEncryptor(random)
	}
}

// WithLogger sets the logger used for progress messages. Defaults to logging.L().
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		g.log = l
	}
}

// NewGenerator returns a Generator backed by crypto/rand unless configured otherwise.
func NewGenerator(opts ...Option) *Generator {
	random := crypto.NewRandomSource(nil)
	g := &Generator{
		random:    random,
		encryptor: crypto.NewEncryptor(random),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) logger() *zap.Logger {
	if g.log != nil {
		return g.log
	}
	return logging.L()
}

// GenerateWallet generates one wallet encrypted with password.
// password must be []byte for security (caller should zero it after use)
func (g *Generator) GenerateWallet(password []byte) (*Wallet, error) {
	return g.generate(0, password)
}

// BatchOption configures GenerateBatch
type BatchOption func(*batchOptions)

type batchOptions struct {
	onWallet func(index int, w *Wallet) error
}

// WithOnWallet calls fn after each wallet is generated and before the next one starts.
// An error from fn stops the batch.
func WithOnWallet(fn func(index int, w *Wallet) error) BatchOption {
	return func(o *batchOptions) {
		o.onWallet = fn
	}
}

// GenerateBatch generates count wallets in order, all encrypted with the same password.
// The first failure stops the batch and is returned as a *StageError; the wallets
// completed before it are returned alongside.
func (g *Generator) GenerateBatch(password []byte, count int, opts ...BatchOption) ([]*Wallet, error) {
	if count < 1 {
		return nil, &StageError{Stage: StageInput, Err: fmt.Errorf("%w, got %d", ErrInvalidCount, count)}
	}
	var o batchOptions
	for _, opt := range opts {
		opt(&o)
	}

	wallets := make([]*Wallet, 0, count)
	for i := 0; i < count; i++ {
		w, err := g.generate(i, password)
		if err != nil {
			return wallets, err
		}
		wallets = append(wallets, w)

		if o.onWallet != nil {
			if err := o.onWallet(i, w); err != nil {
				return wallets, &StageError{Stage: StageExport, Index: i, Err: err}
			}
		}
	}
	return wallets, nil
}

// ImportPrivateKey rebuilds the wallet (public key, address, keystore) for a
// user-supplied 64 hex character private key.
func (g *Generator) ImportPrivateKey(privateKeyHex string, password []byte) (*Wallet, error) {
	key, err := crypto.ParsePrivateKey(privateKeyHex)
	if err != nil {
		return nil, &StageError{Stage: StageInput, Err: err}
	}
	w, err := g.derive(0, key, password)
	clear(key[:])
	return w, err
}

func (g *Generator) generate(index int, password []byte) (*Wallet, error) {
	key, err := g.random.PrivateKey()
	if err != nil {
		return nil, &StageError{Stage: StageRandom, Index: index, Err: err}
	}
	w, err := g.derive(index, key, password)
	clear(key[:])
	return w, err
}

func (g *Generator) derive(index int, key [crypto.PrivateKeyLen]byte, password []byte) (*Wallet, error) {
	pub, err := crypto.DerivePublicKey(key)
	if err != nil {
		return nil, &StageError{Stage: StagePublicKey, Index: index, Err: err}
	}
	address := crypto.DeriveAddress(pub)

	record, err := g.encryptor.BuildKeystore(key, password)
	if err != nil {
		return nil, &StageError{Stage: StageKeystore, Index: index, Err: err}
	}

	g.logger().Debug("wallet generated",
		zap.Int("index", index+1),
		zap.String("address", common.ShortHex(address, 6)),
	)

	return &Wallet{
		PrivateKey: key,
		PublicKey:  pub,
		Address:    address,
		Keystore:   record,
	}, nil
}

var defaultGenerator = NewGenerator()

// GenerateWallet generates one wallet using crypto/rand.
func GenerateWallet(password []byte) (*Wallet, error) {
	return defaultGenerator.GenerateWallet(password)
}

// GenerateBatch generates count wallets using crypto/rand.
func GenerateBatch(password []byte, count int, opts ...BatchOption) ([]*Wallet, error) {
	return defaultGenerator.GenerateBatch(password, count, opts...)
}

// ImportPrivateKey rebuilds a wallet from a hex private key.
func ImportPrivateKey(privateKeyHex string, password []byte) (*Wallet, error) {
	return defaultGenerator.ImportPrivateKey(privateKeyHex, password)
}
