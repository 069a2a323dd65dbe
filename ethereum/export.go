package ethereum

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AlexZinkM/eth-paper-wallet/internal/common"
	"github.com/AlexZinkM/eth-paper-wallet/internal/logging"

	"go.uber.org/zap"
)

const (
	keystoreFileName  = "keystore.json"
	privateKeyQRName  = "private-key.png"
	addressQRName     = "eth-address.png"
	identiconFileName = "identicon.png"
	paperWalletName   = "paper-wallet.txt"
	walletDirPerm     = 0700
	walletFilePerm    = 0600
)

// ImageEncoder renders the images stored next to a wallet.
type ImageEncoder interface {
	// EncodeScannable renders payload as a scannable image (QR code)
	EncodeScannable(payload string) ([]byte, error)
	// EncodeFingerprint renders a deterministic visual hash of seed
	EncodeFingerprint(seed string) ([]byte, error)
}

// FileExistsError is an error when file already exists and is not empty
type FileExistsError struct {
	Path string
}

func (e *FileExistsError) Error() string {
	return fmt.Sprintf("file is not empty: %s", e.Path)
}

func (e *FileExistsError) Unwrap() error {
	return ErrIoFailure
}

// IsFileExistsError checks if error is FileExistsError
func IsFileExistsError(err error) bool {
	var fe *FileExistsError
	return errors.As(err, &fe)
}

// Artifacts lists the files written for one wallet
type Artifacts struct {
	Dir          string
	Keystore     string
	PrivateKeyQR string
	AddressQR    string
	Identicon    string
	PaperWallet  string
}

// Exporter writes wallet artifacts below a base directory.
type Exporter struct {
	dir    string
	images ImageEncoder
}

// NewExporter returns an Exporter writing into dir with images rendered by images.
func NewExporter(dir string, images ImageEncoder) *Exporter {
	return &Exporter{dir: dir, images: images}
}

// Dir returns the base output directory
func (e *Exporter) Dir() string {
	return e.dir
}

// WalletDir returns the directory used for wallet number index (zero based).
func (e *Exporter) WalletDir(w *Wallet, index int) string {
	return filepath.Join(e.dir, fmt.Sprintf("wallet-%d-%s", index+1, common.Strip0x(w.Address)))
}

// Export writes keystore, QR codes, identicon and paper backup for w.
// Files that were written before a failure are left in place.
func (e *Exporter) Export(w *Wallet, index int) (*Artifacts, error) {
	dir := e.WalletDir(w, index)
	if err := os.MkdirAll(dir, walletDirPerm); err != nil {
		return nil, fmt.Errorf("%w: failed to create directory: %v", ErrIoFailure, err)
	}

	a := &Artifacts{
		Dir:          dir,
		Keystore:     filepath.Join(dir, keystoreFileName),
		PrivateKeyQR: filepath.Join(dir, privateKeyQRName),
		AddressQR:    filepath.Join(dir, addressQRName),
		Identicon:    filepath.Join(dir, identiconFileName),
		PaperWallet:  filepath.Join(dir, paperWalletName),
	}

	keystoreJSON, err := json.MarshalIndent(w.Keystore, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal keystore: %w", err)
	}
	if err := writeFile(a.Keystore, append(keystoreJSON, '\n')); err != nil {
		return nil, err
	}

	privateKeyHex := w.PrivateKeyHex()
	privateQR, err := e.images.EncodeScannable(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("failed to generate private key QR code: %w", err)
	}
	if err := writeFile(a.PrivateKeyQR, privateQR); err != nil {
		return nil, err
	}

	addressQR, err := e.images.EncodeScannable(w.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to generate address QR code: %w", err)
	}
	if err := writeFile(a.AddressQR, addressQR); err != nil {
		return nil, err
	}

	icon, err := e.images.EncodeFingerprint(w.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to generate identicon: %w", err)
	}
	if err := writeFile(a.Identicon, icon); err != nil {
		return nil, err
	}

	paper := []byte(PaperWallet(w))
	defer clear(paper)
	if err := writeFile(a.PaperWallet, paper); err != nil {
		return nil, err
	}

	logging.L().Info("wallet exported",
		zap.Int("index", index+1),
		zap.String("address", w.Address),
		zap.String("dir", dir),
	)
	return a, nil
}

// PaperWallet returns the two-line plain text backup of w
func PaperWallet(w *Wallet) string {
	return fmt.Sprintf("Address: %s\nPrivate Key: %s\n", w.Address, w.PrivateKeyHex())
}

// writeFile writes data with owner-only permissions, refusing to replace a non-empty file.
func writeFile(path string, data []byte) error {
	if fileInfo, err := os.Stat(path); err == nil && fileInfo.Size() > 0 {
		return &FileExistsError{Path: path}
	}
	if err := os.WriteFile(path, data, walletFilePerm); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrIoFailure, filepath.Base(path), err)
	}
	return nil
}
