package imaging

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

const (
	defaultQRSize        = 256
	defaultIdenticonSize = 420
)

// Encoder renders the PNG images exported next to every wallet.
type Encoder struct {
	qrSize        int
	identiconSize int
	level         qrcode.RecoveryLevel
}

// NewEncoder returns an Encoder producing qrSize px QR codes and identiconSize px identicons.
// Non-positive sizes fall back to the defaults.
func NewEncoder(qrSize, identiconSize int) *Encoder {
	if qrSize <= 0 {
		qrSize = defaultQRSize
	}
	if identiconSize <= 0 {
		identiconSize = defaultIdenticonSize
	}
	return &Encoder{
		qrSize:        qrSize,
		identiconSize: identiconSize,
		level:         qrcode.Medium,
	}
}

// EncodeScannable renders payload (an address or a hex private key) as a QR code PNG
func (e *Encoder) EncodeScannable(payload string) ([]byte, error) {
	if payload == "" {
		return nil, fmt.Errorf("failed to create QR code: empty payload")
	}
	qr, err := qrcode.New(payload, e.level)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(e.qrSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}
	return png, nil
}

// EncodeFingerprint renders the identicon for seed as PNG
func (e *Encoder) EncodeFingerprint(seed string) ([]byte, error) {
	return Identicon(seed, e.identiconSize)
}
