package imaging

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"strings"

	"github.com/issue9/identicon"

	"github.com/AlexZinkM/eth-paper-wallet/internal/crypto"
)

// MinIdenticonSize is the smallest identicon the renderer accepts
const MinIdenticonSize = 16

var (
	identiconBack = color.NRGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}

	// one of these is picked per seed
	identiconFore = []color.Color{
		color.NRGBA{R: 0x62, G: 0x7e, B: 0xea, A: 0xff},
		color.NRGBA{R: 0x3c, G: 0x3c, B: 0x3d, A: 0xff},
		color.NRGBA{R: 0xe0, G: 0x6c, B: 0x4a, A: 0xff},
		color.NRGBA{R: 0x2f, G: 0x9e, B: 0x6e, A: 0xff},
		color.NRGBA{R: 0xc8, G: 0x3f, B: 0x9a, A: 0xff},
		color.NRGBA{R: 0xd9, G: 0xa4, B: 0x1e, A: 0xff},
	}
)

// Identicon draws the identicon for seed as PNG. The seed is lower-cased first,
// so checksummed and plain addresses give the same picture.
func Identicon(seed string, size int) ([]byte, error) {
	if size < MinIdenticonSize {
		return nil, fmt.Errorf("identicon size %d is smaller than %d", size, MinIdenticonSize)
	}

	ii, err := identicon.New(size, identiconBack, identiconFore...)
	if err != nil {
		return nil, fmt.Errorf("failed to create identicon: %w", err)
	}
	img := ii.Make(crypto.Keccak256([]byte(strings.ToLower(seed))))

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode identicon: %w", err)
	}
	return buf.Bytes(), nil
}
