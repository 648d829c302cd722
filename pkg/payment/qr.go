package payment

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
	"github.com/skip2/go-qrcode"
)

// QrCode is a generated reference plus its scannable image.
type QrCode struct {
	Reference string
	Payload   string
	// data:image/png;base64,...
	ImageDataURI string
}

type QrGenerator interface {
	Generate(plan string, amount decimal.Decimal) (*QrCode, error)
}

type PngQrGenerator struct {
	prefix string
	scheme string
	size   int
}

func NewPngQrGenerator(prefix, scheme string, size int) *PngQrGenerator {
	return &PngQrGenerator{prefix: prefix, scheme: scheme, size: size}
}

func (g *PngQrGenerator) Generate(plan string, amount decimal.Decimal) (*QrCode, error) {
	ref, err := g.newReference()
	if err != nil {
		return nil, err
	}

	payload := fmt.Sprintf("%s?ref=%s&amount=%s&plan=%s",
		g.scheme, url.QueryEscape(ref), amount.StringFixed(2), url.QueryEscape(plan))

	png, err := qrcode.Encode(payload, qrcode.Medium, g.size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}

	return &QrCode{
		Reference:    ref,
		Payload:      payload,
		ImageDataURI: "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
	}, nil
}

// newReference returns the prefix followed by 16 random hex characters.
func (g *PngQrGenerator) newReference() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate qr reference: %w", err)
	}
	return g.prefix + hex.EncodeToString(buf), nil
}
