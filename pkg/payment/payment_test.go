package payment

import (
	"regexp"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPngQrGenerator_Generate(t *testing.T) {
	gen := NewPngQrGenerator("GYM-", "gympay://pay", 128)

	code, err := gen.Generate("Premium", decimal.RequireFromString("49.99"))
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^GYM-[0-9a-f]{16}$`), code.Reference)
	assert.Equal(t, "gympay://pay?ref="+code.Reference+"&amount=49.99&plan=Premium", code.Payload)
	assert.True(t, strings.HasPrefix(code.ImageDataURI, "data:image/png;base64,"))

	other, err := gen.Generate("Premium", decimal.RequireFromString("49.99"))
	require.NoError(t, err)
	assert.NotEqual(t, code.Reference, other.Reference)
}

func TestMidtransProcessor_VerifySignature(t *testing.T) {
	p := NewMidtransProcessor("server-key", false, "")
	sig := Signature("order-1", "200", "50.00", "server-key")

	assert.True(t, p.VerifySignature("order-1", "200", "50.00", sig))
	assert.False(t, p.VerifySignature("order-1", "200", "51.00", sig))
	assert.False(t, NewMidtransProcessor("", false, "").VerifySignature("order-1", "200", "50.00", sig))
}

func TestMidtransProcessor_CreateIntentWithoutKey(t *testing.T) {
	_, err := NewMidtransProcessor("", false, "").CreateIntent(CardRequest{PaymentId: "x", Plan: "Basic"})
	assert.ErrorIs(t, err, ErrProcessorNotConfigured)
}
