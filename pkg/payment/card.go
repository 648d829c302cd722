package payment

import (
	"crypto/sha512"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"
)

// CardIntent is what the processor hands back for the client to finish checkout.
type CardIntent struct {
	Token       string
	RedirectURL string
}

// CardRequest keys a processor transaction to a payment row.
type CardRequest struct {
	PaymentId string
	Plan      string
	Amount    decimal.Decimal
	Email     string
	FullName  string
	Phone     string
}

type CardProcessor interface {
	CreateIntent(req CardRequest) (*CardIntent, error)
	VerifySignature(orderId, statusCode, grossAmount, signature string) bool
}

var ErrProcessorNotConfigured = errors.New("card processor is not configured")

type MidtransProcessor struct {
	serverKey string
	env       midtrans.EnvironmentType
	finishURL string
}

func NewMidtransProcessor(serverKey string, isProduction bool, finishURL string) *MidtransProcessor {
	env := midtrans.Sandbox
	if isProduction {
		env = midtrans.Production
	}
	return &MidtransProcessor{
		serverKey: serverKey,
		env:       env,
		finishURL: finishURL,
	}
}

func (p *MidtransProcessor) CreateIntent(req CardRequest) (*CardIntent, error) {
	if p.serverKey == "" {
		return nil, ErrProcessorNotConfigured
	}

	var sClient snap.Client
	sClient.New(p.serverKey, p.env)

	// Snap takes whole units
	gross := req.Amount.Ceil().IntPart()

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.PaymentId,
			GrossAmt: gross,
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: p.finishURL,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.FullName,
			Email: req.Email,
			Phone: req.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    req.Plan,
				Price: gross,
				Qty:   1,
				Name:  req.Plan + " membership",
			},
		},
		EnabledPayments: []snap.SnapPaymentType{snap.PaymentTypeCreditCard},
	}

	resp, midErr := sClient.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	return &CardIntent{Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

// VerifySignature checks SHA512(order_id + status_code + gross_amount + server_key).
func (p *MidtransProcessor) VerifySignature(orderId, statusCode, grossAmount, signature string) bool {
	if p.serverKey == "" {
		return false
	}
	expected := Signature(orderId, statusCode, grossAmount, p.serverKey)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}

func Signature(orderId, statusCode, grossAmount, serverKey string) string {
	return fmt.Sprintf("%x", sha512.Sum512([]byte(orderId+statusCode+grossAmount+serverKey)))
}
