// FILE: internal/dto/payment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreatePaymentRequest struct {
	Plan   string `json:"plan" validate:"required"`
	Method string `json:"method" validate:"required,oneof=card qr"`
}

type CreatePaymentResponse struct {
	PaymentId uuid.UUID       `json:"payment_id"`
	Status    string          `json:"status"`
	Plan      string          `json:"plan"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Method    string          `json:"method"`

	// card
	ClientToken string `json:"client_token,omitempty"`
	RedirectURL string `json:"redirect_url,omitempty"`

	// qr
	QrReference string `json:"qr_reference,omitempty"`
	QrImage     string `json:"qr_image,omitempty"`
}

type ConfirmPaymentRequest struct {
	PaymentId uuid.UUID `json:"payment_id" validate:"required"`
	Status    string    `json:"status" validate:"required,oneof=pending completed failed"`
}

type VerifyQrPaymentRequest struct {
	Reference string `json:"reference" validate:"required"`
}

type PaymentResponse struct {
	Id           uuid.UUID       `json:"id"`
	AccountId    uuid.UUID       `json:"account_id"`
	Plan         string          `json:"plan"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Method       string          `json:"method"`
	Status       string          `json:"status"`
	ProcessorRef *string         `json:"processor_ref,omitempty"`
	QrReference  *string         `json:"qr_reference,omitempty"`
	CompletedAt  *time.Time      `json:"completed_at"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type PaymentListQuery struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Status string `query:"status"`
}

type MidtransWebhookRequest struct {
	TransactionStatus string `json:"transaction_status"`
	TransactionId     string `json:"transaction_id"`
	OrderId           string `json:"order_id"`
	FraudStatus       string `json:"fraud_status"`
	SignatureKey      string `json:"signature_key"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
}
