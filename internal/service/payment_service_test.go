package service

import (
	"errors"
	"testing"
	"time"

	"gym-management-be/internal/config"
	"gym-management-be/internal/constant"
	"gym-management-be/internal/dto"
	"gym-management-be/internal/entity"
	"gym-management-be/internal/pkg/mailer"
	"gym-management-be/internal/pkg/serverutils"
	"gym-management-be/internal/repository/specification"
	"gym-management-be/pkg/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCard struct {
	err error
}

func (s stubCard) CreateIntent(req payment.CardRequest) (*payment.CardIntent, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &payment.CardIntent{Token: "snap-" + req.PaymentId, RedirectURL: "https://pay.example/" + req.PaymentId}, nil
}

func (s stubCard) VerifySignature(orderId, statusCode, grossAmount, signature string) bool {
	return signature == payment.Signature(orderId, statusCode, grossAmount, "server-key")
}

func newPayments(f *fixture, card payment.CardProcessor) IPaymentService {
	return NewPaymentService(
		f.factory,
		card,
		payment.NewPngQrGenerator(constant.QrReferencePrefix, constant.QrPayloadScheme, 128),
		mailer.NewEmailService(config.SMTPConfig{}, "http://localhost", f.log),
		f.recorder,
		"USD",
		f.log,
	)
}

func memberClaims(id uuid.UUID) *serverutils.TokenClaims {
	return &serverutils.TokenClaims{UserId: id, Role: string(entity.AccountRoleMember)}
}

func TestPayment_QrFlowActivatesPlan(t *testing.T) {
	f := newFixture(t)
	member := f.account(t, "member@gym.test", entity.AccountRoleMember)
	premium := f.pkg(t, "Premium", 30)
	svc := newPayments(f, stubCard{})

	created, err := svc.CreatePayment(f.ctx, member.Id, &dto.CreatePaymentRequest{Plan: "Premium", Method: "qr"})
	require.NoError(t, err)
	assert.Equal(t, "pending", created.Status)
	assert.True(t, constant.PlanPrices["Premium"].Equal(created.Amount))
	assert.Contains(t, created.QrReference, constant.QrReferencePrefix)
	assert.Contains(t, created.QrImage, "data:image/png;base64,")

	paid, err := svc.VerifyQrPayment(f.ctx, member.Id, &dto.VerifyQrPaymentRequest{Reference: created.QrReference})
	require.NoError(t, err)
	assert.Equal(t, "completed", paid.Status)
	assert.NotNil(t, paid.CompletedAt)

	current, err := f.factory.NewUnitOfWork(f.ctx).MembershipRepository().FindCurrent(f.ctx, member.Id, time.Now())
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, premium.Id, current.PackageId)
	assert.Equal(t, entity.MembershipStatusActive, current.Status)

	// Verifying again is a no-op
	again, err := svc.VerifyQrPayment(f.ctx, member.Id, &dto.VerifyQrPaymentRequest{Reference: created.QrReference})
	require.NoError(t, err)
	assert.Equal(t, "completed", again.Status)

	n, err := f.factory.NewUnitOfWork(f.ctx).MembershipRepository().Count(f.ctx, specification.ByAccountID{AccountID: member.Id})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPayment_StatusIsMonotonic(t *testing.T) {
	f := newFixture(t)
	member := f.account(t, "member@gym.test", entity.AccountRoleMember)
	svc := newPayments(f, stubCard{})

	created, err := svc.CreatePayment(f.ctx, member.Id, &dto.CreatePaymentRequest{Plan: "Basic", Method: "card"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ClientToken)

	failed, err := svc.ConfirmPayment(f.ctx, memberClaims(member.Id), &dto.ConfirmPaymentRequest{PaymentId: created.PaymentId, Status: "failed"})
	require.NoError(t, err)
	assert.Equal(t, "failed", failed.Status)

	// Same terminal status is idempotent
	_, err = svc.ConfirmPayment(f.ctx, memberClaims(member.Id), &dto.ConfirmPaymentRequest{PaymentId: created.PaymentId, Status: "failed"})
	require.NoError(t, err)

	_, err = svc.ConfirmPayment(f.ctx, memberClaims(member.Id), &dto.ConfirmPaymentRequest{PaymentId: created.PaymentId, Status: "completed"})
	assertKind(t, err, serverutils.KindConflict)

	_, err = svc.ConfirmPayment(f.ctx, memberClaims(member.Id), &dto.ConfirmPaymentRequest{PaymentId: created.PaymentId, Status: "pending"})
	assertKind(t, err, serverutils.KindConflict)

	status, err := svc.GetPaymentStatus(f.ctx, created.PaymentId)
	require.NoError(t, err)
	assert.Equal(t, "failed", status.Status)
	assert.Nil(t, status.CompletedAt)
}

func TestPayment_ConfirmOtherAccountForbidden(t *testing.T) {
	f := newFixture(t)
	owner := f.account(t, "owner@gym.test", entity.AccountRoleMember)
	other := f.account(t, "other@gym.test", entity.AccountRoleMember)
	admin := f.account(t, "admin@gym.test", entity.AccountRoleAdmin)
	svc := newPayments(f, stubCard{})

	created, err := svc.CreatePayment(f.ctx, owner.Id, &dto.CreatePaymentRequest{Plan: "Basic", Method: "card"})
	require.NoError(t, err)

	_, err = svc.ConfirmPayment(f.ctx, memberClaims(other.Id), &dto.ConfirmPaymentRequest{PaymentId: created.PaymentId, Status: "completed"})
	assertKind(t, err, serverutils.KindForbidden)

	done, err := svc.ConfirmPayment(f.ctx,
		&serverutils.TokenClaims{UserId: admin.Id, Role: string(entity.AccountRoleAdmin)},
		&dto.ConfirmPaymentRequest{PaymentId: created.PaymentId, Status: "completed"},
	)
	require.NoError(t, err)
	assert.Equal(t, "completed", done.Status)
}

func TestPayment_CreateRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	member := f.account(t, "member@gym.test", entity.AccountRoleMember)
	svc := newPayments(f, stubCard{})

	_, err := svc.CreatePayment(f.ctx, member.Id, &dto.CreatePaymentRequest{Plan: "Platinum", Method: "qr"})
	assertKind(t, err, serverutils.KindValidation)

	_, err = svc.CreatePayment(f.ctx, member.Id, &dto.CreatePaymentRequest{Plan: "Basic", Method: "cash"})
	assertKind(t, err, serverutils.KindValidation)

	_, err = svc.CreatePayment(f.ctx, uuid.New(), &dto.CreatePaymentRequest{Plan: "Basic", Method: "qr"})
	assertKind(t, err, serverutils.KindNotFound)

	_, err = svc.VerifyQrPayment(f.ctx, member.Id, &dto.VerifyQrPaymentRequest{Reference: "GYM-unknown"})
	assertKind(t, err, serverutils.KindNotFound)
}

func TestPayment_CardProcessorFailureClosesPayment(t *testing.T) {
	f := newFixture(t)
	member := f.account(t, "member@gym.test", entity.AccountRoleMember)

	_, err := newPayments(f, stubCard{err: payment.ErrProcessorNotConfigured}).
		CreatePayment(f.ctx, member.Id, &dto.CreatePaymentRequest{Plan: "Basic", Method: "card"})
	assertKind(t, err, serverutils.KindInvalidState)

	_, err = newPayments(f, stubCard{err: errors.New("gateway down")}).
		CreatePayment(f.ctx, member.Id, &dto.CreatePaymentRequest{Plan: "Basic", Method: "card"})
	assertKind(t, err, serverutils.KindInternal)

	history, err := newPayments(f, stubCard{}).History(f.ctx, member.Id)
	require.NoError(t, err)
	require.Len(t, history, 2)
	for _, p := range history {
		assert.Equal(t, "failed", p.Status)
	}
}

func TestPayment_WebhookSettlement(t *testing.T) {
	f := newFixture(t)
	member := f.account(t, "member@gym.test", entity.AccountRoleMember)
	f.pkg(t, "Elite", 30)
	svc := newPayments(f, stubCard{})

	created, err := svc.CreatePayment(f.ctx, member.Id, &dto.CreatePaymentRequest{Plan: "Elite", Method: "card"})
	require.NoError(t, err)

	orderId := created.PaymentId.String()
	notification := &dto.MidtransWebhookRequest{
		TransactionStatus: "settlement",
		TransactionId:     "trx-123",
		OrderId:           orderId,
		StatusCode:        "200",
		GrossAmount:       "80.00",
	}

	notification.SignatureKey = "forged"
	assertKind(t, svc.HandleNotification(f.ctx, notification), serverutils.KindUnauthorized)

	notification.SignatureKey = payment.Signature(orderId, "200", "80.00", "server-key")
	require.NoError(t, svc.HandleNotification(f.ctx, notification))
	// Redelivery is ignored
	require.NoError(t, svc.HandleNotification(f.ctx, notification))

	status, err := svc.GetPaymentStatus(f.ctx, created.PaymentId)
	require.NoError(t, err)
	assert.Equal(t, "completed", status.Status)
	require.NotNil(t, status.ProcessorRef)
	assert.Equal(t, "trx-123", *status.ProcessorRef)

	// A late failure notification cannot reopen it
	notification.TransactionStatus = "expire"
	require.NoError(t, svc.HandleNotification(f.ctx, notification))
	status, err = svc.GetPaymentStatus(f.ctx, created.PaymentId)
	require.NoError(t, err)
	assert.Equal(t, "completed", status.Status)
}

func TestPayment_CompletionReplacesActiveMembership(t *testing.T) {
	f := newFixture(t)
	member := f.account(t, "member@gym.test", entity.AccountRoleMember)
	basic := f.pkg(t, "Basic", 30)
	old := f.membership(t, member.Id, basic, entity.MembershipStatusActive, time.Now().AddDate(0, 0, -5))
	f.pkg(t, "Premium", 30)
	svc := newPayments(f, stubCard{})

	created, err := svc.CreatePayment(f.ctx, member.Id, &dto.CreatePaymentRequest{Plan: "Premium", Method: "qr"})
	require.NoError(t, err)
	_, err = svc.VerifyQrPayment(f.ctx, uuid.Nil, &dto.VerifyQrPaymentRequest{Reference: created.QrReference})
	require.NoError(t, err)

	uow := f.factory.NewUnitOfWork(f.ctx)
	previous, err := uow.MembershipRepository().FindOne(f.ctx, specification.ByID{ID: old.Id})
	require.NoError(t, err)
	assert.Equal(t, entity.MembershipStatusExpired, previous.Status)

	active, err := uow.MembershipRepository().Count(f.ctx,
		specification.ByAccountID{AccountID: member.Id},
		specification.ByStatus{Status: string(entity.MembershipStatusActive)},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(1), active)

	list, err := svc.ListPayments(f.ctx, dto.PaymentListQuery{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Pagination.Total)

	_, err = svc.ListPayments(f.ctx, dto.PaymentListQuery{Status: "refunded"})
	assertKind(t, err, serverutils.KindValidation)
}
