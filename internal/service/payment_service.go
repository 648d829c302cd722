// FILE: internal/service/payment_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gym-management-be/internal/constant"
	"gym-management-be/internal/dto"
	"gym-management-be/internal/entity"
	"gym-management-be/internal/pkg/logger"
	"gym-management-be/internal/pkg/mailer"
	"gym-management-be/internal/pkg/serverutils"
	"gym-management-be/internal/repository/contract"
	"gym-management-be/internal/repository/specification"
	"gym-management-be/internal/repository/unitofwork"
	"gym-management-be/pkg/audit"
	"gym-management-be/pkg/payment"

	"github.com/google/uuid"
)

type IPaymentService interface {
	CreatePayment(ctx context.Context, accountId uuid.UUID, req *dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error)
	ConfirmPayment(ctx context.Context, actor *serverutils.TokenClaims, req *dto.ConfirmPaymentRequest) (*dto.PaymentResponse, error)
	VerifyQrPayment(ctx context.Context, actorId uuid.UUID, req *dto.VerifyQrPaymentRequest) (*dto.PaymentResponse, error)
	GetPaymentStatus(ctx context.Context, paymentId uuid.UUID) (*dto.PaymentResponse, error)
	HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error
	History(ctx context.Context, accountId uuid.UUID) ([]dto.PaymentResponse, error)
	ListPayments(ctx context.Context, query dto.PaymentListQuery) (*serverutils.PagedResult[dto.PaymentResponse], error)
}

type paymentService struct {
	uowFactory unitofwork.RepositoryFactory
	card       payment.CardProcessor
	qr         payment.QrGenerator
	mailer     mailer.IEmailService
	recorder   audit.Recorder
	logger     logger.ILogger
	currency   string
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	card payment.CardProcessor,
	qr payment.QrGenerator,
	emailService mailer.IEmailService,
	recorder audit.Recorder,
	currency string,
	log logger.ILogger,
) IPaymentService {
	return &paymentService{
		uowFactory: uowFactory,
		card:       card,
		qr:         qr,
		mailer:     emailService,
		recorder:   recorder,
		logger:     log,
		currency:   currency,
	}
}

func (s *paymentService) CreatePayment(ctx context.Context, accountId uuid.UUID, req *dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error) {
	method := entity.PaymentMethod(req.Method)
	if method != entity.PaymentMethodCard && method != entity.PaymentMethodQR {
		return nil, serverutils.ValidationError("method must be card or qr")
	}
	amount, ok := constant.PlanPrices[req.Plan]
	if !ok {
		return nil, serverutils.InvalidInput("unknown plan %q", req.Plan)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	account, err := uow.AccountRepository().FindOne(ctx, specification.ByID{ID: accountId})
	if err != nil {
		return nil, storeError(s.logger, "PAYMENT", "find account", err)
	}
	if account == nil {
		return nil, serverutils.NotFound("account %s not found", accountId)
	}

	p := &entity.Payment{
		AccountId: account.Id,
		Plan:      req.Plan,
		Amount:    amount,
		Currency:  s.currency,
		Method:    method,
		Status:    entity.PaymentStatusPending,
	}

	var qrCode *payment.QrCode
	if method == entity.PaymentMethodQR {
		qrCode, err = s.qr.Generate(req.Plan, amount)
		if err != nil {
			return nil, serverutils.Internal("generate qr code failed", err)
		}
		p.QrReference = &qrCode.Reference
	}

	if err := uow.PaymentRepository().Create(ctx, p); err != nil {
		return nil, storeError(s.logger, "PAYMENT", "create payment", err)
	}

	resp := &dto.CreatePaymentResponse{
		PaymentId: p.Id,
		Status:    string(p.Status),
		Plan:      p.Plan,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Method:    string(p.Method),
	}

	if method == entity.PaymentMethodCard {
		intent, err := s.card.CreateIntent(payment.CardRequest{
			PaymentId: p.Id.String(),
			Plan:      p.Plan,
			Amount:    p.Amount,
			Email:     account.Email,
			FullName:  account.FullName,
			Phone:     account.Phone,
		})
		if err != nil {
			s.failAfterProcessorError(ctx, p, err)
			if errors.Is(err, payment.ErrProcessorNotConfigured) {
				return nil, serverutils.InvalidState("card payments are not available")
			}
			return nil, serverutils.Internal("card processor rejected the payment", err)
		}
		resp.ClientToken = intent.Token
		resp.RedirectURL = intent.RedirectURL
	} else {
		resp.QrReference = qrCode.Reference
		resp.QrImage = qrCode.ImageDataURI
	}

	s.recorder.RecordEvent(ctx, audit.Entry{
		Type:             entity.LogTypePayment,
		Action:           constant.ActionInitiate,
		Description:      fmt.Sprintf("%s payment for %s started", p.Method, p.Plan),
		SubjectAccountId: audit.AccountRef(account.Id),
		ActorAccountId:   audit.AccountRef(account.Id),
		Metadata: map[string]interface{}{
			"payment_id": p.Id.String(),
			"amount":     p.Amount.StringFixed(2),
			"method":     p.Method,
		},
	})

	return resp, nil
}

// failAfterProcessorError closes a card payment the processor never accepted.
func (s *paymentService) failAfterProcessorError(ctx context.Context, p *entity.Payment, cause error) {
	s.logger.Error("PAYMENT", "Card intent failed", map[string]interface{}{
		"payment_id": p.Id.String(),
		"error":      cause.Error(),
	})
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := uow.PaymentRepository().TransitionFromPending(ctx, p.Id, contract.PaymentTransition{Status: entity.PaymentStatusFailed}); err != nil {
		s.logger.Error("PAYMENT", "Failed to close payment", map[string]interface{}{"payment_id": p.Id.String(), "error": err.Error()})
	}
}

func (s *paymentService) findPayment(ctx context.Context, uow unitofwork.UnitOfWork, specs ...specification.Specification) (*entity.Payment, error) {
	p, err := uow.PaymentRepository().FindOne(ctx, specs...)
	if err != nil {
		return nil, storeError(s.logger, "PAYMENT", "find payment", err)
	}
	if p == nil {
		return nil, serverutils.NotFound("payment not found")
	}
	return p, nil
}

func (s *paymentService) ConfirmPayment(ctx context.Context, actor *serverutils.TokenClaims, req *dto.ConfirmPaymentRequest) (*dto.PaymentResponse, error) {
	target := entity.PaymentStatus(req.Status)
	if !target.IsValid() {
		return nil, serverutils.ValidationError("status must be pending, completed or failed")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	p, err := s.findPayment(ctx, uow, specification.ByID{ID: req.PaymentId})
	if err != nil {
		return nil, err
	}
	if p.AccountId != actor.UserId && actor.Role != string(entity.AccountRoleAdmin) {
		return nil, serverutils.Forbidden("payment belongs to another account")
	}

	if p.Status == target {
		resp := toPaymentResponse(p)
		return &resp, nil
	}
	if p.Status.IsTerminal() {
		return nil, serverutils.Conflict("payment is already %s", p.Status)
	}

	updated, err := s.transition(ctx, p, target, nil, actor.UserId)
	if err != nil {
		return nil, err
	}
	resp := toPaymentResponse(updated)
	return &resp, nil
}

func (s *paymentService) VerifyQrPayment(ctx context.Context, actorId uuid.UUID, req *dto.VerifyQrPaymentRequest) (*dto.PaymentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	p, err := s.findPayment(ctx, uow, specification.ByQrReference{Reference: req.Reference})
	if err != nil {
		return nil, err
	}

	switch p.Status {
	case entity.PaymentStatusCompleted:
		resp := toPaymentResponse(p)
		return &resp, nil
	case entity.PaymentStatusFailed:
		return nil, serverutils.Conflict("payment has failed")
	}

	updated, err := s.transition(ctx, p, entity.PaymentStatusCompleted, nil, actorId)
	if err != nil {
		return nil, err
	}
	resp := toPaymentResponse(updated)
	return &resp, nil
}

func (s *paymentService) GetPaymentStatus(ctx context.Context, paymentId uuid.UUID) (*dto.PaymentResponse, error) {
	p, err := s.findPayment(ctx, s.uowFactory.NewUnitOfWork(ctx), specification.ByID{ID: paymentId})
	if err != nil {
		return nil, err
	}
	resp := toPaymentResponse(p)
	return &resp, nil
}

func (s *paymentService) HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	if !s.card.VerifySignature(req.OrderId, req.StatusCode, req.GrossAmount, req.SignatureKey) {
		s.logger.Warn("PAYMENT", "Webhook signature mismatch", map[string]interface{}{"order_id": req.OrderId})
		return serverutils.Unauthorized("invalid signature")
	}

	paymentId, err := parseUUID(req.OrderId, "order_id")
	if err != nil {
		return err
	}

	var target entity.PaymentStatus
	switch req.TransactionStatus {
	case "capture":
		if req.FraudStatus == "challenge" {
			return nil
		}
		target = entity.PaymentStatusCompleted
	case "settlement":
		target = entity.PaymentStatusCompleted
	case "deny", "cancel", "expire", "failure":
		target = entity.PaymentStatusFailed
	default:
		s.logger.Info("PAYMENT", "Webhook status ignored", map[string]interface{}{
			"order_id": req.OrderId,
			"status":   req.TransactionStatus,
		})
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	p, err := s.findPayment(ctx, uow, specification.ByID{ID: paymentId})
	if err != nil {
		return err
	}
	if p.Status == target {
		return nil
	}
	if p.Status.IsTerminal() {
		s.logger.Warn("PAYMENT", "Webhook for closed payment", map[string]interface{}{
			"payment_id": p.Id.String(),
			"current":    p.Status,
			"requested":  target,
		})
		return nil
	}

	var ref *string
	if req.TransactionId != "" {
		ref = &req.TransactionId
	}
	_, err = s.transition(ctx, p, target, ref, uuid.Nil)
	if serverutils.IsKind(err, serverutils.KindConflict) {
		return nil
	}
	return err
}

// transition moves a pending payment to target. On completion the matching
// package membership is activated in the same transaction.
func (s *paymentService) transition(ctx context.Context, p *entity.Payment, target entity.PaymentStatus, processorRef *string, actorId uuid.UUID) (*entity.Payment, error) {
	if target == entity.PaymentStatusPending {
		return p, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, serverutils.Internal("begin transaction failed", err)
	}
	defer uow.Rollback()

	affected, err := uow.PaymentRepository().TransitionFromPending(ctx, p.Id, contract.PaymentTransition{
		Status:       target,
		ProcessorRef: processorRef,
	})
	if err != nil {
		return nil, storeError(s.logger, "PAYMENT", "update payment", err)
	}

	var membership *entity.Membership
	if affected > 0 && target == entity.PaymentStatusCompleted {
		membership, err = s.activatePlan(ctx, uow, p)
		if err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, serverutils.Internal("commit failed", err)
	}

	current, err := s.findPayment(ctx, s.uowFactory.NewUnitOfWork(ctx), specification.ByID{ID: p.Id})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Someone else closed it first.
		if current.Status == target {
			return current, nil
		}
		return nil, serverutils.Conflict("payment is already %s", current.Status)
	}

	s.afterTransition(ctx, current, membership, actorId)
	return current, nil
}

func (s *paymentService) activatePlan(ctx context.Context, uow unitofwork.UnitOfWork, p *entity.Payment) (*entity.Membership, error) {
	pkg, err := uow.PackageRepository().FindOne(ctx,
		specification.ByName{Name: p.Plan},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, storeError(s.logger, "PAYMENT", "find plan package", err)
	}
	if pkg == nil {
		s.logger.Warn("PAYMENT", "No active package matches plan", map[string]interface{}{"plan": p.Plan})
		return nil, nil
	}

	if _, err := uow.MembershipRepository().ExpireActive(ctx, p.AccountId); err != nil {
		return nil, storeError(s.logger, "PAYMENT", "expire memberships", err)
	}
	membership := newMembership(p.AccountId, pkg, time.Now())
	if err := uow.MembershipRepository().Create(ctx, membership); err != nil {
		return nil, storeError(s.logger, "PAYMENT", "activate membership", err)
	}
	return membership, nil
}

func (s *paymentService) afterTransition(ctx context.Context, p *entity.Payment, membership *entity.Membership, actorId uuid.UUID) {
	action := constant.ActionFail
	if p.Status == entity.PaymentStatusCompleted {
		action = constant.ActionComplete
	}

	meta := map[string]interface{}{
		"payment_id": p.Id.String(),
		"amount":     p.Amount.StringFixed(2),
		"method":     p.Method,
		"status":     p.Status,
	}
	if membership != nil {
		meta["membership_id"] = membership.Id.String()
		meta["membership_end"] = membership.EndDate
	}
	s.recorder.RecordEvent(ctx, audit.Entry{
		Type:             entity.LogTypePayment,
		Action:           action,
		Description:      fmt.Sprintf("Payment for %s %s", p.Plan, p.Status),
		SubjectAccountId: audit.AccountRef(p.AccountId),
		ActorAccountId:   audit.AccountRef(actorId),
		Metadata:         meta,
	})

	if membership != nil {
		s.recorder.RecordEvent(ctx, audit.Entry{
			Type:             entity.LogTypeMembership,
			Action:           constant.ActionAssign,
			Description:      fmt.Sprintf("%s membership activated until %s", membership.PackageName, membership.EndDate.Format(time.DateOnly)),
			SubjectAccountId: audit.AccountRef(p.AccountId),
			Metadata:         map[string]interface{}{"membership_id": membership.Id.String(), "payment_id": p.Id.String()},
		})
	}

	if p.Status == entity.PaymentStatusCompleted {
		s.sendReceipt(ctx, p)
	}
}

func (s *paymentService) sendReceipt(ctx context.Context, p *entity.Payment) {
	account, err := s.uowFactory.NewUnitOfWork(ctx).AccountRepository().FindOne(ctx, specification.ByID{ID: p.AccountId})
	if err != nil || account == nil {
		return
	}

	receipt := mailer.Receipt{
		FullName:  account.FullName,
		PaymentId: p.Id.String(),
		Plan:      p.Plan,
		Amount:    p.Amount.StringFixed(2),
		Currency:  p.Currency,
		Method:    string(p.Method),
	}
	go func() {
		if err := s.mailer.SendPaymentReceipt(account.Email, receipt); err != nil {
			s.logger.Warn("PAYMENT", "Receipt email failed", map[string]interface{}{"payment_id": receipt.PaymentId, "error": err.Error()})
		}
	}()
}

func (s *paymentService) History(ctx context.Context, accountId uuid.UUID) ([]dto.PaymentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	payments, err := uow.PaymentRepository().FindAll(ctx,
		specification.ByAccountID{AccountID: accountId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, storeError(s.logger, "PAYMENT", "payment history", err)
	}

	result := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		result = append(result, toPaymentResponse(p))
	}
	return result, nil
}

func (s *paymentService) ListPayments(ctx context.Context, query dto.PaymentListQuery) (*serverutils.PagedResult[dto.PaymentResponse], error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	page, limit, offset := serverutils.NormalizePage(query.Page, query.Limit)

	var filters []specification.Specification
	if query.Status != "" {
		if !entity.PaymentStatus(query.Status).IsValid() {
			return nil, serverutils.ValidationError("unknown status %q", query.Status)
		}
		filters = append(filters, specification.ByStatus{Status: query.Status})
	}

	total, err := uow.PaymentRepository().Count(ctx, filters...)
	if err != nil {
		return nil, storeError(s.logger, "PAYMENT", "count payments", err)
	}

	specs := append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	payments, err := uow.PaymentRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, storeError(s.logger, "PAYMENT", "list payments", err)
	}

	items := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		items = append(items, toPaymentResponse(p))
	}
	return serverutils.NewPagedResult(items, total, page, limit), nil
}
