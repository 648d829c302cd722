// FILE: internal/controller/payment_controller.go
package controller

import (
	"gym-management-be/internal/dto"
	"gym-management-be/internal/pkg/serverutils"
	"gym-management-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
}

type paymentController struct {
	service service.IPaymentService
}

func NewPaymentController(service service.IPaymentService) IPaymentController {
	return &paymentController{service: service}
}

func (c *paymentController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/payment")
	h.Post("/midtrans/notification", c.Notification)
	h.Post("/create-payment", jwtMiddleware, c.Create)
	h.Post("/confirm-payment", jwtMiddleware, c.Confirm)
	h.Post("/verify-qr-payment", jwtMiddleware, c.VerifyQr)
	h.Get("/status/:id", jwtMiddleware, c.Status)
	h.Get("/history", jwtMiddleware, c.History)

	r.Get("/admin/payments", jwtMiddleware, adminOnly, c.List)
}

func (c *paymentController) Create(ctx *fiber.Ctx) error {
	user, err := serverutils.CurrentUser(ctx)
	if err != nil {
		return err
	}
	var req dto.CreatePaymentRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.CreatePayment(ctx.UserContext(), user.UserId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Payment created", res))
}

func (c *paymentController) Confirm(ctx *fiber.Ctx) error {
	user, err := serverutils.CurrentUser(ctx)
	if err != nil {
		return err
	}
	var req dto.ConfirmPaymentRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.ConfirmPayment(ctx.UserContext(), user, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment updated", res))
}

func (c *paymentController) VerifyQr(ctx *fiber.Ctx) error {
	user, err := serverutils.CurrentUser(ctx)
	if err != nil {
		return err
	}
	var req dto.VerifyQrPaymentRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.VerifyQrPayment(ctx.UserContext(), user.UserId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment verified", res))
}

func (c *paymentController) Status(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.GetPaymentStatus(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment status retrieved", res))
}

func (c *paymentController) History(ctx *fiber.Ctx) error {
	user, err := serverutils.CurrentUser(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.History(ctx.UserContext(), user.UserId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment history retrieved", res))
}

func (c *paymentController) List(ctx *fiber.Ctx) error {
	var query dto.PaymentListQuery
	if err := queryInto(ctx, &query); err != nil {
		return err
	}

	res, err := c.service.ListPayments(ctx.UserContext(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Payments retrieved", res))
}

// Notification is the Midtrans server-to-server callback.
func (c *paymentController) Notification(ctx *fiber.Ctx) error {
	var req dto.MidtransWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.ValidationError("invalid notification body")
	}

	if err := c.service.HandleNotification(ctx.UserContext(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Notification processed", nil))
}
