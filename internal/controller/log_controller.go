// FILE: internal/controller/log_controller.go
package controller

import (
	"gym-management-be/internal/dto"
	"gym-management-be/internal/pkg/serverutils"
	"gym-management-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ILogController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
}

type logController struct {
	service service.ILogService
}

func NewLogController(service service.ILogService) ILogController {
	return &logController{service: service}
}

func (c *logController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	r.Get("/admin/logs", jwtMiddleware, adminOnly, c.List)
	r.Get("/admin/logs/statistics", jwtMiddleware, adminOnly, c.Statistics)
	r.Get("/admin/logs/app", jwtMiddleware, adminOnly, c.AppLogs)
	r.Get("/admin/logs/app/:id", jwtMiddleware, adminOnly, c.AppLog)
	r.Get("/admin/logs/:id", jwtMiddleware, adminOnly, c.GetById)
}

func (c *logController) List(ctx *fiber.Ctx) error {
	var query dto.LogListQuery
	if err := queryInto(ctx, &query); err != nil {
		return err
	}

	res, err := c.service.List(ctx.UserContext(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Logs retrieved", res))
}

func (c *logController) Statistics(ctx *fiber.Ctx) error {
	res, err := c.service.Statistics(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Log statistics retrieved", res))
}

func (c *logController) GetById(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.GetById(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Log retrieved", res))
}

func (c *logController) AppLogs(ctx *fiber.Ctx) error {
	var query dto.AppLogQuery
	if err := queryInto(ctx, &query); err != nil {
		return err
	}

	res, err := c.service.AppLogs(ctx.UserContext(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Application logs retrieved", res))
}

func (c *logController) AppLog(ctx *fiber.Ctx) error {
	res, err := c.service.AppLog(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Application log retrieved", res))
}
