// FILE: internal/controller/attendance_controller.go
package controller

import (
	"gym-management-be/internal/dto"
	"gym-management-be/internal/pkg/serverutils"
	"gym-management-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAttendanceController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
}

type attendanceController struct {
	service service.IAttendanceService
}

func NewAttendanceController(service service.IAttendanceService) IAttendanceController {
	return &attendanceController{service: service}
}

func (c *attendanceController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	r.Get("/admin/attendance/current", jwtMiddleware, adminOnly, c.Current)
	r.Get("/admin/attendance/statistics", jwtMiddleware, adminOnly, c.Statistics)
	r.Get("/admin/attendance", jwtMiddleware, adminOnly, c.History)
	r.Post("/admin/attendance/check-in", jwtMiddleware, adminOnly, c.CheckIn)
	r.Put("/admin/attendance/check-out/:id", jwtMiddleware, adminOnly, c.CheckOut)

	r.Get("/member/attendance", jwtMiddleware, c.Mine)
}

func (c *attendanceController) CheckIn(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentUser(ctx)
	if err != nil {
		return err
	}
	var req dto.CheckInRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.CheckIn(ctx.UserContext(), actor.UserId, req.AccountId)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Checked in", res))
}

func (c *attendanceController) CheckOut(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentUser(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.CheckOut(ctx.UserContext(), actor.UserId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Checked out", res))
}

func (c *attendanceController) Current(ctx *fiber.Ctx) error {
	res, err := c.service.ListCurrent(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Current attendance retrieved", res))
}

func (c *attendanceController) History(ctx *fiber.Ctx) error {
	var query dto.AttendanceHistoryQuery
	if err := queryInto(ctx, &query); err != nil {
		return err
	}

	res, err := c.service.History(ctx.UserContext(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Attendance history retrieved", res))
}

func (c *attendanceController) Statistics(ctx *fiber.Ctx) error {
	res, err := c.service.Statistics(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Attendance statistics retrieved", res))
}

func (c *attendanceController) Mine(ctx *fiber.Ctx) error {
	user, err := serverutils.CurrentUser(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.MyAttendance(ctx.UserContext(), user.UserId, ctx.QueryInt("page", 1), ctx.QueryInt("limit", 10))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Attendance retrieved", res))
}
