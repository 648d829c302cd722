// FILE: internal/controller/dashboard_controller.go
package controller

import (
	"gym-management-be/internal/pkg/serverutils"
	"gym-management-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDashboardController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
}

type dashboardController struct {
	service service.IDashboardService
}

func NewDashboardController(service service.IDashboardService) IDashboardController {
	return &dashboardController{service: service}
}

func (c *dashboardController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	r.Get("/admin/dashboard", jwtMiddleware, adminOnly, c.Get)
}

func (c *dashboardController) Get(ctx *fiber.Ctx) error {
	res, err := c.service.GetDashboard(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Dashboard retrieved", res))
}
