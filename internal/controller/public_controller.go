// FILE: internal/controller/public_controller.go
package controller

import (
	"gym-management-be/internal/pkg/serverutils"
	"gym-management-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPublicController interface {
	RegisterRoutes(r fiber.Router)
}

type publicController struct {
	service service.IPublicService
}

func NewPublicController(service service.IPublicService) IPublicController {
	return &publicController{service: service}
}

func (c *publicController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/public")
	h.Get("/packages", c.Packages)
	h.Get("/services", c.Services)
	h.Get("/nutrition-tips", c.NutritionTips)
	h.Get("/products", c.Products)
}

func (c *publicController) Packages(ctx *fiber.Ctx) error {
	res, err := c.service.Packages(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Packages retrieved", res))
}

func (c *publicController) Services(ctx *fiber.Ctx) error {
	res, err := c.service.Services(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Services retrieved", res))
}

func (c *publicController) NutritionTips(ctx *fiber.Ctx) error {
	res, err := c.service.NutritionTips(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Nutrition tips retrieved", res))
}

func (c *publicController) Products(ctx *fiber.Ctx) error {
	res, err := c.service.Products(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Products retrieved", res))
}
