// FILE: internal/controller/package_controller.go
package controller

import (
	"gym-management-be/internal/dto"
	"gym-management-be/internal/pkg/serverutils"
	"gym-management-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPackageController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
}

type packageController struct {
	service service.IPackageService
}

func NewPackageController(service service.IPackageService) IPackageController {
	return &packageController{service: service}
}

func (c *packageController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	r.Get("/admin/packages", jwtMiddleware, adminOnly, c.List)
	r.Post("/admin/packages", jwtMiddleware, adminOnly, c.Create)
	r.Get("/admin/packages/:id", jwtMiddleware, adminOnly, c.GetById)
	r.Put("/admin/packages/:id", jwtMiddleware, adminOnly, c.Update)
	r.Delete("/admin/packages/:id", jwtMiddleware, adminOnly, c.Delete)
}

func (c *packageController) List(ctx *fiber.Ctx) error {
	var query dto.ListQuery
	if err := queryInto(ctx, &query); err != nil {
		return err
	}

	res, err := c.service.List(ctx.UserContext(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Packages retrieved", res))
}

func (c *packageController) GetById(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.GetById(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Package retrieved", res))
}

func (c *packageController) Create(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentUser(ctx)
	if err != nil {
		return err
	}
	var req dto.PackageRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), actor.UserId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Package created", res))
}

func (c *packageController) Update(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentUser(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.PackageRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.UserContext(), actor.UserId, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Package updated", res))
}

func (c *packageController) Delete(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentUser(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.UserContext(), actor.UserId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Package deleted", nil))
}
