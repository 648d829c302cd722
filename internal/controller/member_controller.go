// FILE: internal/controller/member_controller.go
package controller

import (
	"gym-management-be/internal/dto"
	"gym-management-be/internal/pkg/serverutils"
	"gym-management-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMemberController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
}

type memberController struct {
	service service.IMemberService
}

func NewMemberController(service service.IMemberService) IMemberController {
	return &memberController{service: service}
}

func (c *memberController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	r.Get("/admin/members", jwtMiddleware, adminOnly, c.List)
	r.Post("/admin/members", jwtMiddleware, adminOnly, c.Create)
	r.Get("/admin/members/:id", jwtMiddleware, adminOnly, c.GetById)
	r.Put("/admin/members/:id", jwtMiddleware, adminOnly, c.Update)
	r.Delete("/admin/members/:id", jwtMiddleware, adminOnly, c.Delete)
	r.Put("/admin/members/:id/membership", jwtMiddleware, adminOnly, c.AssignMembership)
	r.Get("/admin/members/:id/memberships", jwtMiddleware, adminOnly, c.ListMemberships)
}

func (c *memberController) List(ctx *fiber.Ctx) error {
	var query dto.ListQuery
	if err := queryInto(ctx, &query); err != nil {
		return err
	}

	res, err := c.service.List(ctx.UserContext(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Members retrieved", res))
}

func (c *memberController) GetById(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.GetById(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Member retrieved", res))
}

func (c *memberController) Create(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentUser(ctx)
	if err != nil {
		return err
	}
	var req dto.CreateMemberRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), actor.UserId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Member created", res))
}

func (c *memberController) Update(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentUser(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateMemberRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.UserContext(), actor.UserId, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Member updated", res))
}

func (c *memberController) Delete(ctx *fiber.Ctx) error {
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
	return ctx.JSON(serverutils.SuccessResponse[any]("Member deleted", nil))
}

func (c *memberController) AssignMembership(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentUser(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.AssignMembershipRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.AssignMembership(ctx.UserContext(), actor.UserId, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Membership updated", res))
}

func (c *memberController) ListMemberships(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.ListMemberships(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Memberships retrieved", res))
}
