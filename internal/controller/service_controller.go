// FILE: internal/controller/service_controller.go
package controller

import (
	"gym-management-be/internal/dto"
	"gym-management-be/internal/pkg/serverutils"
	"gym-management-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IServiceController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
}

type serviceController struct {
	service service.IServiceCatalogService
}

func NewServiceController(service service.IServiceCatalogService) IServiceController {
	return &serviceController{service: service}
}

func (c *serviceController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	r.Get("/admin/services", jwtMiddleware, adminOnly, c.List)
	r.Post("/admin/services", jwtMiddleware, adminOnly, c.Create)
	r.Get("/admin/services/:id", jwtMiddleware, adminOnly, c.GetById)
	r.Put("/admin/services/:id", jwtMiddleware, adminOnly, c.Update)
	r.Delete("/admin/services/:id", jwtMiddleware, adminOnly, c.Delete)
	r.Get("/admin/services/:id/bookings", jwtMiddleware, adminOnly, c.ListBookings)

	r.Post("/member/services/:id/bookings", jwtMiddleware, c.Book)
	r.Get("/member/bookings", jwtMiddleware, c.MyBookings)
	r.Delete("/member/bookings/:id", jwtMiddleware, c.CancelBooking)
}

func (c *serviceController) List(ctx *fiber.Ctx) error {
	var query dto.ListQuery
	if err := queryInto(ctx, &query); err != nil {
		return err
	}

	res, err := c.service.List(ctx.UserContext(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Services retrieved", res))
}

func (c *serviceController) GetById(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.GetById(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Service retrieved", res))
}

func (c *serviceController) Create(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentUser(ctx)
	if err != nil {
		return err
	}
	var req dto.GymServiceRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), actor.UserId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Service created", res))
}

func (c *serviceController) Update(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentUser(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.GymServiceRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.UserContext(), actor.UserId, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Service updated", res))
}

func (c *serviceController) Delete(ctx *fiber.Ctx) error {
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
	return ctx.JSON(serverutils.SuccessResponse[any]("Service deleted", nil))
}

func (c *serviceController) ListBookings(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.ListBookings(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Bookings retrieved", res))
}

func (c *serviceController) Book(ctx *fiber.Ctx) error {
	user, err := serverutils.CurrentUser(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.BookingRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Book(ctx.UserContext(), user.UserId, id, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Booking created", res))
}

func (c *serviceController) MyBookings(ctx *fiber.Ctx) error {
	user, err := serverutils.CurrentUser(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.MyBookings(ctx.UserContext(), user.UserId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Bookings retrieved", res))
}

func (c *serviceController) CancelBooking(ctx *fiber.Ctx) error {
	user, err := serverutils.CurrentUser(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.CancelBooking(ctx.UserContext(), user.UserId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Booking cancelled", res))
}
