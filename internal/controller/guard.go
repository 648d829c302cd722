package controller

import (
	"gym-management-be/internal/entity"
	"gym-management-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

// adminOnly must follow the jwt middleware in a route chain.
var adminOnly = serverutils.RequireRole(string(entity.AccountRoleAdmin))

func queryInto(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.QueryParser(out); err != nil {
		return serverutils.ValidationError("invalid query parameters")
	}
	return nil
}
