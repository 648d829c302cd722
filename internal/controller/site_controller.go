// FILE: internal/controller/site_controller.go
package controller

import (
	"gym-management-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const siteLayout = "layouts/main"

// ISiteController renders the marketing pages.
type ISiteController interface {
	RegisterRoutes(app fiber.Router)
}

type siteController struct {
	service  service.IPublicService
	siteName string
}

func NewSiteController(service service.IPublicService, siteName string) ISiteController {
	return &siteController{service: service, siteName: siteName}
}

func (c *siteController) RegisterRoutes(app fiber.Router) {
	app.Get("/", c.Home)
	app.Get("/plans", c.Plans)
	app.Get("/nutrition", c.Nutrition)
	app.Get("/store", c.Store)
}

func (c *siteController) Home(ctx *fiber.Ctx) error {
	packages, err := c.service.Packages(ctx.UserContext())
	if err != nil {
		return err
	}
	services, err := c.service.Services(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.Render("index", fiber.Map{
		"Title":    c.siteName,
		"SiteName": c.siteName,
		"Packages": packages,
		"Services": services,
	}, siteLayout)
}

func (c *siteController) Plans(ctx *fiber.Ctx) error {
	packages, err := c.service.Packages(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.Render("plans", fiber.Map{
		"Title":    "Membership plans",
		"SiteName": c.siteName,
		"Packages": packages,
	}, siteLayout)
}

func (c *siteController) Nutrition(ctx *fiber.Ctx) error {
	tips, err := c.service.NutritionTips(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.Render("nutrition", fiber.Map{
		"Title":    "Nutrition",
		"SiteName": c.siteName,
		"Tips":     tips,
	}, siteLayout)
}

func (c *siteController) Store(ctx *fiber.Ctx) error {
	products, err := c.service.Products(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.Render("store", fiber.Map{
		"Title":    "Store",
		"SiteName": c.siteName,
		"Products": products,
	}, siteLayout)
}
