package server

import (
	"embed"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"gym-management-be/internal/bootstrap"
	"gym-management-be/internal/config"
	"gym-management-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/template/html/v2"
)

//go:embed views
var viewsFS embed.FS

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	views, err := fs.Sub(viewsFS, "views")
	if err != nil {
		log.Fatalf("[FATAL] Failed to load views: %v", err)
	}
	engine := html.NewFileSystem(http.FS(views), ".html")

	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024, // 4MB
		Views:        engine,
		ErrorHandler: serverutils.ErrorHandler(container.Logger),
	})

	// Middleware
	// fiber refuses credentials with a wildcard origin
	origins := strings.TrimSpace(cfg.App.CorsAllowedOrigins)
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowCredentials: origins != "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	app.Use(otelfiber.Middleware())

	registerRoutes(app, cfg, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func registerRoutes(app *fiber.App, cfg *config.Config, c *bootstrap.Container) {
	jwt := serverutils.JwtMiddleware(cfg.Auth.JWTSecret)

	api := app.Group("/api")

	c.AuthController.RegisterRoutes(api, jwt)
	c.MemberController.RegisterRoutes(api, jwt)
	c.PackageController.RegisterRoutes(api, jwt)
	c.ServiceController.RegisterRoutes(api, jwt)
	c.AttendanceController.RegisterRoutes(api, jwt)
	c.PaymentController.RegisterRoutes(api, jwt)
	c.LogController.RegisterRoutes(api, jwt)
	c.DashboardController.RegisterRoutes(api, jwt)
	c.PublicController.RegisterRoutes(api)

	c.RealtimeHandler.RegisterRoutes(api)

	c.SiteController.RegisterRoutes(app)
}
