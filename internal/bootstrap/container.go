package bootstrap

import (
	"log"
	"path/filepath"
	"time"

	"gym-management-be/internal/config"
	"gym-management-be/internal/constant"
	"gym-management-be/internal/controller"
	"gym-management-be/internal/handler"
	"gym-management-be/internal/pkg/logger"
	"gym-management-be/internal/pkg/mailer"
	"gym-management-be/internal/repository/memory"
	"gym-management-be/internal/repository/unitofwork"
	"gym-management-be/internal/service"
	"gym-management-be/internal/websocket"
	"gym-management-be/pkg/admin/dashboard"
	adminEvents "gym-management-be/pkg/admin/events"
	"gym-management-be/pkg/audit"
	"gym-management-be/pkg/database"
	"gym-management-be/pkg/payment"
	"gym-management-be/pkg/throttle"

	pktNats "gym-management-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	MemberController     controller.IMemberController
	PackageController    controller.IPackageController
	ServiceController    controller.IServiceController
	AttendanceController controller.IAttendanceController
	PaymentController    controller.IPaymentController
	LogController        controller.ILogController
	DashboardController  controller.IDashboardController
	PublicController     controller.IPublicController
	SiteController       controller.ISiteController

	// Background services (run by main.go)
	ConsumerService   service.IConsumerService
	MembershipService service.IMembershipService

	RealtimeHandler *handler.RealtimeHandler
	WebSocketHub    *websocket.Hub

	Logger *logger.ZapLogger

	natsPub *pktNats.Publisher
	rdb     *redis.Client
	pubSub  *gochannel.GoChannel
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())

	emailService := mailer.NewEmailService(cfg.SMTP, cfg.App.BaseURL, sysLogger)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Optional infrastructure
	var natsPub *pktNats.Publisher
	if cfg.Infra.NatsURL != "" {
		p, err := pktNats.NewPublisher(cfg.Infra.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			natsPub = p
		}
	}

	rdb, err := database.NewRedisClient(cfg.Infra.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// Socket churn goes to its own file next to the main log
	wsLogger := logger.NewIsolatedLogger(filepath.Join(filepath.Dir(cfg.App.LogFilePath), "realtime.log"))
	wsHub := websocket.NewHub(rdb, wsLogger)

	recorder := audit.NewRecorder(uowFactory, pubSub, cfg.Infra.AuditTopic, sysLogger)
	catalogCache := memory.NewCatalogCache(constant.CatalogCacheTTL)
	loginThrottle := throttle.NewRedisLoginThrottle(
		rdb,
		cfg.Auth.MaxLoginAttempts,
		time.Duration(cfg.Auth.LockoutMinutes)*time.Minute,
	)

	cardProcessor := payment.NewMidtransProcessor(
		cfg.Midtrans.ServerKey,
		cfg.Midtrans.IsProduction,
		cfg.App.ClientURL+"/payment/finish",
	)
	qrGenerator := payment.NewPngQrGenerator(constant.QrReferencePrefix, constant.QrPayloadScheme, constant.QrImageSize)

	adminEventPublisher := adminEvents.NewNatsPublisher(natsPub, sysLogger)
	dashboardAggregator := dashboard.NewAggregator(sysLogger)

	// 4. Services
	authService := service.NewAuthService(uowFactory, cfg, loginThrottle, emailService, recorder, sysLogger)
	memberService := service.NewMemberService(uowFactory, recorder, sysLogger)
	membershipService := service.NewMembershipService(uowFactory, recorder, sysLogger)
	packageService := service.NewPackageService(uowFactory, catalogCache, recorder, sysLogger)
	catalogService := service.NewServiceCatalogService(uowFactory, catalogCache, recorder, sysLogger)
	attendanceService := service.NewAttendanceService(uowFactory, recorder, sysLogger)
	paymentService := service.NewPaymentService(
		uowFactory,
		cardProcessor,
		qrGenerator,
		emailService,
		recorder,
		cfg.App.Currency,
		sysLogger,
	)
	logService := service.NewLogService(uowFactory, dashboardAggregator, sysLogger, sysLogger)
	dashboardService := service.NewDashboardService(uowFactory, dashboardAggregator, wsHub, cfg.App.Currency, sysLogger)
	publicService := service.NewPublicService(uowFactory, catalogCache, sysLogger)

	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Infra.AuditTopic,
		adminEventPublisher,
		wsHub,
		sysLogger,
	)

	// 5. Controllers
	return &Container{
		AuthController:       controller.NewAuthController(authService),
		MemberController:     controller.NewMemberController(memberService),
		PackageController:    controller.NewPackageController(packageService),
		ServiceController:    controller.NewServiceController(catalogService),
		AttendanceController: controller.NewAttendanceController(attendanceService),
		PaymentController:    controller.NewPaymentController(paymentService),
		LogController:        controller.NewLogController(logService),
		DashboardController:  controller.NewDashboardController(dashboardService),
		PublicController:     controller.NewPublicController(publicService),
		SiteController:       controller.NewSiteController(publicService, constant.SiteName),

		ConsumerService:   consumerService,
		MembershipService: membershipService,

		RealtimeHandler: handler.NewRealtimeHandler(wsHub, cfg.Auth.JWTSecret, wsLogger),
		WebSocketHub:    wsHub,

		Logger: sysLogger,

		natsPub: natsPub,
		rdb:     rdb,
		pubSub:  pubSub,
	}
}

// Close releases the connections opened by NewContainer.
func (c *Container) Close() {
	if err := c.pubSub.Close(); err != nil {
		log.Printf("[WARN] Failed to close event bus: %v", err)
	}
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if c.rdb != nil {
		c.rdb.Close()
	}
	c.Logger.Sync()
}
