package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/stockroomhq/stockroom-api/internal/config"
	"github.com/stockroomhq/stockroom-api/internal/database"
	"github.com/stockroomhq/stockroom-api/internal/handler"
	"github.com/stockroomhq/stockroom-api/internal/middleware"
	"github.com/stockroomhq/stockroom-api/internal/models"
	"github.com/stockroomhq/stockroom-api/internal/repository"
	"github.com/stockroomhq/stockroom-api/internal/router"
	"github.com/stockroomhq/stockroom-api/internal/service"
	"github.com/stockroomhq/stockroom-api/pkg/ai"
	cloud "github.com/stockroomhq/stockroom-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Organization{},
		&models.User{},
		&models.ActivityRecord{},
		&models.Notification{},
		&models.Product{},
		&models.Warehouse{},
		&models.Vendor{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var cache *redis.Client
	if cfg.RedisURL != "" {
		cache, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer cache.Close()
	} else {
		logger.Warn().Msg("redis url not set, caching disabled")
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL, nats.Name(cfg.AppName))
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	} else {
		logger.Warn().Msg("nats url not set, notification fan-out runs inline")
	}

	var storage service.FileStorage
	if cfg.CloudinaryCloudName != "" {
		uploader, err := cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryFolder,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create cloudinary client: %v", err)
		}
		storage = uploader
	}

	var suggester service.DescriptionSuggester
	if cfg.OpenAIAPIKey != "" {
		writer, err := ai.NewOpenAIWriter(ai.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Logger: logger,
		})
		if err != nil {
			log.Fatalf("failed to create openai client: %v", err)
		}
		suggester = writer
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	warehouseRepo := repository.NewWarehouseRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	reportRepo := repository.NewReportRepository(db)

	recorder := service.NewActivityService(activityRepo, logger)
	notificationService := service.NewNotificationService(notificationRepo, userRepo, cache, natsConn, cfg.UnreadCacheTTL, logger)
	feedService := service.NewActivityFeedService(activityRepo, cache, cfg.FeedCacheTTL, logger)
	authService := service.NewAuthService(userRepo, validate, cfg.JWTSecret, cfg.JWTTTL, logger)
	userService := service.NewUserService(userRepo, recorder, validate, logger)
	productService := service.NewProductService(productRepo, recorder, notificationService, storage, suggester, validate, cfg.UploadMaxSizeMB, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, customerRepo, recorder, notificationService, validate, logger)
	directoryService := service.NewDirectoryService(warehouseRepo, vendorRepo, customerRepo, recorder, validate, logger)
	reportService := service.NewReportService(reportRepo, logger)

	runCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	notificationService.Start(runCtx)

	pollInterval := int(cfg.PollInterval / time.Second)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:         handler.NewAuthHandler(authService, logger),
		NotificationHandler: handler.NewNotificationHandler(notificationService, logger, cfg.NotificationLimit, pollInterval),
		ActivityHandler:     handler.NewActivityHandler(feedService, logger),
		ProductHandler:      handler.NewProductHandler(productService, logger),
		OrderHandler:        handler.NewOrderHandler(orderService, logger),
		DirectoryHandler:    handler.NewDirectoryHandler(directoryService, logger),
		UserHandler:         handler.NewUserHandler(userService, logger),
		ReportHandler:       handler.NewReportHandler(reportService, logger),
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
		Logger:              logger,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, stopWorkers)
}

func waitForShutdown(app *fiber.App, stopWorkers context.CancelFunc) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	stopWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
