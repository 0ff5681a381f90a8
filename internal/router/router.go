package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/stockroomhq/stockroom-api/internal/config"
	"github.com/stockroomhq/stockroom-api/internal/handler"
	"github.com/stockroomhq/stockroom-api/internal/middleware"
	"github.com/stockroomhq/stockroom-api/internal/permission"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler         *handler.AuthHandler
	NotificationHandler *handler.NotificationHandler
	ActivityHandler     *handler.ActivityHandler
	ProductHandler      *handler.ProductHandler
	OrderHandler        *handler.OrderHandler
	DirectoryHandler    *handler.DirectoryHandler
	UserHandler         *handler.UserHandler
	ReportHandler       *handler.ReportHandler
	JWTMiddleware       fiber.Handler
	Logger              zerolog.Logger
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		deps.AuthHandler.Register(auth)
	}

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = middleware.JWTProtected(cfg.JWTSecret)
	}

	guard := func(action permission.Action) fiber.Handler {
		return middleware.RequirePermission(action, deps.Logger)
	}

	if deps.NotificationHandler != nil {
		notifications := api.Group("/notifications", jwtMiddleware)
		deps.NotificationHandler.Register(notifications)
	}

	if deps.ActivityHandler != nil {
		activities := api.Group("/activities", jwtMiddleware)
		deps.ActivityHandler.Register(activities)
	}

	if deps.ProductHandler != nil {
		products := api.Group("/products", jwtMiddleware)
		products.Get("/", deps.ProductHandler.List)
		products.Get("/:id", deps.ProductHandler.Get)
		products.Post("/", guard(permission.ActionProductCreate), deps.ProductHandler.Create)
		products.Put("/:id", guard(permission.ActionProductUpdate), deps.ProductHandler.Update)
		products.Delete("/:id", guard(permission.ActionProductDelete), deps.ProductHandler.Delete)
		products.Post("/:id/image", guard(permission.ActionProductUpdate), deps.ProductHandler.AttachImage)
		products.Post("/:id/describe", guard(permission.ActionProductUpdate), deps.ProductHandler.SuggestDescription)
	}

	if deps.OrderHandler != nil {
		orders := api.Group("/orders", jwtMiddleware)
		orders.Get("/", deps.OrderHandler.List)
		orders.Get("/:id", deps.OrderHandler.Get)
		orders.Post("/", guard(permission.ActionOrderCreate), deps.OrderHandler.Create)
		orders.Patch("/:id/status", guard(permission.ActionOrderUpdate), deps.OrderHandler.UpdateStatus)
		orders.Delete("/:id", guard(permission.ActionOrderDelete), deps.OrderHandler.Delete)
	}

	if deps.DirectoryHandler != nil {
		settingsGuard := guard(permission.ActionSettingsManage)

		warehouses := api.Group("/warehouses", jwtMiddleware)
		warehouses.Get("/", deps.DirectoryHandler.ListWarehouses)
		warehouses.Post("/", settingsGuard, deps.DirectoryHandler.CreateWarehouse)
		warehouses.Delete("/:id", settingsGuard, deps.DirectoryHandler.DeleteWarehouse)

		vendors := api.Group("/vendors", jwtMiddleware)
		vendors.Get("/", deps.DirectoryHandler.ListVendors)
		vendors.Post("/", settingsGuard, deps.DirectoryHandler.CreateVendor)
		vendors.Delete("/:id", settingsGuard, deps.DirectoryHandler.DeleteVendor)

		customers := api.Group("/customers", jwtMiddleware)
		customers.Get("/", deps.DirectoryHandler.ListCustomers)
		customers.Post("/", settingsGuard, deps.DirectoryHandler.CreateCustomer)
		customers.Delete("/:id", settingsGuard, deps.DirectoryHandler.DeleteCustomer)
	}

	if deps.UserHandler != nil {
		users := api.Group("/users", jwtMiddleware, guard(permission.ActionUsersManage))
		deps.UserHandler.Register(users)
	}

	if deps.ReportHandler != nil {
		reports := api.Group("/reports", jwtMiddleware, guard(permission.ActionReportsView))
		deps.ReportHandler.Register(reports)
	}
}
