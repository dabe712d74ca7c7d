package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go-backoffice/internal/events"
	"go-backoffice/internal/handler"
	"go-backoffice/internal/middleware"
	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/internal/service"
	"go-backoffice/internal/ws"
	"go-backoffice/pkg/cache"
	"go-backoffice/pkg/database"
	"go-backoffice/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load env and logging
	if err := godotenv.Load(); err != nil {
		logger.L().Warn(".env file not found, relying on system env")
	}
	logger.Init()

	// 2. Setup database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.Organization{},
		&model.ShippingRateConfig{},
		&model.Product{},
		&model.Order{},
		&model.CreditTransaction{},
		&model.ProductActivity{},
		&model.User{},
		&model.Privilege{},
		&model.Role{},
	)

	// 3. Seed default privileges and roles
	seedRolesAndPrivileges(db)

	// 4. Optional infrastructure: redis cache, kafka events
	rdb := cache.New(os.Getenv("REDIS_ADDR"))

	var publisher events.Publisher
	producerCtx, stopProducer := context.WithCancel(context.Background())
	defer stopProducer()
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		topic := os.Getenv("KAFKA_TOPIC")
		if topic == "" {
			topic = "backoffice.events"
		}
		producer := events.NewProducer(splitCSV(brokers), topic, "backoffice-api", 256)
		producer.Start(producerCtx)
		publisher = producer
		logger.WithField("topic", topic).Info("Kafka event publishing enabled")
	}

	// 5. WebSocket hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 6. Dependency injection (wiring layers)
	orgRepo := repository.NewOrganizationRepo(db)
	rateRepo := repository.NewRateConfigRepo(db)
	productRepo := repository.NewProductRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	creditRepo := repository.NewCreditRepo(db)
	activityRepo := repository.NewActivityRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	rateService := service.NewRateConfigService(rateRepo, rdb)
	authService := service.NewAuthService(db, userRepo, orgRepo, rateRepo, roleRepo)
	productService := service.NewProductService(db, productRepo, activityRepo, wsHub, publisher)
	orderService := service.NewOrderService(db, orderRepo, productRepo, orgRepo, creditRepo, activityRepo, wsHub, publisher)
	billingService := service.NewBillingService(db, orderRepo, orgRepo, creditRepo, rateService, wsHub, publisher)
	creditService := service.NewCreditService(db, orgRepo, orderRepo, creditRepo, wsHub, publisher)
	userService := service.NewUserService(userRepo, roleRepo)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	orderHandler := handler.NewOrderHandler(orderService, billingService)
	creditHandler := handler.NewCreditHandler(creditService)
	configHandler := handler.NewConfigHandler(rateService)
	activityHandler := handler.NewActivityHandler(activityRepo)
	userHandler := handler.NewUserHandler(userService)

	// 7. Setup fiber
	app := fiber.New(fiber.Config{
		AppName: "Supplement Back-Office v1.0",
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(requestLogger())

	// 8. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	// Product routes
	protected.Get("/products", middleware.RequirePrivilege("product:view"), productHandler.GetProducts)
	protected.Post("/products", middleware.RequirePrivilege("product:create"), productHandler.CreateProduct)
	protected.Get("/products/:id", middleware.RequirePrivilege("product:view"), productHandler.GetProduct)
	protected.Put("/products/:id", middleware.RequirePrivilege("product:update"), productHandler.UpdateProduct)
	protected.Put("/products/:id/stock", middleware.RequirePrivilege("product:update"), productHandler.AdjustStock)
	protected.Delete("/products/:id", middleware.RequirePrivilege("product:delete"), productHandler.DeleteProduct)

	// Order routes
	protected.Get("/orders", middleware.RequirePrivilege("order:view"), orderHandler.GetOrders)
	protected.Post("/orders", middleware.RequirePrivilege("order:create"), orderHandler.CreateOrder)
	protected.Get("/orders/stats", middleware.RequirePrivilege("order:stats"), orderHandler.GetStats)
	protected.Get("/orders/:id", middleware.RequirePrivilege("order:view"), orderHandler.GetOrder)
	protected.Put("/orders/:id/status", middleware.RequirePrivilege("order:update_status"), orderHandler.UpdateStatus)
	protected.Get("/orders/:id/shipping-quote", middleware.RequirePrivilege("order:view"), orderHandler.QuoteShipping)
	protected.Put("/orders/:id/shipping-cost", middleware.RequirePrivilege("order:confirm_shipping"), orderHandler.ConfirmShipping)

	// Credit ledger routes
	protected.Get("/credits/balance", middleware.RequirePrivilege("credits:view"), creditHandler.GetBalance)
	protected.Post("/credits/add", middleware.RequirePrivilege("credits:add"), creditHandler.AddCredits)
	protected.Post("/credits/adjust", middleware.RequirePrivilege("credits:adjust"), creditHandler.AdjustCredits)
	protected.Post("/credits/refund", middleware.RequirePrivilege("credits:refund"), creditHandler.RefundOrder)
	protected.Get("/credits/transactions", middleware.RequirePrivilege("credits:view"), creditHandler.GetTransactions)

	// Shipping rate configuration
	protected.Get("/config/shipping-rates", middleware.RequirePrivilege("config:view"), configHandler.GetShippingRates)
	protected.Put("/config/shipping-rates", middleware.RequirePrivilege("config:update"), configHandler.UpdateShippingRates)

	// Activity log
	protected.Get("/activity/products", middleware.RequirePrivilege("activity:view"), activityHandler.GetActivities)
	protected.Delete("/activity/products", middleware.RequirePrivilege("activity:prune"), activityHandler.Prune)

	// User management
	protected.Get("/users", middleware.RequirePrivilege("user:view"), userHandler.GetUsers)
	protected.Get("/users/:id", middleware.RequirePrivilege("user:view"), userHandler.GetUser)
	protected.Post("/users", middleware.RequirePrivilege("user:create"), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequirePrivilege("user:update"), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequirePrivilege("user:delete"), userHandler.DeleteUser)

	// Roles (for the user-management form)
	protected.Get("/roles", func(c *fiber.Ctx) error {
		roles, err := roleRepo.FindAll()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch roles"})
		}
		return c.JSON(roles)
	})

	// WebSocket route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 9. Graceful shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			logger.L().WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L().Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		logger.L().WithError(err).Fatal("Server forced to shutdown")
	}
	stopProducer()
	if producer, ok := publisher.(*events.Producer); ok {
		producer.WaitClosed()
	}

	logger.L().Info("Server exited")
}

// requestLogger logs each request through the shared logrus logger.
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		logger.WithFields(map[string]interface{}{
			"method": c.Method(),
			"path":   c.Path(),
			"status": c.Response().StatusCode(),
			"ip":     c.IP(),
		}).Info("request")
		return err
	}
}

// seedRolesAndPrivileges creates default privileges and roles and binds
// privileges to roles if they have none yet.
func seedRolesAndPrivileges(db *gorm.DB) {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	if err := privilegeRepo.SeedDefaults(); err != nil {
		logger.L().WithError(err).Warn("Failed to seed privileges")
	}
	if err := roleRepo.SeedDefaults(); err != nil {
		logger.L().WithError(err).Warn("Failed to seed roles")
	}

	allPrivileges, _ := privilegeRepo.FindAll()

	// OWNER gets all privileges
	ownerRole, err := roleRepo.FindByCode(model.RoleOwner)
	if err == nil && len(ownerRole.Privileges) == 0 {
		db.Model(ownerRole).Association("Privileges").Replace(allPrivileges)
		logger.L().Info("OWNER role assigned all privileges")
	}

	// ADMIN gets everything except user management
	adminRole, err := roleRepo.FindByCode(model.RoleAdmin)
	if err == nil && len(adminRole.Privileges) == 0 {
		adminPrivileges := []model.Privilege{}
		for _, p := range allPrivileges {
			if strings.HasPrefix(p.Code, "user:") {
				continue
			}
			adminPrivileges = append(adminPrivileges, p)
		}
		db.Model(adminRole).Association("Privileges").Replace(adminPrivileges)
		logger.L().Info("ADMIN role assigned limited privileges")
	}

	// STAFF gets the view/create subset
	staffRole, err := roleRepo.FindByCode(model.RoleStaff)
	if err == nil && len(staffRole.Privileges) == 0 {
		staffPrivileges, _ := privilegeRepo.FindByCodes(model.StaffPrivileges)
		db.Model(staffRole).Association("Privileges").Replace(staffPrivileges)
		logger.L().Info("STAFF role assigned limited privileges")
	}
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
