package main

import (
	"log"
	"strings"

	"foodcost-backend/internal/auth"
	"foodcost-backend/internal/config"
	"foodcost-backend/internal/cost"
	"foodcost-backend/internal/costing"
	"foodcost-backend/internal/database"
	"foodcost-backend/internal/logger"
	"foodcost-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// .env sadece lokal geliştirme için, yoksa environment kullanılır
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] .env bulunamadı, environment değişkenleri kullanılıyor")
	}

	cfg := config.Load()
	appLogger := logger.New(logger.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		Component: "foodcost",
	})
	database.Init(cfg)

	opts := costing.Options{
		MaxDepth:              cfg.Costing.MaxDepth,
		Parallelism:           cfg.Costing.Parallelism,
		ApplyYieldToPrepItems: cfg.Costing.ApplyYieldToPrepItems,
		Logger:                appLogger.With("component", "costing"),
	}

	registry := prometheus.NewRegistry()
	if cfg.MetricsEnabled {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		opts.Metrics = costing.NewMetrics(registry)
	}

	costHandler := cost.NewHandler(
		costing.GormSnapshot(database.DB, opts),
		cost.Format{MoneyPlaces: cfg.Costing.MoneyPlaces, PercentPlaces: cfg.Costing.PercentPlaces},
		appLogger,
	)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			logger.FromCtx(c, appLogger).Error("Beklenmeyen hata", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	app.Use(logger.RequestLogger(appLogger))

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods: "GET,POST,OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := database.DB.DB()
		if err != nil || sqlDB.PingContext(c.UserContext()) != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Veritabanına ulaşılamıyor")
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if cfg.MetricsEnabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Maliyet uçları (salt okunur)
	costAPI := protected.Group("", auth.RequireRole(models.RoleOrgAdmin, models.RoleOutletManager))
	costHandler.Register(costAPI)

	log.Printf("Sunucu %s portunda başlatılıyor...", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
