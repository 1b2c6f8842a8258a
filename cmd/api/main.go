package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"eventrent/internal/config"
	"eventrent/internal/database"
	"eventrent/internal/middleware"
	"eventrent/internal/modules/admin"
	"eventrent/internal/modules/availability"
	"eventrent/internal/modules/hold"
	"eventrent/internal/modules/payment"
	"eventrent/internal/modules/pricing"
	"eventrent/internal/modules/reservation"
	"eventrent/internal/notification"
	"eventrent/internal/pkg/clock"
	jwtsvc "eventrent/internal/pkg/jwt"
	"eventrent/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}

	cfg, err := config.LoadBookingRuntimeConfig()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	clk := clock.NewSystem()

	packRepo := repository.NewPackRepository(db)
	holdRepo := repository.NewHoldRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	paymentEventRepo := repository.NewPaymentEventRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	hub := notification.NewHub()
	defer hub.Close()
	notifService := notification.NewService(hub, clk)
	wsHandler := notification.NewWSHandler(hub, j)

	availabilityService := availability.NewService(holdRepo, reservationRepo, packRepo, clk)
	availabilityHandler := availability.NewHandler(availabilityService)

	pricingService := pricing.NewService(packRepo)

	holdService := hold.NewService(holdRepo, availabilityService, notifService, clk, hold.WithTTL(cfg.HoldTTL))
	holdHandler := hold.NewHandler(holdService)

	reservationService := reservation.NewService(reservationRepo, pricingService, availabilityService, holdService, notifService, clk)
	reservationHandler := reservation.NewHandler(reservationService)

	paymentService := payment.NewService(paymentEventRepo, reservationService, clk, []byte(cfg.WebhookSecret), log.Printf)
	paymentHandler := payment.NewHandler(paymentService)

	adminService := admin.NewService(packRepo, holdRepo, j, clk, cfg.AdminTokenBcryptHash, int64(cfg.JWTAccessTTL.Seconds()))
	adminHandler := admin.NewHandler(adminService)

	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// public
		availabilityHandler.RegisterRoutes(v1)
		holdHandler.RegisterRoutes(v1)
		reservationHandler.RegisterRoutes(v1)
		paymentHandler.RegisterRoutes(v1)
		adminHandler.RegisterPublicRoutes(v1)

		// operator surface
		adminGroup := v1.Group("/admin")
		adminGroup.Use(middleware.JWTAuth(j), middleware.AdminOnly())
		{
			adminHandler.RegisterAdminRoutes(adminGroup)
			reservationHandler.RegisterAdminRoutes(adminGroup)
		}
	}

	r.GET("/ws/admin", wsHandler.HandleWebSocket)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
