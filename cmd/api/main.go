package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lumenstudio/lumen-api/internal/config"
	"github.com/lumenstudio/lumen-api/internal/domain/admin"
	"github.com/lumenstudio/lumen-api/internal/domain/announcement"
	"github.com/lumenstudio/lumen-api/internal/domain/auth"
	"github.com/lumenstudio/lumen-api/internal/domain/booking"
	"github.com/lumenstudio/lumen-api/internal/domain/catalog"
	"github.com/lumenstudio/lumen-api/internal/domain/contact"
	"github.com/lumenstudio/lumen-api/internal/domain/customer"
	"github.com/lumenstudio/lumen-api/internal/domain/location"
	"github.com/lumenstudio/lumen-api/internal/domain/notify"
	"github.com/lumenstudio/lumen-api/internal/domain/settings"
	"github.com/lumenstudio/lumen-api/internal/domain/staff"
	"github.com/lumenstudio/lumen-api/internal/domain/user"
	"github.com/lumenstudio/lumen-api/internal/middleware"
	"github.com/lumenstudio/lumen-api/internal/pkg/database"
	"github.com/lumenstudio/lumen-api/internal/pkg/email"
	"github.com/lumenstudio/lumen-api/internal/pkg/jwt"
	"github.com/lumenstudio/lumen-api/internal/pkg/response"
	"github.com/lumenstudio/lumen-api/internal/pkg/robokassa"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Lumen Studio API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	mailer := email.NewService(email.NewResendClient(email.ResendConfig{
		APIKey: cfg.ResendAPIKey,
		From:   cfg.EmailFrom,
	}))
	defer mailer.Close()

	hashAlgo, err := robokassa.NormalizeHashAlgorithm(cfg.RoboKassaHashAlgo)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid ROBOKASSA_HASH_ALGO")
	}
	gatewayConfig := robokassa.Config{
		MerchantLogin: cfg.RoboKassaMerchantLogin,
		Password1:     cfg.RoboKassaPassword1,
		Password2:     cfg.RoboKassaPassword2,
		TestMode:      cfg.RoboKassaTestMode,
		HashAlgo:      hashAlgo,
		SuccessURL:    cfg.BackendURL + "/webhooks/robokassa/success",
		FailURL:       cfg.BackendURL + "/webhooks/robokassa/fail",
	}
	gateway := robokassa.NewClient(gatewayConfig)

	// ---------- Admin event feed ----------
	eventHub := notify.NewHub(redisClient)
	go eventHub.Run()
	defer eventHub.Shutdown()

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	settingsRepo := settings.NewRepository(db)
	catalogRepo := catalog.NewRepository(db)
	locationRepo := location.NewRepository(db)
	staffRepo := staff.NewRepository(db)
	customerRepo := customer.NewRepository(db)
	announcementRepo := announcement.NewRepository(db)
	contactRepo := contact.NewRepository(db)
	bookingRepo := booking.NewRepository(db)

	// ---------- Services ----------
	authService := auth.NewService(userRepo, jwtService, auth.NewRedisTokenStore(redisClient))
	settingsService := settings.NewService(settingsRepo, redisClient)
	bookingService := booking.NewService(
		bookingRepo,
		catalogRepo,
		locationRepo,
		customerRepo,
		settingsService,
		gateway,
		gatewayConfig,
		mailer,
		eventHub,
		cfg.Location(),
	)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	settingsHandler := settings.NewHandler(settingsService)
	catalogHandler := catalog.NewHandler(catalogRepo)
	locationHandler := location.NewHandler(locationRepo)
	staffHandler := staff.NewHandler(staffRepo)
	announcementHandler := announcement.NewHandler(announcementRepo)
	feedHandler := notify.NewHandler(eventHub, jwtService, cfg.AllowedOrigins)

	customerHandler, err := customer.NewHandler(customerRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build customer handler")
	}
	contactHandler, err := contact.NewHandler(contactRepo, mailer, eventHub)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build contact handler")
	}
	bookingHandler, err := booking.NewHandler(bookingService, cfg.FrontendURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build booking handler")
	}
	adminHandler := admin.NewHandler(bookingService, contactRepo, customerRepo)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Public site
		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/", catalogHandler.PublicRoutes())
		r.Mount("/locations", locationHandler.PublicRoutes())
		r.Mount("/staff", staffHandler.PublicRoutes())
		r.Mount("/announcements", announcementHandler.PublicRoutes())
		r.Mount("/contact", contactHandler.PublicRoutes())
		r.Mount("/bookings", bookingHandler.PublicRoutes())

		// Back office
		r.Route("/admin", func(r chi.Router) {
			r.Mount("/dashboard", adminHandler.Routes(authMiddleware))
			r.Mount("/settings", settingsHandler.Routes(authMiddleware))
			r.Mount("/catalog", catalogHandler.AdminRoutes(authMiddleware))
			r.Mount("/locations", locationHandler.AdminRoutes(authMiddleware))
			r.Mount("/staff", staffHandler.AdminRoutes(authMiddleware))
			r.Mount("/customers", customerHandler.AdminRoutes(authMiddleware))
			r.Mount("/announcements", announcementHandler.AdminRoutes(authMiddleware))
			r.Mount("/messages", contactHandler.AdminRoutes(authMiddleware))
			r.Mount("/bookings", bookingHandler.AdminRoutes(authMiddleware))
			r.Mount("/events", feedHandler.Routes())
		})
	})

	r.Mount("/webhooks/robokassa", bookingHandler.WebhookRoutes())

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}
