package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	clerk "github.com/clerk/clerk-sdk-go/v2"
	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"habitTrackerAPI/handlers"
	"habitTrackerAPI/internal/config"
	"habitTrackerAPI/internal/logger"
	"habitTrackerAPI/internal/notification"
	"habitTrackerAPI/internal/workers"
	"habitTrackerAPI/middleware"
	"habitTrackerAPI/services"

	_ "net/http/pprof"
)

func newPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = cfg.DBMaxConns
	poolConfig.MinConns = cfg.DBMinConns
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func pushProvider(ctx context.Context, cfg *config.Config) notification.PushProvider {
	fcm, err := notification.NewFCMService(ctx, cfg.FCMCredentialsJSON, cfg.FCMCredentialsFile)
	if err != nil {
		logger.Warn("could not initialize FCM, reminders will only be logged", "error", err)
		return notification.LogProvider{}
	}
	logger.Info("FCM push provider initialized")
	return fcm
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}
	logger.Init(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile, JSON: cfg.LogJSON})
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}

	clerk.SetKey(cfg.ClerkSecretKey)
	logger.Info("clerk initialized")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	dbPool, err := newPool(startCtx, cfg)
	if err != nil {
		cancel()
		logger.Fatal("failed to connect to database", "error", err)
	}
	if err := services.ApplySchema(startCtx, dbPool); err != nil {
		cancel()
		dbPool.Close()
		logger.Fatal("failed to apply schema", "error", err)
	}
	cancel()
	defer func() {
		logger.Info("closing database connection pool")
		dbPool.Close()
	}()
	logger.Info("connected to database", "max_conns", cfg.DBMaxConns)

	middleware.InitPrometheus(services.ReportCollectors()...)

	userService := services.NewUserService(dbPool)
	habitService := services.NewHabitService(dbPool)
	historyService := services.NewHistoryService(dbPool)
	statsService := services.NewStatsService(userService, services.NewEventStore(dbPool))
	reportService := services.NewReportService(dbPool)
	notificationService := services.NewNotificationService(dbPool)

	dispatcher := services.NewNotificationDispatcher(notificationService, pushProvider(ctx, cfg))
	defer dispatcher.Stop()
	workers.NewReminderWorker(notificationService, dispatcher, cfg.ReminderInterval).Start(ctx)

	userHandler := handlers.NewUserHandler(userService)
	habitHandler := handlers.NewHabitHandler(habitService)
	historyHandler := handlers.NewHistoryHandler(historyService)
	statsHandler := handlers.NewStatsHandler(statsService)
	reportHandler := handlers.NewReportHandler(reportService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	webhookHandler, err := handlers.NewWebhookHandler(userService, cfg.ClerkWebhookSecret)
	if err != nil {
		logger.Fatal("invalid webhook configuration", "error", err)
	}

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go rateLimiter.CleanupVisitors(ctx)

	r := mux.NewRouter()
	r.Use(rateLimiter.Middleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(cfg.MetricsUser, cfg.MetricsPass)(promhttp.Handler()))
	r.PathPrefix("/debug/pprof/").Handler(middleware.PprofSecurityMiddleware(cfg.PprofSecret)(http.DefaultServeMux))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := dbPool.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "habit-tracker-api"}`))
	}).Methods("GET")

	r.HandleFunc("/webhooks/clerk", webhookHandler.HandleClerkWebhook).Methods("POST")

	// -------------------------------------------------------------------------
	// PROTECTED ROUTES (REQUIRE AUTH HEADER)
	// -------------------------------------------------------------------------
	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.ClerkAuthMiddleware)

	protected.HandleFunc("/users/me", userHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/users/me", userHandler.UpdateProfile).Methods("PUT")

	protected.HandleFunc("/habits", habitHandler.ListHabits).Methods("GET")
	protected.HandleFunc("/habits", habitHandler.CreateHabit).Methods("POST")
	protected.HandleFunc("/habits/{id}", habitHandler.GetHabit).Methods("GET")
	protected.HandleFunc("/habits/{id}", habitHandler.UpdateHabit).Methods("PUT")
	protected.HandleFunc("/habits/{id}", habitHandler.DeleteHabit).Methods("DELETE")

	protected.HandleFunc("/habit-history", historyHandler.ListHistory).Methods("GET")
	protected.HandleFunc("/habit-history", historyHandler.UpsertHistory).Methods("POST")
	protected.HandleFunc("/habit-history/{id}", historyHandler.DeleteHistory).Methods("DELETE")

	protected.HandleFunc("/dashboard", statsHandler.GetDashboard).Methods("GET")
	protected.HandleFunc("/stats/streak", statsHandler.GetStreak).Methods("GET")
	protected.HandleFunc("/stats/week", statsHandler.GetWeek).Methods("GET")
	protected.HandleFunc("/stats/month", statsHandler.GetMonth).Methods("GET")
	protected.HandleFunc("/stats/trends", statsHandler.GetTrends).Methods("GET")
	protected.HandleFunc("/calendar", statsHandler.GetCalendar).Methods("GET")

	protected.HandleFunc("/reports", reportHandler.CreateReport).Methods("POST")
	protected.HandleFunc("/reports", reportHandler.ListReports).Methods("GET")
	protected.HandleFunc("/reports/{id}", reportHandler.GetReport).Methods("GET")
	protected.HandleFunc("/reports/{id}", reportHandler.UpdateReport).Methods("PATCH")
	protected.HandleFunc("/reports/{id}", reportHandler.DeleteReport).Methods("DELETE")

	protected.HandleFunc("/devices", notificationHandler.RegisterDevice).Methods("POST")

	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Pprof-Secret"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorilllaHandlers.AllowCredentials(),
	)

	port := ":" + cfg.Port
	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting server", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("error starting server", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("server shutdown complete")
}
