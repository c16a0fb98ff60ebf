package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/create_booking"
	customerStandingHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/customer_standing"
	getBookingHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_customer_bookings"
	getDayScheduleHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_day_schedule"
	healthHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/health"
	listProvidersHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/list_providers"
	manageScheduleHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/manage_schedule"
	updateBookingStatusHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/config"
	"github.com/m04kA/SMC-BarberService/internal/infra/noshow"
	appointmentRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/appointment"
	businessRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/business"
	providerRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/provider"
	bookingsService "github.com/m04kA/SMC-BarberService/internal/service/bookings"
	scheduleService "github.com/m04kA/SMC-BarberService/internal/service/schedule"
	createBookingUC "github.com/m04kA/SMC-BarberService/internal/usecase/create_booking"
	getDayScheduleUC "github.com/m04kA/SMC-BarberService/internal/usecase/get_day_schedule"
	listProvidersUC "github.com/m04kA/SMC-BarberService/internal/usecase/list_providers"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/logger"
	"github.com/m04kA/SMC-BarberService/pkg/metrics"
	"github.com/m04kA/SMC-BarberService/pkg/txmanager"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-BarberService...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Location()
	if err != nil {
		log.Fatal("Invalid timezone %q: %v", cfg.Booking.Timezone, err)
	}

	// Метрики. При выключенных метриках collector остается nil, обёртка БД работает как прокси
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)

	// Redis хранит счетчики неявок и блокировки телефонов
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		pingCancel()
		log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Address, err)
	}
	pingCancel()
	log.Info("Successfully connected to redis (address=%s, db=%d)", cfg.Redis.Address, cfg.Redis.DB)

	// Репозитории и инфраструктура
	providerRepository := providerRepo.NewRepository(wrappedDB)
	businessRepository := businessRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)
	noShowTracker := noshow.NewTracker(rdb, cfg.Redis.KeyPrefix)
	clock := &createBookingUC.RealTimeProvider{Location: location}

	// Сервисы
	bookingSvc := bookingsService.NewService(
		appointmentRepository,
		businessRepository,
		noShowTracker,
		txMgr,
		cfg.Booking.PhoneRegion,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		providerRepository,
		businessRepository,
		txMgr,
		log,
	)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		providerRepository,
		businessRepository,
		appointmentRepository,
		noShowTracker,
		txMgr,
		metricsCollector,
		clock,
		cfg.Booking.PhoneRegion,
		log,
	)
	getDayScheduleUseCase := getDayScheduleUC.NewUseCase(
		providerRepository,
		businessRepository,
		appointmentRepository,
		metricsCollector,
		clock,
		log,
	)
	listProvidersUseCase := listProvidersUC.NewUseCase(
		providerRepository,
		businessRepository,
		clock,
		log,
	)

	// Handlers
	listProviders := listProvidersHandler.NewHandler(listProvidersUseCase, log)
	getDaySchedule := getDayScheduleHandler.NewHandler(getDayScheduleUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	customerStanding := customerStandingHandler.NewHandler(bookingSvc, log)
	manageSchedule := manageScheduleHandler.NewHandler(scheduleSvc, log)
	health := healthHandler.NewHandler(map[string]healthHandler.Check{
		"postgres": wrappedDB.PingContext,
		"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}, log)

	// Роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", health.Health).Methods(http.MethodGet)
	r.HandleFunc("/readyz", health.Ready).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// КЛИЕНТ: выбор мастера, расписание дня, запись
	// ============================================================

	api.HandleFunc("/providers", listProviders.Handle).Methods(http.MethodGet)
	api.HandleFunc("/providers/{providerId:[0-9]+}/day-schedule", getDaySchedule.Handle).Methods(http.MethodGet)

	// Создание записи ограничено по частоте на клиента
	var createBookingRoute http.Handler = http.HandlerFunc(createBooking.Handle)
	if cfg.Booking.RateLimitRPS > 0 {
		trustedProxies, err := cfg.Booking.TrustedProxyPrefixes()
		if err != nil {
			log.Fatal("Invalid trusted proxies: %v", err)
		}
		limiter := middleware.NewRateLimiter(cfg.Booking.RateLimitRPS, cfg.Booking.RateLimitBurst, trustedProxies...)
		createBookingRoute = limiter.Middleware(createBookingRoute)
		log.Info("Booking rate limit enabled: rps=%.2f burst=%d", cfg.Booking.RateLimitRPS, cfg.Booking.RateLimitBurst)
	}
	api.Handle("/appointments", createBookingRoute).Methods(http.MethodPost)

	api.HandleFunc("/appointments", getCustomerBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/ref/{referenceCode}", getBooking.HandleByReference).Methods(http.MethodGet)
	api.HandleFunc("/appointments/ref/{referenceCode}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// САЛОН: записи, неявки, расписание мастеров
	// ============================================================

	api.HandleFunc("/appointments/{appointmentId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId:[0-9]+}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	api.HandleFunc("/businesses/{businessId}/customers/{phone}/no-shows", customerStanding.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}/customers/{phone}/no-shows", customerStanding.HandleUnblock).Methods(http.MethodDelete)

	api.HandleFunc("/providers", manageSchedule.HandleCreateProvider).Methods(http.MethodPost)
	api.HandleFunc("/providers/{providerId}/schedule", manageSchedule.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/providers/{providerId}/schedule", manageSchedule.HandleUpdateWorkSettings).Methods(http.MethodPut)
	api.HandleFunc("/providers/{providerId}/schedule-overrides", manageSchedule.HandleSetScheduleOverride).Methods(http.MethodPut)
	api.HandleFunc("/providers/{providerId}/schedule-overrides/{date}", manageSchedule.HandleDeleteScheduleOverride).Methods(http.MethodDelete)
	api.HandleFunc("/providers/{providerId}/location-overrides", manageSchedule.HandleSetLocationOverride).Methods(http.MethodPut)
	api.HandleFunc("/providers/{providerId}/time-off", manageSchedule.HandleAddTimeOff).Methods(http.MethodPost)
	api.HandleFunc("/providers/{providerId}/time-off/{startDate}", manageSchedule.HandleDeleteTimeOff).Methods(http.MethodDelete)
	api.HandleFunc("/providers/{providerId}/blocked-slots", manageSchedule.HandleAddBlockedSlot).Methods(http.MethodPost)
	api.HandleFunc("/providers/{providerId}/blocked-slots/{blockId}", manageSchedule.HandleDeleteBlockedSlot).Methods(http.MethodDelete)
	api.HandleFunc("/providers/{providerId}/services", manageSchedule.HandleReplaceServices).Methods(http.MethodPut)

	// HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
