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

	cancelBookingHandler "github.com/m04kA/CourtBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/CourtBookingService/internal/api/handlers/create_booking"
	finishBookingHandler "github.com/m04kA/CourtBookingService/internal/api/handlers/finish_booking"
	getAvailabilityHandler "github.com/m04kA/CourtBookingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/CourtBookingService/internal/api/handlers/get_booking"
	getProviderReportHandler "github.com/m04kA/CourtBookingService/internal/api/handlers/get_provider_report"
	getUserBookingsHandler "github.com/m04kA/CourtBookingService/internal/api/handlers/get_user_bookings"
	getVenueBookingsHandler "github.com/m04kA/CourtBookingService/internal/api/handlers/get_venue_bookings"
	getVenueReportHandler "github.com/m04kA/CourtBookingService/internal/api/handlers/get_venue_report"
	getVenueScheduleHandler "github.com/m04kA/CourtBookingService/internal/api/handlers/get_venue_schedule"
	updateVenueScheduleHandler "github.com/m04kA/CourtBookingService/internal/api/handlers/update_venue_schedule"
	"github.com/m04kA/CourtBookingService/internal/api/middleware"
	"github.com/m04kA/CourtBookingService/internal/config"
	bookingRepo "github.com/m04kA/CourtBookingService/internal/infra/storage/booking"
	venueRepo "github.com/m04kA/CourtBookingService/internal/infra/storage/venue"
	notifyServiceClient "github.com/m04kA/CourtBookingService/internal/integrations/notifyservice"
	bookingsService "github.com/m04kA/CourtBookingService/internal/service/bookings"
	reportsService "github.com/m04kA/CourtBookingService/internal/service/reports"
	venuesService "github.com/m04kA/CourtBookingService/internal/service/venues"
	createBookingUC "github.com/m04kA/CourtBookingService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/CourtBookingService/internal/usecase/get_availability"
	"github.com/m04kA/CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/CourtBookingService/pkg/logger"
	"github.com/m04kA/CourtBookingService/pkg/metrics"
	"github.com/m04kA/CourtBookingService/pkg/simpletxmanager"
	"github.com/m04kA/CourtBookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting CourtBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиента сервиса уведомлений
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("NotifyService client initialized (url=%s, timeout=%ds)",
		cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		venueRepository   *venueRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		venueRepository = venueRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		venueRepository = venueRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		venueRepository,
		notifyClient,
		log,
	)
	venueSvc := venuesService.NewService(venueRepository, log)
	reportSvc := reportsService.NewService(bookingRepository, venueRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		venueRepository,
		notifyClient,
		txMgr,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		venueRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	finishBooking := finishBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getVenueBookings := getVenueBookingsHandler.NewHandler(bookingSvc, log)
	getVenueSchedule := getVenueScheduleHandler.NewHandler(venueSvc, log)
	updateVenueSchedule := updateVenueScheduleHandler.NewHandler(venueSvc, log)
	getVenueReport := getVenueReportHandler.NewHandler(reportSvc, log)
	getProviderReport := getProviderReportHandler.NewHandler(reportSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расчет доступных слотов площадки на дату
	api.HandleFunc("/venues/{venueId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Расписание площадки
	api.HandleFunc("/venues/{venueId}/schedule",
		getVenueSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Завершение бронирования владельцем площадки
	protected.HandleFunc("/bookings/{bookingId}/complete", finishBooking.HandleComplete).Methods(http.MethodPatch)

	// Фиксация неявки клиента
	protected.HandleFunc("/bookings/{bookingId}/no-show", finishBooking.HandleNoShow).Methods(http.MethodPatch)

	// История бронирований текущего пользователя
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Сводный месячный отчет по всем площадкам текущего пользователя
	protected.HandleFunc("/users/me/reports/monthly", getProviderReport.Handle).Methods(http.MethodGet)

	// --- Управление площадкой (для владельцев) ---
	// Список бронирований площадки
	protected.HandleFunc("/venues/{venueId}/bookings", getVenueBookings.Handle).Methods(http.MethodGet)

	// Полная замена расписания площадки
	protected.HandleFunc("/venues/{venueId}/schedule", updateVenueSchedule.Handle).Methods(http.MethodPut)

	// Месячный отчет по площадке
	protected.HandleFunc("/venues/{venueId}/reports/monthly", getVenueReport.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
