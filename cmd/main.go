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

	cancelBookingHandler "github.com/m04kA/SMC-SchedulerService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/SMC-SchedulerService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/SMC-SchedulerService/internal/api/handlers/create_booking"
	createSlotHandler "github.com/m04kA/SMC-SchedulerService/internal/api/handlers/create_slot"
	deleteSlotHandler "github.com/m04kA/SMC-SchedulerService/internal/api/handlers/delete_slot"
	getAppointmentTypesHandler "github.com/m04kA/SMC-SchedulerService/internal/api/handlers/get_appointment_types"
	getBookingHandler "github.com/m04kA/SMC-SchedulerService/internal/api/handlers/get_booking"
	getHostBookingsHandler "github.com/m04kA/SMC-SchedulerService/internal/api/handlers/get_host_bookings"
	listSlotsHandler "github.com/m04kA/SMC-SchedulerService/internal/api/handlers/list_slots"
	"github.com/m04kA/SMC-SchedulerService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulerService/internal/config"
	typeRepo "github.com/m04kA/SMC-SchedulerService/internal/infra/storage/appointmenttype"
	bookingRepo "github.com/m04kA/SMC-SchedulerService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-SchedulerService/internal/infra/storage/slot"
	notifierClient "github.com/m04kA/SMC-SchedulerService/internal/integrations/notifier"
	typesService "github.com/m04kA/SMC-SchedulerService/internal/service/appointmenttypes"
	bookingsService "github.com/m04kA/SMC-SchedulerService/internal/service/bookings"
	slotsService "github.com/m04kA/SMC-SchedulerService/internal/service/slots"
	"github.com/m04kA/SMC-SchedulerService/internal/sweeper"
	checkAvailabilityUC "github.com/m04kA/SMC-SchedulerService/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/SMC-SchedulerService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SchedulerService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulerService/pkg/logger"
	"github.com/m04kA/SMC-SchedulerService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulerService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-SchedulerService/pkg/txmanager"
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

	log.Info("Starting SMC-SchedulerService...")
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

	// Инициализируем клиента NotificationService
	notifier := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	log.Info("Notification client initialized (NotificationService=%s timeout=%ds)",
		cfg.Notifier.URL, cfg.Notifier.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository    *slotRepo.Repository
		bookingRepository *bookingRepo.Repository
		typeRepository    *typeRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		typeRepository = typeRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		typeRepository = typeRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	slotsSvc := slotsService.NewService(
		slotRepository,
		cfg.Scheduler.SlotGranularityMinutes,
		log,
	)
	bookingsSvc := bookingsService.NewService(
		bookingRepository,
		slotRepository,
		notifier,
		txMgr,
		log,
	)
	typesSvc := typesService.NewService(typeRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		typeRepository,
		notifier,
		txMgr,
		cfg.Scheduler.SlotGranularityMinutes,
		log,
	)

	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		slotRepository,
		typeRepository,
		cfg.Scheduler.SlotGranularityMinutes,
		log,
	)

	// Инициализируем handlers
	createSlot := createSlotHandler.NewHandler(slotsSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotsSvc, log)
	listSlots := listSlotsHandler.NewHandler(slotsSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingsSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingsSvc, log)
	getHostBookings := getHostBookingsHandler.NewHandler(bookingsSvc, log)
	getAppointmentTypes := getAppointmentTypesHandler.NewHandler(typesSvc, log)

	// Запускаем фоновую очистку устаревших слотов
	slotSweeper := sweeper.New(
		slotRepository,
		cfg.Scheduler.RetentionDays,
		cfg.Scheduler.SweepSchedule,
		log,
	)
	if err := slotSweeper.Start(); err != nil {
		log.Fatal("Failed to start sweeper: %v", err)
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
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

	// Справочник типов встреч
	api.HandleFunc("/appointment-types", getAppointmentTypes.Handle).Methods(http.MethodGet)

	// Просмотр слотов хоста
	api.HandleFunc("/hosts/{hostId}/slots", listSlots.Handle).Methods(http.MethodGet)

	// Проверка доступности окна (справочная)
	api.HandleFunc("/hosts/{hostId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Инвентарь слотов ---
	// Создание слота
	protected.HandleFunc("/hosts/{hostId}/slots", createSlot.Handle).Methods(http.MethodPost)

	// Удаление свободного слота
	protected.HandleFunc("/slots/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования (идемпотентная)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Бронирования хоста
	protected.HandleFunc("/hosts/{hostId}/bookings", getHostBookings.Handle).Methods(http.MethodGet)

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

	// Останавливаем фоновую очистку
	slotSweeper.Stop()

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
