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

	cancelBookingHandler "github.com/m04kA/SBP-SchedulingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SBP-SchedulingService/internal/api/handlers/create_booking"
	createTimeOffHandler "github.com/m04kA/SBP-SchedulingService/internal/api/handlers/create_time_off"
	deleteTimeOffHandler "github.com/m04kA/SBP-SchedulingService/internal/api/handlers/delete_time_off"
	getBookingHandler "github.com/m04kA/SBP-SchedulingService/internal/api/handlers/get_booking"
	getCombinedAvailabilityHandler "github.com/m04kA/SBP-SchedulingService/internal/api/handlers/get_combined_availability"
	getCustomerBookingsHandler "github.com/m04kA/SBP-SchedulingService/internal/api/handlers/get_customer_bookings"
	getStaffAvailabilityHandler "github.com/m04kA/SBP-SchedulingService/internal/api/handlers/get_staff_availability"
	getStaffBookingsHandler "github.com/m04kA/SBP-SchedulingService/internal/api/handlers/get_staff_bookings"
	listTimeOffHandler "github.com/m04kA/SBP-SchedulingService/internal/api/handlers/list_time_off"
	rescheduleBookingHandler "github.com/m04kA/SBP-SchedulingService/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/m04kA/SBP-SchedulingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SBP-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SBP-SchedulingService/internal/config"
	bookingRepo "github.com/m04kA/SBP-SchedulingService/internal/infra/storage/booking"
	timeoffRepo "github.com/m04kA/SBP-SchedulingService/internal/infra/storage/timeoff"
	customerDirectoryClient "github.com/m04kA/SBP-SchedulingService/internal/integrations/customerdirectory"
	staffDirectoryClient "github.com/m04kA/SBP-SchedulingService/internal/integrations/staffdirectory"
	bookingsService "github.com/m04kA/SBP-SchedulingService/internal/service/bookings"
	timeoffService "github.com/m04kA/SBP-SchedulingService/internal/service/timeoff"
	createBookingUC "github.com/m04kA/SBP-SchedulingService/internal/usecase/create_booking"
	getCombinedAvailabilityUC "github.com/m04kA/SBP-SchedulingService/internal/usecase/get_combined_availability"
	getStaffAvailabilityUC "github.com/m04kA/SBP-SchedulingService/internal/usecase/get_staff_availability"
	rescheduleBookingUC "github.com/m04kA/SBP-SchedulingService/internal/usecase/reschedule_booking"
	completionWorker "github.com/m04kA/SBP-SchedulingService/internal/workers/completion"
	"github.com/m04kA/SBP-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SBP-SchedulingService/pkg/logger"
	"github.com/m04kA/SBP-SchedulingService/pkg/metrics"
	"github.com/m04kA/SBP-SchedulingService/pkg/simpletxmanager"
	"github.com/m04kA/SBP-SchedulingService/pkg/txmanager"
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

	log.Info("Starting SBP-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

	// Тайм-зона бизнеса: в ней трактуются расписания, отгулы и даты бронирований
	location, err := time.LoadLocation(cfg.Business.Timezone)
	if err != nil {
		log.Fatal("Failed to load business timezone %q: %v", cfg.Business.Timezone, err)
	}
	log.Info("Business timezone: %s", location)

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

	// Инициализируем интеграционных клиентов
	staffClient := staffDirectoryClient.NewClient(
		cfg.StaffService.URL,
		time.Duration(cfg.StaffService.Timeout)*time.Second,
		cfg.StaffService.RPS,
		log,
	)
	customerClient := customerDirectoryClient.NewClient(
		cfg.CustomerService.URL,
		time.Duration(cfg.CustomerService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (StaffDirectory=%s timeout=%ds rps=%.0f, CustomerDirectory=%s timeout=%ds)",
		cfg.StaffService.URL, cfg.StaffService.Timeout, cfg.StaffService.RPS,
		cfg.CustomerService.URL, cfg.CustomerService.Timeout)

	// Подключаем Redis кеш справочника (если включен).
	// Без кеша сервис работает, просто каждый расчёт ходит в справочник.
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Error("Redis unavailable, starting without staff directory cache: %v", err)
		} else {
			staffClient.UseRedisCache(redisClient, time.Duration(cfg.Redis.CacheTTL)*time.Second)
			log.Info("Staff directory cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.CacheTTL)
		}
		cancel()
	}

	// Инициализируем репозитории и сервисы (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		timeOffRepository *timeoffRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	// TODO: вынести общий интерфейс в pkg/txmanager, чтобы не объявлять его на месте
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		timeOffRepository = timeoffRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		timeOffRepository = timeoffRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		staffClient,
		log,
	)
	timeOffSvc := timeoffService.NewService(
		timeOffRepository,
		staffClient,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		timeOffRepository,
		staffClient,
		customerClient,
		txMgr,
		location,
		log,
	)

	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		timeOffRepository,
		staffClient,
		txMgr,
		location,
		log,
	)

	getStaffAvailabilityUseCase := getStaffAvailabilityUC.NewUseCase(
		bookingRepository,
		timeOffRepository,
		staffClient,
		location,
		log,
	)

	getCombinedAvailabilityUseCase := getCombinedAvailabilityUC.NewUseCase(
		bookingRepository,
		timeOffRepository,
		staffClient,
		location,
		log,
	)

	// Инициализируем handlers
	getStaffAvailability := getStaffAvailabilityHandler.NewHandler(getStaffAvailabilityUseCase, log)
	getCombinedAvailability := getCombinedAvailabilityHandler.NewHandler(getCombinedAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getStaffBookings := getStaffBookingsHandler.NewHandler(bookingSvc, log)
	createTimeOff := createTimeOffHandler.NewHandler(timeOffSvc, log)
	listTimeOff := listTimeOffHandler.NewHandler(timeOffSvc, log)
	deleteTimeOff := deleteTimeOffHandler.NewHandler(timeOffSvc, log)

	// Запускаем фоновую задачу завершения прошедших бронирований
	worker := completionWorker.New(bookingSvc, cfg.Workers.CompletionSchedule, location, log)
	if err := worker.Start(); err != nil {
		log.Fatal("Failed to start completion worker: %v", err)
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Сквозные middleware: request id и access-лог
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

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

	// Свободные слоты конкретного сотрудника
	api.HandleFunc("/staff/{staffId}/availability",
		getStaffAvailability.Handle).Methods(http.MethodGet)

	// Сводная доступность по услуге: время -> свободные сотрудники
	api.HandleFunc("/availability",
		getCombinedAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования (разовое или серия)
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Перенос бронирования на другое время или к другому сотруднику
	protected.HandleFunc("/bookings/{bookingId}", rescheduleBooking.Handle).Methods(http.MethodPatch)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// Смена статуса бронирования (подтверждение, завершение)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/customers/{customerId}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// --- Управление расписанием (для администраторов) ---
	// Дневной календарь сотрудника
	protected.HandleFunc("/staff/{staffId}/bookings", getStaffBookings.Handle).Methods(http.MethodGet)

	// Отгулы и выходные
	protected.HandleFunc("/time-off", createTimeOff.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/time-off", listTimeOff.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/time-off/{timeOffId}", deleteTimeOff.Handle).Methods(http.MethodDelete)

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

	// Останавливаем фоновую задачу и дожидаемся текущего прогона
	worker.Stop()

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
