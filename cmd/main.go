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

	cancelBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/cancel_booking"
	completedSummaryHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/completed_summary"
	createBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_booking"
	createParkingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_parking"
	deleteBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/delete_booking"
	exitBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/exit_booking"
	getBillHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_bill"
	getBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_booking"
	getIncomingCarsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_incoming_cars"
	getOutgoingCarsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_outgoing_cars"
	getParkingStatusHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_parking_status"
	getPaymentHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_payment"
	getUserBookingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_user_bookings"
	listBookingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/list_bookings"
	listParkingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/list_parkings"
	updateBookingStatusHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/update_booking_status"
	updateParkingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/update_parking"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	parkingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parking"
	paymentRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/payment"
	identityClient "github.com/m04kA/SMC-ParkingService/internal/integrations/identityservice"
	notifyClient "github.com/m04kA/SMC-ParkingService/internal/integrations/notifyservice"
	bookingsService "github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	parkingService "github.com/m04kA/SMC-ParkingService/internal/service/parking"
	paymentsService "github.com/m04kA/SMC-ParkingService/internal/service/payments"
	createBookingUC "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
	exitBookingUC "github.com/m04kA/SMC-ParkingService/internal/usecase/exit_booking"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
	"github.com/m04kA/SMC-ParkingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
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

	log.Info("Starting SMC-ParkingService...")
	log.Info("Configuration loaded from config.toml (approval_mode=%v)", cfg.Service.ApprovalMode)

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
	identity := identityClient.NewClient(
		cfg.IdentityService.URL,
		time.Duration(cfg.IdentityService.Timeout)*time.Second,
		log,
	)
	notifier := notifyClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (IdentityService=%s timeout=%ds, NotifyService=%s timeout=%ds)",
		cfg.IdentityService.URL, cfg.IdentityService.Timeout, cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		parkingRepository *parkingRepo.Repository
		paymentRepository *paymentRepo.Repository
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
		parkingRepository = parkingRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		parkingRepository = parkingRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		log,
	)
	parkingSvc := parkingService.NewService(
		parkingRepository,
		bookingRepository,
		log,
	)
	paymentSvc := paymentsService.NewService(
		paymentRepository,
		bookingRepository,
		parkingRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		parkingRepository,
		notifier,
		cfg.Service.ApprovalMode,
		log,
	)
	exitBookingUseCase := exitBookingUC.NewUseCase(
		bookingRepository,
		parkingRepository,
		paymentRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	exitBooking := exitBookingHandler.NewHandler(exitBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getIncomingCars := getIncomingCarsHandler.NewHandler(bookingSvc, log)
	getOutgoingCars := getOutgoingCarsHandler.NewHandler(bookingSvc, log)
	completedSummary := completedSummaryHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	createParking := createParkingHandler.NewHandler(parkingSvc, log)
	updateParking := updateParkingHandler.NewHandler(parkingSvc, log)
	getParkingStatus := getParkingStatusHandler.NewHandler(parkingSvc, log)
	listParkings := listParkingsHandler.NewHandler(parkingSvc, log)
	getPayment := getPaymentHandler.NewHandler(paymentSvc, log)
	getBill := getBillHandler.NewHandler(paymentSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
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

	// Создание бронирования - публичная точка въезда
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Список парковок и занятость - витрина для водителей
	api.HandleFunc("/parkings", listParkings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/parkings/{parkingId}", getParkingStatus.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (bearer-токен через IdentityService)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(identity, log))

	// ============================================================
	// ADMIN ROUTES (роль admin поверх аутентификации)
	// ============================================================
	// Регистрируются раньше защищенных: фиксированные сегменты
	// (incoming, outgoing) не должны перехватываться {bookingId}

	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireAdmin(log))

	// --- Отчеты ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/incoming", getIncomingCars.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/outgoing", getOutgoingCars.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/completed-summary", completedSummary.Handle).Methods(http.MethodGet)

	// --- Выезд и жизненный цикл бронирований ---
	admin.HandleFunc("/bookings/{bookingId}/exit", exitBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

	// --- Управление парковками ---
	admin.HandleFunc("/parkings", createParking.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/parkings/{parkingId}", updateParking.Handle).Methods(http.MethodPut)

	// --- Бронирования ---
	// Получение бронирования по ID (владелец или администратор)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Платежи и счета ---
	protected.HandleFunc("/payments/{bookingId}", getPayment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/bill", getBill.Handle).Methods(http.MethodGet)

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
