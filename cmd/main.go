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

	cancelBookingHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/get_booking"
	getCreditHistoryHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/get_credit_history"
	getProfileHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/get_profile"
	getScheduleBookingsHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/get_schedule_bookings"
	getUserBookingsHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/get_user_bookings"
	listClassTypesHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/list_class_types"
	listCreditPackagesHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/list_credit_packages"
	listInstructorsHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/list_instructors"
	listSchedulesHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/list_schedules"
	manageClassSchedulesHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/manage_class_schedules"
	manageClassTypesHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/manage_class_types"
	manageCreditsHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/manage_credits"
	manageInstructorsHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/manage_instructors"
	purchaseCreditsHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/purchase_credits"
	registerProfileHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/register_profile"
	"github.com/m04kA/SMC-StudioService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioService/internal/config"
	bookingRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/booking"
	classTypeRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/classtype"
	creditTxRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/credittx"
	instructorRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/instructor"
	profileRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/profile"
	scheduleRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-StudioService/internal/integrations/payments"
	bookingsService "github.com/m04kA/SMC-StudioService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-StudioService/internal/service/catalog"
	ledgerService "github.com/m04kA/SMC-StudioService/internal/service/ledger"
	managementService "github.com/m04kA/SMC-StudioService/internal/service/management"
	profilesService "github.com/m04kA/SMC-StudioService/internal/service/profiles"
	cancelBookingUC "github.com/m04kA/SMC-StudioService/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-StudioService/internal/usecase/create_booking"
	manageCreditsUC "github.com/m04kA/SMC-StudioService/internal/usecase/manage_credits"
	purchaseCreditsUC "github.com/m04kA/SMC-StudioService/internal/usecase/purchase_credits"
	registerProfileUC "github.com/m04kA/SMC-StudioService/internal/usecase/register_profile"
	"github.com/m04kA/SMC-StudioService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioService/pkg/logger"
	"github.com/m04kA/SMC-StudioService/pkg/metrics"
	"github.com/m04kA/SMC-StudioService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-StudioService/pkg/txmanager"
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

	log.Info("Starting SMC-StudioService...")
	log.Info("Configuration loaded from config.toml")

	// Коллектор бизнес-метрик нужен всегда (его используют usecases);
	// HTTP endpoint и обёртка БД включаются флагом конфигурации
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

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

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		profileRepository    *profileRepo.Repository
		bookingRepository    *bookingRepo.Repository
		scheduleRepository   *scheduleRepo.Repository
		classTypeRepository  *classTypeRepo.Repository
		instructorRepository *instructorRepo.Repository
		creditTxRepository   *creditTxRepo.Repository
		txMgr                TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		profileRepository = profileRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		classTypeRepository = classTypeRepo.NewRepository(wrappedDB)
		instructorRepository = instructorRepo.NewRepository(wrappedDB)
		creditTxRepository = creditTxRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		profileRepository = profileRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		classTypeRepository = classTypeRepo.NewRepository(db)
		instructorRepository = instructorRepo.NewRepository(db)
		creditTxRepository = creditTxRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Платёжный шлюз (мок до интеграции с процессингом)
	paymentGateway := payments.NewMockGateway(log)

	// Инициализируем сервисы
	ledgerSvc := ledgerService.NewService(profileRepository, creditTxRepository, txMgr, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		scheduleRepository,
		classTypeRepository,
		instructorRepository,
		profileRepository,
		log,
	)
	catalogSvc := catalogService.NewService(
		classTypeRepository,
		instructorRepository,
		scheduleRepository,
		log,
	)
	profilesSvc := profilesService.NewService(profileRepository, log)
	managementSvc := managementService.NewService(
		classTypeRepository,
		instructorRepository,
		scheduleRepository,
		bookingRepository,
		profileRepository,
		ledgerSvc,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		scheduleRepository,
		classTypeRepository,
		bookingRepository,
		ledgerSvc,
		txMgr,
		metricsCollector,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		profileRepository,
		ledgerSvc,
		txMgr,
		metricsCollector,
		log,
	)
	purchaseCreditsUseCase := purchaseCreditsUC.NewUseCase(
		paymentGateway,
		ledgerSvc,
		metricsCollector,
		log,
	)
	manageCreditsUseCase := manageCreditsUC.NewUseCase(
		profileRepository,
		ledgerSvc,
		metricsCollector,
		log,
	)
	registerProfileUseCase := registerProfileUC.NewUseCase(
		profileRepository,
		ledgerSvc,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	listClassTypes := listClassTypesHandler.NewHandler(catalogSvc, log)
	listInstructors := listInstructorsHandler.NewHandler(catalogSvc, log)
	listSchedules := listSchedulesHandler.NewHandler(catalogSvc, log)
	listCreditPackages := listCreditPackagesHandler.NewHandler(log)
	registerProfile := registerProfileHandler.NewHandler(registerProfileUseCase, log)
	getProfile := getProfileHandler.NewHandler(profilesSvc, log)
	getCreditHistory := getCreditHistoryHandler.NewHandler(ledgerSvc, log)
	purchaseCredits := purchaseCreditsHandler.NewHandler(purchaseCreditsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	manageCredits := manageCreditsHandler.NewHandler(manageCreditsUseCase, log)
	manageClassTypes := manageClassTypesHandler.NewHandler(managementSvc, log)
	manageInstructors := manageInstructorsHandler.NewHandler(managementSvc, log)
	manageClassSchedules := manageClassSchedulesHandler.NewHandler(managementSvc, log)
	getScheduleBookings := getScheduleBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (витрина студии, без аутентификации)
	// ============================================================

	api.HandleFunc("/class-types", listClassTypes.Handle).Methods(http.MethodGet)
	api.HandleFunc("/instructors", listInstructors.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schedules", listSchedules.Handle).Methods(http.MethodGet)
	api.HandleFunc("/credit-packages", listCreditPackages.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Профиль и кредиты ---
	protected.HandleFunc("/profiles", registerProfile.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/profiles/me", getProfile.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/profiles/me/transactions", getCreditHistory.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/credits/purchase", purchaseCredits.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Администрирование (роль проверяется в сервисах) ---
	protected.HandleFunc("/admin/credits", manageCredits.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/admin/class-types", manageClassTypes.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/admin/instructors", manageInstructors.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/admin/schedules", manageClassSchedules.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/admin/schedules/{scheduleId}/bookings", getScheduleBookings.Handle).Methods(http.MethodGet)

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
