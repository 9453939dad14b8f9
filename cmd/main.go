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

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/mudasar10147/sportsarena-backend/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/mudasar10147/sportsarena-backend/internal/api/handlers/complete_booking"
	confirmBookingHandler "github.com/mudasar10147/sportsarena-backend/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/mudasar10147/sportsarena-backend/internal/api/handlers/create_booking"
	expireReservationsHandler "github.com/mudasar10147/sportsarena-backend/internal/api/handlers/expire_reservations"
	getAvailableSlotsHandler "github.com/mudasar10147/sportsarena-backend/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/mudasar10147/sportsarena-backend/internal/api/handlers/get_booking"
	getCourtBookingsHandler "github.com/mudasar10147/sportsarena-backend/internal/api/handlers/get_court_bookings"
	getCourtPolicyHandler "github.com/mudasar10147/sportsarena-backend/internal/api/handlers/get_court_policy"
	getUserBookingsHandler "github.com/mudasar10147/sportsarena-backend/internal/api/handlers/get_user_bookings"
	rejectBookingHandler "github.com/mudasar10147/sportsarena-backend/internal/api/handlers/reject_booking"
	updateCourtPolicyHandler "github.com/mudasar10147/sportsarena-backend/internal/api/handlers/update_court_policy"
	"github.com/mudasar10147/sportsarena-backend/internal/api/middleware"
	"github.com/mudasar10147/sportsarena-backend/internal/config"
	blockedRepo "github.com/mudasar10147/sportsarena-backend/internal/infra/storage/blocked"
	courtRepo "github.com/mudasar10147/sportsarena-backend/internal/infra/storage/court"
	policyRepo "github.com/mudasar10147/sportsarena-backend/internal/infra/storage/policy"
	reservationRepo "github.com/mudasar10147/sportsarena-backend/internal/infra/storage/reservation"
	ruleRepo "github.com/mudasar10147/sportsarena-backend/internal/infra/storage/rule"
	bookingsService "github.com/mudasar10147/sportsarena-backend/internal/service/bookings"
	policyService "github.com/mudasar10147/sportsarena-backend/internal/service/policy"
	createBookingUC "github.com/mudasar10147/sportsarena-backend/internal/usecase/create_booking"
	expirePendingUC "github.com/mudasar10147/sportsarena-backend/internal/usecase/expire_pending"
	getAvailableSlotsUC "github.com/mudasar10147/sportsarena-backend/internal/usecase/get_available_slots"
	"github.com/mudasar10147/sportsarena-backend/pkg/dbmetrics"
	"github.com/mudasar10147/sportsarena-backend/pkg/logger"
	"github.com/mudasar10147/sportsarena-backend/pkg/metrics"
	"github.com/mudasar10147/sportsarena-backend/pkg/simpletxmanager"
	"github.com/mudasar10147/sportsarena-backend/pkg/txmanager"
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

	log.Info("Starting SportsArena booking service...")
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

	// Применяем миграции
	if err := runMigrations(db, cfg.Database.MigrationsPath); err != nil {
		log.Fatal("Failed to run migrations: %v", err)
	}
	log.Info("Database migrations applied")

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		courtRepository       *courtRepo.Repository
		ruleRepository        *ruleRepo.Repository
		blockedRepository     *blockedRepo.Repository
		policyRepository      *policyRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	systemDefaults := cfg.Booking.Defaults()

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		courtRepository = courtRepo.NewRepository(wrappedDB)
		ruleRepository = ruleRepo.NewRepository(wrappedDB)
		blockedRepository = blockedRepo.NewRepository(wrappedDB)
		policyRepository = policyRepo.NewRepository(wrappedDB, systemDefaults)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		courtRepository = courtRepo.NewRepository(db)
		ruleRepository = ruleRepo.NewRepository(db)
		blockedRepository = blockedRepo.NewRepository(db)
		policyRepository = policyRepo.NewRepository(db, systemDefaults)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		reservationRepository,
		courtRepository,
		txMgr,
		log,
	)
	policySvc := policyService.NewService(
		policyRepository,
		courtRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		courtRepository,
		ruleRepository,
		reservationRepository,
		blockedRepository,
		policyRepository,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		courtRepository,
		ruleRepository,
		reservationRepository,
		blockedRepository,
		policyRepository,
		log,
	)

	expirePendingUseCase := expirePendingUC.NewUseCase(
		reservationRepository,
		txMgr,
		log,
		cfg.Booking.ExpireBatchSize,
	)

	// Инициализируем handlers
	var createBookingMetrics createBookingHandler.Metrics
	var expireMetrics expireReservationsHandler.Metrics
	if cfg.Metrics.Enabled {
		createBookingMetrics = metricsCollector
		expireMetrics = metricsCollector
	}

	createBooking := createBookingHandler.NewHandler(createBookingUseCase, createBookingMetrics, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	rejectBooking := rejectBookingHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getCourtBookings := getCourtBookingsHandler.NewHandler(bookingSvc, log)
	getCourtPolicy := getCourtPolicyHandler.NewHandler(policySvc, log)
	updateCourtPolicy := updateCourtPolicyHandler.NewHandler(policySvc, log)
	expireReservations := expireReservationsHandler.NewHandler(expirePendingUseCase, expireMetrics, log)

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

	// Доступные варианты бронирования корта
	api.HandleFunc("/courts/{courtId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Действующая политика бронирования корта
	api.HandleFunc("/courts/{courtId}/policy",
		getCourtPolicy.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{reservationId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования владельцем
	protected.HandleFunc("/bookings/{reservationId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление кортом (операторские endpoints) ---
	// Подтверждение / отклонение / завершение бронирования
	protected.HandleFunc("/bookings/{reservationId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{reservationId}/reject", rejectBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{reservationId}/complete", completeBooking.Handle).Methods(http.MethodPatch)

	// Список бронирований корта
	protected.HandleFunc("/courts/{courtId}/bookings", getCourtBookings.Handle).Methods(http.MethodGet)

	// Переопределение политики корта
	protected.HandleFunc("/courts/{courtId}/policy", updateCourtPolicy.Handle).Methods(http.MethodPut)

	// Ручной запуск чистки просроченных pending
	protected.HandleFunc("/admin/reservations/expire", expireReservations.Handle).Methods(http.MethodPost)

	// Фоновая чистка просроченных pending
	stopSweepCh := make(chan struct{})
	go runSweepLoop(expirePendingUseCase, metricsCollector,
		time.Duration(cfg.Booking.SweepIntervalMinutes)*time.Minute, stopSweepCh, log)
	log.Info("Pending expiration sweep started (interval=%dm, batch=%d)",
		cfg.Booking.SweepIntervalMinutes, cfg.Booking.ExpireBatchSize)

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

	// Останавливаем фоновую чистку
	close(stopSweepCh)

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

// runMigrations применяет миграции из указанной директории
func runMigrations(db *sql.DB, migrationsPath string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"postgres", driver,
	)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// runSweepLoop периодически переводит просроченные pending в expired
func runSweepLoop(
	uc *expirePendingUC.UseCase,
	metricsCollector *metrics.Metrics,
	interval time.Duration,
	stopCh <-chan struct{},
	log *logger.Logger,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			expired, err := uc.Execute(context.Background())
			if err != nil {
				log.Error("Sweep: failed to expire pending reservations: %v", err)
				continue
			}
			if metricsCollector != nil && expired > 0 {
				metricsCollector.AddBookingsExpired("sweep", int(expired))
			}
		case <-stopCh:
			return
		}
	}
}
