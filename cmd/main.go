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

	assignPendingHandler "github.com/m04kA/SMC-PartnerAssignment/internal/api/handlers/assign_pending"
	autoAssignHandler "github.com/m04kA/SMC-PartnerAssignment/internal/api/handlers/auto_assign"
	bookingLifecycleHandler "github.com/m04kA/SMC-PartnerAssignment/internal/api/handlers/booking_lifecycle"
	createBookingHandler "github.com/m04kA/SMC-PartnerAssignment/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/SMC-PartnerAssignment/internal/api/handlers/get_booking"
	manualAssignHandler "github.com/m04kA/SMC-PartnerAssignment/internal/api/handlers/manual_assign"
	partnersHandler "github.com/m04kA/SMC-PartnerAssignment/internal/api/handlers/partners"
	"github.com/m04kA/SMC-PartnerAssignment/internal/api/middleware"
	"github.com/m04kA/SMC-PartnerAssignment/internal/config"
	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
	bookingRepo "github.com/m04kA/SMC-PartnerAssignment/internal/infra/storage/booking"
	notificationRepo "github.com/m04kA/SMC-PartnerAssignment/internal/infra/storage/notification"
	partnerRepo "github.com/m04kA/SMC-PartnerAssignment/internal/infra/storage/partner"
	"github.com/m04kA/SMC-PartnerAssignment/internal/integrations/notifications"
	"github.com/m04kA/SMC-PartnerAssignment/internal/integrations/pushgateway"
	"github.com/m04kA/SMC-PartnerAssignment/internal/jobs"
	"github.com/m04kA/SMC-PartnerAssignment/internal/service/assignment"
	bookingsService "github.com/m04kA/SMC-PartnerAssignment/internal/service/bookings"
	"github.com/m04kA/SMC-PartnerAssignment/internal/service/conflicts"
	"github.com/m04kA/SMC-PartnerAssignment/internal/service/matching"
	partnersService "github.com/m04kA/SMC-PartnerAssignment/internal/service/partners"
	assignBookingUC "github.com/m04kA/SMC-PartnerAssignment/internal/usecase/assign_booking"
	assignPendingUC "github.com/m04kA/SMC-PartnerAssignment/internal/usecase/assign_pending"
	createBookingUC "github.com/m04kA/SMC-PartnerAssignment/internal/usecase/create_booking"
	manualAssignUC "github.com/m04kA/SMC-PartnerAssignment/internal/usecase/manual_assign"
	"github.com/m04kA/SMC-PartnerAssignment/pkg/dbmetrics"
	"github.com/m04kA/SMC-PartnerAssignment/pkg/logger"
	"github.com/m04kA/SMC-PartnerAssignment/pkg/metrics"
	"github.com/m04kA/SMC-PartnerAssignment/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("SMC_CONFIG_PATH"); p != "" {
		configPath = p
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

	log.Info("Starting SMC-PartnerAssignment...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
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

	// Без метрик обёртка работает как прозрачный прокси
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	partnerRepository := partnerRepo.NewRepository(wrappedDB)
	notificationRepository := notificationRepo.NewRepository(wrappedDB)

	// Инициализируем доставку уведомлений
	sinks := []notifications.Sink{notifications.NewStoreSink(notificationRepository)}

	var brokerConn *notifications.Connection
	if cfg.Notifications.RabbitMQ.Enabled {
		brokerConn, err = notifications.Dial(cfg.Notifications.RabbitMQ.URL, cfg.Notifications.RabbitMQ.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer brokerConn.Close()

		sinks = append(sinks, notifications.NewBrokerSink(brokerConn.Channel(), cfg.Notifications.RabbitMQ.Exchange))
		log.Info("RabbitMQ notification sink enabled (exchange=%s)", cfg.Notifications.RabbitMQ.Exchange)
	}

	if cfg.Notifications.Push.Enabled {
		pushClient := pushgateway.NewClient(
			cfg.Notifications.Push.URL,
			time.Duration(cfg.Notifications.Push.Timeout)*time.Second,
			log,
		)
		sinks = append(sinks, notifications.NewPushSink(pushClient))
		log.Info("Push notification sink enabled (url=%s timeout=%ds)",
			cfg.Notifications.Push.URL, cfg.Notifications.Push.Timeout)
	}

	dispatcher := notifications.NewDispatcher(
		cfg.Notifications.QueueSize,
		time.Duration(cfg.Notifications.DeliverTimeout)*time.Second,
		metricsCollector,
		log,
		sinks...,
	)
	dispatcher.Start()

	// Инициализируем сервисы
	jobDuration := cfg.Assignment.JobDuration()

	conflictChecker := conflicts.NewChecker(bookingRepository, jobDuration)
	matcher := matching.NewMatcher(
		partnerRepository,
		conflictChecker,
		matching.Config{MaxRadiusKm: cfg.Assignment.MaxRadiusKm, JobDuration: jobDuration},
		log,
	)
	committer := assignment.NewCommitter(
		bookingRepository,
		partnerRepository,
		conflictChecker,
		dispatcher,
		txMgr,
		jobDuration,
		log,
	)
	bookingSvc := bookingsService.NewService(bookingRepository, dispatcher, log)
	partnerSvc := partnersService.NewService(partnerRepository, dispatcher, log)

	// Инициализируем use cases
	assignBookingUseCase := assignBookingUC.NewUseCase(bookingRepository, matcher, committer, metricsCollector, log)
	assignPendingUseCase := assignPendingUC.NewUseCase(bookingRepository, assignBookingUseCase, log)
	manualAssignUseCase := manualAssignUC.NewUseCase(committer, metricsCollector, log)
	createBookingUseCase := createBookingUC.NewUseCase(bookingRepository, assignBookingUseCase, dispatcher, log)

	// Периодическое назначение pending бронирований
	scheduler := jobs.NewScheduler(log)
	if cfg.Scheduler.AssignPendingEnabled {
		job := jobs.NewAssignPendingJob(assignPendingUseCase, cfg.Assignment.BulkBatchSize, log)
		if err := scheduler.AddJob(job, cfg.Scheduler.Interval()); err != nil {
			log.Fatal("Failed to register scheduled job: %v", err)
		}
	}
	scheduler.Start()

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	autoAssign := autoAssignHandler.NewHandler(assignBookingUseCase, log)
	manualAssign := manualAssignHandler.NewHandler(manualAssignUseCase, log)
	assignPending := assignPendingHandler.NewHandler(assignPendingUseCase, log)
	lifecycle := bookingLifecycleHandler.NewHandler(bookingSvc, log)
	partners := partnersHandler.NewHandler(partnerSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix, все маршруты требуют X-User-ID
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// ============================================================
	// ADMIN ROUTES
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireRole(domain.RoleAdmin))

	// --- Назначение партнёров ---
	admin.HandleFunc("/bookings/assign-pending", assignPending.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId}/auto-assign", autoAssign.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId}/assign", manualAssign.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/bookings/{bookingId}/unassign", lifecycle.HandleUnassign).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}/cancel", lifecycle.HandleCancel).Methods(http.MethodPatch)

	// --- Управление партнёрами ---
	admin.HandleFunc("/partners", partners.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/partners/{partnerId}", partners.HandleGet).Methods(http.MethodGet)
	admin.HandleFunc("/partners/{partnerId}/approve", partners.HandleApprove).Methods(http.MethodPut)
	admin.HandleFunc("/partners/{partnerId}/deactivate", partners.HandleDeactivate).Methods(http.MethodPut)

	// ============================================================
	// CUSTOMER / PARTNER ROUTES
	// ============================================================

	customerOnly := middleware.RequireRole(domain.RoleCustomer)
	partnerOnly := middleware.RequireRole(domain.RolePartner)

	// --- Бронирования ---
	api.Handle("/bookings", middleware.RequireRole(domain.RoleAdmin, domain.RoleCustomer)(
		http.HandlerFunc(createBooking.Handle))).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.Handle("/bookings/{bookingId}/rate", customerOnly(http.HandlerFunc(lifecycle.HandleRate))).Methods(http.MethodPut)
	api.Handle("/bookings/{bookingId}/work-started", partnerOnly(http.HandlerFunc(lifecycle.HandleStartWork))).Methods(http.MethodPut)
	api.Handle("/bookings/{bookingId}/work-completed", partnerOnly(http.HandlerFunc(lifecycle.HandleCompleteWork))).Methods(http.MethodPut)

	// --- Партнёр ---
	api.Handle("/partners/me/availability", partnerOnly(http.HandlerFunc(partners.HandleAvailability))).Methods(http.MethodPut)
	api.Handle("/partners/me/location", partnerOnly(http.HandlerFunc(partners.HandleLocation))).Methods(http.MethodPut)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	scheduler.Stop()

	// Доставляем уведомления, уже стоящие в очереди
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.Warn("Notification dispatcher did not drain: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
