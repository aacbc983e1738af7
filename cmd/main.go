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

	cancelBookingHandler "github.com/m04kA/SMC-TutoringService/internal/api/handlers/cancel_booking"
	completeSlotHandler "github.com/m04kA/SMC-TutoringService/internal/api/handlers/complete_slot"
	createDisputeHandler "github.com/m04kA/SMC-TutoringService/internal/api/handlers/create_dispute"
	createOfferHandler "github.com/m04kA/SMC-TutoringService/internal/api/handlers/create_offer"
	createRescheduleHandler "github.com/m04kA/SMC-TutoringService/internal/api/handlers/create_reschedule"
	deleteOfferHandler "github.com/m04kA/SMC-TutoringService/internal/api/handlers/delete_offer"
	finalizeSlotHandler "github.com/m04kA/SMC-TutoringService/internal/api/handlers/finalize_slot"
	getBookingHandler "github.com/m04kA/SMC-TutoringService/internal/api/handlers/get_booking"
	getScheduleHandler "github.com/m04kA/SMC-TutoringService/internal/api/handlers/get_schedule"
	getWeeklyPatternHandler "github.com/m04kA/SMC-TutoringService/internal/api/handlers/get_weekly_pattern"
	listBookingsHandler "github.com/m04kA/SMC-TutoringService/internal/api/handlers/list_bookings"
	putWeeklyPatternHandler "github.com/m04kA/SMC-TutoringService/internal/api/handlers/put_weekly_pattern"
	resolveDisputeHandler "github.com/m04kA/SMC-TutoringService/internal/api/handlers/resolve_dispute"
	respondRescheduleHandler "github.com/m04kA/SMC-TutoringService/internal/api/handlers/respond_reschedule"
	updateOfferHandler "github.com/m04kA/SMC-TutoringService/internal/api/handlers/update_offer"
	"github.com/m04kA/SMC-TutoringService/internal/api/middleware"
	"github.com/m04kA/SMC-TutoringService/internal/config"
	bookingRepo "github.com/m04kA/SMC-TutoringService/internal/infra/storage/booking"
	disputeRepo "github.com/m04kA/SMC-TutoringService/internal/infra/storage/dispute"
	offerRepo "github.com/m04kA/SMC-TutoringService/internal/infra/storage/offer"
	patternRepo "github.com/m04kA/SMC-TutoringService/internal/infra/storage/pattern"
	rescheduleRepo "github.com/m04kA/SMC-TutoringService/internal/infra/storage/reschedule"
	lessonServiceClient "github.com/m04kA/SMC-TutoringService/internal/integrations/lessonservice"
	paymentServiceClient "github.com/m04kA/SMC-TutoringService/internal/integrations/paymentservice"
	bookingsService "github.com/m04kA/SMC-TutoringService/internal/service/bookings"
	disputesService "github.com/m04kA/SMC-TutoringService/internal/service/disputes"
	offersService "github.com/m04kA/SMC-TutoringService/internal/service/offers"
	patternsService "github.com/m04kA/SMC-TutoringService/internal/service/patterns"
	reschedulesService "github.com/m04kA/SMC-TutoringService/internal/service/reschedules"
	completeSlotUC "github.com/m04kA/SMC-TutoringService/internal/usecase/complete_slot"
	createOfferUC "github.com/m04kA/SMC-TutoringService/internal/usecase/create_offer"
	createRescheduleUC "github.com/m04kA/SMC-TutoringService/internal/usecase/create_reschedule"
	getScheduleWindowUC "github.com/m04kA/SMC-TutoringService/internal/usecase/get_schedule_window"
	raiseDisputeUC "github.com/m04kA/SMC-TutoringService/internal/usecase/raise_dispute"
	updateOfferUC "github.com/m04kA/SMC-TutoringService/internal/usecase/update_offer"
	"github.com/m04kA/SMC-TutoringService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TutoringService/pkg/logger"
	"github.com/m04kA/SMC-TutoringService/pkg/metrics"
	"github.com/m04kA/SMC-TutoringService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-TutoringService/pkg/txmanager"
)

// realTimeProvider провайдер времени для production-сборки
type realTimeProvider struct{}

func (p *realTimeProvider) Now() time.Time {
	return time.Now()
}

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

	log.Info("Starting SMC-TutoringService...")
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

	// Инициализируем интеграционных клиентов
	lessonClient := lessonServiceClient.NewClient(
		cfg.LessonService.URL,
		time.Duration(cfg.LessonService.Timeout)*time.Second,
		log,
	)
	paymentClient := paymentServiceClient.NewClient(
		cfg.PaymentService.URL,
		time.Duration(cfg.PaymentService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (LessonService=%s timeout=%ds, PaymentService=%s timeout=%ds)",
		cfg.LessonService.URL, cfg.LessonService.Timeout, cfg.PaymentService.URL, cfg.PaymentService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository    *bookingRepo.Repository
		patternRepository    *patternRepo.Repository
		offerRepository      *offerRepo.Repository
		rescheduleRepository *rescheduleRepo.Repository
		disputeRepository    *disputeRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		patternRepository = patternRepo.NewRepository(wrappedDB)
		offerRepository = offerRepo.NewRepository(wrappedDB)
		rescheduleRepository = rescheduleRepo.NewRepository(wrappedDB)
		disputeRepository = disputeRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		patternRepository = patternRepo.NewRepository(db)
		offerRepository = offerRepo.NewRepository(db)
		rescheduleRepository = rescheduleRepo.NewRepository(db)
		disputeRepository = disputeRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	timeProvider := &realTimeProvider{}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		disputeRepository,
		paymentClient,
		txMgr,
		timeProvider,
		log,
	)
	patternSvc := patternsService.NewService(patternRepository, timeProvider, log)
	offerSvc := offersService.NewService(offerRepository, log)
	rescheduleSvc := reschedulesService.NewService(
		rescheduleRepository,
		bookingRepository,
		txMgr,
		timeProvider,
		log,
	)
	disputeSvc := disputesService.NewService(
		disputeRepository,
		bookingRepository,
		paymentClient,
		txMgr,
		timeProvider,
		log,
	)

	// Инициализируем use cases
	getScheduleWindowUseCase := getScheduleWindowUC.NewUseCase(
		patternRepository,
		bookingRepository,
		offerRepository,
		rescheduleRepository,
		log,
	)
	createOfferUseCase := createOfferUC.NewUseCase(
		patternRepository,
		bookingRepository,
		offerRepository,
		rescheduleRepository,
		lessonClient,
		txMgr,
		log,
	)
	updateOfferUseCase := updateOfferUC.NewUseCase(
		patternRepository,
		bookingRepository,
		offerRepository,
		rescheduleRepository,
		txMgr,
		log,
	)
	completeSlotUseCase := completeSlotUC.NewUseCase(bookingRepository, txMgr, log)
	createRescheduleUseCase := createRescheduleUC.NewUseCase(
		patternRepository,
		bookingRepository,
		offerRepository,
		rescheduleRepository,
		txMgr,
		log,
	)
	raiseDisputeUseCase := raiseDisputeUC.NewUseCase(
		bookingRepository,
		disputeRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getSchedule := getScheduleHandler.NewHandler(getScheduleWindowUseCase, log)
	getWeeklyPattern := getWeeklyPatternHandler.NewHandler(patternSvc, log)
	putWeeklyPattern := putWeeklyPatternHandler.NewHandler(patternSvc, log)
	createOffer := createOfferHandler.NewHandler(createOfferUseCase, log)
	updateOffer := updateOfferHandler.NewHandler(updateOfferUseCase, log)
	deleteOffer := deleteOfferHandler.NewHandler(offerSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	completeSlot := completeSlotHandler.NewHandler(completeSlotUseCase, log)
	createReschedule := createRescheduleHandler.NewHandler(createRescheduleUseCase, log)
	respondReschedule := respondRescheduleHandler.NewHandler(rescheduleSvc, log)
	createDispute := createDisputeHandler.NewHandler(raiseDisputeUseCase, log)
	resolveDispute := resolveDisputeHandler.NewHandler(disputeSvc, log)
	finalizeSlot := finalizeSlotHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

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

	// Сетка доступности репетитора на диапазон дат
	api.HandleFunc("/tutors/{tutorId}/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// Активный шаблон недельной доступности репетитора
	api.HandleFunc("/tutors/{tutorId}/pattern", getWeeklyPattern.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Шаблон доступности ---
	protected.HandleFunc("/tutors/{tutorId}/pattern", putWeeklyPattern.Handle).Methods(http.MethodPut)

	// --- Офферы ---
	protected.HandleFunc("/offers", createOffer.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/offers/{offerId}", updateOffer.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/offers/{offerId}", deleteOffer.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Занятия ---
	protected.HandleFunc("/slots/{slotId}/complete", completeSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/slots/{slotId}/reschedule", createReschedule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/slots/{slotId}/dispute", createDispute.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/slots/{slotId}/finalize", finalizeSlot.Handle).Methods(http.MethodPost)

	// --- Переносы и споры ---
	protected.HandleFunc("/reschedules/{requestId}/respond", respondReschedule.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/disputes/{disputeId}/resolve", resolveDispute.Handle).Methods(http.MethodPost)

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
