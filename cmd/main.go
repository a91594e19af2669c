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
	"github.com/robfig/cron/v3"

	approveAbsenceHandler "github.com/m04kA/SMC-ClubScheduleService/internal/api/handlers/approve_absence"
	completeAbsenceHandler "github.com/m04kA/SMC-ClubScheduleService/internal/api/handlers/complete_absence"
	declineMakeupHandler "github.com/m04kA/SMC-ClubScheduleService/internal/api/handlers/decline_makeup"
	getAbsenceHandler "github.com/m04kA/SMC-ClubScheduleService/internal/api/handlers/get_absence"
	getMemberAbsencesHandler "github.com/m04kA/SMC-ClubScheduleService/internal/api/handlers/get_member_absences"
	getSlotAvailabilityHandler "github.com/m04kA/SMC-ClubScheduleService/internal/api/handlers/get_slot_availability"
	rejectAbsenceHandler "github.com/m04kA/SMC-ClubScheduleService/internal/api/handlers/reject_absence"
	runExpirySweepHandler "github.com/m04kA/SMC-ClubScheduleService/internal/api/handlers/run_expiry_sweep"
	selectMakeupHandler "github.com/m04kA/SMC-ClubScheduleService/internal/api/handlers/select_makeup"
	submitAbsenceHandler "github.com/m04kA/SMC-ClubScheduleService/internal/api/handlers/submit_absence"
	"github.com/m04kA/SMC-ClubScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ClubScheduleService/internal/config"
	absenceRepo "github.com/m04kA/SMC-ClubScheduleService/internal/infra/storage/absence"
	overridesRepo "github.com/m04kA/SMC-ClubScheduleService/internal/infra/storage/overrides"
	slotRepo "github.com/m04kA/SMC-ClubScheduleService/internal/infra/storage/slot"
	memberServiceClient "github.com/m04kA/SMC-ClubScheduleService/internal/integrations/memberservice"
	notifyServiceClient "github.com/m04kA/SMC-ClubScheduleService/internal/integrations/notifyservice"
	absencesService "github.com/m04kA/SMC-ClubScheduleService/internal/service/absences"
	scheduleService "github.com/m04kA/SMC-ClubScheduleService/internal/service/schedule"
	expireAbsencesUC "github.com/m04kA/SMC-ClubScheduleService/internal/usecase/expire_absences"
	selectMakeupUC "github.com/m04kA/SMC-ClubScheduleService/internal/usecase/select_makeup"
	submitAbsenceUC "github.com/m04kA/SMC-ClubScheduleService/internal/usecase/submit_absence"
	"github.com/m04kA/SMC-ClubScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClubScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ClubScheduleService/pkg/metrics"
	"github.com/m04kA/SMC-ClubScheduleService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ClubScheduleService/pkg/txmanager"
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

	log.Info("Starting SMC-ClubScheduleService...")
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
	memberClient := memberServiceClient.NewClient(
		cfg.MemberService.URL,
		time.Duration(cfg.MemberService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (MemberService=%s timeout=%ds, NotifyService=%s timeout=%ds)",
		cfg.MemberService.URL, cfg.MemberService.Timeout, cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		absenceRepository   *absenceRepo.Repository
		slotRepository      *slotRepo.Repository
		overridesRepository *overridesRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		absenceRepository = absenceRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		overridesRepository = overridesRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		absenceRepository = absenceRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		overridesRepository = overridesRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(
		slotRepository,
		overridesRepository,
		absenceRepository,
		log,
	)
	absencesSvc := absencesService.NewService(
		absenceRepository,
		notifyClient,
		log,
	)

	// Инициализируем use cases
	submitAbsenceUseCase := submitAbsenceUC.NewUseCase(
		absenceRepository,
		slotRepository,
		memberClient,
		txMgr,
		log,
	)
	selectMakeupUseCase := selectMakeupUC.NewUseCase(
		absenceRepository,
		slotRepository,
		scheduleSvc,
		notifyClient,
		txMgr,
		log,
	)
	expireAbsencesUseCase := expireAbsencesUC.NewUseCase(
		absenceRepository,
		notifyClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	submitAbsence := submitAbsenceHandler.NewHandler(submitAbsenceUseCase, log)
	getAbsence := getAbsenceHandler.NewHandler(absencesSvc, log)
	getMemberAbsences := getMemberAbsencesHandler.NewHandler(absencesSvc, log)
	approveAbsence := approveAbsenceHandler.NewHandler(absencesSvc, log)
	rejectAbsence := rejectAbsenceHandler.NewHandler(absencesSvc, log)
	selectMakeup := selectMakeupHandler.NewHandler(selectMakeupUseCase, log)
	declineMakeup := declineMakeupHandler.NewHandler(absencesSvc, log)
	completeAbsence := completeAbsenceHandler.NewHandler(absencesSvc, log)
	getSlotAvailability := getSlotAvailabilityHandler.NewHandler(scheduleSvc, log)
	runExpirySweep := runExpirySweepHandler.NewHandler(expireAbsencesUseCase, log)

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

	// Проверка, идёт ли занятие слота в конкретную дату
	api.HandleFunc("/slots/{slotId}/availability",
		getSlotAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Заявки о пропуске ---
	// Подача заявки о пропуске занятия
	protected.HandleFunc("/absences", submitAbsence.Handle).Methods(http.MethodPost)

	// Ручной запуск прохода по просроченным заявкам
	protected.HandleFunc("/absences/expiry-sweep", runExpirySweep.Handle).Methods(http.MethodPost)

	// Получение заявки по ID
	protected.HandleFunc("/absences/{absenceId}", getAbsence.Handle).Methods(http.MethodGet)

	// История заявок участника
	protected.HandleFunc("/members/{memberId}/absences", getMemberAbsences.Handle).Methods(http.MethodGet)

	// --- Решения админа ---
	protected.HandleFunc("/absences/{absenceId}/approve", approveAbsence.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/absences/{absenceId}/reject", rejectAbsence.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/absences/{absenceId}/complete", completeAbsence.Handle).Methods(http.MethodPatch)

	// --- Замены ---
	protected.HandleFunc("/absences/{absenceId}/makeup", selectMakeup.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/absences/{absenceId}/decline-makeup", declineMakeup.Handle).Methods(http.MethodPatch)

	// Планировщик прохода по просроченным заявкам
	var sweeper *cron.Cron
	if cfg.Sweep.Enabled {
		sweeper = cron.New()
		_, err := sweeper.AddFunc(cfg.Sweep.Schedule, func() {
			if _, err := expireAbsencesUseCase.Execute(context.Background()); err != nil {
				log.Error("Scheduled expiry sweep failed: %v", err)
			}
		})
		if err != nil {
			log.Fatal("Failed to schedule expiry sweep: %v", err)
		}
		sweeper.Start()
		log.Info("Expiry sweep scheduled: %s", cfg.Sweep.Schedule)
	}

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

	// Останавливаем планировщик и дожидаемся текущего прохода
	if sweeper != nil {
		<-sweeper.Stop().Done()
		log.Info("Expiry sweep scheduler stopped")
	}

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
