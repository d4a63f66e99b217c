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

	approveEventHandler "github.com/dormclub/ReservationService/internal/api/handlers/approve_event"
	approveUpdateTimeHandler "github.com/dormclub/ReservationService/internal/api/handlers/approve_update_time"
	cancelEventHandler "github.com/dormclub/ReservationService/internal/api/handlers/cancel_event"
	checkAvailabilityHandler "github.com/dormclub/ReservationService/internal/api/handlers/check_availability"
	createCalendarHandler "github.com/dormclub/ReservationService/internal/api/handlers/create_calendar"
	createEventHandler "github.com/dormclub/ReservationService/internal/api/handlers/create_event"
	createMiniServiceHandler "github.com/dormclub/ReservationService/internal/api/handlers/create_mini_service"
	createServiceHandler "github.com/dormclub/ReservationService/internal/api/handlers/create_service"
	deleteCalendarHandler "github.com/dormclub/ReservationService/internal/api/handlers/delete_calendar"
	deleteServiceHandler "github.com/dormclub/ReservationService/internal/api/handlers/delete_service"
	getCalendarHandler "github.com/dormclub/ReservationService/internal/api/handlers/get_calendar"
	getEventHandler "github.com/dormclub/ReservationService/internal/api/handlers/get_event"
	getMiniServicesHandler "github.com/dormclub/ReservationService/internal/api/handlers/get_mini_services"
	getServiceHandler "github.com/dormclub/ReservationService/internal/api/handlers/get_service"
	getServiceCalendarsHandler "github.com/dormclub/ReservationService/internal/api/handlers/get_service_calendars"
	getServiceEventsHandler "github.com/dormclub/ReservationService/internal/api/handlers/get_service_events"
	getServicesHandler "github.com/dormclub/ReservationService/internal/api/handlers/get_services"
	getUserEventsHandler "github.com/dormclub/ReservationService/internal/api/handlers/get_user_events"
	requestUpdateTimeHandler "github.com/dormclub/ReservationService/internal/api/handlers/request_update_time"
	restoreCalendarHandler "github.com/dormclub/ReservationService/internal/api/handlers/restore_calendar"
	updateCalendarHandler "github.com/dormclub/ReservationService/internal/api/handlers/update_calendar"
	"github.com/dormclub/ReservationService/internal/api/middleware"
	"github.com/dormclub/ReservationService/internal/config"
	calendarRepo "github.com/dormclub/ReservationService/internal/infra/storage/calendar"
	catalogRepo "github.com/dormclub/ReservationService/internal/infra/storage/catalog"
	eventRepo "github.com/dormclub/ReservationService/internal/infra/storage/event"
	accessCardClient "github.com/dormclub/ReservationService/internal/integrations/accesscard"
	mailerClient "github.com/dormclub/ReservationService/internal/integrations/mailer"
	memberAPIClient "github.com/dormclub/ReservationService/internal/integrations/memberapi"
	scheduleClient "github.com/dormclub/ReservationService/internal/integrations/schedule"
	calendarsService "github.com/dormclub/ReservationService/internal/service/calendars"
	catalogService "github.com/dormclub/ReservationService/internal/service/catalog"
	eventsService "github.com/dormclub/ReservationService/internal/service/events"
	checkAvailabilityUC "github.com/dormclub/ReservationService/internal/usecase/check_availability"
	createEventUC "github.com/dormclub/ReservationService/internal/usecase/create_event"
	"github.com/dormclub/ReservationService/pkg/dbmetrics"
	"github.com/dormclub/ReservationService/pkg/logger"
	"github.com/dormclub/ReservationService/pkg/metrics"
	"github.com/dormclub/ReservationService/pkg/simpletxmanager"
	"github.com/dormclub/ReservationService/pkg/txmanager"
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

	log.Info("Starting ReservationService...")
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
	schedule := scheduleClient.NewClient(
		cfg.Schedule.URL,
		time.Duration(cfg.Schedule.Timeout)*time.Second,
		log,
	)
	members := memberAPIClient.NewClient(
		cfg.MemberAPI.URL,
		time.Duration(cfg.MemberAPI.Timeout)*time.Second,
		log,
	)
	accessCards := accessCardClient.NewClient(
		cfg.AccessCard.URL,
		time.Duration(cfg.AccessCard.Timeout)*time.Second,
		log,
	)
	mail := mailerClient.NewClient(
		cfg.Mail.URL,
		time.Duration(cfg.Mail.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (Schedule=%s, MemberAPI=%s, AccessCard=%s, Mail=%s)",
		cfg.Schedule.URL, cfg.MemberAPI.URL, cfg.AccessCard.URL, cfg.Mail.URL)

	// Инициализируем репозитории (с метриками или без)
	var (
		eventRepository    *eventRepo.Repository
		calendarRepository *calendarRepo.Repository
		catalogRepository  *catalogRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		eventRepository = eventRepo.NewRepository(wrappedDB)
		calendarRepository = calendarRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		eventRepository = eventRepo.NewRepository(db)
		calendarRepository = calendarRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	eventsSvc := eventsService.NewService(
		eventRepository,
		calendarRepository,
		catalogRepository,
		schedule,
		members,
		accessCards,
		mail,
		log,
	)
	calendarsSvc := calendarsService.NewService(
		calendarRepository,
		catalogRepository,
		members,
		txMgr,
		log,
	)
	catalogSvc := catalogService.NewService(
		catalogRepository,
		members,
		log,
	)

	// Инициализируем use cases
	createEventUseCase := createEventUC.NewUseCase(
		eventRepository,
		calendarRepository,
		catalogRepository,
		schedule,
		members,
		accessCards,
		mail,
		txMgr,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		calendarRepository,
		catalogRepository,
		schedule,
		members,
		log,
	)

	// Инициализируем handlers
	createEvent := createEventHandler.NewHandler(createEventUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getEvent := getEventHandler.NewHandler(eventsSvc, log)
	getUserEvents := getUserEventsHandler.NewHandler(eventsSvc, log)
	getServiceEvents := getServiceEventsHandler.NewHandler(eventsSvc, log)
	cancelEvent := cancelEventHandler.NewHandler(eventsSvc, log)
	approveEvent := approveEventHandler.NewHandler(eventsSvc, log)
	requestUpdateTime := requestUpdateTimeHandler.NewHandler(eventsSvc, log)
	approveUpdateTime := approveUpdateTimeHandler.NewHandler(eventsSvc, log)
	createCalendar := createCalendarHandler.NewHandler(calendarsSvc, log)
	getCalendar := getCalendarHandler.NewHandler(calendarsSvc, log)
	getServiceCalendars := getServiceCalendarsHandler.NewHandler(calendarsSvc, log)
	updateCalendar := updateCalendarHandler.NewHandler(calendarsSvc, log)
	deleteCalendar := deleteCalendarHandler.NewHandler(calendarsSvc, log)
	restoreCalendar := restoreCalendarHandler.NewHandler(calendarsSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	getServices := getServicesHandler.NewHandler(catalogSvc, log)
	getService := getServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)
	createMiniService := createMiniServiceHandler.NewHandler(catalogSvc, log)
	getMiniServices := getMiniServicesHandler.NewHandler(catalogSvc, log)

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

	// Каталог сервисов бронирования
	api.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceAlias}", getService.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/mini-services", getMiniServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/calendars", getServiceCalendars.Handle).Methods(http.MethodGet)

	// Календари
	api.HandleFunc("/calendars/{calendarId}", getCalendar.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- События ---
	// Создание события бронирования
	protected.HandleFunc("/events", createEvent.Handle).Methods(http.MethodPost)

	// Проверка доступности слота без создания события
	protected.HandleFunc("/events/check", checkAvailability.Handle).Methods(http.MethodPost)

	// Получение события по ID
	protected.HandleFunc("/events/{eventId}", getEvent.Handle).Methods(http.MethodGet)

	// Отмена события
	protected.HandleFunc("/events/{eventId}/cancel", cancelEvent.Handle).Methods(http.MethodPatch)

	// Подтверждение события менеджером
	protected.HandleFunc("/events/{eventId}/approve", approveEvent.Handle).Methods(http.MethodPatch)

	// Запрос и подтверждение переноса времени
	protected.HandleFunc("/events/{eventId}/time", requestUpdateTime.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/events/{eventId}/time/approve", approveUpdateTime.Handle).Methods(http.MethodPatch)

	// История событий участника
	protected.HandleFunc("/users/{userId}/events", getUserEvents.Handle).Methods(http.MethodGet)

	// --- Управление сервисом (для менеджеров) ---
	// Список событий сервиса
	protected.HandleFunc("/services/{alias}/events", getServiceEvents.Handle).Methods(http.MethodGet)

	// Управление календарями
	protected.HandleFunc("/calendars", createCalendar.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/calendars/{calendarId}", updateCalendar.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/calendars/{calendarId}", deleteCalendar.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/calendars/{calendarId}/restore", restoreCalendar.Handle).Methods(http.MethodPatch)

	// --- Каталог (для главы секции и менеджеров) ---
	protected.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/services/{serviceId}/mini-services", createMiniService.Handle).Methods(http.MethodPost)

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
