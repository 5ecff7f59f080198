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
	"github.com/hibiken/asynq"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelReservationHandler "github.com/m04kA/LRS-RoomReservationService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/LRS-RoomReservationService/internal/api/handlers/create_reservation"
	getAvailabilityHandler "github.com/m04kA/LRS-RoomReservationService/internal/api/handlers/get_availability"
	getUserReservationsHandler "github.com/m04kA/LRS-RoomReservationService/internal/api/handlers/get_user_reservations"
	manageLibrariesHandler "github.com/m04kA/LRS-RoomReservationService/internal/api/handlers/manage_libraries"
	manageRoomsHandler "github.com/m04kA/LRS-RoomReservationService/internal/api/handlers/manage_rooms"
	searchRoomsHandler "github.com/m04kA/LRS-RoomReservationService/internal/api/handlers/search_rooms"
	"github.com/m04kA/LRS-RoomReservationService/internal/api/middleware"
	"github.com/m04kA/LRS-RoomReservationService/internal/config"
	libraryRepo "github.com/m04kA/LRS-RoomReservationService/internal/infra/storage/library"
	reservationRepo "github.com/m04kA/LRS-RoomReservationService/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/LRS-RoomReservationService/internal/infra/storage/room"
	userRepo "github.com/m04kA/LRS-RoomReservationService/internal/infra/storage/user"
	"github.com/m04kA/LRS-RoomReservationService/internal/notifier"
	catalogService "github.com/m04kA/LRS-RoomReservationService/internal/service/catalog"
	reservationsService "github.com/m04kA/LRS-RoomReservationService/internal/service/reservations"
	createReservationUC "github.com/m04kA/LRS-RoomReservationService/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/m04kA/LRS-RoomReservationService/internal/usecase/get_available_slots"
	searchRoomsUC "github.com/m04kA/LRS-RoomReservationService/internal/usecase/search_rooms"
	"github.com/m04kA/LRS-RoomReservationService/pkg/dbmetrics"
	"github.com/m04kA/LRS-RoomReservationService/pkg/logger"
	"github.com/m04kA/LRS-RoomReservationService/pkg/metrics"
	"github.com/m04kA/LRS-RoomReservationService/pkg/simpletxmanager"
	"github.com/m04kA/LRS-RoomReservationService/pkg/txmanager"
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

	log.Info("Starting LRS-RoomReservationService...")
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

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		libraryRepository     *libraryRepo.Repository
		roomRepository        *roomRepo.Repository
		userRepository        *userRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		libraryRepository = libraryRepo.NewRepository(wrappedDB)
		roomRepository = roomRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		libraryRepository = libraryRepo.NewRepository(db)
		roomRepository = roomRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем уведомления о бронированиях.
	// С включенной очередью письма уходят через asynq worker,
	// иначе отправляются синхронно после коммита.
	smtpSender := notifier.NewSMTPSender(cfg.Notifier.SMTP)

	var notifierClient createReservationUC.ConfirmationNotifier
	var notifierWorker *notifier.Worker

	if cfg.Notifier.Enabled {
		redisOpt := asynq.RedisClientOpt{
			Addr:     cfg.Notifier.RedisAddr,
			Password: cfg.Notifier.RedisPassword,
			DB:       cfg.Notifier.RedisDB,
		}

		queueClient := notifier.NewQueueClient(redisOpt, log)
		defer queueClient.Close()
		notifierClient = queueClient

		notifierWorker = notifier.NewWorker(cfg.Notifier, smtpSender, log)
		notifierWorker.Start()
		log.Info("Notification queue worker started (redis=%s, concurrency=%d)",
			cfg.Notifier.RedisAddr, cfg.Notifier.Concurrency)
	} else {
		notifierClient = notifier.NewDirectClient(smtpSender, log)
		log.Info("Notification queue disabled, sending confirmations synchronously")
	}

	timeProvider := reservationsService.RealTimeProvider{}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		roomRepository,
		libraryRepository,
		userRepository,
		timeProvider,
		log,
	)
	catalogSvc := catalogService.NewService(
		libraryRepository,
		roomRepository,
		reservationRepository,
		timeProvider,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		roomRepository,
		libraryRepository,
		userRepository,
		txMgr,
		notifierClient,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		roomRepository,
		libraryRepository,
		log,
	)
	searchRoomsUseCase := searchRoomsUC.NewUseCase(
		reservationRepository,
		roomRepository,
		libraryRepository,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailableSlotsUseCase, log)
	searchRooms := searchRoomsHandler.NewHandler(searchRoomsUseCase, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	manageLibraries := manageLibrariesHandler.NewHandler(catalogSvc, log)
	manageRooms := manageRoomsHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Liveness probe
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные интервалы комнаты на дату
	api.HandleFunc("/rooms/{roomId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Поиск комнат по фильтрам с доступностью
	api.HandleFunc("/search", searchRooms.Handle).Methods(http.MethodGet)

	// Каталог: библиотеки и комнаты (чтение)
	api.HandleFunc("/libraries", manageLibraries.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/libraries/{libraryId}", manageLibraries.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/rooms", manageRooms.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{roomId}", manageRooms.HandleGet).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}", cancelReservation.Handle).Methods(http.MethodDelete)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Администрирование каталога ---
	protected.HandleFunc("/libraries", manageLibraries.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/libraries/{libraryId}", manageLibraries.HandleUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/libraries/{libraryId}", manageLibraries.HandleDelete).Methods(http.MethodDelete)
	protected.HandleFunc("/rooms", manageRooms.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/rooms/{roomId}", manageRooms.HandleUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/rooms/{roomId}", manageRooms.HandleDelete).Methods(http.MethodDelete)

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

	// Останавливаем worker очереди уведомлений
	if notifierWorker != nil {
		notifierWorker.Shutdown()
		log.Info("Notification queue worker stopped")
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
