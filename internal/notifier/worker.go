package notifier

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"

	"github.com/m04kA/LRS-RoomReservationService/internal/config"
)

// Worker фоновый обработчик очереди уведомлений
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	cfg    config.NotifierConfig
	logger Logger
	stopCh chan struct{}
}

// NewWorker создает воркер очереди подтверждений
func NewWorker(cfg config.NotifierConfig, sender EmailSender, logger Logger) *Worker {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.Concurrency,
		Queues: map[string]int{
			"default": 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReservationConfirmation, handleConfirmationTask(sender, logger))

	return &Worker{
		server: server,
		mux:    mux,
		cfg:    cfg,
		logger: logger,
		stopCh: make(chan struct{}),
	}
}

// Start запускает воркер и монитор соединения с redis в фоне
func (w *Worker) Start() {
	go w.monitorRedisConnection()

	go func() {
		w.logger.Info("Notifier: starting confirmation worker (redis=%s, concurrency=%d)",
			w.cfg.RedisAddr, w.cfg.Concurrency)
		if err := w.server.Run(w.mux); err != nil {
			w.logger.Error("Notifier: worker stopped with error: %v", err)
		}
	}()
}

// Shutdown останавливает воркер, дожидаясь активных задач
func (w *Worker) Shutdown() {
	close(w.stopCh)
	w.server.Shutdown()
	w.logger.Info("Notifier: confirmation worker stopped")
}

func handleConfirmationTask(sender EmailSender, logger Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var payload ConfirmationPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			logger.Error("Notifier: invalid confirmation payload: %v", err)
			return err
		}

		if err := sender.SendConfirmation(payload); err != nil {
			logger.Error("Notifier: failed to send confirmation, reservation=%d: %v",
				payload.ReservationID, err)
			return err
		}

		logger.Info("Notifier: confirmation email sent, reservation=%d, to=%s",
			payload.ReservationID, payload.UserEmail)
		return nil
	}
}

// monitorRedisConnection периодически проверяет доступность redis,
// чтобы потеря очереди была видна в логах, а не молча копила задачи
func (w *Worker) monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     w.cfg.RedisAddr,
		Password: w.cfg.RedisPassword,
		DB:       w.cfg.RedisDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			if err := client.Ping(context.Background()).Err(); err != nil {
				w.logger.Warn("Notifier: redis connection lost: %v", err)
			}
		}
	}
}
