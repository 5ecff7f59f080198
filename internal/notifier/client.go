package notifier

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// QueueClient ставит задачи подтверждения в redis-очередь
type QueueClient struct {
	client *asynq.Client
	logger Logger
}

// NewQueueClient создает клиента очереди уведомлений
func NewQueueClient(redisOpt asynq.RedisClientOpt, logger Logger) *QueueClient {
	return &QueueClient{
		client: asynq.NewClient(redisOpt),
		logger: logger,
	}
}

// EnqueueConfirmation ставит задачу отправки письма-подтверждения
func (c *QueueClient) EnqueueConfirmation(ctx context.Context, payload ConfirmationPayload) error {
	task, err := NewConfirmationTask(payload)
	if err != nil {
		return fmt.Errorf("notifier: failed to build confirmation task: %w", err)
	}

	info, err := c.client.EnqueueContext(ctx, task, asynq.MaxRetry(5))
	if err != nil {
		return fmt.Errorf("notifier: failed to enqueue confirmation task: %w", err)
	}

	c.logger.Info("Notifier: confirmation task enqueued, reservation=%d, task=%s",
		payload.ReservationID, info.ID)
	return nil
}

// Close закрывает соединение с redis
func (c *QueueClient) Close() error {
	return c.client.Close()
}

// DirectClient отправляет письмо синхронно, без очереди.
// Используется, когда очередь уведомлений выключена в конфигурации -
// поведение то же, что прямой fallback при недоступной очереди.
type DirectClient struct {
	sender EmailSender
	logger Logger
}

// NewDirectClient создает клиента прямой отправки
func NewDirectClient(sender EmailSender, logger Logger) *DirectClient {
	return &DirectClient{sender: sender, logger: logger}
}

// EnqueueConfirmation отправляет письмо немедленно
func (c *DirectClient) EnqueueConfirmation(_ context.Context, payload ConfirmationPayload) error {
	if err := c.sender.SendConfirmation(payload); err != nil {
		return err
	}
	c.logger.Info("Notifier: confirmation email sent directly, reservation=%d", payload.ReservationID)
	return nil
}
