package domain

import "time"

// User represents a person who books study rooms.
// Аутентификации в сервисе нет: ID пользователя приходит извне как
// непрозрачный идентификатор, email нужен только для подтверждений.
type User struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
}
