package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/LRS-RoomReservationService/internal/domain"
	"github.com/m04kA/LRS-RoomReservationService/pkg/dbmetrics"
	"github.com/m04kA/LRS-RoomReservationService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для чтения пользователей.
// Сервис не управляет пользователями: запись создается сидом или внешней
// системой, здесь только чтение для проверок и писем-подтверждений.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "email", "created_at").
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var u domain.User
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan user: %w", ErrScanRow, err)
	}

	u.CreatedAt = createdAt.Time
	return &u, nil
}
