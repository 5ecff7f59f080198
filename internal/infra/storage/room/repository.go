package room

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/LRS-RoomReservationService/internal/domain"
	"github.com/m04kA/LRS-RoomReservationService/pkg/dbmetrics"
	"github.com/m04kA/LRS-RoomReservationService/pkg/psqlbuilder"
)

// pgForeignKeyViolation код PostgreSQL для нарушения внешнего ключа
const pgForeignKeyViolation = "23503"

var roomColumns = []string{
	"id",
	"library_id",
	"name",
	"capacity",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с комнатами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория комнат
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую комнату.
// Ссылка на несуществующую библиотеку транслируется в ErrLibraryNotFound.
func (r *Repository) Create(ctx context.Context, rm *domain.Room) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("rooms").
		Columns("library_id", "name", "capacity").
		Values(rm.LibraryID, rm.Name, rm.Capacity).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rm.ID, &createdAt, &updatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrLibraryNotFound
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	rm.CreatedAt = createdAt.Time
	rm.UpdatedAt = updatedAt.Time

	return rm, nil
}

// GetByID получает комнату по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(roomColumns...).
		From("rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	rm, err := scanRoom(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan room: %w", ErrScanRow, err)
	}

	return rm, nil
}

// List получает комнаты с опциональной фильтрацией по библиотеке и
// минимальной вместимости. Порядок стабильный: по ID.
func (r *Repository) List(ctx context.Context, filter domain.RoomFilter) ([]*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(roomColumns...).
		From("rooms").
		OrderBy("id ASC")

	if filter.LibraryID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"library_id": *filter.LibraryID})
	}
	if filter.MinCapacity != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"capacity": *filter.MinCapacity})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	rooms := make([]*domain.Room, 0)
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		rooms = append(rooms, rm)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return rooms, nil
}

// Update обновляет данные комнаты
func (r *Repository) Update(ctx context.Context, rm *domain.Room) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("rooms").
		Set("name", rm.Name).
		Set("capacity", rm.Capacity).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": rm.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRoomNotFound
	}

	return nil
}

// Delete удаляет комнату
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRoomNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRoom(row rowScanner) (*domain.Room, error) {
	var rm domain.Room
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rm.ID,
		&rm.LibraryID,
		&rm.Name,
		&rm.Capacity,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rm.CreatedAt = createdAt.Time
	rm.UpdatedAt = updatedAt.Time
	return &rm, nil
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgForeignKeyViolation
	}
	return false
}
