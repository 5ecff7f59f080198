package library

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/LRS-RoomReservationService/internal/domain"
	"github.com/m04kA/LRS-RoomReservationService/pkg/dbmetrics"
	"github.com/m04kA/LRS-RoomReservationService/pkg/psqlbuilder"
)

var libraryColumns = []string{
	"id",
	"name",
	"address",
	"open_time",
	"close_time",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с библиотеками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория библиотек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую библиотеку
func (r *Repository) Create(ctx context.Context, lib *domain.Library) (*domain.Library, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("libraries").
		Columns("name", "address", "open_time", "close_time").
		Values(lib.Name, lib.Address, lib.OpenTime, lib.CloseTime).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&lib.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	lib.CreatedAt = createdAt.Time
	lib.UpdatedAt = updatedAt.Time

	return lib, nil
}

// GetByID получает библиотеку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Library, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(libraryColumns...).
		From("libraries").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	lib, err := scanLibrary(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrLibraryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan library: %w", ErrScanRow, err)
	}

	return lib, nil
}

// List получает все библиотеки в порядке создания
func (r *Repository) List(ctx context.Context) ([]*domain.Library, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(libraryColumns...).
		From("libraries").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	libraries := make([]*domain.Library, 0)
	for rows.Next() {
		lib, err := scanLibrary(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		libraries = append(libraries, lib)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return libraries, nil
}

// Update обновляет данные библиотеки
func (r *Repository) Update(ctx context.Context, lib *domain.Library) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("libraries").
		Set("name", lib.Name).
		Set("address", lib.Address).
		Set("open_time", lib.OpenTime).
		Set("close_time", lib.CloseTime).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": lib.ID}).
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
		return ErrLibraryNotFound
	}

	return nil
}

// Delete удаляет библиотеку. Комнаты удаляются каскадно на уровне БД;
// политика "нет активных будущих бронирований" проверяется сервисным слоем
// до вызова этого метода.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("libraries").
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
		return ErrLibraryNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLibrary(row rowScanner) (*domain.Library, error) {
	var lib domain.Library
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&lib.ID,
		&lib.Name,
		&lib.Address,
		&lib.OpenTime,
		&lib.CloseTime,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	lib.CreatedAt = createdAt.Time
	lib.UpdatedAt = updatedAt.Time
	return &lib, nil
}
