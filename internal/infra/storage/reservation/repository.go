package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/LRS-RoomReservationService/internal/domain"
	"github.com/m04kA/LRS-RoomReservationService/pkg/dbmetrics"
	"github.com/m04kA/LRS-RoomReservationService/pkg/psqlbuilder"
	"github.com/m04kA/LRS-RoomReservationService/pkg/types"
)

// Коды PostgreSQL, которыми БД сигнализирует о попытке двойного бронирования
const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)

var reservationColumns = []string{
	"id",
	"room_id",
	"user_id",
	"reservation_date",
	"start_time",
	"end_time",
	"status",
	"cancelled_at",
	"created_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование и возвращает его с присвоенным ID.
// Если в контексте передана активная транзакция, использует её.
// Нарушение exclusion constraint по пересечению интервалов транслируется
// в ErrReservationOverlap, чтобы вызывающий слой мог отличить конфликт
// слота от инфраструктурной ошибки.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"room_id",
			"user_id",
			"reservation_date",
			"start_time",
			"end_time",
			"status",
		).
		Values(
			res.RoomID,
			res.UserID,
			res.Date,
			res.StartTime,
			res.EndTime,
			res.Status,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
	)

	if err != nil {
		if isOverlapViolation(err) {
			return nil, ErrReservationOverlap
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	res, err := r.scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %w", ErrScanRow, err)
	}

	return res, nil
}

// GetActiveByRoomAndDate получает активные бронирования комнаты на дату,
// упорядоченные по времени начала.
// Внутри транзакции строки блокируются через FOR UPDATE - это точка
// взаимного исключения между конкурентными созданиями на одну комнату.
func (r *Repository) GetActiveByRoomAndDate(ctx context.Context, roomID int64, date time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{
			"room_id":          roomID,
			"reservation_date": date,
			"status":           domain.StatusActive,
		}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByRoomAndDate - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByRoomAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// GetByUserID получает все бронирования пользователя (включая прошедшие
// и отмененные), сначала новые
func (r *Repository) GetByUserID(ctx context.Context, userID int64) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("reservation_date DESC, start_time DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// Cancel помечает бронирование отмененным (soft delete).
// Физическое удаление не используется, история сохраняется.
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusActive}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// CountActiveUpcomingByRoom считает активные бронирования комнаты,
// которые еще не закончились. Используется политикой удаления каталога.
func (r *Repository) CountActiveUpcomingByRoom(ctx context.Context, roomID int64, now time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("reservations").
		Where(squirrel.Eq{"room_id": roomID, "status": domain.StatusActive}).
		Where(upcomingCondition(now)).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveUpcomingByRoom - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveUpcomingByRoom - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// CountActiveUpcomingByLibrary считает незавершенные активные бронирования
// по всем комнатам библиотеки
func (r *Repository) CountActiveUpcomingByLibrary(ctx context.Context, libraryID int64, now time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("reservations r").
		Join("rooms rm ON rm.id = r.room_id").
		Where(squirrel.Eq{"rm.library_id": libraryID, "r.status": domain.StatusActive}).
		Where(upcomingCondition(now)).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveUpcomingByLibrary - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveUpcomingByLibrary - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// upcomingCondition условие "бронирование еще не закончилось к моменту now"
func upcomingCondition(now time.Time) squirrel.Sqlizer {
	dateOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	timeOfDay := types.NewTimeString(now)

	return squirrel.Or{
		squirrel.Gt{"reservation_date": dateOnly},
		squirrel.And{
			squirrel.Eq{"reservation_date": dateOnly},
			squirrel.Gt{"end_time": timeOfDay},
		},
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.RoomID,
		&res.UserID,
		&res.Date,
		&res.StartTime,
		&res.EndTime,
		&res.Status,
		&res.CancelledAt,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	res.CreatedAt = createdAt.Time
	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := r.scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %w", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %w", ErrScanRow, err)
	}

	return reservations, nil
}

func isOverlapViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgExclusionViolation || string(pqErr.Code) == pgUniqueViolation
	}
	return false
}
