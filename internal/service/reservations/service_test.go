package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LRS-RoomReservationService/internal/domain"
	reservationRepo "github.com/m04kA/LRS-RoomReservationService/internal/infra/storage/reservation"
	userRepo "github.com/m04kA/LRS-RoomReservationService/internal/infra/storage/user"
	"github.com/m04kA/LRS-RoomReservationService/internal/service/reservations/models"
	"github.com/m04kA/LRS-RoomReservationService/pkg/types"
)

type fakeReservationRepo struct {
	reservations map[int64]*domain.Reservation
	cancelled    []int64
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	res, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return res, nil
}

func (f *fakeReservationRepo) GetByUserID(_ context.Context, userID int64) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, res := range f.reservations {
		if res.UserID == userID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) Cancel(_ context.Context, id int64) error {
	res, ok := f.reservations[id]
	if !ok || !res.IsActive() {
		return reservationRepo.ErrReservationNotFound
	}
	res.Status = domain.StatusCancelled
	f.cancelled = append(f.cancelled, id)
	return nil
}

type fakeRoomRepo struct {
	rooms map[int64]*domain.Room
}

func (f *fakeRoomRepo) GetByID(_ context.Context, id int64) (*domain.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, assert.AnError
	}
	return room, nil
}

type fakeLibraryRepo struct {
	libraries map[int64]*domain.Library
}

func (f *fakeLibraryRepo) GetByID(_ context.Context, id int64) (*domain.Library, error) {
	library, ok := f.libraries[id]
	if !ok {
		return nil, assert.AnError
	}
	return library, nil
}

type fakeUserRepo struct {
	users map[int64]*domain.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return user, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (f fixedTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(day int) time.Time {
	return time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC)
}

func reservation(id, userID int64, day int, start, end string, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:        id,
		RoomID:    1,
		UserID:    userID,
		Date:      date(day),
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Status:    status,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Сейчас 2026-03-10 12:00
func newService(repo *fakeReservationRepo) *Service {
	return NewService(
		repo,
		&fakeRoomRepo{rooms: map[int64]*domain.Room{
			1: {ID: 1, LibraryID: 10, Name: "Room A", Capacity: 4},
		}},
		&fakeLibraryRepo{libraries: map[int64]*domain.Library{
			10: {ID: 10, Name: "Central Library"},
		}},
		&fakeUserRepo{users: map[int64]*domain.User{
			7: {ID: 7, Name: "Demo User", Email: "demo@example.com"},
		}},
		fixedTimeProvider{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)},
		nopLogger{},
	)
}

func TestService_ListByUser(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: reservation(1, 7, 11, "10:00", "12:00", domain.StatusActive),
		2: reservation(2, 7, 5, "14:00", "16:00", domain.StatusCancelled),
		3: reservation(3, 8, 11, "10:00", "12:00", domain.StatusActive),
	}}
	svc := newService(repo)

	resp, err := svc.ListByUser(context.Background(), 7)
	require.NoError(t, err)

	// Только бронирования пользователя, включая отмененные
	require.Len(t, resp.Reservations, 2)
	for _, r := range resp.Reservations {
		assert.Equal(t, int64(7), r.UserID)
		assert.Equal(t, "Room A", r.RoomName)
		assert.Equal(t, "Central Library", r.LibraryName)
	}
}

func TestService_ListByUser_UserNotFound(t *testing.T) {
	svc := newService(&fakeReservationRepo{reservations: map[int64]*domain.Reservation{}})

	_, err := svc.ListByUser(context.Background(), 99)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_Cancel(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: reservation(1, 7, 11, "10:00", "12:00", domain.StatusActive),
	}}
	svc := newService(repo)

	err := svc.Cancel(context.Background(), &models.CancelReservationRequest{
		ReservationID: 1,
		UserID:        7,
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.cancelled)
	assert.True(t, repo.reservations[1].IsCancelled())
}

func TestService_Cancel_NotFound(t *testing.T) {
	svc := newService(&fakeReservationRepo{reservations: map[int64]*domain.Reservation{}})

	err := svc.Cancel(context.Background(), &models.CancelReservationRequest{
		ReservationID: 99,
		UserID:        7,
	})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestService_Cancel_Forbidden(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: reservation(1, 8, 11, "10:00", "12:00", domain.StatusActive),
	}}
	svc := newService(repo)

	err := svc.Cancel(context.Background(), &models.CancelReservationRequest{
		ReservationID: 1,
		UserID:        7,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.cancelled)
}

func TestService_Cancel_AlreadyCancelled(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: reservation(1, 7, 11, "10:00", "12:00", domain.StatusCancelled),
	}}
	svc := newService(repo)

	err := svc.Cancel(context.Background(), &models.CancelReservationRequest{
		ReservationID: 1,
		UserID:        7,
	})
	// Повторная отмена неотличима от отмены несуществующего
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestService_Cancel_AlreadyPast(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		// Вчерашнее бронирование
		1: reservation(1, 7, 9, "10:00", "12:00", domain.StatusActive),
		// Сегодняшнее, закончилось в 11:00 (сейчас 12:00)
		2: reservation(2, 7, 10, "09:00", "11:00", domain.StatusActive),
		// Сегодняшнее, еще идет (закончится в 13:00)
		3: reservation(3, 7, 10, "11:00", "13:00", domain.StatusActive),
	}}
	svc := newService(repo)
	ctx := context.Background()

	err := svc.Cancel(ctx, &models.CancelReservationRequest{ReservationID: 1, UserID: 7})
	assert.ErrorIs(t, err, ErrAlreadyPast)

	err = svc.Cancel(ctx, &models.CancelReservationRequest{ReservationID: 2, UserID: 7})
	assert.ErrorIs(t, err, ErrAlreadyPast)

	// Идущее бронирование отменить можно
	err = svc.Cancel(ctx, &models.CancelReservationRequest{ReservationID: 3, UserID: 7})
	assert.NoError(t, err)
}

func TestService_Cancel_InvalidInput(t *testing.T) {
	svc := newService(&fakeReservationRepo{reservations: map[int64]*domain.Reservation{}})

	err := svc.Cancel(context.Background(), &models.CancelReservationRequest{ReservationID: 0, UserID: 7})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRealTimeProvider_NaiveUTCWallClock(t *testing.T) {
	got := RealTimeProvider{}.Now()
	require.Equal(t, time.UTC, got.Location())

	// Стеночные часы сервера, перемаркированные в UTC: в этой шкале
	// лежат даты бронирований, и IsPast сравнивает именно с ней
	local := time.Now()
	naive := time.Date(
		local.Year(), local.Month(), local.Day(),
		local.Hour(), local.Minute(), local.Second(), local.Nanosecond(),
		time.UTC,
	)
	require.WithinDuration(t, naive, got, 2*time.Second)
}
