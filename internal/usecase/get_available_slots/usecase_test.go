package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LRS-RoomReservationService/internal/domain"
	roomRepo "github.com/m04kA/LRS-RoomReservationService/internal/infra/storage/room"
	"github.com/m04kA/LRS-RoomReservationService/pkg/types"
)

type fakeReservationRepo struct {
	reservations []*domain.Reservation
	err          error
}

func (f *fakeReservationRepo) GetActiveByRoomAndDate(context.Context, int64, time.Time) ([]*domain.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reservations, nil
}

type fakeRoomRepo struct {
	rooms map[int64]*domain.Room
}

func (f *fakeRoomRepo) GetByID(_ context.Context, id int64) (*domain.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, roomRepo.ErrRoomNotFound
	}
	return room, nil
}

type fakeLibraryRepo struct {
	libraries map[int64]*domain.Library
}

func (f *fakeLibraryRepo) GetByID(_ context.Context, id int64) (*domain.Library, error) {
	library, ok := f.libraries[id]
	if !ok {
		return nil, errors.New("library not found")
	}
	return library, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newUseCase(reservations []*domain.Reservation) *UseCase {
	return NewUseCase(
		&fakeReservationRepo{reservations: reservations},
		&fakeRoomRepo{rooms: map[int64]*domain.Room{
			1: {ID: 1, LibraryID: 10, Name: "Room A", Capacity: 4},
		}},
		&fakeLibraryRepo{libraries: map[int64]*domain.Library{
			10: {ID: 10, Name: "Central Library", OpenTime: "08:00", CloseTime: "20:00"},
		}},
		nopLogger{},
	)
}

func testDate() time.Time {
	return time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
}

func reservation(start, end string) *domain.Reservation {
	return &domain.Reservation{
		RoomID:    1,
		Date:      testDate(),
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Status:    domain.StatusActive,
	}
}

func TestUseCase_Execute_EmptyDay(t *testing.T) {
	uc := newUseCase(nil)

	resp, err := uc.Execute(context.Background(), &Request{RoomID: 1, Date: testDate()})
	require.NoError(t, err)

	// Без бронирований свободен весь рабочий день одним интервалом
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "08:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "20:00", resp.Slots[0].EndTime.String())
}

func TestUseCase_Execute_SplitDay(t *testing.T) {
	uc := newUseCase([]*domain.Reservation{
		reservation("10:00", "12:00"),
		reservation("15:00", "16:30"),
	})

	resp, err := uc.Execute(context.Background(), &Request{RoomID: 1, Date: testDate()})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 3)
	assert.Equal(t, "08:00-10:00", rangeString(resp.Slots[0]))
	assert.Equal(t, "12:00-15:00", rangeString(resp.Slots[1]))
	assert.Equal(t, "16:30-20:00", rangeString(resp.Slots[2]))
}

func TestUseCase_Execute_FullyBooked(t *testing.T) {
	uc := newUseCase([]*domain.Reservation{
		reservation("08:00", "20:00"),
	})

	resp, err := uc.Execute(context.Background(), &Request{RoomID: 1, Date: testDate()})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

// Результат чистая функция от состояния: повторный вызов дает то же самое
func TestUseCase_Execute_Idempotent(t *testing.T) {
	uc := newUseCase([]*domain.Reservation{
		reservation("09:00", "11:00"),
	})

	first, err := uc.Execute(context.Background(), &Request{RoomID: 1, Date: testDate()})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), &Request{RoomID: 1, Date: testDate()})
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
}

func TestUseCase_Execute_RoomNotFound(t *testing.T) {
	uc := newUseCase(nil)

	_, err := uc.Execute(context.Background(), &Request{RoomID: 99, Date: testDate()})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	uc := newUseCase(nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{RoomID: 0, Date: testDate()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{RoomID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func rangeString(s Slot) string {
	return s.StartTime.String() + "-" + s.EndTime.String()
}
