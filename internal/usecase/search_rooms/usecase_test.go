package search_rooms

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LRS-RoomReservationService/internal/domain"
	libraryRepo "github.com/m04kA/LRS-RoomReservationService/internal/infra/storage/library"
	"github.com/m04kA/LRS-RoomReservationService/pkg/ptr"
	"github.com/m04kA/LRS-RoomReservationService/pkg/types"
)

type fakeReservationRepo struct {
	// Бронирования по ID комнаты
	byRoom map[int64][]*domain.Reservation
}

func (f *fakeReservationRepo) GetActiveByRoomAndDate(_ context.Context, roomID int64, _ time.Time) ([]*domain.Reservation, error) {
	return f.byRoom[roomID], nil
}

type fakeRoomRepo struct {
	rooms []*domain.Room
}

// List повторяет семантику SQL фильтра: опциональные предикаты в конъюнкции,
// порядок по id
func (f *fakeRoomRepo) List(_ context.Context, filter domain.RoomFilter) ([]*domain.Room, error) {
	var out []*domain.Room
	for _, room := range f.rooms {
		if filter.LibraryID != nil && room.LibraryID != *filter.LibraryID {
			continue
		}
		if filter.MinCapacity != nil && room.Capacity < *filter.MinCapacity {
			continue
		}
		out = append(out, room)
	}
	return out, nil
}

type fakeLibraryRepo struct {
	libraries map[int64]*domain.Library
}

func (f *fakeLibraryRepo) GetByID(_ context.Context, id int64) (*domain.Library, error) {
	library, ok := f.libraries[id]
	if !ok {
		return nil, libraryRepo.ErrLibraryNotFound
	}
	return library, nil
}

func (f *fakeLibraryRepo) List(_ context.Context) ([]*domain.Library, error) {
	var out []*domain.Library
	for _, id := range []int64{10, 20} {
		if library, ok := f.libraries[id]; ok {
			out = append(out, library)
		}
	}
	return out, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testDate() time.Time {
	return time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
}

func reservation(roomID int64, start, end string) *domain.Reservation {
	return &domain.Reservation{
		RoomID:    roomID,
		Date:      testDate(),
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Status:    domain.StatusActive,
	}
}

// Две библиотеки с разными часами, три комнаты. Комната 2 занята 10:00-12:00.
func newUseCaseFixture() *UseCase {
	libraries := map[int64]*domain.Library{
		10: {ID: 10, Name: "Central Library", OpenTime: "08:00", CloseTime: "20:00"},
		20: {ID: 20, Name: "East Branch", OpenTime: "09:00", CloseTime: "18:00"},
	}
	rooms := []*domain.Room{
		{ID: 1, LibraryID: 10, Name: "Room A", Capacity: 2},
		{ID: 2, LibraryID: 10, Name: "Room B", Capacity: 5},
		{ID: 3, LibraryID: 20, Name: "Room C", Capacity: 4},
	}
	reservations := map[int64][]*domain.Reservation{
		2: {reservation(2, "10:00", "12:00")},
	}

	return NewUseCase(
		&fakeReservationRepo{byRoom: reservations},
		&fakeRoomRepo{rooms: rooms},
		&fakeLibraryRepo{libraries: libraries},
		nopLogger{},
	)
}

func TestUseCase_Execute_NoFilters(t *testing.T) {
	uc := newUseCaseFixture()

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate()})
	require.NoError(t, err)

	// Все комнаты, в порядке каталога
	require.Len(t, resp.Results, 3)
	assert.Equal(t, int64(1), resp.Results[0].Room.ID)
	assert.Equal(t, int64(2), resp.Results[1].Room.ID)
	assert.Equal(t, int64(3), resp.Results[2].Room.ID)

	// Часы библиотеки комнаты, а не глобальные
	require.Len(t, resp.Results[2].AvailableSlots, 1)
	assert.Equal(t, "09:00", resp.Results[2].AvailableSlots[0].StartTime.String())
	assert.Equal(t, "18:00", resp.Results[2].AvailableSlots[0].EndTime.String())

	// Занятая комната отдает разбитый день
	require.Len(t, resp.Results[1].AvailableSlots, 2)
	assert.Equal(t, "08:00", resp.Results[1].AvailableSlots[0].StartTime.String())
	assert.Equal(t, "10:00", resp.Results[1].AvailableSlots[0].EndTime.String())
}

func TestUseCase_Execute_FilterConjunction(t *testing.T) {
	uc := newUseCaseFixture()

	resp, err := uc.Execute(context.Background(), &Request{
		Date:        testDate(),
		LibraryID:   ptr.Ptr(int64(10)),
		MinCapacity: ptr.Ptr(3),
	})
	require.NoError(t, err)

	// Только Room B: в библиотеке 10 и вместимость >= 3
	require.Len(t, resp.Results, 1)
	assert.Equal(t, int64(2), resp.Results[0].Room.ID)
	assert.Equal(t, "Central Library", resp.Results[0].Room.LibraryName)
}

func TestUseCase_Execute_SlotFilter(t *testing.T) {
	uc := newUseCaseFixture()
	slot := domain.TimeRange{Start: "10:00", End: "12:00"}

	resp, err := uc.Execute(context.Background(), &Request{
		Date: testDate(),
		Slot: &slot,
	})
	require.NoError(t, err)

	// Room B занята 10:00-12:00 и выпадает, Room A и Room C свободны
	require.Len(t, resp.Results, 2)
	assert.Equal(t, int64(1), resp.Results[0].Room.ID)
	assert.Equal(t, int64(3), resp.Results[1].Room.ID)
}

// Слот должен целиком помещаться в один свободный интервал
func TestUseCase_Execute_SlotMustFitSingleGap(t *testing.T) {
	uc := newUseCaseFixture()

	// 09:00-13:00 у Room B пересекает бронирование, у Room C входит в часы
	slot := domain.TimeRange{Start: "09:00", End: "13:00"}
	resp, err := uc.Execute(context.Background(), &Request{Date: testDate(), Slot: &slot})
	require.NoError(t, err)

	ids := make([]int64, 0, len(resp.Results))
	for _, res := range resp.Results {
		ids = append(ids, res.Room.ID)
	}
	assert.Equal(t, []int64{1, 3}, ids)

	// Слот раньше открытия East Branch: остается только Room A
	early := domain.TimeRange{Start: "08:00", End: "09:00"}
	resp, err = uc.Execute(context.Background(), &Request{Date: testDate(), Slot: &early})
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	assert.Equal(t, int64(1), resp.Results[0].Room.ID)
}

func TestUseCase_Execute_Deterministic(t *testing.T) {
	uc := newUseCaseFixture()
	req := &Request{Date: testDate(), MinCapacity: ptr.Ptr(2)}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestUseCase_Execute_LibraryNotFound(t *testing.T) {
	uc := newUseCaseFixture()

	_, err := uc.Execute(context.Background(), &Request{
		Date:      testDate(),
		LibraryID: ptr.Ptr(int64(99)),
	})
	assert.ErrorIs(t, err, ErrLibraryNotFound)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	uc := newUseCaseFixture()
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{Date: testDate(), LibraryID: ptr.Ptr(int64(0))})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{Date: testDate(), MinCapacity: ptr.Ptr(0)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
