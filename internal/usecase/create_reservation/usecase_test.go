package create_reservation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LRS-RoomReservationService/internal/domain"
	reservationRepo "github.com/m04kA/LRS-RoomReservationService/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/LRS-RoomReservationService/internal/infra/storage/room"
	userRepo "github.com/m04kA/LRS-RoomReservationService/internal/infra/storage/user"
	"github.com/m04kA/LRS-RoomReservationService/internal/notifier"
	"github.com/m04kA/LRS-RoomReservationService/pkg/types"
)

// In-memory фейки вместо PostgreSQL: контракт тот же,
// сериализация обеспечивается мьютексом в fakeTxManager.

type fakeReservationRepo struct {
	mu           sync.Mutex
	nextID       int64
	reservations []*domain.Reservation
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{nextID: 1}
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	created := *res
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	f.nextID++
	f.reservations = append(f.reservations, &created)
	return &created, nil
}

func (f *fakeReservationRepo) GetActiveByRoomAndDate(_ context.Context, roomID int64, date time.Time) ([]*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*domain.Reservation
	for _, res := range f.reservations {
		if res.RoomID == roomID && res.Date.Equal(date) && res.IsActive() {
			out = append(out, res)
		}
	}
	return out, nil
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

// fakeTxManager сериализует транзакции глобальным мьютексом - модель
// поведения serializable транзакций с FOR UPDATE по комнате
type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

type fakeNotifier struct {
	mu       sync.Mutex
	payloads []notifier.ConfirmationPayload
	err      error
}

func (f *fakeNotifier) EnqueueConfirmation(_ context.Context, payload notifier.ConfirmationPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.payloads = append(f.payloads, payload)
	return nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	uc       *UseCase
	reserves *fakeReservationRepo
	notifier *fakeNotifier
}

// newFixture собирает use case с одной библиотекой (08:00-20:00),
// одной комнатой и одним пользователем. Текущее время - 2026-03-10 09:00.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	reserves := newFakeReservationRepo()
	rooms := &fakeRoomRepo{rooms: map[int64]*domain.Room{
		1: {ID: 1, LibraryID: 10, Name: "Room A", Capacity: 4},
	}}
	libraries := &fakeLibraryRepo{libraries: map[int64]*domain.Library{
		10: {ID: 10, Name: "Central Library", OpenTime: "08:00", CloseTime: "20:00"},
	}}
	users := &fakeUserRepo{users: map[int64]*domain.User{
		7: {ID: 7, Name: "Demo User", Email: "demo@example.com"},
	}}
	notif := &fakeNotifier{}

	uc := NewUseCase(reserves, rooms, libraries, users, &fakeTxManager{}, notif, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{
		now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}

	return &fixture{uc: uc, reserves: reserves, notifier: notif}
}

func testDate() time.Time {
	return time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
}

func request(start, end string) *Request {
	return &Request{
		UserID:    7,
		RoomID:    1,
		Date:      testDate(),
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	fx := newFixture(t)

	resp, err := fx.uc.Execute(context.Background(), request("10:00", "12:00"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, "Room A", resp.RoomName)
	assert.Equal(t, "Central Library", resp.LibraryName)
	assert.Equal(t, "10:00", resp.StartTime.String())
	assert.Equal(t, "12:00", resp.EndTime.String())

	// Письмо-подтверждение поставлено в очередь
	require.Len(t, fx.notifier.payloads, 1)
	payload := fx.notifier.payloads[0]
	assert.Equal(t, resp.ID, payload.ReservationID)
	assert.Equal(t, "demo@example.com", payload.UserEmail)
	assert.Equal(t, "2026-03-10", payload.Date)
}

func TestUseCase_Execute_Conflict(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.uc.Execute(ctx, request("10:00", "12:00"))
	require.NoError(t, err)

	// Частичное пересечение с существующим бронированием
	_, err = fx.uc.Execute(ctx, request("11:00", "13:00"))
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Полное совпадение
	_, err = fx.uc.Execute(ctx, request("10:00", "12:00"))
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Вложенный интервал
	_, err = fx.uc.Execute(ctx, request("10:30", "11:30"))
	assert.ErrorIs(t, err, ErrSlotConflict)
}

// Полуоткрытые интервалы: общая граница 12:00 конфликтом не считается
func TestUseCase_Execute_AdjacentIntervals(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.uc.Execute(ctx, request("10:00", "12:00"))
	require.NoError(t, err)

	_, err = fx.uc.Execute(ctx, request("12:00", "14:00"))
	require.NoError(t, err)

	_, err = fx.uc.Execute(ctx, request("09:00", "10:00"))
	require.NoError(t, err)
}

func TestUseCase_Execute_InvalidInterval(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	// start >= end
	_, err := fx.uc.Execute(ctx, request("14:00", "13:00"))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = fx.uc.Execute(ctx, request("14:00", "14:00"))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	// Выход за рабочие часы библиотеки
	_, err = fx.uc.Execute(ctx, request("07:00", "09:00"))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = fx.uc.Execute(ctx, request("19:00", "21:00"))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestUseCase_Execute_PastSlot(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	// Сейчас 09:00, слот 08:00-09:00 уже закончился (конец не строго позже now)
	_, err := fx.uc.Execute(ctx, request("08:00", "09:00"))
	assert.ErrorIs(t, err, ErrPastSlot)

	// Слот, начавшийся в прошлом, но еще идущий - бронировать можно
	_, err = fx.uc.Execute(ctx, request("08:00", "10:00"))
	assert.NoError(t, err)
}

func TestUseCase_Execute_RoomNotFound(t *testing.T) {
	fx := newFixture(t)

	req := request("10:00", "12:00")
	req.RoomID = 99

	_, err := fx.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestUseCase_Execute_UserNotFound(t *testing.T) {
	fx := newFixture(t)

	req := request("10:00", "12:00")
	req.UserID = 99

	_, err := fx.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrUserNotFound)
	// Бронирование не создано
	assert.Empty(t, fx.reserves.reservations)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	req := request("10:00", "12:00")
	req.UserID = 0
	_, err := fx.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = request("10:00", "12:00")
	req.RoomID = -1
	_, err = fx.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = request("10:00", "12:00")
	req.Date = time.Time{}
	_, err = fx.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// Сбой очереди уведомлений не отменяет созданное бронирование
func TestUseCase_Execute_NotifierFailureDoesNotFail(t *testing.T) {
	fx := newFixture(t)
	fx.notifier.err = errors.New("redis is down")

	resp, err := fx.uc.Execute(context.Background(), request("10:00", "12:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	require.Len(t, fx.reserves.reservations, 1)
}

// Конкурентные запросы на один слот: ровно один успех
func TestUseCase_Execute_ConcurrentSameSlot(t *testing.T) {
	fx := newFixture(t)

	const goroutines = 16

	var wg sync.WaitGroup
	errs := make([]error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = fx.uc.Execute(context.Background(), request("10:00", "12:00"))
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrSlotConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, goroutines-1, conflicts)
	assert.Len(t, fx.reserves.reservations, 1)
}

// Отмененные бронирования не участвуют в проверке конфликтов
func TestUseCase_Execute_CancelledReservationIgnored(t *testing.T) {
	fx := newFixture(t)

	fx.reserves.reservations = append(fx.reserves.reservations, &domain.Reservation{
		ID:        100,
		RoomID:    1,
		UserID:    7,
		Date:      testDate(),
		StartTime: "10:00",
		EndTime:   "12:00",
		Status:    domain.StatusCancelled,
	})
	fx.reserves.nextID = 101

	resp, err := fx.uc.Execute(context.Background(), request("10:00", "12:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(101), resp.ID)
}

// Ошибка exclusion constraint из хранилища транслируется в конфликт
func TestUseCase_Execute_StorageOverlapMapsToConflict(t *testing.T) {
	fx := newFixture(t)

	uc := NewUseCase(
		&overlapFailingRepo{inner: fx.reserves},
		&fakeRoomRepo{rooms: map[int64]*domain.Room{1: {ID: 1, LibraryID: 10, Name: "Room A", Capacity: 4}}},
		&fakeLibraryRepo{libraries: map[int64]*domain.Library{10: {ID: 10, Name: "Central Library", OpenTime: "08:00", CloseTime: "20:00"}}},
		&fakeUserRepo{users: map[int64]*domain.User{7: {ID: 7, Name: "Demo User", Email: "demo@example.com"}}},
		&fakeTxManager{},
		fx.notifier,
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), request("10:00", "12:00"))
	assert.ErrorIs(t, err, ErrSlotConflict)
}

// overlapFailingRepo отдает пустой список при чтении, но отклоняет
// вставку как пересечение - имитация гонки, пойманной constraint'ом БД
type overlapFailingRepo struct {
	inner *fakeReservationRepo
}

func (r *overlapFailingRepo) Create(context.Context, *domain.Reservation) (*domain.Reservation, error) {
	return nil, reservationRepo.ErrReservationOverlap
}

func (r *overlapFailingRepo) GetActiveByRoomAndDate(context.Context, int64, time.Time) ([]*domain.Reservation, error) {
	return nil, nil
}

func TestRealTimeProvider_NaiveUTCWallClock(t *testing.T) {
	provider := &RealTimeProvider{}
	got := provider.Now()
	require.Equal(t, time.UTC, got.Location())

	// endInstant строит момент окончания в локации даты (UTC после
	// time.Parse) - провайдер обязан отдавать текущий момент в той же шкале
	local := time.Now()
	naive := time.Date(
		local.Year(), local.Month(), local.Day(),
		local.Hour(), local.Minute(), local.Second(), local.Nanosecond(),
		time.UTC,
	)
	require.WithinDuration(t, naive, got, 2*time.Second)
}
