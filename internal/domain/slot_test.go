package domain

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LRS-RoomReservationService/pkg/types"
)

func mustRange(t *testing.T, start, end string) TimeRange {
	t.Helper()
	r, err := NewTimeRange(start, end)
	require.NoError(t, err)
	return r
}

func TestTimeRange_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a    TimeRange
		b    TimeRange
		want bool
	}{
		{name: "identical", a: TimeRange{"10:00", "12:00"}, b: TimeRange{"10:00", "12:00"}, want: true},
		{name: "partial overlap", a: TimeRange{"10:00", "12:00"}, b: TimeRange{"11:00", "13:00"}, want: true},
		{name: "contained", a: TimeRange{"10:00", "14:00"}, b: TimeRange{"11:00", "12:00"}, want: true},
		{name: "shared boundary end-start", a: TimeRange{"10:00", "12:00"}, b: TimeRange{"12:00", "14:00"}, want: false},
		{name: "shared boundary start-end", a: TimeRange{"12:00", "14:00"}, b: TimeRange{"10:00", "12:00"}, want: false},
		{name: "disjoint", a: TimeRange{"08:00", "09:00"}, b: TimeRange{"15:00", "16:00"}, want: false},
		{name: "one minute overlap", a: TimeRange{"10:00", "12:01"}, b: TimeRange{"12:00", "14:00"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Пересечение симметрично
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

// TestTimeRange_Overlaps_Property проверяет предикат на случайных интервалах
// против эталонного определения через минуты
func TestTimeRange_Overlaps_Property(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	randomRange := func() TimeRange {
		start := rng.Intn(24*60 - 1)
		end := start + 1 + rng.Intn(24*60-start-1)
		s, err := types.NewTimeStringFromMinutes(start)
		require.NoError(t, err)
		e, err := types.NewTimeStringFromMinutes(end)
		require.NoError(t, err)
		return TimeRange{Start: s, End: e}
	}

	for i := 0; i < 1000; i++ {
		a := randomRange()
		b := randomRange()

		want := a.Start.Minutes() < b.End.Minutes() && b.Start.Minutes() < a.End.Minutes()
		assert.Equal(t, want, a.Overlaps(b), "a=%s b=%s", a, b)
	}
}

func TestNewTimeRange(t *testing.T) {
	_, err := NewTimeRange("14:00", "13:00")
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewTimeRange("10:00", "10:00")
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewTimeRange("banana", "13:00")
	assert.ErrorIs(t, err, ErrInvalidInterval)

	r, err := NewTimeRange("10:00", "12:00")
	require.NoError(t, err)
	assert.Equal(t, "10:00-12:00", r.String())
}

func TestTimeRange_Validate(t *testing.T) {
	hours := TimeRange{Start: DefaultOpenTime, End: DefaultCloseTime}

	assert.NoError(t, TimeRange{"08:00", "10:00"}.Validate(hours))
	assert.NoError(t, TimeRange{"18:00", "20:00"}.Validate(hours))
	assert.NoError(t, TimeRange{"09:17", "11:43"}.Validate(hours))

	assert.ErrorIs(t, TimeRange{"07:00", "09:00"}.Validate(hours), ErrInvalidInterval)
	assert.ErrorIs(t, TimeRange{"19:00", "21:00"}.Validate(hours), ErrInvalidInterval)
	assert.ErrorIs(t, TimeRange{"12:00", "11:00"}.Validate(hours), ErrInvalidInterval)
	assert.ErrorIs(t, TimeRange{"12:00", "12:00"}.Validate(hours), ErrInvalidInterval)
}

func activeReservation(start, end string) *Reservation {
	return &Reservation{
		Date:      time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Status:    StatusActive,
	}
}

func TestSubtractReservations(t *testing.T) {
	hours := mustRange(t, "08:00", "20:00")

	t.Run("no reservations yields full day", func(t *testing.T) {
		free := SubtractReservations(hours, nil)
		assert.Equal(t, []TimeRange{{Start: "08:00", End: "20:00"}}, free)
	})

	t.Run("single reservation splits the day", func(t *testing.T) {
		free := SubtractReservations(hours, []*Reservation{activeReservation("10:00", "12:00")})
		assert.Equal(t, []TimeRange{
			{Start: "08:00", End: "10:00"},
			{Start: "12:00", End: "20:00"},
		}, free)
	})

	t.Run("unsorted input is handled", func(t *testing.T) {
		free := SubtractReservations(hours, []*Reservation{
			activeReservation("16:00", "18:00"),
			activeReservation("08:00", "10:00"),
			activeReservation("12:00", "13:00"),
		})
		assert.Equal(t, []TimeRange{
			{Start: "10:00", End: "12:00"},
			{Start: "13:00", End: "16:00"},
			{Start: "18:00", End: "20:00"},
		}, free)
	})

	t.Run("cancelled reservations do not occupy slots", func(t *testing.T) {
		cancelled := activeReservation("10:00", "12:00")
		cancelled.Status = StatusCancelled
		free := SubtractReservations(hours, []*Reservation{cancelled})
		assert.Equal(t, []TimeRange{{Start: "08:00", End: "20:00"}}, free)
	})

	t.Run("reservation covering full day yields nothing", func(t *testing.T) {
		free := SubtractReservations(hours, []*Reservation{activeReservation("08:00", "20:00")})
		assert.Empty(t, free)
	})

	t.Run("adjacent reservations leave no sliver", func(t *testing.T) {
		free := SubtractReservations(hours, []*Reservation{
			activeReservation("10:00", "12:00"),
			activeReservation("12:00", "14:00"),
		})
		assert.Equal(t, []TimeRange{
			{Start: "08:00", End: "10:00"},
			{Start: "14:00", End: "20:00"},
		}, free)
	})
}

// TestSubtractReservations_PartitionLaw: свободные интервалы вместе с
// активными бронированиями восстанавливают рабочие часы без зазоров
// и без двойного покрытия
func TestSubtractReservations_PartitionLaw(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	hours := mustRange(t, "08:00", "20:00")

	for i := 0; i < 200; i++ {
		// Генерируем случайный набор непересекающихся бронирований
		var reservations []*Reservation
		cursor := hours.Start.Minutes()
		for cursor < hours.End.Minutes()-1 {
			gap := rng.Intn(90)
			start := cursor + gap
			if start >= hours.End.Minutes()-1 {
				break
			}
			length := 1 + rng.Intn(hours.End.Minutes()-start-1)
			s, err := types.NewTimeStringFromMinutes(start)
			require.NoError(t, err)
			e, err := types.NewTimeStringFromMinutes(start + length)
			require.NoError(t, err)
			reservations = append(reservations, &Reservation{
				StartTime: s, EndTime: e, Status: StatusActive,
				Date: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			})
			cursor = start + length
		}

		free := SubtractReservations(hours, reservations)

		// Помечаем каждую минуту ровно одним покрытием
		covered := make([]int, 24*60)
		for _, r := range free {
			for m := r.Start.Minutes(); m < r.End.Minutes(); m++ {
				covered[m]++
			}
		}
		for _, r := range reservations {
			for m := r.StartTime.Minutes(); m < r.EndTime.Minutes(); m++ {
				covered[m]++
			}
		}

		for m := 0; m < 24*60; m++ {
			inHours := m >= hours.Start.Minutes() && m < hours.End.Minutes()
			if inHours {
				require.Equal(t, 1, covered[m], "iteration %d: minute %d covered %d times", i, m, covered[m])
			} else {
				require.Equal(t, 0, covered[m], "iteration %d: minute %d outside hours covered", i, m)
			}
		}
	}
}

func TestReservation_IsPast(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

	ended := activeReservation("08:00", "10:00")
	assert.True(t, ended.IsPast(now))
	assert.False(t, ended.CanBeCancelled(now))

	// Бронирование, заканчивающееся ровно сейчас, еще не прошедшее
	endingNow := activeReservation("10:00", "12:00")
	assert.False(t, endingNow.IsPast(now))
	assert.True(t, endingNow.CanBeCancelled(now))

	upcoming := activeReservation("14:00", "16:00")
	assert.False(t, upcoming.IsPast(now))

	tomorrow := activeReservation("08:00", "10:00")
	tomorrow.Date = tomorrow.Date.AddDate(0, 0, 1)
	assert.False(t, tomorrow.IsPast(now))
}
