package domain

import "time"

// Room represents a bookable study room inside a library
type Room struct {
	ID        int64
	LibraryID int64
	Name      string
	Capacity  int // число мест, 1-5

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoomFilter фильтр для выборки комнат каталога
type RoomFilter struct {
	LibraryID   *int64 // Фильтр по библиотеке (опционально)
	MinCapacity *int   // Минимальная вместимость (опционально)
}
