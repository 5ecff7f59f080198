package search_rooms

import "errors"

var (
	// ErrLibraryNotFound возвращается, когда указанная в фильтре
	// библиотека не найдена
	ErrLibraryNotFound = errors.New("search_rooms: library not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("search_rooms: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("search_rooms: internal error")
)
