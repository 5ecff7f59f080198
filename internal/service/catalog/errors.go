package catalog

import "errors"

var (
	// ErrLibraryNotFound возвращается, когда библиотека не найдена
	ErrLibraryNotFound = errors.New("library not found")

	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("room not found")

	// ErrHasActiveReservations возвращается при попытке удалить
	// комнату или библиотеку с активными будущими бронированиями
	ErrHasActiveReservations = errors.New("has active upcoming reservations")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
