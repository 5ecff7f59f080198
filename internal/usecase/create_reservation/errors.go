package create_reservation

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("create_reservation: room not found")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("create_reservation: user not found")

	// ErrInvalidInterval возвращается, когда интервал некорректен:
	// start >= end или выход за рабочие часы библиотеки
	ErrInvalidInterval = errors.New("create_reservation: invalid time interval")

	// ErrPastSlot возвращается при попытке забронировать уже прошедший слот
	ErrPastSlot = errors.New("create_reservation: slot is already in the past")

	// ErrSlotConflict возвращается, когда интервал пересекается с
	// существующим активным бронированием этой комнаты
	ErrSlotConflict = errors.New("create_reservation: slot conflicts with an existing reservation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
