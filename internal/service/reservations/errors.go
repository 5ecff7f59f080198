package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	// или уже отменено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrAccessDenied возвращается при попытке отменить чужое бронирование
	ErrAccessDenied = errors.New("access denied")

	// ErrAlreadyPast возвращается при попытке отменить прошедшее бронирование
	ErrAlreadyPast = errors.New("reservation is already in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
