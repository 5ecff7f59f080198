package library

import "errors"

var (
	// ErrLibraryNotFound возвращается, когда библиотека не найдена
	ErrLibraryNotFound = errors.New("library.repository: library not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("library.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("library.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("library.repository: failed to scan row")
)
