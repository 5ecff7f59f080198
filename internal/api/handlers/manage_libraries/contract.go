package manage_libraries

import (
	"context"

	"github.com/m04kA/LRS-RoomReservationService/internal/service/catalog/models"
)

type CatalogService interface {
	CreateLibrary(ctx context.Context, req *models.CreateLibraryRequest) (*models.LibraryResponse, error)
	GetLibrary(ctx context.Context, id int64) (*models.LibraryResponse, error)
	ListLibraries(ctx context.Context) (*models.LibraryListResponse, error)
	UpdateLibrary(ctx context.Context, id int64, req *models.UpdateLibraryRequest) (*models.LibraryResponse, error)
	DeleteLibrary(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
