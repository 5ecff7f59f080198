package manage_rooms

import (
	"context"

	"github.com/m04kA/LRS-RoomReservationService/internal/service/catalog/models"
)

type CatalogService interface {
	CreateRoom(ctx context.Context, req *models.CreateRoomRequest) (*models.RoomResponse, error)
	GetRoom(ctx context.Context, id int64) (*models.RoomResponse, error)
	ListRooms(ctx context.Context, req *models.ListRoomsRequest) (*models.RoomListResponse, error)
	UpdateRoom(ctx context.Context, id int64, req *models.UpdateRoomRequest) (*models.RoomResponse, error)
	DeleteRoom(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
