package domain

import "github.com/m04kA/LRS-RoomReservationService/pkg/types"

// DateFormat формат календарной даты в API и хранилище
const DateFormat = "2006-01-02" // YYYY-MM-DD

// Default operating hours for libraries that don't override them
const (
	DefaultOpenTime  = types.TimeString("08:00")
	DefaultCloseTime = types.TimeString("20:00")
)

// Business validation constants
const (
	MinRoomCapacity = 1
	MaxRoomCapacity = 5

	MaxLibraryNameLength    = 255
	MaxLibraryAddressLength = 255
	MaxRoomNameLength       = 255
)
