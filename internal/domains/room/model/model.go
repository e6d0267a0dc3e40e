package model

import "lodge/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldRoomNumber  = "room_number"
	FieldStatus      = "status"
	FieldFloor       = "floor"
	FieldDescription = "description"
	FieldCategoryID  = "category_id"

	StatusAvailable   = "AVAILABLE"
	StatusBooked      = "BOOKED"
	StatusMaintenance = "MAINTENANCE"
)

type Room struct {
	ID           string `db:"id"`
	RoomNumber   string `db:"room_number"`
	Status       string `db:"status"`
	Floor        int    `db:"floor"`
	Description  string `db:"description"`
	CategoryID   string `db:"category_id"`
	CategoryName string `db:"category_name" table:"categories" column:"name"`
	model.Metadata
}

func (Room) GetJoinQuery() string {
	return "JOIN categories ON rooms.category_id = categories.id"
}

// ValidStatus reports whether the given value is part of the room status
// vocabulary.
func ValidStatus(status string) bool {
	switch status {
	case StatusAvailable, StatusBooked, StatusMaintenance:
		return true
	}

	return false
}
