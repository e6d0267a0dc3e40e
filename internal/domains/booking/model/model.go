package model

import (
	"time"

	"lodge/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID          = "id"
	FieldUserID      = "user_id"
	FieldRoomID      = "room_id"
	FieldStatus      = "status"
	FieldBookingDate = "booking_date"
	FieldStartTime   = "start_time"
	FieldEndTime     = "end_time"

	StatusOngoing   = "ONGOING"
	StatusDone      = "DONE"
	StatusCancelled = "CANCELLED"
)

type Booking struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	RoomID      string    `db:"room_id"`
	Status      string    `db:"status"`
	BookingDate time.Time `db:"booking_date"`
	StartTime   time.Time `db:"start_time"`
	EndTime     time.Time `db:"end_time"`
	RoomNumber  string    `db:"room_number" table:"rooms" column:"room_number"`
	UserEmail   string    `db:"user_email"  table:"users" column:"email"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "JOIN rooms ON bookings.room_id = rooms.id JOIN users ON bookings.user_id = users.id"
}

// ValidStatus reports whether the given value is part of the booking status
// vocabulary.
func ValidStatus(status string) bool {
	switch status {
	case StatusOngoing, StatusDone, StatusCancelled:
		return true
	}

	return false
}

// TerminalStatus reports whether the given value is a terminal booking status.
func TerminalStatus(status string) bool {
	return status == StatusDone || status == StatusCancelled
}
