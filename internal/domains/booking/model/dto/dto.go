package dto

import (
	"time"

	"github.com/google/uuid"

	"lodge/internal/domains/booking/model"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
)

type CreateBookingRequest struct {
	RoomID        string `json:"room_id"        validate:"required"`
	DurationHours int    `json:"duration_hours" validate:"required,min=1"`
}

func (c *CreateBookingRequest) ToModel(userID string) model.Booking {
	now := timezone.Now()

	return model.Booking{
		ID:          uuid.NewString(),
		UserID:      userID,
		RoomID:      c.RoomID,
		Status:      model.StatusOngoing,
		BookingDate: now,
		StartTime:   now,
		EndTime:     now.Add(time.Duration(c.DurationHours) * time.Hour),
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

type BookingResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	UserEmail   string `json:"user_email"`
	RoomID      string `json:"room_id"`
	RoomNumber  string `json:"room_number"`
	Status      string `json:"status"`
	BookingDate string `json:"booking_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.UserEmail = model.UserEmail
	r.RoomID = model.RoomID
	r.RoomNumber = model.RoomNumber
	r.Status = model.Status
	r.BookingDate = timezone.Format(model.BookingDate, constant.DateFormat)
	r.StartTime = timezone.Format(model.StartTime, constant.DateFormat)
	r.EndTime = timezone.Format(model.EndTime, constant.DateFormat)
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// LifecycleEvent is the payload published to Kafka whenever a booking is
// created or settled.
type LifecycleEvent struct {
	BookingID  string    `json:"booking_id"`
	RoomID     string    `json:"room_id"`
	UserID     string    `json:"user_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewLifecycleEvent(booking model.Booking, status string) LifecycleEvent {
	return LifecycleEvent{
		BookingID:  booking.ID,
		RoomID:     booking.RoomID,
		UserID:     booking.UserID,
		Status:     status,
		OccurredAt: timezone.Now(),
	}
}
