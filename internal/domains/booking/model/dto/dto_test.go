package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/model/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
)

func TestCreateBookingRequest_ToModel(t *testing.T) {
	req := dto.CreateBookingRequest{
		RoomID:        "room-1",
		DurationHours: 3,
	}

	booking := req.ToModel("user-1")

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "user-1", booking.UserID)
	assert.Equal(t, "room-1", booking.RoomID)
	assert.Equal(t, model.StatusOngoing, booking.Status)
	assert.Equal(t, booking.StartTime, booking.BookingDate)
	assert.Equal(t, 3*time.Hour, booking.EndTime.Sub(booking.StartTime))
	assert.Equal(t, "user-1", booking.CreatedBy)
	assert.Equal(t, "user-1", booking.ModifiedBy)
}

func TestBookingResponse_FromModel(t *testing.T) {
	now := timezone.Now()

	booking := model.Booking{
		ID:          "booking-1",
		UserID:      "user-1",
		UserEmail:   "jane@example.com",
		RoomID:      "room-1",
		RoomNumber:  "101",
		Status:      model.StatusDone,
		BookingDate: now,
		StartTime:   now,
		EndTime:     now.Add(2 * time.Hour),
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "user-1",
			ModifiedBy: "user-1",
		},
	}

	var response dto.BookingResponse
	response.FromModel(booking)

	assert.Equal(t, "booking-1", response.ID)
	assert.Equal(t, "jane@example.com", response.UserEmail)
	assert.Equal(t, "101", response.RoomNumber)
	assert.Equal(t, model.StatusDone, response.Status)
	assert.NotEmpty(t, response.BookingDate)
	assert.NotEmpty(t, response.EndTime)
}

func TestGetBookingsResponse_FromModels(t *testing.T) {
	models := []model.Booking{
		{ID: "booking-1", Status: model.StatusOngoing},
		{ID: "booking-2", Status: model.StatusDone},
	}

	var response dto.GetBookingsResponse
	response.FromModels(models, 12, 10)

	assert.Len(t, response.Bookings, 2)
	assert.Equal(t, 12, response.TotalData)
	assert.Equal(t, 2, response.TotalPage)
	assert.Equal(t, "booking-1", response.Bookings[0].ID)
}

func TestNewLifecycleEvent(t *testing.T) {
	booking := model.Booking{
		ID:     "booking-1",
		RoomID: "room-1",
		UserID: "user-1",
		Status: model.StatusOngoing,
	}

	event := dto.NewLifecycleEvent(booking, model.StatusCancelled)

	assert.Equal(t, "booking-1", event.BookingID)
	assert.Equal(t, "room-1", event.RoomID)
	assert.Equal(t, "user-1", event.UserID)
	assert.Equal(t, model.StatusCancelled, event.Status)
	assert.False(t, event.OccurredAt.IsZero())
}
