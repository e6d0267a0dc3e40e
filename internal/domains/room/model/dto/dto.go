package dto

import (
	"github.com/google/uuid"

	"lodge/internal/domains/room/model"
	"lodge/shared"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
)

type CreateRoomRequest struct {
	RoomNumber  string `json:"room_number" validate:"required,max=20"`
	Status      string `json:"status"      validate:"omitempty,oneof=AVAILABLE BOOKED MAINTENANCE"`
	Floor       int    `json:"floor"       validate:"omitempty,min=0"`
	Description string `json:"description" validate:"omitempty,max=500"`
	CategoryID  string `json:"category_id" validate:"required"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	status := c.Status
	if status == "" {
		status = model.StatusAvailable
	}

	return model.Room{
		ID:          uuid.NewString(),
		RoomNumber:  c.RoomNumber,
		Status:      status,
		Floor:       c.Floor,
		Description: c.Description,
		CategoryID:  c.CategoryID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=AVAILABLE BOOKED MAINTENANCE"`
}

type RoomResponse struct {
	ID           string `json:"id"`
	RoomNumber   string `json:"room_number"`
	Status       string `json:"status"`
	Floor        int    `json:"floor"`
	Description  string `json:"description"`
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.Status = model.Status
	r.Floor = model.Floor
	r.Description = model.Description
	r.CategoryID = model.CategoryID
	r.CategoryName = model.CategoryName
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
