package dto

import (
	"github.com/google/uuid"

	"inn/internal/domains/room/model"
	"inn/shared"
	gDto "inn/shared/dto"
	gModel "inn/shared/model"
	"inn/shared/timezone"
)

type CreateRoomRequest struct {
	Name          string   `json:"name"            validate:"required,max=100"`
	Type          string   `json:"type"            validate:"required,max=50"`
	Floor         int      `json:"floor"           validate:"omitempty,min=0"`
	Capacity      int      `json:"capacity"        validate:"required,min=1"`
	PricePerNight float64  `json:"price_per_night" validate:"required,gt=0"`
	Amenities     []string `json:"amenities"       validate:"omitempty,dive,max=50"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	return model.Room{
		ID:            uuid.NewString(),
		Name:          c.Name,
		Type:          c.Type,
		Floor:         c.Floor,
		Capacity:      c.Capacity,
		PricePerNight: c.PricePerNight,
		Amenities:     c.Amenities,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type RoomResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Floor         int      `json:"floor"`
	Capacity      int      `json:"capacity"`
	PricePerNight float64  `json:"price_per_night"`
	Amenities     []string `json:"amenities"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Type = model.Type
	r.Floor = model.Floor
	r.Capacity = model.Capacity
	r.PricePerNight = model.PricePerNight
	r.Amenities = model.Amenities
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
