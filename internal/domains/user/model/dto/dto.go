package dto

import (
	"inn/internal/domains/user/model"
	"inn/shared"
	gDto "inn/shared/dto"
)

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Active   bool   `json:"active"`
	gDto.Metadata
}

func (u *UserResponse) FromModel(model model.User) {
	u.ID = model.ID
	u.Username = model.Username
	u.Active = model.Active
	u.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (g *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		g.Users[i].FromModel(mod)
	}
}
