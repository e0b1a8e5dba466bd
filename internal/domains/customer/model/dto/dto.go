package dto

import (
	"strings"

	"github.com/google/uuid"

	"inn/internal/domains/customer/model"
	"inn/shared"
	"inn/shared/constant"
	gDto "inn/shared/dto"
	gModel "inn/shared/model"
	"inn/shared/timezone"
)

type CreateCustomerRequest struct {
	Name            string `json:"name"              validate:"required,max=100"`
	Email           string `json:"email"             validate:"required,email"`
	Phone           string `json:"phone"             validate:"omitempty,max=30"`
	Address         string `json:"address"           validate:"omitempty,max=255"`
	ProofOfIdentity string `json:"proof_of_identity" validate:"required,max=100"`
}

func (c *CreateCustomerRequest) ToModel(user string) model.Customer {
	proofOfIdentity := c.ProofOfIdentity

	return model.Customer{
		ID:              uuid.NewString(),
		Name:            c.Name,
		Email:           strings.ToLower(strings.TrimSpace(c.Email)),
		Phone:           c.Phone,
		Address:         c.Address,
		ProofOfIdentity: &proofOfIdentity,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type CustomerResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	Phone              string  `json:"phone"`
	Address            string  `json:"address"`
	ProofOfIdentity    *string `json:"proof_of_identity"`
	ProofImageURL      *string `json:"proof_image_url"`
	ProofImageFilename *string `json:"proof_image_filename"`
	UploadedAt         *string `json:"uploaded_at"`
	gDto.Metadata
}

func (c *CustomerResponse) FromModel(model model.Customer) {
	c.ID = model.ID
	c.Name = model.Name
	c.Email = model.Email
	c.Phone = model.Phone
	c.Address = model.Address
	c.ProofOfIdentity = model.ProofOfIdentity
	c.ProofImageURL = model.ProofImageURL
	c.ProofImageFilename = model.ProofImageFilename

	if model.UploadedAt != nil {
		uploadedAt := timezone.Format(*model.UploadedAt, constant.DateFormat)
		c.UploadedAt = &uploadedAt
	}

	c.Metadata.FromModel(model.Metadata)
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (g *GetCustomersResponse) FromModels(models []model.Customer, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Customers = make([]CustomerResponse, len(models))
	for i, mod := range models {
		g.Customers[i].FromModel(mod)
	}
}
