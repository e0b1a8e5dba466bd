package model

import (
	"time"

	"inn/shared/model"
)

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID                 = "id"
	FieldName               = "name"
	FieldEmail              = "email"
	FieldPhone              = "phone"
	FieldAddress            = "address"
	FieldProofOfIdentity    = "proof_of_identity"
	FieldProofImageURL      = "proof_image_url"
	FieldProofImageFilename = "proof_image_filename"
	FieldUploadedAt         = "uploaded_at"
)

type Customer struct {
	ID                 string     `db:"id"`
	Name               string     `db:"name"`
	Email              string     `db:"email"`
	Phone              string     `db:"phone"`
	Address            string     `db:"address"`
	ProofOfIdentity    *string    `db:"proof_of_identity"`
	ProofImageURL      *string    `db:"proof_image_url"`
	ProofImageFilename *string    `db:"proof_image_filename"`
	UploadedAt         *time.Time `db:"uploaded_at"`
	model.Metadata
}
