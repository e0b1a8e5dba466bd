package dto

import (
	"time"

	"inn/shared/constant"
	"inn/shared/timezone"
)

type UploadDocumentResponse struct {
	CustomerID   string `json:"customer_id"`
	DocumentType string `json:"document_type"`
	FileURL      string `json:"file_url"`
	Filename     string `json:"filename"`
	UploadedAt   string `json:"uploaded_at"`
}

func (u *UploadDocumentResponse) From(customerID, documentType, fileURL, filename string, uploadedAt time.Time) {
	u.CustomerID = customerID
	u.DocumentType = documentType
	u.FileURL = fileURL
	u.Filename = filename
	u.UploadedAt = timezone.Format(uploadedAt, constant.DateFormat)
}

type DeleteDocumentResponse struct {
	CustomerID string `json:"customer_id"`
	Deleted    bool   `json:"deleted"`
}
