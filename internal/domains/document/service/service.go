package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"inn/config"
	"inn/infras/otel"
	"inn/infras/postgres"
	"inn/infras/s3"
	customerModel "inn/internal/domains/customer/model"
	customerRepo "inn/internal/domains/customer/repository"
	"inn/internal/domains/document/model/dto"
	"inn/shared"
	"inn/shared/constant"
	"inn/shared/failure"
	"inn/shared/filecheck"
	"inn/shared/timezone"
)

type Document interface {
	Upload(ctx context.Context, customerID, documentType, fileName string, content []byte) (dto.UploadDocumentResponse, error)
	Delete(ctx context.Context, customerID string) (dto.DeleteDocumentResponse, error)
}

type serviceImpl struct {
	customerRepo customerRepo.Customer
	db           *postgres.Connection
	cfg          *config.Config
	s3           s3.S3
	otel         otel.Otel
}

func New(customerRepo customerRepo.Customer, db *postgres.Connection, cfg *config.Config, s3 s3.S3, otel otel.Otel) Document {
	return &serviceImpl{
		customerRepo: customerRepo,
		db:           db,
		cfg:          cfg,
		s3:           s3,
		otel:         otel,
	}
}

// Upload validates the file, then replaces the customer's proof document
// inside one transaction with the customer row locked. The object is uploaded
// before commit, so a committed row never references a missing object. The
// previous object is removed best-effort after commit.
func (s *serviceImpl) Upload(ctx context.Context, customerID, documentType, fileName string, content []byte) (res dto.UploadDocumentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upload")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	documentType = strings.TrimSpace(documentType)
	if documentType == constant.Empty {
		return res, failure.BadRequestFromString("document_type is required") //nolint:wrapcheck
	}

	checked, err := filecheck.Validate(fileName, content, s.cfg.Upload.MaxFileSize)
	if err != nil {
		return res, err
	}

	filter := shared.FilterByID(customerID, customerModel.FieldID, customerModel.TableName)

	var oldKey string
	uploadedAt := timezone.Now()

	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		customer, err := s.customerRepo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to lock customer")

			return fmt.Errorf("failed to lock customer: %w", err)
		}

		if customer.ID == constant.Empty {
			return failure.NotFound("customer not found") //nolint:wrapcheck
		}

		if customer.ProofImageURL != nil {
			oldKey = s.s3.KeyFromURL(*customer.ProofImageURL)
		}

		objectKey := s.s3.BuildKey(customerID, checked.SanitizedName)

		url, err := s.s3.Upload(ctx, objectKey, checked.ContentType, content)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload document")

			return failure.ServiceUnavailable("document storage is unavailable") //nolint:wrapcheck
		}

		fields := map[string]any{
			customerModel.FieldProofOfIdentity:    documentType,
			customerModel.FieldProofImageURL:      url,
			customerModel.FieldProofImageFilename: checked.SanitizedName,
			customerModel.FieldUploadedAt:         uploadedAt,
			constant.FieldModifiedAt:              uploadedAt,
			constant.FieldModifiedBy:              user,
		}

		if err := s.customerRepo.UpdateTx(ctx, tx, fields, filter); err != nil {
			log.Error().Err(err).Msg("failed to update customer document")

			return fmt.Errorf("failed to update customer document: %w", err)
		}

		res.From(customerID, documentType, url, checked.SanitizedName, uploadedAt)

		return nil
	})
	if err != nil {
		return dto.UploadDocumentResponse{}, err
	}

	s.cleanupObject(ctx, oldKey)

	return res, nil
}

// Delete clears the customer's proof document fields and removes the object
// best-effort after commit.
func (s *serviceImpl) Delete(ctx context.Context, customerID string) (res dto.DeleteDocumentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	filter := shared.FilterByID(customerID, customerModel.FieldID, customerModel.TableName)

	var oldKey string

	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		customer, err := s.customerRepo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to lock customer")

			return fmt.Errorf("failed to lock customer: %w", err)
		}

		if customer.ID == constant.Empty {
			return failure.NotFound("customer not found") //nolint:wrapcheck
		}

		if customer.ProofImageURL == nil {
			return failure.NotFound("no document found for customer") //nolint:wrapcheck
		}

		oldKey = s.s3.KeyFromURL(*customer.ProofImageURL)

		fields := map[string]any{
			customerModel.FieldProofOfIdentity:    nil,
			customerModel.FieldProofImageURL:      nil,
			customerModel.FieldProofImageFilename: nil,
			customerModel.FieldUploadedAt:         nil,
			constant.FieldModifiedAt:              timezone.Now(),
			constant.FieldModifiedBy:              user,
		}

		if err := s.customerRepo.UpdateTx(ctx, tx, fields, filter); err != nil {
			log.Error().Err(err).Msg("failed to clear customer document")

			return fmt.Errorf("failed to clear customer document: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	s.cleanupObject(ctx, oldKey)

	res.CustomerID = customerID
	res.Deleted = true

	return res, nil
}

// cleanupObject removes a replaced object after the transaction committed.
// Failures are logged and never surfaced; the database row is authoritative.
func (s *serviceImpl) cleanupObject(ctx context.Context, objectKey string) {
	if objectKey == constant.Empty {
		return
	}

	c := context.WithoutCancel(ctx)

	if err := s.s3.Delete(c, objectKey); err != nil {
		log.Warn().Err(err).Str("objectKey", objectKey).Msg("failed to delete replaced document object")
	}
}
