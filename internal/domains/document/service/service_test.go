package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"inn/config"
	"inn/infras/otel/mocks"
	"inn/infras/postgres"
	s3Mocks "inn/infras/s3/mocks"
	customerMocks "inn/internal/domains/customer/mocks"
	customerModel "inn/internal/domains/customer/model"
	"inn/internal/domains/document/service"
	gDto "inn/shared/dto"
	"inn/shared/failure"
)

var pdfContent = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")

type fixture struct {
	customerRepo *customerMocks.MockCustomer
	s3           *s3Mocks.MockS3
	sqlMock      sqlmock.Sqlmock
	svc          service.Document
}

func newFixture(t *testing.T, ctrl *gomock.Controller) *fixture {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	conn := &postgres.Connection{Write: sqlx.NewDb(db, "postgres")}

	cfg := &config.Config{}
	cfg.Upload.MaxFileSize = 1024

	f := &fixture{
		customerRepo: customerMocks.NewMockCustomer(ctrl),
		s3:           s3Mocks.NewMockS3(ctrl),
		sqlMock:      sqlMock,
	}

	f.svc = service.New(f.customerRepo, conn, cfg, f.s3, mocks.NewOtel())

	return f
}

func storedCustomer(proofURL *string) customerModel.Customer {
	return customerModel.Customer{
		ID:            "customer-id",
		Name:          "Jane Guest",
		Email:         "jane@example.com",
		ProofImageURL: proofURL,
	}
}

func TestDocumentService_Upload(t *testing.T) {
	const (
		newURL = "https://bucket.s3.us-east-1.amazonaws.com/customer_proofs/customer-id/123_passport.pdf"
		oldURL = "https://bucket.s3.us-east-1.amazonaws.com/customer_proofs/customer-id/99_old.pdf"
		oldKey = "customer_proofs/customer-id/99_old.pdf"
	)

	t.Run("first upload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(t, ctrl)

		f.sqlMock.ExpectBegin()

		f.customerRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(storedCustomer(nil), nil)

		f.s3.EXPECT().
			BuildKey("customer-id", "passport.pdf").
			Return("customer_proofs/customer-id/123_passport.pdf")

		f.s3.EXPECT().
			Upload(gomock.Any(), "customer_proofs/customer-id/123_passport.pdf", "application/pdf", pdfContent).
			Return(newURL, nil)

		f.customerRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "passport", fields[customerModel.FieldProofOfIdentity])
				assert.Equal(t, newURL, fields[customerModel.FieldProofImageURL])
				assert.Equal(t, "passport.pdf", fields[customerModel.FieldProofImageFilename])

				return nil
			})

		f.sqlMock.ExpectCommit()

		res, err := f.svc.Upload(context.Background(), "customer-id", "passport", "passport.pdf", pdfContent)
		require.NoError(t, err)

		assert.Equal(t, "customer-id", res.CustomerID)
		assert.Equal(t, "passport", res.DocumentType)
		assert.Equal(t, newURL, res.FileURL)
		assert.Equal(t, "passport.pdf", res.Filename)
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})

	t.Run("replacement deletes old object after commit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(t, ctrl)

		existing := oldURL

		f.sqlMock.ExpectBegin()

		f.customerRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(storedCustomer(&existing), nil)

		f.s3.EXPECT().KeyFromURL(oldURL).Return(oldKey)
		f.s3.EXPECT().BuildKey("customer-id", "passport.pdf").Return("new-key")
		f.s3.EXPECT().Upload(gomock.Any(), "new-key", "application/pdf", pdfContent).Return(newURL, nil)

		f.customerRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		f.sqlMock.ExpectCommit()

		f.s3.EXPECT().Delete(gomock.Any(), oldKey).Return(nil)

		res, err := f.svc.Upload(context.Background(), "customer-id", "passport", "passport.pdf", pdfContent)
		require.NoError(t, err)

		assert.Equal(t, newURL, res.FileURL)
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})

	t.Run("cleanup failure does not surface", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(t, ctrl)

		existing := oldURL

		f.sqlMock.ExpectBegin()

		f.customerRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(storedCustomer(&existing), nil)

		f.s3.EXPECT().KeyFromURL(oldURL).Return(oldKey)
		f.s3.EXPECT().BuildKey("customer-id", "passport.pdf").Return("new-key")
		f.s3.EXPECT().Upload(gomock.Any(), "new-key", "application/pdf", pdfContent).Return(newURL, nil)

		f.customerRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		f.sqlMock.ExpectCommit()

		f.s3.EXPECT().Delete(gomock.Any(), oldKey).Return(errors.New("s3 unreachable"))

		res, err := f.svc.Upload(context.Background(), "customer-id", "passport", "passport.pdf", pdfContent)
		require.NoError(t, err)

		// The new locator survives even though the old object lingers.
		assert.Equal(t, newURL, res.FileURL)
	})

	t.Run("storage failure aborts the transaction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(t, ctrl)

		f.sqlMock.ExpectBegin()

		f.customerRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(storedCustomer(nil), nil)

		f.s3.EXPECT().BuildKey("customer-id", "passport.pdf").Return("new-key")
		f.s3.EXPECT().Upload(gomock.Any(), "new-key", "application/pdf", pdfContent).Return("", errors.New("s3 down"))

		f.sqlMock.ExpectRollback()

		_, err := f.svc.Upload(context.Background(), "customer-id", "passport", "passport.pdf", pdfContent)

		require.Error(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, failure.GetCode(err))
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})

	t.Run("customer not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(t, ctrl)

		f.sqlMock.ExpectBegin()

		f.customerRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(customerModel.Customer{}, nil)

		f.sqlMock.ExpectRollback()

		_, err := f.svc.Upload(context.Background(), "missing-id", "passport", "passport.pdf", pdfContent)

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})

	t.Run("missing document type", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(t, ctrl)

		_, err := f.svc.Upload(context.Background(), "customer-id", "  ", "passport.pdf", pdfContent)

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("oversize file rejected before any IO", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(t, ctrl)

		_, err := f.svc.Upload(context.Background(), "customer-id", "passport", "big.pdf", make([]byte, 2048))

		require.Error(t, err)
		assert.Equal(t, http.StatusRequestEntityTooLarge, failure.GetCode(err))
	})

	t.Run("executable disguised as pdf rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(t, ctrl)

		_, err := f.svc.Upload(context.Background(), "customer-id", "passport", "invoice.pdf", []byte{'M', 'Z', 0x90, 0x00})

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestDocumentService_Delete(t *testing.T) {
	const (
		proofURL = "https://bucket.s3.us-east-1.amazonaws.com/customer_proofs/customer-id/99_old.pdf"
		proofKey = "customer_proofs/customer-id/99_old.pdf"
	)

	t.Run("successful delete", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(t, ctrl)

		existing := proofURL

		f.sqlMock.ExpectBegin()

		f.customerRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(storedCustomer(&existing), nil)

		f.s3.EXPECT().KeyFromURL(proofURL).Return(proofKey)

		f.customerRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Nil(t, fields[customerModel.FieldProofOfIdentity])
				assert.Nil(t, fields[customerModel.FieldProofImageURL])
				assert.Nil(t, fields[customerModel.FieldProofImageFilename])
				assert.Nil(t, fields[customerModel.FieldUploadedAt])

				return nil
			})

		f.sqlMock.ExpectCommit()

		f.s3.EXPECT().Delete(gomock.Any(), proofKey).Return(nil)

		res, err := f.svc.Delete(context.Background(), "customer-id")
		require.NoError(t, err)

		assert.Equal(t, "customer-id", res.CustomerID)
		assert.True(t, res.Deleted)
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})

	t.Run("no document on file", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(t, ctrl)

		f.sqlMock.ExpectBegin()

		f.customerRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(storedCustomer(nil), nil)

		f.sqlMock.ExpectRollback()

		_, err := f.svc.Delete(context.Background(), "customer-id")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})

	t.Run("customer not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(t, ctrl)

		f.sqlMock.ExpectBegin()

		f.customerRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(customerModel.Customer{}, nil)

		f.sqlMock.ExpectRollback()

		_, err := f.svc.Delete(context.Background(), "missing-id")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
