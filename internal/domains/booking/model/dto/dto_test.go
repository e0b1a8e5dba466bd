package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inn/internal/domains/booking/model"
	"inn/internal/domains/booking/model/dto"
	"inn/shared/constant"
	"inn/shared/timezone"
)

func baseRequest() dto.CreateBookingRequest {
	today := timezone.Now()

	return dto.CreateBookingRequest{
		RoomID:            "5f6ae5e3-37a5-4f4a-8a4a-2f7a6a4b1c0d",
		CustomerID:        "9b2e8c1a-54d3-4e6f-b7a8-0c1d2e3f4a5b",
		ScheduledCheckIn:  today.Format(constant.DateOnlyFormat),
		ScheduledCheckOut: today.AddDate(0, 0, 3).Format(constant.DateOnlyFormat),
		TotalAmount:       300,
	}
}

func TestCreateBookingRequest_ParseDates(t *testing.T) {
	today := timezone.Now()

	tests := []struct {
		name    string
		mutate  func(req *dto.CreateBookingRequest)
		wantErr string
	}{
		{
			name:   "valid window",
			mutate: func(req *dto.CreateBookingRequest) {},
		},
		{
			name: "same-day stay is rejected",
			mutate: func(req *dto.CreateBookingRequest) {
				req.ScheduledCheckOut = req.ScheduledCheckIn
			},
			wantErr: "scheduled_check_out must be after scheduled_check_in",
		},
		{
			name: "check-out before check-in",
			mutate: func(req *dto.CreateBookingRequest) {
				req.ScheduledCheckOut = today.AddDate(0, 0, -2).Format(constant.DateOnlyFormat)
			},
			wantErr: "scheduled_check_out must be after scheduled_check_in",
		},
		{
			name: "check-in in the past",
			mutate: func(req *dto.CreateBookingRequest) {
				req.ScheduledCheckIn = today.AddDate(0, 0, -1).Format(constant.DateOnlyFormat)
			},
			wantErr: "scheduled_check_in cannot be in the past",
		},
		{
			name: "malformed check-in",
			mutate: func(req *dto.CreateBookingRequest) {
				req.ScheduledCheckIn = "2026/01/01"
			},
			wantErr: "scheduled_check_in must be a valid date (YYYY-MM-DD)",
		},
		{
			name: "malformed check-out",
			mutate: func(req *dto.CreateBookingRequest) {
				req.ScheduledCheckOut = "tomorrow"
			},
			wantErr: "scheduled_check_out must be a valid date (YYYY-MM-DD)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(&req)

			checkIn, checkOut, err := req.ParseDates()

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())

				return
			}

			require.NoError(t, err)
			assert.True(t, checkOut.After(checkIn))
		})
	}
}

func TestCreateBookingRequest_Statuses(t *testing.T) {
	tests := []struct {
		name        string
		booking     string
		payment     string
		wantBooking model.Status
		wantPayment model.Payment
		wantErr     string
	}{
		{
			name:        "defaults when omitted",
			wantBooking: model.StatusPrebooked,
			wantPayment: model.PaymentPending,
		},
		{
			name:        "caller supplied",
			booking:     "confirmed",
			payment:     "paid",
			wantBooking: model.StatusConfirmed,
			wantPayment: model.PaymentPaid,
		},
		{
			name:    "invalid booking status",
			booking: "pending_review",
			wantErr: "invalid booking_status: pending_review",
		},
		{
			name:    "invalid payment status",
			payment: "overdue",
			wantErr: "invalid payment_status: overdue",
		},
		{
			name:    "status is case sensitive",
			booking: "Confirmed",
			wantErr: "invalid booking_status: Confirmed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			req.BookingStatus = tt.booking
			req.PaymentStatus = tt.payment

			bookingStatus, paymentStatus, err := req.Statuses()

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantBooking, bookingStatus)
			assert.Equal(t, tt.wantPayment, paymentStatus)
		})
	}
}

func TestBookingResponse_FromModel(t *testing.T) {
	checkInAt := time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC)

	booking := model.Booking{
		ID:                "booking-id",
		RoomID:            "room-id",
		CustomerID:        "customer-id",
		ScheduledCheckIn:  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		ScheduledCheckOut: time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
		ActualCheckIn:     &checkInAt,
		BookingStatus:     model.StatusCheckedIn,
		PaymentStatus:     model.PaymentPartial,
		TotalAmount:       450,
		AmountPaid:        200,
	}

	var res dto.BookingResponse
	res.FromModel(booking)

	assert.Equal(t, "2026-09-01", res.ScheduledCheckIn)
	assert.Equal(t, "2026-09-04", res.ScheduledCheckOut)
	require.NotNil(t, res.ActualCheckIn)
	assert.Nil(t, res.ActualCheckOut)
	assert.Equal(t, "checked_in", res.BookingStatus)
	assert.Equal(t, "partial", res.PaymentStatus)
}
