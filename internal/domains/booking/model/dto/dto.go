package dto

import (
	"time"

	"github.com/google/uuid"

	"inn/internal/domains/booking/model"
	"inn/shared"
	"inn/shared/constant"
	gDto "inn/shared/dto"
	"inn/shared/failure"
	gModel "inn/shared/model"
	"inn/shared/timezone"
)

type CreateBookingRequest struct {
	RoomID            string  `json:"room_id"             validate:"required,uuid4"`
	CustomerID        string  `json:"customer_id"         validate:"required,uuid4"`
	ScheduledCheckIn  string  `json:"scheduled_check_in"  validate:"required"`
	ScheduledCheckOut string  `json:"scheduled_check_out" validate:"required"`
	BookingStatus     string  `json:"booking_status"      validate:"omitempty"`
	PaymentStatus     string  `json:"payment_status"      validate:"omitempty"`
	TotalAmount       float64 `json:"total_amount"        validate:"required,gt=0"`
	AmountPaid        float64 `json:"amount_paid"         validate:"omitempty,min=0"`
	AdditionalCharges float64 `json:"additional_charges"  validate:"omitempty,min=0"`
	Notes             string  `json:"notes"               validate:"omitempty,max=500"`
}

// ParseDates validates the stay window: dates well-formed, check-in not in
// the past, check-out strictly after check-in.
func (c *CreateBookingRequest) ParseDates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = time.Parse(constant.DateOnlyFormat, c.ScheduledCheckIn)
	if err != nil {
		return checkIn, checkOut, failure.BadRequestFromString("scheduled_check_in must be a valid date (YYYY-MM-DD)") //nolint:wrapcheck
	}

	checkOut, err = time.Parse(constant.DateOnlyFormat, c.ScheduledCheckOut)
	if err != nil {
		return checkIn, checkOut, failure.BadRequestFromString("scheduled_check_out must be a valid date (YYYY-MM-DD)") //nolint:wrapcheck
	}

	today, err := time.Parse(constant.DateOnlyFormat, timezone.Now().Format(constant.DateOnlyFormat))
	if err != nil {
		return checkIn, checkOut, failure.InternalError(err) //nolint:wrapcheck
	}

	if checkIn.Before(today) {
		return checkIn, checkOut, failure.BadRequestFromString("scheduled_check_in cannot be in the past") //nolint:wrapcheck
	}

	if !checkOut.After(checkIn) {
		return checkIn, checkOut, failure.BadRequestFromString("scheduled_check_out must be after scheduled_check_in") //nolint:wrapcheck
	}

	return checkIn, checkOut, nil
}

// Statuses returns the requested statuses, falling back to prebooked/pending
// when omitted and rejecting anything outside the closed sets.
func (c *CreateBookingRequest) Statuses() (model.Status, model.Payment, error) {
	bookingStatus := model.StatusPrebooked
	if c.BookingStatus != "" {
		bookingStatus = model.Status(c.BookingStatus)
		if !bookingStatus.Valid() {
			return "", "", failure.BadRequestFromString("invalid booking_status: " + c.BookingStatus) //nolint:wrapcheck
		}
	}

	paymentStatus := model.PaymentPending
	if c.PaymentStatus != "" {
		paymentStatus = model.Payment(c.PaymentStatus)
		if !paymentStatus.Valid() {
			return "", "", failure.BadRequestFromString("invalid payment_status: " + c.PaymentStatus) //nolint:wrapcheck
		}
	}

	return bookingStatus, paymentStatus, nil
}

func (c *CreateBookingRequest) ToModel(user string, checkIn, checkOut time.Time, bookingStatus model.Status, paymentStatus model.Payment) model.Booking {
	return model.Booking{
		ID:                uuid.NewString(),
		RoomID:            c.RoomID,
		CustomerID:        c.CustomerID,
		ScheduledCheckIn:  checkIn,
		ScheduledCheckOut: checkOut,
		BookingStatus:     bookingStatus,
		PaymentStatus:     paymentStatus,
		TotalAmount:       c.TotalAmount,
		AmountPaid:        c.AmountPaid,
		AdditionalCharges: c.AdditionalCharges,
		Notes:             c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type BookingResponse struct {
	ID                 string  `json:"id"`
	RoomID             string  `json:"room_id"`
	CustomerID         string  `json:"customer_id"`
	ScheduledCheckIn   string  `json:"scheduled_check_in"`
	ScheduledCheckOut  string  `json:"scheduled_check_out"`
	ActualCheckIn      *string `json:"actual_check_in"`
	ActualCheckOut     *string `json:"actual_check_out"`
	BookingStatus      string  `json:"booking_status"`
	PaymentStatus      string  `json:"payment_status"`
	TotalAmount        float64 `json:"total_amount"`
	AmountPaid         float64 `json:"amount_paid"`
	AdditionalCharges  float64 `json:"additional_charges"`
	Notes              string  `json:"notes"`
	gDto.Metadata
}

func (b *BookingResponse) FromModel(model model.Booking) {
	b.ID = model.ID
	b.RoomID = model.RoomID
	b.CustomerID = model.CustomerID
	b.ScheduledCheckIn = model.ScheduledCheckIn.Format(constant.DateOnlyFormat)
	b.ScheduledCheckOut = model.ScheduledCheckOut.Format(constant.DateOnlyFormat)
	b.BookingStatus = string(model.BookingStatus)
	b.PaymentStatus = string(model.PaymentStatus)
	b.TotalAmount = model.TotalAmount
	b.AmountPaid = model.AmountPaid
	b.AdditionalCharges = model.AdditionalCharges
	b.Notes = model.Notes

	if model.ActualCheckIn != nil {
		actualCheckIn := timezone.Format(*model.ActualCheckIn, constant.DateFormat)
		b.ActualCheckIn = &actualCheckIn
	}

	if model.ActualCheckOut != nil {
		actualCheckOut := timezone.Format(*model.ActualCheckOut, constant.DateFormat)
		b.ActualCheckOut = &actualCheckOut
	}

	b.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (g *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		g.Bookings[i].FromModel(mod)
	}
}
