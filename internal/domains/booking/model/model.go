package model

import (
	"time"

	"inn/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                = "id"
	FieldRoomID            = "room_id"
	FieldCustomerID        = "customer_id"
	FieldScheduledCheckIn  = "scheduled_check_in"
	FieldScheduledCheckOut = "scheduled_check_out"
	FieldActualCheckIn     = "actual_check_in"
	FieldActualCheckOut    = "actual_check_out"
	FieldBookingStatus     = "booking_status"
	FieldPaymentStatus     = "payment_status"
	FieldTotalAmount       = "total_amount"
	FieldAmountPaid        = "amount_paid"
	FieldAdditionalCharges = "additional_charges"
	FieldNotes             = "notes"
)

type Booking struct {
	ID                 string     `db:"id"`
	RoomID             string     `db:"room_id"`
	CustomerID         string     `db:"customer_id"`
	ScheduledCheckIn   time.Time  `db:"scheduled_check_in"`
	ScheduledCheckOut  time.Time  `db:"scheduled_check_out"`
	ActualCheckIn      *time.Time `db:"actual_check_in"`
	ActualCheckOut     *time.Time `db:"actual_check_out"`
	BookingStatus      Status     `db:"booking_status"`
	PaymentStatus      Payment    `db:"payment_status"`
	TotalAmount        float64    `db:"total_amount"`
	AmountPaid         float64    `db:"amount_paid"`
	AdditionalCharges  float64    `db:"additional_charges"`
	Notes              string     `db:"notes"`
	model.Metadata
}
