package model

// Status is the booking lifecycle state. The set is closed; anything else is
// rejected at the boundary.
type Status string

const (
	StatusPrebooked  Status = "prebooked"
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

// ActiveStatuses are the states that keep a room occupied for the purpose of
// the overlap check.
var ActiveStatuses = []string{
	string(StatusPrebooked),
	string(StatusConfirmed),
	string(StatusCheckedIn),
}

func (s Status) Valid() bool {
	switch s {
	case StatusPrebooked, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

// CanCheckIn reports whether a guest may check in from this state.
func (s Status) CanCheckIn() bool {
	return s == StatusPrebooked || s == StatusConfirmed
}

// CanCheckOut reports whether a guest may check out from this state.
func (s Status) CanCheckOut() bool {
	return s == StatusCheckedIn
}

// CanCancel reports whether the booking may still be cancelled. Bookings that
// reached check-in are settled through check-out instead.
func (s Status) CanCancel() bool {
	return s == StatusPrebooked || s == StatusConfirmed
}

// Payment is the payment settlement state.
type Payment string

const (
	PaymentPending  Payment = "pending"
	PaymentPartial  Payment = "partial"
	PaymentPaid     Payment = "paid"
	PaymentRefunded Payment = "refunded"
)

func (p Payment) Valid() bool {
	switch p {
	case PaymentPending, PaymentPartial, PaymentPaid, PaymentRefunded:
		return true
	default:
		return false
	}
}
