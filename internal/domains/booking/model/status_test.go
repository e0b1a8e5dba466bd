package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"inn/internal/domains/booking/model"
)

func TestStatus_Transitions(t *testing.T) {
	tests := []struct {
		status      model.Status
		valid       bool
		canCheckIn  bool
		canCheckOut bool
		canCancel   bool
	}{
		{status: model.StatusPrebooked, valid: true, canCheckIn: true, canCancel: true},
		{status: model.StatusConfirmed, valid: true, canCheckIn: true, canCancel: true},
		{status: model.StatusCheckedIn, valid: true, canCheckOut: true},
		{status: model.StatusCheckedOut, valid: true},
		{status: model.StatusCancelled, valid: true},
		{status: model.StatusNoShow, valid: true},
		{status: model.Status("pending_review")},
		{status: model.Status("")},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.status.Valid())
			assert.Equal(t, tt.canCheckIn, tt.status.CanCheckIn())
			assert.Equal(t, tt.canCheckOut, tt.status.CanCheckOut())
			assert.Equal(t, tt.canCancel, tt.status.CanCancel())
		})
	}
}

func TestActiveStatuses(t *testing.T) {
	assert.ElementsMatch(t, []string{"prebooked", "confirmed", "checked_in"}, model.ActiveStatuses)
}

func TestPayment_Valid(t *testing.T) {
	for _, p := range []model.Payment{model.PaymentPending, model.PaymentPartial, model.PaymentPaid, model.PaymentRefunded} {
		assert.True(t, p.Valid(), string(p))
	}

	assert.False(t, model.Payment("overdue").Valid())
	assert.False(t, model.Payment("Paid").Valid())
}
