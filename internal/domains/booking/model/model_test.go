package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lodge/internal/domains/booking/model"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from model.BookingStatus
		to   model.BookingStatus
		want bool
	}{
		{model.BookingStatusPending, model.BookingStatusConfirmed, true},
		{model.BookingStatusPending, model.BookingStatusCancelled, true},
		{model.BookingStatusPending, model.BookingStatusCheckedIn, false},
		{model.BookingStatusConfirmed, model.BookingStatusCheckedIn, true},
		{model.BookingStatusConfirmed, model.BookingStatusCancelled, true},
		{model.BookingStatusConfirmed, model.BookingStatusNoShow, true},
		{model.BookingStatusConfirmed, model.BookingStatusCheckedOut, false},
		{model.BookingStatusCheckedIn, model.BookingStatusCheckedOut, true},
		{model.BookingStatusCheckedIn, model.BookingStatusCancelled, false},
		{model.BookingStatusCheckedOut, model.BookingStatusCheckedIn, false},
		{model.BookingStatusCancelled, model.BookingStatusConfirmed, false},
		{model.BookingStatusNoShow, model.BookingStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+" to "+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingStatus_Blocking(t *testing.T) {
	assert.True(t, model.BookingStatusConfirmed.Blocking())
	assert.True(t, model.BookingStatusCheckedIn.Blocking())
	assert.False(t, model.BookingStatusPending.Blocking())
	assert.False(t, model.BookingStatusCheckedOut.Blocking())
	assert.False(t, model.BookingStatusCancelled.Blocking())
	assert.False(t, model.BookingStatusNoShow.Blocking())
}

func TestBooking_DerivePaymentStatus(t *testing.T) {
	tests := []struct {
		name     string
		payments model.PaymentList
		want     model.PaymentStatus
	}{
		{"no payments", model.PaymentList{}, model.PaymentStatusPending},
		{"partial payment", model.PaymentList{{Amount: 100}}, model.PaymentStatusPartial},
		{"exact payment", model.PaymentList{{Amount: 120}, {Amount: 100}}, model.PaymentStatusPaid},
		{"overpayment", model.PaymentList{{Amount: 500}}, model.PaymentStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := model.Booking{TotalAmount: 220, Payments: tt.payments}

			assert.Equal(t, tt.want, booking.DerivePaymentStatus())
		})
	}
}

func TestBooking_Nights(t *testing.T) {
	checkIn := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	booking := model.Booking{
		CheckInDate:  checkIn,
		CheckOutDate: checkIn.AddDate(0, 0, 3),
	}

	assert.Equal(t, 3, booking.Nights())
}
