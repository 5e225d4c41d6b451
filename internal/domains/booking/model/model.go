package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lodge/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                 = "id"
	FieldHotelID            = "hotel_id"
	FieldRoomID             = "room_id"
	FieldBookingNumber      = "booking_number"
	FieldGuest              = "guest"
	FieldCheckInDate        = "check_in_date"
	FieldCheckOutDate       = "check_out_date"
	FieldNumberOfGuests     = "number_of_guests"
	FieldBookingStatus      = "booking_status"
	FieldPaymentStatus      = "payment_status"
	FieldSource             = "source"
	FieldBaseAmount         = "base_amount"
	FieldTaxAmount          = "tax_amount"
	FieldTotalAmount        = "total_amount"
	FieldPayments           = "payments"
	FieldRoomCharges        = "room_charges"
	FieldCheckInTime        = "check_in_time"
	FieldCheckOutTime       = "check_out_time"
	FieldCancellationDate   = "cancellation_date"
	FieldCancellationReason = "cancellation_reason"
	FieldNotes              = "notes"
)

// TaxRate is the fixed fraction applied on top of the nightly base amount.
const TaxRate = 0.10

var errScanType = errors.New("unsupported scan source")

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusCheckedIn  BookingStatus = "checked_in"
	BookingStatusCheckedOut BookingStatus = "checked_out"
	BookingStatusCancelled  BookingStatus = "cancelled"
	BookingStatusNoShow     BookingStatus = "no_show"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCheckedIn,
		BookingStatusCheckedOut, BookingStatusCancelled, BookingStatusNoShow:
		return true
	}

	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BookingStatusCheckedOut, BookingStatusCancelled, BookingStatusNoShow:
		return true
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCheckedIn:
		return false
	}

	return false
}

// CanTransitionTo encodes the booking state machine. A checked-in booking
// can only be checked out; cancellation is never allowed once the guest
// has checked in.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return target == BookingStatusConfirmed || target == BookingStatusCancelled
	case BookingStatusConfirmed:
		return target == BookingStatusCheckedIn || target == BookingStatusCancelled || target == BookingStatusNoShow
	case BookingStatusCheckedIn:
		return target == BookingStatusCheckedOut
	case BookingStatusCheckedOut, BookingStatusCancelled, BookingStatusNoShow:
		return false
	}

	return false
}

// Blocking reports whether a booking in this status makes its room
// unavailable for overlapping date ranges.
func (s BookingStatus) Blocking() bool {
	return s == BookingStatusConfirmed || s == BookingStatusCheckedIn
}

// BlockingStatuses lists the statuses that count against availability.
func BlockingStatuses() []string {
	return []string{string(BookingStatusConfirmed), string(BookingStatusCheckedIn)}
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPartial  PaymentStatus = "partial"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
	PaymentStatusFailed   PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPartial, PaymentStatusPaid,
		PaymentStatusRefunded, PaymentStatusFailed:
		return true
	}

	return false
}

type BookingSource string

const (
	BookingSourceDirect  BookingSource = "direct"
	BookingSourceWebsite BookingSource = "website"
	BookingSourcePhone   BookingSource = "phone"
	BookingSourceWalkIn  BookingSource = "walk_in"
	BookingSourceOTA     BookingSource = "ota"
)

func (s BookingSource) Valid() bool {
	switch s {
	case BookingSourceDirect, BookingSourceWebsite, BookingSourcePhone,
		BookingSourceWalkIn, BookingSourceOTA:
		return true
	}

	return false
}

// Guest is stored as a jsonb column on the booking row.
type Guest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address,omitempty"`
	IDNumber string `json:"id_number,omitempty"`
}

func (g Guest) Value() (driver.Value, error) {
	return json.Marshal(g) //nolint:wrapcheck
}

func (g *Guest) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, g) //nolint:wrapcheck
	case string:
		return json.Unmarshal([]byte(v), g) //nolint:wrapcheck
	case nil:
		return nil
	default:
		return fmt.Errorf("%w: %T", errScanType, src)
	}
}

// PaymentRecordStatusCompleted marks a settled payment record inside the
// payments jsonb list, distinct from the booking-level PaymentStatus.
const PaymentRecordStatusCompleted = "completed"

// Payment is an immutable record appended to a booking. Payments never
// change the booking totals, only the derived payment status.
type Payment struct {
	Method        string    `json:"method"`
	Amount        float64   `json:"amount"`
	TransactionID string    `json:"transaction_id,omitempty"`
	Status        string    `json:"status"`
	PaidAt        time.Time `json:"paid_at"`
	Notes         string    `json:"notes,omitempty"`
}

type PaymentList []Payment

func (p PaymentList) Value() (driver.Value, error) {
	if p == nil {
		p = PaymentList{}
	}

	return json.Marshal(p) //nolint:wrapcheck
}

func (p *PaymentList) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p) //nolint:wrapcheck
	case string:
		return json.Unmarshal([]byte(v), p) //nolint:wrapcheck
	case nil:
		return nil
	default:
		return fmt.Errorf("%w: %T", errScanType, src)
	}
}

// Sum returns the total amount paid so far.
func (p PaymentList) Sum() float64 {
	var total float64
	for _, payment := range p {
		total += payment.Amount
	}

	return total
}

// RoomCharge is an incidental fee added while the guest is checked in.
// Appending one raises total_amount by its amount.
type RoomCharge struct {
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	ChargeType  string    `json:"charge_type"`
	ChargedAt   time.Time `json:"charged_at"`
	Notes       string    `json:"notes,omitempty"`
}

type ChargeList []RoomCharge

func (c ChargeList) Value() (driver.Value, error) {
	if c == nil {
		c = ChargeList{}
	}

	return json.Marshal(c) //nolint:wrapcheck
}

func (c *ChargeList) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, c) //nolint:wrapcheck
	case string:
		return json.Unmarshal([]byte(v), c) //nolint:wrapcheck
	case nil:
		return nil
	default:
		return fmt.Errorf("%w: %T", errScanType, src)
	}
}

func (c ChargeList) Sum() float64 {
	var total float64
	for _, charge := range c {
		total += charge.Amount
	}

	return total
}

type Booking struct {
	ID                 string        `db:"id"`
	HotelID            string        `db:"hotel_id"`
	RoomID             string        `db:"room_id"`
	BookingNumber      string        `db:"booking_number"`
	Guest              Guest         `db:"guest"`
	CheckInDate        time.Time     `db:"check_in_date"`
	CheckOutDate       time.Time     `db:"check_out_date"`
	NumberOfGuests     int           `db:"number_of_guests"`
	BookingStatus      BookingStatus `db:"booking_status"`
	PaymentStatus      PaymentStatus `db:"payment_status"`
	Source             BookingSource `db:"source"`
	BaseAmount         float64       `db:"base_amount"`
	TaxAmount          float64       `db:"tax_amount"`
	TotalAmount        float64       `db:"total_amount"`
	Payments           PaymentList   `db:"payments"`
	RoomCharges        ChargeList    `db:"room_charges"`
	CheckInTime        *time.Time    `db:"check_in_time"`
	CheckOutTime       *time.Time    `db:"check_out_time"`
	CancellationDate   *time.Time    `db:"cancellation_date"`
	CancellationReason string        `db:"cancellation_reason"`
	Notes              string        `db:"notes"`
	model.Metadata
}

// Nights returns the length of the booking window in whole days.
func (b *Booking) Nights() int {
	return int(b.CheckOutDate.Sub(b.CheckInDate).Hours() / 24)
}

// DerivePaymentStatus recomputes payment_status from the payment records
// against the current total.
func (b *Booking) DerivePaymentStatus() PaymentStatus {
	paid := b.Payments.Sum()

	switch {
	case paid <= 0:
		return PaymentStatusPending
	case paid >= b.TotalAmount:
		return PaymentStatusPaid
	default:
		return PaymentStatusPartial
	}
}
