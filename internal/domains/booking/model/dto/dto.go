package dto

import (
	"time"

	"lodge/internal/domains/booking/model"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
)

type GuestRequest struct {
	Name     string `json:"name"      validate:"required,max=100"`
	Email    string `json:"email"     validate:"omitempty,email,max=100"`
	Phone    string `json:"phone"     validate:"omitempty,max=20"`
	Address  string `json:"address"   validate:"omitempty,max=250"`
	IDNumber string `json:"id_number" validate:"omitempty,max=50"`
}

type CreateBookingRequest struct {
	HotelID        string       `json:"hotel_id"         validate:"required"`
	RoomID         string       `json:"room_id"          validate:"required"`
	Guest          GuestRequest `json:"guest"            validate:"required"`
	CheckInDate    string       `json:"check_in_date"    validate:"required"`
	CheckOutDate   string       `json:"check_out_date"   validate:"required"`
	NumberOfGuests int          `json:"number_of_guests" validate:"required,gte=1"`
	Source         string       `json:"source"           validate:"omitempty,oneof=direct website phone walk_in ota"`
	Notes          string       `json:"notes"            validate:"omitempty,max=500"`
}

// Window parses the requested stay as a half-open date interval.
func (c *CreateBookingRequest) Window() (checkIn, checkOut time.Time, err error) {
	checkIn, err = timezone.ParseDate(c.CheckInDate)
	if err != nil {
		return checkIn, checkOut, err //nolint:wrapcheck
	}

	checkOut, err = timezone.ParseDate(c.CheckOutDate)

	return checkIn, checkOut, err //nolint:wrapcheck
}

func (c *CreateBookingRequest) ToModel(user, bookingNumber string, checkIn, checkOut time.Time, pricePerNight float64) model.Booking {
	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	baseAmount := pricePerNight * float64(nights)
	taxAmount := baseAmount * model.TaxRate

	source := model.BookingSourceDirect
	if c.Source != "" {
		source = model.BookingSource(c.Source)
	}

	return model.Booking{
		ID:            uuid.NewString(),
		HotelID:       c.HotelID,
		RoomID:        c.RoomID,
		BookingNumber: bookingNumber,
		Guest: model.Guest{
			Name:     c.Guest.Name,
			Email:    c.Guest.Email,
			Phone:    c.Guest.Phone,
			Address:  c.Guest.Address,
			IDNumber: c.Guest.IDNumber,
		},
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		NumberOfGuests: c.NumberOfGuests,
		BookingStatus:  model.BookingStatusConfirmed,
		PaymentStatus:  model.PaymentStatusPending,
		Source:         source,
		BaseAmount:     baseAmount,
		TaxAmount:      taxAmount,
		TotalAmount:    baseAmount + taxAmount,
		Payments:       model.PaymentList{},
		RoomCharges:    model.ChargeList{},
		Notes:          c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed checked_in checked_out cancelled no_show"`
	Notes  string `json:"notes"  validate:"omitempty,max=500"`
}

type AddPaymentRequest struct {
	Method        string  `json:"method"         validate:"required,oneof=cash credit_card debit_card bank_transfer online"`
	Amount        float64 `json:"amount"         validate:"required,gt=0"`
	TransactionID string  `json:"transaction_id" validate:"omitempty,max=100"`
	Notes         string  `json:"notes"          validate:"omitempty,max=500"`
}

type AddRoomChargeRequest struct {
	Description string  `json:"description" validate:"required,max=250"`
	Amount      float64 `json:"amount"      validate:"required,gt=0"`
	ChargeType  string  `json:"charge_type" validate:"required,oneof=minibar room_service laundry spa restaurant other"`
	Notes       string  `json:"notes"       validate:"omitempty,max=500"`
}

type ExtendBookingRequest struct {
	NewCheckOutDate string `json:"new_check_out_date" validate:"required"`
	Notes           string `json:"notes"              validate:"omitempty,max=500"`
}

func (e *ExtendBookingRequest) ParseDate() (time.Time, error) {
	return timezone.ParseDate(e.NewCheckOutDate) //nolint:wrapcheck
}

type GuestResponse struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address,omitempty"`
	IDNumber string `json:"id_number,omitempty"`
}

type PaymentResponse struct {
	Method        string  `json:"method"`
	Amount        float64 `json:"amount"`
	TransactionID string  `json:"transaction_id,omitempty"`
	Status        string  `json:"status"`
	PaidAt        string  `json:"paid_at"`
	Notes         string  `json:"notes,omitempty"`
}

type RoomChargeResponse struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	ChargeType  string  `json:"charge_type"`
	ChargedAt   string  `json:"charged_at"`
	Notes       string  `json:"notes,omitempty"`
}

type BookingResponse struct {
	ID                 string               `json:"id"`
	HotelID            string               `json:"hotel_id"`
	RoomID             string               `json:"room_id"`
	BookingNumber      string               `json:"booking_number"`
	Guest              GuestResponse        `json:"guest"`
	CheckInDate        string               `json:"check_in_date"`
	CheckOutDate       string               `json:"check_out_date"`
	NumberOfGuests     int                  `json:"number_of_guests"`
	BookingStatus      string               `json:"booking_status"`
	PaymentStatus      string               `json:"payment_status"`
	Source             string               `json:"source"`
	BaseAmount         float64              `json:"base_amount"`
	TaxAmount          float64              `json:"tax_amount"`
	TotalAmount        float64              `json:"total_amount"`
	AmountPaid         float64              `json:"amount_paid"`
	Payments           []PaymentResponse    `json:"payments"`
	RoomCharges        []RoomChargeResponse `json:"room_charges"`
	CheckInTime        string               `json:"check_in_time,omitempty"`
	CheckOutTime       string               `json:"check_out_time,omitempty"`
	CancellationDate   string               `json:"cancellation_date,omitempty"`
	CancellationReason string               `json:"cancellation_reason,omitempty"`
	Notes              string               `json:"notes,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.HotelID = mod.HotelID
	r.RoomID = mod.RoomID
	r.BookingNumber = mod.BookingNumber
	r.Guest = GuestResponse(mod.Guest)
	r.CheckInDate = mod.CheckInDate.Format(constant.DateOnlyFormat)
	r.CheckOutDate = mod.CheckOutDate.Format(constant.DateOnlyFormat)
	r.NumberOfGuests = mod.NumberOfGuests
	r.BookingStatus = string(mod.BookingStatus)
	r.PaymentStatus = string(mod.PaymentStatus)
	r.Source = string(mod.Source)
	r.BaseAmount = mod.BaseAmount
	r.TaxAmount = mod.TaxAmount
	r.TotalAmount = mod.TotalAmount
	r.AmountPaid = mod.Payments.Sum()
	r.CancellationReason = mod.CancellationReason
	r.Notes = mod.Notes

	r.Payments = make([]PaymentResponse, len(mod.Payments))
	for i, payment := range mod.Payments {
		r.Payments[i] = PaymentResponse{
			Method:        payment.Method,
			Amount:        payment.Amount,
			TransactionID: payment.TransactionID,
			Status:        payment.Status,
			PaidAt:        payment.PaidAt.Format(constant.DateFormat),
			Notes:         payment.Notes,
		}
	}

	r.RoomCharges = make([]RoomChargeResponse, len(mod.RoomCharges))
	for i, charge := range mod.RoomCharges {
		r.RoomCharges[i] = RoomChargeResponse{
			Description: charge.Description,
			Amount:      charge.Amount,
			ChargeType:  charge.ChargeType,
			ChargedAt:   charge.ChargedAt.Format(constant.DateFormat),
			Notes:       charge.Notes,
		}
	}

	if mod.CheckInTime != nil {
		r.CheckInTime = mod.CheckInTime.Format(constant.DateFormat)
	}

	if mod.CheckOutTime != nil {
		r.CheckOutTime = mod.CheckOutTime.Format(constant.DateFormat)
	}

	if mod.CancellationDate != nil {
		r.CancellationDate = mod.CancellationDate.Format(constant.DateFormat)
	}

	r.Metadata.FromModel(mod.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
