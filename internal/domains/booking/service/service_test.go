package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lodge/config"
	kafkaMocks "lodge/infras/kafka/mocks"
	"lodge/infras/otel/mocks"
	bookingMocks "lodge/internal/domains/booking/mocks"
	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/model/dto"
	"lodge/internal/domains/booking/service"
	housekeepingMocks "lodge/internal/domains/housekeeping/mocks"
	roomMocks "lodge/internal/domains/room/mocks"
	roomModel "lodge/internal/domains/room/model"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/constant"
	"lodge/shared/failure"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
)

type bookingServiceMocks struct {
	repo         *bookingMocks.MockBooking
	roomRepo     *roomMocks.MockRoom
	availability *bookingMocks.MockAvailability
	housekeeping *housekeepingMocks.MockHousekeeping
	kafka        *kafkaMocks.MockClient
	cache        *cacheMocks.MockRedisCache
}

func newBookingService(ctrl *gomock.Controller) (service.Booking, bookingServiceMocks) {
	m := bookingServiceMocks{
		repo:         bookingMocks.NewMockBooking(ctrl),
		roomRepo:     roomMocks.NewMockRoom(ctrl),
		availability: bookingMocks.NewMockAvailability(ctrl),
		housekeeping: housekeepingMocks.NewMockHousekeeping(ctrl),
		kafka:        kafkaMocks.NewMockClient(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Booking.NumberPrefix = "BK"

	// Event publication and cache invalidation run in detached goroutines.
	m.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(m.repo, m.roomRepo, m.availability, m.housekeeping, m.kafka, cfg, m.cache, mocks.NewOtel())

	return svc, m
}

func availableRoom() roomModel.Room {
	return roomModel.Room{
		ID:            "room-1",
		HotelID:       "hotel-1",
		RoomNumber:    "101",
		Status:        roomModel.RoomStatusAvailable,
		PricePerNight: 100,
		MaxOccupancy:  2,
	}
}

func confirmedBooking() model.Booking {
	checkIn, _ := timezone.ParseDate("2026-09-01")
	checkOut, _ := timezone.ParseDate("2026-09-03")

	return model.Booking{
		ID:             "booking-1",
		HotelID:        "hotel-1",
		RoomID:         "room-1",
		BookingNumber:  "BK-20260901120000-ABCDEF12",
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		NumberOfGuests: 2,
		BookingStatus:  model.BookingStatusConfirmed,
		PaymentStatus:  model.PaymentStatusPending,
		Source:         model.BookingSourceDirect,
		BaseAmount:     200,
		TaxAmount:      20,
		TotalAmount:    220,
		Payments:       model.PaymentList{},
		RoomCharges:    model.ChargeList{},
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "test-user",
			ModifiedBy: "test-user",
		},
	}
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newBookingService(ctrl)

	validReq := dto.CreateBookingRequest{
		HotelID:        "hotel-1",
		RoomID:         "room-1",
		Guest:          dto.GuestRequest{Name: "Jane Guest"},
		CheckInDate:    "2026-09-01",
		CheckOutDate:   "2026-09-03",
		NumberOfGuests: 2,
	}

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func()
		wantErr   bool
		wantCode  int
		check     func(t *testing.T, res dto.BookingResponse)
	}{
		{
			name: "successful creation computes totals",
			req:  validReq,
			setupMock: func() {
				m.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableRoom(), nil)

				m.availability.EXPECT().
					IsAvailable(gomock.Any(), "hotel-1", "room-1", gomock.Any(), gomock.Any(), "").
					Return(true, nil)

				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				m.roomRepo.EXPECT().
					UpdateStatus(gomock.Any(), "room-1", roomModel.RoomStatusOccupied, gomock.Any()).
					Return(nil)
			},
			wantErr: false,
			check: func(t *testing.T, res dto.BookingResponse) {
				// 2 nights at 100 with 10% tax
				assert.Equal(t, float64(200), res.BaseAmount)
				assert.Equal(t, float64(20), res.TaxAmount)
				assert.Equal(t, float64(220), res.TotalAmount)
				assert.Equal(t, string(model.BookingStatusConfirmed), res.BookingStatus)
				assert.Equal(t, string(model.PaymentStatusPending), res.PaymentStatus)
				assert.NotEmpty(t, res.BookingNumber)
			},
		},
		{
			name: "room not found",
			req:  validReq,
			setupMock: func() {
				m.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "room belongs to another hotel",
			req:  validReq,
			setupMock: func() {
				room := availableRoom()
				room.HotelID = "hotel-2"

				m.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "room not in bookable status",
			req:  validReq,
			setupMock: func() {
				room := availableRoom()
				room.Status = roomModel.RoomStatusMaintenance

				m.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "guests exceed room capacity",
			req: dto.CreateBookingRequest{
				HotelID:        "hotel-1",
				RoomID:         "room-1",
				Guest:          dto.GuestRequest{Name: "Jane Guest"},
				CheckInDate:    "2026-09-01",
				CheckOutDate:   "2026-09-03",
				NumberOfGuests: 5,
			},
			setupMock: func() {
				m.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableRoom(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "zero-night stay rejected",
			req: dto.CreateBookingRequest{
				HotelID:        "hotel-1",
				RoomID:         "room-1",
				Guest:          dto.GuestRequest{Name: "Jane Guest"},
				CheckInDate:    "2026-09-01",
				CheckOutDate:   "2026-09-01",
				NumberOfGuests: 2,
			},
			setupMock: func() {
				m.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableRoom(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "overlapping booking rejected",
			req:  validReq,
			setupMock: func() {
				m.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableRoom(), nil)

				m.availability.EXPECT().
					IsAvailable(gomock.Any(), "hotel-1", "room-1", gomock.Any(), gomock.Any(), "").
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "concurrent insert loses to exclusion constraint",
			req:  validReq,
			setupMock: func() {
				m.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableRoom(), nil)

				m.availability.EXPECT().
					IsAvailable(gomock.Any(), "hotel-1", "room-1", gomock.Any(), gomock.Any(), "").
					Return(true, nil)

				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeExclusionViolation)})
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "repository error",
			req:  validReq,
			setupMock: func() {
				m.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableRoom(), nil)

				m.availability.EXPECT().
					IsAvailable(gomock.Any(), "hotel-1", "room-1", gomock.Any(), gomock.Any(), "").
					Return(true, nil)

				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				if tt.check != nil {
					tt.check(t, res)
				}
			}
		})
	}
}

func TestBookingService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newBookingService(ctrl)

	tests := []struct {
		name      string
		from      model.BookingStatus
		req       dto.UpdateBookingStatusRequest
		setupMock func(booking model.Booking)
		wantErr   bool
		wantCode  int
		check     func(t *testing.T, res dto.BookingResponse)
	}{
		{
			name: "confirmed to checked_in stamps check-in time",
			from: model.BookingStatusConfirmed,
			req:  dto.UpdateBookingStatusRequest{Status: "checked_in"},
			setupMock: func(booking model.Booking) {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

				m.roomRepo.EXPECT().
					UpdateStatus(gomock.Any(), "room-1", roomModel.RoomStatusOccupied, gomock.Any()).
					Return(nil)

				m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, res dto.BookingResponse) {
				assert.Equal(t, string(model.BookingStatusCheckedIn), res.BookingStatus)
				assert.NotEmpty(t, res.CheckInTime)
			},
		},
		{
			name: "checked_in to checked_out sends room to cleaning",
			from: model.BookingStatusCheckedIn,
			req:  dto.UpdateBookingStatusRequest{Status: "checked_out"},
			setupMock: func(booking model.Booking) {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

				m.roomRepo.EXPECT().
					UpdateStatus(gomock.Any(), "room-1", roomModel.RoomStatusCleaning, gomock.Any()).
					Return(nil)

				m.housekeeping.EXPECT().
					EnqueueCleaningTask(gomock.Any(), "hotel-1", "room-1", gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, res dto.BookingResponse) {
				assert.Equal(t, string(model.BookingStatusCheckedOut), res.BookingStatus)
				assert.NotEmpty(t, res.CheckOutTime)
			},
		},
		{
			name: "confirmed to cancelled records reason and releases room",
			from: model.BookingStatusConfirmed,
			req:  dto.UpdateBookingStatusRequest{Status: "cancelled", Notes: "guest request"},
			setupMock: func(booking model.Booking) {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

				m.roomRepo.EXPECT().
					UpdateStatus(gomock.Any(), "room-1", roomModel.RoomStatusAvailable, gomock.Any()).
					Return(nil)

				m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, res dto.BookingResponse) {
				assert.Equal(t, string(model.BookingStatusCancelled), res.BookingStatus)
				assert.Equal(t, "guest request", res.CancellationReason)
				assert.NotEmpty(t, res.CancellationDate)
			},
		},
		{
			name: "confirmed to no_show releases room",
			from: model.BookingStatusConfirmed,
			req:  dto.UpdateBookingStatusRequest{Status: "no_show"},
			setupMock: func(booking model.Booking) {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

				m.roomRepo.EXPECT().
					UpdateStatus(gomock.Any(), "room-1", roomModel.RoomStatusAvailable, gomock.Any()).
					Return(nil)

				m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "check-in keeps transition notes",
			from: model.BookingStatusConfirmed,
			req:  dto.UpdateBookingStatusRequest{Status: "checked_in", Notes: "early arrival"},
			setupMock: func(booking model.Booking) {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

				m.roomRepo.EXPECT().
					UpdateStatus(gomock.Any(), "room-1", roomModel.RoomStatusOccupied, gomock.Any()).
					Return(nil)

				m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, res dto.BookingResponse) {
				assert.Equal(t, "early arrival", res.Notes)
			},
		},
		{
			name: "check-in fails when room cannot be marked occupied",
			from: model.BookingStatusConfirmed,
			req:  dto.UpdateBookingStatusRequest{Status: "checked_in"},
			setupMock: func(booking model.Booking) {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

				m.roomRepo.EXPECT().
					UpdateStatus(gomock.Any(), "room-1", roomModel.RoomStatusOccupied, gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
		{
			name: "check-out fails when room cannot be sent to cleaning",
			from: model.BookingStatusCheckedIn,
			req:  dto.UpdateBookingStatusRequest{Status: "checked_out"},
			setupMock: func(booking model.Booking) {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

				m.roomRepo.EXPECT().
					UpdateStatus(gomock.Any(), "room-1", roomModel.RoomStatusCleaning, gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
		{
			name: "checked_in cannot be cancelled",
			from: model.BookingStatusCheckedIn,
			req:  dto.UpdateBookingStatusRequest{Status: "cancelled"},
			setupMock: func(booking model.Booking) {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "checked_out is terminal",
			from: model.BookingStatusCheckedOut,
			req:  dto.UpdateBookingStatusRequest{Status: "checked_in"},
			setupMock: func(booking model.Booking) {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "booking not found",
			from: model.BookingStatusConfirmed,
			req:  dto.UpdateBookingStatusRequest{Status: "checked_in"},
			setupMock: func(_ model.Booking) {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := confirmedBooking()
			booking.BookingStatus = tt.from

			tt.setupMock(booking)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.UpdateStatus(ctx, tt.req, booking.ID)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				if tt.check != nil {
					tt.check(t, res)
				}
			}
		})
	}
}

func TestBookingService_AddPayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newBookingService(ctrl)

	tests := []struct {
		name       string
		req        dto.AddPaymentRequest
		setupMock  func()
		wantErr    bool
		wantStatus string
		wantPaid   float64
	}{
		{
			name: "partial payment",
			req:  dto.AddPaymentRequest{Method: "cash", Amount: 100},
			setupMock: func() {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(), nil)
				m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: string(model.PaymentStatusPartial),
			wantPaid:   100,
		},
		{
			name: "full payment settles the booking",
			req:  dto.AddPaymentRequest{Method: "credit_card", Amount: 220},
			setupMock: func() {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(), nil)
				m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: string(model.PaymentStatusPaid),
			wantPaid:   220,
		},
		{
			name: "overpayment still reads as paid",
			req:  dto.AddPaymentRequest{Method: "cash", Amount: 500},
			setupMock: func() {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(), nil)
				m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: string(model.PaymentStatusPaid),
			wantPaid:   500,
		},
		{
			name: "booking not found",
			req:  dto.AddPaymentRequest{Method: "cash", Amount: 100},
			setupMock: func() {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantErr: true,
		},
		{
			name: "update error",
			req:  dto.AddPaymentRequest{Method: "cash", Amount: 100},
			setupMock: func() {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(), nil)
				m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("update error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.AddPayment(ctx, tt.req, "booking-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantStatus, res.PaymentStatus)
				assert.Equal(t, tt.wantPaid, res.AmountPaid)
				// Payments never change the agreed totals
				assert.Equal(t, float64(220), res.TotalAmount)

				if assert.Len(t, res.Payments, 1) {
					assert.Equal(t, model.PaymentRecordStatusCompleted, res.Payments[0].Status)
				}
			}
		})
	}
}

func TestBookingService_AddRoomCharge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newBookingService(ctrl)

	tests := []struct {
		name      string
		req       dto.AddRoomChargeRequest
		setupMock func()
		wantErr   bool
		wantCode  int
		wantTotal float64
	}{
		{
			name: "charge added to in-house booking",
			req:  dto.AddRoomChargeRequest{Description: "minibar", Amount: 30, ChargeType: "minibar"},
			setupMock: func() {
				booking := confirmedBooking()
				booking.BookingStatus = model.BookingStatusCheckedIn

				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
				m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantTotal: 250,
		},
		{
			name: "charge rejected before check-in",
			req:  dto.AddRoomChargeRequest{Description: "minibar", Amount: 30, ChargeType: "minibar"},
			setupMock: func() {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "charge rejected after check-out",
			req:  dto.AddRoomChargeRequest{Description: "laundry", Amount: 15, ChargeType: "laundry"},
			setupMock: func() {
				booking := confirmedBooking()
				booking.BookingStatus = model.BookingStatusCheckedOut

				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.AddRoomCharge(ctx, tt.req, "booking-1")

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantTotal, res.TotalAmount)
				assert.Len(t, res.RoomCharges, 1)
			}
		})
	}
}

func TestBookingService_Extend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newBookingService(ctrl)

	tests := []struct {
		name      string
		req       dto.ExtendBookingRequest
		setupMock func()
		wantErr   bool
		wantCode  int
		check     func(t *testing.T, res dto.BookingResponse)
	}{
		{
			name: "one extra night recalculates totals",
			req:  dto.ExtendBookingRequest{NewCheckOutDate: "2026-09-04"},
			setupMock: func() {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(), nil)

				m.availability.EXPECT().
					IsAvailable(gomock.Any(), "hotel-1", "room-1", gomock.Any(), gomock.Any(), "booking-1").
					Return(true, nil)

				m.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableRoom(), nil)

				m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, res dto.BookingResponse) {
				assert.Equal(t, float64(300), res.BaseAmount)
				assert.Equal(t, float64(30), res.TaxAmount)
				assert.Equal(t, float64(330), res.TotalAmount)
				assert.Equal(t, "2026-09-04", res.CheckOutDate)
			},
		},
		{
			name: "extension window not available",
			req:  dto.ExtendBookingRequest{NewCheckOutDate: "2026-09-04"},
			setupMock: func() {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(), nil)

				m.availability.EXPECT().
					IsAvailable(gomock.Any(), "hotel-1", "room-1", gomock.Any(), gomock.Any(), "booking-1").
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "new date must be after the current check-out",
			req:  dto.ExtendBookingRequest{NewCheckOutDate: "2026-09-02"},
			setupMock: func() {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "cancelled booking cannot be extended",
			req:  dto.ExtendBookingRequest{NewCheckOutDate: "2026-09-04"},
			setupMock: func() {
				booking := confirmedBooking()
				booking.BookingStatus = model.BookingStatusCancelled

				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "concurrent extension loses to exclusion constraint",
			req:  dto.ExtendBookingRequest{NewCheckOutDate: "2026-09-04"},
			setupMock: func() {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(), nil)

				m.availability.EXPECT().
					IsAvailable(gomock.Any(), "hotel-1", "room-1", gomock.Any(), gomock.Any(), "booking-1").
					Return(true, nil)

				m.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableRoom(), nil)

				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeExclusionViolation)})
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.Extend(ctx, tt.req, "booking-1")

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				if tt.check != nil {
					tt.check(t, res)
				}
			}
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newBookingService(ctrl)

	tests := []struct {
		name      string
		ref       string
		setupMock func()
		wantErr   bool
		wantID    string
	}{
		{
			name: "cache hit",
			ref:  "booking-1",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "cache miss, lookup by booking number",
			ref:  "BK-20260901120000-ABCDEF12",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking(), nil)
			},
			wantID: "booking-1",
		},
		{
			name: "booking not found",
			ref:  "missing",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(context.Background(), tt.ref)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.wantID != "" {
					assert.Equal(t, tt.wantID, res.ID)
				}
			}
		})
	}
}
