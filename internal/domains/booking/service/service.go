package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lodge/config"
	"lodge/infras/kafka"
	"lodge/infras/otel"
	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/model/dto"
	"lodge/internal/domains/booking/repository"
	housekeepingModel "lodge/internal/domains/housekeeping/model"
	housekeepingService "lodge/internal/domains/housekeeping/service"
	roomModel "lodge/internal/domains/room/model"
	roomRepo "lodge/internal/domains/room/repository"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	eventBookingCreated       = "booking.created"
	eventBookingStatusChanged = "booking.status_changed"
	eventBookingExtended      = "booking.extended"
)

type bookingEvent struct {
	Type          string    `json:"type"`
	BookingID     string    `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	HotelID       string    `json:"hotel_id"`
	RoomID        string    `json:"room_id"`
	BookingStatus string    `json:"booking_status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, ref string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, ref string) (dto.BookingResponse, error)
	AddPayment(ctx context.Context, req dto.AddPaymentRequest, ref string) (dto.BookingResponse, error)
	AddRoomCharge(ctx context.Context, req dto.AddRoomChargeRequest, ref string) (dto.BookingResponse, error)
	Extend(ctx context.Context, req dto.ExtendBookingRequest, ref string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo         repository.Booking
	roomRepo     roomRepo.Room
	availability Availability
	housekeeping housekeepingService.Housekeeping
	kafka        kafka.Client
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	availability Availability,
	housekeeping housekeepingService.Housekeeping,
	kafkaClient kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		availability: availability,
		housekeeping: housekeeping,
		kafka:        kafkaClient,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty || room.HotelID != req.HotelID {
		return res, failure.NotFound("room not found in this hotel") //nolint:wrapcheck
	}

	if room.Status != roomModel.RoomStatusAvailable {
		return res, failure.UnprocessableEntity(fmt.Sprintf("room %s is not available for booking", room.RoomNumber)) //nolint:wrapcheck
	}

	if req.NumberOfGuests > room.MaxOccupancy {
		return res, failure.BadRequestFromString(fmt.Sprintf("number of guests exceeds room capacity of %d", room.MaxOccupancy)) //nolint:wrapcheck
	}

	checkIn, checkOut, err := req.Window()
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) //nolint:wrapcheck
	}

	if !checkOut.After(checkIn) {
		return res, failure.BadRequestFromString("check_out_date must be after check_in_date") //nolint:wrapcheck
	}

	available, err := s.availability.IsAvailable(ctx, req.HotelID, req.RoomID, checkIn, checkOut, constant.Empty)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room availability")

		return res, fmt.Errorf("failed to check room availability: %w", err)
	}

	if !available {
		return res, failure.Conflict("room is not available for the selected dates") //nolint:wrapcheck
	}

	booking := req.ToModel(shared.Actor(ctx), s.generateBookingNumber(), checkIn, checkOut, room.PricePerNight)

	if err = s.repo.Insert(ctx, booking); err != nil {
		// The exclusion constraint on the bookings table is the last line
		// of defence against two concurrent inserts for the same window.
		if shared.PqErrorCode(err) == constant.PqErrorCodeExclusionViolation {
			return res, failure.Conflict("room is not available for the selected dates") //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	if err := s.roomRepo.UpdateStatus(ctx, room.ID, roomModel.RoomStatusOccupied, shared.Actor(ctx)); err != nil {
		log.Error().Err(err).Str("roomID", room.ID).Msg("failed to mark room occupied after booking")
	}

	res.FromModel(booking)

	s.publishEvent(ctx, eventBookingCreated, booking)
	s.invalidateLists(ctx)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &total)
	if err == nil {
		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return total, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, ref string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, ref)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.getByRef(ctx, ref)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, ref string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getByRef(ctx, ref)
	if err != nil {
		return res, err
	}

	target := model.BookingStatus(req.Status)
	if !booking.BookingStatus.CanTransitionTo(target) {
		return res, failure.UnprocessableEntity( //nolint:wrapcheck
			fmt.Sprintf("cannot transition booking from %s to %s", booking.BookingStatus, target))
	}

	actor := shared.Actor(ctx)
	now := timezone.Now()

	updatedFields := map[string]any{
		model.FieldBookingStatus: string(target),
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: actor,
	}

	booking.BookingStatus = target
	booking.ModifiedAt = now
	booking.ModifiedBy = actor

	if req.Notes != constant.Empty {
		updatedFields[model.FieldNotes] = req.Notes
		booking.Notes = req.Notes
	}

	switch target {
	case model.BookingStatusCheckedIn:
		updatedFields[model.FieldCheckInTime] = now
		booking.CheckInTime = &now

		if err := s.roomRepo.UpdateStatus(ctx, booking.RoomID, roomModel.RoomStatusOccupied, actor); err != nil {
			log.Error().Err(err).Str("roomID", booking.RoomID).Msg("failed to mark room occupied on check-in")

			return res, fmt.Errorf("failed to mark room occupied on check-in: %w", err)
		}
	case model.BookingStatusCheckedOut:
		updatedFields[model.FieldCheckOutTime] = now
		booking.CheckOutTime = &now

		if err := s.roomRepo.UpdateStatus(ctx, booking.RoomID, roomModel.RoomStatusCleaning, actor); err != nil {
			log.Error().Err(err).Str("roomID", booking.RoomID).Msg("failed to mark room cleaning on check-out")

			return res, fmt.Errorf("failed to mark room cleaning on check-out: %w", err)
		}

		s.triggerCleaning(ctx, booking)
	case model.BookingStatusCancelled:
		updatedFields[model.FieldCancellationDate] = now
		updatedFields[model.FieldCancellationReason] = req.Notes
		booking.CancellationDate = &now
		booking.CancellationReason = req.Notes

		if err := s.roomRepo.UpdateStatus(ctx, booking.RoomID, roomModel.RoomStatusAvailable, actor); err != nil {
			log.Error().Err(err).Str("roomID", booking.RoomID).Msg("failed to release room on cancellation")

			return res, fmt.Errorf("failed to release room on cancellation: %w", err)
		}
	case model.BookingStatusNoShow:
		if err := s.roomRepo.UpdateStatus(ctx, booking.RoomID, roomModel.RoomStatusAvailable, actor); err != nil {
			log.Error().Err(err).Str("roomID", booking.RoomID).Msg("failed to release room on no-show")

			return res, fmt.Errorf("failed to release room on no-show: %w", err)
		}
	case model.BookingStatusPending, model.BookingStatusConfirmed:
		// no room side effects
	}

	if err = s.repo.Update(ctx, updatedFields, repository.FilterByRef(ref)); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return res, fmt.Errorf("failed to update booking status: %w", err)
	}

	res.FromModel(booking)

	s.publishEvent(ctx, eventBookingStatusChanged, booking)
	s.invalidate(ctx, booking)

	return res, nil
}

func (s *serviceImpl) AddPayment(ctx context.Context, req dto.AddPaymentRequest, ref string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getByRef(ctx, ref)
	if err != nil {
		return res, err
	}

	payment := model.Payment{
		Method:        req.Method,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
		Status:        model.PaymentRecordStatusCompleted,
		PaidAt:        timezone.Now(),
		Notes:         req.Notes,
	}

	booking.Payments = append(booking.Payments, payment)
	booking.PaymentStatus = booking.DerivePaymentStatus()

	actor := shared.Actor(ctx)
	booking.ModifiedAt = timezone.Now()
	booking.ModifiedBy = actor

	updatedFields := map[string]any{
		model.FieldPayments:      booking.Payments,
		model.FieldPaymentStatus: string(booking.PaymentStatus),
		constant.FieldModifiedAt: booking.ModifiedAt,
		constant.FieldModifiedBy: actor,
	}

	if err = s.repo.Update(ctx, updatedFields, repository.FilterByRef(ref)); err != nil {
		log.Error().Err(err).Msg("failed to add payment")

		return res, fmt.Errorf("failed to add payment: %w", err)
	}

	res.FromModel(booking)
	s.invalidate(ctx, booking)

	return res, nil
}

func (s *serviceImpl) AddRoomCharge(ctx context.Context, req dto.AddRoomChargeRequest, ref string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddRoomCharge")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getByRef(ctx, ref)
	if err != nil {
		return res, err
	}

	if booking.BookingStatus != model.BookingStatusCheckedIn {
		return res, failure.UnprocessableEntity("active booking not found") //nolint:wrapcheck
	}

	charge := model.RoomCharge{
		Description: req.Description,
		Amount:      req.Amount,
		ChargeType:  req.ChargeType,
		ChargedAt:   timezone.Now(),
		Notes:       req.Notes,
	}

	booking.RoomCharges = append(booking.RoomCharges, charge)
	booking.TotalAmount += charge.Amount
	booking.PaymentStatus = booking.DerivePaymentStatus()

	actor := shared.Actor(ctx)
	booking.ModifiedAt = timezone.Now()
	booking.ModifiedBy = actor

	updatedFields := map[string]any{
		model.FieldRoomCharges:   booking.RoomCharges,
		model.FieldTotalAmount:   booking.TotalAmount,
		model.FieldPaymentStatus: string(booking.PaymentStatus),
		constant.FieldModifiedAt: booking.ModifiedAt,
		constant.FieldModifiedBy: actor,
	}

	if err = s.repo.Update(ctx, updatedFields, repository.FilterByRef(ref)); err != nil {
		log.Error().Err(err).Msg("failed to add room charge")

		return res, fmt.Errorf("failed to add room charge: %w", err)
	}

	res.FromModel(booking)
	s.invalidate(ctx, booking)

	return res, nil
}

func (s *serviceImpl) Extend(ctx context.Context, req dto.ExtendBookingRequest, ref string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Extend")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getByRef(ctx, ref)
	if err != nil {
		return res, err
	}

	if !booking.BookingStatus.Blocking() {
		return res, failure.UnprocessableEntity( //nolint:wrapcheck
			fmt.Sprintf("booking in status %s cannot be extended", booking.BookingStatus))
	}

	newCheckOut, err := req.ParseDate()
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) //nolint:wrapcheck
	}

	if !newCheckOut.After(booking.CheckOutDate) {
		return res, failure.BadRequestFromString("new_check_out_date must be after the current check-out date") //nolint:wrapcheck
	}

	// Only the extension window matters; the booking's own current window
	// is excluded from the check.
	available, err := s.availability.IsAvailable(ctx, booking.HotelID, booking.RoomID, booking.CheckOutDate, newCheckOut, booking.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room availability for extension")

		return res, fmt.Errorf("failed to check room availability for extension: %w", err)
	}

	if !available {
		return res, failure.Conflict("room is not available for the extended dates") //nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") //nolint:wrapcheck
	}

	additionalNights := int(newCheckOut.Sub(booking.CheckOutDate).Hours() / 24)
	additionalAmount := room.PricePerNight * float64(additionalNights)
	additionalTax := additionalAmount * model.TaxRate

	booking.BaseAmount += additionalAmount
	booking.TaxAmount += additionalTax
	booking.TotalAmount += additionalAmount + additionalTax
	booking.CheckOutDate = newCheckOut
	booking.PaymentStatus = booking.DerivePaymentStatus()

	if req.Notes != constant.Empty {
		booking.Notes = req.Notes
	}

	actor := shared.Actor(ctx)
	booking.ModifiedAt = timezone.Now()
	booking.ModifiedBy = actor

	updatedFields := map[string]any{
		model.FieldCheckOutDate:  booking.CheckOutDate,
		model.FieldBaseAmount:    booking.BaseAmount,
		model.FieldTaxAmount:     booking.TaxAmount,
		model.FieldTotalAmount:   booking.TotalAmount,
		model.FieldPaymentStatus: string(booking.PaymentStatus),
		model.FieldNotes:         booking.Notes,
		constant.FieldModifiedAt: booking.ModifiedAt,
		constant.FieldModifiedBy: actor,
	}

	if err = s.repo.Update(ctx, updatedFields, repository.FilterByRef(ref)); err != nil {
		if shared.PqErrorCode(err) == constant.PqErrorCodeExclusionViolation {
			return res, failure.Conflict("room is not available for the extended dates") //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to extend booking")

		return res, fmt.Errorf("failed to extend booking: %w", err)
	}

	res.FromModel(booking)

	s.publishEvent(ctx, eventBookingExtended, booking)
	s.invalidate(ctx, booking)

	return res, nil
}

func (s *serviceImpl) getByRef(ctx context.Context, ref string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, repository.FilterByRef(ref))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	return booking, nil
}

// generateBookingNumber builds a human-readable unique reference: prefix,
// UTC timestamp to the second, and a short random suffix to break ties
// within the same second.
func (s *serviceImpl) generateBookingNumber() string {
	prefix := s.cfg.Booking.NumberPrefix
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])

	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().UTC().Format("20060102150405"), suffix)
}

func (s *serviceImpl) triggerCleaning(ctx context.Context, booking model.Booking) {
	go func() {
		c := context.WithoutCancel(ctx)

		err := s.housekeeping.EnqueueCleaningTask(c, booking.HotelID, booking.RoomID,
			housekeepingModel.TaskPriorityHigh, timezone.Now())
		if err != nil {
			log.Error().Err(err).
				Str("bookingNumber", booking.BookingNumber).
				Str("roomID", booking.RoomID).
				Msg("failed to enqueue cleaning task after checkout")
		}
	}()
}

func (s *serviceImpl) publishEvent(ctx context.Context, eventType string, booking model.Booking) {
	go func() {
		c := context.WithoutCancel(ctx)

		event := bookingEvent{
			Type:          eventType,
			BookingID:     booking.ID,
			BookingNumber: booking.BookingNumber,
			HotelID:       booking.HotelID,
			RoomID:        booking.RoomID,
			BookingStatus: string(booking.BookingStatus),
			OccurredAt:    timezone.Now(),
		}

		err := s.kafka.SendMessages(c, constant.KafkaTopicBookingEvents, kafka.Message{
			Key:   booking.ID,
			Value: event,
		})
		if err != nil {
			log.Error().Err(err).Str("type", eventType).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, booking model.Booking) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, booking.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, booking.BookingNumber)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}
