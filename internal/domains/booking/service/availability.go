package service

//go:generate go run go.uber.org/mock/mockgen -source=./availability.go -destination=../mocks/availability_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"lodge/infras/otel"
	"lodge/internal/domains/booking/repository"
	"lodge/shared/constant"

	"github.com/rs/zerolog/log"
)

// Availability decides whether a room is free over a booking window.
// Pure read; only bookings in a blocking status count.
type Availability interface {
	IsAvailable(ctx context.Context, hotelID, roomID string, checkIn, checkOut time.Time, excludeBookingID string) (bool, error)
}

type availabilityImpl struct {
	repo repository.Booking
	otel otel.Otel
}

func NewAvailability(repo repository.Booking, otel otel.Otel) Availability {
	return &availabilityImpl{
		repo: repo,
		otel: otel,
	}
}

func (a *availabilityImpl) IsAvailable(ctx context.Context, hotelID, roomID string, checkIn, checkOut time.Time, excludeBookingID string) (available bool, err error) {
	ctx, scope := a.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	overlapping, err := a.repo.ExistOverlapping(ctx, roomID, checkIn, checkOut, excludeBookingID)
	if err != nil {
		log.Error().Err(err).
			Str("hotelID", hotelID).
			Str("roomID", roomID).
			Msg("failed to check overlapping bookings")

		return false, fmt.Errorf("failed to check overlapping bookings: %w", err)
	}

	return !overlapping, nil
}
