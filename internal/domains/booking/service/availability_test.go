package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lodge/infras/otel/mocks"
	bookingMocks "lodge/internal/domains/booking/mocks"
	"lodge/internal/domains/booking/service"
	"lodge/shared/timezone"
)

func TestAvailabilityService_IsAvailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	svc := service.NewAvailability(mockRepo, mocks.NewOtel())

	checkIn, _ := timezone.ParseDate("2026-09-01")
	checkOut, _ := timezone.ParseDate("2026-09-03")

	tests := []struct {
		name      string
		exclude   string
		setupMock func()
		wantErr   bool
		want      bool
	}{
		{
			name: "no overlap means available",
			setupMock: func() {
				mockRepo.EXPECT().
					ExistOverlapping(gomock.Any(), "room-1", checkIn, checkOut, "").
					Return(false, nil)
			},
			want: true,
		},
		{
			name: "overlap means unavailable",
			setupMock: func() {
				mockRepo.EXPECT().
					ExistOverlapping(gomock.Any(), "room-1", checkIn, checkOut, "").
					Return(true, nil)
			},
			want: false,
		},
		{
			name:    "own booking is excluded from the check",
			exclude: "booking-1",
			setupMock: func() {
				mockRepo.EXPECT().
					ExistOverlapping(gomock.Any(), "room-1", checkIn, checkOut, "booking-1").
					Return(false, nil)
			},
			want: true,
		},
		{
			name: "repository error",
			setupMock: func() {
				mockRepo.EXPECT().
					ExistOverlapping(gomock.Any(), "room-1", checkIn, checkOut, "").
					Return(false, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			available, err := svc.IsAvailable(context.Background(), "hotel-1", "room-1", checkIn, checkOut, tt.exclude)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, available)
			}
		})
	}
}
