package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lodge/config"
	"lodge/infras/otel/mocks"
	"lodge/internal/domains/housekeeping/model"
	"lodge/internal/domains/housekeeping/model/dto"
	repoMocks "lodge/internal/domains/housekeeping/repository/mocks"
	"lodge/internal/domains/housekeeping/service"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/timezone"
)

func newHousekeepingService(ctrl *gomock.Controller) (service.Housekeeping, *repoMocks.MockHousekeeping, *cacheMocks.MockRedisCache) {
	mockRepo := repoMocks.NewMockHousekeeping(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	// Cache writes and invalidation run in detached goroutines.
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, cfg, mockCache, mocks.NewOtel())

	return svc, mockRepo, mockCache
}

func TestHousekeepingService_EnqueueCleaningTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _ := newHousekeepingService(ctrl)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "task inserted as pending cleaning",
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, task model.HousekeepingTask) error {
						assert.Equal(t, model.TaskTypeCleaning, task.TaskType)
						assert.Equal(t, model.TaskStatusPending, task.Status)
						assert.Equal(t, model.TaskPriorityHigh, task.Priority)
						assert.NotEmpty(t, task.ID)

						return nil
					})
			},
		},
		{
			name: "repository error",
			setupMock: func() {
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.EnqueueCleaningTask(ctx, "hotel-1", "room-1", model.TaskPriorityHigh, timezone.Now())

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHousekeepingService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _ := newHousekeepingService(ctrl)

	pendingTask := model.HousekeepingTask{
		ID:       "task-1",
		HotelID:  "hotel-1",
		RoomID:   "room-1",
		TaskType: model.TaskTypeCleaning,
		Priority: model.TaskPriorityHigh,
		Status:   model.TaskStatusPending,
	}

	tests := []struct {
		name      string
		req       dto.UpdateTaskStatusRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "assign and start the task",
			req:  dto.UpdateTaskStatusRequest{Status: "in_progress", AssignedTo: "cleaner-1"},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingTask, nil)
				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, "in_progress", fields[model.FieldStatus])
						assert.Equal(t, "cleaner-1", fields[model.FieldAssignedTo])

						return nil
					})
			},
		},
		{
			name: "completing stamps completed_at",
			req:  dto.UpdateTaskStatusRequest{Status: "completed"},
			setupMock: func() {
				inProgress := pendingTask
				inProgress.Status = model.TaskStatusInProgress

				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inProgress, nil)
				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Contains(t, fields, model.FieldCompletedAt)

						return nil
					})
			},
		},
		{
			name: "completed task cannot change",
			req:  dto.UpdateTaskStatusRequest{Status: "in_progress"},
			setupMock: func() {
				completed := pendingTask
				completed.Status = model.TaskStatusCompleted

				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(completed, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "task not found",
			req:  dto.UpdateTaskStatusRequest{Status: "in_progress"},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.HousekeepingTask{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.UpdateStatus(ctx, tt.req, "task-1")

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHousekeepingService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockCache := newHousekeepingService(ctrl)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.HousekeepingTask{
		{ID: "task-1", Status: model.TaskStatusPending},
	}, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Tasks, 1)
}
