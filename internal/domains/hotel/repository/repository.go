package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/internal/domains/hotel/model"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/logger"
	gRepo "lodge/shared/repository"
)

type Hotel interface {
	Insert(ctx context.Context, model model.Hotel) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Hotel, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Hotel, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	IncrementRoomCount(ctx context.Context, hotelID string, delta int) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Hotel]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Hotel {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Hotel](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// IncrementRoomCount adjusts the denormalized room counter on a hotel row.
// Delta may be negative when a room is retired.
func (repo *repositoryImpl) IncrementRoomCount(ctx context.Context, hotelID string, delta int) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName,
		constant.OtelRepositoryScopeName+"."+model.EntityName+".IncrementRoomCount")
	defer scope.End()

	query := fmt.Sprintf("UPDATE %s SET %s = %s + :delta WHERE %s = :id",
		model.TableName, model.FieldRoomCount, model.FieldRoomCount, model.FieldID)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"delta": delta,
		"id":    hotelID,
	}

	if _, err := repo.db.Write.NamedExecContext(ctx, query, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to increment room count (%s): %w", model.EntityName, err)
	}

	return nil
}
