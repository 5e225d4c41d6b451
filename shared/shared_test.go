package shared_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"lodge/shared"
	"lodge/shared/constant"
	"lodge/shared/dto"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{"empty result", 0, 10, 1},
		{"exact fit", 20, 10, 2},
		{"partial last page", 21, 10, 3},
		{"zero limit", 5, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type updateRequest struct {
		Name  string `db:"name"`
		City  string `db:"city"`
		Count int    `db:"count"`
	}

	fields := shared.TransformFields(updateRequest{Name: "Grand Lodge"}, "test-user")

	assert.Equal(t, "Grand Lodge", fields["name"])
	assert.NotContains(t, fields, "city")
	assert.NotContains(t, fields, "count")
	assert.Equal(t, "test-user", fields[constant.FieldModifiedBy])
	assert.Contains(t, fields, constant.FieldModifiedAt)
}

func TestActor(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")
	assert.Equal(t, "user-1", shared.Actor(ctx))

	assert.Equal(t, constant.ContextGuest, shared.Actor(context.Background()))
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "booking:get:abc", shared.BuildCacheKey("booking:get", "abc"))
	assert.Equal(t, "limiter:1.2.3.4:agent", shared.BuildCacheKey("limiter", "1.2.3.4", "agent"))
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	t.Run("single eq filter", func(t *testing.T) {
		group := shared.FilterByID("hotel-1", "id", "hotels")

		where, args := group.GetWhereClause()

		assert.Equal(t, "(hotels.id = :id)", where)
		assert.Equal(t, map[string]any{"id": "hotel-1"}, args)
	})

	t.Run("or group with named args", func(t *testing.T) {
		group := dto.FilterGroup{
			Operator: dto.FilterGroupOperatorOr,
			Filters: []any{
				dto.Filter{Field: "id", ArgName: "ref_id", Operator: dto.FilterOperatorEq, Value: "x", Table: "bookings"},
				dto.Filter{Field: "booking_number", ArgName: "ref_number", Operator: dto.FilterOperatorEq, Value: "x", Table: "bookings"},
			},
		}

		where, args := group.GetWhereClause()

		assert.Equal(t, "(bookings.id = :ref_id OR bookings.booking_number = :ref_number)", where)
		assert.Len(t, args, 2)
	})

	t.Run("in filter expands slice", func(t *testing.T) {
		group := dto.FilterGroup{
			Filters: []any{
				dto.Filter{Field: "booking_status", Operator: dto.FilterOperatorIn, Value: []string{"confirmed", "checked_in"}},
			},
		}

		where, args := group.GetWhereClause()

		assert.Contains(t, where, "booking_status IN (:booking_status_0, :booking_status_1)")
		assert.Equal(t, "confirmed", args["booking_status_0"])
		assert.Equal(t, "checked_in", args["booking_status_1"])
	})

	t.Run("empty group", func(t *testing.T) {
		group := dto.FilterGroup{}

		where, args := group.GetWhereClause()

		assert.Empty(t, where)
		assert.Empty(t, args)
	})
}
