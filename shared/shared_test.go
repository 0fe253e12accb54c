package shared_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tonyspizza/shared"
	"tonyspizza/shared/constant"
	"tonyspizza/shared/dto"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total returns 1", total: 0, limit: 10, expected: 1},
		{name: "zero limit returns 1", total: 100, limit: 0, expected: 1},
		{name: "exact division", total: 100, limit: 10, expected: 10},
		{name: "division with remainder", total: 101, limit: 10, expected: 11},
		{name: "limit greater than total", total: 5, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type update struct {
		TableID   string `db:"table_id"`
		NumGuests int    `db:"num_guests"`
		Time      string `db:"booking_time"`
		Skipped   string `db:"-"`
		NoTag     string
	}

	result := shared.TransformFields(update{
		TableID:   "t-1",
		NumGuests: 4,
		Skipped:   "ignored",
		NoTag:     "ignored",
	}, "tony")

	assert.Equal(t, "t-1", result["table_id"])
	assert.Equal(t, 4, result["num_guests"])
	assert.NotContains(t, result, "booking_time")
	assert.NotContains(t, result, "-")
	assert.Equal(t, "tony", result[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, result[constant.FieldModifiedAt])
	assert.Len(t, result, 4)
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID("b-1", "id", "bookings")

	assert.Equal(t, dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "id", Value: "b-1", Operator: dto.FilterOperatorEq, Table: "bookings"},
		},
	}, result)
}

func TestFilterByOwner(t *testing.T) {
	group := shared.FilterByOwner("b-1", "u-1", "bookings")

	where, args := group.GetWhereClause()

	assert.Equal(t, "(bookings.id = :id AND bookings.user_id = :owner_id)", where)
	assert.Equal(t, map[string]any{"id": "b-1", "owner_id": "u-1"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "tables:list", shared.BuildCacheKey("tables", "list"))
	assert.Equal(t, "limiter:127.0.0.1:curl", shared.BuildCacheKey("limiter", "", "127.0.0.1", "curl"))
	assert.Empty(t, shared.BuildCacheKey())
}

func TestCurrentUser(t *testing.T) {
	userID, username := shared.CurrentUser(context.Background())
	assert.Empty(t, userID)
	assert.Empty(t, username)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUsername, "mario")

	userID, username = shared.CurrentUser(ctx)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "mario", username)
}
