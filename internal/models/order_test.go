package models_test

import (
	"testing"

	"github.com/mandilink/mandilink/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from models.OrderStatus
		to   models.OrderStatus
		want bool
	}{
		{"pending to processing", models.OrderStatusPending, models.OrderStatusProcessing, true},
		{"pending to completed", models.OrderStatusPending, models.OrderStatusCompleted, true},
		{"processing to completed", models.OrderStatusProcessing, models.OrderStatusCompleted, true},
		{"processing to pending", models.OrderStatusProcessing, models.OrderStatusPending, false},
		{"completed to processing", models.OrderStatusCompleted, models.OrderStatusProcessing, false},
		{"same status", models.OrderStatusProcessing, models.OrderStatusProcessing, false},
		{"unknown source", models.OrderStatus("cancelled"), models.OrderStatusCompleted, false},
		{"unknown target", models.OrderStatusPending, models.OrderStatus("cancelled"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatusForStock(t *testing.T) {
	assert.Equal(t, models.ProductStatusInStock, models.StatusForStock(51))
	assert.Equal(t, models.ProductStatusLowStock, models.StatusForStock(50))
	assert.Equal(t, models.ProductStatusLowStock, models.StatusForStock(1))
	assert.Equal(t, models.ProductStatusOutOfStock, models.StatusForStock(0))
}
