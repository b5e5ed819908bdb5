// internal/service/order/domain/tariff_test.go
package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryFeePaise(t *testing.T) {
	tests := []struct {
		name       string
		distanceKm int
		want       int64
	}{
		{"pickup pays nothing", 0, 0},
		{"first kilometer is base fee", 1, 1500},
		{"second kilometer adds per-km fee", 2, 2500},
		{"five kilometers", 5, 5500},
		{"ten kilometers", 10, 10500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, err := DeliveryFeePaise(tt.distanceKm)
			require.NoError(t, err)
			assert.Equal(t, tt.want, fee)
		})
	}
}

func TestDeliveryFeePaise_NegativeDistanceRejected(t *testing.T) {
	_, err := DeliveryFeePaise(-1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDeliveryFeePaise_MonotonicInDistance(t *testing.T) {
	prev := int64(-1)
	for km := 0; km <= 50; km++ {
		fee, err := DeliveryFeePaise(km)
		require.NoError(t, err)
		assert.Greater(t, fee, prev, "fee must strictly grow at %d km", km)
		prev = fee
	}
}
