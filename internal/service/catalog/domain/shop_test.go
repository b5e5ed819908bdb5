// internal/service/catalog/domain/shop_test.go
package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validShop() *Shop {
	return &Shop{
		Name:      "Sri Kanya Restaurant",
		Type:      ShopTypeRestaurant,
		Address:   "Main Road, Jagannaickpur",
		City:      "Kakinada",
		Latitude:  16.9891,
		Longitude: 82.2475,
	}
}

func TestShopValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Shop)
		wantErr bool
	}{
		{"valid restaurant", func(s *Shop) {}, false},
		{"valid vegetables shop", func(s *Shop) { s.Type = ShopTypeVegetables }, false},
		{"valid grocery", func(s *Shop) { s.Type = ShopTypeGrocery }, false},
		{"name too short", func(s *Shop) { s.Name = "ab" }, true},
		{"unknown type", func(s *Shop) { s.Type = "Pharmacy" }, true},
		{"missing address", func(s *Shop) { s.Address = "" }, true},
		{"missing coordinates", func(s *Shop) { s.Latitude = 0; s.Longitude = 0 }, true},
		{"outside service city", func(s *Shop) { s.City = "Hyderabad" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shop := validShop()
			tt.mutate(shop)
			err := shop.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidShop)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProductValidate(t *testing.T) {
	product := &Product{Name: "Chicken Biryani", PricePaise: 12000}
	assert.NoError(t, product.Validate())

	product.Name = "  "
	assert.ErrorIs(t, product.Validate(), ErrInvalidProduct)

	product.Name = "Chicken Biryani"
	product.PricePaise = -1
	assert.ErrorIs(t, product.Validate(), ErrInvalidProduct)
}
