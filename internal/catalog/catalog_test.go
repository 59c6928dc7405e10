package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TomaszChromy/CarRentalManager/internal/models"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func testFleet() []models.Car {
	return []models.Car{
		{ID: 1, Make: "Toyota", Model: "Yaris", Category: "economic", Transmission: "automatic", FuelType: "petrol", Location: "Warszawa Centrum", Status: models.CarAvailable, PricePerDay: "89.00", Rating: "4.5"},
		{ID: 2, Make: "Volkswagen", Model: "Golf", Category: "compact", Transmission: "manual", FuelType: "petrol", Location: "Warszawa Centrum", Status: models.CarRented, PricePerDay: "119.00", Rating: "4.5"},
		{ID: 3, Make: "BMW", Model: "X3", Category: "suv", Transmission: "automatic", FuelType: "diesel", Location: "Kraków Główny", Status: models.CarAvailable, PricePerDay: "289.00", Rating: "4.9"},
		{ID: 4, Make: "Tesla", Model: "Model 3", Category: "premium", Transmission: "automatic", FuelType: "electric", Location: "Gdańsk Port", Status: models.CarAvailable, PricePerDay: "349.00", Rating: "5.0"},
		{ID: 5, Make: "Fiat", Model: "500", Category: "economic", Transmission: "manual", FuelType: "petrol", Location: "Kraków Główny", Status: models.CarMaintenance, PricePerDay: "69.00", Rating: ""},
	}
}

func TestFilterNoPredicates(t *testing.T) {
	cars := Filter(testFleet(), CarFilters{})
	assert.Len(t, cars, 5)
}

func TestFilterConjunction(t *testing.T) {
	// category + price band must both hold
	cars := Filter(testFleet(), CarFilters{
		Category: strPtr("suv"),
		MaxPrice: floatPtr(300),
	})

	require.Len(t, cars, 1)
	assert.Equal(t, 3, cars[0].ID)
}

func TestFilterByEachField(t *testing.T) {
	fleet := testFleet()

	tests := []struct {
		name    string
		filters CarFilters
		wantIDs []int
	}{
		{"category", CarFilters{Category: strPtr("economic")}, []int{1, 5}},
		{"transmission", CarFilters{Transmission: strPtr("manual")}, []int{2, 5}},
		{"fuel type", CarFilters{FuelType: strPtr("electric")}, []int{4}},
		{"location", CarFilters{Location: strPtr("Kraków Główny")}, []int{3, 5}},
		{"status", CarFilters{Status: strPtr("available")}, []int{1, 3, 4}},
		{"min price inclusive", CarFilters{MinPrice: floatPtr(289)}, []int{3, 4}},
		{"max price inclusive", CarFilters{MaxPrice: floatPtr(89)}, []int{1, 5}},
		{"price band", CarFilters{MinPrice: floatPtr(100), MaxPrice: floatPtr(300)}, []int{2, 3}},
		{"no match", CarFilters{Category: strPtr("suv"), FuelType: strPtr("electric")}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cars := Filter(fleet, tt.filters)
			ids := []int{}
			for _, c := range cars {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestSortPrice(t *testing.T) {
	cars := testFleet()

	Sort(cars, SortPriceAsc)
	assert.Equal(t, []int{5, 1, 2, 3, 4}, carIDs(cars))

	Sort(cars, SortPriceDesc)
	assert.Equal(t, []int{4, 3, 2, 1, 5}, carIDs(cars))
}

func TestSortRatingStable(t *testing.T) {
	cars := testFleet()
	Sort(cars, SortRating)

	// Cars 1 and 2 share rating 4.5 and must keep their original
	// relative order; the empty rating sorts last as 0.
	assert.Equal(t, []int{4, 3, 1, 2, 5}, carIDs(cars))
}

func TestSortUnknownKeyKeepsOrder(t *testing.T) {
	cars := testFleet()
	Sort(cars, "mileage")
	assert.Equal(t, []int{1, 2, 3, 4, 5}, carIDs(cars))
}

func carIDs(cars []models.Car) []int {
	ids := make([]int, 0, len(cars))
	for _, c := range cars {
		ids = append(ids, c.ID)
	}
	return ids
}
