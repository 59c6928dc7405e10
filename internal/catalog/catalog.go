package catalog

import (
	"sort"

	"github.com/TomaszChromy/CarRentalManager/internal/models"
	"github.com/TomaszChromy/CarRentalManager/internal/pricing"
)

// CarFilters holds the optional car list predicates. A nil field
// imposes no constraint; provided fields are combined with AND.
type CarFilters struct {
	Category     *string
	Transmission *string
	FuelType     *string
	Location     *string
	Status       *string
	MinPrice     *float64
	MaxPrice     *float64
}

// Matches reports whether a car satisfies every provided predicate.
// Price bounds are inclusive.
func (f CarFilters) Matches(car models.Car) bool {
	if f.Category != nil && car.Category != *f.Category {
		return false
	}
	if f.Transmission != nil && car.Transmission != *f.Transmission {
		return false
	}
	if f.FuelType != nil && car.FuelType != *f.FuelType {
		return false
	}
	if f.Location != nil && car.Location != *f.Location {
		return false
	}
	if f.Status != nil && string(car.Status) != *f.Status {
		return false
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := pricing.ParseAmount(car.PricePerDay)
		if f.MinPrice != nil && price < *f.MinPrice {
			return false
		}
		if f.MaxPrice != nil && price > *f.MaxPrice {
			return false
		}
	}
	return true
}

// Filter returns the cars matching all provided predicates, preserving
// input order.
func Filter(cars []models.Car, filters CarFilters) []models.Car {
	result := []models.Car{}
	for _, car := range cars {
		if filters.Matches(car) {
			result = append(result, car)
		}
	}
	return result
}

// Sort keys accepted by the car list endpoint.
const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortRating    = "rating"
)

// Sort orders cars in place by the given key. Price and rating are
// decimal-as-text and compared numerically; a missing or unparseable
// rating sorts as 0. Ties keep their original relative order. An
// unknown key leaves the order untouched.
func Sort(cars []models.Car, sortBy string) {
	switch sortBy {
	case SortPriceAsc:
		sort.SliceStable(cars, func(i, j int) bool {
			return pricing.ParseAmount(cars[i].PricePerDay) < pricing.ParseAmount(cars[j].PricePerDay)
		})
	case SortPriceDesc:
		sort.SliceStable(cars, func(i, j int) bool {
			return pricing.ParseAmount(cars[i].PricePerDay) > pricing.ParseAmount(cars[j].PricePerDay)
		})
	case SortRating:
		sort.SliceStable(cars, func(i, j int) bool {
			return pricing.ParseAmount(cars[i].Rating) > pricing.ParseAmount(cars[j].Rating)
		})
	}
}
