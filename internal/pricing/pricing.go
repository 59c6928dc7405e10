package pricing

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

var (
	ErrInvalidDateRange = errors.New("return date must be after pickup date")
	ErrUnknownExtra     = errors.New("unknown extra option")
)

const (
	// FlatInsurance is charged once per reservation, independent of duration.
	FlatInsurance = 30.0
	// VATRate is applied on top of the subtotal.
	VATRate = 0.23
)

// Extra is an optional add-on service priced per rental day.
type Extra struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	PricePerDay float64 `json:"pricePerDay"`
}

// ExtraOptions is the fixed catalog of bookable extras.
var ExtraOptions = []Extra{
	{ID: "gps", Name: "GPS / Navigation", PricePerDay: 15},
	{ID: "additional_driver", Name: "Additional driver", PricePerDay: 25},
	{ID: "child_seat", Name: "Child seat", PricePerDay: 20},
	{ID: "insurance", Name: "CASCO insurance", PricePerDay: 45},
}

// ExtraByID looks up an extra in the catalog.
func ExtraByID(id string) (Extra, bool) {
	for _, e := range ExtraOptions {
		if e.ID == id {
			return e, true
		}
	}
	return Extra{}, false
}

// Quote is an itemized price breakdown for a rental.
type Quote struct {
	Days       int     `json:"days"`
	CarCost    float64 `json:"carCost"`
	ExtrasCost float64 `json:"extrasCost"`
	Insurance  float64 `json:"insurance"`
	Subtotal   float64 `json:"subtotal"`
	VAT        float64 `json:"vat"`
	Total      float64 `json:"total"`
}

// Days returns the billable rental duration: any started day counts as
// a full day. Zero or negative for an inverted or empty range.
func Days(pickup, returnDate time.Time) int {
	return int(math.Ceil(returnDate.Sub(pickup).Hours() / 24))
}

// ValidateRange rejects reservations whose return timestamp is not
// strictly after pickup.
func ValidateRange(pickup, returnDate time.Time) error {
	if !returnDate.After(pickup) {
		return ErrInvalidDateRange
	}
	return nil
}

// Compute builds a quote for a car's daily rate over a date range with
// the selected extras. A degenerate range yields a zero quote; every
// unknown extra id is an error. Intermediate values stay unrounded,
// callers round at the point of persistence via FormatAmount.
func Compute(dailyRate float64, pickup, returnDate time.Time, extras []string) (Quote, error) {
	days := Days(pickup, returnDate)
	if days <= 0 {
		return Quote{Days: days}, nil
	}

	extrasCost := 0.0
	for _, id := range extras {
		extra, ok := ExtraByID(id)
		if !ok {
			return Quote{}, fmt.Errorf("%w: %s", ErrUnknownExtra, id)
		}
		extrasCost += extra.PricePerDay * float64(days)
	}

	carCost := dailyRate * float64(days)
	subtotal := carCost + extrasCost + FlatInsurance
	vat := subtotal * VATRate

	return Quote{
		Days:       days,
		CarCost:    carCost,
		ExtrasCost: extrasCost,
		Insurance:  FlatInsurance,
		Subtotal:   subtotal,
		VAT:        vat,
		Total:      subtotal + vat,
	}, nil
}

// FormatAmount renders a monetary value as a 2-decimal string, the
// representation used by the decimal columns.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ParseAmount parses a decimal-as-text value; malformed or empty input
// parses as 0.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
