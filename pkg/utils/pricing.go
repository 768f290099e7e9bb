package utils

import (
	"math"
	"time"
)

// RentalQuote contains the calculated rental price and breakdown
type RentalQuote struct {
	TotalPrice     float64        `json:"totalPrice"`
	Days           int            `json:"days"`
	PricePerDay    float64        `json:"pricePerDay"`
	WeeklyDiscount float64        `json:"weeklyDiscount"`
	HasDiscount    bool           `json:"hasDiscount"`
	Breakdown      QuoteBreakdown `json:"breakdown"`
}

// QuoteBreakdown provides a detailed price breakdown
type QuoteBreakdown struct {
	BasePrice float64 `json:"basePrice"`
	Discount  float64 `json:"discount"`
	Total     float64 `json:"total"`
}

const (
	// MinimumRentalDays is billed even for same-day rentals
	MinimumRentalDays = 1
	// WeeklyDiscountRate applies to rentals of a week or longer
	WeeklyDiscountRate    = 0.10
	WeeklyDiscountMinDays = 7
)

// CalculateRentalPrice calculates the total price for a rental window at the
// vehicle's daily rate
func CalculateRentalPrice(pricePerDay float64, startDate, endDate time.Time) RentalQuote {
	days := RentalDays(startDate, endDate)

	basePrice := float64(days) * pricePerDay

	var discount float64
	hasDiscount := days >= WeeklyDiscountMinDays
	if hasDiscount {
		discount = basePrice * WeeklyDiscountRate
	}

	total := basePrice - discount

	// Round to 2 decimal places
	total = math.Round(total*100) / 100
	discount = math.Round(discount*100) / 100

	return RentalQuote{
		TotalPrice:     total,
		Days:           days,
		PricePerDay:    pricePerDay,
		WeeklyDiscount: WeeklyDiscountRate,
		HasDiscount:    hasDiscount,
		Breakdown: QuoteBreakdown{
			BasePrice: math.Round(basePrice*100) / 100,
			Discount:  discount,
			Total:     total,
		},
	}
}

// RentalDays counts billable days, rounding partial days up
func RentalDays(startDate, endDate time.Time) int {
	hours := endDate.Sub(startDate).Hours()
	days := int(math.Ceil(hours / 24))
	if days < MinimumRentalDays {
		days = MinimumRentalDays
	}
	return days
}
