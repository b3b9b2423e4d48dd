package pricing

import (
	"github.com/shopspring/decimal"
)

// Niche tiers recognized by the fee policy
const (
	NicheLocal      = "local"
	NicheUniversity = "university"
)

var (
	universityFee  = decimal.NewFromInt(15)
	localFee       = decimal.NewFromInt(20)
	commercialRate = decimal.NewFromFloat(0.10)
)

// FeeCalculator computes the reservation fee collected online in advance.
// The remainder of the ticket price is collected at the venue.
type FeeCalculator struct{}

func NewFeeCalculator() *FeeCalculator {
	return &FeeCalculator{}
}

// ReservationFee returns the fee for a ticket price and producer niche.
//
// Tiers:
//   - university: flat ₱15
//   - local/community: flat ₱20
//   - anything else (professional/commercial): 10% of price, rounded
//
// The fee never exceeds the ticket price, and free shows carry no fee.
func (c *FeeCalculator) ReservationFee(price decimal.Decimal, niche string) decimal.Decimal {
	if price.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	var fee decimal.Decimal
	switch niche {
	case NicheUniversity:
		fee = universityFee
	case NicheLocal:
		fee = localFee
	default:
		fee = price.Mul(commercialRate).Round(0)
	}

	if fee.GreaterThan(price) {
		fee = price
	}
	return fee
}

// RemainingBalance is the portion collected at the venue, never negative
func (c *FeeCalculator) RemainingBalance(price decimal.Decimal, fee decimal.Decimal) decimal.Decimal {
	balance := price.Sub(fee)
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

// FeeBreakdown carries the intermediate steps, used for logging
type FeeBreakdown struct {
	Price            decimal.Decimal `json:"price"`
	Niche            string          `json:"niche"`
	RawFee           decimal.Decimal `json:"raw_fee"`
	Fee              decimal.Decimal `json:"fee"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	Capped           bool            `json:"capped"`
}

// CalculateWithBreakdown computes the fee with each step recorded
func (c *FeeCalculator) CalculateWithBreakdown(price decimal.Decimal, niche string) FeeBreakdown {
	breakdown := FeeBreakdown{Price: price, Niche: niche}

	if price.LessThanOrEqual(decimal.Zero) {
		breakdown.RemainingBalance = decimal.Zero
		return breakdown
	}

	switch niche {
	case NicheUniversity:
		breakdown.RawFee = universityFee
	case NicheLocal:
		breakdown.RawFee = localFee
	default:
		breakdown.RawFee = price.Mul(commercialRate).Round(0)
	}

	breakdown.Fee = breakdown.RawFee
	if breakdown.Fee.GreaterThan(price) {
		breakdown.Fee = price
		breakdown.Capped = true
	}
	breakdown.RemainingBalance = c.RemainingBalance(price, breakdown.Fee)
	return breakdown
}
