package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestReservationFee(t *testing.T) {
	calc := NewFeeCalculator()

	tests := []struct {
		name  string
		price float64
		niche string
		want  int64
	}{
		{"university flat", 500, NicheUniversity, 15},
		{"local flat", 500, NicheLocal, 20},
		{"commercial ten percent", 500, "commercial", 50},
		{"commercial rounds", 255, "commercial", 26},
		{"free show no fee", 0, NicheLocal, 0},
		{"negative price no fee", -100, NicheUniversity, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.ReservationFee(decimal.NewFromFloat(tt.price), tt.niche)
			assert.True(t, got.Equal(decimal.NewFromInt(tt.want)),
				"got %s, want %d", got, tt.want)
		})
	}
}

// The fee is capped at the ticket price for cheap tickets
func TestReservationFeeCap(t *testing.T) {
	calc := NewFeeCalculator()

	fee := calc.ReservationFee(decimal.NewFromInt(10), NicheLocal)
	assert.True(t, fee.Equal(decimal.NewFromInt(10)))

	fee = calc.ReservationFee(decimal.NewFromInt(12), NicheUniversity)
	assert.True(t, fee.Equal(decimal.NewFromInt(12)))
}

func TestRemainingBalance(t *testing.T) {
	calc := NewFeeCalculator()

	price := decimal.NewFromInt(500)
	fee := calc.ReservationFee(price, NicheLocal)
	balance := calc.RemainingBalance(price, fee)
	assert.True(t, balance.Equal(decimal.NewFromInt(480)))

	// Never negative even with a fee above price
	balance = calc.RemainingBalance(decimal.NewFromInt(10), decimal.NewFromInt(20))
	assert.True(t, balance.IsZero())
}

// Fee plus balance always reconstructs the price
func TestFeeBalancePartition(t *testing.T) {
	calc := NewFeeCalculator()

	for _, price := range []int64{1, 10, 15, 20, 100, 500, 1250} {
		for _, niche := range []string{NicheLocal, NicheUniversity, "commercial"} {
			p := decimal.NewFromInt(price)
			fee := calc.ReservationFee(p, niche)
			balance := calc.RemainingBalance(p, fee)

			assert.True(t, fee.Add(balance).Equal(p),
				"price %d niche %s: %s + %s != %s", price, niche, fee, balance, p)
			assert.False(t, fee.IsNegative())
		}
	}
}

func TestCalculateWithBreakdown(t *testing.T) {
	calc := NewFeeCalculator()

	b := calc.CalculateWithBreakdown(decimal.NewFromInt(10), NicheLocal)
	assert.True(t, b.Capped)
	assert.True(t, b.Fee.Equal(decimal.NewFromInt(10)))
	assert.True(t, b.RawFee.Equal(decimal.NewFromInt(20)))
	assert.True(t, b.RemainingBalance.IsZero())

	b = calc.CalculateWithBreakdown(decimal.NewFromInt(500), "commercial")
	assert.False(t, b.Capped)
	assert.True(t, b.Fee.Equal(decimal.NewFromInt(50)))
	assert.True(t, b.RemainingBalance.Equal(decimal.NewFromInt(450)))
}
