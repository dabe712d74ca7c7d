package shipping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateFormula(t *testing.T) {
	rates := Rates{
		PickPack:    7,
		Bubble:      4,
		PaperInside: 2,
		CancelOrder: 6,
		CODPercent:  5,
		Box:         15,
		DeliveryFee: 30,
	}

	b := Calculate(3, 200, rates, false)

	assert.Equal(t, int64(21), b.PickPack)
	assert.Equal(t, int64(12), b.Bubble)
	assert.Equal(t, int64(6), b.PaperInside)
	assert.Equal(t, int64(0), b.CancelOrder, "cancelOrder applies only to cancelled orders")
	assert.Equal(t, int64(30), b.COD) // 5% of 200*3
	assert.Equal(t, int64(15), b.Box)
	assert.Equal(t, int64(30), b.DeliveryFee)
	assert.Equal(t, int64(114), b.Total)
}

func TestCalculateCancelledOrder(t *testing.T) {
	rates := Rates{CancelOrder: 6}

	b := Calculate(3, 200, rates, true)
	assert.Equal(t, int64(18), b.CancelOrder)
	assert.Equal(t, int64(18), b.Total)
}

// Balance ฿100 scenario from the back-office: quantity 2 at ฿350 with
// pickPack 20, bubble 5, paperInside 3, cod 3% comes to ฿77.
func TestCalculateTypicalOrder(t *testing.T) {
	rates := Rates{
		PickPack:    20,
		Bubble:      5,
		PaperInside: 3,
		CODPercent:  3,
	}

	b := Calculate(2, 350, rates, false)

	assert.Equal(t, int64(40), b.PickPack)
	assert.Equal(t, int64(10), b.Bubble)
	assert.Equal(t, int64(6), b.PaperInside)
	assert.Equal(t, int64(21), b.COD)
	assert.Equal(t, int64(0), b.Box)
	assert.Equal(t, int64(0), b.DeliveryFee)
	assert.Equal(t, int64(77), b.Total)
}

func TestCalculateZeroRates(t *testing.T) {
	b := Calculate(10, 999, Rates{}, true)
	assert.Equal(t, int64(0), b.Total)
}

func TestCalculateIsPure(t *testing.T) {
	rates := Rates{PickPack: 1, CODPercent: 2.5, DeliveryFee: 40}
	first := Calculate(4, 120, rates, false)
	second := Calculate(4, 120, rates, false)
	assert.Equal(t, first, second)
}
