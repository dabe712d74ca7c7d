package shipping

import "math"

// Rates are the seven configurable shipping charges. PickPack, Bubble,
// PaperInside and CancelOrder are per ordered item; CODPercent is a
// percentage of price * quantity; Box and DeliveryFee are flat per order.
type Rates struct {
	PickPack    int64
	Bubble      int64
	PaperInside int64
	CancelOrder int64
	CODPercent  float64
	Box         int64
	DeliveryFee int64
}

// Breakdown is the per-line result of a shipping cost calculation.
type Breakdown struct {
	PickPack    int64 `json:"pick_pack"`
	Bubble      int64 `json:"bubble"`
	PaperInside int64 `json:"paper_inside"`
	CancelOrder int64 `json:"cancel_order"`
	COD         int64 `json:"cod"`
	Box         int64 `json:"box"`
	DeliveryFee int64 `json:"delivery_fee"`
	Total       int64 `json:"total"`
}

// Calculate computes the shipping cost for an order. Pure: the same inputs
// always produce the same breakdown, so clients can preview a quote and the
// server recomputes the authoritative charge from its own rate config.
// The cancelOrder line applies only to cancelled orders. Inputs are assumed
// pre-validated (quantity > 0, price >= 0).
func Calculate(quantity int, price int64, rates Rates, cancelled bool) Breakdown {
	qty := int64(quantity)

	b := Breakdown{
		PickPack:    rates.PickPack * qty,
		Bubble:      rates.Bubble * qty,
		PaperInside: rates.PaperInside * qty,
		Box:         rates.Box,
		DeliveryFee: rates.DeliveryFee,
	}
	if cancelled {
		b.CancelOrder = rates.CancelOrder * qty
	}
	if rates.CODPercent != 0 {
		b.COD = int64(math.Round(float64(price*qty) * rates.CODPercent / 100))
	}

	b.Total = b.PickPack + b.Bubble + b.PaperInside + b.CancelOrder + b.COD + b.Box + b.DeliveryFee
	return b
}
