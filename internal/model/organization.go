package model

import "github.com/google/uuid"

// Organization is the tenant boundary. Every product, order and credit
// transaction belongs to exactly one organization.
//
// CreditBalance is a signed amount in whole currency units (฿). It can go
// negative: the cancellation fee is charged without a balance guard (a
// running debt is an accepted business outcome here), while shipping
// deductions are guarded and can never overdraw.
type Organization struct {
	BaseModel
	Name          string     `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	CreditBalance int64      `gorm:"not null;default:0" json:"credit_balance"`
	OwnerID       *uuid.UUID `gorm:"type:uuid" json:"owner_id,omitempty"`
}

// ShippingRateConfig holds the seven admin-configurable shipping rates for
// one organization. Replaces the ephemeral client-side rate state of the
// legacy app: created with zero rates at signup, edited by admins, and
// version-stamped on every change so the server always charges from a
// persisted, auditable configuration.
type ShippingRateConfig struct {
	BaseModel
	OrganizationID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"organization_id"`

	PickPack    int64   `gorm:"not null;default:0" json:"pick_pack"`    // per item
	Bubble      int64   `gorm:"not null;default:0" json:"bubble"`       // per item
	PaperInside int64   `gorm:"not null;default:0" json:"paper_inside"` // per item
	CancelOrder int64   `gorm:"not null;default:0" json:"cancel_order"` // per item, cancelled orders only
	CODPercent  float64 `gorm:"not null;default:0" json:"cod_percent"`  // percent of price * quantity
	Box         int64   `gorm:"not null;default:0" json:"box"`          // flat per order
	DeliveryFee int64   `gorm:"not null;default:0" json:"delivery_fee"` // flat per order

	Version int `gorm:"not null;default:1" json:"version"`
}

func (ShippingRateConfig) TableName() string {
	return "shipping_rate_configs"
}
