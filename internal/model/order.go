package model

import "github.com/google/uuid"

type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusProcessing     OrderStatus = "processing"
	StatusSentToLogistic OrderStatus = "sent_to_logistic"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// validNext encodes the order lifecycle. Cancellation is reachable from
// every other state, including delivered (a delivered order can still be
// returned and cancelled); cancelled itself is terminal.
var validNext = map[OrderStatus]map[OrderStatus]bool{
	StatusPending:        {StatusProcessing: true, StatusSentToLogistic: true, StatusCancelled: true},
	StatusProcessing:     {StatusSentToLogistic: true, StatusCancelled: true},
	StatusSentToLogistic: {StatusDelivered: true, StatusCancelled: true},
	StatusDelivered:      {StatusCancelled: true},
	StatusCancelled:      {},
}

// CanTransition reports whether an order may move from one status to
// another. Same-status "transitions" are rejected.
func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

type OrderChannel string

const (
	ChannelLine   OrderChannel = "line"
	ChannelShopee OrderChannel = "shopee"
	ChannelLazada OrderChannel = "lazada"
	ChannelOther  OrderChannel = "other"
)

// CancellationFeePerUnit is the flat fee (฿ per ordered unit) charged when
// an order is cancelled. Charged without a balance guard, so it may drive
// the organization balance negative.
const CancellationFeePerUnit int64 = 10

type Order struct {
	BaseModel
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"organization_id"`
	ProductID      *uuid.UUID `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Product        *Product   `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`

	// Snapshot of the product at order time; orders without a linked
	// product carry free-form name and price.
	ProductName string `gorm:"type:varchar(255);not null" json:"product_name" validate:"required"`
	Price       int64  `gorm:"not null" json:"price" validate:"gte=0"`
	Quantity    int    `gorm:"not null" json:"quantity" validate:"required,gt=0"`

	Channel         OrderChannel `gorm:"type:varchar(20);not null" json:"channel" validate:"required,oneof=line shopee lazada other"`
	CustomerName    string       `gorm:"type:varchar(255);not null" json:"customer_name" validate:"required"`
	CustomerContact string       `gorm:"type:varchar(255)" json:"customer_contact"`
	ShippingAddress string       `gorm:"type:text" json:"shipping_address"`

	Status OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	// Shipping cost breakdown, persisted when shipping is confirmed.
	// Always recomputed server-side from the organization's rate config.
	PickPackCost      int64 `gorm:"default:0" json:"pick_pack_cost"`
	BubbleCost        int64 `gorm:"default:0" json:"bubble_cost"`
	PaperInsideCost   int64 `gorm:"default:0" json:"paper_inside_cost"`
	CancelOrderCost   int64 `gorm:"default:0" json:"cancel_order_cost"`
	CODCost           int64 `gorm:"default:0" json:"cod_cost"`
	BoxCost           int64 `gorm:"default:0" json:"box_cost"`
	DeliveryFeeCost   int64 `gorm:"default:0" json:"delivery_fee_cost"`
	TotalShippingCost int64 `gorm:"default:0" json:"total_shipping_cost"`
}
