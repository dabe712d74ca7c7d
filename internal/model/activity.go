package model

import "github.com/google/uuid"

type ActivityAction string

const (
	ActivityCreate      ActivityAction = "create"
	ActivityUpdate      ActivityAction = "update"
	ActivityDelete      ActivityAction = "delete"
	ActivityReduceStock ActivityAction = "reduce_stock"
	ActivityAddStock    ActivityAction = "add_stock"
)

// ProductActivity logs every product mutation, stock movements included.
// Unlike the credit ledger it is prunable: admins may delete entries older
// than a retention cutoff.
type ProductActivity struct {
	BaseModel
	OrganizationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"organization_id"`
	ProductID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName    string         `gorm:"type:varchar(255)" json:"product_name"`
	Action         ActivityAction `gorm:"type:varchar(20);not null" json:"action"`
	QuantityDelta  int            `gorm:"not null;default:0" json:"quantity_delta"` // signed stock delta
	StockAfter     int            `gorm:"not null;default:0" json:"stock_after"`
	Note           string         `gorm:"type:text" json:"note"`
	PerformedBy    string         `gorm:"type:varchar(255)" json:"performed_by"`
}

func (ProductActivity) TableName() string {
	return "product_activities"
}
