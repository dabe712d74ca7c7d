package model

import "github.com/google/uuid"

type Product struct {
	BaseModel
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_org_code" json:"organization_id"`

	Code              string `gorm:"type:varchar(50);not null;uniqueIndex:idx_org_code" json:"code" validate:"required"`
	Name              string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Price             int64  `gorm:"default:0" json:"price" validate:"gte=0"`
	StockQuantity     int    `gorm:"default:0" json:"stock_quantity" validate:"gte=0"`
	LowStockThreshold int    `gorm:"default:0" json:"low_stock_threshold" validate:"gte=0"`
	IsActive          bool   `gorm:"default:true" json:"is_active"`
}

// LowStock reports whether the product has fallen to or below its
// configured threshold. A zero threshold disables the alert.
func (p *Product) LowStock() bool {
	return p.LowStockThreshold > 0 && p.StockQuantity <= p.LowStockThreshold
}
