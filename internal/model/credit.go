package model

import "github.com/google/uuid"

type CreditTxType string

const (
	CreditAdd    CreditTxType = "add"
	CreditDeduct CreditTxType = "deduct"
	CreditAdjust CreditTxType = "adjust"
	CreditRefund CreditTxType = "refund"
)

// CreditTransaction is an append-only ledger row recording one balance
// mutation. Rows are never updated or deleted; BalanceBefore/BalanceAfter
// are captured from the same atomic balance update that the row describes,
// so BalanceAfter = BalanceBefore + Amount holds by construction.
//
// OrganizationName and PerformedByName are denormalized for audit
// readability: the ledger stays legible even after the referenced user is
// renamed or deactivated.
type CreditTransaction struct {
	BaseModel
	OrganizationID   uuid.UUID    `gorm:"type:uuid;not null;index" json:"organization_id"`
	OrganizationName string       `gorm:"type:varchar(255)" json:"organization_name"`
	Type             CreditTxType `gorm:"type:varchar(10);not null" json:"type" validate:"required,oneof=add deduct adjust refund"`
	Amount           int64        `gorm:"not null" json:"amount"` // signed: negative for deduct
	BalanceBefore    int64        `gorm:"not null" json:"balance_before"`
	BalanceAfter     int64        `gorm:"not null" json:"balance_after"`
	Description      string       `gorm:"type:text" json:"description"`
	OrderID          *uuid.UUID   `gorm:"type:uuid;index" json:"order_id,omitempty"`
	PerformedBy      string       `gorm:"type:varchar(255)" json:"performed_by"`
	PerformedByName  string       `gorm:"type:varchar(255)" json:"performed_by_name"`
}
