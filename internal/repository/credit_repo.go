package repository

import (
	"go-backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreditRepository is the append-only ledger. There is deliberately no
// update or delete: every balance mutation appends exactly one row.
type CreditRepository interface {
	Append(tx *gorm.DB, entry *model.CreditTransaction) error
	FindByOrg(orgID uuid.UUID, limit, offset int) ([]model.CreditTransaction, error)
	CountByOrg(orgID uuid.UUID) (int64, error)
	// ExistsRefundForOrder guards against refunding one order twice.
	ExistsRefundForOrder(tx *gorm.DB, orderID uuid.UUID) (bool, error)
}

type creditRepo struct {
	db *gorm.DB
}

func NewCreditRepo(db *gorm.DB) CreditRepository {
	return &creditRepo{db}
}

func (r *creditRepo) Append(tx *gorm.DB, entry *model.CreditTransaction) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(entry).Error
}

func (r *creditRepo) FindByOrg(orgID uuid.UUID, limit, offset int) ([]model.CreditTransaction, error) {
	var entries []model.CreditTransaction
	q := r.db.Where("organization_id = ?", orgID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	err := q.Find(&entries).Error
	return entries, err
}

func (r *creditRepo) ExistsRefundForOrder(tx *gorm.DB, orderID uuid.UUID) (bool, error) {
	if tx == nil {
		tx = r.db
	}
	var count int64
	err := tx.Model(&model.CreditTransaction{}).
		Where("order_id = ? AND type = ?", orderID, model.CreditRefund).
		Count(&count).Error
	return count > 0, err
}

func (r *creditRepo) CountByOrg(orgID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.CreditTransaction{}).
		Where("organization_id = ?", orgID).
		Count(&count).Error
	return count, err
}
