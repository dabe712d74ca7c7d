package repository

import (
	"time"

	"go-backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityRepository interface {
	Log(tx *gorm.DB, entry *model.ProductActivity) error
	FindByOrg(orgID uuid.UUID, productID *uuid.UUID, limit, offset int) ([]model.ProductActivity, error)
	// PruneBefore hard-deletes activity entries older than the cutoff.
	// Applies to the activity log only; the credit ledger has no prune path.
	PruneBefore(orgID uuid.UUID, cutoff time.Time) (int64, error)
}

type activityRepo struct {
	db *gorm.DB
}

func NewActivityRepo(db *gorm.DB) ActivityRepository {
	return &activityRepo{db}
}

func (r *activityRepo) Log(tx *gorm.DB, entry *model.ProductActivity) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(entry).Error
}

func (r *activityRepo) FindByOrg(orgID uuid.UUID, productID *uuid.UUID, limit, offset int) ([]model.ProductActivity, error) {
	q := r.db.Where("organization_id = ?", orgID).Order("created_at DESC")
	if productID != nil {
		q = q.Where("product_id = ?", *productID)
	}
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var entries []model.ProductActivity
	err := q.Find(&entries).Error
	return entries, err
}

func (r *activityRepo) PruneBefore(orgID uuid.UUID, cutoff time.Time) (int64, error) {
	res := r.db.Unscoped().
		Where("organization_id = ? AND created_at < ?", orgID, cutoff).
		Delete(&model.ProductActivity{})
	return res.RowsAffected, res.Error
}
