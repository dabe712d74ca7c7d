package repository

import (
	"go-backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll(orgID uuid.UUID) ([]model.Product, error)
	FindByID(orgID, id uuid.UUID) (*model.Product, error)
	FindByCode(orgID uuid.UUID, code string) (*model.Product, error)
	Update(tx *gorm.DB, product *model.Product) error
	Delete(orgID, id uuid.UUID, deletedBy string) error
	// LockByID loads the product row FOR UPDATE so stock checks and their
	// mutation commit atomically within the enclosing transaction.
	LockByID(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	UpdateStock(tx *gorm.DB, id uuid.UUID, newStock int, updatedBy string) error
	Stats(orgID uuid.UUID) (*ProductStats, error)
}

// ProductStats summarizes the product catalogue for the dashboard.
type ProductStats struct {
	TotalProducts  int64 `json:"total_products"`
	LowStockCount  int64 `json:"low_stock_count"`
	TotalValuation int64 `json:"total_valuation"`
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll(orgID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("organization_id = ?", orgID).Order("code ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(orgID, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ? AND organization_id = ?", id, orgID).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByCode(orgID uuid.UUID, code string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "organization_id = ? AND code = ?", orgID, code).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(tx *gorm.DB, product *model.Product) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Save(product).Error
}

func (r *productRepo) Delete(orgID, id uuid.UUID, deletedBy string) error {
	res := r.db.Model(&model.Product{}).
		Where("id = ? AND organization_id = ?", id, orgID).
		Update("deleted_by", deletedBy)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepo) LockByID(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateStock runs against the caller's transaction handle so it can join
// a lock-check-update sequence.
func (r *productRepo) UpdateStock(tx *gorm.DB, id uuid.UUID, newStock int, updatedBy string) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock_quantity": newStock,
			"updated_by":     updatedBy,
		}).Error
}

func (r *productRepo) Stats(orgID uuid.UUID) (*ProductStats, error) {
	var stats ProductStats

	if err := r.db.Model(&model.Product{}).
		Where("organization_id = ?", orgID).
		Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Product{}).
		Where("organization_id = ? AND low_stock_threshold > 0 AND stock_quantity <= low_stock_threshold", orgID).
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Product{}).
		Where("organization_id = ?", orgID).
		Select("COALESCE(SUM(stock_quantity * price), 0)").
		Scan(&stats.TotalValuation).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
