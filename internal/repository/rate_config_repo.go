package repository

import (
	"go-backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RateConfigRepository interface {
	Create(tx *gorm.DB, cfg *model.ShippingRateConfig) error
	FindByOrg(orgID uuid.UUID) (*model.ShippingRateConfig, error)
	// Update persists new rates and bumps the version stamp in the same
	// statement.
	Update(orgID uuid.UUID, cfg *model.ShippingRateConfig, updatedBy string) (*model.ShippingRateConfig, error)
}

type rateConfigRepo struct {
	db *gorm.DB
}

func NewRateConfigRepo(db *gorm.DB) RateConfigRepository {
	return &rateConfigRepo{db}
}

func (r *rateConfigRepo) Create(tx *gorm.DB, cfg *model.ShippingRateConfig) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(cfg).Error
}

func (r *rateConfigRepo) FindByOrg(orgID uuid.UUID) (*model.ShippingRateConfig, error) {
	var cfg model.ShippingRateConfig
	if err := r.db.First(&cfg, "organization_id = ?", orgID).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *rateConfigRepo) Update(orgID uuid.UUID, cfg *model.ShippingRateConfig, updatedBy string) (*model.ShippingRateConfig, error) {
	err := r.db.Model(&model.ShippingRateConfig{}).
		Where("organization_id = ?", orgID).
		Updates(map[string]interface{}{
			"pick_pack":    cfg.PickPack,
			"bubble":       cfg.Bubble,
			"paper_inside": cfg.PaperInside,
			"cancel_order": cfg.CancelOrder,
			"cod_percent":  cfg.CODPercent,
			"box":          cfg.Box,
			"delivery_fee": cfg.DeliveryFee,
			"version":      gorm.Expr("version + 1"),
			"updated_by":   updatedBy,
		}).Error
	if err != nil {
		return nil, err
	}
	return r.FindByOrg(orgID)
}
