package repository

import (
	"go-backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrganizationRepository interface {
	Create(tx *gorm.DB, org *model.Organization) error
	FindByID(id uuid.UUID) (*model.Organization, error)
	FindByName(name string) (*model.Organization, error)
	// LockByID loads the organization row FOR UPDATE so a balance check
	// and its mutation commit atomically within the enclosing transaction.
	LockByID(tx *gorm.DB, id uuid.UUID) (*model.Organization, error)
	UpdateBalance(tx *gorm.DB, id uuid.UUID, newBalance int64, updatedBy string) error
	SetOwner(tx *gorm.DB, id, ownerID uuid.UUID) error
}

type organizationRepo struct {
	db *gorm.DB
}

func NewOrganizationRepo(db *gorm.DB) OrganizationRepository {
	return &organizationRepo{db}
}

func (r *organizationRepo) Create(tx *gorm.DB, org *model.Organization) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(org).Error
}

func (r *organizationRepo) FindByID(id uuid.UUID) (*model.Organization, error) {
	var org model.Organization
	if err := r.db.First(&org, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepo) FindByName(name string) (*model.Organization, error) {
	var org model.Organization
	if err := r.db.First(&org, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepo) LockByID(tx *gorm.DB, id uuid.UUID) (*model.Organization, error) {
	var org model.Organization
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&org, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepo) UpdateBalance(tx *gorm.DB, id uuid.UUID, newBalance int64, updatedBy string) error {
	return tx.Model(&model.Organization{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"credit_balance": newBalance,
			"updated_by":     updatedBy,
		}).Error
}

func (r *organizationRepo) SetOwner(tx *gorm.DB, id, ownerID uuid.UUID) error {
	return tx.Model(&model.Organization{}).
		Where("id = ?", id).
		Update("owner_id", ownerID).Error
}
