package service

import (
	"fmt"

	"go-backoffice/internal/events"
	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/internal/ws"
	"go-backoffice/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService interface {
	CreateProduct(orgID uuid.UUID, req *model.Product, actor Actor) error
	UpdateProduct(orgID, id uuid.UUID, req *UpdateProductRequest, actor Actor) (*model.Product, error)
	AdjustStock(orgID, id uuid.UUID, newQuantity int, note string, actor Actor) (*model.Product, error)
	DeleteProduct(orgID, id uuid.UUID, actor Actor) error
	GetAllProducts(orgID uuid.UUID) ([]model.Product, error)
	GetProductByID(orgID, id uuid.UUID) (*model.Product, error)
}

type UpdateProductRequest struct {
	Code              string `json:"code" validate:"required"`
	Name              string `json:"name" validate:"required"`
	Price             int64  `json:"price" validate:"gte=0"`
	LowStockThreshold int    `json:"low_stock_threshold" validate:"gte=0"`
	IsActive          *bool  `json:"is_active"`
}

type productService struct {
	db           repository.TxManager
	productRepo  repository.ProductRepository
	activityRepo repository.ActivityRepository
	wsHub        *ws.Hub
	publisher    events.Publisher
}

func NewProductService(
	db repository.TxManager,
	productRepo repository.ProductRepository,
	activityRepo repository.ActivityRepository,
	hub *ws.Hub,
	publisher events.Publisher,
) ProductService {
	return &productService{
		db:           db,
		productRepo:  productRepo,
		activityRepo: activityRepo,
		wsHub:        hub,
		publisher:    publisher,
	}
}

func (s *productService) CreateProduct(orgID uuid.UUID, req *model.Product, actor Actor) error {
	if err := validator.Check(req); err != nil {
		return err
	}

	// Product codes are unique per organization.
	existing, _ := s.productRepo.FindByCode(orgID, req.Code)
	if existing != nil && existing.ID != uuid.Nil {
		return ErrDuplicateProductCode
	}

	req.OrganizationID = orgID
	req.IsActive = true
	req.CreatedBy = actor.ID
	req.UpdatedBy = actor.ID

	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	entry := &model.ProductActivity{
		OrganizationID: orgID,
		ProductID:      req.ID,
		ProductName:    req.Name,
		Action:         model.ActivityCreate,
		QuantityDelta:  req.StockQuantity,
		StockAfter:     req.StockQuantity,
		Note:           "Product created",
		PerformedBy:    actor.ID,
	}
	entry.CreatedBy = actor.ID
	entry.UpdatedBy = actor.ID
	if err := s.activityRepo.Log(nil, entry); err != nil {
		return err
	}

	if s.wsHub != nil {
		s.wsHub.Send(map[string]interface{}{
			"type":            "stock_update",
			"action":          "product_created",
			"organization_id": orgID,
			"product": map[string]interface{}{
				"id":    req.ID,
				"code":  req.Code,
				"name":  req.Name,
				"stock": req.StockQuantity,
				"price": req.Price,
			},
			"user":    map[string]interface{}{"id": actor.ID, "name": actor.Name},
			"message": fmt.Sprintf("%s created product '%s'", actor.Name, req.Name),
		})
	}
	return nil
}

func (s *productService) UpdateProduct(orgID, id uuid.UUID, req *UpdateProductRequest, actor Actor) (*model.Product, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	var updated *model.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.productRepo.LockByID(tx, id)
		if err != nil || existing.OrganizationID != orgID {
			return ErrProductNotFound
		}

		if req.Code != existing.Code {
			dup, _ := s.productRepo.FindByCode(orgID, req.Code)
			if dup != nil && dup.ID != uuid.Nil && dup.ID != id {
				return ErrDuplicateProductCode
			}
		}

		existing.Code = req.Code
		existing.Name = req.Name
		existing.Price = req.Price
		existing.LowStockThreshold = req.LowStockThreshold
		if req.IsActive != nil {
			existing.IsActive = *req.IsActive
		}
		existing.UpdatedBy = actor.ID

		if err := s.productRepo.Update(tx, existing); err != nil {
			return err
		}

		entry := &model.ProductActivity{
			OrganizationID: orgID,
			ProductID:      existing.ID,
			ProductName:    existing.Name,
			Action:         model.ActivityUpdate,
			StockAfter:     existing.StockQuantity,
			Note:           "Product details updated",
			PerformedBy:    actor.ID,
		}
		entry.CreatedBy = actor.ID
		entry.UpdatedBy = actor.ID
		if err := s.activityRepo.Log(tx, entry); err != nil {
			return err
		}

		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// AdjustStock is the manual admin stock edit: logged as an update with the
// computed delta, unlike order-driven reduce_stock/add_stock entries.
func (s *productService) AdjustStock(orgID, id uuid.UUID, newQuantity int, note string, actor Actor) (*model.Product, error) {
	if newQuantity < 0 {
		return nil, fmt.Errorf("validation failed: stock quantity must not be negative")
	}

	var updated *model.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.productRepo.LockByID(tx, id)
		if err != nil || existing.OrganizationID != orgID {
			return ErrProductNotFound
		}

		delta := newQuantity - existing.StockQuantity
		if err := s.productRepo.UpdateStock(tx, id, newQuantity, actor.ID); err != nil {
			return err
		}

		entry := &model.ProductActivity{
			OrganizationID: orgID,
			ProductID:      existing.ID,
			ProductName:    existing.Name,
			Action:         model.ActivityUpdate,
			QuantityDelta:  delta,
			StockAfter:     newQuantity,
			Note:           note,
			PerformedBy:    actor.ID,
		}
		entry.CreatedBy = actor.ID
		entry.UpdatedBy = actor.ID
		if err := s.activityRepo.Log(tx, entry); err != nil {
			return err
		}

		existing.StockQuantity = newQuantity
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.Publish(events.EventStockAdjusted, updated.ID.String(), map[string]interface{}{
			"organization_id": orgID,
			"product_id":      updated.ID,
			"stock":           updated.StockQuantity,
		})
	}
	if s.wsHub != nil && updated.LowStock() {
		s.wsHub.Send(map[string]interface{}{
			"type":            "stock_alert",
			"action":          "low_stock",
			"organization_id": orgID,
			"product": map[string]interface{}{
				"id":        updated.ID,
				"code":      updated.Code,
				"name":      updated.Name,
				"stock":     updated.StockQuantity,
				"threshold": updated.LowStockThreshold,
			},
			"message": fmt.Sprintf("Low stock: '%s' is down to %d units", updated.Name, updated.StockQuantity),
		})
	}

	return updated, nil
}

func (s *productService) DeleteProduct(orgID, id uuid.UUID, actor Actor) error {
	product, err := s.productRepo.FindByID(orgID, id)
	if err != nil {
		return ErrProductNotFound
	}

	if err := s.productRepo.Delete(orgID, id, actor.ID); err != nil {
		return err
	}

	entry := &model.ProductActivity{
		OrganizationID: orgID,
		ProductID:      id,
		ProductName:    product.Name,
		Action:         model.ActivityDelete,
		StockAfter:     product.StockQuantity,
		Note:           "Product deleted",
		PerformedBy:    actor.ID,
	}
	entry.CreatedBy = actor.ID
	entry.UpdatedBy = actor.ID
	return s.activityRepo.Log(nil, entry)
}

func (s *productService) GetAllProducts(orgID uuid.UUID) ([]model.Product, error) {
	return s.productRepo.FindAll(orgID)
}

func (s *productService) GetProductByID(orgID, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(orgID, id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}
