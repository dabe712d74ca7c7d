package service

import (
	"fmt"
	"time"

	"go-backoffice/internal/events"
	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/internal/ws"
	"go-backoffice/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderService interface {
	CreateOrder(orgID uuid.UUID, req *CreateOrderRequest, actor Actor) (*model.Order, error)
	GetAllOrders(orgID uuid.UUID, filter repository.OrderFilter) ([]model.Order, error)
	GetOrderByID(orgID, id uuid.UUID) (*model.Order, error)
	UpdateStatus(orgID, orderID uuid.UUID, newStatus model.OrderStatus, actor Actor) (*model.Order, error)
	GetStats(orgID uuid.UUID, startDate, endDate time.Time) (*OrderStatsResponse, error)
}

type CreateOrderRequest struct {
	ProductID       *uuid.UUID         `json:"product_id"`
	ProductName     string             `json:"product_name"` // required when no product is linked
	Price           int64              `json:"price" validate:"gte=0"`
	Quantity        int                `json:"quantity" validate:"required,gt=0"`
	Channel         model.OrderChannel `json:"channel" validate:"required,oneof=line shopee lazada other"`
	CustomerName    string             `json:"customer_name" validate:"required"`
	CustomerContact string             `json:"customer_contact"`
	ShippingAddress string             `json:"shipping_address"`
}

type OrderStatsResponse struct {
	Orders      *repository.OrderStats       `json:"orders"`
	Products    *repository.ProductStats     `json:"products"`
	DailyCounts []repository.DailyOrderCount `json:"daily_counts"`
}

type orderService struct {
	db           repository.TxManager
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	orgRepo      repository.OrganizationRepository
	creditRepo   repository.CreditRepository
	activityRepo repository.ActivityRepository
	wsHub        *ws.Hub
	publisher    events.Publisher
}

func NewOrderService(
	db repository.TxManager,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	orgRepo repository.OrganizationRepository,
	creditRepo repository.CreditRepository,
	activityRepo repository.ActivityRepository,
	hub *ws.Hub,
	publisher events.Publisher,
) OrderService {
	return &orderService{
		db:           db,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		orgRepo:      orgRepo,
		creditRepo:   creditRepo,
		activityRepo: activityRepo,
		wsHub:        hub,
		publisher:    publisher,
	}
}

// CreateOrder inserts a new pending order. When the order references a
// product, the stock decrement happens in the same transaction as the
// insert, behind a row lock: either both commit or neither does.
func (s *orderService) CreateOrder(orgID uuid.UUID, req *CreateOrderRequest, actor Actor) (*model.Order, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	if req.ProductID == nil && req.ProductName == "" {
		return nil, fmt.Errorf("validation failed: product_name is required for orders without a product")
	}

	order := &model.Order{
		OrganizationID:  orgID,
		ProductID:       req.ProductID,
		ProductName:     req.ProductName,
		Price:           req.Price,
		Quantity:        req.Quantity,
		Channel:         req.Channel,
		CustomerName:    req.CustomerName,
		CustomerContact: req.CustomerContact,
		ShippingAddress: req.ShippingAddress,
		Status:          model.StatusPending,
	}
	order.CreatedBy = actor.ID
	order.UpdatedBy = actor.ID

	var lowStock *model.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.ProductID != nil {
			product, err := s.productRepo.LockByID(tx, *req.ProductID)
			if err != nil || product.OrganizationID != orgID {
				return ErrProductNotFound
			}
			if !product.IsActive {
				return ErrProductInactive
			}
			if product.StockQuantity < req.Quantity {
				return &InsufficientStockError{Required: req.Quantity, Available: product.StockQuantity}
			}

			// Snapshot the catalogue values onto the order.
			order.ProductName = product.Name
			if req.Price == 0 {
				order.Price = product.Price
			}

			newStock := product.StockQuantity - req.Quantity
			if err := s.productRepo.UpdateStock(tx, product.ID, newStock, actor.ID); err != nil {
				return err
			}

			if err := s.orderRepo.Create(tx, order); err != nil {
				return err
			}

			entry := &model.ProductActivity{
				OrganizationID: orgID,
				ProductID:      product.ID,
				ProductName:    product.Name,
				Action:         model.ActivityReduceStock,
				QuantityDelta:  -req.Quantity,
				StockAfter:     newStock,
				Note:           fmt.Sprintf("Order %s created", order.ID),
				PerformedBy:    actor.ID,
			}
			entry.CreatedBy = actor.ID
			entry.UpdatedBy = actor.ID
			if err := s.activityRepo.Log(tx, entry); err != nil {
				return err
			}

			product.StockQuantity = newStock
			if product.LowStock() {
				lowStock = product
			}
			return nil
		}

		return s.orderRepo.Create(tx, order)
	})
	if err != nil {
		return nil, err
	}

	if s.wsHub != nil {
		s.wsHub.Send(map[string]interface{}{
			"type":            "order_update",
			"action":          "order_created",
			"organization_id": orgID,
			"order": map[string]interface{}{
				"id":       order.ID,
				"product":  order.ProductName,
				"quantity": order.Quantity,
				"channel":  order.Channel,
			},
			"user":    map[string]interface{}{"id": actor.ID, "name": actor.Name},
			"message": fmt.Sprintf("%s created order for %d x %s", actor.Name, order.Quantity, order.ProductName),
		})
		if lowStock != nil {
			s.wsHub.Send(map[string]interface{}{
				"type":            "stock_alert",
				"action":          "low_stock",
				"organization_id": orgID,
				"product": map[string]interface{}{
					"id":        lowStock.ID,
					"code":      lowStock.Code,
					"name":      lowStock.Name,
					"stock":     lowStock.StockQuantity,
					"threshold": lowStock.LowStockThreshold,
				},
				"message": fmt.Sprintf("Low stock: '%s' is down to %d units", lowStock.Name, lowStock.StockQuantity),
			})
		}
	}
	if s.publisher != nil {
		s.publisher.Publish(events.EventOrderCreated, order.ID.String(), map[string]interface{}{
			"organization_id": orgID,
			"order_id":        order.ID,
			"product_name":    order.ProductName,
			"quantity":        order.Quantity,
			"channel":         order.Channel,
		})
	}

	return order, nil
}

func (s *orderService) GetAllOrders(orgID uuid.UUID, filter repository.OrderFilter) ([]model.Order, error) {
	return s.orderRepo.FindAll(orgID, filter)
}

func (s *orderService) GetOrderByID(orgID, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orgID, id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateStatus moves an order through its lifecycle. sent_to_logistic is
// rejected here: it is only reachable via the shipping confirmation, which
// performs the credit deduction. Cancellation restores stock and charges
// the flat fee.
func (s *orderService) UpdateStatus(orgID, orderID uuid.UUID, newStatus model.OrderStatus, actor Actor) (*model.Order, error) {
	if newStatus == model.StatusSentToLogistic {
		return nil, ErrShippingConfirmationRequired
	}

	var updated *model.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.LockByID(tx, orderID)
		if err != nil || order.OrganizationID != orgID {
			return ErrOrderNotFound
		}

		if !model.CanTransition(order.Status, newStatus) {
			return &InvalidTransitionError{From: string(order.Status), To: string(newStatus)}
		}

		if newStatus == model.StatusCancelled {
			if err := s.cancel(tx, order, actor); err != nil {
				return err
			}
		}

		if err := s.orderRepo.UpdateStatus(tx, orderID, newStatus, actor.ID); err != nil {
			return err
		}

		order.Status = newStatus
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.wsHub != nil {
		s.wsHub.Send(map[string]interface{}{
			"type":            "order_update",
			"action":          "status_changed",
			"organization_id": orgID,
			"order_id":        orderID,
			"status":          newStatus,
			"user":            map[string]interface{}{"id": actor.ID, "name": actor.Name},
			"message":         fmt.Sprintf("%s moved order %s to %s", actor.Name, orderID, newStatus),
		})
	}
	if s.publisher != nil {
		s.publisher.Publish(events.EventOrderStatusChanged, orderID.String(), map[string]interface{}{
			"organization_id": orgID,
			"order_id":        orderID,
			"status":          newStatus,
		})
	}

	return updated, nil
}

// cancel restores stock for product-linked orders and charges the flat
// cancellation fee. The fee is charged without a balance guard: unlike the
// shipping deduction, cancellation may drive the balance negative. The
// debt is carried until topped up.
func (s *orderService) cancel(tx *gorm.DB, order *model.Order, actor Actor) error {
	if order.ProductID != nil {
		product, err := s.productRepo.LockByID(tx, *order.ProductID)
		if err != nil {
			return ErrProductNotFound
		}

		newStock := product.StockQuantity + order.Quantity
		if err := s.productRepo.UpdateStock(tx, product.ID, newStock, actor.ID); err != nil {
			return err
		}

		entry := &model.ProductActivity{
			OrganizationID: order.OrganizationID,
			ProductID:      product.ID,
			ProductName:    product.Name,
			Action:         model.ActivityAddStock,
			QuantityDelta:  order.Quantity,
			StockAfter:     newStock,
			Note:           fmt.Sprintf("Order %s cancelled", order.ID),
			PerformedBy:    actor.ID,
		}
		entry.CreatedBy = actor.ID
		entry.UpdatedBy = actor.ID
		if err := s.activityRepo.Log(tx, entry); err != nil {
			return err
		}
	}

	org, err := s.orgRepo.LockByID(tx, order.OrganizationID)
	if err != nil {
		return ErrOrganizationNotFound
	}

	// Snapshot before the update so the ledger row is correct even if the
	// repo refreshes the model in place.
	balanceBefore := org.CreditBalance
	fee := model.CancellationFeePerUnit * int64(order.Quantity)
	newBalance := balanceBefore - fee
	if err := s.orgRepo.UpdateBalance(tx, org.ID, newBalance, actor.ID); err != nil {
		return err
	}

	entry := &model.CreditTransaction{
		OrganizationID:   org.ID,
		OrganizationName: org.Name,
		Type:             model.CreditDeduct,
		Amount:           -fee,
		BalanceBefore:    balanceBefore,
		BalanceAfter:     newBalance,
		Description:      fmt.Sprintf("Cancellation fee for order %s (฿%d x %d units)", order.ID, model.CancellationFeePerUnit, order.Quantity),
		OrderID:          &order.ID,
		PerformedBy:      actor.ID,
		PerformedByName:  actor.Name,
	}
	entry.CreatedBy = actor.ID
	entry.UpdatedBy = actor.ID
	return s.creditRepo.Append(tx, entry)
}

func (s *orderService) GetStats(orgID uuid.UUID, startDate, endDate time.Time) (*OrderStatsResponse, error) {
	orderStats, err := s.orderRepo.Stats(orgID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	productStats, err := s.productRepo.Stats(orgID)
	if err != nil {
		return nil, err
	}
	daily, err := s.orderRepo.DailyCounts(orgID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	return &OrderStatsResponse{
		Orders:      orderStats,
		Products:    productStats,
		DailyCounts: daily,
	}, nil
}
