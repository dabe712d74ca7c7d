package service

import (
	"fmt"

	"go-backoffice/internal/events"
	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreditService owns direct ledger operations: top-ups, admin adjustments,
// refunds and listing. Shipping deductions live in BillingService and the
// cancellation fee in OrderService; all of them append to the same
// append-only ledger.
type CreditService interface {
	AddCredits(orgID uuid.UUID, amount int64, description string, actor Actor) (*model.CreditTransaction, error)
	AdjustCredits(orgID uuid.UUID, amount int64, description string, actor Actor) (*model.CreditTransaction, error)
	RefundOrder(orgID, orderID uuid.UUID, actor Actor) (*model.CreditTransaction, error)
	ListTransactions(orgID uuid.UUID, limit, offset int) ([]model.CreditTransaction, int64, error)
	GetBalance(orgID uuid.UUID) (int64, error)
}

type creditService struct {
	db         repository.TxManager
	orgRepo    repository.OrganizationRepository
	orderRepo  repository.OrderRepository
	creditRepo repository.CreditRepository
	wsHub      *ws.Hub
	publisher  events.Publisher
}

func NewCreditService(
	db repository.TxManager,
	orgRepo repository.OrganizationRepository,
	orderRepo repository.OrderRepository,
	creditRepo repository.CreditRepository,
	hub *ws.Hub,
	publisher events.Publisher,
) CreditService {
	return &creditService{
		db:         db,
		orgRepo:    orgRepo,
		orderRepo:  orderRepo,
		creditRepo: creditRepo,
		wsHub:      hub,
		publisher:  publisher,
	}
}

func (s *creditService) AddCredits(orgID uuid.UUID, amount int64, description string, actor Actor) (*model.CreditTransaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("validation failed: amount must be positive")
	}
	if description == "" {
		description = "Credit top-up"
	}
	return s.apply(orgID, model.CreditAdd, amount, description, nil, actor)
}

// AdjustCredits applies a signed admin correction. No balance guard: an
// adjustment is an audit-logged override, not a purchase.
func (s *creditService) AdjustCredits(orgID uuid.UUID, amount int64, description string, actor Actor) (*model.CreditTransaction, error) {
	if amount == 0 {
		return nil, fmt.Errorf("validation failed: amount must not be zero")
	}
	if description == "" {
		return nil, fmt.Errorf("validation failed: adjustments require a description")
	}
	return s.apply(orgID, model.CreditAdjust, amount, description, nil, actor)
}

// RefundOrder returns a cancelled order's confirmed shipping cost. Each
// order can be refunded at most once.
func (s *creditService) RefundOrder(orgID, orderID uuid.UUID, actor Actor) (*model.CreditTransaction, error) {
	var entry *model.CreditTransaction

	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.LockByID(tx, orderID)
		if err != nil || order.OrganizationID != orgID {
			return ErrOrderNotFound
		}
		if order.Status != model.StatusCancelled {
			return &InvalidTransitionError{From: string(order.Status), To: "refund"}
		}
		if order.TotalShippingCost <= 0 {
			return ErrNothingToRefund
		}

		refunded, err := s.creditRepo.ExistsRefundForOrder(tx, orderID)
		if err != nil {
			return err
		}
		if refunded {
			return ErrAlreadyRefunded
		}

		org, err := s.orgRepo.LockByID(tx, orgID)
		if err != nil {
			return ErrOrganizationNotFound
		}

		balanceBefore := org.CreditBalance
		newBalance := balanceBefore + order.TotalShippingCost
		if err := s.orgRepo.UpdateBalance(tx, orgID, newBalance, actor.ID); err != nil {
			return err
		}

		entry = &model.CreditTransaction{
			OrganizationID:   orgID,
			OrganizationName: org.Name,
			Type:             model.CreditRefund,
			Amount:           order.TotalShippingCost,
			BalanceBefore:    balanceBefore,
			BalanceAfter:     newBalance,
			Description:      fmt.Sprintf("Shipping refund for cancelled order %s", order.ID),
			OrderID:          &order.ID,
			PerformedBy:      actor.ID,
			PerformedByName:  actor.Name,
		}
		entry.CreatedBy = actor.ID
		entry.UpdatedBy = actor.ID
		return s.creditRepo.Append(tx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.notify(entry, actor)
	return entry, nil
}

// apply locks the organization row, moves the balance and appends the
// ledger entry in one transaction.
func (s *creditService) apply(orgID uuid.UUID, txType model.CreditTxType, amount int64, description string, orderID *uuid.UUID, actor Actor) (*model.CreditTransaction, error) {
	var entry *model.CreditTransaction

	err := s.db.Transaction(func(tx *gorm.DB) error {
		org, err := s.orgRepo.LockByID(tx, orgID)
		if err != nil {
			return ErrOrganizationNotFound
		}

		// Snapshot before the update so the ledger row is correct even if
		// the repo refreshes the model in place.
		balanceBefore := org.CreditBalance
		newBalance := balanceBefore + amount
		if err := s.orgRepo.UpdateBalance(tx, orgID, newBalance, actor.ID); err != nil {
			return err
		}

		entry = &model.CreditTransaction{
			OrganizationID:   orgID,
			OrganizationName: org.Name,
			Type:             txType,
			Amount:           amount,
			BalanceBefore:    balanceBefore,
			BalanceAfter:     newBalance,
			Description:      description,
			OrderID:          orderID,
			PerformedBy:      actor.ID,
			PerformedByName:  actor.Name,
		}
		entry.CreatedBy = actor.ID
		entry.UpdatedBy = actor.ID
		return s.creditRepo.Append(tx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.notify(entry, actor)
	return entry, nil
}

func (s *creditService) notify(entry *model.CreditTransaction, actor Actor) {
	if entry == nil {
		return
	}
	if s.wsHub != nil {
		s.wsHub.Send(map[string]interface{}{
			"type":            "credit_update",
			"action":          string(entry.Type),
			"organization_id": entry.OrganizationID,
			"amount":          entry.Amount,
			"new_balance":     entry.BalanceAfter,
			"user":            map[string]interface{}{"id": actor.ID, "name": actor.Name},
			"message":         fmt.Sprintf("%s: %s (balance ฿%d)", actor.Name, entry.Description, entry.BalanceAfter),
		})
	}
	if s.publisher != nil {
		s.publisher.Publish(events.EventCreditAdded, entry.OrganizationID.String(), map[string]interface{}{
			"organization_id": entry.OrganizationID,
			"type":            entry.Type,
			"amount":          entry.Amount,
			"new_balance":     entry.BalanceAfter,
		})
	}
}

func (s *creditService) ListTransactions(orgID uuid.UUID, limit, offset int) ([]model.CreditTransaction, int64, error) {
	entries, err := s.creditRepo.FindByOrg(orgID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.creditRepo.CountByOrg(orgID)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (s *creditService) GetBalance(orgID uuid.UUID) (int64, error) {
	org, err := s.orgRepo.FindByID(orgID)
	if err != nil {
		return 0, ErrOrganizationNotFound
	}
	return org.CreditBalance, nil
}
