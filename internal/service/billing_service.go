package service

import (
	"fmt"

	"go-backoffice/internal/events"
	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/internal/ws"
	"go-backoffice/pkg/shipping"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BillingService owns the credit-guarded shipping confirmation: recompute
// the cost server-side, verify the balance, deduct, persist the breakdown
// and append the ledger row — all in one database transaction.
type BillingService interface {
	// QuoteShipping previews the cost of an order without mutating state.
	QuoteShipping(orgID, orderID uuid.UUID) (*shipping.Breakdown, error)
	ConfirmShipping(orgID, orderID uuid.UUID, actor Actor) (*ShippingConfirmation, error)
}

type ShippingConfirmation struct {
	Order      *model.Order       `json:"order"`
	Breakdown  shipping.Breakdown `json:"breakdown"`
	NewBalance int64              `json:"new_balance"`
}

type billingService struct {
	db          repository.TxManager
	orderRepo   repository.OrderRepository
	orgRepo     repository.OrganizationRepository
	creditRepo  repository.CreditRepository
	rateService RateConfigService
	wsHub       *ws.Hub
	publisher   events.Publisher
}

func NewBillingService(
	db repository.TxManager,
	orderRepo repository.OrderRepository,
	orgRepo repository.OrganizationRepository,
	creditRepo repository.CreditRepository,
	rateService RateConfigService,
	hub *ws.Hub,
	publisher events.Publisher,
) BillingService {
	return &billingService{
		db:          db,
		orderRepo:   orderRepo,
		orgRepo:     orgRepo,
		creditRepo:  creditRepo,
		rateService: rateService,
		wsHub:       hub,
		publisher:   publisher,
	}
}

func (s *billingService) QuoteShipping(orgID, orderID uuid.UUID) (*shipping.Breakdown, error) {
	order, err := s.orderRepo.FindByID(orgID, orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	cfg, err := s.rateService.GetRates(orgID)
	if err != nil {
		return nil, err
	}
	b := shipping.Calculate(order.Quantity, order.Price, RatesFor(cfg), order.Status == model.StatusCancelled)
	return &b, nil
}

// ConfirmShipping charges the organization for an order's shipping and
// moves it to sent_to_logistic. Client-submitted cost fields are ignored:
// the charge is always recomputed from the persisted rate config. The
// balance check and deduction share a row lock, so concurrent
// confirmations cannot overdraw.
func (s *billingService) ConfirmShipping(orgID, orderID uuid.UUID, actor Actor) (*ShippingConfirmation, error) {
	cfg, err := s.rateService.GetRates(orgID)
	if err != nil {
		return nil, err
	}

	var (
		result    ShippingConfirmation
		breakdown shipping.Breakdown
	)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Lock ordering throughout the codebase: order, then product,
		// then organization.
		order, err := s.orderRepo.LockByID(tx, orderID)
		if err != nil || order.OrganizationID != orgID {
			return ErrOrderNotFound
		}

		if !model.CanTransition(order.Status, model.StatusSentToLogistic) {
			return &InvalidTransitionError{From: string(order.Status), To: string(model.StatusSentToLogistic)}
		}

		breakdown = shipping.Calculate(order.Quantity, order.Price, RatesFor(cfg), false)

		org, err := s.orgRepo.LockByID(tx, orgID)
		if err != nil {
			return ErrOrganizationNotFound
		}

		if org.CreditBalance < breakdown.Total {
			return &InsufficientCreditsError{Required: breakdown.Total, Available: org.CreditBalance}
		}

		// Snapshot before the update so the ledger row is correct even if
		// the repo refreshes the model in place.
		balanceBefore := org.CreditBalance
		newBalance := balanceBefore - breakdown.Total
		if err := s.orgRepo.UpdateBalance(tx, orgID, newBalance, actor.ID); err != nil {
			return err
		}

		if err := s.orderRepo.UpdateShippingCost(tx, orderID, map[string]interface{}{
			"pick_pack_cost":      breakdown.PickPack,
			"bubble_cost":         breakdown.Bubble,
			"paper_inside_cost":   breakdown.PaperInside,
			"cancel_order_cost":   breakdown.CancelOrder,
			"cod_cost":            breakdown.COD,
			"box_cost":            breakdown.Box,
			"delivery_fee_cost":   breakdown.DeliveryFee,
			"total_shipping_cost": breakdown.Total,
			"status":              model.StatusSentToLogistic,
			"updated_by":          actor.ID,
		}); err != nil {
			return err
		}

		entry := &model.CreditTransaction{
			OrganizationID:   orgID,
			OrganizationName: org.Name,
			Type:             model.CreditDeduct,
			Amount:           -breakdown.Total,
			BalanceBefore:    balanceBefore,
			BalanceAfter:     newBalance,
			Description:      fmt.Sprintf("Shipping cost for order %s (%s x%d)", order.ID, order.ProductName, order.Quantity),
			OrderID:          &order.ID,
			PerformedBy:      actor.ID,
			PerformedByName:  actor.Name,
		}
		entry.CreatedBy = actor.ID
		entry.UpdatedBy = actor.ID
		if err := s.creditRepo.Append(tx, entry); err != nil {
			return err
		}

		order.Status = model.StatusSentToLogistic
		order.PickPackCost = breakdown.PickPack
		order.BubbleCost = breakdown.Bubble
		order.PaperInsideCost = breakdown.PaperInside
		order.CancelOrderCost = breakdown.CancelOrder
		order.CODCost = breakdown.COD
		order.BoxCost = breakdown.Box
		order.DeliveryFeeCost = breakdown.DeliveryFee
		order.TotalShippingCost = breakdown.Total

		result = ShippingConfirmation{Order: order, Breakdown: breakdown, NewBalance: newBalance}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(&result, actor)
	return &result, nil
}

func (s *billingService) notify(conf *ShippingConfirmation, actor Actor) {
	if s.wsHub != nil {
		s.wsHub.Send(map[string]interface{}{
			"type":            "credit_update",
			"action":          "shipping_confirmed",
			"organization_id": conf.Order.OrganizationID,
			"order_id":        conf.Order.ID,
			"total_cost":      conf.Breakdown.Total,
			"new_balance":     conf.NewBalance,
			"user":            map[string]interface{}{"id": actor.ID, "name": actor.Name},
			"message":         fmt.Sprintf("%s confirmed shipping for order %s (฿%d)", actor.Name, conf.Order.ID, conf.Breakdown.Total),
		})
	}
	if s.publisher != nil {
		s.publisher.Publish(events.EventCreditDeducted, conf.Order.ID.String(), map[string]interface{}{
			"organization_id": conf.Order.OrganizationID,
			"order_id":        conf.Order.ID,
			"amount":          conf.Breakdown.Total,
			"new_balance":     conf.NewBalance,
		})
	}
}
