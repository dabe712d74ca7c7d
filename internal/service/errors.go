package service

import (
	"errors"
	"fmt"
)

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrProductInactive      = errors.New("product is not active")
	ErrDuplicateProductCode = errors.New("product code already exists")
	ErrEmailExists          = errors.New("email already exists")
	ErrOrganizationExists   = errors.New("organization name already taken")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserInactive         = errors.New("user account is inactive")
	ErrAlreadyRefunded      = errors.New("order shipping cost already refunded")
	ErrNothingToRefund      = errors.New("order has no confirmed shipping cost to refund")

	// ErrShippingConfirmationRequired guards the sent_to_logistic status:
	// it is only reachable through the shipping-cost confirmation flow,
	// never through a bare status update.
	ErrShippingConfirmationRequired = errors.New("sent_to_logistic requires shipping cost confirmation")
)

// InvalidTransitionError rejects order status changes the lifecycle does
// not allow.
type InvalidTransitionError struct {
	From, To string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from '%s' to '%s'", e.From, e.To)
}

// InsufficientCreditsError carries the amounts so the client can render
// "Insufficient credits! Required ฿X, but only ฿Y available".
type InsufficientCreditsError struct {
	Required  int64
	Available int64
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: required ฿%d, but only ฿%d available", e.Required, e.Available)
}

// InsufficientStockError rejects order creation beyond available stock.
type InsufficientStockError struct {
	Required  int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: requested %d, but only %d available", e.Required, e.Available)
}

// Actor identifies the user performing an operation, for audit columns and
// denormalized ledger fields.
type Actor struct {
	ID    string
	Name  string
	Email string
}
