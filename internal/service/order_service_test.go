package service

import (
	"testing"

	"go-backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	orgRepo      *fakeOrgRepo
	orderRepo    *fakeOrderRepo
	productRepo  *fakeProductRepo
	creditRepo   *fakeCreditRepo
	activityRepo *fakeActivityRepo
	svc          OrderService
	org          *model.Organization
	product      *model.Product
}

func newOrderFixture(stock int) *orderFixture {
	org := &model.Organization{Name: "Vita Shop", CreditBalance: 500}
	org.ID = uuid.New()

	product := &model.Product{
		OrganizationID:    org.ID,
		Code:              "FO-1000",
		Name:              "Fish Oil 1000mg",
		Price:             350,
		StockQuantity:     stock,
		LowStockThreshold: 2,
		IsActive:          true,
	}
	product.ID = uuid.New()

	f := &orderFixture{
		orgRepo:      &fakeOrgRepo{org: org},
		orderRepo:    newFakeOrderRepo(),
		productRepo:  &fakeProductRepo{product: product},
		creditRepo:   &fakeCreditRepo{},
		activityRepo: &fakeActivityRepo{},
		org:          org,
		product:      product,
	}
	f.svc = NewOrderService(fakeTx{}, f.orderRepo, f.productRepo, f.orgRepo, f.creditRepo, f.activityRepo, nil, nil)
	return f
}

func (f *orderFixture) createRequest(qty int) *CreateOrderRequest {
	return &CreateOrderRequest{
		ProductID:    &f.product.ID,
		Quantity:     qty,
		Channel:      model.ChannelShopee,
		CustomerName: "Somchai",
	}
}

func TestCreateOrderReservesStock(t *testing.T) {
	f := newOrderFixture(5)

	order, err := f.svc.CreateOrder(f.org.ID, f.createRequest(2), testActor())
	require.NoError(t, err)

	assert.Equal(t, model.StatusPending, order.Status)
	assert.Equal(t, "Fish Oil 1000mg", order.ProductName)
	assert.Equal(t, int64(350), order.Price) // snapshotted from the product
	assert.Equal(t, 3, f.product.StockQuantity)

	require.Len(t, f.activityRepo.entries, 1)
	entry := f.activityRepo.entries[0]
	assert.Equal(t, model.ActivityReduceStock, entry.Action)
	assert.Equal(t, -2, entry.QuantityDelta)
	assert.Equal(t, 3, entry.StockAfter)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	f := newOrderFixture(5)

	_, err := f.svc.CreateOrder(f.org.ID, f.createRequest(6), testActor())

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 6, stockErr.Required)
	assert.Equal(t, 5, stockErr.Available)

	// Failed creation leaves no trace.
	assert.Equal(t, 5, f.product.StockQuantity)
	assert.Empty(t, f.orderRepo.orders)
	assert.Empty(t, f.activityRepo.entries)
}

func TestCreateOrderInactiveProduct(t *testing.T) {
	f := newOrderFixture(5)
	f.product.IsActive = false

	_, err := f.svc.CreateOrder(f.org.ID, f.createRequest(1), testActor())
	assert.ErrorIs(t, err, ErrProductInactive)
	assert.Equal(t, 5, f.product.StockQuantity)
}

func TestCreateOrderWithoutProduct(t *testing.T) {
	f := newOrderFixture(5)

	order, err := f.svc.CreateOrder(f.org.ID, &CreateOrderRequest{
		ProductName:  "Custom gift set",
		Price:        150,
		Quantity:     1,
		Channel:      model.ChannelOther,
		CustomerName: "Malee",
	}, testActor())
	require.NoError(t, err)

	assert.Equal(t, "Custom gift set", order.ProductName)
	assert.Equal(t, 5, f.product.StockQuantity, "unlinked orders never touch stock")
	assert.Empty(t, f.activityRepo.entries)
}

func TestUpdateStatusRejectsSentToLogistic(t *testing.T) {
	f := newOrderFixture(5)
	order, err := f.svc.CreateOrder(f.org.ID, f.createRequest(1), testActor())
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(f.org.ID, order.ID, model.StatusSentToLogistic, testActor())
	assert.ErrorIs(t, err, ErrShippingConfirmationRequired)
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	f := newOrderFixture(5)
	order, err := f.svc.CreateOrder(f.org.ID, f.createRequest(1), testActor())
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(f.org.ID, order.ID, model.StatusDelivered, testActor())

	var trErr *InvalidTransitionError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, "pending", trErr.From)
	assert.Equal(t, "delivered", trErr.To)
}

// Cancelling restores the reserved stock and charges the flat ฿10 per unit
// fee. The fee is unguarded: the balance may go negative.
func TestCancelRestoresStockAndChargesFee(t *testing.T) {
	f := newOrderFixture(5)
	f.org.CreditBalance = 15
	actor := testActor()

	order, err := f.svc.CreateOrder(f.org.ID, f.createRequest(3), actor)
	require.NoError(t, err)
	require.Equal(t, 2, f.product.StockQuantity)

	updated, err := f.svc.UpdateStatus(f.org.ID, order.ID, model.StatusCancelled, actor)
	require.NoError(t, err)

	assert.Equal(t, model.StatusCancelled, updated.Status)
	assert.Equal(t, 5, f.product.StockQuantity)
	assert.Equal(t, int64(-15), f.org.CreditBalance, "fee of ฿30 drives ฿15 negative")

	require.Len(t, f.creditRepo.entries, 1)
	fee := f.creditRepo.entries[0]
	assert.Equal(t, model.CreditDeduct, fee.Type)
	assert.Equal(t, int64(-30), fee.Amount)
	assert.Equal(t, int64(15), fee.BalanceBefore)
	assert.Equal(t, int64(-15), fee.BalanceAfter)

	// Stock restoration is logged as an add_stock activity.
	require.Len(t, f.activityRepo.entries, 2)
	restore := f.activityRepo.entries[1]
	assert.Equal(t, model.ActivityAddStock, restore.Action)
	assert.Equal(t, 3, restore.QuantityDelta)
	assert.Equal(t, 5, restore.StockAfter)
}

func TestCancelDeliveredOrder(t *testing.T) {
	f := newOrderFixture(5)
	actor := testActor()

	order, err := f.svc.CreateOrder(f.org.ID, f.createRequest(1), actor)
	require.NoError(t, err)
	f.orderRepo.orders[order.ID].Status = model.StatusDelivered

	updated, err := f.svc.UpdateStatus(f.org.ID, order.ID, model.StatusCancelled, actor)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, updated.Status)
}

func TestCancelledIsTerminal(t *testing.T) {
	f := newOrderFixture(5)
	actor := testActor()

	order, err := f.svc.CreateOrder(f.org.ID, f.createRequest(1), actor)
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(f.org.ID, order.ID, model.StatusCancelled, actor)
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(f.org.ID, order.ID, model.StatusProcessing, actor)
	var trErr *InvalidTransitionError
	assert.ErrorAs(t, err, &trErr)
}

func TestUpdateStatusWrongOrganization(t *testing.T) {
	f := newOrderFixture(5)
	order, err := f.svc.CreateOrder(f.org.ID, f.createRequest(1), testActor())
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(uuid.New(), order.ID, model.StatusProcessing, testActor())
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
