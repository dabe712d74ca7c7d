package service

import (
	"testing"

	"go-backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func billingFixture(balance int64, status model.OrderStatus) (*fakeOrgRepo, *fakeOrderRepo, *fakeCreditRepo, BillingService, *model.Order) {
	org := &model.Organization{Name: "Vita Shop", CreditBalance: balance}
	org.ID = uuid.New()

	order := &model.Order{
		OrganizationID: org.ID,
		ProductName:    "Fish Oil 1000mg",
		Price:          350,
		Quantity:       2,
		Channel:        model.ChannelLine,
		CustomerName:   "Somchai",
		Status:         status,
	}

	orgRepo := &fakeOrgRepo{org: org}
	orderRepo := newFakeOrderRepo(order)
	creditRepo := &fakeCreditRepo{}
	rates := &fakeRateService{cfg: &model.ShippingRateConfig{
		OrganizationID: org.ID,
		PickPack:       20,
		Bubble:         5,
		PaperInside:    3,
		CODPercent:     3,
		Version:        1,
	}}

	svc := NewBillingService(fakeTx{}, orderRepo, orgRepo, creditRepo, rates, nil, nil)
	return orgRepo, orderRepo, creditRepo, svc, order
}

// qty 2 at ฿350 with pickPack 20, bubble 5, paperInside 3 and cod 3%
// costs ฿77; from a ฿100 balance the deduction leaves ฿23.
func TestConfirmShippingDeductsRecomputedCost(t *testing.T) {
	orgRepo, orderRepo, creditRepo, svc, order := billingFixture(100, model.StatusPending)
	actor := testActor()

	conf, err := svc.ConfirmShipping(order.OrganizationID, order.ID, actor)
	require.NoError(t, err)

	assert.Equal(t, int64(77), conf.Breakdown.Total)
	assert.Equal(t, int64(23), conf.NewBalance)
	assert.Equal(t, int64(23), orgRepo.org.CreditBalance)
	assert.Equal(t, model.StatusSentToLogistic, conf.Order.Status)

	require.Len(t, orderRepo.costUpdates, 1)
	costs := orderRepo.costUpdates[0]
	assert.Equal(t, int64(40), costs["pick_pack_cost"])
	assert.Equal(t, int64(21), costs["cod_cost"]) // round(3% of 700)
	assert.Equal(t, int64(77), costs["total_shipping_cost"])
	assert.Equal(t, model.StatusSentToLogistic, costs["status"])

	require.Len(t, creditRepo.entries, 1)
	entry := creditRepo.entries[0]
	assert.Equal(t, model.CreditDeduct, entry.Type)
	assert.Equal(t, int64(-77), entry.Amount)
	assert.Equal(t, int64(100), entry.BalanceBefore)
	assert.Equal(t, int64(23), entry.BalanceAfter)
	assert.Equal(t, entry.BalanceBefore+entry.Amount, entry.BalanceAfter)
	require.NotNil(t, entry.OrderID)
	assert.Equal(t, order.ID, *entry.OrderID)
	assert.Equal(t, actor.Name, entry.PerformedByName)
}

func TestConfirmShippingInsufficientCredits(t *testing.T) {
	orgRepo, orderRepo, creditRepo, svc, order := billingFixture(50, model.StatusPending)

	_, err := svc.ConfirmShipping(order.OrganizationID, order.ID, testActor())

	var credErr *InsufficientCreditsError
	require.ErrorAs(t, err, &credErr)
	assert.Equal(t, int64(77), credErr.Required)
	assert.Equal(t, int64(50), credErr.Available)

	// Nothing may have moved.
	assert.Equal(t, int64(50), orgRepo.org.CreditBalance)
	assert.Empty(t, orgRepo.balanceUpdates)
	assert.Empty(t, orderRepo.costUpdates)
	assert.Empty(t, creditRepo.entries)
	assert.Equal(t, model.StatusPending, order.Status)
}

func TestConfirmShippingRejectsTerminalOrder(t *testing.T) {
	_, _, creditRepo, svc, order := billingFixture(1000, model.StatusCancelled)

	_, err := svc.ConfirmShipping(order.OrganizationID, order.ID, testActor())

	var trErr *InvalidTransitionError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, "cancelled", trErr.From)
	assert.Empty(t, creditRepo.entries)
}

func TestConfirmShippingUnknownOrder(t *testing.T) {
	_, _, _, svc, order := billingFixture(1000, model.StatusPending)

	_, err := svc.ConfirmShipping(order.OrganizationID, uuid.New(), testActor())
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestConfirmShippingWrongOrganization(t *testing.T) {
	_, _, _, svc, order := billingFixture(1000, model.StatusPending)

	_, err := svc.ConfirmShipping(uuid.New(), order.ID, testActor())
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestQuoteShippingDoesNotMutate(t *testing.T) {
	orgRepo, orderRepo, creditRepo, svc, order := billingFixture(0, model.StatusPending)

	b, err := svc.QuoteShipping(order.OrganizationID, order.ID)
	require.NoError(t, err)

	// A quote succeeds even with an empty balance: no guard, no writes.
	assert.Equal(t, int64(77), b.Total)
	assert.Empty(t, orgRepo.balanceUpdates)
	assert.Empty(t, orderRepo.costUpdates)
	assert.Empty(t, creditRepo.entries)
}
