package service

import (
	"testing"

	"go-backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productFixture() (*fakeProductRepo, *fakeActivityRepo, ProductService, uuid.UUID) {
	productRepo := &fakeProductRepo{}
	activityRepo := &fakeActivityRepo{}
	svc := NewProductService(fakeTx{}, productRepo, activityRepo, nil, nil)
	return productRepo, activityRepo, svc, uuid.New()
}

func TestCreateProduct(t *testing.T) {
	productRepo, activityRepo, svc, orgID := productFixture()

	product := &model.Product{
		Code:          "FO-1000",
		Name:          "Fish Oil 1000mg",
		Price:         350,
		StockQuantity: 10,
	}
	require.NoError(t, svc.CreateProduct(orgID, product, testActor()))

	assert.Equal(t, orgID, product.OrganizationID)
	assert.True(t, product.IsActive)
	assert.NotEqual(t, uuid.Nil, productRepo.product.ID)

	require.Len(t, activityRepo.entries, 1)
	assert.Equal(t, model.ActivityCreate, activityRepo.entries[0].Action)
	assert.Equal(t, 10, activityRepo.entries[0].StockAfter)
}

func TestCreateProductDuplicateCode(t *testing.T) {
	productRepo, _, svc, orgID := productFixture()

	first := &model.Product{Code: "FO-1000", Name: "Fish Oil 1000mg"}
	require.NoError(t, svc.CreateProduct(orgID, first, testActor()))
	require.NotNil(t, productRepo.product)

	err := svc.CreateProduct(orgID, &model.Product{Code: "FO-1000", Name: "Different name"}, testActor())
	assert.ErrorIs(t, err, ErrDuplicateProductCode)
}

func TestAdjustStockLogsDelta(t *testing.T) {
	productRepo, activityRepo, svc, orgID := productFixture()

	product := &model.Product{Code: "FO-1000", Name: "Fish Oil 1000mg", StockQuantity: 10}
	require.NoError(t, svc.CreateProduct(orgID, product, testActor()))
	activityRepo.entries = nil

	updated, err := svc.AdjustStock(orgID, product.ID, 4, "damaged batch written off", testActor())
	require.NoError(t, err)

	assert.Equal(t, 4, updated.StockQuantity)
	assert.Equal(t, []int{4}, productRepo.stockUpdates)

	require.Len(t, activityRepo.entries, 1)
	entry := activityRepo.entries[0]
	assert.Equal(t, model.ActivityUpdate, entry.Action)
	assert.Equal(t, -6, entry.QuantityDelta)
	assert.Equal(t, 4, entry.StockAfter)
	assert.Equal(t, "damaged batch written off", entry.Note)
}

func TestAdjustStockRejectsNegative(t *testing.T) {
	_, _, svc, orgID := productFixture()

	_, err := svc.AdjustStock(orgID, uuid.New(), -1, "", testActor())
	assert.Error(t, err)
}

func TestUpdateProductChecksCodeCollision(t *testing.T) {
	_, _, svc, orgID := productFixture()

	product := &model.Product{Code: "FO-1000", Name: "Fish Oil 1000mg"}
	require.NoError(t, svc.CreateProduct(orgID, product, testActor()))

	// Keeping its own code is not a collision.
	inactive := false
	updated, err := svc.UpdateProduct(orgID, product.ID, &UpdateProductRequest{
		Code:     "FO-1000",
		Name:     "Fish Oil 1000mg EPA",
		Price:    399,
		IsActive: &inactive,
	}, testActor())
	require.NoError(t, err)
	assert.Equal(t, "Fish Oil 1000mg EPA", updated.Name)
	assert.False(t, updated.IsActive)
}

func TestDeleteProductLogs(t *testing.T) {
	productRepo, activityRepo, svc, orgID := productFixture()

	product := &model.Product{Code: "FO-1000", Name: "Fish Oil 1000mg", StockQuantity: 3}
	require.NoError(t, svc.CreateProduct(orgID, product, testActor()))
	activityRepo.entries = nil

	require.NoError(t, svc.DeleteProduct(orgID, product.ID, testActor()))

	assert.Nil(t, productRepo.product)
	require.Len(t, activityRepo.entries, 1)
	assert.Equal(t, model.ActivityDelete, activityRepo.entries[0].Action)
}

func TestGetProductByIDWrongOrganization(t *testing.T) {
	_, _, svc, orgID := productFixture()

	product := &model.Product{Code: "FO-1000", Name: "Fish Oil 1000mg"}
	require.NoError(t, svc.CreateProduct(orgID, product, testActor()))

	_, err := svc.GetProductByID(uuid.New(), product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
