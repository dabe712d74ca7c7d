package service

import (
	"database/sql"
	"time"

	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeTx stands in for *gorm.DB: it invokes the callback with a nil tx,
// which the repo fakes below simply ignore.
type fakeTx struct{}

func (fakeTx) Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	return fc(nil)
}

type fakeOrgRepo struct {
	org            *model.Organization
	balanceUpdates []int64
}

func (f *fakeOrgRepo) Create(tx *gorm.DB, org *model.Organization) error {
	org.ID = uuid.New()
	f.org = org
	return nil
}

func (f *fakeOrgRepo) FindByID(id uuid.UUID) (*model.Organization, error) {
	if f.org == nil || f.org.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.org, nil
}

func (f *fakeOrgRepo) FindByName(name string) (*model.Organization, error) {
	if f.org == nil || f.org.Name != name {
		return nil, gorm.ErrRecordNotFound
	}
	return f.org, nil
}

func (f *fakeOrgRepo) LockByID(tx *gorm.DB, id uuid.UUID) (*model.Organization, error) {
	return f.FindByID(id)
}

func (f *fakeOrgRepo) UpdateBalance(tx *gorm.DB, id uuid.UUID, newBalance int64, updatedBy string) error {
	f.org.CreditBalance = newBalance
	f.balanceUpdates = append(f.balanceUpdates, newBalance)
	return nil
}

func (f *fakeOrgRepo) SetOwner(tx *gorm.DB, id, ownerID uuid.UUID) error {
	f.org.OwnerID = &ownerID
	return nil
}

type fakeOrderRepo struct {
	orders        map[uuid.UUID]*model.Order
	statusUpdates []model.OrderStatus
	costUpdates   []map[string]interface{}
}

func newFakeOrderRepo(orders ...*model.Order) *fakeOrderRepo {
	f := &fakeOrderRepo{orders: map[uuid.UUID]*model.Order{}}
	for _, o := range orders {
		if o.ID == uuid.Nil {
			o.ID = uuid.New()
		}
		f.orders[o.ID] = o
	}
	return f
}

func (f *fakeOrderRepo) Create(tx *gorm.DB, order *model.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) FindAll(orgID uuid.UUID, filter repository.OrderFilter) ([]model.Order, error) {
	var out []model.Order
	for _, o := range f.orders {
		if o.OrganizationID == orgID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) FindByID(orgID, id uuid.UUID) (*model.Order, error) {
	o, ok := f.orders[id]
	if !ok || o.OrganizationID != orgID {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (f *fakeOrderRepo) LockByID(tx *gorm.DB, id uuid.UUID) (*model.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (f *fakeOrderRepo) UpdateStatus(tx *gorm.DB, id uuid.UUID, status model.OrderStatus, updatedBy string) error {
	f.orders[id].Status = status
	f.statusUpdates = append(f.statusUpdates, status)
	return nil
}

func (f *fakeOrderRepo) UpdateShippingCost(tx *gorm.DB, id uuid.UUID, costs map[string]interface{}) error {
	f.costUpdates = append(f.costUpdates, costs)
	return nil
}

func (f *fakeOrderRepo) Stats(orgID uuid.UUID, startDate, endDate time.Time) (*repository.OrderStats, error) {
	return &repository.OrderStats{TotalOrders: int64(len(f.orders))}, nil
}

func (f *fakeOrderRepo) DailyCounts(orgID uuid.UUID, startDate, endDate time.Time) ([]repository.DailyOrderCount, error) {
	return nil, nil
}

type fakeProductRepo struct {
	product      *model.Product
	stockUpdates []int
}

func (f *fakeProductRepo) Create(product *model.Product) error {
	product.ID = uuid.New()
	f.product = product
	return nil
}

func (f *fakeProductRepo) FindAll(orgID uuid.UUID) ([]model.Product, error) {
	if f.product == nil {
		return nil, nil
	}
	return []model.Product{*f.product}, nil
}

func (f *fakeProductRepo) FindByID(orgID, id uuid.UUID) (*model.Product, error) {
	if f.product == nil || f.product.ID != id || f.product.OrganizationID != orgID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.product, nil
}

func (f *fakeProductRepo) FindByCode(orgID uuid.UUID, code string) (*model.Product, error) {
	if f.product == nil || f.product.Code != code {
		return nil, gorm.ErrRecordNotFound
	}
	return f.product, nil
}

func (f *fakeProductRepo) Update(tx *gorm.DB, product *model.Product) error {
	f.product = product
	return nil
}

func (f *fakeProductRepo) Delete(orgID, id uuid.UUID, deletedBy string) error {
	f.product = nil
	return nil
}

func (f *fakeProductRepo) LockByID(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	if f.product == nil || f.product.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.product, nil
}

func (f *fakeProductRepo) UpdateStock(tx *gorm.DB, id uuid.UUID, newStock int, updatedBy string) error {
	f.product.StockQuantity = newStock
	f.stockUpdates = append(f.stockUpdates, newStock)
	return nil
}

func (f *fakeProductRepo) Stats(orgID uuid.UUID) (*repository.ProductStats, error) {
	return &repository.ProductStats{}, nil
}

type fakeCreditRepo struct {
	entries      []*model.CreditTransaction
	refundExists bool
}

func (f *fakeCreditRepo) Append(tx *gorm.DB, entry *model.CreditTransaction) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeCreditRepo) FindByOrg(orgID uuid.UUID, limit, offset int) ([]model.CreditTransaction, error) {
	var out []model.CreditTransaction
	for _, e := range f.entries {
		if e.OrganizationID == orgID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeCreditRepo) CountByOrg(orgID uuid.UUID) (int64, error) {
	entries, _ := f.FindByOrg(orgID, 0, 0)
	return int64(len(entries)), nil
}

func (f *fakeCreditRepo) ExistsRefundForOrder(tx *gorm.DB, orderID uuid.UUID) (bool, error) {
	return f.refundExists, nil
}

type fakeActivityRepo struct {
	entries []*model.ProductActivity
}

func (f *fakeActivityRepo) Log(tx *gorm.DB, entry *model.ProductActivity) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeActivityRepo) FindByOrg(orgID uuid.UUID, productID *uuid.UUID, limit, offset int) ([]model.ProductActivity, error) {
	var out []model.ProductActivity
	for _, e := range f.entries {
		if e.OrganizationID == orgID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeActivityRepo) PruneBefore(orgID uuid.UUID, cutoff time.Time) (int64, error) {
	return 0, nil
}

// fakeRateService serves a fixed rate config without touching the cache.
type fakeRateService struct {
	cfg *model.ShippingRateConfig
}

func (f *fakeRateService) GetRates(orgID uuid.UUID) (*model.ShippingRateConfig, error) {
	return f.cfg, nil
}

func (f *fakeRateService) UpdateRates(orgID uuid.UUID, req *UpdateRatesRequest, actor Actor) (*model.ShippingRateConfig, error) {
	return f.cfg, nil
}

func testActor() Actor {
	return Actor{ID: uuid.New().String(), Name: "Test Admin", Email: "admin@test.local"}
}
