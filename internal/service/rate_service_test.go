package service

import (
	"testing"

	"go-backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRateRepo struct {
	cfg     *model.ShippingRateConfig
	updates int
}

func (f *fakeRateRepo) Create(tx *gorm.DB, cfg *model.ShippingRateConfig) error {
	f.cfg = cfg
	return nil
}

func (f *fakeRateRepo) FindByOrg(orgID uuid.UUID) (*model.ShippingRateConfig, error) {
	if f.cfg == nil || f.cfg.OrganizationID != orgID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.cfg, nil
}

func (f *fakeRateRepo) Update(orgID uuid.UUID, cfg *model.ShippingRateConfig, updatedBy string) (*model.ShippingRateConfig, error) {
	cfg.OrganizationID = orgID
	cfg.Version = f.cfg.Version + 1
	f.cfg = cfg
	f.updates++
	return cfg, nil
}

// With no redis configured the service reads straight through to the
// repository.
func TestGetRatesWithoutCache(t *testing.T) {
	orgID := uuid.New()
	repo := &fakeRateRepo{cfg: &model.ShippingRateConfig{
		OrganizationID: orgID,
		PickPack:       20,
		Version:        1,
	}}
	svc := NewRateConfigService(repo, nil)

	cfg, err := svc.GetRates(orgID)
	require.NoError(t, err)
	assert.Equal(t, int64(20), cfg.PickPack)

	_, err = svc.GetRates(uuid.New())
	assert.ErrorIs(t, err, ErrOrganizationNotFound)
}

func TestUpdateRatesBumpsVersion(t *testing.T) {
	orgID := uuid.New()
	repo := &fakeRateRepo{cfg: &model.ShippingRateConfig{OrganizationID: orgID, Version: 1}}
	svc := NewRateConfigService(repo, nil)

	updated, err := svc.UpdateRates(orgID, &UpdateRatesRequest{
		PickPack:   20,
		Bubble:     5,
		CODPercent: 3,
	}, testActor())
	require.NoError(t, err)

	assert.Equal(t, 2, updated.Version)
	assert.Equal(t, int64(20), updated.PickPack)
	assert.Equal(t, 1, repo.updates)
}

func TestUpdateRatesValidation(t *testing.T) {
	orgID := uuid.New()
	repo := &fakeRateRepo{cfg: &model.ShippingRateConfig{OrganizationID: orgID, Version: 1}}
	svc := NewRateConfigService(repo, nil)

	_, err := svc.UpdateRates(orgID, &UpdateRatesRequest{PickPack: -1}, testActor())
	assert.Error(t, err)
	_, err = svc.UpdateRates(orgID, &UpdateRatesRequest{CODPercent: 150}, testActor())
	assert.Error(t, err)
	assert.Equal(t, 0, repo.updates)
}

func TestRatesForMapsAllFields(t *testing.T) {
	rates := RatesFor(&model.ShippingRateConfig{
		PickPack:    1,
		Bubble:      2,
		PaperInside: 3,
		CancelOrder: 4,
		CODPercent:  5,
		Box:         6,
		DeliveryFee: 7,
	})

	assert.Equal(t, int64(1), rates.PickPack)
	assert.Equal(t, int64(2), rates.Bubble)
	assert.Equal(t, int64(3), rates.PaperInside)
	assert.Equal(t, int64(4), rates.CancelOrder)
	assert.Equal(t, float64(5), rates.CODPercent)
	assert.Equal(t, int64(6), rates.Box)
	assert.Equal(t, int64(7), rates.DeliveryFee)
}
