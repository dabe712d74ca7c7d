package service

import (
	"context"
	"encoding/json"
	"time"

	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/pkg/cache"
	"go-backoffice/pkg/shipping"
	"go-backoffice/pkg/validator"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const rateCacheTTL = 10 * time.Minute

type RateConfigService interface {
	GetRates(orgID uuid.UUID) (*model.ShippingRateConfig, error)
	UpdateRates(orgID uuid.UUID, req *UpdateRatesRequest, actor Actor) (*model.ShippingRateConfig, error)
}

type UpdateRatesRequest struct {
	PickPack    int64   `json:"pick_pack" validate:"gte=0"`
	Bubble      int64   `json:"bubble" validate:"gte=0"`
	PaperInside int64   `json:"paper_inside" validate:"gte=0"`
	CancelOrder int64   `json:"cancel_order" validate:"gte=0"`
	CODPercent  float64 `json:"cod_percent" validate:"gte=0,lte=100"`
	Box         int64   `json:"box" validate:"gte=0"`
	DeliveryFee int64   `json:"delivery_fee" validate:"gte=0"`
}

type rateConfigService struct {
	rateRepo repository.RateConfigRepository
	rdb      *redis.Client
}

func NewRateConfigService(rateRepo repository.RateConfigRepository, rdb *redis.Client) RateConfigService {
	return &rateConfigService{rateRepo: rateRepo, rdb: rdb}
}

func rateCacheKey(orgID uuid.UUID) string {
	return "rates:" + orgID.String()
}

// GetRates serves the organization's shipping rates, read-through cached.
// The database stays authoritative: cache failures fall back to a plain
// read.
func (s *rateConfigService) GetRates(orgID uuid.UUID) (*model.ShippingRateConfig, error) {
	ctx := context.Background()

	var cached model.ShippingRateConfig
	if cache.GetJSON(ctx, s.rdb, rateCacheKey(orgID), func(data []byte) error {
		return json.Unmarshal(data, &cached)
	}) {
		return &cached, nil
	}

	cfg, err := s.rateRepo.FindByOrg(orgID)
	if err != nil {
		return nil, ErrOrganizationNotFound
	}

	if data, err := json.Marshal(cfg); err == nil {
		cache.SetJSON(ctx, s.rdb, rateCacheKey(orgID), data, rateCacheTTL)
	}
	return cfg, nil
}

func (s *rateConfigService) UpdateRates(orgID uuid.UUID, req *UpdateRatesRequest, actor Actor) (*model.ShippingRateConfig, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	cfg := &model.ShippingRateConfig{
		PickPack:    req.PickPack,
		Bubble:      req.Bubble,
		PaperInside: req.PaperInside,
		CancelOrder: req.CancelOrder,
		CODPercent:  req.CODPercent,
		Box:         req.Box,
		DeliveryFee: req.DeliveryFee,
	}

	updated, err := s.rateRepo.Update(orgID, cfg, actor.ID)
	if err != nil {
		return nil, err
	}

	cache.Del(context.Background(), s.rdb, rateCacheKey(orgID))
	return updated, nil
}

// RatesFor converts a stored config into calculator inputs.
func RatesFor(cfg *model.ShippingRateConfig) shipping.Rates {
	return shipping.Rates{
		PickPack:    cfg.PickPack,
		Bubble:      cfg.Bubble,
		PaperInside: cfg.PaperInside,
		CancelOrder: cfg.CancelOrder,
		CODPercent:  cfg.CODPercent,
		Box:         cfg.Box,
		DeliveryFee: cfg.DeliveryFee,
	}
}
