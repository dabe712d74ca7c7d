package repository

import (
	"time"

	"go-backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	Create(tx *gorm.DB, order *model.Order) error
	FindAll(orgID uuid.UUID, filter OrderFilter) ([]model.Order, error)
	FindByID(orgID, id uuid.UUID) (*model.Order, error)
	LockByID(tx *gorm.DB, id uuid.UUID) (*model.Order, error)
	UpdateStatus(tx *gorm.DB, id uuid.UUID, status model.OrderStatus, updatedBy string) error
	// UpdateShippingCost persists the recomputed breakdown together with
	// the status change to sent_to_logistic.
	UpdateShippingCost(tx *gorm.DB, id uuid.UUID, costs map[string]interface{}) error
	Stats(orgID uuid.UUID, startDate, endDate time.Time) (*OrderStats, error)
	DailyCounts(orgID uuid.UUID, startDate, endDate time.Time) ([]DailyOrderCount, error)
}

// OrderFilter narrows listings; zero values mean "no filter".
type OrderFilter struct {
	Status  model.OrderStatus
	Channel model.OrderChannel
	Limit   int
	Offset  int
}

// OrderStats summarizes orders for the dashboard.
type OrderStats struct {
	TotalOrders       int64                       `json:"total_orders"`
	ByStatus          map[model.OrderStatus]int64 `json:"by_status"`
	Revenue           int64                       `json:"revenue"`             // price*qty of non-cancelled orders
	TotalShippingCost int64                       `json:"total_shipping_cost"` // confirmed shipping spend
}

// DailyOrderCount is one point of the orders-per-day chart.
type DailyOrderCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) Create(tx *gorm.DB, order *model.Order) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(order).Error
}

func (r *orderRepo) FindAll(orgID uuid.UUID, filter OrderFilter) ([]model.Order, error) {
	q := r.db.Preload("Product").Where("organization_id = ?", orgID).Order("created_at DESC")
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Channel != "" {
		q = q.Where("channel = ?", filter.Channel)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}

	var orders []model.Order
	err := q.Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindByID(orgID, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Product").First(&order, "id = ? AND organization_id = ?", id, orgID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) LockByID(tx *gorm.DB, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) UpdateStatus(tx *gorm.DB, id uuid.UUID, status model.OrderStatus, updatedBy string) error {
	return tx.Model(&model.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
		}).Error
}

func (r *orderRepo) UpdateShippingCost(tx *gorm.DB, id uuid.UUID, costs map[string]interface{}) error {
	return tx.Model(&model.Order{}).
		Where("id = ?", id).
		Updates(costs).Error
}

func (r *orderRepo) Stats(orgID uuid.UUID, startDate, endDate time.Time) (*OrderStats, error) {
	stats := &OrderStats{ByStatus: make(map[model.OrderStatus]int64)}

	rows, err := r.db.Model(&model.Order{}).
		Select("status, COUNT(*) as count").
		Where("organization_id = ? AND created_at BETWEEN ? AND ?", orgID, startDate, endDate).
		Group("status").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status model.OrderStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.ByStatus[status] = count
		stats.TotalOrders += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Order{}).
		Where("organization_id = ? AND status <> ? AND created_at BETWEEN ? AND ?",
			orgID, model.StatusCancelled, startDate, endDate).
		Select("COALESCE(SUM(price * quantity), 0)").
		Scan(&stats.Revenue).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Order{}).
		Where("organization_id = ? AND created_at BETWEEN ? AND ?", orgID, startDate, endDate).
		Select("COALESCE(SUM(total_shipping_cost), 0)").
		Scan(&stats.TotalShippingCost).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *orderRepo) DailyCounts(orgID uuid.UUID, startDate, endDate time.Time) ([]DailyOrderCount, error) {
	var results []DailyOrderCount

	rows, err := r.db.Model(&model.Order{}).
		Select("DATE(created_at) as date, COUNT(*) as count").
		Where("organization_id = ? AND created_at BETWEEN ? AND ?", orgID, startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data DailyOrderCount
		if err := rows.Scan(&data.Date, &data.Count); err != nil {
			return nil, err
		}
		results = append(results, data)
	}
	return results, rows.Err()
}
