package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/kestrel-robotics/warehouse-core/internal/domain/shared"
)

// OrderHistoryRepository records order lifecycle transitions for operator
// audit (spec §7 kind 2, §6 outbound Log).
type OrderHistoryRepository interface {
	// Record appends one order-history row.
	Record(ctx context.Context, entry OrderHistoryModel) error

	// ForOrder returns every recorded transition for one order, oldest first.
	ForOrder(ctx context.Context, orderID int) ([]OrderHistoryModel, error)
}

// GormOrderHistoryRepository is a GORM-based OrderHistoryRepository
// implementation.
type GormOrderHistoryRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormOrderHistoryRepository creates a new order history repository.
// If clock is nil, uses RealClock (production behavior).
func NewGormOrderHistoryRepository(db *gorm.DB, clock shared.Clock) *GormOrderHistoryRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormOrderHistoryRepository{db: db, clock: clock}
}

func (r *GormOrderHistoryRepository) Record(ctx context.Context, entry OrderHistoryModel) error {
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = r.clock.Now()
	}
	return r.db.WithContext(ctx).Create(&entry).Error
}

func (r *GormOrderHistoryRepository) ForOrder(ctx context.Context, orderID int) ([]OrderHistoryModel, error) {
	var rows []OrderHistoryModel
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("recorded_at ASC").
		Find(&rows).Error
	return rows, err
}
