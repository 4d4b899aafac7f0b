package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/kestrel-robotics/warehouse-core/internal/domain/shared"
)

// DismissalLogRepository records orders dismissed for exceeding their
// dismiss-after-ticks threshold (spec §7 kind 2).
type DismissalLogRepository interface {
	// Record appends one dismissal row.
	Record(ctx context.Context, entry DismissalLogModel) error

	// RecentForGate returns recent dismissals at one gate, newest first,
	// capped at limit rows.
	RecentForGate(ctx context.Context, gateID int, limit int) ([]DismissalLogModel, error)
}

// GormDismissalLogRepository is a GORM-based DismissalLogRepository
// implementation.
type GormDismissalLogRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormDismissalLogRepository creates a new dismissal log repository.
// If clock is nil, uses RealClock (production behavior).
func NewGormDismissalLogRepository(db *gorm.DB, clock shared.Clock) *GormDismissalLogRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormDismissalLogRepository{db: db, clock: clock}
}

func (r *GormDismissalLogRepository) Record(ctx context.Context, entry DismissalLogModel) error {
	if entry.DismissedAt.IsZero() {
		entry.DismissedAt = r.clock.Now()
	}
	return r.db.WithContext(ctx).Create(&entry).Error
}

func (r *GormDismissalLogRepository) RecentForGate(ctx context.Context, gateID int, limit int) ([]DismissalLogModel, error) {
	var rows []DismissalLogModel
	err := r.db.WithContext(ctx).
		Where("gate_id = ?", gateID).
		Order("dismissed_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
