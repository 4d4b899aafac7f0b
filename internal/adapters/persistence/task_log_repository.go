package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/kestrel-robotics/warehouse-core/internal/domain/shared"
)

// TaskLogRepository records completed tasks for post-hoc throughput
// auditing (spec §3 Task, §4.6 phase 6).
type TaskLogRepository interface {
	// Record appends one completed-task row.
	Record(ctx context.Context, entry TaskLogModel) error

	// RecentForAgent returns the most recently completed tasks for one
	// agent, newest first, capped at limit rows.
	RecentForAgent(ctx context.Context, agentID int, limit int) ([]TaskLogModel, error)
}

// GormTaskLogRepository is a GORM-based TaskLogRepository implementation.
type GormTaskLogRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormTaskLogRepository creates a new task log repository. If clock is
// nil, uses RealClock (production behavior).
func NewGormTaskLogRepository(db *gorm.DB, clock shared.Clock) *GormTaskLogRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormTaskLogRepository{db: db, clock: clock}
}

func (r *GormTaskLogRepository) Record(ctx context.Context, entry TaskLogModel) error {
	if entry.CompletedAt.IsZero() {
		entry.CompletedAt = r.clock.Now()
	}
	return r.db.WithContext(ctx).Create(&entry).Error
}

func (r *GormTaskLogRepository) RecentForAgent(ctx context.Context, agentID int, limit int) ([]TaskLogModel, error) {
	var rows []TaskLogModel
	err := r.db.WithContext(ctx).
		Where("agent_id = ?", agentID).
		Order("completed_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
