package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kestrel-robotics/warehouse-core/internal/domain/shared"
)

// TickCheckpointRepository persists the daemon's last known tick and run
// state, so a restarted process can report where it left off without
// replaying the completed-task log.
type TickCheckpointRepository interface {
	// Save upserts the single checkpoint row.
	Save(ctx context.Context, tick int, runState string) error

	// Load returns the last saved checkpoint, or (0, "", false) if none
	// has ever been recorded.
	Load(ctx context.Context) (tick int, runState string, found bool, err error)
}

// GormTickCheckpointRepository is a GORM-based TickCheckpointRepository
// implementation. It keeps exactly one row, identified by ID 1.
type GormTickCheckpointRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormTickCheckpointRepository creates a new checkpoint repository. If
// clock is nil, uses RealClock (production behavior).
func NewGormTickCheckpointRepository(db *gorm.DB, clock shared.Clock) *GormTickCheckpointRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormTickCheckpointRepository{db: db, clock: clock}
}

const checkpointRowID = 1

func (r *GormTickCheckpointRepository) Save(ctx context.Context, tick int, runState string) error {
	row := TickCheckpointModel{
		ID:         checkpointRowID,
		TickNumber: tick,
		RunState:   runState,
		RecordedAt: r.clock.Now(),
	}
	return r.db.WithContext(ctx).Save(&row).Error
}

func (r *GormTickCheckpointRepository) Load(ctx context.Context) (int, string, bool, error) {
	var row TickCheckpointModel
	err := r.db.WithContext(ctx).First(&row, checkpointRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, "", false, nil
	}
	if err != nil {
		return 0, "", false, err
	}
	return row.TickNumber, row.RunState, true, nil
}
