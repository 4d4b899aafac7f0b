package persistence

import "time"

// TaskLogModel represents the completed_tasks table: an append-only record
// of every task that finished (spec §3 Task, §4.6 phase 6), kept after the
// in-memory warehouse aggregate drops the task so operators can audit
// throughput after the fact.
type TaskLogModel struct {
	ID          int       `gorm:"column:id;primaryKey;autoIncrement"`
	TaskID      int       `gorm:"column:task_id;not null;index:idx_task_log_task"`
	OrderID     int       `gorm:"column:order_id;not null;index:idx_task_log_order"`
	AgentID     int       `gorm:"column:agent_id;not null;index:idx_task_log_agent"`
	RackID      int       `gorm:"column:rack_id;not null"`
	Kind        string    `gorm:"column:kind;not null"`
	CompletedAt time.Time `gorm:"column:completed_at;not null"`
	TickNumber  int       `gorm:"column:tick_number;not null"`
}

func (TaskLogModel) TableName() string {
	return "completed_tasks"
}

// OrderHistoryModel represents the order_history table: one row per
// accepted order submission, logged for operator audit (spec §7 kind 2,
// §6 outbound Log). Fulfilment and dismissal are not written here; they
// land in completed_tasks and the dismissal log.
type OrderHistoryModel struct {
	ID         int       `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID    int       `gorm:"column:order_id;not null;index:idx_order_history_order"`
	GateID     int       `gorm:"column:gate_id;not null"`
	Kind       string    `gorm:"column:kind;not null"`
	Status     string    `gorm:"column:status;not null"`
	RecordedAt time.Time `gorm:"column:recorded_at;not null"`
	TickNumber int       `gorm:"column:tick_number;not null"`
}

func (OrderHistoryModel) TableName() string {
	return "order_history"
}

// DismissalLogModel represents the dismissed_orders table: a permanent
// record of every order dismissed after exceeding its dismiss-after-ticks
// threshold (spec §7 kind 2, §9 open question — dismissal is not an error,
// so it gets its own durable trail rather than riding on an error log).
type DismissalLogModel struct {
	ID           int       `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID      int       `gorm:"column:order_id;not null;index:idx_dismissal_log_order"`
	GateID       int       `gorm:"column:gate_id;not null"`
	PendingUnits int       `gorm:"column:pending_units;not null"`
	DismissTicks int       `gorm:"column:dismiss_ticks;not null"`
	DismissedAt  time.Time `gorm:"column:dismissed_at;not null"`
	TickNumber   int       `gorm:"column:tick_number;not null"`
}

func (DismissalLogModel) TableName() string {
	return "dismissed_orders"
}

// TickCheckpointModel represents the tick_checkpoints table: the single
// row recording how far the daemon got, so a restart can report its last
// known tick without replaying the whole completed-task log.
type TickCheckpointModel struct {
	ID         int       `gorm:"column:id;primaryKey;autoIncrement"`
	TickNumber int       `gorm:"column:tick_number;not null"`
	RunState   string    `gorm:"column:run_state;not null"`
	RecordedAt time.Time `gorm:"column:recorded_at;not null"`
}

func (TickCheckpointModel) TableName() string {
	return "tick_checkpoints"
}
