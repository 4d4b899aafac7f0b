package grid

import "github.com/kestrel-robotics/warehouse-core/internal/domain/shared"

// Timeline is a cell's sparse per-tick reservation map: tick -> reserving
// agent id. It only ever holds entries for ticks currently in some agent's
// planned future (spec §4.1) — garbage collection is implicit, driven by
// Planner.DropPlan clearing entries as a plan is abandoned.
type Timeline map[int]int

// Reserve records that agentID holds this cell at tick t. A same-agent
// re-reservation is a no-op; a different agent already holding the tick
// is reported as *shared.CellBusy.
func (t *Timeline) Reserve(row, col, tick, agentID int) error {
	if *t == nil {
		*t = make(Timeline)
	}
	if holder, ok := (*t)[tick]; ok {
		if holder == agentID {
			return nil
		}
		return &shared.CellBusy{Row: row, Col: col, Tick: tick, Holder: holder}
	}
	(*t)[tick] = agentID
	return nil
}

// Clear removes the reservation for tick, if any. Silent if absent.
func (t *Timeline) Clear(tick int) {
	if *t == nil {
		return
	}
	delete(*t, tick)
}

// ScheduledAt returns the agent reserving this cell at tick, if any.
func (t Timeline) ScheduledAt(tick int) (agentID int, ok bool) {
	if t == nil {
		return 0, false
	}
	agentID, ok = t[tick]
	return
}
