package planner

// PriorityResolver reports an agent's current priority (spec §4.5.1
// condition 3's "strictly lower priority" test and §4.5.4's "higher
// priority incumbent blocks displacement"). Smaller value wins.
type PriorityResolver interface {
	PriorityOf(agentID int) int
}

// PlanDropper drops a lower-priority agent's in-flight plan and releases
// its timeline reservations (spec §4.5.3), invoked when a higher-priority
// planning run needs a cell that agent already holds.
type PlanDropper interface {
	DropPlan(agentID int)
}
