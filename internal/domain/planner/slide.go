package planner

import (
	"github.com/kestrel-robotics/warehouse-core/internal/domain/agent"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/grid"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/guidemap"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/shared"
)

// AgentLocator finds which agent, if any, currently occupies pos.
type AgentLocator interface {
	AgentAt(pos grid.Position) (agentID int, ok bool)
}

// AgentByID resolves an agent id to its live instance, for recursive
// displacement.
type AgentByID interface {
	AgentByID(id int) (*agent.Agent, bool)
}

// Slide is the purely-spatial guide-map fallback of spec §4.5.4, used
// when an agent is off-plan and needs opportunistic local progress (e.g.
// blockage recovery). It tries each cardinal direction that strictly
// improves distance to target, recursively displacing a lower-priority
// occupant first. Each agent is touched at most once per tick (tracked
// via agent.Touch/TouchedAt), guaranteeing the recursion terminates.
// Returns the action to execute this tick, or false if no displacement
// is currently possible.
func Slide(g *grid.Grid, gm *guidemap.GuideMap, ag *agent.Agent, locator AgentLocator, byID AgentByID, priority PriorityResolver, tick int) (agent.Action, bool) {
	if ag.TouchedAt(tick) {
		return agent.Action{}, false
	}

	cur := ag.Position()
	curDist := gm.DistanceTo(cur)
	if curDist == guidemap.Unreachable {
		ag.Touch(tick)
		return agent.Action{}, false
	}

	for _, d := range directions {
		next := cur.Neighbor(d)
		if !g.Walkable(next) {
			continue
		}
		nextDist := gm.DistanceTo(next)
		if nextDist == guidemap.Unreachable || nextDist >= curDist {
			continue
		}

		if occupantID, occupied := locator.AgentAt(next); occupied && occupantID != ag.ID() {
			occupant, ok := byID.AgentByID(occupantID)
			if !ok {
				continue
			}
			if priority.PriorityOf(occupantID) <= ag.Priority() {
				continue // equal-or-higher-priority incumbent blocks displacement
			}
			if _, moved := Slide(g, gm, occupant, locator, byID, priority, tick); !moved {
				continue
			}
		}

		ag.Touch(tick)
		if ag.Direction() == d {
			return agent.Action{Kind: agent.Move, Dir: d}, true
		}
		return turnToward(ag.Direction(), d), true
	}

	ag.Touch(tick)
	return agent.Action{}, false
}

// turnToward returns the single rotation action that brings cur one step
// closer to facing target (two rotations are needed for a full reversal;
// the caller re-evaluates next tick once facing has changed).
func turnToward(cur, target shared.Direction) agent.Action {
	if cur.RotateRight() == target {
		return agent.Action{Kind: agent.RotateRight, Dir: target}
	}
	return agent.Action{Kind: agent.RotateLeft, Dir: cur.RotateLeft()}
}
