// Package planner implements the space-time A* motion planner and its
// priority-preemption and guide-map-fallback companions (spec §4.5).
package planner

import (
	"container/heap"

	"github.com/kestrel-robotics/warehouse-core/internal/domain/agent"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/grid"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/shared"
)

var directions = [4]shared.Direction{shared.Up, shared.Right, shared.Down, shared.Left}

// node is a closed/parent-tracking entry keyed by (row, col, dir): per
// spec §4.5.1 the per-run visited set is three-dimensional, not
// four-dimensional — a (row,col,dir) triple is finalized by whichever
// tick first reaches it in priority order.
type node struct {
	row, col int
	dir      shared.Direction
	tick     int
	action   agent.Action
	hasFrom  bool
	from     nodeKey
}

type nodeKey struct {
	row, col int
	dir      shared.Direction
}

type pqItem struct {
	key      nodeKey
	tick     int
	g, h     int
	fromKey  nodeKey
	hasFrom  bool
	action   agent.Action
	index    int
}

type priorityQueue []*pqItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	fi, fj := pq[i].g+pq[i].h, pq[j].g+pq[j].h
	if fi != fj {
		return fi < fj
	}
	return pq[i].g > pq[j].g // prefer deeper (smaller h) on ties
}
func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index, pq[j].index = i, j
}
func (pq *priorityQueue) Push(x any) {
	item := x.(*pqItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}
func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}

// Planner runs space-time A* against a shared grid/timeline and a
// priority resolver/dropper supplied by its owner (the Warehouse
// aggregate), per the ports declared in ports.go.
type Planner struct {
	grid     *grid.Grid
	priority PriorityResolver
	dropper  PlanDropper
}

func New(g *grid.Grid, priority PriorityResolver, dropper PlanDropper) *Planner {
	return &Planner{grid: g, priority: priority, dropper: dropper}
}

func manhattan(a, b grid.Position) int {
	return a.Manhattan(b)
}

// Plan runs space-time A* for ag from its current pose/tick to target,
// returning the action sequence and reserving every visited (pos,tick) on
// the shared timeline as a side effect (spec §4.5.1). Returns (nil, false)
// if the frontier empties without reaching target.
func (p *Planner) Plan(ag *agent.Agent, target grid.Position, startTick int) ([]agent.Action, bool) {
	start := ag.Position()
	if start == target {
		return []agent.Action{}, true
	}

	startKey := nodeKey{row: start.Row, col: start.Col, dir: ag.Direction()}
	nodes := map[nodeKey]node{
		startKey: {row: start.Row, col: start.Col, dir: ag.Direction(), tick: startTick},
	}
	closed := map[nodeKey]bool{}

	pq := &priorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &pqItem{key: startKey, tick: startTick, g: 0, h: manhattan(start, target)})

	var goalKey nodeKey
	found := false

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem)
		if closed[item.key] {
			continue
		}
		closed[item.key] = true
		n := nodes[item.key]
		n.tick = item.tick
		n.hasFrom = item.hasFrom
		n.from = item.fromKey
		n.action = item.action
		nodes[item.key] = n

		if item.key.row == target.Row && item.key.col == target.Col {
			goalKey = item.key
			found = true
			break
		}

		cur := grid.Position{Row: item.key.row, Col: item.key.col}
		curDir := item.key.dir
		nextTick := item.tick + 1

		candidates := []struct {
			key    nodeKey
			action agent.Action
		}{
			{nodeKey{row: cur.Neighbor(curDir).Row, col: cur.Neighbor(curDir).Col, dir: curDir}, agent.Action{Kind: agent.Move, Dir: curDir}},
			{nodeKey{row: cur.Row, col: cur.Col, dir: curDir.RotateRight()}, agent.Action{Kind: agent.RotateRight, Dir: curDir.RotateRight()}},
			{nodeKey{row: cur.Row, col: cur.Col, dir: curDir.RotateLeft()}, agent.Action{Kind: agent.RotateLeft, Dir: curDir.RotateLeft()}},
		}

		for _, c := range candidates {
			if closed[c.key] {
				continue
			}
			npos := grid.Position{Row: c.key.row, Col: c.key.col}
			if !p.visitable(npos, nextTick, ag, start, target) {
				continue
			}
			g := item.g + 1
			h := manhattan(npos, target)
			heap.Push(pq, &pqItem{
				key: c.key, tick: nextTick, g: g, h: h,
				fromKey: item.key, hasFrom: true, action: c.action,
			})
		}
	}

	if !found {
		return nil, false
	}

	actions, path := backtrack(nodes, goalKey)
	p.reservePath(ag, path)
	return actions, true
}

type pathStep struct {
	pos  grid.Position
	tick int
}

func backtrack(nodes map[nodeKey]node, goalKey nodeKey) ([]agent.Action, []pathStep) {
	var actions []agent.Action
	var steps []pathStep
	key := goalKey
	for {
		n := nodes[key]
		steps = append(steps, pathStep{pos: grid.Position{Row: n.row, Col: n.col}, tick: n.tick})
		if !n.hasFrom {
			break
		}
		actions = append(actions, n.action)
		key = n.from
	}
	// reverse actions and steps (collected goal -> start)
	for i, j := 0, len(actions)-1; i < j; i, j = i+1, j-1 {
		actions[i], actions[j] = actions[j], actions[i]
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return actions, steps
}

// visitable implements spec §4.5.1's four successor conditions.
func (p *Planner) visitable(pos grid.Position, tick int, ag *agent.Agent, start, target grid.Position) bool {
	if !p.grid.Walkable(pos) {
		return false
	}
	holder, scheduled := p.grid.ScheduledAt(pos, tick)
	if scheduled && holder != ag.ID() {
		if p.priority.PriorityOf(holder) <= ag.Priority() {
			return false
		}
	}
	cell, err := p.grid.CellAt(pos)
	if err != nil {
		return false
	}
	if cell.IsFacility() && pos != start && pos != target {
		if cell.Type == grid.CellRack {
			if rackID, carrying := ag.IsCarrying(); carrying && rackID == cell.FacilityID {
				return true
			}
		}
		return false
	}
	return true
}

// reservePath writes every (pos, tick) pair on the shared timeline,
// dropping any lower-priority agent's conflicting reservation first
// (spec §4.5.1's "on reaching the goal ... reserve ... if a cell's
// existing reservation belongs to a lower-priority agent, that agent's
// plan is dropped before the new reservation is written").
func (p *Planner) reservePath(ag *agent.Agent, path []pathStep) {
	for _, step := range path {
		if holder, ok := p.grid.ScheduledAt(step.pos, step.tick); ok && holder != ag.ID() {
			p.dropper.DropPlan(holder)
		}
		_ = p.grid.Reserve(step.pos, step.tick, ag.ID())
	}
}

// DropPlan walks ag's remaining plan forward from its current pose/tick,
// clearing every (pos,tick) reservation it holds, then empties the plan
// (spec §4.5.3).
func DropPlan(g *grid.Grid, ag *agent.Agent, currentTick int) {
	pos := ag.Position()
	dir := ag.Direction()
	tick := currentTick
	g.Clear(pos, tick)
	for _, a := range ag.Plan() {
		switch a.Kind {
		case agent.Move:
			pos = pos.Neighbor(dir)
		case agent.RotateLeft, agent.RotateRight:
			dir = a.Dir
		}
		tick++
		g.Clear(pos, tick)
	}
	ag.ClearPlan()
}
