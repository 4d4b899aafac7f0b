// Package facility models the positioned, non-rack structures of the
// warehouse: delivery/receive gates and recharge stations (spec §3
// Glossary: Gate, Station).
package facility

import (
	"fmt"

	"github.com/kestrel-robotics/warehouse-core/internal/domain/grid"
)

// Gate is a delivery (collect) or receive (refill) point at the warehouse
// boundary. At most one task may be bound to a gate at a time (spec §4.6
// phase 4/5, §8 scenario 5: "at no point are two agents bound to the same
// gate simultaneously").
type Gate struct {
	id           int
	pos          grid.Position
	boundTask    int
	hasBound     bool
	dwellElapsed int
}

func NewGate(id int, pos grid.Position) *Gate {
	return &Gate{id: id, pos: pos}
}

func (g *Gate) ID() int             { return g.id }
func (g *Gate) Position() grid.Position { return g.pos }
func (g *Gate) IsBound() bool       { return g.hasBound }
func (g *Gate) BoundTask() (int, bool) { return g.boundTask, g.hasBound }

// Bind reserves the gate for taskID's BIND_GATE..UNBIND_GATE window.
// Fails if another task already holds it.
func (g *Gate) Bind(taskID int) error {
	if g.hasBound && g.boundTask != taskID {
		return fmt.Errorf("gate %d: already bound to task %d", g.id, g.boundTask)
	}
	g.boundTask = taskID
	g.hasBound = true
	g.dwellElapsed = 0
	return nil
}

// Tick advances the dwell counter for the currently bound task by one
// simulation tick.
func (g *Gate) Tick() {
	if g.hasBound {
		g.dwellElapsed++
	}
}

// DwellElapsed returns how many ticks have passed since Bind was called.
func (g *Gate) DwellElapsed() int { return g.dwellElapsed }

// Unbind releases the gate. No-op if not bound.
func (g *Gate) Unbind() {
	g.hasBound = false
	g.boundTask = 0
	g.dwellElapsed = 0
}

// Station is a recharge point. Routing treats it like any other facility
// cell; this repository carries no battery-depletion model (spec §1
// non-goals: no physics), so Station exists purely as a positioned,
// non-traversable facility that RobotEvent(battery_level) telemetry can
// reference.
type Station struct {
	id  int
	pos grid.Position
}

func NewStation(id int, pos grid.Position) *Station { return &Station{id: id, pos: pos} }
func (s *Station) ID() int                          { return s.id }
func (s *Station) Position() grid.Position          { return s.pos }
