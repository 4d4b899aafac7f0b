// Package control holds the command/query handlers that sit behind the
// external interface of spec §6: one handler per inbound message, each
// wrapping a domain operation and returning a mediator.Response the
// gRPC/CLI adapters can translate into an Ack.
package control

import "github.com/kestrel-robotics/warehouse-core/internal/domain/warehouse"

// RunState is the daemon-level control state driven by Pause/Resume/Stop
// (spec §6 inbound control), orthogonal to any single agent's Status.
type RunState int

const (
	Stopped RunState = iota
	Running
	Paused
)

func (s RunState) String() string {
	switch s {
	case Running:
		return "RUNNING"
	case Paused:
		return "PAUSED"
	default:
		return "STOPPED"
	}
}

// Store is the single point of access to the live Warehouse and the
// daemon's run state, shared by every command/query handler. Modeled on
// the teacher's repository-injection pattern (handlers hold a narrow
// interface, never a concrete singleton) but reduced to the one process-
// wide instance a single-daemon simulation core actually has.
type Store interface {
	Warehouse() (*warehouse.Warehouse, bool)
	SetWarehouse(*warehouse.Warehouse)
	RunState() RunState
	SetRunState(RunState)
}

// memStore is the only Store implementation this repository ships: an
// in-process holder, since the warehouse daemon is a single instance per
// spec §5 (no multi-process coordination in scope).
type memStore struct {
	wh    *warehouse.Warehouse
	state RunState
}

// NewStore creates an empty Store with RunState Stopped.
func NewStore() Store {
	return &memStore{}
}

func (s *memStore) Warehouse() (*warehouse.Warehouse, bool) { return s.wh, s.wh != nil }
func (s *memStore) SetWarehouse(w *warehouse.Warehouse)     { s.wh = w }
func (s *memStore) RunState() RunState                      { return s.state }
func (s *memStore) SetRunState(r RunState)                  { s.state = r }
