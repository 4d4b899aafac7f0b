package snapshotstore

import (
	"errors"
	"sync"

	"github.com/hashicorp/go-memdb"

	"github.com/kestrel-robotics/warehouse-core/internal/application/control/queries"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/warehouse"
)

var (
	errArgCount = errors.New("snapshotstore: expected exactly one index argument")
	errArgType  = errors.New("snapshotstore: unexpected index argument type")
)

// Store is a go-memdb-backed implementation of queries.SnapshotReader. A
// single Store is shared by the audit middleware (which calls Rebuild
// after every Initialise, SubmitOrder, Tick and RobotEvent command) and
// the query handler (which only ever reads).
type Store struct {
	mu   sync.RWMutex
	db   *memdb.MemDB
	tick int
}

// New creates an empty Store; call Rebuild once a warehouse exists.
func New() (*Store, error) {
	db, err := memdb.NewMemDB(newSchema())
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

var _ queries.SnapshotReader = (*Store)(nil)

// Rebuild replaces the entire index from the live warehouse's current
// state. Run after each tick (spec §4.7's tick loop): go-memdb's
// copy-on-write transactions mean readers never observe a half-rebuilt
// index, only the prior snapshot or the new one.
func (s *Store) Rebuild(w *warehouse.Warehouse) error {
	txn := s.db.Txn(true)
	defer txn.Abort()

	if err := wipe(txn, tableAgents); err != nil {
		return err
	}
	if err := wipe(txn, tableOrders); err != nil {
		return err
	}
	if err := wipe(txn, tableRacks); err != nil {
		return err
	}

	for _, a := range w.Agents() {
		pos := a.Position()
		row := &agentRow{ID: a.ID(), Status: a.Status().String(), Row: pos.Row, Col: pos.Col}
		if err := txn.Insert(tableAgents, row); err != nil {
			return err
		}
	}

	for _, o := range w.Orders() {
		row := &orderRow{ID: o.ID(), GateID: o.GateID(), Status: string(o.Status())}
		if err := txn.Insert(tableOrders, row); err != nil {
			return err
		}
	}

	for _, r := range w.Racks() {
		row := &rackRow{ID: r.ID(), Allocated: r.IsAllocated(), StoredWeight: r.StoredWeight()}
		if err := txn.Insert(tableRacks, row); err != nil {
			return err
		}
	}

	txn.Commit()

	s.mu.Lock()
	s.tick = w.Tick()
	s.mu.Unlock()
	return nil
}

func wipe(txn *memdb.Txn, table string) error {
	it, err := txn.Get(table, "id")
	if err != nil {
		return err
	}
	var rows []interface{}
	for raw := it.Next(); raw != nil; raw = it.Next() {
		rows = append(rows, raw)
	}
	for _, row := range rows {
		if err := txn.Delete(table, row); err != nil {
			return err
		}
	}
	return nil
}

// Tick returns the tick the index was last rebuilt at.
func (s *Store) Tick() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tick
}

// AgentsByStatus lists agents, optionally filtered by status (empty means
// every status), ordered by id.
func (s *Store) AgentsByStatus(status string) ([]queries.AgentSnapshot, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	var it memdb.ResultIterator
	var err error
	if status == "" {
		it, err = txn.Get(tableAgents, "id")
	} else {
		it, err = txn.Get(tableAgents, "status", status)
	}
	if err != nil {
		return nil, err
	}

	var out []queries.AgentSnapshot
	for raw := it.Next(); raw != nil; raw = it.Next() {
		row := raw.(*agentRow)
		out = append(out, queries.AgentSnapshot{ID: row.ID, Status: row.Status, Row: row.Row, Col: row.Col})
	}
	sortAgentsByID(out)
	return out, nil
}

// OrdersByGate lists orders, optionally filtered by gate (0 means every
// gate), ordered by id.
func (s *Store) OrdersByGate(gateID int) ([]queries.OrderSnapshot, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	var it memdb.ResultIterator
	var err error
	if gateID == 0 {
		it, err = txn.Get(tableOrders, "id")
	} else {
		it, err = txn.Get(tableOrders, "gate", gateID)
	}
	if err != nil {
		return nil, err
	}

	var out []queries.OrderSnapshot
	for raw := it.Next(); raw != nil; raw = it.Next() {
		row := raw.(*orderRow)
		out = append(out, queries.OrderSnapshot{ID: row.ID, GateID: row.GateID, Status: row.Status})
	}
	sortOrdersByID(out)
	return out, nil
}

// AllocatedRacks lists every rack currently holding an agent allocation.
func (s *Store) AllocatedRacks() ([]queries.RackSnapshot, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableRacks, "allocated", true)
	if err != nil {
		return nil, err
	}

	var out []queries.RackSnapshot
	for raw := it.Next(); raw != nil; raw = it.Next() {
		row := raw.(*rackRow)
		out = append(out, queries.RackSnapshot{ID: row.ID, Allocated: row.Allocated, StoredWeight: row.StoredWeight})
	}
	sortRacksByID(out)
	return out, nil
}
