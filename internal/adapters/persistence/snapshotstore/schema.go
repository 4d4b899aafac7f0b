// Package snapshotstore is the read-side index backing
// control/queries.GetWarehouseSnapshotQuery: an in-memory, indexed copy of
// the live warehouse's agents, orders, and racks, rebuilt wholesale after
// each tick rather than updated incrementally. It is never the system of
// record — internal/domain/warehouse owns that — only a query cache shaped
// for the lookups an operator dashboard actually makes (agents by status,
// orders by gate, allocated racks).
package snapshotstore

import (
	"github.com/hashicorp/go-memdb"
)

const (
	tableAgents = "agents"
	tableOrders = "orders"
	tableRacks  = "racks"
)

// agentRow is the memdb row backing the agents table.
type agentRow struct {
	ID     int
	Status string
	Row    int
	Col    int
}

// orderRow is the memdb row backing the orders table.
type orderRow struct {
	ID     int
	GateID int
	Status string
}

// rackRow is the memdb row backing the racks table.
type rackRow struct {
	ID           int
	Allocated    bool
	StoredWeight float64
}

// allocatedIndexer derives a boolean-as-string index value from rackRow so
// AllocatedRacks can scan only the allocated partition instead of every row.
type allocatedIndexer struct{}

func (allocatedIndexer) FromArgs(args ...interface{}) ([]byte, error) {
	if len(args) != 1 {
		return nil, errArgCount
	}
	b, ok := args[0].(bool)
	if !ok {
		return nil, errArgType
	}
	if b {
		return []byte{1}, nil
	}
	return []byte{0}, nil
}

func (allocatedIndexer) FromObject(raw interface{}) (bool, []byte, error) {
	r, ok := raw.(*rackRow)
	if !ok {
		return false, nil, errArgType
	}
	if r.Allocated {
		return true, []byte{1}, nil
	}
	return true, []byte{0}, nil
}

func newSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableAgents: {
				Name: tableAgents,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.IntFieldIndex{Field: "ID"},
					},
					"status": {
						Name:    "status",
						Indexer: &memdb.StringFieldIndex{Field: "Status"},
					},
				},
			},
			tableOrders: {
				Name: tableOrders,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.IntFieldIndex{Field: "ID"},
					},
					"gate": {
						Name:    "gate",
						Indexer: &memdb.IntFieldIndex{Field: "GateID"},
					},
				},
			},
			tableRacks: {
				Name: tableRacks,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.IntFieldIndex{Field: "ID"},
					},
					"allocated": {
						Name:    "allocated",
						Indexer: allocatedIndexer{},
					},
				},
			},
		},
	}
}
