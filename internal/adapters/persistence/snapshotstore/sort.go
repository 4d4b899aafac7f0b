package snapshotstore

import (
	"sort"

	"github.com/kestrel-robotics/warehouse-core/internal/application/control/queries"
)

// go-memdb's string/bool indexes don't guarantee id order within a bucket,
// so each read sorts its rows by id before returning — callers shouldn't
// have to care which index answered the query.

func sortAgentsByID(rows []queries.AgentSnapshot) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
}

func sortOrdersByID(rows []queries.OrderSnapshot) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
}

func sortRacksByID(rows []queries.RackSnapshot) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
}
