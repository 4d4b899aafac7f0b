package warehouse

import (
	"fmt"

	"github.com/kestrel-robotics/warehouse-core/internal/domain/grid"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/inventory"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/order"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/shared"
)

// SubmitOrder validates o against spec §6's submission rules, reserves
// its item-level stock synchronously (o.Activate), and enqueues it for
// dispatch. A validation failure leaves the warehouse's state untouched.
func (w *Warehouse) SubmitOrder(o *order.Order) error {
	if _, exists := w.orders[o.ID()]; exists {
		return shared.NewValidationError(shared.ErrDuplicateID, "id", fmt.Sprintf("order %d already exists", o.ID()))
	}
	if err := w.validateSubmission(o); err != nil {
		return err
	}
	if err := o.Activate(w.catalogue); err != nil {
		return err
	}
	w.orders[o.ID()] = o
	w.pendingIDs = append(w.pendingIDs, o.ID())
	return nil
}

func (w *Warehouse) validateSubmission(o *order.Order) error {
	switch o.Kind() {
	case order.Collect:
		if _, ok := w.gates[o.GateID()]; !ok {
			return shared.NewValidationError(shared.ErrRackUnreachable, "gate_id", "unknown gate")
		}
		for itemID, qty := range o.Pending() {
			item, ok := w.catalogue.Get(itemID)
			if !ok {
				return shared.NewValidationError(shared.ErrOrderInfeasible, "items", fmt.Sprintf("unknown item %d", itemID))
			}
			if item.Available() < qty {
				return shared.NewValidationError(shared.ErrOrderInfeasible, "items", "insufficient available stock").
					WithArgs(map[string]string{"item": fmt.Sprint(itemID), "requested": fmt.Sprint(qty), "available": fmt.Sprint(item.Available())})
			}
		}
	case order.Refill:
		rack, ok := w.racks[o.RefillRackID()]
		if !ok {
			return shared.NewValidationError(shared.ErrRackUnreachable, "rack_id", "unknown rack")
		}
		added := order.AddedWeight(w.catalogue, o.Pending())
		if rack.StoredWeight()+added > rack.Capacity()+1e-9 {
			excess := rack.StoredWeight() + added - rack.Capacity()
			return shared.NewValidationError(shared.ErrCapacityExceeded, "items", "refill exceeds rack capacity").
				WithArgs(map[string]string{"reason": "infeasible_refill", "excess": fmt.Sprintf("%g", excess)})
		}
	}
	return nil
}

// candidateRacksFor computes the set of racks dispatch should consider
// for o (spec §4.4): for a refill order, the single named rack; for a
// collect order, every rack reachable from the gate that stores at least
// one item o still needs.
func (w *Warehouse) candidateRacksFor(o *order.Order) []*inventory.Rack {
	switch o.Kind() {
	case order.Refill:
		if r, ok := w.racks[o.RefillRackID()]; ok {
			return []*inventory.Rack{r}
		}
		return nil
	case order.Collect:
		pending := o.Pending()
		ids := make([]int, 0, len(w.racks))
		for id := range w.racks {
			ids = append(ids, id)
		}
		out := make([]*inventory.Rack, 0, len(ids))
		for _, id := range ids {
			r := w.racks[id]
			pos := grid.Position{Row: r.HomeRow(), Col: r.HomeCol()}
			if w.gateMaps.DistanceTo(o.GateID(), pos) < 0 {
				continue
			}
			hasNeeded := false
			for itemID := range pending {
				if r.Stored(itemID) > 0 {
					hasNeeded = true
					break
				}
			}
			if hasNeeded {
				out = append(out, r)
			}
		}
		return out
	default:
		return nil
	}
}
