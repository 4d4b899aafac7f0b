// Package steps registers the Gherkin vocabulary for the warehouse
// seed-scenario feature suite against the domain's construction API,
// following the teacher's one-context-struct-per-feature pattern from
// test/bdd/steps/route_executor_steps.go.
package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/kestrel-robotics/warehouse-core/internal/domain/agent"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/facility"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/grid"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/inventory"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/order"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/shared"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/warehouse"
)

// warehouseContext accumulates the pieces a scenario declares (items,
// racks, gates, agents) and lazily builds the *warehouse.Warehouse the
// first time an order is submitted, since warehouse.New needs the
// complete static layout up front.
type warehouseContext struct {
	rows, cols int

	catalogue *inventory.Catalogue
	racks     map[int]*inventory.Rack
	gates     map[int]*facility.Gate
	agents    map[int]*agent.Agent

	w      *warehouse.Warehouse
	orders map[int]*order.Order

	lastErr error
}

func (c *warehouseContext) reset() {
	c.rows, c.cols = 0, 0
	c.catalogue = inventory.NewCatalogue()
	c.racks = make(map[int]*inventory.Rack)
	c.gates = make(map[int]*facility.Gate)
	c.agents = make(map[int]*agent.Agent)
	c.w = nil
	c.orders = make(map[int]*order.Order)
	c.lastErr = nil
}

func (c *warehouseContext) aGridOf(rows, cols int) error {
	c.rows, c.cols = rows, cols
	return nil
}

func (c *warehouseContext) anItemWeighing(id int, name string, weight float64) error {
	item, err := inventory.NewItem(id, name, weight)
	if err != nil {
		return err
	}
	return c.catalogue.Add(item)
}

func (c *warehouseContext) aRackAt(id, row, col int, capacity float64, itemID, qty int) error {
	rack, err := inventory.NewRack(id, row, col, 1.0, capacity, c.catalogue)
	if err != nil {
		return err
	}
	if err := rack.Add(itemID, qty); err != nil {
		return err
	}
	c.racks[id] = rack
	return nil
}

func (c *warehouseContext) aGateAt(id, row, col int) error {
	c.gates[id] = facility.NewGate(id, grid.Position{Row: row, Col: col})
	return nil
}

func directionFromWord(word string) (shared.Direction, error) {
	switch word {
	case "up":
		return shared.Up, nil
	case "right":
		return shared.Right, nil
	case "down":
		return shared.Down, nil
	case "left":
		return shared.Left, nil
	}
	return 0, fmt.Errorf("unknown direction %q", word)
}

func (c *warehouseContext) anAgentAt(id, row, col int, facing string, loadCapacity float64) error {
	dir, err := directionFromWord(facing)
	if err != nil {
		return err
	}
	a, err := agent.New(id, grid.Position{Row: row, Col: col}, dir, loadCapacity)
	if err != nil {
		return err
	}
	c.agents[id] = a
	return nil
}

// ensureWarehouse lazily constructs the live *warehouse.Warehouse from
// everything declared so far, the first time a scenario needs one.
func (c *warehouseContext) ensureWarehouse() error {
	if c.w != nil {
		return nil
	}
	g, err := grid.New(c.rows, c.cols)
	if err != nil {
		return err
	}
	racks := make([]*inventory.Rack, 0, len(c.racks))
	for _, r := range c.racks {
		racks = append(racks, r)
	}
	gates := make([]*facility.Gate, 0, len(c.gates))
	for _, gt := range c.gates {
		gates = append(gates, gt)
	}
	agents := make([]*agent.Agent, 0, len(c.agents))
	for _, a := range c.agents {
		agents = append(agents, a)
	}
	c.w = warehouse.New(g, c.catalogue, racks, gates, nil, agents, warehouse.Config{})
	return nil
}

func (c *warehouseContext) submitCollectOrder(agentID, orderID, gateID, itemID, qty int) error {
	return c.submitOrder(orderID, order.Collect, gateID, map[int]int{itemID: qty}, 0)
}

func (c *warehouseContext) submitCollectOrderTwoItems(agentID, orderID, gateID, item1 int, qty1, item2, qty2 int) error {
	return c.submitOrder(orderID, order.Collect, gateID, map[int]int{item1: qty1, item2: qty2}, 0)
}

func (c *warehouseContext) submitRefillOrder(agentID, orderID, gateID, rackID, itemID, qty int) error {
	return c.submitOrder(orderID, order.Refill, gateID, map[int]int{itemID: qty}, rackID)
}

func (c *warehouseContext) submitOrder(orderID int, kind order.Kind, gateID int, items map[int]int, refillRackID int) error {
	if err := c.ensureWarehouse(); err != nil {
		return err
	}
	o, err := order.New(orderID, kind, gateID, items, refillRackID)
	if err != nil {
		return err
	}
	c.lastErr = c.w.SubmitOrder(o)
	if c.lastErr == nil {
		c.orders[orderID] = o
	}
	return nil
}

func (c *warehouseContext) itemHasReservedAndAvailable(itemID, reserved, available int) error {
	item, ok := c.catalogue.Get(itemID)
	if !ok {
		return fmt.Errorf("item %d not declared", itemID)
	}
	if item.Reserved() != reserved {
		return fmt.Errorf("item %d: expected %d reserved, got %d", itemID, reserved, item.Reserved())
	}
	if item.Available() != available {
		return fmt.Errorf("item %d: expected %d available, got %d", itemID, available, item.Available())
	}
	return nil
}

func (c *warehouseContext) itemHasTotal(itemID, total int) error {
	item, ok := c.catalogue.Get(itemID)
	if !ok {
		return fmt.Errorf("item %d not declared", itemID)
	}
	if item.Total() != total {
		return fmt.Errorf("item %d: expected total %d, got %d", itemID, total, item.Total())
	}
	return nil
}

func (c *warehouseContext) theWarehouseRunsToCompletion(maxTicks int) error {
	if err := c.ensureWarehouse(); err != nil {
		return err
	}
	for i := 0; i < maxTicks; i++ {
		c.w.TickOnce()
		for _, err := range c.w.CheckInvariants() {
			return fmt.Errorf("tick %d: invariant violated: %v", c.w.Tick(), err)
		}
	}
	return nil
}

func (c *warehouseContext) orderIsFulfilled(orderID int) error {
	o, ok := c.orders[orderID]
	if !ok {
		return fmt.Errorf("order %d was never submitted", orderID)
	}
	if o.Status() != order.Fulfilled {
		return fmt.Errorf("order %d: expected fulfilled, got %v", orderID, o.Status())
	}
	return nil
}

func (c *warehouseContext) rackHoldsOfItem(rackID, qty, itemID int) error {
	rack, ok := c.racks[rackID]
	if !ok {
		return fmt.Errorf("rack %d not declared", rackID)
	}
	if rack.Stored(itemID) != qty {
		return fmt.Errorf("rack %d: expected %d of item %d, got %d", rackID, qty, itemID, rack.Stored(itemID))
	}
	return nil
}

func (c *warehouseContext) theSubmissionIsRejectedWith(code, excess string) error {
	if c.lastErr == nil {
		return fmt.Errorf("expected the last submission to be rejected, got no error")
	}
	verr, ok := c.lastErr.(*shared.ValidationError)
	if !ok {
		return fmt.Errorf("expected a *shared.ValidationError, got %T: %v", c.lastErr, c.lastErr)
	}
	if string(verr.Code) != code {
		return fmt.Errorf("expected code %q, got %q", code, verr.Code)
	}
	if verr.Args["excess"] != excess {
		return fmt.Errorf("expected excess %q, got %q", excess, verr.Args["excess"])
	}
	return nil
}

// theGateWasNeverDoubleBound checks that every declared gate has
// returned to idle: Gate.Bind refuses a second task while hasBound is
// set (facility.go), so a gate left bound here would mean a prior tick
// silently dropped that guard instead of the dwell completing normally.
func (c *warehouseContext) theGateWasNeverDoubleBound() error {
	for id, gt := range c.gates {
		if gt.IsBound() {
			return fmt.Errorf("gate %d is still bound after the run completed", id)
		}
	}
	return nil
}

// InitializeWarehouseScenario wires every Given/When/Then regex in
// features/seed_scenarios.feature to the methods above.
func InitializeWarehouseScenario(sc *godog.ScenarioContext) {
	c := &warehouseContext{}
	sc.Before(func(goCtx context.Context, s *godog.Scenario) (context.Context, error) {
		c.reset()
		return goCtx, nil
	})

	sc.Step(`^a grid of (\d+) rows and (\d+) columns$`, c.aGridOf)
	sc.Step(`^item (\d+) "([^"]*)" weighing (\d+)$`, c.anItemWeighing)
	sc.Step(`^a rack (\d+) at row (\d+) col (\d+) with capacity (\d+) holding item (\d+) quantity (\d+)$`, c.aRackAt)
	sc.Step(`^a gate (\d+) at row (\d+) col (\d+)$`, c.aGateAt)
	sc.Step(`^agent (\d+) at row (\d+) col (\d+) facing (\w+) with load capacity (\d+)$`, c.anAgentAt)
	sc.Step(`^agent (\d+) submits a collect order (\d+) at gate (\d+) for item (\d+) quantity (\d+) and item (\d+) quantity (\d+)$`, c.submitCollectOrderTwoItems)
	sc.Step(`^agent (\d+) submits a collect order (\d+) at gate (\d+) for item (\d+) quantity (\d+)$`, c.submitCollectOrder)
	sc.Step(`^agent (\d+) submits a refill order (\d+) at gate (\d+) into rack (\d+) for item (\d+) quantity (\d+)$`, c.submitRefillOrder)
	sc.Step(`^item (\d+) has (\d+) reserved and (\d+) available$`, c.itemHasReservedAndAvailable)
	sc.Step(`^item (\d+) has (\d+) total$`, c.itemHasTotal)
	sc.Step(`^the warehouse runs to completion within (\d+) ticks$`, c.theWarehouseRunsToCompletion)
	sc.Step(`^order (\d+) is fulfilled$`, c.orderIsFulfilled)
	sc.Step(`^rack (\d+) holds (\d+) of item (\d+)$`, c.rackHoldsOfItem)
	sc.Step(`^the submission is rejected with code "([^"]*)" and excess "([^"]*)"$`, c.theSubmissionIsRejectedWith)
	sc.Step(`^the gate was never double-bound$`, c.theGateWasNeverDoubleBound)
}
