package inventory

import "fmt"

// RackStatus is the lifecycle of a rack within a single task (spec §3).
// Transitions are monotone within a task: idle -> allocated -> loaded ->
// idle (Offload), or allocated -> idle via Deallocate when the rack was
// never picked up.
type RackStatus int

const (
	RackIdle RackStatus = iota
	RackAllocated
	RackLoaded
)

func (s RackStatus) String() string {
	switch s {
	case RackIdle:
		return "IDLE"
	case RackAllocated:
		return "ALLOCATED"
	case RackLoaded:
		return "LOADED"
	default:
		return "UNKNOWN"
	}
}

// Rack is a movable shelf: identity, fixed home position, container
// weight, capacity, a mapping item -> stored units, and optional
// allocation to one agent (spec §3).
//
// Units physically present in the rack are tracked in two buckets:
// `stored` (present, unearmarked — available for a new task to reserve)
// and `reserved` (earmarked for an in-flight task's collect order, still
// physically in the rack until the task's bind-gate phase confirms
// removal). Moving a unit between these buckets does not change
// stored_weight — the item has not physically left the rack yet.
//
// Refill orders reserve rack *capacity* rather than item units, since the
// units being delivered do not exist in the warehouse yet (see
// reservedIncomingWeight, and DESIGN.md's resolution of spec §9's order
// lifecycle ambiguity between the two order kinds).
type Rack struct {
	id              int
	homeRow         int
	homeCol         int
	containerWeight float64
	capacity        float64
	stored          map[int]int // itemID -> present, unreserved units
	reserved        map[int]int // itemID -> units earmarked for a collect task
	storedWeight    float64
	reservedIncoming float64 // capacity earmarked for in-flight refill tasks
	status          RackStatus
	allocatedAgent  int
	hasAllocation   bool
	catalogue       *Catalogue
}

// Catalogue resolves item weights for rack stored-weight bookkeeping.
type Catalogue struct {
	items map[int]*Item
}

func NewCatalogue() *Catalogue { return &Catalogue{items: make(map[int]*Item)} }

func (c *Catalogue) Add(item *Item) error {
	if _, exists := c.items[item.ID()]; exists {
		return fmt.Errorf("duplicate item id %d", item.ID())
	}
	c.items[item.ID()] = item
	return nil
}

func (c *Catalogue) Get(id int) (*Item, bool) {
	it, ok := c.items[id]
	return it, ok
}

func (c *Catalogue) All() []*Item {
	out := make([]*Item, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, it)
	}
	return out
}

// NewRack creates an idle rack at (row, col) with the given container
// weight and storage capacity.
func NewRack(id, homeRow, homeCol int, containerWeight, capacity float64, catalogue *Catalogue) (*Rack, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("rack %d: capacity cannot be negative", id)
	}
	return &Rack{
		id:              id,
		homeRow:         homeRow,
		homeCol:         homeCol,
		containerWeight: containerWeight,
		capacity:        capacity,
		stored:          make(map[int]int),
		reserved:        make(map[int]int),
		catalogue:       catalogue,
	}, nil
}

func (r *Rack) ID() int                  { return r.id }
func (r *Rack) HomeRow() int             { return r.homeRow }
func (r *Rack) HomeCol() int             { return r.homeCol }
func (r *Rack) ContainerWeight() float64 { return r.containerWeight }
func (r *Rack) Capacity() float64        { return r.capacity }

// StoredWeight is the total physical weight currently in the rack
// (present + earmarked-for-removal units). Invariant: <= Capacity.
func (r *Rack) StoredWeight() float64 { return r.storedWeight }
func (r *Rack) Status() RackStatus    { return r.status }

// Stored returns the present (unreserved) units of itemID.
func (r *Rack) Stored(itemID int) int { return r.stored[itemID] }

// Reserved returns units of itemID earmarked for an in-flight collect
// task but not yet physically removed.
func (r *Rack) Reserved(itemID int) int { return r.reserved[itemID] }

// AvailableCapacity is the remaining weight budget for a refill delivery,
// after subtracting both physically stored weight and weight already
// earmarked for other in-flight refill tasks.
func (r *Rack) AvailableCapacity() float64 {
	return r.capacity - r.storedWeight - r.reservedIncoming
}

// IsAllocated reports whether the rack currently belongs to an agent
// (allocated or loaded).
func (r *Rack) IsAllocated() bool { return r.hasAllocation }

// AllocatedAgent returns the allocating agent id and whether one is set.
func (r *Rack) AllocatedAgent() (int, bool) { return r.allocatedAgent, r.hasAllocation }

// Items returns the item ids currently present (unreserved) in the rack.
func (r *Rack) Items() []int {
	out := make([]int, 0, len(r.stored))
	for id, units := range r.stored {
		if units > 0 {
			out = append(out, id)
		}
	}
	return out
}

// Add changes the present-bucket stored quantity of itemID by delta and
// mirrors the change into the catalogue's Item.total (spec §4.3).
// Positive delta stocks fresh units (warehouse init, refill delivery);
// negative delta removes physically present (unreserved) units. Requires
// the resulting stored_weight to stay within [0, capacity].
func (r *Rack) Add(itemID int, delta int) error {
	if delta == 0 {
		return nil
	}
	item, ok := r.catalogue.Get(itemID)
	if !ok {
		return fmt.Errorf("rack %d: unknown item %d", r.id, itemID)
	}

	newStored := r.stored[itemID] + delta
	if newStored < 0 {
		return fmt.Errorf("rack %d: present units of item %d cannot go negative", r.id, itemID)
	}
	newWeight := r.storedWeight + float64(delta)*item.Weight()
	if newWeight < -1e-9 || newWeight > r.capacity+1e-9 {
		return fmt.Errorf("rack %d: resulting stored_weight %.2f out of [0, %.2f]", r.id, newWeight, r.capacity)
	}

	if err := item.Add(delta); err != nil {
		return err
	}

	r.stored[itemID] = newStored
	if r.stored[itemID] == 0 {
		delete(r.stored, itemID)
	}
	if newWeight < 0 {
		newWeight = 0
	}
	r.storedWeight = newWeight
	return nil
}

// Reserve earmarks q present units of itemID for an in-flight collect
// task (moves them from the present bucket to the reserved bucket;
// stored_weight is unchanged since the units have not left the rack).
// Negative q releases a reservation without confirming removal (used
// when a task is abandoned).
func (r *Rack) Reserve(itemID int, q int) error {
	if q > 0 {
		if r.stored[itemID] < q {
			return fmt.Errorf("rack %d: cannot reserve %d of item %d, only %d present", r.id, q, itemID, r.stored[itemID])
		}
		r.stored[itemID] -= q
		r.reserved[itemID] += q
	} else if q < 0 {
		release := -q
		if r.reserved[itemID] < release {
			return fmt.Errorf("rack %d: cannot release %d of item %d, only %d reserved", r.id, release, itemID, r.reserved[itemID])
		}
		r.reserved[itemID] -= release
		r.stored[itemID] += release
	}
	if r.stored[itemID] == 0 {
		delete(r.stored, itemID)
	}
	if r.reserved[itemID] == 0 {
		delete(r.reserved, itemID)
	}
	return nil
}

// ConfirmReservation physically removes q previously-reserved units of
// itemID (collect task bind-gate execution, spec §4.6 phase 4): the
// reserved bucket shrinks, stored_weight drops, and Item.total and
// Item.reserved both decrease (the units have shipped out of the
// warehouse, consuming the order-level reservation made at Activate).
func (r *Rack) ConfirmReservation(itemID int, q int) error {
	if q <= 0 {
		return nil
	}
	if r.reserved[itemID] < q {
		return fmt.Errorf("rack %d: cannot confirm %d of item %d, only %d reserved", r.id, q, itemID, r.reserved[itemID])
	}
	item, ok := r.catalogue.Get(itemID)
	if !ok {
		return fmt.Errorf("rack %d: unknown item %d", r.id, itemID)
	}
	if err := item.Ship(q); err != nil {
		return err
	}
	r.reserved[itemID] -= q
	if r.reserved[itemID] == 0 {
		delete(r.reserved, itemID)
	}
	r.storedWeight -= float64(q) * item.Weight()
	if r.storedWeight < 0 {
		r.storedWeight = 0
	}
	return nil
}

// ReserveCapacity earmarks weight for an in-flight refill task, so a
// second task cannot overcommit the rack's remaining headroom.
func (r *Rack) ReserveCapacity(weight float64) error {
	if weight <= 0 {
		return nil
	}
	if r.AvailableCapacity()+1e-9 < weight {
		return fmt.Errorf("rack %d: cannot reserve %.2f capacity, only %.2f available", r.id, weight, r.AvailableCapacity())
	}
	r.reservedIncoming += weight
	return nil
}

// ReleaseCapacity releases a capacity reservation without delivering
// (task abandoned before reaching bind-gate).
func (r *Rack) ReleaseCapacity(weight float64) {
	r.reservedIncoming -= weight
	if r.reservedIncoming < 0 {
		r.reservedIncoming = 0
	}
}

// ConfirmRefill physically delivers q units of itemID into the rack
// (refill task bind-gate execution), releasing the matching capacity
// reservation.
func (r *Rack) ConfirmRefill(itemID int, q int) error {
	if q <= 0 {
		return nil
	}
	item, ok := r.catalogue.Get(itemID)
	if !ok {
		return fmt.Errorf("rack %d: unknown item %d", r.id, itemID)
	}
	if err := r.Add(itemID, q); err != nil {
		return err
	}
	r.ReleaseCapacity(float64(q) * item.Weight())
	return nil
}

// Allocate assigns the rack to agentID (idle -> allocated). Fails if
// already allocated to a different agent.
func (r *Rack) Allocate(agentID int) error {
	if r.hasAllocation && r.allocatedAgent != agentID {
		return fmt.Errorf("rack %d: already allocated to agent %d", r.id, r.allocatedAgent)
	}
	r.allocatedAgent = agentID
	r.hasAllocation = true
	if r.status == RackIdle {
		r.status = RackAllocated
	}
	return nil
}

// Load transitions allocated -> loaded, picking the rack up off its home
// cell (spec §4.6 task phase 2).
func (r *Rack) Load() error {
	if r.status != RackAllocated {
		return fmt.Errorf("rack %d: cannot load from status %s", r.id, r.status)
	}
	r.status = RackLoaded
	return nil
}

// Offload transitions loaded -> idle, releasing the allocation (spec §4.6
// task phase 7, once the task is fully done).
func (r *Rack) Offload() error {
	if r.status != RackLoaded {
		return fmt.Errorf("rack %d: cannot offload from status %s", r.id, r.status)
	}
	r.status = RackIdle
	r.hasAllocation = false
	r.allocatedAgent = 0
	return nil
}

// Deallocate releases the allocation without a load/offload transition —
// used when a task is abandoned before the rack was ever picked up.
func (r *Rack) Deallocate() {
	if r.status == RackAllocated {
		r.status = RackIdle
	}
	r.hasAllocation = false
	r.allocatedAgent = 0
}
