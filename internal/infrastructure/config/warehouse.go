package config

// WarehouseConfig holds the free parameters the simulation core itself
// needs, both resolved from spec open questions (see DESIGN.md).
type WarehouseConfig struct {
	// DismissAfterTicks is how many consecutive dispatch attempts an order
	// with pending units may make no progress before it is dismissed
	// (§7 kind 2).
	DismissAfterTicks int `mapstructure:"dismiss_after_ticks" validate:"min=1"`

	// GateDwellTicks is the minimum number of ticks a task must occupy a
	// gate cell before it may unbind (§9 open question).
	GateDwellTicks int `mapstructure:"gate_dwell_ticks" validate:"min=1"`

	// StrictInvariants selects debug-build behaviour for the §8 invariant
	// checks that run after every tick: when true, any violation panics
	// the process (§7 "abort the process in debug builds"); when false
	// (release default) violations are only logged and the implicated
	// agents quarantined.
	StrictInvariants bool `mapstructure:"strict_invariants"`
}
