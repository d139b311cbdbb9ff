//go:build arm64

package eval

// Lanes is the batch width in float64 slots. NEON registers hold two
// doubles; four lanes give the compiler a pair to schedule.
const Lanes = 4
