//go:build !amd64 && !arm64

package eval

// Lanes is the batch width in float64 slots on targets without a known
// vector unit. The batched path degrades to unrolled scalar code.
const Lanes = 4
