//go:build amd64

package eval

// Lanes is the batch width in float64 slots. Eight doubles span one AVX-512
// register or two unrolled AVX2 registers; the compiler keeps the lane
// arrays in vector registers for the hot loop.
const Lanes = 8
