package seriestrans

import (
	"math/rand"

	"github.com/unixpickle/anyvec"
)

// Rotation reorients multi-channel signals by permuting
// the channels and flipping the sign of a random subset
// of them, approximating a change in sensor orientation.
//
// The same reorientation is applied to every sample in
// the batch.
type Rotation struct {
	// Rand, if non-nil, is the source of randomness.
	// If it is nil, the global source is used.
	Rand *rand.Rand
}

// Transform reorients a packed batch.
func (r *Rotation) Transform(samples anyvec.Vector, n, seqLen,
	channels int) anyvec.Vector {
	perm := permutation(r.Rand, channels)
	table := make([]int, 0, n*seqLen*channels)
	for s := 0; s < n; s++ {
		for t := 0; t < seqLen; t++ {
			base := (s*seqLen + t) * channels
			for ch := 0; ch < channels; ch++ {
				table = append(table, base+perm[ch])
			}
		}
	}
	out := gather(samples, table)

	signs := make([]float64, channels)
	for i := range signs {
		if intn(r.Rand, 2) == 1 {
			signs[i] = -1
		} else {
			signs[i] = 1
		}
	}
	c := out.Creator()
	anyvec.ScaleRepeated(out, c.MakeVectorData(c.MakeNumericList(signs)))
	return out
}
