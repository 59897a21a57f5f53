package seriestrans

import (
	"math/rand"
	"sort"

	"github.com/unixpickle/anyvec"
)

// DefaultKeepFraction is the fraction of time steps kept
// by RandSampling when none is configured.
const DefaultKeepFraction = 0.8

// RandSampling drops a random subset of time steps from
// each sample and stretches the remainder back out to the
// full sequence length, repeating each kept step over the
// gap it covers.
type RandSampling struct {
	// KeepFraction is the fraction of time steps to keep.
	// If it is 0, DefaultKeepFraction is used.
	KeepFraction float64

	// Rand, if non-nil, is the source of randomness.
	// If it is nil, the global source is used.
	Rand *rand.Rand
}

// Transform resamples each sample of a packed batch along
// its own random subset of time steps.
func (r *RandSampling) Transform(samples anyvec.Vector, n, seqLen,
	channels int) anyvec.Vector {
	fraction := r.KeepFraction
	if fraction == 0 {
		fraction = DefaultKeepFraction
	}
	keep := int(fraction * float64(seqLen))
	if keep < 2 {
		keep = 2
	}
	if keep > seqLen {
		keep = seqLen
	}
	table := make([]int, 0, n*seqLen*channels)
	for s := 0; s < n; s++ {
		kept := permutation(r.Rand, seqLen)[:keep]
		sort.Ints(kept)
		base := s * seqLen * channels
		for t := 0; t < seqLen; t++ {
			src := kept[t*keep/seqLen]
			for ch := 0; ch < channels; ch++ {
				table = append(table, base+src*channels+ch)
			}
		}
	}
	return gather(samples, table)
}
