// Package seriestrans provides stock signal transforms
// for augmenting batches of time-series samples.
//
// Every transform implements anyseries.Transform, leaves
// its input untouched, and keeps the packed shape of the
// batch.
package seriestrans

import (
	"math/rand"

	"github.com/unixpickle/anyvec"
)

// gather builds a new vector whose i-th value is the
// table[i]-th value of the source.
func gather(samples anyvec.Vector, table []int) anyvec.Vector {
	c := samples.Creator()
	mapper := c.MakeMapper(samples.Len(), table)
	out := c.MakeVector(len(table))
	mapper.Map(samples, out)
	return out
}

func intn(r *rand.Rand, n int) int {
	if r != nil {
		return r.Intn(n)
	}
	return rand.Intn(n)
}

func normFloat(r *rand.Rand) float64 {
	if r != nil {
		return r.NormFloat64()
	}
	return rand.NormFloat64()
}

func permutation(r *rand.Rand, n int) []int {
	if r != nil {
		return r.Perm(n)
	}
	return rand.Perm(n)
}
