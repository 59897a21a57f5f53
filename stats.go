package anyseries

import (
	"errors"
	"strings"

	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvecsave"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

func init() {
	var s Stats
	serializer.RegisterTypedDeserializer(s.SerializerType(), DeserializeStats)
}

// ErrPartition is the error for fitting statistics on a
// dataset that is not a training partition.
var ErrPartition = errors.New("statistics require a training partition")

// Stats holds per-position normalization statistics for a
// dataset of packed sequences.
//
// Std is the mean squared deviation from the mean, not
// its square root.
// This matches the reference pipeline the statistics were
// historically produced by, so stats fitted there remain
// interchangeable with stats fitted here.
type Stats struct {
	Mean anyvec.Vector
	Std  anyvec.Vector
}

// DeserializeStats deserializes a Stats.
func DeserializeStats(d []byte) (*Stats, error) {
	var mean, std *anyvecsave.S
	if err := serializer.DeserializeAny(d, &mean, &std); err != nil {
		return nil, essentials.AddCtx("deserialize Stats", err)
	}
	return &Stats{Mean: mean.Vector, Std: std.Vector}, nil
}

// Normalize turns every sample in a packed batch x into
// (x - mean) / std, in place.
// The batch length must be a multiple of the statistics
// length.
func (s *Stats) Normalize(batch anyvec.Vector) {
	c := batch.Creator()
	negMean := s.Mean.Copy()
	negMean.Scale(c.MakeNumeric(-1))
	anyvec.AddRepeated(batch, negMean)
	invStd := s.Std.Copy()
	anyvec.Pow(invStd, c.MakeNumeric(-1))
	anyvec.ScaleRepeated(batch, invStd)
}

// SerializerType returns the unique ID used to serialize
// a Stats with the serializer package.
func (s *Stats) SerializerType() string {
	return "github.com/unixpickle/anyseries.Stats"
}

// Serialize serializes the Stats.
func (s *Stats) Serialize() ([]byte, error) {
	return serializer.SerializeAny(
		&anyvecsave.S{Vector: s.Mean},
		&anyvecsave.S{Vector: s.Std},
	)
}

// Fit measures the mean and mean squared deviation of
// every sequence position over the full dataset, installs
// the result as the Generator's active statistics, and
// returns it.
//
// The dataset's partition tag must contain "train".
//
// Fit makes two passes over the dataset, so the optional
// StatusFunc is called once per loaded sample with the
// number of loads done so far out of 2*Data.Len().
func (g *Generator) Fit(status func(done, total int)) (*Stats, error) {
	if !strings.Contains(g.Data.Partition, "train") {
		return nil, ErrPartition
	}
	n := g.Data.Len()
	if n == 0 {
		return nil, errors.New("fit stats: empty dataset")
	}
	size := g.SeqLen * g.Channels
	total := 2 * n

	mean := g.Creator.MakeVector(size)
	for i, ref := range g.Data.Refs {
		vec, err := g.Loader.Load(ref)
		if err != nil {
			return nil, essentials.AddCtx("fit stats", err)
		}
		mean.Add(vec)
		if status != nil {
			status(i+1, total)
		}
	}
	mean.Scale(g.Creator.MakeNumeric(1 / float64(n)))

	std := g.Creator.MakeVector(size)
	for i, ref := range g.Data.Refs {
		vec, err := g.Loader.Load(ref)
		if err != nil {
			return nil, essentials.AddCtx("fit stats", err)
		}
		diff := vec.Copy()
		diff.Sub(mean)
		diff.Mul(diff.Copy())
		std.Add(diff)
		if status != nil {
			status(n+i+1, total)
		}
	}
	std.Scale(g.Creator.MakeNumeric(1 / float64(n)))

	g.Stats = &Stats{Mean: mean, Std: std}
	return g.Stats, nil
}
