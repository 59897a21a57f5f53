package anyseries

import (
	"fmt"
	"path/filepath"

	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvecsave"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

// A MemoryLoader resolves sample references against an
// in-memory map.
// It is handy for tests and for datasets small enough to
// keep resident.
type MemoryLoader struct {
	Samples map[string]anyvec.Vector

	// SeqLen and Channels give the expected shape of every
	// sample.
	SeqLen   int
	Channels int
}

// Load returns the sample for a reference.
func (m *MemoryLoader) Load(ref string) (anyvec.Vector, error) {
	vec, ok := m.Samples[ref]
	if !ok {
		return nil, fmt.Errorf("load sample: no such sample: %s", ref)
	}
	if vec.Len() != m.SeqLen*m.Channels {
		return nil, fmt.Errorf("load sample: %s has %d values, expected %d",
			ref, vec.Len(), m.SeqLen*m.Channels)
	}
	return vec, nil
}

// A DirLoader resolves sample references as file names in
// a directory, where each file was written by SaveSample.
type DirLoader struct {
	Dir string

	// SeqLen and Channels give the expected shape of every
	// sample.
	SeqLen   int
	Channels int
}

// Load reads and decodes the sample for a reference.
func (d *DirLoader) Load(ref string) (anyvec.Vector, error) {
	var s *anyvecsave.S
	if err := serializer.LoadAny(filepath.Join(d.Dir, ref), &s); err != nil {
		return nil, essentials.AddCtx("load sample "+ref, err)
	}
	if s.Vector.Len() != d.SeqLen*d.Channels {
		return nil, fmt.Errorf("load sample: %s has %d values, expected %d",
			ref, s.Vector.Len(), d.SeqLen*d.Channels)
	}
	return s.Vector, nil
}

// SaveSample writes a packed sample to a file so that a
// DirLoader can read it back.
func SaveSample(path string, sample anyvec.Vector) error {
	if err := serializer.SaveAny(path, &anyvecsave.S{Vector: sample}); err != nil {
		return essentials.AddCtx("save sample", err)
	}
	return nil
}
