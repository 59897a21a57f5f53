package anyseries

import (
	"path/filepath"
	"testing"

	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvec32"
)

func TestMemoryLoader(t *testing.T) {
	loader := &MemoryLoader{
		Samples: map[string]anyvec.Vector{
			"good": anyvec32.MakeVectorData([]float32{1, 2, 3, 4}),
			"bad":  anyvec32.MakeVectorData([]float32{1, 2, 3}),
		},
		SeqLen:   2,
		Channels: 2,
	}

	vec, err := loader.Load("good")
	if err != nil {
		t.Fatal(err)
	}
	if vec.Len() != 4 {
		t.Errorf("sample has %d values, expected 4", vec.Len())
	}

	if _, err := loader.Load("missing"); err == nil {
		t.Error("expected an error for an unknown reference")
	}
	if _, err := loader.Load("bad"); err == nil {
		t.Error("expected an error for a mis-shaped sample")
	}
}

func TestDirLoader(t *testing.T) {
	dir := t.TempDir()
	sample := anyvec32.MakeVectorData([]float32{1, -2, 3, -4})
	if err := SaveSample(filepath.Join(dir, "good"), sample); err != nil {
		t.Fatal(err)
	}
	short := anyvec32.MakeVectorData([]float32{1, 2})
	if err := SaveSample(filepath.Join(dir, "bad"), short); err != nil {
		t.Fatal(err)
	}

	loader := &DirLoader{Dir: dir, SeqLen: 2, Channels: 2}

	vec, err := loader.Load("good")
	if err != nil {
		t.Fatal(err)
	}
	assertVectorsEqual(t, "sample", vec, sample)

	if _, err := loader.Load("missing"); err == nil {
		t.Error("expected an error for a missing file")
	}
	if _, err := loader.Load("bad"); err == nil {
		t.Error("expected an error for a mis-shaped sample")
	}
}
