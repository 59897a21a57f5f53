package anyseries

import "testing"

func TestDatasetCheck(t *testing.T) {
	ds := &Dataset{
		Refs:       []string{"a", "b", "c"},
		Labels:     []int{0, 1, 0},
		NumClasses: 2,
	}
	if err := ds.Check(); err != nil {
		t.Error(err)
	}

	ds.Labels = []int{0, 1}
	if err := ds.Check(); err == nil {
		t.Error("expected an error for a missing label")
	}

	ds.Labels = []int{0, 1, 2}
	if err := ds.Check(); err == nil {
		t.Error("expected an error for an out-of-range label")
	}

	ds.Labels = []int{0, 1, -1}
	if err := ds.Check(); err == nil {
		t.Error("expected an error for a negative label")
	}
}
