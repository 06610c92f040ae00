package cmp_test

import (
	"testing"

	"github.com/wovenml/weavefab/pkg/utils/cmp"
)

func TestSliceEq(t *testing.T) {
	t.Run("slices with same values in same order are equal", func(t *testing.T) {
		if !cmp.SliceEq([]string{"a", "b", "c"}, []string{"a", "b", "c"}) {
			t.Error("equal slices are detected as not equal")
		}
	})
	t.Run("slices with same values in different order are not equal", func(t *testing.T) {
		if cmp.SliceEq([]string{"a", "b", "c"}, []string{"c", "b", "a"}) {
			t.Error("reordered slices are detected as equal")
		}
	})
	t.Run("slices with different length are not equal", func(t *testing.T) {
		if cmp.SliceEq([]string{"a", "b"}, []string{"a", "b", "c"}) {
			t.Error("slices with different length are detected as equal")
		}
	})
	t.Run("empty slices are equal", func(t *testing.T) {
		if !cmp.SliceEq([]string{}, []string{}) {
			t.Error("empty slices are detected as not equal")
		}
	})
}

func TestSliceContentEq(t *testing.T) {
	t.Run("slices with same values in different order are equal", func(t *testing.T) {
		if !cmp.SliceContentEq([]int{1, 2, 3}, []int{3, 1, 2}) {
			t.Error("reordered slices are detected as not content-equal")
		}
	})
	t.Run("multiplicities count", func(t *testing.T) {
		if cmp.SliceContentEq([]int{1, 1, 2}, []int{1, 2, 2}) {
			t.Error("slices with different multiplicities are detected as content-equal")
		}
	})
}

func TestMapEq(t *testing.T) {
	t.Run("maps with same key-value pairs are equal", func(t *testing.T) {
		a := map[string]int{"x": 1, "y": 2}
		b := map[string]int{"y": 2, "x": 1}
		if !cmp.MapEq(a, b) {
			t.Error("equal maps are detected as not equal")
		}
	})
	t.Run("maps missing a key are not equal", func(t *testing.T) {
		a := map[string]int{"x": 1, "y": 2}
		b := map[string]int{"x": 1}
		if cmp.MapEq(a, b) || cmp.MapEq(b, a) {
			t.Error("maps with different keys are detected as equal")
		}
	})
}

func TestMapGeqWith(t *testing.T) {
	eq := func(a, b int) bool { return a == b }

	t.Run("a map is superset of its subset", func(t *testing.T) {
		a := map[string]int{"x": 1, "y": 2, "z": 3}
		b := map[string]int{"x": 1, "z": 3}
		if !cmp.MapGeqWith(a, b, eq) {
			t.Error("superset is not detected")
		}
	})
	t.Run("a map is not superset when a value differs", func(t *testing.T) {
		a := map[string]int{"x": 1, "y": 2}
		b := map[string]int{"x": 42}
		if cmp.MapGeqWith(a, b, eq) {
			t.Error("superset is detected, unexpectedly")
		}
	})
}
