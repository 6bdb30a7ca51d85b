package pool

import (
	"errors"
	"testing"
)

func TestArenaAllocateAppends(t *testing.T) {
	var a Arena[string]
	for i, want := range []int{0, 1, 2} {
		if got := a.Allocate("x"); got != want {
			t.Errorf("Allocate #%d = %d, expected %d", i, got, want)
		}
	}
	if a.Len() != 3 || a.Count() != 3 {
		t.Errorf("Len/Count = %d/%d, expected 3/3", a.Len(), a.Count())
	}
}

func TestArenaReusesMostRecentlyFreed(t *testing.T) {
	var a Arena[int]
	for i := 0; i < 4; i++ {
		a.Allocate(i)
	}
	if err := a.Release(1); err != nil {
		t.Fatalf("Release(1) failed: %v", err)
	}
	if err := a.Release(3); err != nil {
		t.Fatalf("Release(3) failed: %v", err)
	}

	if got := a.Allocate(30); got != 3 {
		t.Errorf("first reuse = %d, expected 3", got)
	}
	if got := a.Allocate(10); got != 1 {
		t.Errorf("second reuse = %d, expected 1", got)
	}
	if got := a.Allocate(40); got != 4 {
		t.Errorf("append after free-list drained = %d, expected 4", got)
	}
	if v, _ := a.Get(1); *v != 10 {
		t.Errorf("Get(1) = %d, expected 10", *v)
	}
}

func TestArenaReleaseErrors(t *testing.T) {
	var a Arena[int]
	a.Allocate(7)

	if err := a.Release(5); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Release(5) = %v, expected ErrOutOfRange", err)
	}
	if err := a.Release(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Release(-1) = %v, expected ErrOutOfRange", err)
	}
	if err := a.Release(0); err != nil {
		t.Fatalf("Release(0) failed: %v", err)
	}
	if err := a.Release(0); !errors.Is(err, ErrNotLive) {
		t.Errorf("double Release = %v, expected ErrNotLive", err)
	}
	if a.Count() != 0 {
		t.Errorf("Count() = %d, expected 0", a.Count())
	}
}

func TestArenaGetAndAt(t *testing.T) {
	var a Arena[int]
	a.Allocate(5)
	_ = a.Release(0)

	if _, ok := a.Get(0); ok {
		t.Error("Get on a freed slot should fail")
	}
	if v := a.At(0); v == nil || *v != 5 {
		t.Error("At should still expose the freed record")
	}
	if a.At(3) != nil {
		t.Error("At out of range should be nil")
	}
}

func TestArenaRevive(t *testing.T) {
	var a Arena[int]
	a.Allocate(1)
	a.Allocate(2)
	_ = a.Release(0)
	_ = a.Release(1)

	if !a.Revive(0) {
		t.Fatal("Revive(0) should succeed")
	}
	if a.Revive(0) {
		t.Error("Revive on a live slot should fail")
	}
	if got := a.Allocate(9); got != 1 {
		t.Errorf("Allocate after revive = %d, expected 1", got)
	}
	if got := a.Allocate(9); got != 2 {
		t.Errorf("revived slot must leave the free-list, got %d", got)
	}
}

func TestArenaEachSkipsFree(t *testing.T) {
	var a Arena[int]
	for i := 0; i < 5; i++ {
		a.Allocate(i)
	}
	_ = a.Release(2)

	var seen []int
	a.Each(func(i int, v *int) bool {
		seen = append(seen, *v)
		return i < 3
	})
	want := []int{0, 1, 3}
	if len(seen) != len(want) {
		t.Fatalf("Each visited %v, expected %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("Each visited %v, expected %v", seen, want)
		}
	}

	a.Reset()
	if a.Len() != 0 || a.Count() != 0 {
		t.Error("Reset should empty the arena")
	}
}
