// Package pool provides a slot arena: records live in a growable slice, freed
// slots are tagged and pushed onto a free-list, and allocation reuses the most
// recently freed slot before appending. Indices stay stable for the lifetime
// of a record so they can be used as handles.
package pool

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned for an index outside the arena's storage.
	ErrOutOfRange = errors.New("pool: index out of range")
	// ErrNotLive is returned when releasing a slot that is already free.
	ErrNotLive = errors.New("pool: slot is not live")
)

type slot[T any] struct {
	val  T
	live bool
}

// Arena stores records of type T in stable slots.
type Arena[T any] struct {
	slots []slot[T]
	free  []int // LIFO
}

// Allocate stores v and returns its slot index.
func (a *Arena[T]) Allocate(v T) int {
	if n := len(a.free); n > 0 {
		i := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[i] = slot[T]{val: v, live: true}
		return i
	}
	a.slots = append(a.slots, slot[T]{val: v, live: true})
	return len(a.slots) - 1
}

// Release frees slot i. The stored value is kept until the slot is reused
// so callers can still read its last state through At.
func (a *Arena[T]) Release(i int) error {
	if i < 0 || i >= len(a.slots) {
		return fmt.Errorf("%w: %d (len %d)", ErrOutOfRange, i, len(a.slots))
	}
	if !a.slots[i].live {
		return fmt.Errorf("%w: %d", ErrNotLive, i)
	}
	a.slots[i].live = false
	a.free = append(a.free, i)
	return nil
}

// Revive marks a freed slot live again without changing its value.
// It reports false if i is out of range or already live.
func (a *Arena[T]) Revive(i int) bool {
	if i < 0 || i >= len(a.slots) || a.slots[i].live {
		return false
	}
	for j := len(a.free) - 1; j >= 0; j-- {
		if a.free[j] == i {
			a.free = append(a.free[:j], a.free[j+1:]...)
			break
		}
	}
	a.slots[i].live = true
	return true
}

// Get returns a pointer to the live record at i.
func (a *Arena[T]) Get(i int) (*T, bool) {
	if i < 0 || i >= len(a.slots) || !a.slots[i].live {
		return nil, false
	}
	return &a.slots[i].val, true
}

// At returns a pointer to the record at i whether or not it is live.
// It returns nil for an out-of-range index.
func (a *Arena[T]) At(i int) *T {
	if i < 0 || i >= len(a.slots) {
		return nil
	}
	return &a.slots[i].val
}

// Live reports whether slot i holds a live record.
func (a *Arena[T]) Live(i int) bool {
	return i >= 0 && i < len(a.slots) && a.slots[i].live
}

// Len returns the number of slots, live or free.
func (a *Arena[T]) Len() int {
	return len(a.slots)
}

// Count returns the number of live records.
func (a *Arena[T]) Count() int {
	return len(a.slots) - len(a.free)
}

// Each calls fn for every live record in index order until fn returns false.
// Records allocated during iteration into appended slots are visited too.
func (a *Arena[T]) Each(fn func(i int, v *T) bool) {
	for i := 0; i < len(a.slots); i++ {
		if !a.slots[i].live {
			continue
		}
		if !fn(i, &a.slots[i].val) {
			return
		}
	}
}

// Reset drops every record.
func (a *Arena[T]) Reset() {
	a.slots = a.slots[:0]
	a.free = a.free[:0]
}
