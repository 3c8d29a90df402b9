// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package bitset provides the fixed-capacity slot allocator used to hand
// out texture units and uniform-buffer binding points during one draw call.
package bitset

import (
	"fmt"
	"math/bits"
)

// Set is a fixed-capacity set of claimed slot indices.
// The zero value has no capacity; use New.
type Set struct {
	words []uint64
	cap   int
	used  int
}

// New returns an empty set able to hold indices in [0, capacity).
func New(capacity int) *Set {
	if capacity < 0 {
		capacity = 0
	}
	return &Set{
		words: make([]uint64, (capacity+63)/64),
		cap:   capacity,
	}
}

// Capacity returns the number of slots the set covers.
func (s *Set) Capacity() int { return s.cap }

// Len returns the number of claimed slots.
func (s *Set) Len() int { return s.used }

// IsUsed reports whether slot i has been claimed.
func (s *Set) IsUsed(i int) bool {
	s.check(i)
	return s.words[i/64]&(1<<(uint(i)%64)) != 0
}

// Use claims slot i. Claiming an already claimed slot is a no-op.
func (s *Set) Use(i int) {
	s.check(i)
	b := uint64(1) << (uint(i) % 64)
	if s.words[i/64]&b == 0 {
		s.words[i/64] |= b
		s.used++
	}
}

// Unused returns the lowest unclaimed slot.
// It fails only when every slot is claimed.
func (s *Set) Unused() (index int, ok bool) {
	if s.used == s.cap {
		return 0, false
	}
	for i, w := range s.words {
		if w == ^uint64(0) {
			continue
		}
		index = i*64 + bits.TrailingZeros64(^w)
		if index >= s.cap {
			return 0, false
		}
		return index, true
	}
	return 0, false
}

// Clear releases every slot.
func (s *Set) Clear() {
	clear(s.words)
	s.used = 0
}

func (s *Set) check(i int) {
	if i < 0 || i >= s.cap {
		panic(fmt.Sprintf("bitset: slot %d out of range [0, %d)", i, s.cap))
	}
}
