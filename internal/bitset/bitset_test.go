// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bitset

import "testing"

func TestNew(t *testing.T) {
	for _, n := range [...]int{0, 1, 16, 63, 64, 65, 192} {
		s := New(n)
		if have := s.Capacity(); have != n {
			t.Fatalf("Capacity:\nhave %d\nwant %d", have, n)
		}
		if have := s.Len(); have != 0 {
			t.Fatalf("Len:\nhave %d\nwant 0", have)
		}
	}
}

func TestUnusedOrder(t *testing.T) {
	s := New(70)
	for want := 0; want < 70; want++ {
		i, ok := s.Unused()
		if !ok {
			t.Fatalf("Unused: unexpected exhaustion at %d", want)
		}
		if i != want {
			t.Fatalf("Unused:\nhave %d\nwant %d", i, want)
		}
		s.Use(i)
	}
	if _, ok := s.Unused(); ok {
		t.Fatal("Unused: expected exhaustion")
	}
	if have := s.Len(); have != 70 {
		t.Fatalf("Len:\nhave %d\nwant 70", have)
	}
}

func TestUseSparse(t *testing.T) {
	s := New(8)
	s.Use(0)
	s.Use(1)
	s.Use(3)
	s.Use(3)
	if have := s.Len(); have != 3 {
		t.Fatalf("Len:\nhave %d\nwant 3", have)
	}
	i, ok := s.Unused()
	if !ok || i != 2 {
		t.Fatalf("Unused:\nhave %d, %t\nwant 2, true", i, ok)
	}
	if !s.IsUsed(3) || s.IsUsed(2) {
		t.Fatal("IsUsed: wrong membership")
	}
}

func TestClear(t *testing.T) {
	s := New(4)
	for i := range 4 {
		s.Use(i)
	}
	s.Clear()
	if have := s.Len(); have != 0 {
		t.Fatalf("Len after Clear:\nhave %d\nwant 0", have)
	}
	if i, ok := s.Unused(); !ok || i != 0 {
		t.Fatalf("Unused after Clear:\nhave %d, %t\nwant 0, true", i, ok)
	}
}

func TestZeroCapacity(t *testing.T) {
	s := New(0)
	if _, ok := s.Unused(); ok {
		t.Fatal("Unused: expected no slot in an empty set")
	}
}

func TestOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Use: expected panic for out of range slot")
		}
	}()
	New(4).Use(4)
}
