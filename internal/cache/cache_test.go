package cache

import (
	"slices"
	"testing"
)

func TestGetOrCreateCreatesOnce(t *testing.T) {
	c := New[string, int](4, nil)
	calls := 0
	create := func() int {
		calls++
		return 7
	}
	for range 3 {
		if v := c.GetOrCreate("a", create); v != 7 {
			t.Fatalf("GetOrCreate = %d, want 7", v)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
}

func TestInsertDoesNotEvict(t *testing.T) {
	var evicted []int
	c := New(2, func(_ int, v int) { evicted = append(evicted, v) })
	for i := range 5 {
		c.GetOrCreate(i, func() int { return i })
	}
	if c.Len() != 5 {
		t.Fatalf("Len = %d, want 5", c.Len())
	}
	if len(evicted) != 0 {
		t.Fatalf("evicted %v before Trim", evicted)
	}
}

func TestTrimEvictsLeastRecentlyUsed(t *testing.T) {
	var evicted []int
	c := New(2, func(k int, _ int) { evicted = append(evicted, k) })
	for i := range 4 {
		c.GetOrCreate(i, func() int { return i * 10 })
	}
	// Touch 0 so that 1 and 2 are the oldest.
	if _, ok := c.Get(0); !ok {
		t.Fatal("Get(0) missing")
	}

	if n := c.Trim(); n != 2 {
		t.Fatalf("Trim = %d, want 2", n)
	}
	if want := []int{1, 2}; !slices.Equal(evicted, want) {
		t.Errorf("evicted %v, want %v", evicted, want)
	}
	for _, k := range []int{0, 3} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("Get(%d) missing after Trim", k)
		}
	}
}

func TestTrimUnlimited(t *testing.T) {
	c := New[int, int](0, func(int, int) { t.Fatal("unexpected eviction") })
	for i := range 10 {
		c.GetOrCreate(i, func() int { return i })
	}
	if n := c.Trim(); n != 0 {
		t.Errorf("Trim = %d, want 0", n)
	}
}

func TestDeleteSkipsCallback(t *testing.T) {
	c := New[string, int](1, func(string, int) { t.Fatal("unexpected eviction") })
	c.GetOrCreate("a", func() int { return 1 })
	if !c.Delete("a") {
		t.Fatal("Delete(a) = false")
	}
	if c.Delete("a") {
		t.Error("second Delete(a) = true")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestPurge(t *testing.T) {
	n := 0
	c := New(8, func(string, int) { n++ })
	c.GetOrCreate("a", func() int { return 1 })
	c.GetOrCreate("b", func() int { return 2 })
	c.Purge()
	if n != 2 || c.Len() != 0 {
		t.Errorf("Purge: evicted %d, Len %d; want 2, 0", n, c.Len())
	}
}

func TestLRUListOrder(t *testing.T) {
	l := newLRUList[int]()
	a := l.PushFront(1)
	l.PushFront(2)
	l.PushFront(3)
	l.MoveToFront(a)

	if k, _ := l.Oldest(); k != 2 {
		t.Fatalf("Oldest = %d, want 2", k)
	}
	var order []int
	for {
		k, ok := l.RemoveOldest()
		if !ok {
			break
		}
		order = append(order, k)
	}
	if want := []int{2, 3, 1}; !slices.Equal(order, want) {
		t.Errorf("removal order %v, want %v", order, want)
	}
	if l.Len() != 0 {
		t.Errorf("Len = %d, want 0", l.Len())
	}
}
