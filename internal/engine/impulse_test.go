package engine

import (
	"sync"
	"testing"
)

func TestImpulseDirectionLastWriterWins(t *testing.T) {
	var in Impulses

	in.SetDirection(-1)
	in.SetDirection(1)

	if got := in.TakeDirection(); got != 1 {
		t.Errorf("TakeDirection() = %d, expected 1", got)
	}
	if got := in.TakeDirection(); got != 0 {
		t.Errorf("second TakeDirection() = %d, expected 0 (slot cleared)", got)
	}
}

func TestImpulseDirectionNormalized(t *testing.T) {
	var in Impulses

	tests := []struct {
		dir      int
		expected int
	}{
		{-7, -1},
		{0, 0},
		{42, 1},
	}
	for _, tc := range tests {
		in.SetDirection(tc.dir)
		if got := in.TakeDirection(); got != tc.expected {
			t.Errorf("SetDirection(%d) then TakeDirection() = %d, expected %d", tc.dir, got, tc.expected)
		}
	}
}

func TestImpulseFireCoalesces(t *testing.T) {
	var in Impulses

	in.Fire()
	in.Fire()
	in.Fire()

	if !in.TakeFire() {
		t.Fatal("TakeFire() should report the pending shot")
	}
	if in.TakeFire() {
		t.Error("repeated presses must yield a single shot")
	}
}

func TestImpulseDrain(t *testing.T) {
	var in Impulses
	in.SetDirection(-1)
	in.Fire()

	in.Drain()

	if in.TakeDirection() != 0 || in.TakeFire() {
		t.Error("Drain() should clear both slots")
	}
}

func TestImpulseConcurrentWriters(t *testing.T) {
	var in Impulses
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				if i%2 == 0 {
					in.SetDirection(-1)
				} else {
					in.SetDirection(1)
				}
				in.Fire()
			}
		}(i)
	}
	wg.Wait()

	dir := in.TakeDirection()
	if dir != -1 && dir != 1 {
		t.Errorf("TakeDirection() = %d, expected -1 or 1", dir)
	}
	if !in.TakeFire() {
		t.Error("TakeFire() should be true after concurrent fires")
	}
	if in.TakeFire() {
		t.Error("8000 fires must still be consumed exactly once")
	}
}
