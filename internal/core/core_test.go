package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCellBufferWrapsIndex(t *testing.T) {
	b := NewCellBuffer(3, 4)
	if got, want := b.Index(-1, 0), b.Index(2, 0); got != want {
		t.Fatalf("Index(-1,0)=%d, want %d", got, want)
	}
	if got, want := b.Index(0, -1), b.Index(0, 3); got != want {
		t.Fatalf("Index(0,-1)=%d, want %d", got, want)
	}
	b.Set(4, 5, 7)
	if b.Cells()[1+3*1] != 7 {
		t.Fatal("Set(4,5) did not land on (1,1)")
	}
	b.Fill(func(i int) uint8 { return uint8(i % 2) })
	if b.Cells()[0] != 0 || b.Cells()[1] != 1 {
		t.Fatalf("Fill produced %v", b.Cells())
	}
}

func TestNewCellBufferClampsDimensions(t *testing.T) {
	b := NewCellBuffer(0, -2)
	if b.W != 1 || b.H != 1 || len(b.Cells()) != 1 {
		t.Fatalf("expected 1x1 buffer, got %dx%d (%d cells)", b.W, b.H, len(b.Cells()))
	}
}

func TestParameterSnapshotLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "A", Params: []Parameter{{Key: "x", Value: "1"}}},
		{Name: "B", Params: []Parameter{{Key: "y", Value: "2"}}},
	}}
	p, ok := snap.Lookup("y")
	if !ok || p.Value != "2" {
		t.Fatalf("Lookup(y) = %+v, %v", p, ok)
	}
	if _, ok := snap.Lookup("z"); ok {
		t.Fatal("Lookup(z) should miss")
	}
}

func TestParameterControlClamp(t *testing.T) {
	c := ParameterControl{Min: 0.1, Max: 5, HasMin: true, HasMax: true}
	if got := c.Clamp(-3); got != 0.1 {
		t.Fatalf("Clamp(-3) = %v", got)
	}
	if got := c.Clamp(9); got != 5 {
		t.Fatalf("Clamp(9) = %v", got)
	}
	if got := c.Clamp(2); got != 2 {
		t.Fatalf("Clamp(2) = %v", got)
	}
}

func TestFixedStepUnpacedReturnsImmediately(t *testing.T) {
	fs := NewFixedStep(0)
	start := time.Now()
	for i := 0; i < 100; i++ {
		if err := fs.Wait(context.Background()); err != nil {
			t.Fatalf("Wait: %v", err)
		}
	}
	if time.Since(start) > time.Second {
		t.Fatal("unpaced Wait blocked")
	}
	if fs.Interval() != 0 {
		t.Fatalf("Interval() = %v, want 0", fs.Interval())
	}
}

func TestFixedStepHonoursCancel(t *testing.T) {
	fs := NewFixedStep(1)
	ctx, cancel := context.WithCancel(context.Background())
	if err := fs.Wait(ctx); err != nil {
		t.Fatalf("first tick should be due immediately: %v", err)
	}
	cancel()
	if err := fs.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Wait after cancel = %v, want context.Canceled", err)
	}
}

func TestRegistryBuild(t *testing.T) {
	Register("stub-test", func(cfg map[string]string) (Sim, error) { return nil, errors.New("boom") })
	defer delete(sims, "stub-test")

	if _, err := Build("stub-test", nil); err == nil || err.Error() != "boom" {
		t.Fatalf("Build returned %v", err)
	}
	if _, err := Build("missing", nil); err == nil {
		t.Fatal("expected error for unknown sim")
	}
	found := false
	for _, n := range Names() {
		if n == "stub-test" {
			found = true
		}
	}
	if !found {
		t.Fatal("Names() missing registered sim")
	}
}
