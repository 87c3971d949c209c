package core

import (
	"context"
	"time"
)

// FixedStep paces headless ticks at a steady rate. A zero rate disables
// pacing and Wait returns immediately.
type FixedStep struct {
	step time.Duration
	next time.Time
}

// NewFixedStep constructs a FixedStep targeting tps ticks per second.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{}
	fs.SetTPS(tps)
	return fs
}

// SetTPS changes the tick rate. Values <= 0 disable pacing.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		f.step = 0
		return
	}
	f.step = time.Second / time.Duration(tps)
}

// Interval returns the duration of one tick, zero when unpaced.
func (f *FixedStep) Interval() time.Duration { return f.step }

// Wait blocks until the next tick is due or ctx is done. Ticks that fall
// behind are not replayed; the schedule restarts from the late tick.
func (f *FixedStep) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.step == 0 {
		return nil
	}
	now := time.Now()
	if f.next.IsZero() || f.next.Before(now) {
		f.next = now
	}
	delay := f.next.Sub(now)
	f.next = f.next.Add(f.step)
	if delay <= 0 {
		return nil
	}
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
