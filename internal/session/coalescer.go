package session

import (
	"context"
	"sync/atomic"
	"time"
)

// Coalescer debounces a stream of values: every Push restarts the delay, and
// when the delay elapses without a new value only the most recent one is
// handed to the callback. Earlier values are dropped.
type Coalescer[T any] struct {
	delay   time.Duration
	in      chan T
	fn      func(T)
	dropped atomic.Int64
}

// NewCoalescer creates a Coalescer that calls fn from the Run goroutine.
func NewCoalescer[T any](delay time.Duration, fn func(T)) *Coalescer[T] {
	return &Coalescer[T]{
		delay: delay,
		in:    make(chan T, 1),
		fn:    fn,
	}
}

// Push queues v, replacing a value that has not been picked up yet. Push is
// meant to be called from a single producer goroutine.
func (c *Coalescer[T]) Push(v T) {
	select {
	case <-c.in:
		c.dropped.Add(1)
	default:
	}
	c.in <- v
}

// Dropped returns how many values were replaced before being processed.
func (c *Coalescer[T]) Dropped() int64 {
	return c.dropped.Load()
}

// Run processes values until ctx is done.
func (c *Coalescer[T]) Run(ctx context.Context) {
	var (
		pending T
		has     bool
		timer   *time.Timer
		fire    <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case v := <-c.in:
			if has {
				c.dropped.Add(1)
			}
			pending, has = v, true
			if c.delay <= 0 {
				has = false
				c.fn(pending)
				continue
			}
			if timer == nil {
				timer = time.NewTimer(c.delay)
			} else {
				timer.Reset(c.delay)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			has = false
			c.fn(pending)
		}
	}
}
