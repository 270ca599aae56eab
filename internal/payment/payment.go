package payment

import (
	"context"
	"time"
)

// DefaultDelay mirrors the original checkout animation length.
const DefaultDelay = 4500 * time.Millisecond

// Processor simulates a payment: a fixed delay followed by a
// deterministic success. There is no failure branch and no retry.
type Processor struct {
	Delay time.Duration
}

func New(delay time.Duration) *Processor {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Processor{Delay: delay}
}

// Process blocks for the configured delay, then reports success.
// Cancelling the context (the buyer navigating away mid-payment)
// abandons the completion: the caller must not create the order.
func (p *Processor) Process(ctx context.Context) error {
	t := time.NewTimer(p.Delay)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
