package transport

import (
	"context"
	"time"

	"github.com/ooblahman/graph-turbulence/internal/field"
)

// StreamConfig controls the pacing of a streamed simulation.
type StreamConfig struct {
	// Dt is the simulation time advanced per published frame.
	Dt float64
	// Interval is the wall-clock period between frames.
	Interval time.Duration
}

// Stream installs sys's init message as the publisher's greeting, so
// subscribers that dial mid-stream still receive it first, then steps the
// simulation in wall-clock time and publishes one data frame per tick
// until the context is canceled or the simulation fails. The caller owns
// the publisher.
func Stream(ctx context.Context, pub *Publisher, sys field.Simulation, cfg StreamConfig) error {
	if cfg.Dt <= 0 {
		cfg.Dt = 0.05
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 50 * time.Millisecond
	}

	init := InitMessage{Tag: TagInit, Systems: []SystemInit{DescribeSystem(sys)}}
	if err := pub.SetGreeting(init); err != nil {
		return err
	}
	if err := pub.Publish(init); err != nil {
		return err
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := sys.Step(cfg.Dt); err != nil {
				return err
			}
			vecs, err := sys.Measure()
			if err != nil {
				return err
			}
			if err := pub.Publish(Frame(sys, vecs)); err != nil {
				return err
			}
		}
	}
}
