package entity

import "time"

// Timing is a best-effort duration measurement, e.g. one per processed block.
type Timing struct {
	Label       string
	BlockHeight uint64
	Elapsed     time.Duration
	CreatedAt   time.Time
}
