package queue

import "time"

// Backoff decides the pause before replaying an operation that has already
// failed `retries` times.
type Backoff interface {
	Delay(retries int) time.Duration
}

// NoBackoff replays immediately. The retry ceiling alone bounds the work.
type NoBackoff struct{}

func (NoBackoff) Delay(int) time.Duration { return 0 }

// LinearBackoff waits Step per prior failure, capped at Max.
type LinearBackoff struct {
	Step time.Duration
	Max  time.Duration
}

func (b LinearBackoff) Delay(retries int) time.Duration {
	d := time.Duration(retries) * b.Step
	if b.Max > 0 && d > b.Max {
		return b.Max
	}
	return d
}
