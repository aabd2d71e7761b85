package cache

import "time"

// Clock supplies the current time. Injecting it decouples expiry decisions
// from the wall clock so tests can advance time deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock returns the wall-clock Clock used by default.
func SystemClock() Clock {
	return systemClock{}
}
