package db

import "time"

// RetryPolicy controls the wait between transient connection failures.
// Waits are counted in Units; after Threshold attempts the wait doubles each
// time, and once it grows past MaxWait the manager gives up.
type RetryPolicy struct {
	Unit      time.Duration
	Threshold int
	MaxWait   int
}

var DefaultRetryPolicy = RetryPolicy{
	Unit:      time.Second,
	Threshold: 5,
	MaxWait:   60,
}

// RetryState is carried from one attempt to the next.
type RetryState struct {
	Attempt int
	Wait    int
}

func NewRetryState() RetryState {
	return RetryState{Wait: 1}
}

// Next records one more failed attempt.
func (s RetryState) Next(p RetryPolicy) RetryState {
	s.Attempt++
	if s.Attempt >= p.Threshold {
		s.Wait *= 2
	}
	return s
}

func (s RetryState) Exhausted(p RetryPolicy) bool {
	return s.Wait > p.MaxWait
}

func (s RetryState) Delay(p RetryPolicy) time.Duration {
	return time.Duration(s.Wait) * p.Unit
}
