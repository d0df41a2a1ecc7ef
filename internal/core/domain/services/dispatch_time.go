package services

import "time"

// DispatchTimeCalculator computes and revises an order's expected dispatch
// time: the moment the order is expected to be handed to its courier.
//
// The initial estimate is purely the kitchen prep window. When a partner is
// assigned, their ETA is added on top of the existing estimate rather than
// replacing it: the courier needs that many more minutes beyond whatever was
// already expected.
type DispatchTimeCalculator struct{}

// NewDispatchTimeCalculator creates a new DispatchTimeCalculator instance.
func NewDispatchTimeCalculator() DispatchTimeCalculator {
	return DispatchTimeCalculator{}
}

// InitialDispatch returns the estimate set at order creation:
// now plus the prep window.
func (DispatchTimeCalculator) InitialDispatch(now time.Time, prepTimeMinutes int) time.Time {
	return now.Add(time.Duration(prepTimeMinutes) * time.Minute)
}

// Revise folds a partner's ETA into the current estimate.
//
// A nil ETA leaves the estimate unchanged. An unset (zero) current estimate
// is based on now before the ETA is added.
func (DispatchTimeCalculator) Revise(current time.Time, now time.Time, etaMinutes *int) time.Time {
	if etaMinutes == nil {
		return current
	}
	if current.IsZero() {
		current = now
	}
	return current.Add(time.Duration(*etaMinutes) * time.Minute)
}
