// Package order contains the Order aggregate and its status state machine.
//
// An order moves through a fixed, linear lifecycle:
//
//	PREP ──> READY ──> PICKED ──> ON_ROUTE ──> DELIVERED
//
// Each status has exactly one legal successor; skips, repeats, and reversals
// are rejected. The PREP -> READY edge is additionally guarded by the kitchen
// prep window: the order cannot be marked ready before createdAt + prepTime.
package order
