// Package kernel contains shared value objects used by every aggregate in the
// dispatch domain. Kernel types are immutable, validated at construction, and
// carry no behavior specific to a single aggregate.
package kernel
