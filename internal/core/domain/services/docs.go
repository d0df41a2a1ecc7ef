// Package services contains stateless domain services that operate across
// aggregates: the dispatch-time calculator and the partner selector used by
// the automatic assignment sweep.
package services
