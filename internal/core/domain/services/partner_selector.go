package services

import (
	"errors"

	"dispatch/internal/core/domain/model/partner"
)

// ErrNoPartnerAvailable is returned when no candidate partner can take an
// order: either the slice is empty or every candidate is already reserved.
var ErrNoPartnerAvailable = errors.New("no delivery partner available")

// PartnerSelector picks the best delivery partner for the automatic
// assignment sweep.
//
// Selection prefers the partner who delays the order the least: the lowest
// ETA wins, a partner without an ETA counts as zero extra minutes, and ties
// go to the first candidate.
type PartnerSelector struct{}

// NewPartnerSelector creates a new PartnerSelector instance.
func NewPartnerSelector() PartnerSelector {
	return PartnerSelector{}
}

// Select returns the available partner with the smallest ETA.
// Reserved partners are skipped. Returns ErrNoPartnerAvailable when no
// candidate qualifies, and a validation error for improperly constructed
// candidates.
func (PartnerSelector) Select(partners []*partner.DeliveryPartner) (*partner.DeliveryPartner, error) {
	var (
		best        *partner.DeliveryPartner
		bestMinutes int
	)

	for _, p := range partners {
		if err := p.Validate(); err != nil {
			return nil, err
		}

		if !p.IsAvailable() {
			continue
		}

		minutes := 0
		if eta := p.ETA(); eta != nil {
			minutes = *eta
		}

		if best == nil || minutes < bestMinutes {
			best = p
			bestMinutes = minutes
		}
	}

	if best == nil {
		return nil, ErrNoPartnerAvailable
	}

	return best, nil
}
