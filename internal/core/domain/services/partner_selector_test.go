package services_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPartner(t *testing.T, name string, eta *int) *partner.DeliveryPartner {
	t.Helper()

	p, err := partner.NewDeliveryPartner(kernel.NewUUID(), name, eta)
	require.NoError(t, err)
	return p
}

func TestPartnerSelector_Select(t *testing.T) {
	selector := services.NewPartnerSelector()

	t.Run("picks_lowest_eta", func(t *testing.T) {
		slow := newPartner(t, "slow", intPtr(25))
		fast := newPartner(t, "fast", intPtr(5))
		medium := newPartner(t, "medium", intPtr(10))

		best, err := selector.Select([]*partner.DeliveryPartner{slow, fast, medium})

		require.NoError(t, err)
		assert.True(t, best.IsEqual(fast))
	})

	t.Run("nil_eta_counts_as_zero", func(t *testing.T) {
		withETA := newPartner(t, "with-eta", intPtr(5))
		noETA := newPartner(t, "no-eta", nil)

		best, err := selector.Select([]*partner.DeliveryPartner{withETA, noETA})

		require.NoError(t, err)
		assert.True(t, best.IsEqual(noETA))
	})

	t.Run("skips_reserved_partners", func(t *testing.T) {
		reserved := newPartner(t, "reserved", intPtr(1))
		require.NoError(t, reserved.Reserve())
		free := newPartner(t, "free", intPtr(30))

		best, err := selector.Select([]*partner.DeliveryPartner{reserved, free})

		require.NoError(t, err)
		assert.True(t, best.IsEqual(free))
	})

	t.Run("ties_go_to_the_first_candidate", func(t *testing.T) {
		first := newPartner(t, "first", intPtr(10))
		second := newPartner(t, "second", intPtr(10))

		best, err := selector.Select([]*partner.DeliveryPartner{first, second})

		require.NoError(t, err)
		assert.True(t, best.IsEqual(first))
	})

	t.Run("no_candidates", func(t *testing.T) {
		_, err := selector.Select(nil)

		require.Error(t, err)
		require.ErrorIs(t, err, services.ErrNoPartnerAvailable)
	})

	t.Run("all_candidates_reserved", func(t *testing.T) {
		reserved := newPartner(t, "reserved", nil)
		require.NoError(t, reserved.Reserve())

		_, err := selector.Select([]*partner.DeliveryPartner{reserved})

		require.Error(t, err)
		require.ErrorIs(t, err, services.ErrNoPartnerAvailable)
	})

	t.Run("invalid_candidate_fails_selection", func(t *testing.T) {
		var invalid partner.DeliveryPartner

		_, err := selector.Select([]*partner.DeliveryPartner{&invalid})

		require.Error(t, err)
	})
}
