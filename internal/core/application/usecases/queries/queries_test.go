package queries_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetAllOrdersQuery_Valid(t *testing.T) {
	query := queries.NewGetAllOrdersQuery()
	require.NoError(t, query.Validate())
}

func TestGetAllOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetAllOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetAllOrdersQueryIsNotConstructed)
}

func TestNewGetOrdersByStatusQuery_Valid(t *testing.T) {
	query, err := queries.NewGetOrdersByStatusQuery(order.Ready)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, order.Ready, query.Status())
}

func TestNewGetOrdersByStatusQuery_UnknownStatus(t *testing.T) {
	_, err := queries.NewGetOrdersByStatusQuery(order.Unknown)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestGetOrdersByStatusQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetOrdersByStatusQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOrdersByStatusQueryIsNotConstructed)
}

func TestNewGetAllPartnersQuery_Valid(t *testing.T) {
	query := queries.NewGetAllPartnersQuery()
	require.NoError(t, query.Validate())
}

func TestGetAllPartnersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetAllPartnersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetAllPartnersQueryIsNotConstructed)
}
