package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/pkg/clock"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/keylock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sweepAssigner(factory commands.UoWFactory) commands.AssignPartnerCommandHandler {
	return commands.NewAssignPartnerCommandHandler(factory, keylock.NewManager(time.Second), clock.RealClock{})
}

func TestAssignPendingOrdersCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewAssignPendingOrdersCommand()

	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pendingOrder := assignTestOrder(t, createdAt, 20)

	nearETA, farETA := 5, 30
	nearPartner := assignTestPartner(t, &nearETA)
	farPartner := assignTestPartner(t, &farETA)
	available := []*partner.DeliveryPartner{farPartner, nearPartner}

	sweepOrderRepo := new(MockAssignOrderRepository)
	sweepPartnerRepo := new(MockAssignPartnerRepository)
	sweepUoW := new(MockAssignUoW)

	mock.InOrder(
		sweepUoW.On("Begin", ctx).Return(nil).Once(),
		sweepUoW.On("OrderRepository").Return(sweepOrderRepo).Once(),
		sweepOrderRepo.On("GetFirstUnassigned", ctx).Return(pendingOrder, nil).Once(),
		sweepUoW.On("PartnerRepository").Return(sweepPartnerRepo).Once(),
		sweepPartnerRepo.On("GetAllAvailable", ctx).Return(available, nil).Once(),
	)
	sweepUoW.On("Rollback", ctx).Return(nil).Twice()

	sweepFactory := new(MockAssignUoWFactory)
	sweepFactory.On("Create").Return(sweepUoW).Once()

	// Separate transaction for the delegated assignment.
	assignOrderRepo := new(MockAssignOrderRepository)
	assignPartnerRepo := new(MockAssignPartnerRepository)
	assignUoW := new(MockAssignUoW)

	mock.InOrder(
		assignUoW.On("Begin", ctx).Return(nil).Once(),
		assignUoW.On("OrderRepository").Return(assignOrderRepo).Once(),
		assignUoW.On("PartnerRepository").Return(assignPartnerRepo).Once(),
		assignOrderRepo.On("Get", ctx, pendingOrder.ID()).Return(pendingOrder, nil).Once(),
		assignPartnerRepo.On("Get", ctx, nearPartner.ID()).Return(nearPartner, nil).Once(),
		assignOrderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		assignPartnerRepo.On("Update", ctx, mock.AnythingOfType("*partner.DeliveryPartner")).Return(nil).Once(),
		assignUoW.On("Commit", ctx).Return(nil).Once(),
		assignUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	assignFactory := new(MockAssignUoWFactory)
	assignFactory.On("Create").Return(assignUoW).Once()

	handler := commands.NewAssignPendingOrdersCommandHandler(sweepFactory, sweepAssigner(assignFactory))
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, pendingOrder.Partner())
	assert.True(t, pendingOrder.Partner().IsEqual(nearPartner.ID()), "lowest ETA partner wins")
	assert.False(t, nearPartner.IsAvailable())
	assert.True(t, farPartner.IsAvailable())

	sweepUoW.AssertExpectations(t)
	assignUoW.AssertExpectations(t)
}

func TestAssignPendingOrdersCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AssignPendingOrdersCommand{} // not constructed properly

	factory := new(MockAssignUoWFactory)
	handler := commands.NewAssignPendingOrdersCommandHandler(factory, sweepAssigner(factory))
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAssignPendingOrdersCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestAssignPendingOrdersCommandHandler_Handle_NoPendingOrders(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewAssignPendingOrdersCommand()

	orderRepo := new(MockAssignOrderRepository)
	uow := new(MockAssignUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetFirstUnassigned", ctx).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignPendingOrdersCommandHandler(factory, sweepAssigner(new(MockAssignUoWFactory)))
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrNoPendingOrders)
}

func TestAssignPendingOrdersCommandHandler_Handle_NoAvailablePartners(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewAssignPendingOrdersCommand()

	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pendingOrder := assignTestOrder(t, createdAt, 20)

	orderRepo := new(MockAssignOrderRepository)
	partnerRepo := new(MockAssignPartnerRepository)
	uow := new(MockAssignUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetFirstUnassigned", ctx).Return(pendingOrder, nil).Once(),
		uow.On("PartnerRepository").Return(partnerRepo).Once(),
		partnerRepo.On("GetAllAvailable", ctx).Return([]*partner.DeliveryPartner{}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignPendingOrdersCommandHandler(factory, sweepAssigner(new(MockAssignUoWFactory)))
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrNoAvailablePartners)
	assert.Nil(t, pendingOrder.Partner())
}

func TestAssignPendingOrdersCommandHandler_Handle_PartnerTakenBetweenReads(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewAssignPendingOrdersCommand()

	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pendingOrder := assignTestOrder(t, createdAt, 20)
	candidate := assignTestPartner(t, nil)

	sweepOrderRepo := new(MockAssignOrderRepository)
	sweepPartnerRepo := new(MockAssignPartnerRepository)
	sweepUoW := new(MockAssignUoW)

	mock.InOrder(
		sweepUoW.On("Begin", ctx).Return(nil).Once(),
		sweepUoW.On("OrderRepository").Return(sweepOrderRepo).Once(),
		sweepOrderRepo.On("GetFirstUnassigned", ctx).Return(pendingOrder, nil).Once(),
		sweepUoW.On("PartnerRepository").Return(sweepPartnerRepo).Once(),
		sweepPartnerRepo.On("GetAllAvailable", ctx).
			Return([]*partner.DeliveryPartner{candidate}, nil).
			Once(),
	)
	sweepUoW.On("Rollback", ctx).Return(nil).Twice()

	sweepFactory := new(MockAssignUoWFactory)
	sweepFactory.On("Create").Return(sweepUoW).Once()

	// By the time the assignment re-reads the partner it is already busy.
	takenPartner, err := partner.RestoreDeliveryPartner(candidate.ID(), candidate.Name(), false, nil)
	require.NoError(t, err)

	assignOrderRepo := new(MockAssignOrderRepository)
	assignPartnerRepo := new(MockAssignPartnerRepository)
	assignUoW := new(MockAssignUoW)

	mock.InOrder(
		assignUoW.On("Begin", ctx).Return(nil).Once(),
		assignUoW.On("OrderRepository").Return(assignOrderRepo).Once(),
		assignUoW.On("PartnerRepository").Return(assignPartnerRepo).Once(),
		assignOrderRepo.On("Get", ctx, pendingOrder.ID()).Return(pendingOrder, nil).Once(),
		assignPartnerRepo.On("Get", ctx, candidate.ID()).Return(takenPartner, nil).Once(),
		assignUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	assignFactory := new(MockAssignUoWFactory)
	assignFactory.On("Create").Return(assignUoW).Once()

	handler := commands.NewAssignPendingOrdersCommandHandler(sweepFactory, sweepAssigner(assignFactory))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, partner.ErrPartnerUnavailable)
	assert.Nil(t, pendingOrder.Partner(), "order stays unbound when the candidate was taken")
}
