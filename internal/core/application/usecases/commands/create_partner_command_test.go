package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreatePartnerCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	eta := 10
	cmd, err := commands.NewCreatePartnerCommand(id, "Ravi", &eta)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.PartnerID())
	assert.Equal(t, "Ravi", cmd.Name())
	require.NotNil(t, cmd.ETA())
	assert.Equal(t, 10, *cmd.ETA())
}

func TestNewCreatePartnerCommand_NilETA(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewCreatePartnerCommand(id, "Ravi", nil)
	require.NoError(t, err)
	assert.Nil(t, cmd.ETA())
}

func TestNewCreatePartnerCommand_InvalidPartnerID(t *testing.T) {
	_, err := commands.NewCreatePartnerCommand(kernel.UUID{}, "Ravi", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreatePartnerCommand_EmptyName(t *testing.T) {
	_, err := commands.NewCreatePartnerCommand(kernel.NewUUID(), "", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewCreatePartnerCommand_NegativeETA(t *testing.T) {
	eta := -1
	_, err := commands.NewCreatePartnerCommand(kernel.NewUUID(), "Ravi", &eta)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewCreatePartnerCommand_CopiesETA(t *testing.T) {
	eta := 7
	cmd, err := commands.NewCreatePartnerCommand(kernel.NewUUID(), "Ravi", &eta)
	require.NoError(t, err)

	eta = 99
	assert.Equal(t, 7, *cmd.ETA(), "command must not alias the caller's pointer")
}
