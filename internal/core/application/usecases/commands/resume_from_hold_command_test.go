package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func TestNewResumeFromHoldCommand(t *testing.T) {
	id := kernel.NewUUID()

	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewResumeFromHoldCommand(id, order.Confirmation, "ops@shop")
		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		require.Equal(t, order.Confirmation, cmd.ResumeStatus())
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		_, err := commands.NewResumeFromHoldCommand(id, order.Unknown, "")
		require.Error(t, err)
	})

	t.Run("zero value fails Validate", func(t *testing.T) {
		var cmd commands.ResumeFromHoldCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrResumeFromHoldCommandIsNotConstructed)
	})
}
