package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
)

func TestNewPutOnHoldCommand(t *testing.T) {
	id := kernel.NewUUID()

	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewPutOnHoldCommand(id, "payment dispute", "chargeback ref 991", "support@shop")
		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		require.Equal(t, "payment dispute", cmd.Reason())
		require.Equal(t, "chargeback ref 991", cmd.AdminNotes())
	})

	t.Run("missing reason", func(t *testing.T) {
		_, err := commands.NewPutOnHoldCommand(id, "", "", "")
		require.ErrorIs(t, err, commands.ErrHoldReasonIsRequired)
	})

	t.Run("zero value fails Validate", func(t *testing.T) {
		var cmd commands.PutOnHoldCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrPutOnHoldCommandIsNotConstructed)
	})
}
