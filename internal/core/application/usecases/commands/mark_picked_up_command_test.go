package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
)

func TestNewMarkPickedUpCommand(t *testing.T) {
	id := kernel.NewUUID()

	t.Run("valid", func(t *testing.T) {
		at := time.Now().UTC().Truncate(time.Second)
		cmd, err := commands.NewMarkPickedUpCommand(id, at, "Ada Lovelace", "counter@shop", "")
		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		require.Equal(t, at, cmd.PickedUpAt())
		require.Equal(t, "Ada Lovelace", cmd.PickedUpBy())
	})

	t.Run("zero pickup time defaults to now", func(t *testing.T) {
		cmd, err := commands.NewMarkPickedUpCommand(id, time.Time{}, "Ada Lovelace", "", "")
		require.NoError(t, err)
		require.False(t, cmd.PickedUpAt().IsZero())
	})

	t.Run("missing picked up by", func(t *testing.T) {
		_, err := commands.NewMarkPickedUpCommand(id, time.Now(), "", "", "")
		require.ErrorIs(t, err, commands.ErrPickedUpByIsRequired)
	})

	t.Run("zero value fails Validate", func(t *testing.T) {
		var cmd commands.MarkPickedUpCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrMarkPickedUpCommandIsNotConstructed)
	})
}
