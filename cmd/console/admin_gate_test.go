package main

import (
	"testing"

	"bankerdir/internal/console/rolegate"
	"bankerdir/internal/console/session"
	"bankerdir/internal/pkg/jwt"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gateWithToken(t *testing.T, role string) *rolegate.Gate {
	t.Helper()
	store := session.NewMemoryStore()
	if role != "" {
		token, err := jwt.GenerateAccessToken(1, "someone@example.com", role, "secret", 15)
		require.NoError(t, err)
		require.NoError(t, store.SetToken(token))
	}
	return rolegate.New(store)
}

func TestRequireAdmin_FailsClosed(t *testing.T) {
	for _, role := range []string{"", "USER", "AUDITOR"} {
		gate = gateWithToken(t, role)
		assert.ErrorIs(t, requireAdmin(nil, nil), errAdminRequired, "role %q", role)
	}

	gate = gateWithToken(t, "ADMIN")
	assert.NoError(t, requireAdmin(nil, nil))
}

func TestAdminCommands_RefuseUpFrontWithoutAdminRole(t *testing.T) {
	gate = gateWithToken(t, "USER")

	adminOnly := []*cobra.Command{
		bankersCreateCmd, bankersDeleteCmd, bankersUploadCmd,
		lendersCreateCmd, lendersDeleteCmd,
		reviewsApproveCmd, reviewsRejectCmd,
	}
	for _, cmd := range adminOnly {
		require.NotNil(t, cmd.PreRunE, cmd.Name())
		assert.ErrorIs(t, cmd.PreRunE(cmd, nil), errAdminRequired, cmd.Name())
	}
}
