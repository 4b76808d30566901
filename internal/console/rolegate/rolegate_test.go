package rolegate

import (
	"testing"

	"bankerdir/internal/console/session"
	"bankerdir/internal/core/domain"
	"bankerdir/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeWithToken(t *testing.T, token string) session.Store {
	t.Helper()
	store := session.NewMemoryStore()
	require.NoError(t, store.SetToken(token))
	return store
}

func TestGate_MissingToken_YieldsNoRole(t *testing.T) {
	gate := New(session.NewMemoryStore())

	assert.Equal(t, domain.Role(""), gate.Role())
	assert.False(t, gate.IsAdmin())
}

func TestGate_MalformedToken_YieldsNoRole(t *testing.T) {
	for _, token := range []string{"garbage", "a.b", "a.b.c", "ey.ey.ey"} {
		gate := New(storeWithToken(t, token))

		assert.Equal(t, domain.Role(""), gate.Role(), "token %q", token)
		assert.False(t, gate.IsAdmin())
	}
}

func TestGate_UnknownRoleClaim_YieldsNoRole(t *testing.T) {
	token, err := jwt.GenerateAccessToken(1, "x@y.z", "SUPERUSER", "secret", 15)
	require.NoError(t, err)

	gate := New(storeWithToken(t, token))
	assert.Equal(t, domain.Role(""), gate.Role())
	assert.False(t, gate.IsAdmin())
}

func TestGate_AdminToken_EnablesAdminControls(t *testing.T) {
	token, err := jwt.GenerateAccessToken(1, "admin@bankerdir.local", "ADMIN", "secret", 15)
	require.NoError(t, err)

	gate := New(storeWithToken(t, token))
	assert.Equal(t, domain.RoleAdmin, gate.Role())
	assert.True(t, gate.IsAdmin())
	assert.Equal(t, "admin@bankerdir.local", gate.Email())
}

func TestGate_UserToken_HidesAdminControls(t *testing.T) {
	token, err := jwt.GenerateAccessToken(2, "user@x.y", "USER", "secret", 15)
	require.NoError(t, err)

	gate := New(storeWithToken(t, token))
	assert.Equal(t, domain.RoleUser, gate.Role())
	assert.False(t, gate.IsAdmin())
}

func TestGate_IgnoresSignature_PeekIsAdvisoryOnly(t *testing.T) {
	// Signed with one secret, never validated against any; the gate
	// still reads the claim because it is display gating only
	token, err := jwt.GenerateAccessToken(1, "a@b.c", "ADMIN", "some-other-secret", 15)
	require.NoError(t, err)

	gate := New(storeWithToken(t, token))
	assert.True(t, gate.IsAdmin())
}

func TestGate_ReEvaluatesOnEveryCall(t *testing.T) {
	store := session.NewMemoryStore()
	gate := New(store)

	assert.False(t, gate.IsAdmin())

	token, err := jwt.GenerateAccessToken(1, "a@b.c", "ADMIN", "secret", 15)
	require.NoError(t, err)
	require.NoError(t, store.SetToken(token))
	assert.True(t, gate.IsAdmin())

	require.NoError(t, store.ClearToken())
	assert.False(t, gate.IsAdmin())
}
