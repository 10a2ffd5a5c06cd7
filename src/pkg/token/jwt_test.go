package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_IssueAndParse(t *testing.T) {
	m := NewManager("secret", "marketplace", time.Minute, time.Hour)

	pair, err := m.Issue("user-1", "driver")
	require.NoError(t, err)

	claim, err := m.Parse(pair.Access, TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claim.UserID)
	assert.Equal(t, "driver", claim.Role)

	refresh, err := m.Parse(pair.Refresh, TypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, pair.RefreshID, refresh.ID)
}

func TestManager_RejectsWrongType(t *testing.T) {
	m := NewManager("secret", "marketplace", time.Minute, time.Hour)
	pair, err := m.Issue("user-1", "client")
	require.NoError(t, err)

	_, err = m.Parse(pair.Refresh, TypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_RejectsExpiredAndForeignTokens(t *testing.T) {
	m := NewManager("secret", "marketplace", time.Minute, time.Hour)
	pair, err := m.Issue("user-1", "client")
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = m.Parse(pair.Access, TypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewManager("other-secret", "marketplace", time.Minute, time.Hour)
	_, err = other.Parse(pair.Refresh, TypeRefresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
