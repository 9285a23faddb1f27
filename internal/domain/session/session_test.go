// internal/domain/session/session_test.go
package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var adminEmails = []string{"admin@example.com", "admin@luxe.com"}

func TestResolveRole(t *testing.T) {
	cases := []struct {
		email string
		want  Role
	}{
		{"admin@example.com", RoleAdmin},
		{"admin@luxe.com", RoleAdmin},
		{"Admin@luxe.com", RoleShopper}, // case-sensitive exact match
		{"admin@luxe.com ", RoleShopper},
		{"someone@luxe.com", RoleShopper},
		{"", RoleShopper},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ResolveRole(tc.email, adminEmails), "email=%q", tc.email)
	}
}

func TestNewIdentity(t *testing.T) {
	_, err := New("  ", "x@y.com")
	assert.ErrorIs(t, err, ErrInvalidIdentity)

	id, err := New("uid-1", " shopper@luxe.com ")
	require.NoError(t, err)
	assert.Equal(t, "shopper@luxe.com", id.Email)
}

func TestContainer(t *testing.T) {
	t.Run("starts signed out", func(t *testing.T) {
		c := NewContainer(adminEmails)
		assert.Nil(t, c.Current())
		assert.False(t, c.IsAdmin())
	})

	t.Run("set derives admin flag", func(t *testing.T) {
		c := NewContainer(adminEmails)

		c.Set(Identity{UID: "u1", Email: "admin@luxe.com"})
		assert.True(t, c.IsAdmin())
		require.NotNil(t, c.Current())
		assert.Equal(t, "admin@luxe.com", c.Current().Email)

		c.Set(Identity{UID: "u2", Email: "shopper@luxe.com"})
		assert.False(t, c.IsAdmin())
	})

	t.Run("clear signs out", func(t *testing.T) {
		c := NewContainer(adminEmails)
		c.Set(Identity{UID: "u1", Email: "admin@luxe.com"})

		c.Clear()

		assert.Nil(t, c.Current())
		assert.False(t, c.IsAdmin())
	})

	t.Run("listeners see every change", func(t *testing.T) {
		c := NewContainer(adminEmails)

		var got []State
		c.Subscribe(func(s State) { got = append(got, s) })

		c.Set(Identity{UID: "u1", Email: "admin@luxe.com"})
		c.Clear()

		require.Len(t, got, 2)
		require.NotNil(t, got[0].Identity)
		assert.Equal(t, RoleAdmin, got[0].Role)
		assert.Nil(t, got[1].Identity)
		assert.Equal(t, RoleShopper, got[1].Role)
	})
}
