package token_test

import (
	"testing"
	"time"

	"studio-site-backend/pkg/token"

	"github.com/stretchr/testify/assert"
)

func TestSignVerify(t *testing.T) {
	m := token.NewManager("secret", time.Hour)

	t.Run("Should round-trip the identity", func(t *testing.T) {
		signed, err := m.Sign("user-1", true)
		assert.NoError(t, err)

		claims, err := m.Verify(signed)
		assert.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.True(t, claims.IsAdmin)
	})

	t.Run("Should reject an expired token", func(t *testing.T) {
		expired := token.NewManager("secret", -time.Minute)
		signed, err := expired.Sign("user-1", false)
		assert.NoError(t, err)

		_, err = m.Verify(signed)
		assert.Error(t, err)
	})

	t.Run("Should reject a token signed with another secret", func(t *testing.T) {
		other := token.NewManager("other-secret", time.Hour)
		signed, err := other.Sign("user-1", false)
		assert.NoError(t, err)

		_, err = m.Verify(signed)
		assert.Error(t, err)
	})

	t.Run("Should reject garbage", func(t *testing.T) {
		_, err := m.Verify("not.a.jwt")
		assert.Error(t, err)
	})
}
