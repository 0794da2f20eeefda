package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	j := NewJWTer("s3cret", "blog", time.Hour)

	tok, err := j.Issue("u1", "a@example.com", "admin")
	require.NoError(t, err)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", c.UID)
	assert.Equal(t, "a@example.com", c.Email)
	assert.Equal(t, "admin", c.Role)
}

func TestParseRejects(t *testing.T) {
	j := NewJWTer("s3cret", "blog", time.Hour)
	tok, err := j.Issue("u1", "a@example.com", "user")
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewJWTer("other", "blog", time.Hour).Parse(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
	t.Run("wrong issuer", func(t *testing.T) {
		_, err := NewJWTer("s3cret", "elsewhere", time.Hour).Parse(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
	t.Run("expired", func(t *testing.T) {
		later := NewJWTer("s3cret", "blog", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.Parse(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
	t.Run("none alg", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UID: "u1"})
		s, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = j.Parse(s)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
	t.Run("garbage", func(t *testing.T) {
		_, err := j.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestIssueWithoutSecret(t *testing.T) {
	_, err := NewJWTer("", "blog", time.Hour).Issue("u1", "a@example.com", "user")
	assert.Error(t, err)
}
