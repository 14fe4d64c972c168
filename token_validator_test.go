package catalog_test

import (
	"testing"

	catalog "github.com/goliatone/go-catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenValidatorFunc(t *testing.T) {
	t.Run("delegates to the wrapped function", func(t *testing.T) {
		called := ""
		validator := catalog.TokenValidatorFunc(func(tokenString string) (catalog.AuthClaims, error) {
			called = tokenString
			return &catalog.JWTClaims{UID: "user-1"}, nil
		})

		claims, err := validator.Validate("some-token")

		assert.NoError(t, err)
		assert.Equal(t, "some-token", called)
		assert.Equal(t, "user-1", claims.UserID())
	})

	t.Run("nil func rejects every token", func(t *testing.T) {
		var validator catalog.TokenValidatorFunc

		claims, err := validator.Validate("some-token")

		assert.Nil(t, claims)
		assert.ErrorIs(t, err, catalog.ErrTokenMalformed)
	})
}

func TestMultiTokenValidator(t *testing.T) {
	okValidator := catalog.TokenValidatorFunc(func(string) (catalog.AuthClaims, error) {
		return &catalog.JWTClaims{UID: "user-ok"}, nil
	})
	malformedValidator := catalog.TokenValidatorFunc(func(string) (catalog.AuthClaims, error) {
		return nil, catalog.ErrTokenMalformed
	})
	expiredValidator := catalog.TokenValidatorFunc(func(string) (catalog.AuthClaims, error) {
		return nil, catalog.ErrTokenExpired
	})

	t.Run("returns the first successful claims", func(t *testing.T) {
		validator := catalog.NewMultiTokenValidator(okValidator, malformedValidator)

		claims, err := validator.Validate("token")

		require.NoError(t, err)
		assert.Equal(t, "user-ok", claims.UserID())
	})

	t.Run("falls through malformed errors to the next validator", func(t *testing.T) {
		validator := catalog.NewMultiTokenValidator(malformedValidator, okValidator)

		claims, err := validator.Validate("token")

		require.NoError(t, err)
		assert.Equal(t, "user-ok", claims.UserID())
	})

	t.Run("stops on a non-malformed error", func(t *testing.T) {
		validator := catalog.NewMultiTokenValidator(expiredValidator, okValidator)

		claims, err := validator.Validate("token")

		assert.Nil(t, claims)
		assert.ErrorIs(t, err, catalog.ErrTokenExpired)
	})

	t.Run("returns the last malformed error when all fail", func(t *testing.T) {
		validator := catalog.NewMultiTokenValidator(malformedValidator, malformedValidator)

		claims, err := validator.Validate("token")

		assert.Nil(t, claims)
		assert.ErrorIs(t, err, catalog.ErrTokenMalformed)
	})

	t.Run("empty validator set rejects every token", func(t *testing.T) {
		validator := catalog.NewMultiTokenValidator(nil, nil)

		claims, err := validator.Validate("token")

		assert.Nil(t, claims)
		assert.ErrorIs(t, err, catalog.ErrTokenMalformed)
	})
}
