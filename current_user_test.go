package catalog_test

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	catalog "github.com/goliatone/go-catalog"
	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingValidator records whether Validate ran so tests can assert the
// header gate rejects garbage before any crypto work happens.
type countingValidator struct {
	calls  int
	claims catalog.AuthClaims
	err    error
}

func (v *countingValidator) Validate(tokenString string) (catalog.AuthClaims, error) {
	v.calls++
	return v.claims, v.err
}

func validClaims(subject string) catalog.AuthClaims {
	return &catalog.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: subject},
		UID:              "user-1",
	}
}

func TestCurrentUserResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves a well formed bearer header", func(t *testing.T) {
		provider := &MockIdentityProvider{}
		identity := TestIdentity{id: "user-1", username: "jdoe", email: "jdoe@example.com"}
		provider.On("FindIdentityByIdentifier", ctx, "jdoe").Return(identity, nil)

		validator := &countingValidator{claims: validClaims("jdoe")}

		resolver := catalog.NewCurrentUserResolver(validator, provider).WithLogger(noopLogger{})

		got, err := resolver.Resolve(ctx, "Bearer some.jwt.token")

		require.NoError(t, err)
		assert.Equal(t, "user-1", got.ID())
		assert.Equal(t, 1, validator.calls)
	})

	t.Run("scheme comparison is case insensitive", func(t *testing.T) {
		provider := &MockIdentityProvider{}
		identity := TestIdentity{id: "user-1", username: "jdoe"}
		provider.On("FindIdentityByIdentifier", ctx, "jdoe").Return(identity, nil)

		validator := &countingValidator{claims: validClaims("jdoe")}

		resolver := catalog.NewCurrentUserResolver(validator, provider).WithLogger(noopLogger{})

		_, err := resolver.Resolve(ctx, "bearer some.jwt.token")

		assert.NoError(t, err)
	})

	t.Run("rejects garbled headers before the validator runs", func(t *testing.T) {
		headers := []string{
			"",
			"   ",
			"Bearer",
			"Bearer ",
			"Bearer  ",
			"Basic some.jwt.token",
			"Bearersome.jwt.token",
			"Bearer some token with spaces",
			"Bearer tab\tseparated",
		}

		for _, header := range headers {
			validator := &countingValidator{claims: validClaims("jdoe")}
			resolver := catalog.NewCurrentUserResolver(validator, &MockIdentityProvider{}).WithLogger(noopLogger{})

			got, err := resolver.Resolve(ctx, header)

			assert.Nil(t, got, "header %q", header)
			assert.ErrorIs(t, err, catalog.ErrUnauthenticated, "header %q", header)
			assert.Equal(t, 0, validator.calls, "header %q", header)
		}
	})

	t.Run("validator failures collapse into unauthenticated", func(t *testing.T) {
		validator := &countingValidator{err: catalog.ErrTokenExpired}
		resolver := catalog.NewCurrentUserResolver(validator, &MockIdentityProvider{}).WithLogger(noopLogger{})

		got, err := resolver.Resolve(ctx, "Bearer expired.jwt.token")

		assert.Nil(t, got)
		assert.True(t, catalog.IsUnauthenticatedError(err))
		assert.ErrorIs(t, err, catalog.ErrTokenExpired)
	})

	t.Run("deleted subject is rejected, not trusted", func(t *testing.T) {
		provider := &MockIdentityProvider{}
		provider.On("FindIdentityByIdentifier", ctx, "ghost").Return(nil, catalog.ErrIdentityNotFound)

		validator := &countingValidator{claims: validClaims("ghost")}
		resolver := catalog.NewCurrentUserResolver(validator, provider).WithLogger(noopLogger{})

		got, err := resolver.Resolve(ctx, "Bearer some.jwt.token")

		assert.Nil(t, got)
		assert.ErrorIs(t, err, catalog.ErrUnauthenticated)
	})

	t.Run("store failures are not reported as unauthenticated", func(t *testing.T) {
		provider := &MockIdentityProvider{}
		provider.On("FindIdentityByIdentifier", ctx, "jdoe").
			Return(nil, errors.New(errors.CategoryInternal, "connection refused"))

		validator := &countingValidator{claims: validClaims("jdoe")}
		resolver := catalog.NewCurrentUserResolver(validator, provider).WithLogger(noopLogger{})

		got, err := resolver.Resolve(ctx, "Bearer some.jwt.token")

		assert.Nil(t, got)
		assert.Error(t, err)
		assert.False(t, catalog.IsUnauthenticatedError(err))
	})
}

func TestCurrentUserResolver_ResolveSubject(t *testing.T) {
	ctx := context.Background()

	t.Run("nil claims fail closed", func(t *testing.T) {
		resolver := catalog.NewCurrentUserResolver(&countingValidator{}, &MockIdentityProvider{}).WithLogger(noopLogger{})

		got, err := resolver.ResolveSubject(ctx, nil)

		assert.Nil(t, got)
		assert.ErrorIs(t, err, catalog.ErrUnauthenticated)
	})

	t.Run("maps the claims subject to a live identity", func(t *testing.T) {
		provider := &MockIdentityProvider{}
		identity := TestIdentity{id: "user-1", username: "jdoe"}
		provider.On("FindIdentityByIdentifier", ctx, "jdoe").Return(identity, nil)

		resolver := catalog.NewCurrentUserResolver(&countingValidator{}, provider).WithLogger(noopLogger{})

		got, err := resolver.ResolveSubject(ctx, validClaims("jdoe"))

		require.NoError(t, err)
		assert.Equal(t, "jdoe", got.Username())
	})
}

func TestCurrentUserResolver_WithAuthScheme(t *testing.T) {
	ctx := context.Background()

	provider := &MockIdentityProvider{}
	identity := TestIdentity{id: "user-1", username: "jdoe"}
	provider.On("FindIdentityByIdentifier", ctx, "jdoe").Return(identity, nil)

	validator := &countingValidator{claims: validClaims("jdoe")}
	resolver := catalog.NewCurrentUserResolver(validator, provider).
		WithLogger(noopLogger{}).
		WithAuthScheme("Token")

	_, err := resolver.Resolve(ctx, "Bearer some.jwt.token")
	assert.ErrorIs(t, err, catalog.ErrUnauthenticated)

	got, err := resolver.Resolve(ctx, "Token some.jwt.token")
	require.NoError(t, err)
	assert.Equal(t, "jdoe", got.Username())
}
