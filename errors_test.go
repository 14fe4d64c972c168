package catalog_test

import (
	"errors"
	"testing"

	catalog "github.com/goliatone/go-catalog"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		err      *goerrors.Error
		category goerrors.Category
		textCode string
	}{
		{
			name:     "invalid credentials",
			err:      catalog.ErrInvalidCredentials,
			category: goerrors.CategoryAuth,
			textCode: catalog.TextCodeInvalidCreds,
		},
		{
			name:     "token expired",
			err:      catalog.ErrTokenExpired,
			category: goerrors.CategoryAuth,
			textCode: catalog.TextCodeTokenExpired,
		},
		{
			name:     "token malformed",
			err:      catalog.ErrTokenMalformed,
			category: goerrors.CategoryAuth,
			textCode: catalog.TextCodeTokenMalformed,
		},
		{
			name:     "unauthenticated",
			err:      catalog.ErrUnauthenticated,
			category: goerrors.CategoryAuth,
			textCode: catalog.TextCodeUnauthenticated,
		},
		{
			name:     "empty password",
			err:      catalog.ErrNoEmptyString,
			category: goerrors.CategoryValidation,
			textCode: catalog.TextCodeEmptyPassword,
		},
		{
			name:     "invalid token ttl",
			err:      catalog.ErrInvalidTokenTTL,
			category: goerrors.CategoryBadInput,
			textCode: catalog.TextCodeInvalidTTL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.category, tt.err.Category)
			assert.Equal(t, tt.textCode, tt.err.TextCode)
			assert.NotEmpty(t, tt.err.Message)
		})
	}

	t.Run("identity not found is a not found error", func(t *testing.T) {
		assert.True(t, goerrors.IsNotFound(catalog.ErrIdentityNotFound))
	})
}

func TestIsTokenExpiredError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "structured token expired error",
			err:      catalog.ErrTokenExpired,
			expected: true,
		},
		{
			name:     "legacy token expired error (string match)",
			err:      errors.New("some wrapper: token is expired"),
			expected: true,
		},
		{
			name:     "different structured error",
			err:      catalog.ErrIdentityNotFound,
			expected: false,
		},
		{
			name:     "different legacy error",
			err:      errors.New("invalid token"),
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := catalog.IsTokenExpiredError(tt.err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestIsMalformedError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "structured malformed error",
			err:      catalog.ErrTokenMalformed,
			expected: true,
		},
		{
			name:     "legacy malformed error (string match)",
			err:      errors.New("token is malformed"),
			expected: true,
		},
		{
			name:     "legacy missing JWT error (string match)",
			err:      errors.New("missing or malformed JWT"),
			expected: true,
		},
		{
			name:     "different legacy error",
			err:      errors.New("token is expired"),
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := catalog.IsMalformedError(tt.err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestIsUnauthenticatedError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "structured unauthenticated error",
			err:      catalog.ErrUnauthenticated,
			expected: true,
		},
		{
			name:     "different structured error",
			err:      catalog.ErrIdentityNotFound,
			expected: false,
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := catalog.IsUnauthenticatedError(tt.err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestIsConstraintViolation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "sqlite unique violation",
			err:      errors.New("UNIQUE constraint failed: users.username"),
			expected: true,
		},
		{
			name:     "postgres unique violation",
			err:      errors.New(`duplicate key value violates unique constraint "users_email_idx"`),
			expected: true,
		},
		{
			name:     "unrelated error",
			err:      errors.New("connection refused"),
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := catalog.IsConstraintViolation(tt.err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestWrapStoreError(t *testing.T) {
	cause := errors.New("disk I/O error")

	err := catalog.WrapStoreError(cause, "failed to persist record")

	assert.Error(t, err)
	assert.ErrorIs(t, err, cause)

	var rich *goerrors.Error
	assert.True(t, goerrors.As(err, &rich))
	assert.Equal(t, goerrors.CategoryInternal, rich.Category)
}
