package catalog_test

import (
	"context"

	catalog "github.com/goliatone/go-catalog"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// TestIdentity is a plain value implementation of catalog.Identity
type TestIdentity struct {
	id       string
	username string
	email    string
}

func (t TestIdentity) ID() string       { return t.id }
func (t TestIdentity) Username() string { return t.username }
func (t TestIdentity) Email() string    { return t.email }

// MockIdentity implements catalog.Identity for testing
type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) ID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Username() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Email() string {
	args := m.Called()
	return args.String(0)
}

// noopLogger discards all output. Use it where a test exercises failure
// paths that log as a side effect.
type noopLogger struct{}

func (noopLogger) Debug(format string, args ...any) {}
func (noopLogger) Info(format string, args ...any)  {}
func (noopLogger) Warn(format string, args ...any)  {}
func (noopLogger) Error(format string, args ...any) {}

// MockLogger implements catalog.Logger for testing
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Warn(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}

// MockIdentityProvider implements catalog.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, identifier, password string) (catalog.Identity, error) {
	args := m.Called(ctx, identifier, password)
	identity, _ := args.Get(0).(catalog.Identity)
	return identity, args.Error(1)
}

func (m *MockIdentityProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (catalog.Identity, error) {
	args := m.Called(ctx, identifier)
	identity, _ := args.Get(0).(catalog.Identity)
	return identity, args.Error(1)
}

// MockCredentialStore implements catalog.CredentialStore
type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) UpdatePasswordHash(ctx context.Context, identifier, passwordHash string) error {
	args := m.Called(ctx, identifier, passwordHash)
	return args.Error(0)
}

// MockUserStore implements catalog.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByIdentifier(ctx context.Context, identifier string) (*catalog.User, error) {
	args := m.Called(ctx, identifier)
	user, _ := args.Get(0).(*catalog.User)
	return user, args.Error(1)
}

func (m *MockUserStore) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

// mockConfig implements catalog.Config
type mockConfig struct {
	signingKey      string
	signingMethod   string
	contextKey      string
	tokenExpiration int
	tokenLookup     string
	authScheme      string
	issuer          string
	audience        []string
}

func newMockConfig() *mockConfig {
	return &mockConfig{
		signingKey:      "test-signing-key",
		signingMethod:   "HS256",
		contextKey:      "user",
		tokenExpiration: 30,
		tokenLookup:     "header:Authorization",
		authScheme:      "Bearer",
		issuer:          "test-issuer",
		audience:        []string{"test-audience"},
	}
}

func (c *mockConfig) GetSigningKey() string   { return c.signingKey }
func (c *mockConfig) GetSigningMethod() string { return c.signingMethod }
func (c *mockConfig) GetContextKey() string   { return c.contextKey }
func (c *mockConfig) GetTokenExpiration() int { return c.tokenExpiration }
func (c *mockConfig) GetTokenLookup() string  { return c.tokenLookup }
func (c *mockConfig) GetAuthScheme() string   { return c.authScheme }
func (c *mockConfig) GetIssuer() string       { return c.issuer }
func (c *mockConfig) GetAudience() []string   { return c.audience }
