package catalog

import (
	"context"
	"reflect"

	"github.com/goliatone/go-errors"
)

// Auther composes an IdentityProvider with the TokenService to implement the
// Authenticator interface.
type Auther struct {
	provider       IdentityProvider
	credentials    CredentialStore
	signingKey     []byte
	tokenService   TokenService
	tokenValidator TokenValidator
	logger         Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(provider IdentityProvider, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenExpiration(),
		opts.GetIssuer(),
		opts.GetAudience(),
		defLogger{},
	)

	return &Auther{
		provider:     provider,
		signingKey:   []byte(opts.GetSigningKey()),
		tokenService: tokenService,
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

// WithCredentialStore configures the store used by ChangePassword to replace
// password hashes.
func (s *Auther) WithCredentialStore(store CredentialStore) *Auther {
	s.credentials = store
	return s
}

// WithTokenValidator sets a custom token validator for externally issued tokens.
func (s *Auther) WithTokenValidator(validator TokenValidator) *Auther {
	s.tokenValidator = validator
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Authenticate verifies a username/password pair against the identity
// provider. A missing user and a wrong password produce the same failure so
// callers cannot enumerate usernames.
func (s *Auther) Authenticate(ctx context.Context, identifier, password string) (Identity, error) {
	identity, err := s.provider.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		return nil, err
	}

	if identity == nil || reflect.ValueOf(identity).IsZero() {
		return nil, ErrInvalidCredentials
	}

	return identity, nil
}

// Login authenticates and, on success, issues a bearer token whose subject is
// the username.
func (s *Auther) Login(ctx context.Context, identifier, password string) (string, error) {
	identity, err := s.Authenticate(ctx, identifier, password)
	if err != nil {
		s.logger.Info("Login failed", "identifier", identifier)
		return "", err
	}

	token, err := s.tokenService.Generate(identity)
	if err != nil {
		s.logger.Error("Login token generation error", "error", err)
		return "", err
	}

	return token, nil
}

// ChangePassword verifies the current password and atomically replaces the
// stored hash with a hash of the new one. Unlike Login it distinguishes a
// missing user from a wrong password so the HTTP layer can map 404 vs 401;
// outstanding tokens stay valid until natural expiry.
func (s *Auther) ChangePassword(ctx context.Context, identifier, currentPassword, newPassword string) error {
	if s.credentials == nil {
		return errors.New(errors.CategoryInternal, "authenticator has no credential store configured")
	}

	if _, err := s.provider.FindIdentityByIdentifier(ctx, identifier); err != nil {
		if errors.IsNotFound(err) || errors.Is(err, ErrIdentityNotFound) {
			return ErrIdentityNotFound
		}
		return err
	}

	if _, err := s.Authenticate(ctx, identifier, currentPassword); err != nil {
		return err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.credentials.UpdatePasswordHash(ctx, identifier, hash); err != nil {
		return WrapStoreError(err, "failed to persist new password hash")
	}

	return nil
}

// ClaimsFromToken validates a raw bearer token and returns its claims
func (s *Auther) ClaimsFromToken(raw string) (AuthClaims, error) {
	validator := s.tokenValidator
	if validator == nil {
		validator = s.tokenService
	}

	claims, err := validator.Validate(raw)
	if err != nil {
		s.logger.Error("ClaimsFromToken validation failed", "error", err)
		return nil, err
	}

	return claims, nil
}

// IdentityFromClaims resolves the claims subject back to a live identity.
// The user may have been deleted since the token was issued; the stale
// subject is never trusted.
func (s *Auther) IdentityFromClaims(ctx context.Context, claims AuthClaims) (Identity, error) {
	if claims == nil {
		return nil, ErrUnableToParseData
	}

	identity, err := s.provider.FindIdentityByIdentifier(ctx, claims.Subject())
	if err != nil {
		s.logger.Error("IdentityFromClaims lookup failed", "error", err)
		return nil, err
	}

	return identity, nil
}

var _ Authenticator = (*Auther)(nil)
