package catalog

import (
	"context"
	"net/http"
	"strings"

	"github.com/goliatone/go-errors"
)

// CurrentUserResolver is the request scoped gate in front of mutating
// operations. It extracts a bearer token, validates it, and resolves the
// subject back to a live user; every failure collapses into
// ErrUnauthenticated so the boundary fails closed.
type CurrentUserResolver struct {
	validator TokenValidator
	provider  IdentityProvider
	scheme    string
	logger    Logger
}

// NewCurrentUserResolver builds a resolver over a validator and an identity
// provider.
func NewCurrentUserResolver(validator TokenValidator, provider IdentityProvider) *CurrentUserResolver {
	return &CurrentUserResolver{
		validator: validator,
		provider:  provider,
		scheme:    "Bearer",
		logger:    defLogger{},
	}
}

func (r *CurrentUserResolver) WithLogger(l Logger) *CurrentUserResolver {
	r.logger = l
	return r
}

// WithAuthScheme overrides the expected authorization scheme.
func (r *CurrentUserResolver) WithAuthScheme(scheme string) *CurrentUserResolver {
	if scheme != "" {
		r.scheme = scheme
	}
	return r
}

// Resolve takes the raw Authorization header value and returns the
// authenticated identity. A missing or garbled header fails before the
// validator runs.
func (r *CurrentUserResolver) Resolve(ctx context.Context, authorization string) (Identity, error) {
	raw, err := r.extractBearer(authorization)
	if err != nil {
		return nil, err
	}

	claims, err := r.validator.Validate(raw)
	if err != nil {
		r.logger.Info("token validation rejected request", "error", err)
		return nil, unauthenticated(err)
	}

	return r.ResolveSubject(ctx, claims)
}

// ResolveSubject maps validated claims to a live user record. A subject whose
// user has been deleted since issuance is rejected rather than trusted.
func (r *CurrentUserResolver) ResolveSubject(ctx context.Context, claims AuthClaims) (Identity, error) {
	if claims == nil {
		return nil, ErrUnauthenticated
	}
	return r.ResolveIdentifier(ctx, claims.Subject())
}

// ResolveIdentifier looks up a live user for the given token subject.
func (r *CurrentUserResolver) ResolveIdentifier(ctx context.Context, identifier string) (Identity, error) {
	identity, err := r.provider.FindIdentityByIdentifier(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) || errors.Is(err, ErrIdentityNotFound) {
			r.logger.Info("token subject no longer exists", "subject", identifier)
			return nil, ErrUnauthenticated
		}
		return nil, WrapStoreError(err, "failed to resolve token subject")
	}

	return identity, nil
}

func (r *CurrentUserResolver) extractBearer(authorization string) (string, error) {
	header := strings.TrimSpace(authorization)
	l := len(r.scheme)
	if len(header) <= l+1 || !strings.EqualFold(header[:l], r.scheme) || header[l] != ' ' {
		return "", ErrUnauthenticated
	}

	raw := strings.TrimSpace(header[l:])
	if raw == "" || strings.ContainsAny(raw, " \t") {
		return "", ErrUnauthenticated
	}

	return raw, nil
}

func unauthenticated(cause error) error {
	return errors.Wrap(cause, ErrUnauthenticated.Category, ErrUnauthenticated.Message).
		WithTextCode(ErrUnauthenticated.TextCode).
		WithCode(http.StatusUnauthorized)
}
