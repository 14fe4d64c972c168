package catalog

import (
	"context"

	"github.com/goliatone/go-errors"
)

// UserProvider adapts a UserStore into an IdentityProvider and
// CredentialStore for the authenticator.
type UserProvider struct {
	store  UserStore
	logger Logger
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserStore) *UserProvider {
	return &UserProvider{
		store:  store,
		logger: defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	u.logger = l
	return u
}

// VerifyIdentity will find the user, compare the password, and return the
// identity. A missing record and a failed comparison collapse into the same
// error on purpose.
func (u UserProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	user, err := u.store.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "password comparison failed")
	}

	return NewIdentityFromUser(user), nil
}

// FindIdentityByIdentifier resolves an identifier to an identity without
// checking a password. Used by the request scoped resolver.
func (u UserProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error) {
	user, err := u.store.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, ErrIdentityNotFound
	}

	return NewIdentityFromUser(user), nil
}

// UpdatePasswordHash replaces the stored hash for the identified user.
func (u UserProvider) UpdatePasswordHash(ctx context.Context, identifier, passwordHash string) error {
	user, err := u.store.GetByIdentifier(ctx, identifier)
	if err != nil {
		return err
	}

	if user == nil {
		return ErrIdentityNotFound
	}

	return u.store.UpdatePasswordHash(ctx, user.ID, passwordHash)
}

var _ IdentityProvider = UserProvider{}
var _ CredentialStore = UserProvider{}
