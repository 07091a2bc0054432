package auth

import (
	"context"
	"errors"

	"roompla/internal/model"
	"roompla/internal/repository"
	"roompla/internal/utils"
)

// ErrUnauthorized is the single error returned for every failed login:
// unknown user, wrong password, failed directory bind, or missing
// directory attributes. Collapsing the causes prevents callers from
// probing which accounts exist and how they authenticate.
var ErrUnauthorized = errors.New("unauthorized")

// UserSource looks up local accounts. Implemented by repository.UserRepo.
type UserSource interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// Directory is the external directory the login flow delegates to when an
// account has no local password hash. Implementations must not retry; a
// failed bind surfaces once as a login failure.
type Directory interface {
	// Bind authenticates the identity with the supplied secret.
	Bind(ctx context.Context, userID, password string) error
	// FetchAttributes returns the display name and contact string of the
	// identity, or an error when either attribute is absent.
	FetchAttributes(ctx context.Context, userID string) (name, contact string, err error)
}

// Authenticator resolves login credentials and issues tokens. A local
// password hash, when stored, always wins; only accounts without one are
// delegated to the directory.
type Authenticator struct {
	Users     UserSource
	Directory Directory // nil disables directory fallback
	Secret    string
	TTLMin    int
}

// NewAuthenticator constructs an Authenticator. users must be non-nil;
// directory may be nil when no external directory is configured.
func NewAuthenticator(users UserSource, directory Directory, secret string, ttlMin int) *Authenticator {
	if users == nil {
		panic("nil user source passed to NewAuthenticator")
	}
	return &Authenticator{Users: users, Directory: directory, Secret: secret, TTLMin: ttlMin}
}

// Login verifies the credentials and returns a signed token embedding the
// user's identity. Every failure path returns ErrUnauthorized.
func (a *Authenticator) Login(ctx context.Context, userID, password string) (string, error) {
	u, err := a.Users.FindByID(ctx, userID)
	switch {
	case err == nil:
		if u.PasswordHash == nil {
			// No local hash is the sentinel for a directory-backed
			// account, not an error state.
			return a.directoryLogin(ctx, userID, password)
		}
		if !utils.VerifyPassword(*u.PasswordHash, password) {
			return "", ErrUnauthorized
		}
		return a.issue(userID, u.DisplayName, u.ContactInfo)
	case errors.Is(err, repository.ErrUserNotFound):
		return a.directoryLogin(ctx, userID, password)
	default:
		// Storage failure. Still reported as a generic login failure to
		// the caller; the handler logs the detail server-side.
		return "", err
	}
}

func (a *Authenticator) directoryLogin(ctx context.Context, userID, password string) (string, error) {
	if a.Directory == nil {
		return "", ErrUnauthorized
	}
	if err := a.Directory.Bind(ctx, userID, password); err != nil {
		return "", ErrUnauthorized
	}
	name, contact, err := a.Directory.FetchAttributes(ctx, userID)
	if err != nil {
		return "", ErrUnauthorized
	}
	return a.issue(userID, name, contact)
}

func (a *Authenticator) issue(userID, name, contact string) (string, error) {
	token, err := IssueToken(a.Secret, userID, name, contact, a.TTLMin)
	if err != nil {
		return "", err
	}
	return token, nil
}
