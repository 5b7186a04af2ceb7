package forum

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/ryob/pkg/logger"
)

// Identity registers and authenticates users.
type Identity struct {
	users   UserRepository
	hasher  PasswordHasher
	log     *slog.Logger
	metrics *Metrics
}

// IdentityOption configures an Identity.
type IdentityOption func(*Identity)

// WithIdentityLogger sets the logger. Defaults to a no-op logger.
func WithIdentityLogger(l *slog.Logger) IdentityOption {
	return func(i *Identity) {
		if l != nil {
			i.log = l
		}
	}
}

// WithHasher replaces the default bcrypt hasher.
func WithHasher(h PasswordHasher) IdentityOption {
	return func(i *Identity) {
		if h != nil {
			i.hasher = h
		}
	}
}

// WithIdentityMetrics enables registration and login counters.
func WithIdentityMetrics(m *Metrics) IdentityOption {
	return func(i *Identity) {
		i.metrics = m
	}
}

// NewIdentity creates an Identity over users.
func NewIdentity(users UserRepository, opts ...IdentityOption) *Identity {
	i := &Identity{
		users:  users,
		hasher: NewBcryptHasher(DefaultBcryptCost),
		log:    logger.NewNope(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Register hashes password and stores a new user.
// Name and password are expected to be validated already.
func (i *Identity) Register(ctx context.Context, name, password string) (User, error) {
	hash, err := i.hasher.Hash(password)
	if err != nil {
		i.metrics.registration(outcomeError)
		i.log.ErrorContext(ctx, "failed to hash password", slog.String("name", name), slog.Any("error", err))
		return User{}, err
	}

	u, err := i.users.CreateUser(ctx, name, hash)
	if err != nil {
		err = storageError(err)
		if errors.Is(err, ErrNameAlreadyInUse) {
			i.metrics.registration(outcomeConflict)
			i.log.InfoContext(ctx, "registration rejected: name in use", slog.String("name", name))
			return User{}, err
		}
		i.metrics.registration(outcomeError)
		i.log.ErrorContext(ctx, "failed to create user", slog.String("name", name), slog.Any("error", err))
		return User{}, err
	}

	i.metrics.registration(outcomeSuccess)
	i.log.InfoContext(ctx, "user registered",
		slog.String("user_id", u.ID.String()),
		slog.String("name", u.Name),
	)
	return u, nil
}

// Login checks the credentials. An unknown name and a wrong password both
// yield ErrBadLogin.
func (i *Identity) Login(ctx context.Context, name, password string) (User, error) {
	u, err := i.users.UserByName(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNoSuchUser) {
			i.metrics.login(outcomeRejected)
			return User{}, ErrBadLogin
		}
		i.metrics.login(outcomeError)
		return User{}, storageError(err)
	}

	ok, err := i.hasher.Verify(u.PasswordHash, password)
	if err != nil {
		i.metrics.login(outcomeError)
		i.log.ErrorContext(ctx, "failed to verify password",
			slog.String("user_id", u.ID.String()),
			slog.Any("error", err),
		)
		return User{}, err
	}
	if !ok {
		i.metrics.login(outcomeRejected)
		return User{}, ErrBadLogin
	}

	i.metrics.login(outcomeSuccess)
	i.log.InfoContext(ctx, "user logged in",
		slog.String("user_id", u.ID.String()),
		slog.String("name", u.Name),
	)
	return u, nil
}

// FindByName returns the user with the given name or ErrNoSuchUser.
func (i *Identity) FindByName(ctx context.Context, name string) (User, error) {
	u, err := i.users.UserByName(ctx, name)
	if err != nil {
		return User{}, storageError(err)
	}
	return u, nil
}

// FindByID returns the user with the given id or ErrNoSuchUser.
func (i *Identity) FindByID(ctx context.Context, id UserID) (User, error) {
	u, err := i.users.UserByID(ctx, id)
	if err != nil {
		return User{}, storageError(err)
	}
	return u, nil
}
