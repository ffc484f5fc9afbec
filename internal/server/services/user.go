// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, credential changes, and
// the read-side user projections.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/antonk9218/paybuddy/internal/common"
	"github.com/antonk9218/paybuddy/internal/dbx"
	"github.com/antonk9218/paybuddy/internal/server/auth"
	"github.com/antonk9218/paybuddy/internal/server/config"
	"github.com/antonk9218/paybuddy/internal/server/hashing"
	"github.com/antonk9218/paybuddy/internal/server/models"
	"github.com/antonk9218/paybuddy/internal/server/repositories/repomanager"
	"github.com/antonk9218/paybuddy/internal/server/views"
)

// UserService provides account-related operations:
// - Register: create users with a hashed password
// - Login: verify credentials and mint an access token
// - ChangePassword: rotate the stored hash after re-authentication
// - FindAll / Profile: read-side projections (never expose the hash)
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	hasher                      hashing.Hasher
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, h hashing.Hasher, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		hasher:                      h,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a new user. The plaintext password is hashed before it is
// stored; the returned user carries the hash, callers must project it through
// the views package before exposing it.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if username == "" {
		return nil, common.Validationf("username must not be empty")
	}
	if email == "" {
		return nil, common.Validationf("email must not be empty")
	}
	if password == "" {
		return nil, common.Validationf("password must not be empty")
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	var created *models.User
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetByEmail(ctx, email)
		if err == nil {
			return common.AlreadyExistsf("email %q is already in use", email)
		}
		if !errors.Is(err, common.ErrNotFound) {
			return err
		}

		created, err = repo.Create(ctx, &models.User{Username: username, Email: email, Password: hashed})
		return err
	}); err != nil {
		return nil, err
	}
	return created, nil
}

// Login verifies the email/password pair and returns a signed access token.
// Unknown email and wrong password both yield ErrUnauthorized so the response
// does not reveal whether the account exists.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.VerifyCredentials(ctx, email, password)
	if err != nil {
		return "", err
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrInternal
	}
	return token, nil
}

// VerifyCredentials checks the email/password pair and returns the matching
// user. Failures collapse to ErrUnauthorized.
func (s *UserService) VerifyCredentials(ctx context.Context, email, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}
	if !s.hasher.Verify(password, user.Password) {
		return nil, common.ErrUnauthorized
	}
	return user, nil
}

// ChangePassword re-authenticates the user by current password and replaces
// the stored hash with a hash of newPassword. All rule failures, including a
// missing user, surface as validation errors because the operation is driven
// by form input.
func (s *UserService) ChangePassword(ctx context.Context, email, currentPassword, newPassword, confirmPassword string) error {
	if newPassword == "" {
		return common.Validationf("new password must not be empty")
	}
	if newPassword != confirmPassword {
		return common.Validationf("new password and confirmation do not match")
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		user, err := repo.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.Validationf("unknown user %q", email)
			}
			return err
		}
		if !s.hasher.Verify(currentPassword, user.Password) {
			return common.Validationf("current password does not match")
		}
		return repo.UpdatePassword(ctx, email, hashed)
	})
}

// FindByEmail returns the user with the given email.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByEmail(ctx, email)
}

// FindByID returns the user with the given id.
func (s *UserService) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

// FindAll returns the public projection of every registered user.
func (s *UserService) FindAll(ctx context.Context) ([]views.User, error) {
	users, err := s.repomanager.Users(s.db).GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]views.User, 0, len(users))
	for _, u := range users {
		result = append(result, views.PublicUser(u))
	}
	return result, nil
}

// Profile returns the masked projection of the user's own account: the email
// local part is hidden except for its first character.
func (s *UserService) Profile(ctx context.Context, userID int64) (*views.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	v := views.MaskedUser(user)
	return &v, nil
}
