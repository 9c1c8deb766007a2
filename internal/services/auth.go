package services

import (
	"context"
	"errors"

	"github.com/ayerecipes/recipes-api/internal/logger"
	"github.com/ayerecipes/recipes-api/internal/models"
	"github.com/ayerecipes/recipes-api/internal/password"
)

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserDoesNotExist   = errors.New("user does not exist")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, email, passwordHash, name string) (*models.UserDB, error)
}

// JWTGenerator defines an interface for issuing and resolving tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, email string) (string, error)
	GetSubject(ctx context.Context, tokenString string) (string, error)
}

// AuthService handles registration, login and session verification.
type AuthService struct {
	reader UserReader
	writer UserWriter
	jwt    JWTGenerator
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, jwt JWTGenerator) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		jwt:    jwt,
	}
}

// Register creates a new user and issues a token for it. The email existence
// pre-check is not transactional; the unique index on email backstops the
// race window.
func (svc *AuthService) Register(ctx context.Context, email, passwd, name string) (*models.UserDB, string, error) {
	existing, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, "", err
	}
	if existing != nil {
		logger.Log.Errorw("user already exists", "email", email)
		return nil, "", ErrUserAlreadyExists
	}

	hashed, err := password.Hash(passwd)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, "", err
	}

	user, err := svc.writer.Save(ctx, email, hashed, name)
	if err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, "", err
	}

	token, err := svc.jwt.Generate(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return nil, "", err
	}

	return user, token, nil
}

// Login authenticates a user and returns the user with a fresh token.
// Unknown email and wrong password produce the same error so callers
// cannot enumerate registered accounts.
func (svc *AuthService) Login(ctx context.Context, email, passwd string) (*models.UserDB, string, error) {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, "", err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "email", email)
		return nil, "", ErrInvalidCredentials
	}

	if !password.Verify(passwd, user.Password) {
		logger.Log.Errorw("invalid credentials", "email", email)
		return nil, "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return nil, "", err
	}

	return user, token, nil
}

// Verify resolves a token to its user. The user record is re-fetched so a
// deleted user loses access immediately even with an unexpired token.
func (svc *AuthService) Verify(ctx context.Context, token string) (*models.UserDB, error) {
	email, err := svc.jwt.GetSubject(ctx, token)
	if err != nil {
		logger.Log.Errorw("failed to resolve token", "err", err)
		return nil, ErrInvalidToken
	}

	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		logger.Log.Errorw("user behind token is gone", "email", email)
		return nil, ErrUserDoesNotExist
	}

	return user, nil
}
