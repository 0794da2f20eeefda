package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"go-gin-blog/internal/domain"
	"go-gin-blog/pkg/utils"
)

var errInvalidCredentials = domain.NewError(domain.KindUnauthorized, "", "invalid credentials")

// TokenIssuer signs session tokens; *auth.JWTer satisfies it.
type TokenIssuer interface {
	Issue(uid, email, role string) (string, error)
}

type AuthService struct {
	users  domain.UserRepository
	tokens TokenIssuer
	now    func() time.Time
}

func NewAuthService(users domain.UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens, now: time.Now}
}

// Login checks email/password and issues a token. Unknown emails and bad
// passwords fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNoRecord) {
			return "", nil, errInvalidCredentials
		}
		return "", nil, domain.Wrap(domain.KindStoreUnavailable, "find user", err)
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return "", nil, errInvalidCredentials
	}
	tok, err := s.tokens.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return tok, u, nil
}

// Known reports whether uid still names a user; sessions of deleted users stop working.
func (s *AuthService) Known(ctx context.Context, uid string) (bool, error) {
	_, err := s.users.FindByID(ctx, uid)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrNoRecord):
		return false, nil
	default:
		return false, err
	}
}

func (s *AuthService) Me(ctx context.Context, uid string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrNoRecord) {
			return nil, domain.NewError(domain.KindUnauthorized, "", "user no longer exists")
		}
		return nil, domain.Wrap(domain.KindStoreUnavailable, "find user", err)
	}
	return u, nil
}

// CreateUser registers a login. Used by the operator CLI, not exposed over HTTP.
func (s *AuthService) CreateUser(ctx context.Context, email, password, name, role string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if role == "" {
		role = domain.RoleUser
	}
	err := firstInvalid(
		check("email", email, validation.Required, is.EmailFormat),
		check("password", password, validation.Required, validation.RuneLength(8, 128)),
		check("role", role, validation.In(domain.RoleUser, domain.RoleAdmin)),
	)
	if err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if name == "" {
		name = email[:strings.IndexByte(email, '@')]
	}
	now := s.now().UTC().Truncate(time.Microsecond)
	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewError(domain.KindInvalidField, "email", "already registered")
		}
		return nil, domain.Wrap(domain.KindStoreUnavailable, "create user", err)
	}
	return u, nil
}
