package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"taskboard/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for a bad email/password pair. A missing
// account and a wrong password are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const minPasswordLen = 8

// AuthService is the identity collaborator: registration, credential
// verification and token issuance.
type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Register creates a user with a unique email and username. When username is
// empty it is derived from the email local-part, disambiguated with a numeric
// suffix on collision.
func (s *AuthService) Register(ctx context.Context, email, username, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)

	if !emailRe.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email", domain.ErrValidation)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLen)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: a user with this email already exists", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if username == "" {
		derived, err := s.deriveUsername(ctx, email)
		if err != nil {
			return nil, err
		}
		username = derived
	} else {
		taken, err := s.users.UsernameExists(ctx, username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: a user with this username already exists", domain.ErrConflict)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	// unique indexes on email and username catch races the pre-checks miss
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// deriveUsername takes the email local-part and appends 2, 3, ... until the
// name is free.
func (s *AuthService) deriveUsername(ctx context.Context, email string) (string, error) {
	base := email[:strings.Index(email, "@")]
	candidate := base
	for i := 2; ; i++ {
		taken, err := s.users.UsernameExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
}

// Login verifies credentials and issues a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// GetUser resolves a user by id.
func (s *AuthService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// LookupByEmail resolves a user by email, for inviting project members.
func (s *AuthService) LookupByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}
