package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/arjun-dev21/teamforge/internal/apperr"
	"github.com/arjun-dev21/teamforge/internal/auth"
	"github.com/arjun-dev21/teamforge/internal/models"
	"github.com/arjun-dev21/teamforge/internal/repository"
)

// passwordCost is the bcrypt work factor applied to every stored
// password.
const passwordCost = 9

// avatarHost generates a deterministic identicon per username.
const avatarHost = "https://robohash.org/%s"

var (
	emailPattern    = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
)

// User handles registration, sign-in, and credential changes. Hashing
// happens only here, at the two sites where the plaintext password is
// actually new — never on unrelated profile updates, so a stored hash
// can't be hashed a second time.
type User struct {
	users  repository.UserRepository
	tokens *auth.TokenIssuer
	logger *zap.Logger
}

func NewUser(users repository.UserRepository, tokens *auth.TokenIssuer, logger *zap.Logger) *User {
	return &User{users: users, tokens: tokens, logger: logger}
}

type RegisterInput struct {
	Email    string
	Username string
	Password string
}

func validateRegisterInput(in RegisterInput) map[string][]string {
	fields := make(map[string][]string)

	if in.Email == "" {
		fields["email"] = append(fields["email"], "Email is required")
	} else if !emailPattern.MatchString(in.Email) {
		fields["email"] = append(fields["email"], "Please fill a valid email address")
	}

	if in.Username == "" {
		fields["username"] = append(fields["username"], "Username is required")
	} else {
		if len(in.Username) < 3 {
			fields["username"] = append(fields["username"], "Username must be at least 3 characters")
		}
		if !usernamePattern.MatchString(in.Username) {
			fields["username"] = append(fields["username"], "Username must contain only letters and numbers")
		}
	}

	if in.Password == "" {
		fields["password"] = append(fields["password"], "Password is required")
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Register validates the input, hashes the password, derives the avatar
// URL from the username, and persists the account. Unique violations on
// email or username come back as field-level validation errors.
func (s *User) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if fields := validateRegisterInput(in); fields != nil {
		return nil, apperr.Validation("invalid registration data", fields)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), passwordCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.users.Create(ctx, &models.User{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: string(hash),
		Avatar:       fmt.Sprintf(avatarHost, in.Username),
	})
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			switch {
			case strings.Contains(constraint, "email"):
				return nil, apperr.Validation("Email already exists", map[string][]string{
					"email": {"Email already exists"},
				})
			case strings.Contains(constraint, "username"):
				return nil, apperr.Validation("Username already exists", map[string][]string{
					"username": {"Username already exists"},
				})
			}
		}
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", created.ID.String()))
	return created, nil
}

// SignIn verifies the credentials and issues a signed token. An unknown
// email and a wrong password produce the same error so the response
// doesn't reveal which emails are registered.
func (s *User) SignIn(ctx context.Context, email, password string) (string, *models.User, error) {
	invalidCredentials := apperr.Unauthorized(
		"User credentials did not match",
		"invalid email or password",
	)

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, invalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, invalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Email, u.Username)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	return token, u, nil
}

// GetByID returns the account, raising a not-found domain error for an
// unknown ID.
func (s *User) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("Invalid id received", "user with this id does not exist")
	}
	return u, nil
}

// ChangePassword rehashes and stores a new password. This is the only
// update path that touches the password column.
func (s *User) ChangePassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	if newPassword == "" {
		return apperr.Validation("invalid password", map[string][]string{
			"password": {"Password is required"},
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), passwordCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.users.UpdatePassword(ctx, id, string(hash))
}
