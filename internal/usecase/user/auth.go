package user

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	domain "github.com/BruksfildServices01/medifind/internal/domain/user"
	"github.com/BruksfildServices01/medifind/internal/httperr"
	"github.com/BruksfildServices01/medifind/internal/models"
	"github.com/BruksfildServices01/medifind/internal/validators"
)

const minPasswordLength = 6

// TokenIssuer signs bearer tokens for a user id.
type TokenIssuer interface {
	Issue(userID uint) (string, error)
}

type AuthResult struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
	Role     string
}

type Register struct {
	repo     domain.Repository
	tokens   TokenIssuer
	resolver validators.Resolver
}

// NewRegister takes an optional resolver; when nil the email domain is
// not looked up.
func NewRegister(repo domain.Repository, tokens TokenIssuer, resolver validators.Resolver) *Register {
	return &Register{repo: repo, tokens: tokens, resolver: resolver}
}

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)

	if name == "" || email == "" || in.Password == "" {
		return nil, httperr.ErrValidation("missing_required_fields", "Name, email and password are required")
	}
	if !validators.IsEmail(email) {
		return nil, httperr.ErrValidation("invalid_email", "Email is not valid")
	}
	if len(in.Password) < minPasswordLength {
		return nil, httperr.ErrValidation("password_too_short", "Password must be at least 6 characters")
	}

	role := models.RoleUser
	if in.Role != "" {
		role = models.NormalizeRole(in.Role)
		if role != models.RoleUser && role != models.RolePharmacy {
			return nil, httperr.ErrValidation("invalid_role", "Role must be user or pharmacy")
		}
	}

	if uc.resolver != nil && !validators.IsEmailDomainValid(ctx, uc.resolver, email) {
		return nil, httperr.ErrValidation("invalid_email_domain", "The email domain does not appear to be valid")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, httperr.ErrInternal("failed_to_hash_password", err)
	}

	u := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        strings.TrimSpace(in.Phone),
		Address:      strings.TrimSpace(in.Address),
		Role:         role,
	}
	if err := uc.repo.Create(ctx, &u); err != nil {
		return nil, err
	}

	return authResult(uc.tokens, &u)
}

type Login struct {
	repo   domain.Repository
	tokens TokenIssuer
}

func NewLogin(repo domain.Repository, tokens TokenIssuer) *Login {
	return &Login{repo: repo, tokens: tokens}
}

var errInvalidCredentials = httperr.ErrValidation("invalid_credentials", "Invalid email or password")

func (uc *Login) Execute(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, httperr.ErrValidation("missing_required_fields", "Email and password are required")
	}

	u, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		if httperr.KindOf(err) == httperr.KindNotFound {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, errInvalidCredentials
		}
		return nil, httperr.ErrInternal("failed_to_verify_password", err)
	}

	return authResult(uc.tokens, u)
}

func authResult(tokens TokenIssuer, u *models.User) (*AuthResult, error) {
	tok, err := tokens.Issue(u.ID)
	if err != nil {
		return nil, httperr.ErrInternal("failed_to_generate_token", err)
	}
	return &AuthResult{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  models.NormalizeRole(u.Role),
		Token: tok,
	}, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
