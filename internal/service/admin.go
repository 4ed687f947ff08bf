package service

import (
	"context"

	"github.com/rs/zerolog/log"

	apperrors "github.com/shelfwise/library-server-go/internal/errors"
	"github.com/shelfwise/library-server-go/internal/model"
	"github.com/shelfwise/library-server-go/internal/repository"
	"github.com/shelfwise/library-server-go/internal/util"
)

// AdminService owns admin credentials and the API bearer tokens derived
// from them.
type AdminService struct {
	adminRepo repository.AdminUserRepository
	tokenRepo repository.AuthTokenRepository
}

func NewAdminService(
	adminRepo repository.AdminUserRepository,
	tokenRepo repository.AuthTokenRepository,
) *AdminService {
	return &AdminService{
		adminRepo: adminRepo,
		tokenRepo: tokenRepo,
	}
}

// ValidateSignup checks a signup submission, returning the normalized email
// and a field-error map shared by the HTML form and the JSON endpoint.
func ValidateSignup(email, password string) (string, map[string]string) {
	fields := make(map[string]string)

	email = util.NormalizeEmail(email)
	if email == "" {
		fields["email"] = "Email is required"
	} else if !util.IsValidEmail(email) {
		fields["email"] = "Enter a valid email address"
	}
	if password == "" {
		fields["password"] = "Password is required"
	}

	if len(fields) > 0 {
		return email, fields
	}
	return email, nil
}

// Signup creates a new admin user. The raw password is bcrypt-hashed and
// never persisted. A duplicate email surfaces as a field error, whether it
// was caught by the pre-check or by the unique constraint when two signups
// race.
func (s *AdminService) Signup(ctx context.Context, email, password string) (*model.AdminUser, error) {
	email, fields := ValidateSignup(email, password)
	if fields != nil {
		return nil, apperrors.ValidationFailed(fields)
	}

	existing, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if existing != nil {
		return nil, apperrors.ValidationFailed(map[string]string{
			"email": "An admin with this email already exists",
		})
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password").WithCause(err)
	}

	user, err := s.adminRepo.Create(ctx, model.CreateAdminUserParams{
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.ValidationFailed(map[string]string{
				"email": "An admin with this email already exists",
			})
		}
		return nil, apperrors.Database(err)
	}

	log.Info().Str("userId", user.ID).Msg("admin user created")

	return user, nil
}

// Verify checks email+password against the stored hash. It returns nil for
// both an unknown email and a wrong password so callers cannot tell the two
// apart.
func (s *AdminService) Verify(ctx context.Context, email, password string) (*model.AdminUser, error) {
	user, err := s.adminRepo.FindByEmail(ctx, util.NormalizeEmail(email))
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if user == nil {
		return nil, nil
	}
	if !util.CheckPasswordHash(password, user.PasswordHash) {
		return nil, nil
	}
	return user, nil
}

// IssueToken returns the admin's bearer token, minting one on first use.
// Repeated calls return the same token.
func (s *AdminService) IssueToken(ctx context.Context, userID string) (string, error) {
	existing, err := s.tokenRepo.FindByUserID(ctx, userID)
	if err != nil {
		return "", apperrors.Database(err)
	}
	if existing != nil {
		return existing.Token, nil
	}

	token, err := util.GenerateToken()
	if err != nil {
		return "", apperrors.Internal("Failed to generate token").WithCause(err)
	}

	created, err := s.tokenRepo.Create(ctx, model.CreateAuthTokenParams{
		Token:     token,
		TokenHash: util.HashToken(token),
		UserID:    userID,
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			// A concurrent request minted the token first; use that one.
			existing, ferr := s.tokenRepo.FindByUserID(ctx, userID)
			if ferr != nil || existing == nil {
				return "", apperrors.Database(err)
			}
			return existing.Token, nil
		}
		return "", apperrors.Database(err)
	}

	log.Info().Str("userId", userID).Msg("api token issued")

	return created.Token, nil
}

// ResolveToken looks up the admin owning a bearer token. Unknown tokens
// resolve to nil without error.
func (s *AdminService) ResolveToken(ctx context.Context, token string) (*model.AdminUser, error) {
	record, err := s.tokenRepo.FindByTokenHash(ctx, util.HashToken(token))
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if record == nil {
		return nil, nil
	}
	return s.adminRepo.FindByID(ctx, record.UserID)
}
