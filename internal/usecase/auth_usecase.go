package usecase

import (
	"context"
	"strings"
	"time"

	"localmarket/internal/domain/entity"
	"localmarket/internal/domain/repository"
	"localmarket/pkg/errors"
	"localmarket/pkg/logger"
)

type AuthUseCase struct {
	userRepo    repository.UserRepository
	identity    IdentityProvider
	adminEmails map[string]bool
}

// NewAuthUseCase builds the signup flow. Accounts whose email is listed in
// adminEmails are created with the admin role.
func NewAuthUseCase(userRepo repository.UserRepository, identity IdentityProvider, adminEmails []string) *AuthUseCase {
	admins := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			admins[e] = true
		}
	}
	return &AuthUseCase{
		userRepo:    userRepo,
		identity:    identity,
		adminEmails: admins,
	}
}

type SignupInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Role     string
}

// Signup creates the identity first, then the user record and, for sellers,
// an empty seller profile named after the user.
func (uc *AuthUseCase) Signup(ctx context.Context, input SignupInput) (*entity.User, error) {
	role := input.Role
	if role == "" {
		role = entity.RoleBuyer
	}
	if role != entity.RoleBuyer && role != entity.RoleSeller {
		return nil, errors.BadRequest("role must be one of: buyer seller", nil)
	}
	if uc.adminEmails[strings.ToLower(input.Email)] {
		role = entity.RoleAdmin
	}

	uid, err := uc.identity.CreateUser(ctx, input.Email, input.Password, input.Name)
	if err != nil {
		if appErr, ok := errors.As(err); ok && appErr.Status < 500 {
			logger.Warn("Signup rejected by identity provider for %s: %s", input.Email, appErr.Message)
			return nil, appErr
		}
		return nil, errors.Internal("Failed to create account", err)
	}

	user := &entity.User{
		ID:        uid,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}

	var seller *entity.SellerProfile
	if role == entity.RoleSeller {
		seller = entity.NewSellerProfile(uid, input.Name)
	}

	if err := uc.userRepo.Create(ctx, user, seller); err != nil {
		logger.Error("Identity %s created but user record failed: %v", uid, err)
		return nil, err
	}

	logger.Info("New %s account: %s", role, uid)
	return user, nil
}
