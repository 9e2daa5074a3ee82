package usecase

import (
	"context"

	"localmarket/internal/domain/entity"
	"localmarket/internal/domain/policy"
	"localmarket/internal/domain/repository"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
	}
}

// GetUser is limited to the user themselves and admins. The check runs
// before the lookup so outsiders cannot probe which ids exist.
func (uc *UserUseCase) GetUser(ctx context.Context, actor policy.Actor, id string) (*entity.User, error) {
	if err := policy.Authorize(actor, policy.ViewUser, id); err != nil {
		return nil, err
	}
	return uc.userRepo.GetByID(ctx, id)
}

// Actor loads the caller's stored role. A caller with a valid token but no
// user record gets an actor with an empty role.
func (uc *UserUseCase) Actor(ctx context.Context, uid string) (policy.Actor, error) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		if isNotFound(err) {
			return policy.Actor{UserID: uid}, nil
		}
		return policy.Actor{}, err
	}
	return policy.Actor{UserID: uid, Role: user.Role}, nil
}
