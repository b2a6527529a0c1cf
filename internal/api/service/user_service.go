package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/apperr"
	"reviewhub/internal/permission"
)

// CreateUserInput carries admin-settable user fields.
type CreateUserInput struct {
	Email     string
	Username  *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      permission.Role
}

// UpdateProfileInput carries self-service profile fields. The role is
// deliberately absent: only the admin path may change it.
type UpdateProfileInput struct {
	Username  *string
	FirstName *string
	LastName  *string
	Bio       *string
}

type UserService interface {
	Create(ctx context.Context, actor *permission.Actor, input CreateUserInput) (*models.User, error)
	Update(ctx context.Context, actor *permission.Actor, username string, input CreateUserInput) (*models.User, error)
	Delete(ctx context.Context, actor *permission.Actor, username string) error
	Get(ctx context.Context, actor *permission.Actor, username string) (*models.User, error)
	List(ctx context.Context, actor *permission.Actor, page, pageSize int) ([]models.User, int64, error)
	GetProfile(ctx context.Context, actor *permission.Actor) (*models.User, error)
	UpdateProfile(ctx context.Context, actor *permission.Actor, input UpdateProfileInput) (*models.User, error)
}

type userService struct {
	userRepo   repository.UserRepository
	reviewRepo repository.ReviewRepository
	aggregator RatingAggregator
}

func NewUserService(
	userRepo repository.UserRepository,
	reviewRepo repository.ReviewRepository,
	aggregator RatingAggregator,
) UserService {
	return &userService{
		userRepo:   userRepo,
		reviewRepo: reviewRepo,
		aggregator: aggregator,
	}
}

func (s *userService) Create(ctx context.Context, actor *permission.Actor, input CreateUserInput) (*models.User, error) {
	if err := authorize(actor, permission.ActionCreate, permission.ResourceUser, ""); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = permission.RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q: %w", input.Role, apperr.ErrValidation)
	}

	user := &models.User{
		Email:     input.Email,
		Username:  input.Username,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("email or username already in use: %w", apperr.ErrConflict)
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, actor *permission.Actor, username string, input CreateUserInput) (*models.User, error) {
	if err := authorize(actor, permission.ActionUpdate, permission.ResourceUser, ""); err != nil {
		return nil, err
	}

	user, err := s.getByUsernameOrNotFound(ctx, username)
	if err != nil {
		return nil, err
	}

	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Username != nil {
		user.Username = input.Username
	}
	if input.FirstName != nil {
		user.FirstName = input.FirstName
	}
	if input.LastName != nil {
		user.LastName = input.LastName
	}
	if input.Bio != nil {
		user.Bio = input.Bio
	}
	if input.Role != "" {
		if !input.Role.Valid() {
			return nil, fmt.Errorf("unknown role %q: %w", input.Role, apperr.ErrValidation)
		}
		user.Role = input.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("email or username already in use: %w", apperr.ErrConflict)
		}
		return nil, err
	}
	return user, nil
}

// Delete removes the user; their reviews and comments cascade away at the
// database level, so the ratings of every title they reviewed are
// recomputed afterwards.
func (s *userService) Delete(ctx context.Context, actor *permission.Actor, username string) error {
	if err := authorize(actor, permission.ActionDelete, permission.ResourceUser, ""); err != nil {
		return err
	}

	user, err := s.getByUsernameOrNotFound(ctx, username)
	if err != nil {
		return err
	}

	titleIDs, err := s.reviewRepo.TitleIDsByAuthor(ctx, user.ID)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %q: %w", username, apperr.ErrNotFound)
		}
		return err
	}

	for _, titleID := range titleIDs {
		if err := s.aggregator.Recompute(ctx, titleID); err != nil {
			return err
		}
	}
	return nil
}

func (s *userService) Get(ctx context.Context, actor *permission.Actor, username string) (*models.User, error) {
	if err := authorize(actor, permission.ActionRetrieve, permission.ResourceUser, ""); err != nil {
		return nil, err
	}
	return s.getByUsernameOrNotFound(ctx, username)
}

func (s *userService) List(ctx context.Context, actor *permission.Actor, page, pageSize int) ([]models.User, int64, error) {
	if err := authorize(actor, permission.ActionList, permission.ResourceUser, ""); err != nil {
		return nil, 0, err
	}
	return s.userRepo.List(ctx, page, pageSize)
}

// GetProfile is the self-service path: any authenticated actor reads their
// own record regardless of role.
func (s *userService) GetProfile(ctx context.Context, actor *permission.Actor) (*models.User, error) {
	if err := authorize(actor, permission.ActionRetrieve, permission.ResourceProfile, ""); err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(ctx, actor.ID)
}

func (s *userService) UpdateProfile(ctx context.Context, actor *permission.Actor, input UpdateProfileInput) (*models.User, error) {
	if err := authorize(actor, permission.ActionUpdate, permission.ResourceProfile, ""); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		user.Username = input.Username
	}
	if input.FirstName != nil {
		user.FirstName = input.FirstName
	}
	if input.LastName != nil {
		user.LastName = input.LastName
	}
	if input.Bio != nil {
		user.Bio = input.Bio
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("username already in use: %w", apperr.ErrConflict)
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) getByUsernameOrNotFound(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %q: %w", username, apperr.ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}
