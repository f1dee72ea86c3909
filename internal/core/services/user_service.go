package services

import (
	"context"
	"errors"

	"librental/internal/adapters/persistence/models"
	"librental/internal/adapters/persistence/repositories"
	"librental/internal/core/domain"
	"librental/internal/pkg/password"

	"gorm.io/gorm"
)

// User service errors
var (
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrOldPasswordWrong    = errors.New("old password is incorrect")
	ErrCannotDeleteSelf    = errors.New("cannot delete your own account")
	ErrCannotChangeOwnRole = errors.New("cannot change your own role")
)

// UserService handles user management business logic
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List lists users with pagination
func (s *UserService) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	return s.userRepo.List(ctx, offset, limit)
}

// GetByID gets a user by ID
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateUserByAdminInput represents update user input (for admin)
type UpdateUserByAdminInput struct {
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// UpdateByAdmin updates a user's account by an admin
func (s *UserService) UpdateByAdmin(ctx context.Context, id uint, adminID uint, input *UpdateUserByAdminInput) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if id == adminID && input.Role != nil {
		return nil, ErrCannotChangeOwnRole
	}

	if input.Email != nil && *input.Email != user.Email {
		exists, _ := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if exists {
			return nil, ErrEmailAlreadyExists
		}
		user.Email = *input.Email
	}

	if input.Role != nil {
		switch *input.Role {
		case models.RoleUser, models.RoleLibrarian, models.RoleAdmin:
			user.Role = *input.Role
		default:
			return nil, errors.New("invalid role")
		}
	}

	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete soft deletes a user
func (s *UserService) Delete(ctx context.Context, id uint, adminID uint) error {
	if id == adminID {
		return ErrCannotDeleteSelf
	}

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	return s.userRepo.Delete(ctx, id)
}

// UpdateProfileInput represents update profile input (for self)
type UpdateProfileInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UpdateProfile updates own profile
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input *UpdateProfileInput) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}

	if input.Email != nil && *input.Email != user.Email {
		exists, _ := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if exists {
			return nil, ErrEmailAlreadyExists
		}
		user.Email = *input.Email
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ChangePasswordInput represents change password input
type ChangePasswordInput struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangePassword changes user's password
func (s *UserService) ChangePassword(ctx context.Context, userID uint, input *ChangePasswordInput) error {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !password.Verify(input.OldPassword, user.Password) {
		return ErrOldPasswordWrong
	}

	if !password.ValidatePassword(input.NewPassword) {
		return errors.New("new password must be at least 8 characters")
	}

	hashedPassword, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	return s.userRepo.Update(ctx, user)
}
