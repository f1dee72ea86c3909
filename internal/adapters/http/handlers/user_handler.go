package handlers

import (
	"errors"
	"strconv"

	"librental/internal/adapters/persistence/models"
	"librental/internal/core/domain"
	"librental/internal/core/services"
	"librental/internal/pkg/pagination"
	"librental/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// List lists users
// @Summary List users
// @Description List users with pagination (Admin only)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	users, total, err := h.userService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	data := make([]*models.UserResponse, 0, len(users))
	for _, u := range users {
		data = append(data, u.ToResponse())
	}

	result := pagination.NewResponse(data, params, total)

	return response.Success(c, "Users retrieved successfully", result)
}

// GetByID gets a user by ID
// @Summary Get user by ID
// @Description Get a specific user (Admin only)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, err := h.userService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get user")
	}

	return response.Success(c, "User retrieved successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}

// UpdateUserRequest represents admin update user request
type UpdateUserRequest struct {
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// Update updates a user's account
// @Summary Update user
// @Description Update a user's email, role or active flag (Admin only)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body UpdateUserRequest true "User data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	adminID, _ := c.Locals("userID").(uint)

	input := &services.UpdateUserByAdminInput{
		Email:    req.Email,
		Role:     req.Role,
		IsActive: req.IsActive,
	}

	user, err := h.userService.UpdateByAdmin(c.Context(), uint(id), adminID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, services.ErrEmailAlreadyExists):
			return response.Conflict(c, "Email already exists")
		case errors.Is(err, services.ErrCannotChangeOwnRole):
			return response.BadRequest(c, "Cannot change your own role")
		default:
			return response.BadRequest(c, err.Error())
		}
	}

	return response.Success(c, "User updated successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}

// Delete soft deletes a user
// @Summary Delete user
// @Description Soft delete a user account (Admin only)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	adminID, _ := c.Locals("userID").(uint)

	if err := h.userService.Delete(c.Context(), uint(id), adminID); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, services.ErrCannotDeleteSelf):
			return response.BadRequest(c, "Cannot delete your own account")
		default:
			return response.InternalServerError(c, "Failed to delete user")
		}
	}

	return response.Success(c, "User deleted successfully", nil)
}

// UpdateProfileRequest represents update profile request
type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UpdateProfile updates the current user's profile
// @Summary Update profile
// @Description Update the current user's name or email
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateProfileRequest true "Profile data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/me [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.UpdateProfileInput{
		Name:  req.Name,
		Email: req.Email,
	}

	user, err := h.userService.UpdateProfile(c.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailAlreadyExists):
			return response.Conflict(c, "Email already exists")
		default:
			return response.InternalServerError(c, "Failed to update profile")
		}
	}

	return response.Success(c, "Profile updated successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}

// ChangePasswordRequest represents change password request
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangePassword changes the current user's password
// @Summary Change password
// @Description Change the current user's password
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ChangePasswordRequest true "Password data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /users/me/password [put]
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.OldPassword == "" || req.NewPassword == "" {
		return response.BadRequest(c, "Old and new passwords are required")
	}

	input := &services.ChangePasswordInput{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}

	if err := h.userService.ChangePassword(c.Context(), userID, input); err != nil {
		switch {
		case errors.Is(err, services.ErrOldPasswordWrong):
			return response.BadRequest(c, "Old password is incorrect")
		default:
			return response.BadRequest(c, err.Error())
		}
	}

	return response.Success(c, "Password changed successfully", nil)
}
