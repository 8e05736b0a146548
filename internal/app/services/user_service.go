package services

import (
	"context"

	"github.com/kittipos/equiptrack/internal/app/auth"
	"github.com/kittipos/equiptrack/internal/app/models"
	"github.com/kittipos/equiptrack/internal/app/models/dto"
	"github.com/kittipos/equiptrack/internal/app/repositories"
	"github.com/kittipos/equiptrack/internal/pkg/apperrors"
	pkgauth "github.com/kittipos/equiptrack/internal/pkg/auth"
	"github.com/kittipos/equiptrack/internal/pkg/logger"
	"github.com/kittipos/equiptrack/internal/pkg/validation"
)

// UserService handles account administration
type UserService struct {
	userRepo  *repositories.UserRepository
	tokenRepo *repositories.TokenRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo *repositories.UserRepository, tokenRepo *repositories.TokenRepository) *UserService {
	return &UserService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

// List returns every account
func (s *UserService) List(ctx context.Context, callerRole models.Role) ([]*models.User, error) {
	if !auth.CanPerform(callerRole, auth.OpUserList) {
		return nil, apperrors.ErrPermissionDenied
	}
	return s.userRepo.GetAll(ctx)
}

// Create creates an account with an explicit role. Managers may only create
// assistant and reporter accounts.
func (s *UserService) Create(ctx context.Context, callerID int64, callerRole models.Role, req *dto.CreateUserRequest) (*models.User, error) {
	if !auth.CanPerform(callerRole, auth.OpUserCreate) {
		return nil, apperrors.ErrPermissionDenied
	}

	role := models.Role(req.Role)
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role")
	}
	if callerRole == models.RoleEquipmentManager &&
		(role == models.RoleAdmin || role == models.RoleEquipmentManager) {
		return nil, apperrors.NewForbiddenError("managers may only create assistant and reporter accounts")
	}

	if !validation.ValidUsername(req.Username) {
		return nil, apperrors.NewValidationError("username may contain lowercase letters, digits, dots and underscores only")
	}

	exists, err := s.userRepo.UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrUsernameExists
	}

	hashed, err := pkgauth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:    req.Username,
		Password:    hashed,
		DisplayName: req.DisplayName,
		Role:        role,
		Branch:      req.Branch,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Int64("createdBy", callerID).Int64("userID", user.ID).Str("role", string(role)).Msg("User created")
	return user, nil
}

// ChangeRole updates a user's role. Tokens already issued keep their old
// role claim until they expire or are refreshed, so the service revokes the
// target's refresh tokens to shorten that window.
func (s *UserService) ChangeRole(ctx context.Context, callerID int64, callerRole models.Role, targetID int64, newRole models.Role) (*models.User, error) {
	if !auth.CanPerform(callerRole, auth.OpUserChangeRole) {
		return nil, apperrors.ErrPermissionDenied
	}
	if !newRole.Valid() {
		return nil, apperrors.NewValidationError("unknown role")
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if !auth.CanAlterUser(callerID, callerRole, target, &newRole) {
		return nil, apperrors.NewForbiddenError("you may not change this user's role")
	}

	if err := s.userRepo.UpdateRole(ctx, targetID, newRole); err != nil {
		return nil, err
	}

	if err := s.tokenRepo.RevokeAllForUser(ctx, targetID); err != nil {
		logger.Warn().Err(err).Int64("userID", targetID).Msg("Failed to revoke tokens after role change")
	}

	target.Role = newRole
	logger.Info().Int64("changedBy", callerID).Int64("userID", targetID).Str("newRole", string(newRole)).Msg("Role changed")
	return target, nil
}

// Delete removes an account. Admin accounts are never deleted.
func (s *UserService) Delete(ctx context.Context, callerID int64, callerRole models.Role, targetID int64) error {
	if !auth.CanPerform(callerRole, auth.OpUserDelete) {
		return apperrors.ErrPermissionDenied
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	if !auth.CanAlterUser(callerID, callerRole, target, nil) {
		return apperrors.NewForbiddenError("you may not delete this user")
	}

	if err := s.tokenRepo.RevokeAllForUser(ctx, targetID); err != nil {
		logger.Warn().Err(err).Int64("userID", targetID).Msg("Failed to revoke tokens before deletion")
	}

	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		return err
	}

	logger.Info().Int64("deletedBy", callerID).Int64("userID", targetID).Msg("User deleted")
	return nil
}
