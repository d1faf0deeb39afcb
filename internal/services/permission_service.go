package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"todoboard/internal/models"
	"todoboard/internal/repository"
)

var (
	ErrOnlyOwnerCanManage   = errors.New("only the board owner can manage permissions")
	ErrTargetUserNotFound   = errors.New("no user registered with this email")
	ErrCannotShareWithSelf  = errors.New("cannot share a board with yourself")
	ErrAlreadySharedAtLevel = errors.New("user already has this permission level")
	ErrInvalidShareLevel    = errors.New("boards can only be shared at editor or viewer level")
	ErrAccessDenied         = errors.New("access to this board denied")
	ErrCannotRemoveSelf     = errors.New("the owner cannot remove their own permission")
)

// PermissionService layers the sharing business rules above the permission
// repository. Route-level gating is the middleware's job; the checks here
// protect callers that reach the service by other paths.
type PermissionService struct {
	permRepo repository.PermissionRepository
	userRepo repository.UserRepository
}

// NewPermissionService creates a new PermissionService.
func NewPermissionService(permRepo repository.PermissionRepository, userRepo repository.UserRepository) *PermissionService {
	return &PermissionService{
		permRepo: permRepo,
		userRepo: userRepo,
	}
}

// ShareBoardInput represents a request to grant board access to a user,
// resolved by email.
type ShareBoardInput struct {
	Email string
	Level models.PermissionLevel
}

// ShareBoard grants or updates a permission on the board for the user with
// the given email. Only the owner may share; owner level itself can never be
// granted this way.
func (s *PermissionService) ShareBoard(boardID uint64, input ShareBoardInput, requesterID uint64) (*models.BoardPermission, error) {
	isOwner, err := s.permRepo.HasPermission(boardID, requesterID, models.PermissionOwner)
	if err != nil {
		return nil, fmt.Errorf("failed to check requester permission: %w", err)
	}
	if !isOwner {
		return nil, ErrOnlyOwnerCanManage
	}

	if input.Level != models.PermissionEditor && input.Level != models.PermissionViewer {
		return nil, ErrInvalidShareLevel
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	target, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTargetUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if target.ID == requesterID {
		return nil, ErrCannotShareWithSelf
	}

	existing, err := s.permRepo.Find(boardID, target.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing permission: %w", err)
	}

	if existing != nil {
		if existing.Level == input.Level {
			return nil, ErrAlreadySharedAtLevel
		}
		if err := s.permRepo.UpdateLevel(boardID, target.ID, input.Level); err != nil {
			return nil, fmt.Errorf("failed to update permission: %w", err)
		}
		existing.Level = input.Level
		existing.User = *target
		return existing, nil
	}

	perm := &models.BoardPermission{
		BoardID:   boardID,
		UserID:    target.ID,
		Level:     input.Level,
		GrantedAt: time.Now(),
	}
	if err := s.permRepo.Create(perm); err != nil {
		if errors.Is(err, repository.ErrPermissionExists) {
			// Lost a race against a concurrent share for the same pair.
			return nil, ErrAlreadySharedAtLevel
		}
		return nil, fmt.Errorf("failed to create permission: %w", err)
	}

	perm.User = *target
	return perm, nil
}

// GetBoardPermissions lists everyone with access to the board. The requester
// needs at least viewer access.
func (s *PermissionService) GetBoardPermissions(boardID, requesterID uint64) ([]models.BoardPermission, error) {
	allowed, err := s.permRepo.HasPermission(boardID, requesterID, models.PermissionViewer)
	if err != nil {
		return nil, fmt.Errorf("failed to check requester permission: %w", err)
	}
	if !allowed {
		return nil, ErrAccessDenied
	}

	perms, err := s.permRepo.ListByBoard(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	return perms, nil
}

// UpdatePermission changes the level of an existing grant. Only the owner may
// do this, and the owner row itself is immutable at the repository level.
func (s *PermissionService) UpdatePermission(boardID, targetID uint64, level models.PermissionLevel, requesterID uint64) error {
	isOwner, err := s.permRepo.HasPermission(boardID, requesterID, models.PermissionOwner)
	if err != nil {
		return fmt.Errorf("failed to check requester permission: %w", err)
	}
	if !isOwner {
		return ErrOnlyOwnerCanManage
	}

	if level != models.PermissionEditor && level != models.PermissionViewer {
		return ErrInvalidShareLevel
	}

	return s.permRepo.UpdateLevel(boardID, targetID, level)
}

// RemovePermission revokes a user's access to the board. Only the owner may
// do this, and owners cannot remove themselves: that would orphan the board.
func (s *PermissionService) RemovePermission(boardID, targetID, requesterID uint64) error {
	isOwner, err := s.permRepo.HasPermission(boardID, requesterID, models.PermissionOwner)
	if err != nil {
		return fmt.Errorf("failed to check requester permission: %w", err)
	}
	if !isOwner {
		return ErrOnlyOwnerCanManage
	}

	if targetID == requesterID {
		return ErrCannotRemoveSelf
	}

	return s.permRepo.Delete(boardID, targetID)
}

// GetUserBoards returns the permission rows (with boards preloaded) for every
// board the user can access.
func (s *PermissionService) GetUserBoards(userID uint64) ([]models.BoardPermission, error) {
	perms, err := s.permRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user boards: %w", err)
	}
	return perms, nil
}
