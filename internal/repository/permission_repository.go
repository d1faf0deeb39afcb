package repository

import (
	"errors"
	"fmt"

	"todoboard/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrPermissionExists is returned when a permission row already exists for the (board, user) pair.
	ErrPermissionExists = errors.New("permission repository: permission already exists for this user and board")
	// ErrPermissionNotFound is returned when no permission row exists for the (board, user) pair.
	ErrPermissionNotFound = errors.New("permission repository: permission not found")
	// ErrOwnerImmutable is returned when attempting to change the level of an owner permission row.
	ErrOwnerImmutable = errors.New("permission repository: owner permission level cannot be changed")
)

// GormPermissionRepository is a GORM implementation of PermissionRepository
type GormPermissionRepository struct {
	db *gorm.DB
}

// NewPermissionRepository creates a new PermissionRepository
func NewPermissionRepository(db *gorm.DB) PermissionRepository {
	return &GormPermissionRepository{db: db}
}

// Find returns the permission row for the pair, or nil when none exists
func (r *GormPermissionRepository) Find(boardID, userID uint64) (*models.BoardPermission, error) {
	var perm models.BoardPermission
	err := r.db.Where("board_id = ? AND user_id = ?", boardID, userID).First(&perm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &perm, nil
}

// ListByBoard lists all permission rows for a board with users preloaded
func (r *GormPermissionRepository) ListByBoard(boardID uint64) ([]models.BoardPermission, error) {
	var perms []models.BoardPermission
	if err := r.db.Preload("User").
		Where("board_id = ?", boardID).
		Order("granted_at ASC").
		Find(&perms).Error; err != nil {
		return nil, err
	}
	return perms, nil
}

// ListByUser lists all permission rows for a user with boards preloaded
func (r *GormPermissionRepository) ListByUser(userID uint64) ([]models.BoardPermission, error) {
	var perms []models.BoardPermission
	if err := r.db.Preload("Board").
		Where("user_id = ?", userID).
		Find(&perms).Error; err != nil {
		return nil, err
	}
	return perms, nil
}

// Create inserts a permission row. The check runs inside a transaction; the
// composite primary key still protects against a concurrent insert winning
// the race between check and write, which surfaces as ErrPermissionExists.
func (r *GormPermissionRepository) Create(perm *models.BoardPermission) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.BoardPermission
		err := tx.Where("board_id = ? AND user_id = ?", perm.BoardID, perm.UserID).
			First(&existing).Error
		if err == nil {
			return ErrPermissionExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(perm).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrPermissionExists
			}
			return fmt.Errorf("failed to create permission: %w", err)
		}
		return nil
	})
}

// UpdateLevel changes the level of an existing row. Owner rows are immutable:
// the owner permission is created with the board and stays until the board is
// deleted.
func (r *GormPermissionRepository) UpdateLevel(boardID, userID uint64, level models.PermissionLevel) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var perm models.BoardPermission
		err := tx.Where("board_id = ? AND user_id = ?", boardID, userID).First(&perm).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPermissionNotFound
		}
		if err != nil {
			return err
		}

		if perm.Level == models.PermissionOwner {
			return ErrOwnerImmutable
		}

		perm.Level = level
		return tx.Save(&perm).Error
	})
}

// Delete removes a permission row and verifies the deletion took effect
func (r *GormPermissionRepository) Delete(boardID, userID uint64) error {
	result := r.db.Where("board_id = ? AND user_id = ?", boardID, userID).
		Delete(&models.BoardPermission{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPermissionNotFound
	}
	return nil
}

// HasPermission compares the user's level rank against the required rank.
// No row means no access.
func (r *GormPermissionRepository) HasPermission(boardID, userID uint64, required models.PermissionLevel) (bool, error) {
	perm, err := r.Find(boardID, userID)
	if err != nil {
		return false, err
	}
	if perm == nil {
		return false, nil
	}
	return perm.Level.AtLeast(required), nil
}
