package repository

import (
	"errors"
	"fmt"
	"time"

	"todoboard/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrCreateBoard is returned when creating the board row fails inside the creation transaction.
	ErrCreateBoard = errors.New("board repository: create board failed")
	// ErrCreateOwnerPermission is returned when creating the owner permission row fails inside the creation transaction.
	ErrCreateOwnerPermission = errors.New("board repository: create owner permission failed")
)

// GormBoardRepository is a GORM implementation of BoardRepository
type GormBoardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &GormBoardRepository{db: db}
}

// CreateWithOwner creates the board row and its owner permission row
// atomically. A board must never exist without exactly one owner permission.
func (r *GormBoardRepository) CreateWithOwner(board *models.Board) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(board).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateBoard, err)
		}

		perm := &models.BoardPermission{
			BoardID:   board.ID,
			UserID:    board.OwnerID,
			Level:     models.PermissionOwner,
			GrantedAt: time.Now(),
		}

		if err := tx.Create(perm).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateOwnerPermission, err)
		}

		return nil
	})
}

// FindByID finds a board by ID
func (r *GormBoardRepository) FindByID(id uint64) (*models.Board, error) {
	var board models.Board
	if err := r.db.First(&board, id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// Update updates a board
func (r *GormBoardRepository) Update(board *models.Board) error {
	return r.db.Save(board).Error
}

// Delete deletes a board and all related data in a transaction
func (r *GormBoardRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Delete all todos on the board
		if err := tx.Where("board_id = ?", id).Delete(&models.Todo{}).Error; err != nil {
			return err
		}

		// Delete all permission rows
		if err := tx.Where("board_id = ?", id).Delete(&models.BoardPermission{}).Error; err != nil {
			return err
		}

		// Delete the board
		if err := tx.Delete(&models.Board{}, id).Error; err != nil {
			return err
		}

		return nil
	})
}
