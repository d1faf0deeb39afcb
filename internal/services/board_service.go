package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"todoboard/internal/models"
	"todoboard/internal/repository"
)

var (
	ErrBoardNotFound    = errors.New("board not found")
	ErrInvalidBoardName = errors.New("board name cannot be empty")
)

// BoardService provides business logic for board operations.
type BoardService struct {
	boardRepo repository.BoardRepository
	permRepo  repository.PermissionRepository
}

// NewBoardService creates a new BoardService.
func NewBoardService(boardRepo repository.BoardRepository, permRepo repository.PermissionRepository) *BoardService {
	return &BoardService{
		boardRepo: boardRepo,
		permRepo:  permRepo,
	}
}

// CreateBoard creates a board owned by the given user. The board row and its
// owner permission row are written in one transaction.
func (s *BoardService) CreateBoard(name string, ownerID uint64) (*models.Board, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidBoardName
	}

	board := &models.Board{
		Name:    name,
		OwnerID: ownerID,
	}

	if err := s.boardRepo.CreateWithOwner(board); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	return board, nil
}

// GetBoard retrieves a board by ID.
func (s *BoardService) GetBoard(boardID uint64) (*models.Board, error) {
	board, err := s.boardRepo.FindByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}
	return board, nil
}

// UpdateBoardName renames a board.
func (s *BoardService) UpdateBoardName(boardID uint64, name string) (*models.Board, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidBoardName
	}

	board, err := s.GetBoard(boardID)
	if err != nil {
		return nil, err
	}

	board.Name = name
	if err := s.boardRepo.Update(board); err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}

	return board, nil
}

// DeleteBoard removes a board, its todos, and all of its permission rows.
func (s *BoardService) DeleteBoard(boardID uint64) error {
	if _, err := s.GetBoard(boardID); err != nil {
		return err
	}

	if err := s.boardRepo.Delete(boardID); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}

	return nil
}

// ListBoardsForUser returns the permission rows (with boards preloaded) for
// every board the user can access, owned and shared alike.
func (s *BoardService) ListBoardsForUser(userID uint64) ([]models.BoardPermission, error) {
	perms, err := s.permRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	return perms, nil
}
