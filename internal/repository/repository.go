package repository

import (
	"todoboard/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// BoardRepository defines the interface for board data access
type BoardRepository interface {
	// CreateWithOwner creates a board and its owner permission row within a
	// single transaction
	CreateWithOwner(board *models.Board) error

	// FindByID finds a board by ID
	FindByID(id uint64) (*models.Board, error)

	// Update updates a board
	Update(board *models.Board) error

	// Delete deletes a board together with its todos and permission rows
	Delete(id uint64) error
}

// TodoRepository defines the interface for todo data access
type TodoRepository interface {
	// Create creates a new todo
	Create(todo *models.Todo) error

	// FindByID finds a todo belonging to the given board
	FindByID(boardID, id uint64) (*models.Todo, error)

	// ListByBoard retrieves a page of todos for a board along with the total count
	ListByBoard(boardID uint64, offset, limit int) ([]models.Todo, int64, error)

	// Update updates a todo
	Update(todo *models.Todo) error

	// Delete deletes a todo belonging to the given board
	Delete(boardID, id uint64) error
}

// PermissionRepository defines the interface for board permission data access
type PermissionRepository interface {
	// Find returns the permission row for the pair, or nil when none exists
	Find(boardID, userID uint64) (*models.BoardPermission, error)

	// ListByBoard lists all permission rows for a board with users preloaded
	ListByBoard(boardID uint64) ([]models.BoardPermission, error)

	// ListByUser lists all permission rows for a user with boards preloaded
	ListByUser(userID uint64) ([]models.BoardPermission, error)

	// Create inserts a permission row; fails with ErrPermissionExists when a
	// row for the pair already exists
	Create(perm *models.BoardPermission) error

	// UpdateLevel changes the level of an existing row; owner rows are
	// immutable and yield ErrOwnerImmutable
	UpdateLevel(boardID, userID uint64, level models.PermissionLevel) error

	// Delete removes a permission row and verifies the row is gone
	Delete(boardID, userID uint64) error

	// HasPermission reports whether the user's level on the board ranks at
	// least as high as required; no row means false
	HasPermission(boardID, userID uint64, required models.PermissionLevel) (bool, error)
}
