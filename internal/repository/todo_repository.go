package repository

import (
	"todoboard/internal/models"
	"gorm.io/gorm"
)

// GormTodoRepository is a GORM implementation of TodoRepository
type GormTodoRepository struct {
	db *gorm.DB
}

// NewTodoRepository creates a new TodoRepository
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &GormTodoRepository{db: db}
}

// Create creates a new todo
func (r *GormTodoRepository) Create(todo *models.Todo) error {
	return r.db.Create(todo).Error
}

// FindByID finds a todo belonging to the given board. A todo id that exists
// under a different board is treated as not found.
func (r *GormTodoRepository) FindByID(boardID, id uint64) (*models.Todo, error) {
	var todo models.Todo
	if err := r.db.Where("board_id = ?", boardID).First(&todo, id).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

// ListByBoard retrieves a page of todos for a board along with the total count
func (r *GormTodoRepository) ListByBoard(boardID uint64, offset, limit int) ([]models.Todo, int64, error) {
	var todos []models.Todo

	query := r.db.Model(&models.Todo{}).Where("board_id = ?", boardID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&todos).Error; err != nil {
		return nil, 0, err
	}

	return todos, total, nil
}

// Update updates a todo
func (r *GormTodoRepository) Update(todo *models.Todo) error {
	return r.db.Save(todo).Error
}

// Delete deletes a todo belonging to the given board
func (r *GormTodoRepository) Delete(boardID, id uint64) error {
	result := r.db.Where("board_id = ?", boardID).Delete(&models.Todo{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
