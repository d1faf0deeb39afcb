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
	ErrTodoNotFound    = errors.New("todo not found")
	ErrInvalidTodoText = errors.New("todo text cannot be empty")
)

// TodoService provides business logic for todo operations.
type TodoService struct {
	todoRepo  repository.TodoRepository
	boardRepo repository.BoardRepository
}

// NewTodoService creates a new TodoService.
func NewTodoService(todoRepo repository.TodoRepository, boardRepo repository.BoardRepository) *TodoService {
	return &TodoService{
		todoRepo:  todoRepo,
		boardRepo: boardRepo,
	}
}

// CreateTodo adds a todo to a board.
func (s *TodoService) CreateTodo(boardID uint64, text string) (*models.Todo, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrInvalidTodoText
	}

	if _, err := s.boardRepo.FindByID(boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	todo := &models.Todo{
		BoardID: boardID,
		Text:    text,
	}

	if err := s.todoRepo.Create(todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	return todo, nil
}

// GetTodo retrieves a todo on the given board.
func (s *TodoService) GetTodo(boardID, todoID uint64) (*models.Todo, error) {
	todo, err := s.todoRepo.FindByID(boardID, todoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}
	return todo, nil
}

// ListTodos returns a page of todos for a board together with the total count.
func (s *TodoService) ListTodos(boardID uint64, offset, limit int) ([]models.Todo, int64, error) {
	todos, total, err := s.todoRepo.ListByBoard(boardID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, total, nil
}

// UpdateTodoInput holds the optional fields of a todo update.
type UpdateTodoInput struct {
	Text      *string
	Completed *bool
}

// UpdateTodo applies the provided changes to a todo.
func (s *TodoService) UpdateTodo(boardID, todoID uint64, input UpdateTodoInput) (*models.Todo, error) {
	todo, err := s.GetTodo(boardID, todoID)
	if err != nil {
		return nil, err
	}

	if input.Text != nil {
		if strings.TrimSpace(*input.Text) == "" {
			return nil, ErrInvalidTodoText
		}
		todo.Text = *input.Text
	}
	if input.Completed != nil {
		todo.Completed = *input.Completed
	}

	if err := s.todoRepo.Update(todo); err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	return todo, nil
}

// DeleteTodo removes a todo from a board.
func (s *TodoService) DeleteTodo(boardID, todoID uint64) error {
	if err := s.todoRepo.Delete(boardID, todoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTodoNotFound
		}
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}
