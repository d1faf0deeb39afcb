package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"todoboard/internal/dto"
	apierrors "todoboard/internal/errors"
	"todoboard/internal/services"
	"todoboard/internal/utils"
)

// TodoHandler coordinates todo CRUD handlers. Todos are addressed under their
// board so the board permission middleware covers every route.
type TodoHandler struct {
	todoService *services.TodoService
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
	}
}

// CreateTodo adds a todo to the board.
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	boardID, ok := parseBoardID(c)
	if !ok {
		return
	}

	type CreateTodoRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	todo, err := h.todoService.CreateTodo(boardID, req.Text)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTodoDTO(*todo))
}

// ListTodos returns a page of the board's todos.
func (h *TodoHandler) ListTodos(c *gin.Context) {
	boardID, ok := parseBoardID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	todos, total, err := h.todoService.ListTodos(boardID, params.Offset, params.Limit)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TodoListResponse{
		Todos:      dto.ToTodoDTOs(todos),
		Page:       params.Page,
		PageSize:   params.Limit,
		TotalCount: total,
	})
}

// GetTodo returns a single todo on the board.
func (h *TodoHandler) GetTodo(c *gin.Context) {
	boardID, todoID, ok := parseTodoIDs(c)
	if !ok {
		return
	}

	todo, err := h.todoService.GetTodo(boardID, todoID)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTO(*todo))
}

// UpdateTodo changes a todo's text or completed flag.
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	boardID, todoID, ok := parseTodoIDs(c)
	if !ok {
		return
	}

	type UpdateTodoRequest struct {
		Text      *string `json:"text"`
		Completed *bool   `json:"completed"`
	}

	var req UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Text == nil && req.Completed == nil {
		apierrors.BadRequest(c, "Nothing to update")
		return
	}

	todo, err := h.todoService.UpdateTodo(boardID, todoID, services.UpdateTodoInput{
		Text:      req.Text,
		Completed: req.Completed,
	})
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTO(*todo))
}

// DeleteTodo removes a todo from the board.
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	boardID, todoID, ok := parseTodoIDs(c)
	if !ok {
		return
	}

	if err := h.todoService.DeleteTodo(boardID, todoID); err != nil {
		respondTodoError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseTodoIDs(c *gin.Context) (boardID, todoID uint64, ok bool) {
	boardID, ok = parseBoardID(c)
	if !ok {
		return 0, 0, false
	}

	todoID, err := strconv.ParseUint(c.Param("todo_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid todo ID")
		return 0, 0, false
	}

	return boardID, todoID, true
}

func respondTodoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidTodoText):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrBoardNotFound),
		errors.Is(err, services.ErrTodoNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
