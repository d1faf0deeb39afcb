package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"todoboard/internal/dto"
	apierrors "todoboard/internal/errors"
	"todoboard/internal/middleware"
	"todoboard/internal/services"
)

// BoardHandler coordinates board CRUD handlers. Permission gating happens in
// the route middleware; the handlers only parse, delegate, and serialize.
type BoardHandler struct {
	boardService *services.BoardService
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(boardService *services.BoardService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
	}
}

// CreateBoard creates a new board owned by the authenticated user.
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateBoardRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	board, err := h.boardService.CreateBoard(req.Name, userID)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBoardDTO(*board))
}

// ListBoards returns every board the authenticated user can access, with the
// user's permission level on each.
func (h *BoardHandler) ListBoards(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	perms, err := h.boardService.ListBoardsForUser(userID)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	boards := make([]dto.BoardWithLevelDTO, len(perms))
	for i, perm := range perms {
		boards[i] = dto.ToBoardWithLevelDTO(perm)
	}

	c.JSON(http.StatusOK, gin.H{
		"boards": boards,
	})
}

// GetBoard returns a single board.
func (h *BoardHandler) GetBoard(c *gin.Context) {
	boardID, ok := parseBoardID(c)
	if !ok {
		return
	}

	board, err := h.boardService.GetBoard(boardID)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	response := gin.H{"board": dto.ToBoardDTO(*board)}
	if level, ok := middleware.GetBoardPermission(c); ok {
		response["your_permission_level"] = level
	}

	c.JSON(http.StatusOK, response)
}

// UpdateBoard renames a board.
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	boardID, ok := parseBoardID(c)
	if !ok {
		return
	}

	type UpdateBoardRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	board, err := h.boardService.UpdateBoardName(boardID, req.Name)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDTO(*board))
}

// DeleteBoard deletes a board with its todos and permissions.
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	boardID, ok := parseBoardID(c)
	if !ok {
		return
	}

	if err := h.boardService.DeleteBoard(boardID); err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Board deleted successfully",
	})
}

func parseBoardID(c *gin.Context) (uint64, bool) {
	boardID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid board ID")
		return 0, false
	}
	return boardID, true
}

func respondBoardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidBoardName):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrBoardNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
