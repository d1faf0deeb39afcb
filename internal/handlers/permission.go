package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"todoboard/internal/dto"
	apierrors "todoboard/internal/errors"
	"todoboard/internal/middleware"
	"todoboard/internal/models"
	"todoboard/internal/repository"
	"todoboard/internal/services"
)

// PermissionHandler coordinates board sharing handlers.
type PermissionHandler struct {
	permService *services.PermissionService
}

// NewPermissionHandler creates a new PermissionHandler.
func NewPermissionHandler(permService *services.PermissionService) *PermissionHandler {
	return &PermissionHandler{
		permService: permService,
	}
}

// ShareBoard grants board access to a user identified by email.
func (h *PermissionHandler) ShareBoard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	boardID, ok := parseBoardID(c)
	if !ok {
		return
	}

	type ShareBoardRequest struct {
		Email string `json:"email" binding:"required,email"`
		Level string `json:"permission_level" binding:"required,oneof=editor viewer"`
	}

	var req ShareBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	perm, err := h.permService.ShareBoard(boardID, services.ShareBoardInput{
		Email: req.Email,
		Level: models.PermissionLevel(req.Level),
	}, userID)
	if err != nil {
		respondPermissionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPermissionDTO(*perm))
}

// ListPermissions returns everyone with access to the board.
func (h *PermissionHandler) ListPermissions(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	boardID, ok := parseBoardID(c)
	if !ok {
		return
	}

	perms, err := h.permService.GetBoardPermissions(boardID, userID)
	if err != nil {
		respondPermissionError(c, err)
		return
	}

	permissions := make([]dto.PermissionDTO, len(perms))
	for i, perm := range perms {
		permissions[i] = dto.ToPermissionDTO(perm)
	}

	c.JSON(http.StatusOK, gin.H{
		"permissions": permissions,
	})
}

// UpdatePermission changes an existing grant's level.
func (h *PermissionHandler) UpdatePermission(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	boardID, ok := parseBoardID(c)
	if !ok {
		return
	}

	targetID, ok := parseTargetUserID(c)
	if !ok {
		return
	}

	type UpdatePermissionRequest struct {
		Level string `json:"permission_level" binding:"required,oneof=editor viewer"`
	}

	var req UpdatePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	err := h.permService.UpdatePermission(boardID, targetID, models.PermissionLevel(req.Level), userID)
	if err != nil {
		respondPermissionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Permission updated successfully",
	})
}

// RemovePermission revokes a user's access to the board.
func (h *PermissionHandler) RemovePermission(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	boardID, ok := parseBoardID(c)
	if !ok {
		return
	}

	targetID, ok := parseTargetUserID(c)
	if !ok {
		return
	}

	if err := h.permService.RemovePermission(boardID, targetID, userID); err != nil {
		respondPermissionError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListUserBoards returns every board accessible to the authenticated caller
// together with the caller's level on each.
func (h *PermissionHandler) ListUserBoards(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	perms, err := h.permService.GetUserBoards(userID)
	if err != nil {
		respondPermissionError(c, err)
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

func parseTargetUserID(c *gin.Context) (uint64, bool) {
	targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return 0, false
	}
	return targetID, true
}

func respondPermissionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOnlyOwnerCanManage),
		errors.Is(err, services.ErrAccessDenied):
		apierrors.InsufficientPermissions(c, err.Error())
	case errors.Is(err, services.ErrTargetUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, repository.ErrPermissionNotFound):
		apierrors.NotFound(c, "permission not found")
	case errors.Is(err, services.ErrCannotShareWithSelf),
		errors.Is(err, services.ErrAlreadySharedAtLevel),
		errors.Is(err, services.ErrInvalidShareLevel),
		errors.Is(err, services.ErrCannotRemoveSelf):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, repository.ErrOwnerImmutable):
		apierrors.BadRequest(c, "the owner's permission level cannot be changed")
	case errors.Is(err, repository.ErrPermissionExists):
		apierrors.Conflict(c, "permission already exists for this user")
	default:
		apierrors.InternalError(c, "")
	}
}
