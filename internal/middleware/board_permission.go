package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"todoboard/internal/constants"
	apierrors "todoboard/internal/errors"
	"todoboard/internal/models"
	"todoboard/internal/repository"
)

// RequireBoardPermission gates a board route behind a required permission
// level. Authentication must run first: a request with no resolved user is
// rejected before any board lookup. The middleware never mutates state; each
// check re-queries the store so revocations apply on the next request.
func RequireBoardPermission(perms repository.PermissionRepository, level models.PermissionLevel) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		boardID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid board ID")
			c.Abort()
			return
		}

		allowed, err := perms.HasPermission(boardID, userID, level)
		if err != nil {
			apierrors.InternalError(c, "")
			c.Abort()
			return
		}
		if !allowed {
			apierrors.InsufficientPermissions(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}

// InjectBoardPermission attaches the caller's permission level on the board
// to the context when one exists. It never rejects the request; handlers that
// want the level read it with GetBoardPermission.
func InjectBoardPermission(perms repository.PermissionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			c.Next()
			return
		}

		boardID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.Next()
			return
		}

		perm, err := perms.Find(boardID, userID)
		if err == nil && perm != nil {
			c.Set(constants.ContextKeyBoardPermission, perm.Level)
		}

		c.Next()
	}
}

// GetBoardPermission retrieves the injected permission level from context
func GetBoardPermission(c *gin.Context) (models.PermissionLevel, bool) {
	value, exists := c.Get(constants.ContextKeyBoardPermission)
	if !exists {
		return "", false
	}

	level, ok := value.(models.PermissionLevel)
	return level, ok
}
