package dto

import (
	"time"

	"todoboard/internal/models"
)

// BoardDTO represents a board in API responses
type BoardDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   uint64    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// BoardWithLevelDTO represents a board along with the caller's permission level
type BoardWithLevelDTO struct {
	BoardDTO
	PermissionLevel models.PermissionLevel `json:"permission_level"`
}

// PermissionDTO represents a grant in board permission listings
type PermissionDTO struct {
	User            UserDTO                `json:"user"`
	PermissionLevel models.PermissionLevel `json:"permission_level"`
	GrantedAt       time.Time              `json:"granted_at"`
}

// ToBoardDTO converts a Board model to BoardDTO
func ToBoardDTO(board models.Board) BoardDTO {
	return BoardDTO{
		ID:        board.ID,
		Name:      board.Name,
		OwnerID:   board.OwnerID,
		CreatedAt: board.CreatedAt,
	}
}

// ToBoardWithLevelDTO converts a permission row (with board preloaded) to a
// board listing entry
func ToBoardWithLevelDTO(perm models.BoardPermission) BoardWithLevelDTO {
	return BoardWithLevelDTO{
		BoardDTO:        ToBoardDTO(perm.Board),
		PermissionLevel: perm.Level,
	}
}

// ToPermissionDTO converts a permission row (with user preloaded) to DTO
func ToPermissionDTO(perm models.BoardPermission) PermissionDTO {
	return PermissionDTO{
		User:            ToUserDTO(perm.User),
		PermissionLevel: perm.Level,
		GrantedAt:       perm.GrantedAt,
	}
}
