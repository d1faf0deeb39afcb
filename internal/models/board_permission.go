package models

import "time"

// BoardPermission grants a user a permission level on a board. The composite
// primary key is the uniqueness constraint on the (board, user) pair: a
// concurrent duplicate grant fails at the store instead of silently merging.
// Every board has exactly one owner row, written in the same transaction as
// the board itself.
type BoardPermission struct {
	BoardID   uint64          `gorm:"primarykey" json:"board_id"`
	UserID    uint64          `gorm:"primarykey" json:"user_id"`
	Level     PermissionLevel `gorm:"type:varchar(20);not null" json:"permission_level"`
	GrantedAt time.Time       `json:"granted_at"`

	// Relations
	Board Board `gorm:"foreignKey:BoardID" json:"board,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
