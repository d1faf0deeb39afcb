package models

import "time"

type Board struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	OwnerID   uint64    `gorm:"not null;index" json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Owner       User              `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Todos       []Todo            `gorm:"foreignKey:BoardID" json:"todos,omitempty"`
	Permissions []BoardPermission `gorm:"foreignKey:BoardID" json:"permissions,omitempty"`
}
