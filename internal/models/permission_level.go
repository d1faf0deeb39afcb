package models

type PermissionLevel string

const (
	PermissionOwner  PermissionLevel = "owner"
	PermissionEditor PermissionLevel = "editor"
	PermissionViewer PermissionLevel = "viewer"
)

// Rank returns the position of the level in the permission hierarchy.
// Higher ranks include the capabilities of lower ones. Unknown levels
// rank 0 and therefore never satisfy any requirement.
func (l PermissionLevel) Rank() int {
	switch l {
	case PermissionOwner:
		return 3
	case PermissionEditor:
		return 2
	case PermissionViewer:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether l grants the capabilities of required.
func (l PermissionLevel) AtLeast(required PermissionLevel) bool {
	return l.Rank() >= required.Rank() && l.Rank() > 0
}

// Valid reports whether l is one of the known permission levels.
func (l PermissionLevel) Valid() bool {
	return l.Rank() > 0
}
