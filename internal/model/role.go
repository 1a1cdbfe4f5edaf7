package model

import "fmt"

// AccessLevel is the numeric privilege level stored in the database. Lower is
// more privileged, matching the existing portal data.
type AccessLevel int

const (
	LevelAdmin      AccessLevel = 0
	LevelNormal     AccessLevel = 1
	LevelCompliance AccessLevel = 2
)

// Role is the label derived from an access level. It travels in tokens and
// API responses; the level stays authoritative in storage.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleNormal     Role = "NORMAL"
	RoleCompliance Role = "COMPLIANCE"
)

// Valid reports whether the level is one of the known levels.
func (l AccessLevel) Valid() bool {
	switch l {
	case LevelAdmin, LevelNormal, LevelCompliance:
		return true
	}
	return false
}

// Role maps the level to its label. Unknown levels degrade to NORMAL so a
// corrupted row never grants elevated access.
func (l AccessLevel) Role() Role {
	switch l {
	case LevelAdmin:
		return RoleAdmin
	case LevelCompliance:
		return RoleCompliance
	default:
		return RoleNormal
	}
}

// ParseLevel converts a raw integer into a known access level.
func ParseLevel(raw int) (AccessLevel, error) {
	level := AccessLevel(raw)
	if !level.Valid() {
		return 0, fmt.Errorf("nivel de acesso desconhecido: %d", raw)
	}
	return level, nil
}
