package user

import (
	"time"
)

type User struct {
	ID              int        `json:"user_id"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	PasswordHash    string     `json:"-"`
	AvatarURL       *string    `json:"avatar_url"`
	Credits         int        `json:"credits"`
	Reputation      int        `json:"reputation"`
	FactionID       *int       `json:"faction_id"`
	CurrentSystemID *int       `json:"current_system_id"`
	CreatedAt       time.Time  `json:"created_at"`
	LastLogin       *time.Time `json:"last_login"`
}

// CreateParams is the fixed, validated field set accepted when inserting a
// new user. Unknown fields have no way in; there is no reflective assignment.
type CreateParams struct {
	Username        string
	Email           string
	PasswordHash    string
	Credits         int
	Reputation      int
	FactionID       *int
	CurrentSystemID *int
}

// ProfileUpdate carries the only two user fields mutable through the API.
type ProfileUpdate struct {
	Email     *string `json:"email"`
	AvatarURL *string `json:"avatar_url"`
}
