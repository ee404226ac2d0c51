package save

import "time"

// StatusActive is the status assigned to every save the API creates.
const StatusActive = "active"

// GameSave is one save slot belonging to a user. Progress fields hold a
// summary of the run so save pickers can render without loading full state.
type GameSave struct {
	ID                     int       `json:"game_id"`
	UserID                 int       `json:"user_id"`
	SaveName               string    `json:"save_name"`
	CreatedAt              time.Time `json:"created_at"`
	LastPlayedAt           time.Time `json:"last_played_at"`
	GameVersion            string    `json:"game_version"`
	TotalPlaytime          int       `json:"total_playtime"`
	Credits                int       `json:"credits"`
	CurrentSystemID        *int      `json:"current_system_id"`
	Reputation             int       `json:"reputation"`
	FactionID              *int      `json:"faction_id"`
	DiscoveredSystemsCount int       `json:"discovered_systems_count"`
	CompletedMissionsCount int       `json:"completed_missions_count"`
	ThumbnailPath          *string   `json:"thumbnail_path"`
	Status                 string    `json:"status"`
}

// CreateParams carries the initial values for a new save slot. The service
// fills these from game configuration before they reach the repository.
type CreateParams struct {
	UserID          int
	SaveName        string
	GameVersion     string
	Credits         int
	Reputation      int
	CurrentSystemID *int
	FactionID       *int
	Status          string
}
