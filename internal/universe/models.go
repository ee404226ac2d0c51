package universe

type SystemType string

const (
	SystemTypeCore  SystemType = "core"
	SystemTypeMid   SystemType = "mid"
	SystemTypeOuter SystemType = "outer"
)

type StarSystem struct {
	ID                   int        `json:"system_id"`
	Name                 string     `json:"name"`
	Description          string     `json:"description"`
	DifficultyLevel      int        `json:"difficulty_level"`
	DangerLevel          int        `json:"danger_level"`
	Type                 SystemType `json:"type"`
	ControllingFactionID *int       `json:"controlling_faction_id"`
	X                    float64    `json:"x_coord"`
	Y                    float64    `json:"y_coord"`
	Z                    float64    `json:"z_coord"`
	IsDiscovered         bool       `json:"is_discovered"`
}

type Planet struct {
	ID                   int      `json:"planet_id"`
	SystemID             int      `json:"system_id"`
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	HasStation           bool     `json:"has_station"`
	ResourceRichness     *int     `json:"resource_richness"`
	ControllingFactionID *int     `json:"controlling_faction_id"`
	OrbitalPosition      *float64 `json:"orbital_position"`
}

type SpaceStation struct {
	ID                   int     `json:"station_id"`
	SystemID             int     `json:"system_id"`
	Name                 string  `json:"name"`
	Description          string  `json:"description"`
	PlanetID             *int    `json:"planet_id"`
	ControllingFactionID *int    `json:"controlling_faction_id"`
	HasShipyard          bool    `json:"has_shipyard"`
	HasBar               bool    `json:"has_bar"`
	HasTradeCenter       bool    `json:"has_trade_center"`
	HasMissionBoard      bool    `json:"has_mission_board"`
	HasEquipmentDealer   bool    `json:"has_equipment_dealer"`
	PriceModifier        float64 `json:"price_modifier"`
}

// JumpGate is a directed edge between two star systems.
type JumpGate struct {
	ID              int     `json:"gate_id"`
	Name            string  `json:"name"`
	SourceSystemID  int     `json:"source_system_id"`
	TargetSystemID  int     `json:"target_system_id"`
	DifficultyLevel int     `json:"difficulty_level"`
	TollFee         float64 `json:"toll_fee"`
	IsHidden        bool    `json:"is_hidden"`
}

type Faction struct {
	ID                 int     `json:"faction_id"`
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	GovernmentType     string  `json:"government_type"`
	PrimaryIndustry    string  `json:"primary_industry"`
	HomeSystemID       *int    `json:"home_system_id"`
	IsPlayerAccessible bool    `json:"is_player_accessible"`
	IconURL            *string `json:"icon_url"`
}

// SystemDetail is the full payload returned for a single star system.
type SystemDetail struct {
	StarSystem
	ControllingFaction *Faction       `json:"controlling_faction"`
	Planets            []Planet       `json:"planets"`
	Stations           []SpaceStation `json:"stations"`
	JumpGates          []JumpGate     `json:"jump_gates"`
}

// StationDetail is the full payload returned for a single space station.
type StationDetail struct {
	SpaceStation
	System             *StarSystem `json:"system"`
	Planet             *Planet     `json:"planet,omitempty"`
	ControllingFaction *Faction    `json:"controlling_faction,omitempty"`
}
