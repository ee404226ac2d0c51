package universe

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

type Repository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewRepository(db *sql.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing universe repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

const systemColumns = `id, name, description, difficulty_level, danger_level, type,
		controlling_faction_id, x_coord, y_coord, z_coord, is_discovered`

func (r *Repository) GetAllSystems(ctx context.Context) ([]StarSystem, error) {
	logger := r.logger.With("component", "universe_repository", "operation", "get_all_systems")
	logger.Debug("Getting all star systems")

	query := `SELECT ` + systemColumns + ` FROM star_systems ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("Failed to query star systems", "error", err)
		return nil, fmt.Errorf("failed to query star systems: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var systems []StarSystem
	for rows.Next() {
		var s StarSystem
		if err := scanSystem(rows, &s); err != nil {
			logger.Error("Failed to scan star system row", "error", err)
			return nil, fmt.Errorf("failed to scan star system: %w", err)
		}
		systems = append(systems, s)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating star systems: %w", err)
	}

	logger.Debug("Star systems retrieved", "count", len(systems))
	return systems, nil
}

func (r *Repository) GetSystemByID(ctx context.Context, id int) (*StarSystem, error) {
	logger := r.logger.With(
		"component", "universe_repository",
		"operation", "get_system",
		"system_id", id,
	)
	logger.Debug("Getting star system by ID")

	query := `SELECT ` + systemColumns + ` FROM star_systems WHERE id = $1`

	var s StarSystem
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID,
		&s.Name,
		&s.Description,
		&s.DifficultyLevel,
		&s.DangerLevel,
		&s.Type,
		&s.ControllingFactionID,
		&s.X,
		&s.Y,
		&s.Z,
		&s.IsDiscovered,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			logger.Debug("Star system not found")
			return nil, nil
		}
		logger.Error("Database error getting star system", "error", err)
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &s, nil
}

func (r *Repository) GetPlanetsBySystem(ctx context.Context, systemID int) ([]Planet, error) {
	logger := r.logger.With(
		"component", "universe_repository",
		"operation", "get_planets",
		"system_id", systemID,
	)
	logger.Debug("Getting planets for system")

	query := `
		SELECT id, system_id, name, description, has_station, resource_richness,
		       controlling_faction_id, orbital_position
		FROM planets
		WHERE system_id = $1
		ORDER BY orbital_position
	`

	rows, err := r.db.QueryContext(ctx, query, systemID)
	if err != nil {
		logger.Error("Failed to query planets", "error", err)
		return nil, fmt.Errorf("failed to query planets: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var planets []Planet
	for rows.Next() {
		var p Planet
		err := rows.Scan(
			&p.ID,
			&p.SystemID,
			&p.Name,
			&p.Description,
			&p.HasStation,
			&p.ResourceRichness,
			&p.ControllingFactionID,
			&p.OrbitalPosition,
		)
		if err != nil {
			logger.Error("Failed to scan planet row", "error", err)
			return nil, fmt.Errorf("failed to scan planet: %w", err)
		}
		planets = append(planets, p)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating planets: %w", err)
	}

	logger.Debug("Planets retrieved", "count", len(planets))
	return planets, nil
}

const stationColumns = `id, system_id, name, description, planet_id, controlling_faction_id,
		has_shipyard, has_bar, has_trade_center, has_mission_board, has_equipment_dealer,
		price_modifier`

func (r *Repository) GetAllStations(ctx context.Context) ([]SpaceStation, error) {
	logger := r.logger.With("component", "universe_repository", "operation", "get_all_stations")
	logger.Debug("Getting all space stations")

	query := `SELECT ` + stationColumns + ` FROM space_stations ORDER BY id`
	return r.queryStations(ctx, logger, query)
}

func (r *Repository) GetStationsBySystem(ctx context.Context, systemID int) ([]SpaceStation, error) {
	logger := r.logger.With(
		"component", "universe_repository",
		"operation", "get_stations_by_system",
		"system_id", systemID,
	)
	logger.Debug("Getting stations for system")

	query := `SELECT ` + stationColumns + ` FROM space_stations WHERE system_id = $1 ORDER BY id`
	return r.queryStations(ctx, logger, query, systemID)
}

func (r *Repository) GetStationByID(ctx context.Context, id int) (*SpaceStation, error) {
	logger := r.logger.With(
		"component", "universe_repository",
		"operation", "get_station",
		"station_id", id,
	)
	logger.Debug("Getting space station by ID")

	query := `SELECT ` + stationColumns + ` FROM space_stations WHERE id = $1`

	var s SpaceStation
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID,
		&s.SystemID,
		&s.Name,
		&s.Description,
		&s.PlanetID,
		&s.ControllingFactionID,
		&s.HasShipyard,
		&s.HasBar,
		&s.HasTradeCenter,
		&s.HasMissionBoard,
		&s.HasEquipmentDealer,
		&s.PriceModifier,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			logger.Debug("Space station not found")
			return nil, nil
		}
		logger.Error("Database error getting space station", "error", err)
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &s, nil
}

func (r *Repository) GetPlanetByID(ctx context.Context, id int) (*Planet, error) {
	logger := r.logger.With(
		"component", "universe_repository",
		"operation", "get_planet",
		"planet_id", id,
	)
	logger.Debug("Getting planet by ID")

	query := `
		SELECT id, system_id, name, description, has_station, resource_richness,
		       controlling_faction_id, orbital_position
		FROM planets
		WHERE id = $1
	`

	var p Planet
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.SystemID,
		&p.Name,
		&p.Description,
		&p.HasStation,
		&p.ResourceRichness,
		&p.ControllingFactionID,
		&p.OrbitalPosition,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			logger.Debug("Planet not found")
			return nil, nil
		}
		logger.Error("Database error getting planet", "error", err)
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &p, nil
}

const gateColumns = `id, name, source_system_id, target_system_id, difficulty_level, toll_fee, is_hidden`

func (r *Repository) GetAllGates(ctx context.Context) ([]JumpGate, error) {
	logger := r.logger.With("component", "universe_repository", "operation", "get_all_gates")
	logger.Debug("Getting all jump gates")

	query := `SELECT ` + gateColumns + ` FROM jump_gates ORDER BY id`
	return r.queryGates(ctx, logger, query)
}

func (r *Repository) GetGatesBySourceSystem(ctx context.Context, systemID int) ([]JumpGate, error) {
	logger := r.logger.With(
		"component", "universe_repository",
		"operation", "get_gates_by_source",
		"system_id", systemID,
	)
	logger.Debug("Getting jump gates from system")

	query := `SELECT ` + gateColumns + ` FROM jump_gates WHERE source_system_id = $1 ORDER BY id`
	return r.queryGates(ctx, logger, query, systemID)
}

func (r *Repository) GetAllFactions(ctx context.Context) ([]Faction, error) {
	logger := r.logger.With("component", "universe_repository", "operation", "get_all_factions")
	logger.Debug("Getting all factions")

	query := `
		SELECT id, name, description, government_type, primary_industry,
		       home_system_id, is_player_accessible, icon_url
		FROM factions
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("Failed to query factions", "error", err)
		return nil, fmt.Errorf("failed to query factions: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var factions []Faction
	for rows.Next() {
		var f Faction
		err := rows.Scan(
			&f.ID,
			&f.Name,
			&f.Description,
			&f.GovernmentType,
			&f.PrimaryIndustry,
			&f.HomeSystemID,
			&f.IsPlayerAccessible,
			&f.IconURL,
		)
		if err != nil {
			logger.Error("Failed to scan faction row", "error", err)
			return nil, fmt.Errorf("failed to scan faction: %w", err)
		}
		factions = append(factions, f)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating factions: %w", err)
	}

	logger.Debug("Factions retrieved", "count", len(factions))
	return factions, nil
}

func (r *Repository) GetFactionByID(ctx context.Context, id int) (*Faction, error) {
	logger := r.logger.With(
		"component", "universe_repository",
		"operation", "get_faction",
		"faction_id", id,
	)
	logger.Debug("Getting faction by ID")

	query := `
		SELECT id, name, description, government_type, primary_industry,
		       home_system_id, is_player_accessible, icon_url
		FROM factions
		WHERE id = $1
	`

	var f Faction
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&f.ID,
		&f.Name,
		&f.Description,
		&f.GovernmentType,
		&f.PrimaryIndustry,
		&f.HomeSystemID,
		&f.IsPlayerAccessible,
		&f.IconURL,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			logger.Debug("Faction not found")
			return nil, nil
		}
		logger.Error("Database error getting faction", "error", err)
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &f, nil
}

func (r *Repository) queryStations(ctx context.Context, logger *slog.Logger, query string, args ...interface{}) ([]SpaceStation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("Failed to query space stations", "error", err)
		return nil, fmt.Errorf("failed to query space stations: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var stations []SpaceStation
	for rows.Next() {
		var s SpaceStation
		err := rows.Scan(
			&s.ID,
			&s.SystemID,
			&s.Name,
			&s.Description,
			&s.PlanetID,
			&s.ControllingFactionID,
			&s.HasShipyard,
			&s.HasBar,
			&s.HasTradeCenter,
			&s.HasMissionBoard,
			&s.HasEquipmentDealer,
			&s.PriceModifier,
		)
		if err != nil {
			logger.Error("Failed to scan space station row", "error", err)
			return nil, fmt.Errorf("failed to scan space station: %w", err)
		}
		stations = append(stations, s)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating space stations: %w", err)
	}

	logger.Debug("Space stations retrieved", "count", len(stations))
	return stations, nil
}

func (r *Repository) queryGates(ctx context.Context, logger *slog.Logger, query string, args ...interface{}) ([]JumpGate, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("Failed to query jump gates", "error", err)
		return nil, fmt.Errorf("failed to query jump gates: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var gates []JumpGate
	for rows.Next() {
		var g JumpGate
		err := rows.Scan(
			&g.ID,
			&g.Name,
			&g.SourceSystemID,
			&g.TargetSystemID,
			&g.DifficultyLevel,
			&g.TollFee,
			&g.IsHidden,
		)
		if err != nil {
			logger.Error("Failed to scan jump gate row", "error", err)
			return nil, fmt.Errorf("failed to scan jump gate: %w", err)
		}
		gates = append(gates, g)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating jump gates: %w", err)
	}

	logger.Debug("Jump gates retrieved", "count", len(gates))
	return gates, nil
}

func scanSystem(rows *sql.Rows, s *StarSystem) error {
	return rows.Scan(
		&s.ID,
		&s.Name,
		&s.Description,
		&s.DifficultyLevel,
		&s.DangerLevel,
		&s.Type,
		&s.ControllingFactionID,
		&s.X,
		&s.Y,
		&s.Z,
		&s.IsDiscovered,
	)
}
