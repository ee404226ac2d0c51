package universe

import (
	"context"
	"log/slog"

	apperrors "freelancer-server/internal/shared/errors"
)

// Catalog is the read side of the universe repository the service consumes.
type Catalog interface {
	GetAllSystems(ctx context.Context) ([]StarSystem, error)
	GetSystemByID(ctx context.Context, id int) (*StarSystem, error)
	GetPlanetsBySystem(ctx context.Context, systemID int) ([]Planet, error)
	GetPlanetByID(ctx context.Context, id int) (*Planet, error)
	GetAllStations(ctx context.Context) ([]SpaceStation, error)
	GetStationsBySystem(ctx context.Context, systemID int) ([]SpaceStation, error)
	GetStationByID(ctx context.Context, id int) (*SpaceStation, error)
	GetAllGates(ctx context.Context) ([]JumpGate, error)
	GetGatesBySourceSystem(ctx context.Context, systemID int) ([]JumpGate, error)
	GetAllFactions(ctx context.Context) ([]Faction, error)
	GetFactionByID(ctx context.Context, id int) (*Faction, error)
}

type Service struct {
	catalog Catalog
	logger  *slog.Logger
}

func NewService(catalog Catalog, logger *slog.Logger) *Service {
	logger.Debug("Initializing universe service")

	return &Service{
		catalog: catalog,
		logger:  logger,
	}
}

// ListSystems returns the systems visible to the viewer, optionally filtered
// by system type. The listing exposes core and mid systems regardless of
// discovery.
func (s *Service) ListSystems(ctx context.Context, typeFilter string, showAll bool) ([]StarSystem, error) {
	systems, err := s.catalog.GetAllSystems(ctx)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to load star systems", err)
	}

	visible := make([]StarSystem, 0, len(systems))
	for _, system := range systems {
		if typeFilter != "" && string(system.Type) != typeFilter {
			continue
		}
		if SystemVisible(&system, showAll, ListingVisibleTypes) {
			visible = append(visible, system)
		}
	}

	return visible, nil
}

// GetSystemDetail returns a single system with its planets, stations and
// visible jump gates. Only core systems bypass the discovery gate here; an
// undiscovered system yields a forbidden error, a missing ID a not-found.
func (s *Service) GetSystemDetail(ctx context.Context, systemID int) (*SystemDetail, error) {
	system, err := s.catalog.GetSystemByID(ctx, systemID)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to load star system", err)
	}
	if system == nil {
		return nil, apperrors.NotFoundf("star system not found with id: %d", systemID)
	}

	if !SystemVisible(system, false, DetailVisibleTypes) {
		return nil, apperrors.Forbidden("star system has not been discovered")
	}

	detail := &SystemDetail{StarSystem: *system}

	if system.ControllingFactionID != nil {
		faction, err := s.catalog.GetFactionByID(ctx, *system.ControllingFactionID)
		if err != nil {
			return nil, apperrors.WrapInternal("failed to load controlling faction", err)
		}
		detail.ControllingFaction = faction
	}

	planets, err := s.catalog.GetPlanetsBySystem(ctx, systemID)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to load planets", err)
	}
	detail.Planets = planets

	stations, err := s.catalog.GetStationsBySystem(ctx, systemID)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to load stations", err)
	}
	detail.Stations = stations

	gates, err := s.catalog.GetGatesBySourceSystem(ctx, systemID)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to load jump gates", err)
	}

	targets, err := s.systemsByID(ctx)
	if err != nil {
		return nil, err
	}

	detail.JumpGates = filterGates(gates, targets, false)
	return detail, nil
}

// ListStations returns the stations in visible systems, optionally narrowed
// to a single system.
func (s *Service) ListStations(ctx context.Context, systemID *int, showAll bool) ([]SpaceStation, error) {
	systems, err := s.systemsByID(ctx)
	if err != nil {
		return nil, err
	}

	var stations []SpaceStation
	if systemID != nil {
		system, ok := systems[*systemID]
		if !ok {
			return nil, apperrors.NotFoundf("star system not found with id: %d", *systemID)
		}
		if !SystemVisible(&system, showAll, DetailVisibleTypes) {
			return nil, apperrors.Forbidden("star system has not been discovered")
		}

		stations, err = s.catalog.GetStationsBySystem(ctx, *systemID)
	} else {
		stations, err = s.catalog.GetAllStations(ctx)
	}
	if err != nil {
		return nil, apperrors.WrapInternal("failed to load stations", err)
	}

	visible := make([]SpaceStation, 0, len(stations))
	for _, station := range stations {
		owner, ok := systems[station.SystemID]
		if !ok {
			continue
		}
		if StationVisible(&station, &owner, showAll) {
			visible = append(visible, station)
		}
	}

	return visible, nil
}

// GetStationDetail returns a single station with its system, planet and
// faction. The station follows its owning system's visibility.
func (s *Service) GetStationDetail(ctx context.Context, stationID int) (*StationDetail, error) {
	station, err := s.catalog.GetStationByID(ctx, stationID)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to load station", err)
	}
	if station == nil {
		return nil, apperrors.NotFoundf("space station not found with id: %d", stationID)
	}

	system, err := s.catalog.GetSystemByID(ctx, station.SystemID)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to load owning system", err)
	}
	if system == nil || !SystemVisible(system, false, DetailVisibleTypes) {
		return nil, apperrors.Forbidden("owning star system has not been discovered")
	}

	detail := &StationDetail{
		SpaceStation: *station,
		System:       system,
	}

	if station.PlanetID != nil {
		planet, err := s.catalog.GetPlanetByID(ctx, *station.PlanetID)
		if err != nil {
			return nil, apperrors.WrapInternal("failed to load planet", err)
		}
		detail.Planet = planet
	}

	if station.ControllingFactionID != nil {
		faction, err := s.catalog.GetFactionByID(ctx, *station.ControllingFactionID)
		if err != nil {
			return nil, apperrors.WrapInternal("failed to load controlling faction", err)
		}
		detail.ControllingFaction = faction
	}

	return detail, nil
}

// ListGates returns jump gates whose source system is visible, optionally
// narrowed to one source system. Hidden gates additionally require a
// visible target system.
func (s *Service) ListGates(ctx context.Context, systemID *int, showAll bool) ([]JumpGate, error) {
	systems, err := s.systemsByID(ctx)
	if err != nil {
		return nil, err
	}

	var gates []JumpGate
	if systemID != nil {
		system, ok := systems[*systemID]
		if !ok {
			return nil, apperrors.NotFoundf("star system not found with id: %d", *systemID)
		}
		if !SystemVisible(&system, showAll, DetailVisibleTypes) {
			return nil, apperrors.Forbidden("star system has not been discovered")
		}

		gates, err = s.catalog.GetGatesBySourceSystem(ctx, *systemID)
	} else {
		gates, err = s.catalog.GetAllGates(ctx)
	}
	if err != nil {
		return nil, apperrors.WrapInternal("failed to load jump gates", err)
	}

	visible := make([]JumpGate, 0, len(gates))
	for _, gate := range gates {
		source, ok := systems[gate.SourceSystemID]
		if !ok || !SystemVisible(&source, showAll, DetailVisibleTypes) {
			continue
		}
		target, ok := systems[gate.TargetSystemID]
		var targetPtr *StarSystem
		if ok {
			targetPtr = &target
		}
		if GateVisible(&gate, targetPtr, showAll) {
			visible = append(visible, gate)
		}
	}

	return visible, nil
}

// ListFactions returns every faction; faction data is not gated by
// discovery.
func (s *Service) ListFactions(ctx context.Context) ([]Faction, error) {
	factions, err := s.catalog.GetAllFactions(ctx)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to load factions", err)
	}
	return factions, nil
}

func (s *Service) systemsByID(ctx context.Context) (map[int]StarSystem, error) {
	systems, err := s.catalog.GetAllSystems(ctx)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to load star systems", err)
	}

	byID := make(map[int]StarSystem, len(systems))
	for _, system := range systems {
		byID[system.ID] = system
	}
	return byID, nil
}

func filterGates(gates []JumpGate, systems map[int]StarSystem, showAll bool) []JumpGate {
	visible := make([]JumpGate, 0, len(gates))
	for _, gate := range gates {
		target, ok := systems[gate.TargetSystemID]
		var targetPtr *StarSystem
		if ok {
			targetPtr = &target
		}
		if GateVisible(&gate, targetPtr, showAll) {
			visible = append(visible, gate)
		}
	}
	return visible
}
