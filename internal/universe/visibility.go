package universe

import "slices"

// Which system types are exposed regardless of the discovery flag differs
// between the listing endpoint and everything keyed to a single system.
// The rule itself is one function; call sites pick the allowed set.
var (
	ListingVisibleTypes = []SystemType{SystemTypeCore, SystemTypeMid}
	DetailVisibleTypes  = []SystemType{SystemTypeCore}
)

// SystemVisible reports whether a star system is exposed to the viewer.
// A system is visible when the show-all override is set, when it has been
// discovered, or when its type is in the always-visible set.
func SystemVisible(system *StarSystem, showAll bool, alwaysVisible []SystemType) bool {
	if showAll || system.IsDiscovered {
		return true
	}
	return slices.Contains(alwaysVisible, system.Type)
}

// StationVisible reports whether a space station is exposed: it follows its
// owning system.
func StationVisible(station *SpaceStation, owner *StarSystem, showAll bool) bool {
	if owner == nil || station.SystemID != owner.ID {
		return false
	}
	return SystemVisible(owner, showAll, DetailVisibleTypes)
}

// GateVisible reports whether a jump gate from a visible source system is
// exposed. A hidden gate additionally requires its target system to be
// visible; non-hidden gates always are.
func GateVisible(gate *JumpGate, target *StarSystem, showAll bool) bool {
	if showAll || !gate.IsHidden {
		return true
	}
	if target == nil {
		return false
	}
	return SystemVisible(target, false, DetailVisibleTypes)
}
