package universe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func system(id int, typ SystemType, discovered bool) StarSystem {
	return StarSystem{ID: id, Type: typ, IsDiscovered: discovered}
}

func TestSystemVisible_Listing(t *testing.T) {
	tests := []struct {
		name    string
		system  StarSystem
		showAll bool
		want    bool
	}{
		{"core undiscovered", system(1, SystemTypeCore, false), false, true},
		{"mid undiscovered", system(2, SystemTypeMid, false), false, true},
		{"outer undiscovered", system(3, SystemTypeOuter, false), false, false},
		{"outer discovered", system(3, SystemTypeOuter, true), false, true},
		{"outer undiscovered with show all", system(3, SystemTypeOuter, false), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SystemVisible(&tt.system, tt.showAll, ListingVisibleTypes)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSystemVisible_Detail(t *testing.T) {
	tests := []struct {
		name   string
		system StarSystem
		want   bool
	}{
		{"core undiscovered", system(1, SystemTypeCore, false), true},
		{"mid undiscovered", system(2, SystemTypeMid, false), false},
		{"mid discovered", system(2, SystemTypeMid, true), true},
		{"outer undiscovered", system(3, SystemTypeOuter, false), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SystemVisible(&tt.system, false, DetailVisibleTypes)
			assert.Equal(t, tt.want, got)
		})
	}
}

// A mid system appears in listings yet rejects detail access until it has
// been discovered.
func TestVisibilityAsymmetry(t *testing.T) {
	mid := system(2, SystemTypeMid, false)

	assert.True(t, SystemVisible(&mid, false, ListingVisibleTypes))
	assert.False(t, SystemVisible(&mid, false, DetailVisibleTypes))
}

func TestStationVisible(t *testing.T) {
	core := system(1, SystemTypeCore, false)
	outer := system(3, SystemTypeOuter, false)
	discoveredOuter := system(4, SystemTypeOuter, true)

	tests := []struct {
		name    string
		station SpaceStation
		owner   *StarSystem
		showAll bool
		want    bool
	}{
		{"core system station", SpaceStation{ID: 1, SystemID: 1}, &core, false, true},
		{"undiscovered outer station", SpaceStation{ID: 2, SystemID: 3}, &outer, false, false},
		{"discovered outer station", SpaceStation{ID: 3, SystemID: 4}, &discoveredOuter, false, true},
		{"show all overrides discovery", SpaceStation{ID: 2, SystemID: 3}, &outer, true, true},
		{"missing owner", SpaceStation{ID: 4, SystemID: 9}, nil, false, false},
		{"owner mismatch", SpaceStation{ID: 5, SystemID: 3}, &core, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StationVisible(&tt.station, tt.owner, tt.showAll)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGateVisible(t *testing.T) {
	core := system(1, SystemTypeCore, false)
	outer := system(3, SystemTypeOuter, false)
	discoveredOuter := system(4, SystemTypeOuter, true)

	tests := []struct {
		name    string
		gate    JumpGate
		target  *StarSystem
		showAll bool
		want    bool
	}{
		{"open gate", JumpGate{ID: 1, TargetSystemID: 3}, &outer, false, true},
		{"hidden gate to undiscovered target", JumpGate{ID: 2, TargetSystemID: 3, IsHidden: true}, &outer, false, false},
		{"hidden gate to discovered target", JumpGate{ID: 3, TargetSystemID: 4, IsHidden: true}, &discoveredOuter, false, true},
		{"hidden gate to core target", JumpGate{ID: 4, TargetSystemID: 1, IsHidden: true}, &core, false, true},
		{"hidden gate with show all", JumpGate{ID: 2, TargetSystemID: 3, IsHidden: true}, &outer, true, true},
		{"hidden gate with missing target", JumpGate{ID: 5, TargetSystemID: 9, IsHidden: true}, nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GateVisible(&tt.gate, tt.target, tt.showAll)
			assert.Equal(t, tt.want, got)
		})
	}
}
