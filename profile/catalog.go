package profile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/voskhod/tactgrid/core"
)

// Definition models the JSON contract for designer-authored movement
// profiles. Shared with the schema generator so editors get a
// machine-readable document for validation
type Definition struct {
	Name        string `json:"name" jsonschema:"title=Profile name,pattern=^[A-Za-z][A-Za-z0-9_-]*$,description=Unique profile identifier referenced by assignments"`
	Description string `json:"description,omitempty" jsonschema:"description=Designer facing summary"`

	MinRange int `json:"minRange" jsonschema:"minimum=0,description=Inclusive lower tile-distance bound per step"`
	MaxRange int `json:"maxRange" jsonschema:"minimum=0,description=Inclusive upper tile-distance bound per step"`

	Pattern           string `json:"pattern" jsonschema:"enum=free,enum=cross_only,enum=diagonal_only,enum=knight,enum=straight_line,enum=adjacent_only,enum=custom"`
	CanMoveDiagonally bool   `json:"canMoveDiagonally,omitempty"`

	RequiresLineOfSight bool `json:"requiresLineOfSight,omitempty"`

	MovementCostMultiplier float64 `json:"movementCostMultiplier,omitempty" jsonschema:"description=Per-step cost scale,default=1.0"`
	DiagonalCostMultiplier float64 `json:"diagonalCostMultiplier,omitempty" jsonschema:"description=Extra scale on exact diagonals,default=1.0"`

	UseRaycasting     bool    `json:"useRaycasting,omitempty"`
	CollisionMask     uint32  `json:"collisionMask,omitempty"`
	AllowThroughUnits bool    `json:"allowThroughUnits,omitempty"`
	MaxDistance       float64 `json:"maxDistance,omitempty"`

	CanJumpOverObstacles bool `json:"canJumpOverObstacles,omitempty"`
	CanMoveThroughWalls  bool `json:"canMoveThroughWalls,omitempty"`

	PreferredDirections [][2]int `json:"preferredDirections,omitempty" jsonschema:"description=Direction offsets for the custom pattern as [dx,dy] pairs"`
	LayerRestrictions   []int    `json:"layerRestrictions,omitempty" jsonschema:"description=Layers the profile may stand on; empty means unrestricted"`
}

// Catalog represents the contents of a profile catalog file: the
// canonical array format authored by designers
type Catalog []Definition

// Build validates one definition and converts it to a Profile
func (d *Definition) Build() (*Profile, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("profile: definition without a name")
	}
	if d.MaxRange < d.MinRange {
		return nil, fmt.Errorf("profile %s: maxRange %d below minRange %d", d.Name, d.MaxRange, d.MinRange)
	}
	pattern, err := ParsePattern(d.Pattern)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", d.Name, err)
	}
	if pattern == PatternCustom && len(d.PreferredDirections) == 0 {
		return nil, fmt.Errorf("profile %s: custom pattern requires preferredDirections", d.Name)
	}

	p := &Profile{
		Name:                   d.Name,
		Description:            d.Description,
		MinRange:               d.MinRange,
		MaxRange:               d.MaxRange,
		Pattern:                pattern,
		CanMoveDiagonally:      d.CanMoveDiagonally,
		RequiresLineOfSight:    d.RequiresLineOfSight,
		MovementCostMultiplier: d.MovementCostMultiplier,
		DiagonalCostMultiplier: d.DiagonalCostMultiplier,
		UseRaycasting:          d.UseRaycasting,
		CollisionMask:          d.CollisionMask,
		AllowThroughUnits:      d.AllowThroughUnits,
		MaxDistance:            d.MaxDistance,
		CanJumpOverObstacles:   d.CanJumpOverObstacles,
		CanMoveThroughWalls:    d.CanMoveThroughWalls,
		LayerRestrictions:      d.LayerRestrictions,
	}
	if p.MovementCostMultiplier == 0 {
		p.MovementCostMultiplier = 1.0
	}
	if p.DiagonalCostMultiplier == 0 {
		p.DiagonalCostMultiplier = 1.0
	}
	for _, dir := range d.PreferredDirections {
		p.PreferredDirections = append(p.PreferredDirections, core.Offset{DX: dir[0], DY: dir[1]})
	}
	return p, nil
}

// LoadCatalog parses a catalog file and registers every profile.
// Any invalid definition fails the whole load: catalog files are
// authored as a unit
func LoadCatalog(path string, m *Manager) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("profile: read catalog: %w", err)
	}
	return ParseCatalog(data, m)
}

// ParseCatalog registers every profile in the raw catalog document
func ParseCatalog(data []byte, m *Manager) error {
	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return fmt.Errorf("profile: parse catalog: %w", err)
	}
	for i := range catalog {
		p, err := catalog[i].Build()
		if err != nil {
			return err
		}
		m.Register(p)
	}
	return nil
}
