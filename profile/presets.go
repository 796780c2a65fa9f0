package profile

import "github.com/voskhod/tactgrid/parameter"

// Movement presets - configuration data, not distinct types.
// Units differ only in these parameter values

// Infantry is the default line unit: short reach, free movement
var Infantry = Profile{
	Name:                   "Infantry",
	Description:            "Standard ground unit, short free movement",
	MinRange:               1,
	MaxRange:               2,
	Pattern:                PatternFree,
	CanMoveDiagonally:      true,
	MovementCostMultiplier: 1.0,
	DiagonalCostMultiplier: 1.4,
}

// Scout trades armor for reach and sight discipline
var Scout = Profile{
	Name:                   "Scout",
	Description:            "Fast recon unit, long reach, needs line of sight",
	MinRange:               1,
	MaxRange:               4,
	Pattern:                PatternFree,
	CanMoveDiagonally:      true,
	RequiresLineOfSight:    true,
	MovementCostMultiplier: 0.8,
	DiagonalCostMultiplier: 1.2,
	UseRaycasting:          true,
	CollisionMask:          parameter.DefaultRaycastMask,
}

// Heavy lumbers one tile at a time, orthogonally
var Heavy = Profile{
	Name:                   "Heavy",
	Description:            "Armored unit, single orthogonal steps only",
	MinRange:               1,
	MaxRange:               1,
	Pattern:                PatternAdjacentOnly,
	CanMoveDiagonally:      false,
	MovementCostMultiplier: 2.0,
	DiagonalCostMultiplier: 1.0,
}

// Knight jumps in fixed L-offsets over anything in between
var Knight = Profile{
	Name:                   "Knight",
	Description:            "L-shaped jumps, ignores intervening obstacles",
	MinRange:               2,
	MaxRange:               3,
	Pattern:                PatternKnight,
	CanMoveDiagonally:      true,
	MovementCostMultiplier: 1.5,
	DiagonalCostMultiplier: 1.0,
	CanJumpOverObstacles:   true,
}

// Archer repositions along straight lines with clear sight
var Archer = Profile{
	Name:                   "Archer",
	Description:            "Straight-line movement, line of sight required",
	MinRange:               1,
	MaxRange:               3,
	Pattern:                PatternStraightLine,
	CanMoveDiagonally:      true,
	RequiresLineOfSight:    true,
	MovementCostMultiplier: 1.0,
	DiagonalCostMultiplier: 1.4,
	UseRaycasting:          true,
	CollisionMask:          parameter.DefaultRaycastMask,
}

// Flyer phases over walls, restricted to the upper layers
var Flyer = Profile{
	Name:                   "Flyer",
	Description:            "Airborne unit, ignores walls, upper layers only",
	MinRange:               1,
	MaxRange:               5,
	Pattern:                PatternFree,
	CanMoveDiagonally:      true,
	MovementCostMultiplier: 0.7,
	DiagonalCostMultiplier: 1.0,
	CanMoveThroughWalls:    true,
	LayerRestrictions:      []int{1, 2},
}

// Presets lists the built-in profiles in registration order
var Presets = []*Profile{&Infantry, &Scout, &Heavy, &Knight, &Archer, &Flyer}
