package parameter

import "math"

// Edge cost model

const (
	// DefaultCellCost is the base traversal cost of a walkable cell
	DefaultCellCost = 1.0

	// TeleporterExitCellCost biases pathfinding toward teleporter routes
	TeleporterExitCellCost = 0.5

	// StairCostFactor multiplies the source cell cost on stair edges
	StairCostFactor = 2.0

	// TeleporterEdgeCost is the fixed cost of an entrance→exit edge
	TeleporterEdgeCost = 0.5
)

// DiagonalCostFactor multiplies the cell cost on diagonal edges
var DiagonalCostFactor = math.Sqrt2

// Validator

const (
	// AdjacentOnlyMaxLength admits orthogonal and diagonal neighbors while
	// rejecting two-tile knight-like offsets (length sqrt(5) ≈ 2.24)
	AdjacentOnlyMaxLength = 1.5

	// DefaultRaycastMask is the collision mask used when a profile
	// enables raycasting without naming one
	DefaultRaycastMask = 0xFFFFFFFF
)
