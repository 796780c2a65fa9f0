package parameter

// Grid geometry

const (
	// TileWidth is the isometric tile width in world units
	TileWidth = 64.0

	// TileHeight is the isometric tile height in world units
	TileHeight = 32.0

	// DefaultGridWidth and DefaultGridHeight size the scan area in cells
	DefaultGridWidth  = 16
	DefaultGridHeight = 16

	// MaxLayers is the number of stacked vertical levels
	MaxLayers = 3

	// LayerWorldHeight is the vertical world-space offset between layers,
	// applied when casting rays between cells on elevated layers
	LayerWorldHeight = 32.0
)

// Scheduling

const (
	// GridRebuildDeferTicks delays the initial scan so it does not contend
	// with other startup work on the first simulation tick
	GridRebuildDeferTicks = 1
)

// Tile height buckets: normalized custom-data height mapped to discrete
// world offsets by threshold (>=1.0, >=0.5, >=0.25, else base)
const (
	HeightBucketBase   = 1.0
	HeightBucketLow    = 2.5
	HeightBucketMid    = 5.0
	HeightBucketHigh   = 10.0
	HeightThresholdLow = 0.25
	HeightThresholdMid = 0.5
	HeightThresholdTop = 1.0
)
