// Package terrain provides heightmap generation and terrain mesh building.
package terrain

// Options controls heightmap terrain generation.
type Options struct {
	Width       int     // Grid columns (x samples)
	Height      int     // Grid rows (z samples)
	Scale       float32 // World extent on X and Z
	HeightScale float32 // Peak amplitude of the height field
	Octaves     int     // Number of summed noise layers
}

// DefaultOptions returns the generator defaults.
func DefaultOptions() Options {
	return Options{
		Width:       64,
		Height:      64,
		Scale:       10,
		HeightScale: 5,
		Octaves:     4,
	}
}

// Heightmap is a scalar elevation field sampled on a regular grid.
type Heightmap struct {
	Heights [][]float32 // 2D array [row][column] of heights
	Width   int         // Number of columns
	Height  int         // Number of rows
	Scale   float32     // World extent covered on X and Z
}

// Height band colors, keyed by the normalized height ratio.
var (
	WaterColor    = [4]float32{0.2, 0.4, 0.8, 1.0}
	GrassColor    = [4]float32{0.2, 0.8, 0.2, 1.0}
	MountainColor = [4]float32{0.8, 0.8, 0.8, 1.0}
)
