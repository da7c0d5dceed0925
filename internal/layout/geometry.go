// Package layout converts between timeline coordinates (start, stop, layer)
// and viewport pixels. Time units and pixels share one scale.
package layout

import (
	"errors"
	"fmt"
	"math"
)

// Default layout values
const (
	DefaultHeight      = 200
	DefaultPadding     = 20
	DefaultLayerHeight = 30
	DefaultLayerGutter = 20
	DefaultRangeMin    = -100
	DefaultRangeMax    = 2000
)

// Range is the visible time window
type Range struct {
	Min int
	Max int
}

// Config holds the layout metrics of one render pass
type Config struct {
	Range       Range
	Width       int
	Height      int
	Padding     int
	LayerHeight int
	LayerGutter int
}

// Rect is the pixel placement of an item
type Rect struct {
	X int
	Y int
	W int
}

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid layout config")

// Default returns the default layout config
func Default() Config {
	return Config{
		Range:       Range{Min: DefaultRangeMin, Max: DefaultRangeMax},
		Height:      DefaultHeight,
		Padding:     DefaultPadding,
		LayerHeight: DefaultLayerHeight,
		LayerGutter: DefaultLayerGutter,
	}
}

// Validate checks the invariants the geometry depends on
func (c Config) Validate() error {
	switch {
	case c.LayerHeight <= 0:
		return fmt.Errorf("%w: layer height must be positive, got %d", ErrInvalidConfig, c.LayerHeight)
	case c.LayerGutter < 0:
		return fmt.Errorf("%w: layer gutter must not be negative, got %d", ErrInvalidConfig, c.LayerGutter)
	case c.Padding < 0:
		return fmt.Errorf("%w: padding must not be negative, got %d", ErrInvalidConfig, c.Padding)
	case c.Height <= 0:
		return fmt.Errorf("%w: height must be positive, got %d", ErrInvalidConfig, c.Height)
	case c.Range.Max <= c.Range.Min:
		return fmt.Errorf("%w: range max (%d) must be greater than range min (%d)", ErrInvalidConfig, c.Range.Max, c.Range.Min)
	}
	return nil
}

// WithWidth returns a copy of the config with the viewport width set
func (c Config) WithWidth(width int) Config {
	c.Width = width
	return c
}

func (c Config) step() int {
	return c.LayerHeight + c.LayerGutter
}

// LayerY returns the top y of a layer
func (c Config) LayerY(layer int) int {
	return layer*c.step() + c.Padding
}

// ClosestLayer returns the layer nearest to y. y is clamped to the band
// [padding, height-3*padding] first, so the result is always a valid layer.
func (c Config) ClosestLayer(y int) int {
	lo := c.Padding
	hi := c.Height - 3*c.Padding
	if hi < lo {
		hi = lo
	}
	clamped := clamp(y, lo, hi)

	// Half rounds up.
	return int(math.Floor(float64(clamped-c.Padding)/float64(c.step()) + 0.5))
}

// ClosestLayerY snaps y to the top of its nearest layer
func (c Config) ClosestLayerY(y int) int {
	return c.LayerY(c.ClosestLayer(y))
}

// CalcPosition returns the pixel rect of an item
func (c Config) CalcPosition(start, stop, layer int) Rect {
	return Rect{
		X: start,
		Y: c.LayerY(layer),
		W: stop - start,
	}
}

// LayerCount returns the number of layers that fit into height
func (c Config) LayerCount(height int) int {
	return c.ClosestLayer(height) + 1
}

// Layers returns the number of layers of this config's height
func (c Config) Layers() int {
	return c.LayerCount(c.Height)
}

// PanBounds returns the allowed horizontal offsets. The right end of the
// range limits dragging to the left and vice versa, hence the sign flip.
// When the range is narrower than the viewport both bounds collapse onto hi,
// which keeps the range start at the left edge.
func (c Config) PanBounds() (lo, hi int) {
	lo = -(c.Range.Max - c.Width + c.Padding)
	hi = -(c.Range.Min + c.Padding)
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

// ClampPan clamps a horizontal pan offset into PanBounds
func (c Config) ClampPan(x int) int {
	lo, hi := c.PanBounds()
	return clamp(x, lo, hi)
}

// TimeAt converts a viewport pixel column into a time value for a pan offset
func (c Config) TimeAt(px, offset int) int {
	return px - c.Padding - offset
}

// PixelAt converts a time value into a viewport pixel column for a pan offset
func (c Config) PixelAt(t, offset int) int {
	return t + c.Padding + offset
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
