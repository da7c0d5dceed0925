package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayerY(t *testing.T) {
	c := Default()

	assert.Equal(t, 20, c.LayerY(0))
	assert.Equal(t, 70, c.LayerY(1))
	assert.Equal(t, 120, c.LayerY(2))

	for layer := 0; layer < 10; layer++ {
		assert.Less(t, c.LayerY(layer), c.LayerY(layer+1))
	}
}

func TestClosestLayerClamps(t *testing.T) {
	c := Default()
	top := c.ClosestLayer(c.Padding)
	bottom := c.ClosestLayer(c.Height - 3*c.Padding)

	for _, y := range []int{-1000, -1, 0, 5, 19} {
		assert.Equal(t, top, c.ClosestLayer(y), "y=%d", y)
	}
	for _, y := range []int{141, 160, 200, 10000} {
		assert.Equal(t, bottom, c.ClosestLayer(y), "y=%d", y)
	}
}

func TestClosestLayer(t *testing.T) {
	c := Default()

	tests := []struct {
		y    int
		want int
	}{
		{20, 0},
		{44, 0},
		{45, 1}, // half rounds up
		{70, 1},
		{94, 1},
		{95, 2},
		{140, 2},
		{200, 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.ClosestLayer(tt.y), "y=%d", tt.y)
	}
}

func TestClosestLayerIsIdempotent(t *testing.T) {
	c := Default()
	for y := -300; y <= 500; y++ {
		layer := c.ClosestLayer(y)
		require.GreaterOrEqual(t, layer, 0)
		require.Equal(t, layer, c.ClosestLayer(c.LayerY(layer)), "y=%d", y)
		require.Equal(t, layer, c.ClosestLayer(c.ClosestLayerY(y)), "y=%d", y)
	}
}

func TestClosestLayerTinyHeight(t *testing.T) {
	c := Default()
	c.Height = 30

	assert.Equal(t, 0, c.ClosestLayer(-10))
	assert.Equal(t, 0, c.ClosestLayer(500))
	assert.Equal(t, 1, c.LayerCount(c.Height))
}

func TestCalcPosition(t *testing.T) {
	c := Default()

	assert.Equal(t, Rect{X: 50, Y: c.LayerY(2), W: 100}, c.CalcPosition(50, 150, 2))
	assert.Equal(t, Rect{X: 10, Y: 20, W: 0}, c.CalcPosition(10, 10, 0))
}

func TestLayerCount(t *testing.T) {
	c := Default()

	assert.Equal(t, 3, c.LayerCount(200))
	assert.Equal(t, 3, c.Layers())
}

func TestPanBounds(t *testing.T) {
	c := Default().WithWidth(500)

	// lo = -(Max - width + padding), hi = -(Min + padding)
	lo, hi := c.PanBounds()
	assert.Equal(t, -1520, lo)
	assert.Equal(t, 80, hi)

	assert.Equal(t, -1520, c.ClampPan(-5000))
	assert.Equal(t, 80, c.ClampPan(5000))
	assert.Equal(t, -300, c.ClampPan(-300))
}

func TestPanBoundsInvertedPinsToRangeStart(t *testing.T) {
	c := Default().WithWidth(5000)

	lo, hi := c.PanBounds()
	assert.Equal(t, lo, hi)
	assert.Equal(t, hi, c.ClampPan(-10000))
	assert.Equal(t, hi, c.ClampPan(10000))
}

func TestTimeAtRoundTrip(t *testing.T) {
	c := Default()
	for _, offset := range []int{-1520, -7, 0, 80} {
		for _, ti := range []int{-100, 0, 37, 1999} {
			assert.Equal(t, ti, c.TimeAt(c.PixelAt(ti, offset), offset))
		}
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, Default().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero layer height", func(c *Config) { c.LayerHeight = 0 }},
		{"negative gutter", func(c *Config) { c.LayerGutter = -1 }},
		{"negative padding", func(c *Config) { c.Padding = -1 }},
		{"zero height", func(c *Config) { c.Height = 0 }},
		{"empty range", func(c *Config) { c.Range = Range{Min: 10, Max: 10} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
		})
	}
}
