package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridCoversDefaultRange(t *testing.T) {
	stripes := Default().Grid()

	require.Len(t, stripes, 21)
	assert.Equal(t, Stripe{X: -100, W: 100, Label: -100, Alt: true}, stripes[0])
	assert.Equal(t, Stripe{X: 0, W: 100, Label: 0, Alt: false}, stripes[1])
	assert.Equal(t, 1900, stripes[len(stripes)-1].X)
}

func TestGridUnalignedRange(t *testing.T) {
	cfg := Default()
	cfg.Range = Range{Min: -150, Max: 120}

	stripes := cfg.Grid()

	xs := make([]int, len(stripes))
	for i, s := range stripes {
		xs[i] = s.X
	}
	assert.Equal(t, []int{-200, -100, 0, 100}, xs)
}
