package layout

// GridStep is the width of one background stripe in time units
const GridStep = 100

// Stripe is one band of the background grid
type Stripe struct {
	X     int
	W     int
	Label int
	Alt   bool
}

// Grid returns the background stripes covering the range. Stripes start on
// multiples of GridStep and alternate shading.
func (c Config) Grid() []Stripe {
	first := floorDiv(c.Range.Min, GridStep)
	last := floorDiv(c.Range.Max-1, GridStep)

	stripes := make([]Stripe, 0, last-first+1)
	for i := first; i <= last; i++ {
		stripes = append(stripes, Stripe{
			X:     i * GridStep,
			W:     GridStep,
			Label: i * GridStep,
			Alt:   i%2 != 0,
		})
	}
	return stripes
}

// AxisY returns the y of the axis line at the bottom of the timeline
func (c Config) AxisY() int {
	return c.Height - 1
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
