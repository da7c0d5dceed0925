package placement

import (
	"testing"

	"github.com/pstuifzand/tui-timeline/internal/layout"
	"github.com/pstuifzand/tui-timeline/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestSuggestEmpty(t *testing.T) {
	item := Suggest(nil, model.Partial{}, layout.Default(), Options{DefaultLength: 100})

	assert.Equal(t, 0, item.Start)
	assert.Equal(t, 100, item.Stop)
	assert.Equal(t, 0, item.Priority)
}

func TestSuggestNextLayer(t *testing.T) {
	existing := []model.Item{{Start: 0, Stop: 100, Priority: 0}}

	item := Suggest(existing, model.Partial{}, layout.Default(), Options{})

	assert.Equal(t, 100, item.Start)
	assert.Equal(t, 200, item.Stop)
	assert.Equal(t, 1, item.Priority)
}

func TestSuggestWrapsPriority(t *testing.T) {
	geom := layout.Default()
	n := geom.LayerCount(geom.Height)
	existing := []model.Item{{Start: 0, Stop: 50, Priority: n - 1}}

	item := Suggest(existing, model.Partial{}, geom, Options{})

	assert.Equal(t, 0, item.Priority)
}

func TestSuggestUsesLastBySortOrder(t *testing.T) {
	existing := []model.Item{
		{ID: "late", Start: 300, Stop: 350, Priority: 0},
		{ID: "early", Start: 0, Stop: 900, Priority: 2},
		{ID: "tie-high", Start: 300, Stop: 320, Priority: 1},
	}

	item := Suggest(existing, model.Partial{}, layout.Default(), Options{})

	assert.Equal(t, 320, item.Start, "starts at the stop of the (300, 1) entry")
	assert.Equal(t, 2, item.Priority)
	assert.Equal(t, "late", existing[0].ID, "input must not be reordered")
}

func TestSuggestKeepsPresentFields(t *testing.T) {
	existing := []model.Item{{Start: 0, Stop: 100, Priority: 0}}
	partial := model.Partial{
		Start: model.Int(40),
		Label: "x",
	}

	item := Suggest(existing, partial, layout.Default(), Options{DefaultLength: 25})

	assert.Equal(t, 40, item.Start)
	assert.Equal(t, 65, item.Stop)
	assert.Equal(t, 1, item.Priority)
	assert.Equal(t, "x", item.Label)
}

func TestSuggestZeroValues(t *testing.T) {
	existing := []model.Item{{Start: 0, Stop: 100, Priority: 0}}
	partial := model.Partial{
		Start:    model.Int(0),
		Stop:     model.Int(0),
		Priority: model.Int(0),
	}

	tests := []struct {
		name     string
		presence Presence
		want     model.Item
	}{
		{
			name:     "explicit zero is kept",
			presence: PresenceExplicit,
			want:     model.Item{Start: 0, Stop: 0, Priority: 0},
		},
		{
			name:     "truthy treats zero as missing",
			presence: PresenceTruthy,
			want:     model.Item{Start: 100, Stop: 200, Priority: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := Suggest(existing, partial, layout.Default(), Options{Presence: tt.presence})
			assert.Equal(t, tt.want, item)
		})
	}
}

func TestSuggestDefaultLengthFallback(t *testing.T) {
	item := Suggest(nil, model.Partial{Start: model.Int(10)}, layout.Default(), Options{DefaultLength: -5})

	assert.Equal(t, 110, item.Stop)
}
