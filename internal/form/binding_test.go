package form

import (
	"errors"
	"testing"

	"github.com/pstuifzand/tui-timeline/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingUpdater struct {
	refs   []model.Ref
	fields []model.Partial
	err    error
}

func (r *recordingUpdater) Update(ref model.Ref, fields model.Partial) error {
	r.refs = append(r.refs, ref)
	r.fields = append(r.fields, fields)
	return r.err
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		path      string
		wantIndex int
		wantField string
		wantErr   bool
	}{
		{"timeline[0]", 0, "", false},
		{"timeline[12].start", 12, "start", false},
		{"timeline[3].color", 3, "color", false},
		{"timeline[-1].start", 0, "", true},
		{"timeline.start", 0, "", true},
		{"local.timeline[1]", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			index, field, err := ParsePath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantIndex, index)
			assert.Equal(t, tt.wantField, field)
		})
	}
}

func TestPathRoundTrip(t *testing.T) {
	index, field, err := ParsePath(FieldPath(7, FieldStop))
	require.NoError(t, err)
	assert.Equal(t, 7, index)
	assert.Equal(t, FieldStop, field)
}

func TestLoadDoesNotCommit(t *testing.T) {
	u := &recordingUpdater{}
	b := NewBinding(u, nil)

	b.Load(ItemPath(1), model.Item{Start: 10, Stop: 50, Priority: 1, Label: "x", Attributes: map[string]string{"color": "red"}})
	b.Load(FieldPath(1, FieldStart), 20)

	assert.Equal(t, "20", b.Value(FieldPath(1, FieldStart)))
	assert.Equal(t, "50", b.Value(FieldPath(1, FieldStop)))
	assert.Equal(t, "x", b.Value(FieldPath(1, FieldLabel)))
	assert.Equal(t, "red", b.Value(FieldPath(1, "color")))
	assert.Equal(t, []string{"color", "label", "priority", "start", "stop"}, b.Fields(1))
	assert.Empty(t, u.refs)
}

func TestChangeCommits(t *testing.T) {
	u := &recordingUpdater{}
	b := NewBinding(u, nil)

	b.Change(FieldPath(2, FieldStart), "  40 ")
	b.Change(FieldPath(2, FieldLabel), "renamed")
	b.Change(FieldPath(2, "color"), "blue")

	require.Len(t, u.fields, 3)
	assert.Equal(t, model.Ref{Index: 2}, u.refs[0])
	require.NotNil(t, u.fields[0].Start)
	assert.Equal(t, 40, *u.fields[0].Start)
	assert.Equal(t, "renamed", u.fields[1].Label)
	assert.Equal(t, map[string]string{"color": "blue"}, u.fields[2].Attributes)
	assert.Equal(t, "40", b.Value(FieldPath(2, FieldStart)))
}

func TestChangeRejectsBadValues(t *testing.T) {
	u := &recordingUpdater{}
	b := NewBinding(u, nil)

	b.Change(FieldPath(0, FieldStop), "soon")
	b.Change(FieldPath(0, FieldPriority), -1)
	b.Change(ItemPath(0), "x")
	b.Change("nonsense", 1)

	assert.Empty(t, u.fields)
	assert.Equal(t, "", b.Value(FieldPath(0, FieldStop)))
}

func TestChangeRejectsEmptyLabel(t *testing.T) {
	u := &recordingUpdater{}
	b := NewBinding(u, nil)
	b.Load(ItemPath(0), model.Item{Start: 0, Stop: 100, Label: "keep"})

	b.Change(FieldPath(0, FieldLabel), "")

	assert.Empty(t, u.fields)
	assert.Equal(t, "keep", b.Value(FieldPath(0, FieldLabel)))
}

func TestChangeRejectsPriorityPastLastLayer(t *testing.T) {
	u := &recordingUpdater{}
	b := NewBinding(u, nil)
	b.LimitLayers(3)
	b.Load(ItemPath(0), model.Item{Start: 0, Stop: 100, Priority: 1})

	b.Change(FieldPath(0, FieldPriority), "99")
	b.Change(FieldPath(0, FieldPriority), 3)
	assert.Empty(t, u.fields)
	assert.Equal(t, "1", b.Value(FieldPath(0, FieldPriority)))

	b.Change(FieldPath(0, FieldPriority), 2)
	require.Len(t, u.fields, 1)
	assert.Equal(t, 2, *u.fields[0].Priority)
}

func TestChangeUpdaterErrorIsLogged(t *testing.T) {
	u := &recordingUpdater{err: errors.New("boom")}
	b := NewBinding(u, nil)

	b.Change(FieldPath(0, FieldStart), 5)

	assert.Len(t, u.fields, 1)
	assert.Equal(t, "5", b.Value(FieldPath(0, FieldStart)))
}

func TestForget(t *testing.T) {
	b := NewBinding(nil, nil)
	b.Load(FieldPath(0, FieldStart), 1)
	b.Load(FieldPath(1, FieldStart), 2)
	b.Load(FieldPath(2, FieldStart), 3)

	b.Forget(1)

	assert.Equal(t, "1", b.Value(FieldPath(0, FieldStart)))
	assert.Equal(t, "", b.Value(FieldPath(1, FieldStart)))
	assert.Equal(t, "", b.Value(FieldPath(2, FieldStart)))
}
