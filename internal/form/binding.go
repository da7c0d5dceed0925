package form

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/pstuifzand/tui-timeline/internal/model"
)

// Updater commits field edits to the item collection
type Updater interface {
	Update(ref model.Ref, fields model.Partial) error
}

// Binding holds the form's field values. Load only refreshes the view;
// Change also commits the edit through the Updater.
type Binding struct {
	values  map[int]map[string]string
	updater Updater
	logger  *slog.Logger
	layers  int
}

// NewBinding creates a binding that commits edits through updater
func NewBinding(updater Updater, logger *slog.Logger) *Binding {
	if logger == nil {
		logger = slog.Default()
	}
	return &Binding{
		values:  make(map[int]map[string]string),
		updater: updater,
		logger:  logger,
	}
}

// LimitLayers makes Change reject priorities of n or more. Zero means no limit.
func (b *Binding) LimitLayers(n int) {
	b.layers = n
}

// Load sets the value at path. An item path accepts a model.Item and loads
// all of its fields.
func (b *Binding) Load(path string, value any) {
	index, field, err := ParsePath(path)
	if err != nil {
		b.logger.Warn("form load ignored", "path", path, "err", err)
		return
	}
	if field == "" {
		item, ok := value.(model.Item)
		if !ok {
			b.logger.Warn("form load ignored: not an item", "path", path)
			return
		}
		b.values[index] = itemValues(item)
		return
	}
	b.set(index, field, format(value))
}

// Change sets the value at path and commits it to the collection
func (b *Binding) Change(path string, value any) {
	index, field, err := ParsePath(path)
	if err != nil || field == "" {
		b.logger.Warn("form change ignored", "path", path, "err", err)
		return
	}

	fields, err := partialFor(field, value, b.layers)
	if err != nil {
		b.logger.Warn("form change rejected", "path", path, "err", err)
		return
	}
	b.set(index, field, format(value))

	if b.updater == nil {
		return
	}
	if err := b.updater.Update(model.Ref{Index: index}, fields); err != nil {
		b.logger.Error("failed to commit form change", "path", path, "err", err)
	}
}

// Value returns the value at path, or "" when nothing is loaded there
func (b *Binding) Value(path string) string {
	index, field, err := ParsePath(path)
	if err != nil || field == "" {
		return ""
	}
	return b.values[index][field]
}

// Fields returns the loaded field names of the item at index, sorted
func (b *Binding) Fields(index int) []string {
	return slices.Sorted(maps.Keys(b.values[index]))
}

// Forget drops everything loaded for index and above; used after removals
// since the indices shift.
func (b *Binding) Forget(from int) {
	for idx := range b.values {
		if idx >= from {
			delete(b.values, idx)
		}
	}
}

func (b *Binding) set(index int, field, value string) {
	if b.values[index] == nil {
		b.values[index] = make(map[string]string)
	}
	b.values[index][field] = value
}

func itemValues(item model.Item) map[string]string {
	values := map[string]string{
		FieldStart:    strconv.Itoa(item.Start),
		FieldStop:     strconv.Itoa(item.Stop),
		FieldPriority: strconv.Itoa(item.Priority),
		FieldLabel:    item.Label,
	}
	for k, v := range item.Attributes {
		values[k] = v
	}
	return values
}

func partialFor(field string, value any, layers int) (model.Partial, error) {
	if IsNumeric(field) {
		n, err := toInt(value)
		if err != nil {
			return model.Partial{}, fmt.Errorf("%s: %w", field, err)
		}
		switch field {
		case FieldStart:
			return model.Partial{Start: &n}, nil
		case FieldStop:
			return model.Partial{Stop: &n}, nil
		default:
			if n < 0 {
				return model.Partial{}, fmt.Errorf("priority must not be negative, got %d", n)
			}
			if layers > 0 && n >= layers {
				return model.Partial{}, fmt.Errorf("priority must be below %d, got %d", layers, n)
			}
			return model.Partial{Priority: &n}, nil
		}
	}
	if field == FieldLabel {
		label := format(value)
		if label == "" {
			return model.Partial{}, errors.New("label must not be empty")
		}
		return model.Partial{Label: label}, nil
	}
	return model.Partial{Attributes: map[string]string{field: format(value)}}, nil
}

func toInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", v)
		}
		return n, nil
	}
	return 0, fmt.Errorf("unsupported value type %T", value)
}

func format(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	}
	return fmt.Sprint(value)
}
