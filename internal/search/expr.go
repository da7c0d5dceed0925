// Package search parses filter queries over timeline items, e.g.
//
//	design | review -draft s:>=100 @owner=ann
//
// Plain words match labels, filters match placement and attributes.
package search

import (
	"cmp"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/pstuifzand/tui-timeline/internal/model"
)

// FilterExpr represents a filter expression that can match items
type FilterExpr interface {
	Matches(item model.Item) bool
	String() string // For debug output
}

// TextExpr matches items whose label contains the search term (case-insensitive)
type TextExpr struct {
	term string
}

func NewTextExpr(term string) *TextExpr {
	return &TextExpr{term: strings.ToLower(term)}
}

func (e *TextExpr) Matches(item model.Item) bool {
	return strings.Contains(strings.ToLower(item.Label), e.term)
}

func (e *TextExpr) String() string {
	return fmt.Sprintf("text(%q)", e.term)
}

// Term returns the lowercased search term
func (e *TextExpr) Term() string {
	return e.term
}

// FuzzyExpr matches items whose label fuzzy-matches the search term (case-insensitive)
type FuzzyExpr struct {
	term string
}

func NewFuzzyExpr(term string) *FuzzyExpr {
	return &FuzzyExpr{term: term}
}

func (e *FuzzyExpr) Matches(item model.Item) bool {
	return fuzzy.MatchFold(e.term, item.Label)
}

func (e *FuzzyExpr) String() string {
	return fmt.Sprintf("fuzzy(%q)", e.term)
}

// RegexExpr matches items whose label matches a regular expression pattern
type RegexExpr struct {
	pattern string
	re      *regexp.Regexp
}

func NewRegexExpr(pattern string) (*RegexExpr, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern: %w", err)
	}
	return &RegexExpr{pattern: pattern, re: re}, nil
}

func (e *RegexExpr) Matches(item model.Item) bool {
	return e.re.MatchString(item.Label)
}

func (e *RegexExpr) String() string {
	return fmt.Sprintf("regex(/%s/)", e.pattern)
}

// AlwaysMatchExpr matches all items (for empty queries)
type AlwaysMatchExpr struct{}

func NewAlwaysMatchExpr() *AlwaysMatchExpr {
	return &AlwaysMatchExpr{}
}

func (e *AlwaysMatchExpr) Matches(item model.Item) bool {
	return true
}

func (e *AlwaysMatchExpr) String() string {
	return "all"
}

// AndExpr matches if both left and right match
type AndExpr struct {
	left  FilterExpr
	right FilterExpr
}

func NewAndExpr(left, right FilterExpr) *AndExpr {
	return &AndExpr{left: left, right: right}
}

func (e *AndExpr) Matches(item model.Item) bool {
	return e.left.Matches(item) && e.right.Matches(item)
}

func (e *AndExpr) String() string {
	return fmt.Sprintf("(%s AND %s)", e.left, e.right)
}

// OrExpr matches if either left or right matches
type OrExpr struct {
	left  FilterExpr
	right FilterExpr
}

func NewOrExpr(left, right FilterExpr) *OrExpr {
	return &OrExpr{left: left, right: right}
}

func (e *OrExpr) Matches(item model.Item) bool {
	return e.left.Matches(item) || e.right.Matches(item)
}

func (e *OrExpr) String() string {
	return fmt.Sprintf("(%s OR %s)", e.left, e.right)
}

// NotExpr matches if the wrapped expression does not match
type NotExpr struct {
	expr FilterExpr
}

func NewNotExpr(expr FilterExpr) *NotExpr {
	return &NotExpr{expr: expr}
}

func (e *NotExpr) Matches(item model.Item) bool {
	return !e.expr.Matches(item)
}

func (e *NotExpr) String() string {
	return fmt.Sprintf("NOT %s", e.expr)
}

// NumberField names a numeric property of an item
type NumberField string

const (
	FieldStart  NumberField = "start"
	FieldStop   NumberField = "stop"
	FieldLayer  NumberField = "layer"
	FieldLength NumberField = "length"
)

func (f NumberField) of(item model.Item) int {
	switch f {
	case FieldStart:
		return item.Start
	case FieldStop:
		return item.Stop
	case FieldLayer:
		return item.Priority
	}
	return item.Len()
}

// NumberFilter compares a numeric property of the item with a value
type NumberFilter struct {
	field NumberField
	op    ComparisonOp
	value int
}

func NewNumberFilter(field NumberField, op ComparisonOp, value string) (*NumberFilter, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: not a number", field, value)
	}
	return &NumberFilter{field: field, op: op, value: n}, nil
}

func (e *NumberFilter) Matches(item model.Item) bool {
	return e.op.holds(cmp.Compare(e.field.of(item), e.value))
}

func (e *NumberFilter) String() string {
	return fmt.Sprintf("%s%s%d", e.field, e.op, e.value)
}

// AtFilter matches items whose span covers a point in time
type AtFilter struct {
	at int
}

func NewAtFilter(value string) (*AtFilter, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid time %q: not a number", value)
	}
	return &AtFilter{at: n}, nil
}

func (e *AtFilter) Matches(item model.Item) bool {
	return item.Start <= e.at && e.at < item.Stop
}

func (e *AtFilter) String() string {
	return fmt.Sprintf("at(%d)", e.at)
}

// AttributeFilter matches items with specific attributes. Values compare as
// numbers when both sides are numbers, as strings otherwise.
type AttributeFilter struct {
	key   string
	op    ComparisonOp
	value string
}

func NewAttrFilter(key string, op ComparisonOp, value string) *AttributeFilter {
	return &AttributeFilter{key: key, op: op, value: value}
}

func (e *AttributeFilter) Matches(item model.Item) bool {
	attrVal, exists := item.Attributes[e.key]

	if e.op == "" {
		// Just checking for existence
		return exists
	}

	if !exists {
		return e.op == OpNotEqual
	}

	return e.op.holds(compareValues(attrVal, e.value))
}

func (e *AttributeFilter) String() string {
	if e.op == "" {
		return fmt.Sprintf("attr(%s)", e.key)
	}
	return fmt.Sprintf("attr(%s%s%s)", e.key, e.op, e.value)
}

func compareValues(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return cmp.Compare(na, nb)
	}
	return strings.Compare(a, b)
}

// holds reports whether the operator accepts a comparison result
func (op ComparisonOp) holds(c int) bool {
	switch op {
	case OpEqual:
		return c == 0
	case OpNotEqual:
		return c != 0
	case OpGreater:
		return c > 0
	case OpGreaterEqual:
		return c >= 0
	case OpLess:
		return c < 0
	case OpLessEqual:
		return c <= 0
	}
	return false
}

// Filter returns the indices of the items that match expr, in order
func Filter(expr FilterExpr, items []model.Item) []int {
	var out []int
	for i, item := range items {
		if expr.Matches(item) {
			out = append(out, i)
		}
	}
	return out
}
