package search

import (
	"fmt"
	"strings"

	"github.com/pstuifzand/tui-timeline/internal/model"
)

// ExpressionString returns a pretty-printed representation of the filter expression
func ExpressionString(expr FilterExpr) string {
	return prettyPrintExpr(expr, 0)
}

func prettyPrintExpr(expr FilterExpr, indent int) string {
	indentStr := strings.Repeat("  ", indent)

	switch e := expr.(type) {
	case *AndExpr:
		left := prettyPrintExpr(e.left, indent+1)
		right := prettyPrintExpr(e.right, indent+1)
		return fmt.Sprintf("%s(and\n%s\n%s\n%s)", indentStr, left, right, indentStr)

	case *OrExpr:
		left := prettyPrintExpr(e.left, indent+1)
		right := prettyPrintExpr(e.right, indent+1)
		return fmt.Sprintf("%s(or\n%s\n%s\n%s)", indentStr, left, right, indentStr)

	case *NotExpr:
		inner := prettyPrintExpr(e.expr, indent+1)
		return fmt.Sprintf("%s(not\n%s\n%s)", indentStr, inner, indentStr)

	default:
		return indentStr + expr.String()
	}
}

// Explain says why item does or does not match expr
func Explain(item model.Item, expr FilterExpr) string {
	switch e := expr.(type) {
	case *TextExpr:
		if e.Matches(item) {
			return fmt.Sprintf("label contains %q", e.term)
		}
		return fmt.Sprintf("label does not contain %q", e.term)

	case *NumberFilter:
		verb := "matches"
		if !e.Matches(item) {
			verb = "does not match"
		}
		return fmt.Sprintf("%s %d %s %s%d", e.field, e.field.of(item), verb, e.op, e.value)

	case *AtFilter:
		if e.Matches(item) {
			return fmt.Sprintf("%d..%d covers %d", item.Start, item.Stop, e.at)
		}
		return fmt.Sprintf("%d..%d does not cover %d", item.Start, item.Stop, e.at)

	case *AttributeFilter:
		val, exists := item.Attributes[e.key]
		if !exists {
			return fmt.Sprintf("no attribute %q", e.key)
		}
		if e.op == "" {
			return fmt.Sprintf("has attribute %q = %q", e.key, val)
		}
		if e.Matches(item) {
			return fmt.Sprintf("attribute %q %s %q (value: %q)", e.key, e.op, e.value, val)
		}
		return fmt.Sprintf("attribute %q = %q does not match %s %q", e.key, val, e.op, e.value)

	case *AndExpr:
		leftMatch := e.left.Matches(item)
		rightMatch := e.right.Matches(item)
		if leftMatch && rightMatch {
			return fmt.Sprintf("%s and %s", Explain(item, e.left), Explain(item, e.right))
		}
		if !leftMatch {
			return Explain(item, e.left)
		}
		return Explain(item, e.right)

	case *OrExpr:
		if e.left.Matches(item) || !e.right.Matches(item) {
			return Explain(item, e.left)
		}
		return Explain(item, e.right)

	case *NotExpr:
		return "not: " + Explain(item, e.expr)

	default:
		if expr.Matches(item) {
			return expr.String() + " matches"
		}
		return expr.String() + " does not match"
	}
}
