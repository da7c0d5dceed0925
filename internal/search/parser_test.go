package search

import (
	"fmt"
	"testing"

	"github.com/pstuifzand/tui-timeline/internal/model"
)

func TestTokenizer(t *testing.T) {
	tests := []struct {
		input  string
		tokens []TokenType
	}{
		{
			input:  "launch",
			tokens: []TokenType{TokenText, TokenEOF},
		},
		{
			input:  "design review",
			tokens: []TokenType{TokenText, TokenText, TokenEOF},
		},
		{
			input:  "design | review",
			tokens: []TokenType{TokenText, TokenOr, TokenText, TokenEOF},
		},
		{
			input:  "design +review",
			tokens: []TokenType{TokenText, TokenAnd, TokenText, TokenEOF},
		},
		{
			input:  "-draft",
			tokens: []TokenType{TokenNot, TokenText, TokenEOF},
		},
		{
			input:  "-10",
			tokens: []TokenType{TokenText, TokenEOF},
		},
		{
			input:  "s:>100",
			tokens: []TokenType{TokenFilter, TokenEOF},
		},
		{
			input:  "s:>=100 @owner=ann",
			tokens: []TokenType{TokenFilter, TokenFilter, TokenEOF},
		},
		{
			input:  "(design | review)",
			tokens: []TokenType{TokenLParen, TokenText, TokenOr, TokenText, TokenRParen, TokenEOF},
		},
		{
			input:  `"multi word"`,
			tokens: []TokenType{TokenText, TokenEOF},
		},
		{
			input:  "@url",
			tokens: []TokenType{TokenFilter, TokenEOF},
		},
		{
			input:  "/^rel.*/ ~dsgn",
			tokens: []TokenType{TokenRegex, TokenFilter, TokenEOF},
		},
		{
			input:  "/",
			tokens: []TokenType{TokenText, TokenEOF},
		},
		{
			input:  `/a\/b`,
			tokens: []TokenType{TokenRegex, TokenEOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := NewTokenizer(tt.input).AllTokens()

			if len(tokens) != len(tt.tokens) {
				t.Fatalf("expected %d tokens, got %d", len(tt.tokens), len(tokens))
			}

			for i, expectedType := range tt.tokens {
				if tokens[i].Type != expectedType {
					t.Errorf("token %d: expected %d, got %d", i, expectedType, tokens[i].Type)
				}
			}
		})
	}
}

func TestParser(t *testing.T) {
	tests := []struct {
		query       string
		shouldError bool
		exprType    string
	}{
		{query: "launch", exprType: "*search.TextExpr"},
		{query: "design review", exprType: "*search.AndExpr"},
		{query: "design | review", exprType: "*search.OrExpr"},
		{query: "-draft", exprType: "*search.NotExpr"},
		{query: "s:>100", exprType: "*search.NumberFilter"},
		{query: "layer:2", exprType: "*search.NumberFilter"},
		{query: "at:150", exprType: "*search.AtFilter"},
		{query: "@owner=ann", exprType: "*search.AttributeFilter"},
		{query: "~dsgn", exprType: "*search.FuzzyExpr"},
		{query: "/^rel/", exprType: "*search.RegexExpr"},
		{query: "note:later", exprType: "*search.TextExpr"},
		{query: "(design | review) l:1", exprType: "*search.AndExpr"},
		{query: "", exprType: "*search.AlwaysMatchExpr"},
		{query: "(design", shouldError: true},
		{query: "s:>", shouldError: true},
		{query: "s:soon", shouldError: true},
		{query: "/[/", shouldError: true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			expr, err := ParseQuery(tt.query)

			if tt.shouldError && err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !tt.shouldError && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err != nil {
				return
			}

			if got := fmt.Sprintf("%T", expr); got != tt.exprType {
				t.Errorf("expected type %s, got %s", tt.exprType, got)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	design := model.Item{Start: 0, Stop: 100, Priority: 0, Label: "Design review", Attributes: map[string]string{"owner": "ann", "cost": "9"}}
	launch := model.Item{Start: 200, Stop: 250, Priority: 1, Label: "Launch", Attributes: map[string]string{"owner": "bob", "cost": "10"}}
	draft := model.Item{Start: 300, Stop: 500, Priority: 2, Label: "Draft notes"}

	tests := []struct {
		query   string
		matches []model.Item
	}{
		{"review", []model.Item{design}},
		{"REVIEW", []model.Item{design}},
		{`"design review"`, []model.Item{design}},
		{"design | launch", []model.Item{design, launch}},
		{"-draft", []model.Item{design, launch}},
		{"s:>=200", []model.Item{launch, draft}},
		{"e:<=100", []model.Item{design}},
		{"l:!=1", []model.Item{design, draft}},
		{"len:>100", []model.Item{draft}},
		{"at:100", nil},
		{"at:99", []model.Item{design}},
		{"@owner", []model.Item{design, launch}},
		{"@owner=bob", []model.Item{launch}},
		{"@owner!=bob", []model.Item{design, draft}},
		{"@cost>9", []model.Item{launch}},
		{"~dsgn", []model.Item{design}},
		{"/^(launch|draft)/", []model.Item{launch, draft}},
		{"(design | draft) -s:>250", []model.Item{design}},
		{"", []model.Item{design, launch, draft}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			expr, err := ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			var got []model.Item
			for _, item := range []model.Item{design, launch, draft} {
				if expr.Matches(item) {
					got = append(got, item)
				}
			}
			if len(got) != len(tt.matches) {
				t.Fatalf("query %q: expected %d matches, got %d", tt.query, len(tt.matches), len(got))
			}
			for i := range got {
				if got[i].Label != tt.matches[i].Label {
					t.Errorf("query %q: match %d: expected %q, got %q", tt.query, i, tt.matches[i].Label, got[i].Label)
				}
			}
		})
	}
}

func TestFilterAndExplain(t *testing.T) {
	items := []model.Item{
		{Start: 0, Stop: 100, Label: "Design"},
		{Start: 200, Stop: 250, Label: "Launch"},
	}
	expr, err := ParseQuery("s:>=200")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if got := Filter(expr, items); len(got) != 1 || got[0] != 1 {
		t.Errorf("expected [1], got %v", got)
	}
	if got := Explain(items[0], expr); got != "start 0 does not match >=200" {
		t.Errorf("unexpected explanation %q", got)
	}
	if got := ExpressionString(NewAndExpr(NewTextExpr("a"), NewTextExpr("b"))); got != "(and\n  text(\"a\")\n  text(\"b\")\n)" {
		t.Errorf("unexpected expression string %q", got)
	}
}
