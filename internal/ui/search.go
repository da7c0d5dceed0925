package ui

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/pstuifzand/tui-timeline/internal/history"
	"github.com/pstuifzand/tui-timeline/internal/model"
	"github.com/pstuifzand/tui-timeline/internal/search"
)

const searchHistorySize = 50

// Search finds items by fuzzy matching their labels. Matches are ordered
// best first, ties in timeline order. Queries with filters, like
// "s:>100 @owner=ann", list the matching items in timeline order.
type Search struct {
	active  bool
	input   *LineInput
	items   []model.Item
	labels  []string
	matches []int
	current int
	err     error
}

// NewSearch creates a search without history persistence
func NewSearch() *Search {
	return &Search{input: NewLineInput(NewHistory(searchHistorySize))}
}

// NewSearchWithHistory creates a search whose history is kept in search.toml
func NewSearchWithHistory(manager *history.Manager) *Search {
	h, _ := NewHistoryWithManager(searchHistorySize, manager, "search.toml")
	return &Search{input: NewLineInput(h)}
}

// Start enters search mode over the items of snap
func (s *Search) Start(snap model.Snapshot) {
	s.active = true
	s.input.Reset()
	s.SetItems(snap)
}

// Stop leaves search mode; the matches stay for n/N navigation
func (s *Search) Stop() {
	s.active = false
}

// IsActive returns whether search mode is active
func (s *Search) IsActive() bool {
	return s.active
}

// Query returns the search text
func (s *Search) Query() string {
	return s.input.Text()
}

// SetItems refreshes the searched labels, e.g. after the collection changed
func (s *Search) SetItems(snap model.Snapshot) {
	s.items = snap.Items
	s.labels = make([]string, len(snap.Items))
	for i, item := range snap.Items {
		s.labels[i] = item.Label
	}
	s.update()
}

// SetQuery sets the search text and recomputes the matches
func (s *Search) SetQuery(query string) {
	s.input.SetText(query)
	s.update()
}

func (s *Search) update() {
	s.matches = nil
	s.current = 0
	s.err = nil
	query := s.input.Text()
	if query == "" {
		return
	}

	expr, err := search.ParseQuery(query)
	if err != nil {
		s.err = err
		return
	}
	if !search.IsPlainText(expr) {
		s.matches = search.Filter(expr, s.items)
		return
	}

	ranks := fuzzy.RankFindFold(query, s.labels)
	slices.SortFunc(ranks, func(a, b fuzzy.Rank) int {
		return cmp.Or(cmp.Compare(a.Distance, b.Distance), cmp.Compare(a.OriginalIndex, b.OriginalIndex))
	})
	for _, r := range ranks {
		s.matches = append(s.matches, r.OriginalIndex)
	}
}

// HandleKey processes a key in search mode. It returns true when the search
// was confirmed with Enter and has at least one match.
func (s *Search) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		s.Stop()
		return false
	case tcell.KeyEnter:
		s.input.Commit(s.input.Text())
		s.Stop()
		return len(s.matches) > 0
	}
	if s.input.HandleKey(ev) {
		s.update()
	}
	return false
}

// Matches returns the indices of matching items, best first
func (s *Search) Matches() []int {
	return s.matches
}

// IsMatch reports whether the item at index matches the query
func (s *Search) IsMatch(index int) bool {
	return slices.Contains(s.matches, index)
}

// Err returns why the query could not be parsed, if it could not
func (s *Search) Err() error {
	return s.err
}

// Current returns the index of the current match
func (s *Search) Current() (int, bool) {
	if len(s.matches) == 0 {
		return -1, false
	}
	return s.matches[s.current], true
}

// Next moves to the next match, wrapping around
func (s *Search) Next() (int, bool) {
	if len(s.matches) == 0 {
		return -1, false
	}
	s.current = (s.current + 1) % len(s.matches)
	return s.matches[s.current], true
}

// Previous moves to the previous match, wrapping around
func (s *Search) Previous() (int, bool) {
	if len(s.matches) == 0 {
		return -1, false
	}
	s.current = (s.current - 1 + len(s.matches)) % len(s.matches)
	return s.matches[s.current], true
}

// Render renders the search bar on row y
func (s *Search) Render(screen *Screen, y int) {
	if !s.active {
		return
	}
	width := screen.GetWidth()
	count := fmt.Sprintf(" [%d]", len(s.matches))
	if s.err != nil {
		count = " [?]"
	}
	x := screen.DrawString(0, y, "/", screen.SearchLabelStyle())
	s.input.Render(screen, x, y, width-StringWidth(count), screen.SearchTextStyle(), screen.SearchCursorStyle())
	screen.DrawString(width-StringWidth(count), y, count, screen.SearchResultCountStyle())
}
