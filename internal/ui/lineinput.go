package ui

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// LineInput is a single line of editable text with an optional history.
// The cursor is a byte offset that always sits on a rune boundary.
type LineInput struct {
	text    string
	cursor  int
	history *History
}

// NewLineInput creates an input; history may be nil
func NewLineInput(history *History) *LineInput {
	return &LineInput{history: history}
}

// Text returns the current text
func (l *LineInput) Text() string {
	return l.text
}

// SetText replaces the text and moves the cursor to its end
func (l *LineInput) SetText(text string) {
	l.text = text
	l.cursor = len(text)
}

// Reset clears the text and ends history navigation
func (l *LineInput) Reset() {
	l.SetText("")
	if l.history != nil {
		l.history.Reset()
	}
}

// Commit records the text in the history
func (l *LineInput) Commit(text string) {
	if l.history != nil {
		l.history.Add(text)
	}
}

// Cursor returns the cursor byte offset
func (l *LineInput) Cursor() int {
	return l.cursor
}

// HandleKey applies an editing key. It returns false for keys it does not
// handle (Enter, Escape, Tab), which belong to the owner.
func (l *LineInput) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEnter, tcell.KeyEscape, tcell.KeyTab, tcell.KeyBacktab:
		return false
	case tcell.KeyCtrlW:
		l.deleteWordBackwards()
	case tcell.KeyUp:
		if l.history == nil {
			return false
		}
		if !l.history.IsNavigating() {
			l.history.SetTemporary(l.text)
		}
		if prev, ok := l.history.Previous(); ok {
			l.SetText(prev)
		}
	case tcell.KeyDown:
		if l.history == nil {
			return false
		}
		if next, ok := l.history.Next(); ok {
			l.SetText(next)
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if l.cursor > 0 {
			_, size := utf8.DecodeLastRuneInString(l.text[:l.cursor])
			l.text = l.text[:l.cursor-size] + l.text[l.cursor:]
			l.cursor -= size
		}
	case tcell.KeyDelete:
		if l.cursor < len(l.text) {
			_, size := utf8.DecodeRuneInString(l.text[l.cursor:])
			l.text = l.text[:l.cursor] + l.text[l.cursor+size:]
		}
	case tcell.KeyLeft:
		if l.cursor > 0 {
			_, size := utf8.DecodeLastRuneInString(l.text[:l.cursor])
			l.cursor -= size
		}
	case tcell.KeyRight:
		if l.cursor < len(l.text) {
			_, size := utf8.DecodeRuneInString(l.text[l.cursor:])
			l.cursor += size
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		l.cursor = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		l.cursor = len(l.text)
	case tcell.KeyCtrlU:
		l.text = l.text[l.cursor:]
		l.cursor = 0
	case tcell.KeyCtrlK:
		l.text = l.text[:l.cursor]
	case tcell.KeyRune:
		s := string(ev.Rune())
		l.text = l.text[:l.cursor] + s + l.text[l.cursor:]
		l.cursor += len(s)
	default:
		return false
	}
	return true
}

func (l *LineInput) deleteWordBackwards() {
	pos := l.cursor
	for pos > 0 && isSpace(l.text[pos-1]) {
		pos--
	}
	for pos > 0 && !isSpace(l.text[pos-1]) {
		pos--
	}
	l.text = l.text[:pos] + l.text[l.cursor:]
	l.cursor = pos
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

// Render draws the text from column x with the cursor highlighted and
// clears the rest of the row up to maxX
func (l *LineInput) Render(screen *Screen, x, y, maxX int, textStyle, cursorStyle tcell.Style) {
	end := screen.DrawStringLimited(x, y, l.text, maxX-x, textStyle)

	cx := x + widthBefore(l.text, l.cursor)
	if cx < maxX {
		r := ' '
		if l.cursor < len(l.text) {
			r, _ = utf8.DecodeRuneInString(l.text[l.cursor:])
		}
		screen.SetCell(cx, y, r, cursorStyle)
		if cx >= end {
			end = cx + 1
		}
	}
	for ; end < maxX; end++ {
		screen.SetCell(end, y, ' ', textStyle)
	}
}
