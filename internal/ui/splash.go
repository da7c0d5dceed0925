package ui

// SplashScreen is shown over an empty, unsaved timeline until the first key
type SplashScreen struct {
	visible bool
}

// NewSplashScreen creates a hidden splash screen
func NewSplashScreen() *SplashScreen {
	return &SplashScreen{}
}

// Show makes the splash screen visible
func (s *SplashScreen) Show() {
	s.visible = true
}

// Hide makes the splash screen invisible
func (s *SplashScreen) Hide() {
	s.visible = false
}

// IsVisible returns whether the splash screen is visible
func (s *SplashScreen) IsVisible() bool {
	return s.visible
}

// GetContent returns the lines to display on the splash screen
func (s *SplashScreen) GetContent() []string {
	return []string{
		"~~ tui-timeline ~~",
		"",
		"Items on a horizontal time axis, stacked in layers.",
		"",
		"a           add an item",
		"drag        move or resize an item",
		":w <file>   save",
		":help       all keys and commands",
		":q          quit",
	}
}

// Render draws the content centered in the area from row top
func (s *SplashScreen) Render(screen *Screen, top int) {
	if !s.visible {
		return
	}
	content := s.GetContent()
	width, height := screen.Size()

	blockWidth := 0
	for _, line := range content {
		blockWidth = max(blockWidth, StringWidth(line))
	}
	startX := max(0, (width-blockWidth)/2)
	startY := max(top, top+(height-top-len(content))/2)

	for i, line := range content {
		style := screen.StatusMessageStyle()
		if i == 0 {
			style = screen.HeaderStyle()
		}
		screen.DrawStringLimited(startX, startY+i, line, width-startX, style)
	}
}
