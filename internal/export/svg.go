package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pstuifzand/tui-timeline/internal/model"
	"github.com/pstuifzand/tui-timeline/internal/theme"
)

const svgFont = "Fira Sans, sans-serif"

// SVG draws the timeline the way the editor lays it out: the striped
// background grid, the axis, and one box per item on its layer
func SVG(w io.Writer, tl *model.Timeline, opts Options) error {
	geom := opts.Geometry
	if err := geom.Validate(); err != nil {
		return err
	}
	th := opts.Theme
	if th == nil {
		th = theme.Light()
	}
	c := th.Colors

	stripe := theme.Hex(c.GridStripe, "#ffffff")
	stripeAlt := theme.Hex(c.GridStripeAlt, "#eeeeee")
	muted := theme.Hex(c.GridLabel, "#999999")
	axis := theme.Hex(c.Axis, "#333333")
	itemFill := theme.ToColorful(c.ItemBackground, "#b4c8f0")
	itemText := theme.Hex(c.ItemText, "#1a1b26")
	active := theme.ToColorful(c.ItemActive, "#2e5cb8")
	white := colorful.Color{R: 1, G: 1, B: 1}

	width := geom.Range.Max - geom.Range.Min + 2*geom.Padding
	height := geom.Height

	var svg strings.Builder
	fmt.Fprintf(&svg, `<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
<title>%s</title>
<g transform="translate(%d,0)">
`, width, height, escapeXML(tl.Title), geom.Padding-geom.Range.Min)

	for _, s := range geom.Grid() {
		fill := stripe
		if s.Alt {
			fill = stripeAlt
		}
		fmt.Fprintf(&svg, `<rect x="%d" y="0" width="%d" height="%d" fill="%s"/>`+"\n", s.X, s.W, height, fill)
		fmt.Fprintf(&svg, `<line x1="%d" y1="0" x2="%d" y2="%d" stroke="%s" stroke-width="1"/>`+"\n", s.X, s.X, height, stripeAlt)
		fmt.Fprintf(&svg, `<text x="%d" y="%d" font-family="%s" font-size="10" fill="%s">%d</text>`+"\n",
			s.X+6, height-6, svgFont, muted, s.Label)
	}
	fmt.Fprintf(&svg, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1"/>`+"\n",
		geom.Range.Min, geom.AxisY(), geom.Range.Max, geom.AxisY(), axis)

	for _, item := range itemsOf(tl) {
		rect := geom.CalcPosition(item.Start, item.Stop, item.Priority)
		fill := itemFill
		stroke := itemFill.BlendLab(colorful.Color{}, 0.25)
		textFill := itemText
		if opts.ActiveID != "" && item.ID == opts.ActiveID {
			fill = active.BlendLab(white, 0.15)
			stroke = active
			textFill = "#ffffff"
		}
		fmt.Fprintf(&svg, `<g id="item-%s">`+"\n", escapeXML(item.ID))
		fmt.Fprintf(&svg, `<rect x="%d" y="%d" width="%d" height="%d" rx="3" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
			rect.X, rect.Y, max(rect.W, 0), geom.LayerHeight, fill.Clamped().Hex(), stroke.Clamped().Hex())
		if item.Label != "" {
			fmt.Fprintf(&svg, `<text x="%d" y="%d" font-family="%s" font-size="12" fill="%s">%s</text>`+"\n",
				rect.X+6, rect.Y+geom.LayerHeight/2+4, svgFont, textFill, escapeXML(item.Label))
		}
		svg.WriteString("</g>\n")
	}

	svg.WriteString("</g>\n</svg>\n")

	if _, err := io.WriteString(w, svg.String()); err != nil {
		return fmt.Errorf("failed to write SVG: %w", err)
	}
	return nil
}

func escapeXML(s string) string {
	return strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	).Replace(s)
}
