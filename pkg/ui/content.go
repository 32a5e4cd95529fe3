package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/civicdash/pkg/debug"
	"github.com/vanderheijden86/civicdash/pkg/metrics"
	"github.com/vanderheijden86/civicdash/pkg/render"
)

// ContentRenderer styles a render.Fragment for the content pane.
type ContentRenderer struct {
	theme Theme
	width int
	md    *glamour.TermRenderer
}

// NewContentRenderer returns a renderer wrapping text at width cells.
func NewContentRenderer(theme Theme, width int) *ContentRenderer {
	if width < minPanelWidth {
		width = minPanelWidth
	}
	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		debug.Log("glamour renderer unavailable: %v", err)
		md = nil
	}
	return &ContentRenderer{theme: theme, width: width, md: md}
}

// Width returns the wrap width.
func (r *ContentRenderer) Width() int {
	return r.width
}

// Render styles f.
func (r *ContentRenderer) Render(f render.Fragment) string {
	defer metrics.Timer(metrics.ContentStyle)()

	t := r.theme
	blocks := []string{t.Heading.Render(truncateRunesHelper(f.Heading, r.width, "…"))}

	if f.Intro != "" {
		blocks = append(blocks, r.intro(f.Intro))
	}
	if len(f.Panels) > 0 {
		blocks = append(blocks, r.panels(f.Panels))
	}
	for i, c := range f.Cards {
		blocks = append(blocks, r.card(c, i))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (r *ContentRenderer) intro(s string) string {
	if r.md != nil {
		if out, err := r.md.Render(s); err == nil {
			return strings.Trim(out, "\n")
		}
	}
	return r.theme.Renderer.NewStyle().Width(r.width).Render(
		emphasize(s, r.theme.Base, r.theme.Bold),
	)
}

// panels lays panels out side by side, or stacked when the pane is too
// narrow for two columns.
func (r *ContentRenderer) panels(ps []render.Panel) string {
	t := r.theme
	gap := SpaceSM
	colWidth := (r.width - gap*(len(ps)-1)) / len(ps)
	stacked := colWidth < minPanelWidth
	if stacked {
		colWidth = r.width
	}

	accents := []lipgloss.AdaptiveColor{ColorAccentMaroon, ColorWarning}
	boxes := make([]string, 0, len(ps))
	for i, p := range ps {
		var lines []string
		lines = append(lines, t.PanelTitle.Render(p.Title))
		for _, it := range p.Items {
			text := it.Text
			if it.Label != "" {
				text = t.Bold.Render(it.Label+":") + " " + it.Text
			}
			lines = append(lines, "• "+text)
		}
		box := t.Renderer.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(accents[i%len(accents)]).
			PaddingLeft(SpaceXS).
			Width(colWidth - 2).
			Render(strings.Join(lines, "\n"))
		boxes = append(boxes, box)
	}

	if stacked {
		return lipgloss.JoinVertical(lipgloss.Left, boxes...)
	}
	spaced := make([]string, 0, len(boxes)*2)
	for i, b := range boxes {
		if i > 0 {
			spaced = append(spaced, strings.Repeat(" ", gap))
		}
		spaced = append(spaced, b)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, spaced...)
}

func (r *ContentRenderer) card(c render.Card, idx int) string {
	t := r.theme
	accent := ColorAccentTeal
	if idx%2 == 0 {
		accent = ColorInfo
	}

	lines := []string{t.Bold.Render(c.Title)}
	for _, l := range c.Lines {
		lines = append(lines, emphasize(l, t.Base, t.Bold))
	}
	if c.Action != "" {
		lines = append(lines, "", t.Button.Render(c.Action))
	}

	return t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, SpaceXS).
		Width(r.width - 2).
		Render(strings.Join(lines, "\n"))
}
