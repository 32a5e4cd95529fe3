package render

import (
	"strings"
)

// StripEmphasis removes markdown bold/italic markers.
func StripEmphasis(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	return s
}

// Plain renders f as deterministic, unstyled text.
func Plain(f Fragment) string {
	var sb strings.Builder

	sb.WriteString(f.Heading)
	sb.WriteString("\n")
	if f.Intro != "" {
		sb.WriteString("\n")
		sb.WriteString(StripEmphasis(f.Intro))
		sb.WriteString("\n")
	}

	for _, p := range f.Panels {
		sb.WriteString("\n")
		sb.WriteString(p.Title)
		sb.WriteString("\n")
		for _, it := range p.Items {
			sb.WriteString("  • ")
			sb.WriteString(ItemText(it))
			sb.WriteString("\n")
		}
	}

	for _, c := range f.Cards {
		sb.WriteString("\n[")
		sb.WriteString(c.Title)
		sb.WriteString("]\n")
		for _, l := range c.Lines {
			sb.WriteString("  ")
			sb.WriteString(StripEmphasis(l))
			sb.WriteString("\n")
		}
		if c.Action != "" {
			sb.WriteString("  [ ")
			sb.WriteString(c.Action)
			sb.WriteString(" ]\n")
		}
	}
	return sb.String()
}

// ItemText joins label and text the way list entries are displayed.
func ItemText(it Item) string {
	if it.Label == "" {
		return it.Text
	}
	return it.Label + ": " + it.Text
}

// Markdown renders f as a markdown document.
func Markdown(f Fragment) string {
	var sb strings.Builder

	sb.WriteString("## ")
	sb.WriteString(f.Heading)
	sb.WriteString("\n\n")
	if f.Intro != "" {
		sb.WriteString(f.Intro)
		sb.WriteString("\n\n")
	}

	for _, p := range f.Panels {
		sb.WriteString("### ")
		sb.WriteString(p.Title)
		sb.WriteString("\n\n")
		for _, it := range p.Items {
			sb.WriteString("- ")
			if it.Label != "" {
				sb.WriteString("**")
				sb.WriteString(it.Label)
				sb.WriteString(":** ")
			}
			sb.WriteString(it.Text)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	for _, c := range f.Cards {
		sb.WriteString("#### ")
		sb.WriteString(c.Title)
		sb.WriteString("\n\n")
		for _, l := range c.Lines {
			sb.WriteString(l)
			sb.WriteString("\n\n")
		}
		if c.Action != "" {
			sb.WriteString("`[ ")
			sb.WriteString(c.Action)
			sb.WriteString(" ]`\n\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}
