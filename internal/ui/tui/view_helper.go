package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/evlt/nutstools/internal/domain"
)

const historySize = 8

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

// pushHistory prepends l, keeping at most historySize entries.
func pushHistory(h []domain.Lookup, l domain.Lookup) []domain.Lookup {
	out := make([]domain.Lookup, 0, historySize)
	out = append(out, l)
	for _, prev := range h {
		if len(out) == historySize {
			break
		}
		out = append(out, prev)
	}
	return out
}

func renderLevels(t Theme, current domain.Level) string {
	parts := make([]string, 0, int(domain.MaxLevel)+1)
	for l := domain.LevelCountry; l <= domain.MaxLevel; l++ {
		label := fmt.Sprintf("NUTS%d", int(l))
		if l == current {
			parts = append(parts, t.Level.Render("["+label+"]"))
			continue
		}
		parts = append(parts, " "+label+" ")
	}
	return strings.Join(parts, " ")
}

func renderLookup(t Theme, l domain.Lookup) string {
	if !l.Found {
		return fmt.Sprintf("%-12s %s", clampString(l.PostalCode, 12), t.Miss.Render("no region"))
	}
	return fmt.Sprintf("%-12s %s", clampString(l.PostalCode, 12), t.Region.Render(string(l.Region)))
}

func renderHistory(t Theme, h []domain.Lookup) string {
	if len(h) == 0 {
		return t.Help.Render("(no lookups yet)")
	}
	var b strings.Builder
	for i, l := range h {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderLookup(t, l))
	}
	return b.String()
}
