package tui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/evlt/nutstools/internal/domain"
	"github.com/evlt/nutstools/internal/usecase"
)

type screen int

const (
	screenLoading screen = iota
	screenLookup
	screenFailed
)

type model struct {
	theme Theme
	deps  Deps
	log   *slog.Logger

	scr     screen
	spinner spinner.Model
	input   textinput.Model

	resolver *usecase.ResolveCodes
	preview  *usecase.ResolveCodes
	prepared usecase.PreparedTable
	level    domain.Level

	current *domain.Lookup
	history []domain.Lookup
	toast   string
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, m.log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	log := deps.Logger
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	level := domain.Level(deps.Level)
	if level.Validate() != nil {
		level = domain.MaxLevel
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ti := textinput.New()
	ti.Placeholder = "postal code, e.g. 2675 BP"
	ti.Prompt = "> "
	ti.CharLimit = 16

	return model{
		theme:   DefaultTheme(),
		deps:    deps,
		log:     log,
		scr:     screenLoading,
		spinner: sp,
		input:   ti,
		level:   level,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, cmdPrepareTable(m.deps))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tableLoadedMsg:
		if msg.err != nil {
			m.log.Error("tui.table_failed", "err", msg.err)
			m.scr = screenFailed
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.prepared = msg.prepared
		m.resolver = usecase.NewResolveCodes(msg.prepared.Table, usecase.WithResolveLogger(m.log))
		// Partial codes typed on the way to a full one are expected misses.
		m.preview = usecase.NewResolveCodes(msg.prepared.Table)
		m.scr = screenLookup
		return m, m.input.Focus()

	case spinner.TickMsg:
		if m.scr != screenLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "q":
			if m.scr != screenLookup {
				return m, tea.Quit
			}
		}
		if m.scr != screenLookup {
			return m, nil
		}

		switch msg.String() {
		case "left":
			if m.level > domain.LevelCountry {
				m.level--
			}
			m.resolveInput(m.preview)
			return m, nil
		case "right":
			if m.level < domain.MaxLevel {
				m.level++
			}
			m.resolveInput(m.preview)
			return m, nil
		case "enter":
			m.resolveInput(m.resolver)
			if m.current != nil {
				m.history = pushHistory(m.history, *m.current)
				m.input.Reset()
				m.current = nil
			}
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.resolveInput(m.preview)
		return m, cmd
	}

	if m.scr == screenLookup {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// resolveInput refreshes the result for the text currently typed.
func (m *model) resolveInput(r *usecase.ResolveCodes) {
	m.current = nil
	m.toast = ""
	if r == nil || strings.TrimSpace(m.input.Value()) == "" {
		return
	}

	res, err := r.ResolveOne(m.input.Value(), m.level)
	if err != nil {
		m.toast = userMessage(err)
		return
	}
	m.current = &res
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("nutstools") + "\n" +
		m.theme.Subtitle.Render("postal code to NUTS region lookup") + "\n"

	switch m.scr {
	case screenLoading:
		return wrap.Render(header + "\n" + m.spinner.View() + " loading reference table…")

	case screenFailed:
		card := m.theme.Card.Render(
			m.theme.Miss.Render(m.toast) + "\n\n" + m.theme.Help.Render("q quit"),
		)
		return wrap.Render(header + "\n" + card)

	case screenLookup:
		table := m.theme.Help.Render(fmt.Sprintf("%s %s • %d postal codes • %s",
			m.prepared.Settings.DefaultCountry,
			m.prepared.Settings.DefaultYear,
			m.prepared.Table.Len(),
			clampString(m.prepared.Path, 60),
		))

		result := " "
		switch {
		case m.toast != "":
			result = m.theme.Miss.Render(m.toast)
		case m.current != nil:
			result = renderLookup(m.theme, *m.current)
		}

		body := renderLevels(m.theme, m.level) + "\n\n" +
			m.input.View() + "\n" +
			result + "\n\n" +
			m.theme.Title.Render("Recent") + "\n" +
			renderHistory(m.theme, m.history)

		help := m.theme.Help.Render("←/→ level • enter keep • esc quit")
		return wrap.Render(header + table + "\n\n" + m.theme.Card.Render(body) + "\n" + help)

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}
}
