package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const prepareTimeout = 3 * time.Minute

func cmdPrepareTable(deps Deps) tea.Cmd {
	return func() tea.Msg {
		if deps.Prepare == nil {
			return tableLoadedMsg{err: errors.New("no reference table source configured")}
		}

		ctx, cancel := context.WithTimeout(context.Background(), prepareTimeout)
		defer cancel()

		p, err := deps.Prepare(ctx)
		return tableLoadedMsg{prepared: p, err: err}
	}
}
