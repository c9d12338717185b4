package tui

import "github.com/evlt/nutstools/internal/usecase"

type tableLoadedMsg struct {
	prepared usecase.PreparedTable
	err      error
}
