package tui

import (
	"context"
	"log/slog"

	"github.com/evlt/nutstools/internal/usecase"
)

// PrepareFunc resolves, downloads if needed, and loads the reference table.
type PrepareFunc func(ctx context.Context) (usecase.PreparedTable, error)

type Deps struct {
	Prepare PrepareFunc

	// Level is the NUTS level selected when the screen opens.
	Level  int
	Logger *slog.Logger
}
