package ports

import "github.com/evlt/nutstools/internal/domain"

// SettingsStore persists the nutstools settings file.
type SettingsStore interface {
	// Ensure creates the directory layout and the settings file when missing
	// (or when overwrite is set) and returns the persisted settings.
	Ensure(directory string, overwrite bool) (domain.Settings, error)
}
