// Package settingsstore persists nutstools settings as YAML.
package settingsstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/evlt/nutstools/internal/domain"
	"github.com/evlt/nutstools/internal/ports"
)

const (
	// FileName is the settings file created in the settings directory.
	FileName = "nutstools_settings.yml"
	// DirName is the application directory created under the user data dir.
	DirName = "nutstools"
)

type Store struct {
	catalog   domain.Catalog
	overrides domain.Overrides
}

type Option func(*Store)

// WithOverrides sets year/country values written when the file is
// (re)created.
func WithOverrides(o domain.Overrides) Option {
	return func(s *Store) { s.overrides = o }
}

func NewStore(catalog domain.Catalog, opts ...Option) *Store {
	s := &Store{catalog: catalog}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.SettingsStore = (*Store)(nil)

// Ensure creates directory and its Cache subdirectory, writes the default
// settings when the file is missing or overwrite is set, and then reads the
// file back. The file on disk wins over built-in defaults.
func (s *Store) Ensure(directory string, overwrite bool) (domain.Settings, error) {
	dir := filepath.Clean(directory)
	for _, d := range []string{dir, filepath.Join(dir, domain.CacheDirName)} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return domain.Settings{}, &domain.OpError{
				Op:   "settingsstore.mkdir",
				Kind: domain.KindExecution,
				Path: d,
				Err:  err,
			}
		}
	}

	defaults := s.overrides.Apply(domain.DefaultSettings(dir, s.catalog))
	path := filepath.Join(dir, FileName)

	_, statErr := os.Stat(path)
	if overwrite || errors.Is(statErr, fs.ErrNotExist) {
		if err := write(path, defaults); err != nil {
			return domain.Settings{}, err
		}
	}

	return read(path, defaults)
}

// Path returns the settings file location inside directory.
func Path(directory string) string {
	return filepath.Join(filepath.Clean(directory), FileName)
}

// DefaultDirectory is the per-user data directory used when none is given:
// %LocalAppData%\nutstools on Windows, $XDG_DATA_HOME/nutstools or
// ~/.local/share/nutstools elsewhere.
func DefaultDirectory() (string, error) {
	if runtime.GOOS == "windows" {
		if d := os.Getenv("LocalAppData"); d != "" {
			return filepath.Join(d, DirName), nil
		}
	}
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return filepath.Join(d, DirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", DirName), nil
}

func read(path string, defaults domain.Settings) (domain.Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Settings{}, &domain.OpError{
			Op:   "settingsstore.read",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlSettings
	if err := yaml.Unmarshal(b, &y); err != nil {
		return domain.Settings{}, &domain.OpError{
			Op:   "settingsstore.read",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return fromYAML(y, defaults), nil
}

func write(path string, s domain.Settings) error {
	b, err := yaml.Marshal(toYAML(s))
	if err != nil {
		return &domain.OpError{
			Op:   "settingsstore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return &domain.OpError{
			Op:   "settingsstore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{
			Op:   "settingsstore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	return nil
}

// Encode writes s in the settings file format.
func Encode(w io.Writer, s domain.Settings) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toYAML(s)); err != nil {
		return err
	}
	return enc.Close()
}

// Document returns s as a generic JSON-like tree (maps, slices, strings)
// keyed like the settings file.
func Document(s domain.Settings) (any, error) {
	b, err := json.Marshal(toYAML(s))
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
