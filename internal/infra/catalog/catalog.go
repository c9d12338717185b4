// Package catalog holds the built-in table of published reference files.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/evlt/nutstools/internal/domain"
)

//go:embed catalog.yaml
var catalogYAML []byte

type yamlCatalog struct {
	Years map[string]struct {
		URL   string            `yaml:"url"`
		Files map[string]string `yaml:"files"`
	} `yaml:"years"`
}

var builtin = sync.OnceValues(func() (domain.Catalog, error) {
	return Parse(catalogYAML)
})

// Builtin returns a copy of the catalog compiled into the binary.
func Builtin() domain.Catalog {
	c, err := builtin()
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded catalog.yaml is invalid: %v", err))
	}
	return c.Clone()
}

// Parse decodes a catalog document.
func Parse(b []byte) (domain.Catalog, error) {
	var y yamlCatalog
	if err := yaml.Unmarshal(b, &y); err != nil {
		return nil, &domain.OpError{
			Op:   "catalog.parse",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}
	if len(y.Years) == 0 {
		return nil, &domain.OpError{
			Op:   "catalog.parse",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("catalog has no years: %w", domain.ErrInvalidConfig),
		}
	}

	out := make(domain.Catalog, len(y.Years))
	for year, entry := range y.Years {
		files := make(map[string]string, len(entry.Files))
		for k, v := range entry.Files {
			files[k] = v
		}
		out[year] = domain.CatalogYear{URL: entry.URL, Files: files}
	}
	return out, nil
}
