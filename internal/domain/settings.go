package domain

import (
	"fmt"
	"sort"
	"strings"
)

const (
	DefaultYear    = "2021"
	DefaultCountry = "NL"

	// DefaultBaseURLTemplate is used for catalog years that carry no URL of
	// their own. {year} is replaced by the catalog year.
	DefaultBaseURLTemplate = "https://gisco-services.ec.europa.eu/tercet/NUTS-{year}/"
)

// CatalogYear lists the remote files published for one NUTS edition.
type CatalogYear struct {
	URL   string
	Files map[string]string // country -> remote file name
}

// Catalog maps a NUTS year to its published files.
type Catalog map[string]CatalogYear

// Years returns the catalog years in ascending order.
func (c Catalog) Years() []string {
	out := make([]string, 0, len(c))
	for y := range c {
		out = append(out, y)
	}
	sort.Strings(out)
	return out
}

// Countries returns the country codes available for year, sorted.
func (c Catalog) Countries(year string) []string {
	y, ok := c[year]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(y.Files))
	for k := range y.Files {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// FileName returns the remote file name for (year, country).
func (c Catalog) FileName(year, country string) (string, error) {
	y, ok := c[year]
	if !ok {
		return "", &OpError{
			Op:   "catalog.lookup",
			Kind: KindUnknownYear,
			Err:  fmt.Errorf("year %s not available, pick one of %s: %w", year, strings.Join(c.Years(), ", "), ErrUnknownYear),
		}
	}
	name, ok := y.Files[country]
	if !ok || strings.TrimSpace(name) == "" {
		return "", &OpError{
			Op:   "catalog.lookup",
			Kind: KindUnknownCountry,
			Err:  fmt.Errorf("country %s not available for year %s: %w", country, year, ErrUnknownCountry),
		}
	}
	return name, nil
}

// Clone returns a deep copy so callers can never mutate a shared catalog.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for y, entry := range c {
		files := make(map[string]string, len(entry.Files))
		for k, v := range entry.Files {
			files[k] = v
		}
		out[y] = CatalogYear{URL: entry.URL, Files: files}
	}
	return out
}

// Settings is the persisted nutstools configuration.
type Settings struct {
	DefaultYear     string
	DefaultCountry  string
	Directory       string
	BaseURLTemplate string
	Catalog         Catalog
}

// DefaultSettings builds the first-run settings from the built-in catalog.
func DefaultSettings(directory string, catalog Catalog) Settings {
	return Settings{
		DefaultYear:     DefaultYear,
		DefaultCountry:  DefaultCountry,
		Directory:       directory,
		BaseURLTemplate: DefaultBaseURLTemplate,
		Catalog:         catalog.Clone(),
	}
}

// Years is the set of valid years, derived from the catalog.
func (s Settings) Years() []string { return s.Catalog.Years() }

// Countries is the set of valid countries for the default year.
func (s Settings) Countries() []string { return s.Catalog.Countries(s.DefaultYear) }

// DirectoryURL returns the remote directory holding the tables of a catalog
// year. Years without a URL of their own use the base URL template, where
// {year} and {country} are substituted.
func (s Settings) DirectoryURL(year, country string) (string, error) {
	if y, ok := s.Catalog[year]; ok && strings.TrimSpace(y.URL) != "" {
		return y.URL, nil
	}
	tmpl := s.BaseURLTemplate
	if strings.TrimSpace(tmpl) == "" {
		tmpl = DefaultBaseURLTemplate
	}
	return RenderURLTemplate(tmpl, map[string]string{"year": year, "country": country})
}

// Overrides carries per-invocation choices that take precedence over the
// persisted settings.
type Overrides struct {
	Year    string
	Country string
}

// Apply returns a copy of s with the non-empty overrides applied.
func (o Overrides) Apply(s Settings) Settings {
	out := s
	if v := strings.TrimSpace(o.Year); v != "" {
		out.DefaultYear = v
	}
	if v := strings.ToUpper(strings.TrimSpace(o.Country)); v != "" {
		out.DefaultCountry = v
	}
	return out
}
