package settingsstore

import (
	"strings"

	"github.com/evlt/nutstools/internal/domain"
)

func toYAML(s domain.Settings) yamlSettings {
	data := make(map[string]yamlYearData, len(s.Catalog))
	for year, entry := range s.Catalog {
		files := make(map[string]string, len(entry.Files))
		for k, v := range entry.Files {
			files[k] = v
		}
		data[year] = yamlYearData{URL: entry.URL, Files: files}
	}

	return yamlSettings{
		DefaultYear:      s.DefaultYear,
		DefaultCountry:   s.DefaultCountry,
		DefaultDirectory: s.Directory,
		BaseURLTemplate:  s.BaseURLTemplate,
		CountryCodes:     s.Countries(),
		Years:            s.Years(),
		Data:             data,
	}
}

// fromYAML applies the parsed document on top of defaults. A catalog in the
// file replaces the built-in one wholesale.
func fromYAML(y yamlSettings, defaults domain.Settings) domain.Settings {
	out := defaults

	if v := strings.TrimSpace(y.DefaultYear); v != "" {
		out.DefaultYear = v
	}
	if v := strings.TrimSpace(y.DefaultCountry); v != "" {
		out.DefaultCountry = strings.ToUpper(v)
	}
	if v := strings.TrimSpace(y.BaseURLTemplate); v != "" {
		out.BaseURLTemplate = v
	}
	if len(y.Data) > 0 {
		c := make(domain.Catalog, len(y.Data))
		for year, entry := range y.Data {
			files := make(map[string]string, len(entry.Files))
			for k, v := range entry.Files {
				files[strings.ToUpper(k)] = v
			}
			c[year] = domain.CatalogYear{URL: entry.URL, Files: files}
		}
		out.Catalog = c
	}

	// The directory the file was read from is the one in use, whatever the
	// file says; NUTS_CODE_DEFAULT_DIRECTORY is informational.
	return out
}
