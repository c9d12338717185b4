package settingsstore

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// yamlSettings is the on-disk layout of nutstools_settings.yml.
type yamlSettings struct {
	DefaultYear      string                  `yaml:"DEFAULT_YEAR" json:"DEFAULT_YEAR"`
	DefaultCountry   string                  `yaml:"DEFAULT_COUNTRY" json:"DEFAULT_COUNTRY"`
	DefaultDirectory string                  `yaml:"NUTS_CODE_DEFAULT_DIRECTORY" json:"NUTS_CODE_DEFAULT_DIRECTORY"`
	BaseURLTemplate  string                  `yaml:"BASE_URL_TEMPLATE,omitempty" json:"BASE_URL_TEMPLATE,omitempty"`
	CountryCodes     stringSet               `yaml:"COUNTRY_CODES" json:"COUNTRY_CODES"`
	Years            stringSet               `yaml:"NUTS_YEARS" json:"NUTS_YEARS"`
	Data             map[string]yamlYearData `yaml:"NUTS_DATA" json:"NUTS_DATA"`
}

type yamlYearData struct {
	URL   string            `yaml:"url" json:"url"`
	Files map[string]string `yaml:"files" json:"files"`
}

// stringSet is written as a sequence. Reading also accepts a mapping whose
// keys are the members, which is how a !!set is encoded.
type stringSet []string

func (s *stringSet) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.SequenceNode:
		var out []string
		if err := n.Decode(&out); err != nil {
			return err
		}
		*s = out
	case yaml.MappingNode:
		out := make([]string, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			out = append(out, n.Content[i].Value)
		}
		sort.Strings(out)
		*s = out
	case yaml.ScalarNode:
		if n.Tag != "!!null" && n.Value != "" {
			return fmt.Errorf("line %d: expected a list or set, got %q", n.Line, n.Value)
		}
		*s = nil
	default:
		return fmt.Errorf("line %d: expected a list or set", n.Line)
	}
	return nil
}
