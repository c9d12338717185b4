package usecase

import (
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/evlt/nutstools/internal/domain"
)

// SettingsDocument renders settings as a generic tree keyed like the
// settings file; settingsstore.Document satisfies it.
type SettingsDocument func(domain.Settings) (any, error)

type QuerySettings struct {
	document SettingsDocument
}

func NewQuerySettings(doc SettingsDocument) *QuerySettings {
	return &QuerySettings{document: doc}
}

// Execute evaluates a JSONPath expression (e.g. `$.NUTS_DATA["2021"].url`)
// against the settings.
func (uc *QuerySettings) Execute(s domain.Settings, expr string) (any, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, &domain.OpError{
			Op:   "usecase.query_settings",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("empty jsonpath expression: %w", domain.ErrInvalidInput),
		}
	}

	doc, err := uc.document(s)
	if err != nil {
		return nil, &domain.OpError{Op: "usecase.query_settings", Kind: domain.KindExecution, Err: err}
	}

	val, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "usecase.query_settings",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("jsonpath %q: %v: %w", expr, err, domain.ErrInvalidInput),
		}
	}
	return val, nil
}
