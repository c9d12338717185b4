package domain

import (
	"fmt"
	"strings"
)

// RenderURLTemplate replaces {name} placeholders with vars values.
// It returns an error if a variable is unknown or a placeholder is malformed.
func RenderURLTemplate(input string, vars map[string]string) (string, error) {
	if input == "" {
		return "", nil
	}

	var out strings.Builder
	rest := input
	for {
		start := strings.IndexByte(rest, '{')
		if start == -1 {
			out.WriteString(rest)
			return out.String(), nil
		}

		out.WriteString(rest[:start])
		rest = rest[start+1:]

		end := strings.IndexByte(rest, '}')
		if end == -1 {
			return "", templateError(input, "unclosed placeholder")
		}

		key := strings.TrimSpace(rest[:end])
		if key == "" {
			return "", templateError(input, "empty placeholder")
		}

		value, ok := vars[key]
		if !ok {
			return "", templateError(input, fmt.Sprintf("unknown placeholder {%s}", key))
		}

		out.WriteString(value)
		rest = rest[end+1:]
	}
}

func templateError(tmpl, msg string) error {
	return &OpError{
		Op:   "urltemplate.render",
		Kind: KindInvalidConfig,
		Path: tmpl,
		Err:  fmt.Errorf("%s: %w", msg, ErrInvalidConfig),
	}
}
