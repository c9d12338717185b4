package cli

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/evlt/nutstools/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

// userMessage turns an error into one line suitable for stderr.
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if !errors.As(err, &oe) {
		return err.Error()
	}

	base := ""
	if strings.TrimSpace(oe.Path) != "" {
		base = filepath.Base(oe.Path)
	}

	switch oe.Kind {
	case domain.KindNotFound:
		if strings.HasPrefix(oe.Op, "usecase.") {
			return detail(oe)
		}
		if base != "" {
			return "File not found: " + oe.Path
		}
		return "Not found"

	case domain.KindInvalidLevel, domain.KindInvalidInput,
		domain.KindUnknownYear, domain.KindUnknownCountry:
		return detail(oe)

	case domain.KindDataFormat:
		msg := "Malformed reference table"
		if base != "" {
			msg = "Malformed file " + base
		}
		if line := extractLine(err.Error()); line != "" {
			msg += " line " + line
		}
		return msg

	case domain.KindInvalidConfig:
		if base == "" {
			return "Invalid config: " + detail(oe)
		}
		if line := extractLine(err.Error()); line != "" {
			return "Invalid YAML at " + base + " line " + line
		}
		return "Invalid config " + base

	case domain.KindNetwork:
		return "Download failed (see logs)"

	default:
		return "Unexpected error (see logs)"
	}
}

// detail strips the trailing sentinel from a wrapped message.
func detail(oe *domain.OpError) string {
	if oe.Err == nil {
		return string(oe.Kind)
	}
	msg := oe.Err.Error()
	if i := strings.LastIndex(msg, ": "); i > 0 {
		msg = msg[:i]
	}
	return msg
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
