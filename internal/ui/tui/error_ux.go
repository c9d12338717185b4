package tui

import (
	"errors"
	"strings"

	"github.com/evlt/nutstools/internal/domain"
)

func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {
		case domain.KindInvalidInput:
			return "Not a valid postal code"
		case domain.KindInvalidLevel:
			return "Invalid NUTS level"
		case domain.KindUnknownYear:
			return "Unknown year in settings"
		case domain.KindUnknownCountry:
			return "Unknown country in settings"
		case domain.KindNotFound:
			if strings.HasPrefix(oe.Op, "usecase.") {
				return "Reference table unavailable (check network or proxy)"
			}
			return "File not found"
		case domain.KindDataFormat:
			return "Malformed reference table"
		case domain.KindInvalidConfig:
			return "Invalid settings file"
		}
	}
	return "Unexpected error (see logs)"
}
