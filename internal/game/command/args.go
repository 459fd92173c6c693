package command

import (
	"strconv"
	"strings"

	"github.com/cory-johannsen/wasteland/internal/errors"
)

// usage is the error returned when a command receives too few arguments.
func usage(synopsis string) *errors.Error {
	return errors.InvalidInput("Usage: " + synopsis)
}

// parseInt parses a decimal argument, naming field in the error.
func parseInt(value, field string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, errors.InvalidInputf("%s must be a number, got: %s", field, value)
	}
	return n, nil
}

// optionalInt parses args[i] when present and returns def otherwise.
func optionalInt(args []string, i int, field string, def int) (int, error) {
	if len(args) <= i {
		return def, nil
	}
	return parseInt(args[i], field)
}

// joined rejoins the arguments from index i as one space-separated value.
func joined(args []string, i int) string {
	if len(args) <= i {
		return ""
	}
	return strings.Join(args[i:], " ")
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
