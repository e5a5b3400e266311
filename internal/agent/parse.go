package agent

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/paulutsch/clembench/pkg/episode"
)

// ErrInvalidDirection is returned when a response contains no usable
// direction letter.
var ErrInvalidDirection = errors.New("invalid direction")

// The protocol requires a line of the form "DIRECTION: <letter>" with
// one of n, s, e, w.
var directionPattern = regexp.MustCompile(`(?is)DIRECTION:\s*([nsew])`)

// ParseDirection extracts the direction from a free-text agent
// response. If no DIRECTION line matches, the last non-whitespace
// character is tried as a fallback before giving up.
func ParseDirection(response string) (episode.Direction, error) {
	var letter string
	if m := directionPattern.FindStringSubmatch(response); m != nil {
		letter = strings.ToLower(m[1])
	} else {
		trimmed := strings.TrimSpace(response)
		if trimmed == "" {
			return "", fmt.Errorf("%w: empty response", ErrInvalidDirection)
		}
		letter = strings.ToLower(trimmed[len(trimmed)-1:])
	}

	switch letter {
	case "n":
		return episode.North, nil
	case "s":
		return episode.South, nil
	case "e":
		return episode.East, nil
	case "w":
		return episode.West, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDirection, letter)
}
