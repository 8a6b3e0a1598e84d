package search

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// isoDurationRe matches the ISO-8601 durations the YouTube API emits,
// e.g. "PT3M12S", "PT1H2M", "P1DT4H". Time components require the "T"
// separator so month designators ("P3M") are not misread as minutes.
var isoDurationRe = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseISODuration parses an ISO-8601 duration string into a time.Duration.
func ParseISODuration(s string) (time.Duration, error) {
	m := isoDurationRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid ISO-8601 duration: %q", s)
	}
	if m[1] == "" && m[2] == "" && m[3] == "" && m[4] == "" {
		// Bare "P" or "PT" carries no components
		return 0, fmt.Errorf("invalid ISO-8601 duration: %q", s)
	}

	var d time.Duration
	units := []time.Duration{24 * time.Hour, time.Hour, time.Minute, time.Second}
	for i, unit := range units {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0, fmt.Errorf("invalid ISO-8601 duration: %q", s)
		}
		d += time.Duration(n) * unit
	}

	return d, nil
}
