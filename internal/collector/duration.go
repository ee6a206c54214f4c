package collector

import (
	"regexp"
	"strconv"
)

var durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// ParseDuration converts an ISO 8601 video duration such as "PT1H2M3S" to
// total seconds. Any subset of the hour/minute/second components may be
// absent. Malformed or empty input yields 0 rather than an error; upstream
// duration strings are not contract-guaranteed.
func ParseDuration(s string) int {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}

	hours := atoiDefaultZero(m[1])
	minutes := atoiDefaultZero(m[2])
	seconds := atoiDefaultZero(m[3])

	return hours*3600 + minutes*60 + seconds
}

func atoiDefaultZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
