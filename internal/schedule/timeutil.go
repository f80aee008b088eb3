package schedule

import (
	"strconv"
	"strings"
)

// TimeToMinutes converts a clock string like "9:50" to minutes since
// midnight. Malformed input yields 0 so a bad row sorts to the start of
// the day instead of failing the whole query.
func TimeToMinutes(timeStr string) int {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return 0
	}
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0
	}
	return hours*60 + minutes
}
