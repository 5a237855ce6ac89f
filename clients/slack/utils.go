package slack

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseSlackTimestamp converts a Slack message ts ("1712345678.000200",
// epoch seconds with a microsecond suffix) into a time.Time.
func ParseSlackTimestamp(ts string) (time.Time, error) {
	if ts == "" {
		return time.Time{}, fmt.Errorf("timestamp is empty")
	}

	parts := strings.SplitN(ts, ".", 2)
	seconds, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp seconds: %w", err)
	}

	var micros int64
	if len(parts) == 2 && parts[1] != "" {
		// Right-pad so "123" means 123000 microseconds
		fraction := parts[1]
		if len(fraction) > 6 {
			fraction = fraction[:6]
		}
		for len(fraction) < 6 {
			fraction += "0"
		}
		micros, err = strconv.ParseInt(fraction, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid timestamp fraction: %w", err)
		}
	}

	return time.Unix(seconds, micros*int64(time.Microsecond)), nil
}
