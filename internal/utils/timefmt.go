package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatClock12 converts a 24-hour wall-clock string ("HH:MM" or "HH:MM:SS")
// into its 12-hour "h:mm AM/PM" display form. Hour 0 displays as 12 AM and
// hour 12 stays 12 PM. Every place a time is shown to a candidate goes
// through this function (or FormatTime12 for zoned instants) so the display
// rule stays uniform.
func FormatClock12(clock string) (string, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return "", fmt.Errorf("invalid clock value %q", clock)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in clock value %q", clock)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in clock value %q", clock)
	}
	return clock12(hour, minute), nil
}

// FormatTime12 renders the time-of-day of t in 12-hour form, in t's location.
func FormatTime12(t time.Time) string {
	return clock12(t.Hour(), t.Minute())
}

func clock12(hour, minute int) string {
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, period)
}
