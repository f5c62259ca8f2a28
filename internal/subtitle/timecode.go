package subtitle

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	errFieldCount = errors.New("expected HH:MM:SS,mmm")
	errNegative   = errors.New("negative field")
)

// ParseTimecode converts HH:MM:SS,mmm (or HH:MM:SS.mmm) into seconds.
func ParseTimecode(text string) (float64, error) {
	value := strings.TrimSpace(text)
	fields := strings.Split(strings.ReplaceAll(value, ",", "."), ":")
	if len(fields) != 3 {
		return 0, &FormatError{Field: "timecode", Value: text, Err: errFieldCount}
	}

	var parts [3]float64
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return 0, &FormatError{Field: "timecode", Value: text, Err: err}
		}
		if v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, &FormatError{Field: "timecode", Value: text, Err: errNegative}
		}
		parts[i] = v
	}

	return parts[0]*3600 + parts[1]*60 + parts[2], nil
}

// FormatTimecode renders seconds as zero padded HH:MM:SS,mmm.
// Milliseconds are truncated, hours are not wrapped at 24.
func FormatTimecode(seconds float64) (string, error) {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "", fmt.Errorf("%w: %v", ErrNegativeTime, seconds)
	}

	// round to microseconds first so 1.001 does not truncate to 1.000
	rounded := math.Round(seconds * 1e6)
	if rounded >= math.MaxInt64 {
		return "", fmt.Errorf("%w: %v", ErrTimeOutOfRange, seconds)
	}
	micros := int64(rounded)
	total := micros / 1e6
	millis := (micros % 1e6) / 1000

	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis), nil
}
