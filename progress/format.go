package progress

import (
	"fmt"
	"math"
	"time"
)

// formatSize scales n bytes with SI prefixes, keeping three
// significant digits.
func formatSize(n float64) string {
	for _, unit := range []string{"", "k", "M", "G", "T", "P", "E"} {
		if math.Abs(n) < 999.5 {
			switch {
			case math.Abs(n) < 9.995:
				return fmt.Sprintf("%.2f%sB", n, unit)
			case math.Abs(n) < 99.95:
				return fmt.Sprintf("%.1f%sB", n, unit)
			default:
				return fmt.Sprintf("%.0f%sB", n, unit)
			}
		}
		n /= 1000
	}

	return fmt.Sprintf("%.1fZB", n)
}

// formatInterval renders d as MM:SS, or H:MM:SS past the hour.
func formatInterval(d time.Duration) string {
	secs := int(d.Round(time.Second).Seconds())
	h, m, s := secs/3600, (secs/60)%60, secs%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}

	return fmt.Sprintf("%02d:%02d", m, s)
}
