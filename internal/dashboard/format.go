package dashboard

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
)

// FormatHashrate formats a rate given in KH/s.
func FormatHashrate(khs float64) string {
	n := SanitizeNumber(khs)
	switch {
	case n == 0:
		return "0 H/s"
	case n >= 1_000_000:
		return fmt.Sprintf("%.2f GH/s", n/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.2f MH/s", n/1_000)
	default:
		return fmt.Sprintf("%.2f KH/s", n)
	}
}

// FormatBytes uses base 1024 units with two decimals above one kilobyte.
func FormatBytes(b float64) string {
	n := SanitizeNumber(b)
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.2f GB", n/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.2f MB", n/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.2f KB", n/(1<<10))
	case n <= -(1 << 63):
		return strconv.FormatFloat(math.Round(n), 'f', 0, 64) + " B"
	default:
		return fmt.Sprintf("%d B", int64(math.Round(n)))
	}
}

// FormatNumber rounds to an integer and adds thousands separators. Values
// outside the int64 range keep their magnitude.
func FormatNumber(v float64) string {
	n := math.Round(SanitizeNumber(v))
	if math.Abs(n) >= 1<<63 {
		return humanize.Commaf(n)
	}
	return humanize.Comma(int64(n))
}

// FormatPlain renders v with the shortest exact decimal representation.
func FormatPlain(v float64) string {
	return strconv.FormatFloat(SanitizeNumber(v), 'f', -1, 64)
}

// FormatPercent renders v with the given number of decimals and a % suffix.
func FormatPercent(v float64, decimals int) string {
	return strconv.FormatFloat(SanitizeNumber(v), 'f', decimals, 64) + "%"
}

// maxUptimeSeconds is the longest uptime a time.Duration can hold.
const maxUptimeSeconds = float64(math.MaxInt64 / int64(time.Second))

// FormatUptime renders seconds as the two most significant units,
// e.g. "2 days 3 hours".
func FormatUptime(seconds float64) string {
	sec := SanitizeNumber(seconds)
	if sec <= 0 {
		return "0 seconds"
	}
	if sec > maxUptimeSeconds {
		sec = maxUptimeSeconds
	}
	return durafmt.Parse(time.Duration(sec) * time.Second).LimitFirstN(2).String()
}

// FormatClock renders the wall-clock time of t.
func FormatClock(t time.Time) string {
	return t.Format("15:04:05")
}

func formatAcceptance(v float64) string {
	return FormatPercent(v, 2)
}
