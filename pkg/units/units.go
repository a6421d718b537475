// Package units renders byte counts and durations for humans.
//
// Both formatters pick the largest unit whose threshold the value reaches
// and print the scaled value with one decimal, rounding half up. They use
// integer arithmetic only and keep no state, so they are safe to call from
// any goroutine.
package units

import (
	"math"
	"strconv"
	"time"
)

var byteUnits = [...]string{"B", "KB", "MB", "GB", "TB", "PB"}

// FormatBytes renders n using B, KB, MB, GB, TB or PB with 1024 steps:
// 0 → "0B", 1023 → "1023B", 1536 → "1.5KB", 1<<20 → "1.0MB". Sizes in bytes
// are printed without a decimal. Negative sizes get a leading "-".
func FormatBytes(n int64) string {
	neg, abs := split(n)

	unit := 0
	div := uint64(1)
	for unit < len(byteUnits)-1 && abs >= div*1024 {
		div *= 1024
		unit++
	}

	var s string
	if unit == 0 {
		s = strconv.FormatUint(abs, 10) + byteUnits[0]
	} else {
		s = tenths(abs, div) + byteUnits[unit]
	}
	if neg {
		return "-" + s
	}
	return s
}

// DurationUnits holds the labels used by FormatMillis.
type DurationUnits struct {
	Millis, Seconds, Minutes, Hours, Days string
}

// Chinese labels, the default.
var Chinese = DurationUnits{Millis: "毫秒", Seconds: "秒", Minutes: "分", Hours: "小时", Days: "天"}

// English abbreviations.
var English = DurationUnits{Millis: "ms", Seconds: "s", Minutes: "m", Hours: "h", Days: "d"}

const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

// FormatMillis renders a millisecond count: 500 → "500毫秒", 1500 → "1.5秒",
// 90000 → "1.5分", -1500 → "-1.5秒".
func FormatMillis(ms int64) string {
	return Chinese.FormatMillis(ms)
}

// FormatDuration is FormatMillis for a time.Duration, truncated to whole
// milliseconds.
func FormatDuration(d time.Duration) string {
	return FormatMillis(d.Milliseconds())
}

// FormatMillis renders ms with the receiver's labels.
func (u DurationUnits) FormatMillis(ms int64) string {
	neg, abs := split(ms)

	var s string
	switch {
	case abs < msPerSecond:
		s = strconv.FormatUint(abs, 10) + u.Millis
	case abs < msPerMinute:
		s = tenths(abs, msPerSecond) + u.Seconds
	case abs < msPerHour:
		s = tenths(abs, msPerMinute) + u.Minutes
	case abs < msPerDay:
		s = tenths(abs, msPerHour) + u.Hours
	default:
		s = tenths(abs, msPerDay) + u.Days
	}

	if neg {
		return "-" + s
	}
	return s
}

// FormatDuration renders d with the receiver's labels.
func (u DurationUnits) FormatDuration(d time.Duration) string {
	return u.FormatMillis(d.Milliseconds())
}

// split returns the sign and magnitude of n; math.MinInt64 is handled
// without overflow.
func split(n int64) (bool, uint64) {
	if n >= 0 {
		return false, uint64(n)
	}
	if n == math.MinInt64 {
		return true, uint64(math.MaxInt64) + 1
	}
	return true, uint64(-n)
}

// tenths renders v/div with one decimal, rounding half up.
func tenths(v, div uint64) string {
	q, r := v/div, v%div
	// r < div ≤ 2^50 here, so r*10 cannot overflow.
	t := q*10 + (r*10+div/2)/div
	return strconv.FormatUint(t/10, 10) + "." + strconv.FormatUint(t%10, 10)
}
