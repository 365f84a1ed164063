// Package formatx holds presentation helpers for the terminal client:
// Indonesian dates, human file sizes, text trimming and a few small
// utilities.
package formatx

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	DefaultTruncateLength = 50
	ellipsis              = "..."
)

var monthsID = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

var sizeUnits = [...]string{"B", "KB", "MB", "GB"}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FormatDate renders t as a long Indonesian date, e.g. "01 Mei 2024".
// The zero time renders as "-".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%02d %s %d", t.Day(), monthsID[t.Month()-1], t.Year())
}

// FormatDateTime is FormatDate followed by the time, e.g.
// "01 Mei 2024 pukul 09.05".
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%s pukul %02d.%02d", FormatDate(t), t.Hour(), t.Minute())
}

// FormatFileSize renders bytes with two decimals in the largest unit that
// keeps the value at or above one, up to GB.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}
	v := float64(bytes)
	i := 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}
	return fmt.Sprintf("%.2f %s", v, sizeUnits[i])
}

// Truncate cuts s to max runes and appends "...". max <= 0 uses
// DefaultTruncateLength.
func Truncate(s string, max int) string {
	if max <= 0 {
		max = DefaultTruncateLength
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max]) + ellipsis
}

// Capitalize upper-cases the first rune and leaves the rest alone.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func IsValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// Label turns a status or role value such as "published" into "Published".
func Label(s string) string {
	return Capitalize(strings.ReplaceAll(s, "_", " "))
}
