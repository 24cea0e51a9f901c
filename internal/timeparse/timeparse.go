// Package timeparse canonicalises the clock spellings found in legacy
// booking payloads. The upstream API mixes H:MM, HH:MM and HH:MM:SS forms,
// full-width colons, and informal "9点30分" strings, so every caller goes
// through ParseClock before doing minute arithmetic.
package timeparse

import (
	"fmt"
	"strings"

	"github.com/noah-isme/tutor-dash-api/internal/models"
)

// ParseClock canonicalises a raw clock string to "HH:MM". Seconds are
// discarded, hours zero-padded. Anything it cannot read returns ok=false;
// unparseable input is a value, never an error.
func ParseClock(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	s = strings.ReplaceAll(s, "：", ":")
	s = foldDigits(s)

	hour, minute, ok := parseColonClock(s)
	if !ok {
		hour, minute, ok = parseIdiomClock(s)
	}
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), true
}

// ClockToMinutes converts a raw clock string to minutes since midnight,
// or models.MinutesUnknown when the string cannot be read.
func ClockToMinutes(raw string) int {
	clock, ok := ParseClock(raw)
	if !ok {
		return models.MinutesUnknown
	}
	hour := int(clock[0]-'0')*10 + int(clock[1]-'0')
	minute := int(clock[3]-'0')*10 + int(clock[4]-'0')
	return hour*60 + minute
}

// Interval builds a TimeInterval from two raw clock strings. If either end
// is unreadable the whole interval is unknown; an inverted or zero-length
// pair yields an interval that reports Valid() == false.
func Interval(start, end string) models.TimeInterval {
	s := ClockToMinutes(start)
	e := ClockToMinutes(end)
	if s == models.MinutesUnknown || e == models.MinutesUnknown {
		return models.UnknownInterval()
	}
	return models.TimeInterval{StartMinute: s, EndMinute: e}
}

func parseColonClock(s string) (int, int, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, false
	}
	hour, ok := atoiStrict(parts[0])
	if !ok {
		return 0, 0, false
	}
	minute, ok := atoiStrict(parts[1])
	if !ok {
		return 0, 0, false
	}
	if len(parts) == 3 {
		// seconds must at least be numeric even though they are dropped
		if _, ok := atoiStrict(parts[2]); !ok {
			return 0, 0, false
		}
	}
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// parseIdiomClock reads the "9点30分" family: a 点 separator, an optional
// minute part, an optional trailing 分. "9点" means the top of the hour.
func parseIdiomClock(s string) (int, int, bool) {
	i := strings.Index(s, "点")
	if i < 0 {
		return 0, 0, false
	}
	hour, ok := atoiStrict(s[:i])
	if !ok || hour > 23 {
		return 0, 0, false
	}
	rest := strings.TrimSuffix(s[i+len("点"):], "分")
	if rest == "" {
		return hour, 0, true
	}
	minute, ok := atoiStrict(rest)
	if !ok || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// atoiStrict parses a 1-2 digit non-negative integer and rejects anything
// with signs, spaces, or extra characters.
func atoiStrict(s string) (int, bool) {
	if len(s) < 1 || len(s) > 2 {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// foldDigits maps full-width digits to their ASCII counterparts; informal
// strings copied out of chat apps often carry them.
func foldDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '０' && r <= '９' {
			return '0' + (r - '０')
		}
		return r
	}, s)
}
