package ui

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// truncateMiddle shortens a string by removing characters from the middle,
// preserving both the beginning and end.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || value == "" {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	ellipsis := []rune("…")
	keep := limit - len(ellipsis)
	prefix := keep / 2
	suffix := keep - prefix
	return string(runes[:prefix]) + string(ellipsis) + string(runes[len(runes)-suffix:])
}

// capitalize upper-cases the first rune.
func capitalize(value string) string {
	r, size := utf8.DecodeRuneInString(value)
	if r == utf8.RuneError {
		return value
	}
	return string(unicode.ToUpper(r)) + value[size:]
}

// plural returns "1 user" or "N users".
func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
