package ingest

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxDescription is the longest description kept, in characters.
const MaxDescription = 500

var (
	tagPattern   = regexp.MustCompile(`<[^>]+>`)
	spacePattern = regexp.MustCompile(`[\s\x{00a0}]+`)
	imgPattern   = regexp.MustCompile(`<img[^>]+src=["']([^"']+)["']`)
)

var frenchMonths = [...]string{
	"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
	"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
}

// FormatDateFR renders t as "2 Janvier 2025".
func FormatDateFR(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), frenchMonths[t.Month()-1], t.Year())
}

// CleanHTML strips markup, decodes entities and collapses whitespace.
func CleanHTML(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}

// Truncate shortens s to MaxDescription characters, ellipsis included.
func Truncate(s string) string {
	if utf8.RuneCountInString(s) <= MaxDescription {
		return s
	}
	r := []rune(s)
	return string(r[:MaxDescription-3]) + "..."
}

// firstImage returns the src of the first <img> in an HTML fragment.
func firstImage(s string) string {
	if m := imgPattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}
