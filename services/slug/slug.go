// Package slug derives URL slugs from titles and disambiguates them against
// slugs already stored.
package slug

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	whitespace = regexp.MustCompile(`\s+`)
	disallowed = regexp.MustCompile(`[^a-z0-9-]`)
	dashes     = regexp.MustCompile(`-{2,}`)
)

// Base lowercases title, turns whitespace runs into '-' and drops everything
// outside [a-z0-9-].
func Base(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = whitespace.ReplaceAllString(s, "-")
	s = disallowed.ReplaceAllString(s, "")
	s = dashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Disambiguate returns base when it is free, otherwise base-N with N one past
// the highest suffix in use. The bare base counts as 1, so the second record
// gets base-2 and the third base-3.
func Disambiguate(base string, existing []string) string {
	taken := false
	highest := 1
	for _, s := range existing {
		if s == base {
			taken = true
			continue
		}
		suffix, ok := strings.CutPrefix(s, base+"-")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil || n < 2 {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	if !taken {
		return base
	}
	return base + "-" + strconv.Itoa(highest+1)
}
