// Package dailyfile recognises the JSON files written by the daily trackers.
package dailyfile

import (
	"regexp"
	"strings"
	"time"
)

// Suffix is the extension every daily file carries.
const Suffix = ".json"

// DestinationDir is the folder, directly under the source directory,
// that daily files are moved into.
const DestinationDir = "data"

// Prefixes lists the recognised name prefixes in match order.
var Prefixes = []string{
	"real-news-tracker-",
	"tracker-data-",
	"test-data-",
	"test-news-tracker-",
}

var dateRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// Match reports whether name is a daily file. Matching is case-sensitive
// and looks at the name only, never at the entry type.
func Match(name string) bool {
	_, ok := Kind(name)
	return ok
}

// Filter returns the names that match, preserving their order.
func Filter(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if Match(n) {
			out = append(out, n)
		}
	}
	return out
}

// Kind returns the matched prefix without its trailing dash
// (e.g. "tracker-data").
func Kind(name string) (string, bool) {
	if !strings.HasSuffix(name, Suffix) {
		return "", false
	}
	for _, p := range Prefixes {
		if strings.HasPrefix(name, p) {
			return strings.TrimSuffix(p, "-"), true
		}
	}
	return "", false
}

// Date extracts the first YYYY-MM-DD segment of a daily file name.
func Date(name string) (time.Time, bool) {
	if !Match(name) {
		return time.Time{}, false
	}
	for _, m := range dateRe.FindAllString(name, -1) {
		if d, err := time.Parse(time.DateOnly, m); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}
