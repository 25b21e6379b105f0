package api

import "strings"

// ParseList splits comma-separated form input, trimming entries and
// dropping empty ones.
func ParseList(input string) []string {
	out := []string{}
	for _, part := range strings.Split(input, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
