package bsky

import "strings"

// DefaultDomain is appended to bare usernames.
const DefaultDomain = "bsky.social"

// NormalizeIdentifier turns user input into a login identifier. A leading "@"
// is dropped and a bare username (no "." and no "@") is placed under
// defaultDomain, so "alice" and "@alice" both become "alice.bsky.social".
// Full handles and email addresses pass through.
func NormalizeIdentifier(identifier, defaultDomain string) string {
	id := strings.TrimPrefix(strings.TrimSpace(identifier), "@")
	if id == "" {
		return ""
	}
	if defaultDomain == "" {
		defaultDomain = DefaultDomain
	}
	if !strings.Contains(id, ".") && !strings.Contains(id, "@") {
		id = id + "." + defaultDomain
	}
	return id
}
