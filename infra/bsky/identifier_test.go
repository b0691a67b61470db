package bsky

import "testing"

func TestNormalizeIdentifier(t *testing.T) {
	tests := []struct {
		in     string
		domain string
		want   string
	}{
		{in: "alice", want: "alice.bsky.social"},
		{in: "@alice", want: "alice.bsky.social"},
		{in: "  alice  ", want: "alice.bsky.social"},
		{in: "alice.bsky.social", want: "alice.bsky.social"},
		{in: "@alice.example.com", want: "alice.example.com"},
		{in: "alice@example.com", want: "alice@example.com"},
		{in: "alice", domain: "pds.example", want: "alice.pds.example"},
		{in: "   ", want: ""},
		{in: "@", want: ""},
	}
	for _, tc := range tests {
		if got := NormalizeIdentifier(tc.in, tc.domain); got != tc.want {
			t.Fatalf("NormalizeIdentifier(%q, %q) = %q, want %q", tc.in, tc.domain, got, tc.want)
		}
	}
}
