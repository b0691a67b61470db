package bsky

import (
	"fmt"
	"strings"

	"github.com/CrestNiraj12/terminalsky/domain"
)

// ATURI is a parsed record URI: at://<repo>/<collection>/<rkey>.
type ATURI struct {
	Repo       string
	Collection string
	Rkey       string
}

// ParseATURI splits a record URI into its parts.
func ParseATURI(raw string) (ATURI, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(raw), "at://")
	if !ok {
		return ATURI{}, fmt.Errorf("%w: %q", domain.ErrInvalidURI, raw)
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return ATURI{}, fmt.Errorf("%w: %q", domain.ErrInvalidURI, raw)
	}
	return ATURI{Repo: parts[0], Collection: parts[1], Rkey: parts[2]}, nil
}
