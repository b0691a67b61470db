package app

import (
	"context"

	"github.com/CrestNiraj12/terminalsky/domain"
)

// SessionService authenticates against the social backend.
type SessionService interface {
	// Login normalizes identifier, creates a session and stores it for all
	// subsequent calls.
	Login(ctx context.Context, identifier, password string) domain.Result[domain.Session]
}

// AccountService reads and follows accounts.
type AccountService interface {
	// Profile returns the profile of a handle or DID.
	Profile(ctx context.Context, actor string) domain.Result[domain.Profile]

	// Follow creates a follow record for the given DID.
	Follow(ctx context.Context, did string) domain.Result[domain.PostRef]
}
