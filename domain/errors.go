package domain

import "errors"

// Kind classifies a failed operation for callers that need more than a message.
type Kind int

const (
	KindUnknown Kind = iota
	// KindUnauthenticated means no session was present; no request was made.
	KindUnauthenticated
	// KindRemoteRejected means the service answered with a 4xx/5xx.
	KindRemoteRejected
	// KindTransport covers network, decoding and other unexpected failures.
	KindTransport
	// KindValidation means input was rejected locally before any remote call.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindRemoteRejected:
		return "remote_rejected"
	case KindTransport:
		return "transport"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

var (
	// ErrUnauthenticated indicates there is no session to authorize the call.
	// The message is shown verbatim in the UI.
	ErrUnauthenticated = errors.New("Not authenticated")

	// ErrEmptyPost indicates the user submitted an empty post or reply.
	ErrEmptyPost = errors.New("post cannot be empty")

	// ErrPostTooLong indicates the post exceeds the grapheme limit.
	ErrPostTooLong = errors.New("post exceeds 300 characters")

	// ErrInvalidURI indicates a malformed at:// record URI.
	ErrInvalidURI = errors.New("invalid record uri")

	// ErrInvalidDID indicates an account reference that is not a DID.
	ErrInvalidDID = errors.New("invalid account id")

	// ErrEmptyQuery indicates a search with nothing to search for.
	ErrEmptyQuery = errors.New("search query cannot be empty")

	// ErrEmptyCredentials indicates a login attempt without handle or password.
	ErrEmptyCredentials = errors.New("Enter your handle and app password")
)
