package bsky

import (
	"context"
	"errors"
	"strings"

	"github.com/CrestNiraj12/terminalsky/domain"
)

// sessionService implements app.SessionService.
type sessionService struct {
	client        *Client
	defaultDomain string
}

// NewSessionService creates a SessionService that stores sessions on client.
func NewSessionService(client *Client, defaultDomain string) *sessionService {
	return &sessionService{client: client, defaultDomain: defaultDomain}
}

type createSessionOutput struct {
	DID        string  `json:"did"`
	Handle     string  `json:"handle"`
	Email      *string `json:"email,omitempty"`
	AccessJwt  string  `json:"accessJwt"`
	RefreshJwt string  `json:"refreshJwt"`
}

func (s *sessionService) Login(ctx context.Context, identifier, password string) domain.Result[domain.Session] {
	id := NormalizeIdentifier(identifier, s.defaultDomain)
	sess, err := s.login(ctx, id, password)
	if err != nil {
		kind, msg := classifyLogin(err)
		s.client.log.Warn().Str("identifier", id).Str("kind", kind.String()).Err(err).Msg("login failed")
		return domain.Fail[domain.Session](kind, msg)
	}
	s.client.sessions.Set(sess)
	s.client.log.Info().Str("handle", sess.Handle).Str("did", sess.DID).Msg("logged in")
	return domain.Ok(sess)
}

func (s *sessionService) login(ctx context.Context, identifier, password string) (domain.Session, error) {
	if identifier == "" || strings.TrimSpace(password) == "" {
		return domain.Session{}, domain.ErrEmptyCredentials
	}

	in := map[string]string{"identifier": identifier, "password": password}
	var out createSessionOutput
	if err := s.client.publicProcedure(ctx, "com.atproto.server.createSession", in, &out); err != nil {
		return domain.Session{}, err
	}
	if out.AccessJwt == "" || out.DID == "" {
		return domain.Session{}, errors.New("Invalid response format")
	}

	return domain.Session{
		DID:        out.DID,
		Handle:     out.Handle,
		Email:      stringOrEmpty(out.Email),
		AccessJwt:  out.AccessJwt,
		RefreshJwt: out.RefreshJwt,
	}, nil
}
