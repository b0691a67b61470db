package bsky

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/CrestNiraj12/terminalsky/domain"
)

// accountService implements app.AccountService using the Bluesky API.
type accountService struct {
	client *Client
	now    func() time.Time
}

// NewAccountService creates an AccountService backed by Bluesky.
func NewAccountService(client *Client) *accountService {
	return &accountService{client: client, now: time.Now}
}

// Profile fetches actor's profile. An empty actor means the logged-in user.
func (s *accountService) Profile(ctx context.Context, actor string) domain.Result[domain.Profile] {
	profile, err := s.profile(ctx, actor)
	return toResult(s.client.log, "profile", profile, err)
}

func (s *accountService) profile(ctx context.Context, actor string) (domain.Profile, error) {
	did, err := s.client.sessionDID()
	if err != nil {
		return domain.Profile{}, err
	}
	actor = strings.TrimPrefix(strings.TrimSpace(actor), "@")
	if actor == "" {
		actor = did
	}

	params := url.Values{}
	params.Set("actor", actor)
	var out wireProfile
	if err := s.client.query(ctx, "app.bsky.actor.getProfile", params, &out); err != nil {
		return domain.Profile{}, fmt.Errorf("fetching profile: %w", err)
	}
	return mapProfile(out), nil
}

func (s *accountService) Follow(ctx context.Context, did string) domain.Result[domain.PostRef] {
	ref, err := s.follow(ctx, did)
	return toResult(s.client.log, "follow", ref, err)
}

func (s *accountService) follow(ctx context.Context, did string) (domain.PostRef, error) {
	if _, err := s.client.sessionDID(); err != nil {
		return domain.PostRef{}, err
	}
	did = strings.TrimSpace(did)
	if !strings.HasPrefix(did, "did:") {
		return domain.PostRef{}, fmt.Errorf("%w: %q", domain.ErrInvalidDID, did)
	}
	record := followRecord{
		Type:      collectionFollow,
		Subject:   did,
		CreatedAt: recordTime(s.now()),
	}
	return s.client.createRecord(ctx, collectionFollow, record)
}
