package bsky

import (
	"context"
	"fmt"
	"time"

	"github.com/CrestNiraj12/terminalsky/domain"
)

const (
	collectionPost   = "app.bsky.feed.post"
	collectionLike   = "app.bsky.feed.like"
	collectionRepost = "app.bsky.feed.repost"
	collectionFollow = "app.bsky.graph.follow"

	// createdAt layout the service expects: millisecond precision, UTC.
	recordTimeLayout = "2006-01-02T15:04:05.000Z"
)

type strongRef struct {
	URI string `json:"uri"`
	CID string `json:"cid"`
}

type replyRef struct {
	Root   strongRef `json:"root"`
	Parent strongRef `json:"parent"`
}

type postRecord struct {
	Type      string    `json:"$type"`
	Text      string    `json:"text"`
	CreatedAt string    `json:"createdAt"`
	Reply     *replyRef `json:"reply,omitempty"`
	Facets    []Facet   `json:"facets,omitempty"`
}

// subjectRecord is the shape of like and repost records.
type subjectRecord struct {
	Type      string    `json:"$type"`
	Subject   strongRef `json:"subject"`
	CreatedAt string    `json:"createdAt"`
}

type followRecord struct {
	Type      string `json:"$type"`
	Subject   string `json:"subject"`
	CreatedAt string `json:"createdAt"`
}

type createRecordInput struct {
	Repo       string `json:"repo"`
	Collection string `json:"collection"`
	Record     any    `json:"record"`
}

type createRecordOutput struct {
	URI string `json:"uri"`
	CID string `json:"cid"`
}

type deleteRecordInput struct {
	Repo       string `json:"repo"`
	Collection string `json:"collection"`
	Rkey       string `json:"rkey"`
}

// sessionDID returns the repo of the logged-in user or ErrUnauthenticated.
func (c *Client) sessionDID() (string, error) {
	sess, ok := c.sessions.Session()
	if !ok {
		return "", domain.ErrUnauthenticated
	}
	return sess.DID, nil
}

func (c *Client) createRecord(ctx context.Context, collection string, record any) (domain.PostRef, error) {
	repo, err := c.sessionDID()
	if err != nil {
		return domain.PostRef{}, err
	}
	in := createRecordInput{Repo: repo, Collection: collection, Record: record}
	var out createRecordOutput
	if err := c.procedure(ctx, "com.atproto.repo.createRecord", in, &out); err != nil {
		return domain.PostRef{}, fmt.Errorf("creating %s record: %w", collection, err)
	}
	return domain.PostRef{URI: out.URI, CID: out.CID}, nil
}

func (c *Client) deleteRecord(ctx context.Context, uri ATURI) error {
	if _, err := c.sessionDID(); err != nil {
		return err
	}
	in := deleteRecordInput{Repo: uri.Repo, Collection: uri.Collection, Rkey: uri.Rkey}
	if err := c.procedure(ctx, "com.atproto.repo.deleteRecord", in, nil); err != nil {
		return fmt.Errorf("deleting %s record: %w", uri.Collection, err)
	}
	return nil
}

func recordTime(t time.Time) string {
	return t.UTC().Format(recordTimeLayout)
}
