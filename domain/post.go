package domain

import (
	"strings"
	"time"
)

// AppTitle is the display name of the client.
const AppTitle = "TerminalSky"

// MaxPostGraphemes is the service-side length limit for post text.
const MaxPostGraphemes = 300

// Author is the normalized author of a post.
type Author struct {
	DID         string
	Handle      string
	DisplayName string // Never empty: falls back to Handle.
	Avatar      string
}

// Image is one image of an images embed.
type Image struct {
	Thumb    string
	Fullsize string
	Alt      string
}

// ExternalLink is a link-card embed.
type ExternalLink struct {
	URI         string
	Title       string
	Description string
}

// Embed is the optional media attached to a post.
type Embed struct {
	Type      string
	Images    []Image
	External  *ExternalLink
	QuotedURI string
}

// Post is an immutable snapshot of a remote post.
type Post struct {
	URI         string // Unique id (at://did/app.bsky.feed.post/rkey)
	CID         string // Content version
	Author      Author
	Text        string
	CreatedAt   time.Time
	Embed       *Embed
	ReplyCount  int
	RepostCount int
	LikeCount   int
	IndexedAt   time.Time
	Liked       bool
	Reposted    bool
	RepostedBy  string // Handle of the reposter when the item came in as a repost.
}

// WebBase is the web client posts and profiles link to.
const WebBase = "https://bsky.app"

// WebURL returns the web address of the post, or "" if URI is not a post
// record (at://<repo>/app.bsky.feed.post/<rkey>).
func (p Post) WebURL() string {
	rest, ok := strings.CutPrefix(p.URI, "at://")
	if !ok {
		return ""
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 3 || parts[0] == "" || parts[1] != "app.bsky.feed.post" || parts[2] == "" {
		return ""
	}
	profile := p.Author.Handle
	if profile == "" {
		profile = parts[0]
	}
	return WebBase + "/profile/" + profile + "/post/" + parts[2]
}

// ProfileWebURL returns the web address of an account's profile.
func ProfileWebURL(actor string) string {
	if actor == "" {
		return ""
	}
	return WebBase + "/profile/" + actor
}

// Ref returns the strong reference for this post.
func (p Post) Ref() PostRef {
	return PostRef{URI: p.URI, CID: p.CID}
}

// PostRef is a strong reference to one version of a record.
type PostRef struct {
	URI string
	CID string
}

// Actor is a normalized account returned from actor search.
type Actor struct {
	DID         string
	Handle      string
	DisplayName string // Never empty: falls back to Handle.
	Avatar      string
}

// SearchResult is the combined output of a search.
type SearchResult struct {
	Query  string
	Posts  []Post
	Actors []Actor
}

// ReplyDraft is the transient state of an in-progress reply.
type ReplyDraft struct {
	Parent Post
	Text   string
}

// ThreadReply is a reply in a flattened thread with its nesting depth (1 = direct reply).
type ThreadReply struct {
	Post  Post
	Depth int
}

// Thread is a post with its parent chain (root first) and flattened replies.
type Thread struct {
	Parents []Post
	Post    Post
	Replies []ThreadReply
}
