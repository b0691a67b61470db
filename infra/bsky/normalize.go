package bsky

import (
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/terminalsky/domain"
)

// Wire shapes are the subset of the app.bsky lexicons we read. Every field the
// service may omit is a pointer; fallbacks are applied in the map* functions
// below and nowhere else.

type wireAuthor struct {
	DID         string  `json:"did"`
	Handle      string  `json:"handle"`
	DisplayName *string `json:"displayName,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
}

type wirePostRecord struct {
	Type      string `json:"$type"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

type wireImage struct {
	Thumb    string `json:"thumb"`
	Fullsize string `json:"fullsize"`
	Alt      string `json:"alt"`
}

type wireExternal struct {
	URI         string `json:"uri"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type wireEmbedRecord struct {
	URI    string           `json:"uri"`
	Record *wireEmbedRecord `json:"record,omitempty"`
}

type wireEmbed struct {
	Type     string           `json:"$type"`
	Images   []wireImage      `json:"images,omitempty"`
	External *wireExternal    `json:"external,omitempty"`
	Record   *wireEmbedRecord `json:"record,omitempty"`
	Media    *wireEmbed       `json:"media,omitempty"`
}

type wireViewer struct {
	Like   *string `json:"like,omitempty"`
	Repost *string `json:"repost,omitempty"`
}

type wirePostView struct {
	URI         string         `json:"uri"`
	CID         string         `json:"cid"`
	Author      wireAuthor     `json:"author"`
	Record      wirePostRecord `json:"record"`
	Embed       *wireEmbed     `json:"embed,omitempty"`
	ReplyCount  *int           `json:"replyCount,omitempty"`
	RepostCount *int           `json:"repostCount,omitempty"`
	LikeCount   *int           `json:"likeCount,omitempty"`
	IndexedAt   string         `json:"indexedAt"`
	Viewer      *wireViewer    `json:"viewer,omitempty"`
}

type wireReason struct {
	Type string      `json:"$type"`
	By   *wireAuthor `json:"by,omitempty"`
}

type wireFeedViewPost struct {
	Post   wirePostView `json:"post"`
	Reason *wireReason  `json:"reason,omitempty"`
}

type wireTimeline struct {
	Cursor *string            `json:"cursor,omitempty"`
	Feed   []wireFeedViewPost `json:"feed"`
}

type wireThreadNode struct {
	Type    string           `json:"$type"`
	Post    *wirePostView    `json:"post,omitempty"`
	Parent  *wireThreadNode  `json:"parent,omitempty"`
	Replies []wireThreadNode `json:"replies,omitempty"`
}

type wireProfile struct {
	wireAuthor
	Description    *string `json:"description,omitempty"`
	FollowersCount *int    `json:"followersCount,omitempty"`
	FollowsCount   *int    `json:"followsCount,omitempty"`
	PostsCount     *int    `json:"postsCount,omitempty"`
	Viewer         *struct {
		Following *string `json:"following,omitempty"`
	} `json:"viewer,omitempty"`
}

const reasonRepost = "app.bsky.feed.defs#reasonRepost"

func mapFeed(feed []wireFeedViewPost) []domain.Post {
	posts := make([]domain.Post, 0, len(feed))
	for _, item := range feed {
		p := mapPost(item.Post)
		if item.Reason != nil && item.Reason.Type == reasonRepost && item.Reason.By != nil {
			p.RepostedBy = sanitizeForTerminal(item.Reason.By.Handle)
		}
		posts = append(posts, p)
	}
	return posts
}

func mapPost(pv wirePostView) domain.Post {
	p := domain.Post{
		URI:         pv.URI,
		CID:         pv.CID,
		Author:      mapAuthor(pv.Author),
		Text:        sanitizeForTerminal(pv.Record.Text),
		CreatedAt:   parseTime(pv.Record.CreatedAt),
		Embed:       mapEmbed(pv.Embed),
		ReplyCount:  intOrZero(pv.ReplyCount),
		RepostCount: intOrZero(pv.RepostCount),
		LikeCount:   intOrZero(pv.LikeCount),
		IndexedAt:   parseTime(pv.IndexedAt),
	}
	if pv.Viewer != nil {
		p.Liked = stringOrEmpty(pv.Viewer.Like) != ""
		p.Reposted = stringOrEmpty(pv.Viewer.Repost) != ""
	}
	return p
}

func mapAuthor(a wireAuthor) domain.Author {
	handle := sanitizeForTerminal(a.Handle)
	return domain.Author{
		DID:         a.DID,
		Handle:      handle,
		DisplayName: displayNameOr(a.DisplayName, handle),
		Avatar:      stringOrEmpty(a.Avatar),
	}
}

func mapActor(a wireAuthor) domain.Actor {
	author := mapAuthor(a)
	return domain.Actor{
		DID:         author.DID,
		Handle:      author.Handle,
		DisplayName: author.DisplayName,
		Avatar:      author.Avatar,
	}
}

func mapActors(in []wireAuthor) []domain.Actor {
	out := make([]domain.Actor, 0, len(in))
	for _, a := range in {
		out = append(out, mapActor(a))
	}
	return out
}

func mapProfile(p wireProfile) domain.Profile {
	author := mapAuthor(p.wireAuthor)
	out := domain.Profile{
		DID:            author.DID,
		Handle:         author.Handle,
		DisplayName:    author.DisplayName,
		Avatar:         author.Avatar,
		Description:    sanitizeForTerminal(stringOrEmpty(p.Description)),
		FollowersCount: intOrZero(p.FollowersCount),
		FollowsCount:   intOrZero(p.FollowsCount),
		PostsCount:     intOrZero(p.PostsCount),
	}
	if p.Viewer != nil {
		out.FollowingURI = stringOrEmpty(p.Viewer.Following)
	}
	return out
}

func mapEmbed(e *wireEmbed) *domain.Embed {
	if e == nil {
		return nil
	}
	out := &domain.Embed{Type: e.Type}
	for _, img := range e.Images {
		out.Images = append(out.Images, domain.Image{
			Thumb:    img.Thumb,
			Fullsize: img.Fullsize,
			Alt:      strings.TrimSpace(sanitizeForTerminal(img.Alt)),
		})
	}
	if e.External != nil {
		out.External = &domain.ExternalLink{
			URI:         e.External.URI,
			Title:       sanitizeForTerminal(e.External.Title),
			Description: sanitizeForTerminal(e.External.Description),
		}
	}
	if e.Record != nil {
		// recordWithMedia nests the quoted record one level deeper.
		rec := e.Record
		if rec.URI == "" && rec.Record != nil {
			rec = rec.Record
		}
		out.QuotedURI = rec.URI
	}
	if e.Media != nil {
		if media := mapEmbed(e.Media); media != nil {
			out.Images = append(out.Images, media.Images...)
			if out.External == nil {
				out.External = media.External
			}
		}
	}
	return out
}

// mapThread flattens a thread view. Parents are returned root first; replies
// depth-first with their nesting level. Not-found and blocked nodes are skipped.
func mapThread(root wireThreadNode) (domain.Thread, bool) {
	if root.Post == nil {
		return domain.Thread{}, false
	}
	t := domain.Thread{Post: mapPost(*root.Post)}

	var parents []domain.Post
	for n := root.Parent; n != nil; n = n.Parent {
		if n.Post == nil {
			continue
		}
		parents = append(parents, mapPost(*n.Post))
	}
	for i, j := 0, len(parents)-1; i < j; i, j = i+1, j-1 {
		parents[i], parents[j] = parents[j], parents[i]
	}
	t.Parents = parents

	var walk func(nodes []wireThreadNode, depth int)
	walk = func(nodes []wireThreadNode, depth int) {
		for _, n := range nodes {
			if n.Post == nil {
				continue
			}
			t.Replies = append(t.Replies, domain.ThreadReply{Post: mapPost(*n.Post), Depth: depth})
			walk(n.Replies, depth+1)
		}
	}
	walk(root.Replies, 1)
	return t, true
}

func displayNameOr(name *string, handle string) string {
	if name != nil {
		if n := strings.TrimSpace(sanitizeForTerminal(*name)); n != "" {
			return n
		}
	}
	return handle
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func stringOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// sanitizeForTerminal strips ANSI escape sequences and control characters
// (keeping newlines and tabs) from remote text.
func sanitizeForTerminal(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
