package bsky

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/terminalsky/domain"
	"github.com/CrestNiraj12/terminalsky/infra/auth"
)

type handlerRoundTripper struct {
	h    http.Handler
	hits *atomic.Int32
}

func (rt handlerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if rt.hits != nil {
		rt.hits.Add(1)
	}
	rec := newResponseRecorder()
	rt.h.ServeHTTP(rec, req)
	return rec.response(req), nil
}

type responseRecorder struct {
	header http.Header
	body   strings.Builder
	code   int
}

func newResponseRecorder() *responseRecorder {
	return &responseRecorder{header: make(http.Header), code: http.StatusOK}
}

func (r *responseRecorder) Header() http.Header         { return r.header }
func (r *responseRecorder) Write(p []byte) (int, error) { return r.body.Write(p) }
func (r *responseRecorder) WriteHeader(statusCode int)  { r.code = statusCode }

func (r *responseRecorder) response(req *http.Request) *http.Response {
	return &http.Response{
		StatusCode: r.code,
		Header:     r.header.Clone(),
		Body:       io.NopCloser(strings.NewReader(r.body.String())),
		Request:    req,
	}
}

var testSession = domain.Session{
	DID:       "did:plc:self",
	Handle:    "me.bsky.social",
	AccessJwt: "tok",
}

// newTestClient returns a client served by h. A nil session leaves the store empty.
func newTestClient(h http.Handler, sess *domain.Session) (*Client, *atomic.Int32) {
	hits := &atomic.Int32{}
	store := auth.NewSessionStore()
	if sess != nil {
		store.Set(*sess)
	}
	return &Client{
		baseURL:  "http://example.test",
		sessions: store,
		http:     &http.Client{Transport: handlerRoundTripper{h: h, hits: hits}},
		log:      zerolog.Nop(),
	}, hits
}

func writeXRPCError(w http.ResponseWriter, status int, code, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code, "message": msg})
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		t.Fatalf("decoding request body: %v", err)
	}
	return body
}

func TestSessionService_Login_StoresSession(t *testing.T) {
	var gotIdentifier string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/xrpc/com.atproto.server.createSession" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Fatalf("login must not send a bearer token, got %q", got)
		}
		body := decodeBody(t, r)
		gotIdentifier, _ = body["identifier"].(string)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"did":        "did:plc:alice",
			"handle":     "alice.bsky.social",
			"email":      "alice@example.com",
			"accessJwt":  "access",
			"refreshJwt": "refresh",
		})
	})
	client, _ := newTestClient(h, nil)
	svc := NewSessionService(client, DefaultDomain)

	res := svc.Login(context.Background(), "@alice", "pw")
	if !res.OK {
		t.Fatalf("login failed: %s", res.Error)
	}
	if gotIdentifier != "alice.bsky.social" {
		t.Fatalf("identifier not normalized: %q", gotIdentifier)
	}
	if res.Data.Email != "alice@example.com" || res.Data.RefreshJwt != "refresh" {
		t.Fatalf("unexpected session: %#v", res.Data)
	}
	tok, err := client.Sessions().AccessToken()
	if err != nil || tok != "access" {
		t.Fatalf("session not stored: tok=%q err=%v", tok, err)
	}
}

func TestSessionService_Login_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		code   string
		msg    string
		want   string
	}{
		{name: "unauthorized", status: 401, code: "AuthenticationRequired", msg: "Invalid identifier or password", want: "Invalid username or password"},
		{name: "rate limited", status: 429, code: "RateLimitExceeded", msg: "slow down", want: "Too many attempts, please try again later"},
		{name: "pass through", status: 400, code: "AccountTakedown", msg: "Account has been taken down", want: "Account has been taken down"},
		{name: "generic", status: 500, want: "Login failed"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tc.code == "" {
					w.WriteHeader(tc.status)
					return
				}
				writeXRPCError(w, tc.status, tc.code, tc.msg)
			})
			client, _ := newTestClient(h, nil)
			res := NewSessionService(client, DefaultDomain).Login(context.Background(), "alice", "pw")
			if res.OK {
				t.Fatalf("expected login failure")
			}
			if res.Error != tc.want {
				t.Fatalf("error mismatch: got %q want %q", res.Error, tc.want)
			}
			if _, ok := client.Sessions().Session(); ok {
				t.Fatalf("failed login must not store a session")
			}
		})
	}
}

func TestSessionService_Login_EmptyCredentialsSkipsNetwork(t *testing.T) {
	client, hits := newTestClient(http.NotFoundHandler(), nil)
	res := NewSessionService(client, DefaultDomain).Login(context.Background(), "  ", "pw")
	if res.OK || res.Kind != domain.KindValidation {
		t.Fatalf("expected validation failure, got %#v", res)
	}
	if hits.Load() != 0 {
		t.Fatalf("expected no request, got %d", hits.Load())
	}
}

func TestUnauthenticated_AllOperationsFailWithoutRequest(t *testing.T) {
	client, hits := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected request to %s", r.URL.Path)
	}), nil)
	ctx := context.Background()
	timeline := NewTimelineService(client)
	posts := NewPostService(client)
	accounts := NewAccountService(client)
	search := NewSearchService(client, DefaultTimelineLimit)
	parent := domain.Post{URI: "at://did:plc:x/app.bsky.feed.post/1", CID: "c1"}

	errs := map[string]domain.Result[struct{}]{}
	collect := func(name string, ok bool, msg string, kind domain.Kind) {
		errs[name] = domain.Result[struct{}]{OK: ok, Error: msg, Kind: kind}
	}
	r1 := timeline.FetchTimeline(ctx, 50)
	collect("timeline", r1.OK, r1.Error, r1.Kind)
	r2 := timeline.FetchThread(ctx, parent.URI)
	collect("thread", r2.OK, r2.Error, r2.Kind)
	r3 := posts.Post(ctx, "hi")
	collect("post", r3.OK, r3.Error, r3.Kind)
	r4 := posts.Reply(ctx, "hi", parent)
	collect("reply", r4.OK, r4.Error, r4.Kind)
	r5 := posts.Like(ctx, parent.URI, parent.CID)
	collect("like", r5.OK, r5.Error, r5.Kind)
	r6 := posts.Repost(ctx, parent.URI, parent.CID)
	collect("repost", r6.OK, r6.Error, r6.Kind)
	r7 := posts.Delete(ctx, parent.URI)
	collect("delete", r7.OK, r7.Error, r7.Kind)
	r8 := accounts.Profile(ctx, "alice.bsky.social")
	collect("profile", r8.OK, r8.Error, r8.Kind)
	r9 := accounts.Follow(ctx, "did:plc:alice")
	collect("follow", r9.OK, r9.Error, r9.Kind)
	r10 := search.SearchActors(ctx, "alice", 10)
	collect("search_actors", r10.OK, r10.Error, r10.Kind)
	r11 := search.SearchPosts(ctx, "alice")
	collect("search_posts", r11.OK, r11.Error, r11.Kind)
	r12 := search.SearchPostsFullText(ctx, "alice", 10)
	collect("search_fulltext", r12.OK, r12.Error, r12.Kind)
	r13 := timeline.FetchThread(ctx, "not-a-uri")
	collect("thread_malformed_uri", r13.OK, r13.Error, r13.Kind)
	r14 := posts.Delete(ctx, "not-a-uri")
	collect("delete_malformed_uri", r14.OK, r14.Error, r14.Kind)

	for name, r := range errs {
		if r.OK || r.Error != "Not authenticated" || r.Kind != domain.KindUnauthenticated {
			t.Fatalf("%s: expected Not authenticated, got %#v", name, r)
		}
	}
	if hits.Load() != 0 {
		t.Fatalf("expected no network calls, got %d", hits.Load())
	}
}

func TestTimelineService_FetchTimeline_RequestShapeAndMapping(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/xrpc/app.bsky.feed.getTimeline" || r.Method != http.MethodGet {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Fatalf("missing auth header: %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "50" {
			t.Fatalf("unexpected limit: %q", got)
		}
		_, _ = io.WriteString(w, `{"cursor":"c","feed":[
			{"post":{"uri":"at://did:plc:b/app.bsky.feed.post/2","cid":"c2",
				"author":{"did":"did:plc:b","handle":"bob.test","displayName":"Bob"},
				"record":{"$type":"app.bsky.feed.post","text":"newer","createdAt":"2024-05-01T10:00:00.000Z"},
				"replyCount":3,"repostCount":2,"likeCount":1,"indexedAt":"2024-05-01T10:00:01.000Z",
				"viewer":{"like":"at://did:plc:self/app.bsky.feed.like/x"}},
			 "reason":{"$type":"app.bsky.feed.defs#reasonRepost","by":{"did":"did:plc:c","handle":"carol.test"}}},
			{"post":{"uri":"at://did:plc:a/app.bsky.feed.post/1","cid":"c1",
				"author":{"did":"did:plc:a","handle":"alice.test"},
				"record":{"$type":"app.bsky.feed.post","text":"older","createdAt":"2024-04-30T10:00:00Z"},
				"indexedAt":"2024-04-30T10:00:01Z"}}
		]}`)
	})
	client, _ := newTestClient(h, &testSession)

	res := NewTimelineService(client).FetchTimeline(context.Background(), 0)
	if !res.OK {
		t.Fatalf("fetch failed: %s", res.Error)
	}
	posts := res.Data
	if len(posts) != 2 || posts[0].URI != "at://did:plc:b/app.bsky.feed.post/2" {
		t.Fatalf("order must be preserved as delivered: %#v", posts)
	}
	if posts[0].ReplyCount != 3 || posts[0].RepostCount != 2 || posts[0].LikeCount != 1 || !posts[0].Liked {
		t.Fatalf("unexpected counts: %#v", posts[0])
	}
	if posts[0].RepostedBy != "carol.test" {
		t.Fatalf("expected repost reason mapped: %#v", posts[0])
	}
	if posts[1].Author.DisplayName != "alice.test" {
		t.Fatalf("expected display name fallback to handle: %#v", posts[1].Author)
	}
	if posts[1].LikeCount != 0 || posts[1].ReplyCount != 0 || posts[1].RepostCount != 0 {
		t.Fatalf("expected absent counts to default to zero: %#v", posts[1])
	}
	if posts[1].CreatedAt.IsZero() || posts[0].CreatedAt.IsZero() {
		t.Fatalf("expected created_at parsed")
	}
}

func TestTimelineService_FetchTimeline_RemoteError(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeXRPCError(w, http.StatusBadRequest, "ExpiredToken", "Token has expired")
	})
	client, _ := newTestClient(h, &testSession)
	res := NewTimelineService(client).FetchTimeline(context.Background(), 50)
	if res.OK || res.Kind != domain.KindRemoteRejected || res.Error != "Token has expired" {
		t.Fatalf("unexpected result: %#v", res)
	}
}

func TestTimelineService_FetchTimeline_MalformedBody(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "not-json")
	})
	client, _ := newTestClient(h, &testSession)
	res := NewTimelineService(client).FetchTimeline(context.Background(), 50)
	if res.OK || res.Kind != domain.KindTransport {
		t.Fatalf("expected transport failure, got %#v", res)
	}
}

func TestPostService_Reply_AnchorsRootAndParentToTarget(t *testing.T) {
	var record map[string]any
	var collection, repo string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/xrpc/com.atproto.repo.createRecord" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		body := decodeBody(t, r)
		collection, _ = body["collection"].(string)
		repo, _ = body["repo"].(string)
		record, _ = body["record"].(map[string]any)
		_ = json.NewEncoder(w).Encode(map[string]string{"uri": "at://did:plc:self/app.bsky.feed.post/new", "cid": "cnew"})
	})
	client, _ := newTestClient(h, &testSession)
	parent := domain.Post{URI: "at://did:plc:b/app.bsky.feed.post/U", CID: "C"}

	res := NewPostService(client).Reply(context.Background(), "  thanks  ", parent)
	if !res.OK {
		t.Fatalf("reply failed: %s", res.Error)
	}
	if res.Data.URI != "at://did:plc:self/app.bsky.feed.post/new" || res.Data.CID != "cnew" {
		t.Fatalf("unexpected ref: %#v", res.Data)
	}
	if collection != "app.bsky.feed.post" || repo != "did:plc:self" {
		t.Fatalf("unexpected record target: %s %s", repo, collection)
	}
	if record["text"] != "thanks" || record["$type"] != "app.bsky.feed.post" {
		t.Fatalf("unexpected record: %#v", record)
	}
	reply, _ := record["reply"].(map[string]any)
	for _, key := range []string{"root", "parent"} {
		ref, _ := reply[key].(map[string]any)
		if ref["uri"] != parent.URI || ref["cid"] != parent.CID {
			t.Fatalf("%s must reference the target post: %#v", key, reply)
		}
	}
}

func TestPostService_Post_ValidationSkipsNetwork(t *testing.T) {
	client, hits := newTestClient(http.NotFoundHandler(), &testSession)
	svc := NewPostService(client)

	res := svc.Post(context.Background(), " \n\t ")
	if res.OK || res.Kind != domain.KindValidation || res.Error != domain.ErrEmptyPost.Error() {
		t.Fatalf("expected empty-post validation failure, got %#v", res)
	}
	res = svc.Post(context.Background(), strings.Repeat("a", domain.MaxPostGraphemes+1))
	if res.OK || res.Error != domain.ErrPostTooLong.Error() {
		t.Fatalf("expected too-long validation failure, got %#v", res)
	}
	if hits.Load() != 0 {
		t.Fatalf("validation must not hit the network, got %d", hits.Load())
	}
}

func TestPostService_Post_AddsLinkFacet(t *testing.T) {
	var record map[string]any
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		record, _ = body["record"].(map[string]any)
		_ = json.NewEncoder(w).Encode(map[string]string{"uri": "at://did:plc:self/app.bsky.feed.post/x", "cid": "c"})
	})
	client, _ := newTestClient(h, &testSession)

	res := NewPostService(client).Post(context.Background(), "see https://example.com")
	if !res.OK {
		t.Fatalf("post failed: %s", res.Error)
	}
	facets, _ := record["facets"].([]any)
	if len(facets) != 1 {
		t.Fatalf("expected one link facet, got %#v", record["facets"])
	}
	if _, ok := record["reply"]; ok {
		t.Fatalf("top-level post must not carry a reply ref")
	}
}

func TestPostService_LikeRepostDelete(t *testing.T) {
	var paths []string
	var bodies []map[string]any
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		bodies = append(bodies, decodeBody(t, r))
		if r.URL.Path == "/xrpc/com.atproto.repo.deleteRecord" {
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"uri": "at://did:plc:self/x/y", "cid": "c"})
	})
	client, _ := newTestClient(h, &testSession)
	svc := NewPostService(client)
	ctx := context.Background()
	uri := "at://did:plc:self/app.bsky.feed.post/rk"

	if res := svc.Like(ctx, uri, "cid1"); !res.OK {
		t.Fatalf("like failed: %s", res.Error)
	}
	if res := svc.Repost(ctx, uri, "cid1"); !res.OK {
		t.Fatalf("repost failed: %s", res.Error)
	}
	if res := svc.Delete(ctx, uri); !res.OK {
		t.Fatalf("delete failed: %s", res.Error)
	}

	if bodies[0]["collection"] != "app.bsky.feed.like" || bodies[1]["collection"] != "app.bsky.feed.repost" {
		t.Fatalf("unexpected collections: %#v", bodies)
	}
	subject, _ := bodies[0]["record"].(map[string]any)["subject"].(map[string]any)
	if subject["uri"] != uri || subject["cid"] != "cid1" {
		t.Fatalf("unexpected like subject: %#v", subject)
	}
	if paths[2] != "/xrpc/com.atproto.repo.deleteRecord" {
		t.Fatalf("unexpected delete path: %s", paths[2])
	}
	if bodies[2]["repo"] != "did:plc:self" || bodies[2]["collection"] != "app.bsky.feed.post" || bodies[2]["rkey"] != "rk" {
		t.Fatalf("unexpected delete body: %#v", bodies[2])
	}
}

func TestPostService_Delete_RejectsMalformedURI(t *testing.T) {
	client, hits := newTestClient(http.NotFoundHandler(), &testSession)
	res := NewPostService(client).Delete(context.Background(), "https://bsky.app/profile/x/post/y")
	if res.OK || res.Kind != domain.KindValidation {
		t.Fatalf("expected validation failure, got %#v", res)
	}
	if hits.Load() != 0 {
		t.Fatalf("expected no request")
	}
}

func TestAccountService_FollowAndProfile(t *testing.T) {
	var followBody map[string]any
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/xrpc/com.atproto.repo.createRecord":
			followBody = decodeBody(t, r)
			_ = json.NewEncoder(w).Encode(map[string]string{"uri": "at://did:plc:self/app.bsky.graph.follow/f", "cid": "c"})
		case "/xrpc/app.bsky.actor.getProfile":
			if r.URL.Query().Get("actor") != "alice.test" {
				t.Fatalf("unexpected actor: %q", r.URL.Query().Get("actor"))
			}
			_, _ = io.WriteString(w, `{"did":"did:plc:a","handle":"alice.test","description":"hi","followersCount":7}`)
		default:
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
	})
	client, _ := newTestClient(h, &testSession)
	svc := NewAccountService(client)

	if res := svc.Follow(context.Background(), "did:plc:a"); !res.OK {
		t.Fatalf("follow failed: %s", res.Error)
	}
	rec, _ := followBody["record"].(map[string]any)
	if followBody["collection"] != "app.bsky.graph.follow" || rec["subject"] != "did:plc:a" {
		t.Fatalf("unexpected follow body: %#v", followBody)
	}

	res := svc.Profile(context.Background(), "@alice.test")
	if !res.OK {
		t.Fatalf("profile failed: %s", res.Error)
	}
	p := res.Data
	if p.DisplayName != "alice.test" || p.FollowersCount != 7 || p.FollowsCount != 0 || p.Description != "hi" {
		t.Fatalf("unexpected profile mapping: %#v", p)
	}

	if res := svc.Follow(context.Background(), "alice.test"); res.OK || res.Kind != domain.KindValidation {
		t.Fatalf("expected invalid did to be rejected, got %#v", res)
	}
}

func TestSearchService_SearchPosts_FiltersTimelinePage(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/xrpc/app.bsky.actor.searchActors":
			if r.URL.Query().Get("q") != "alice" || r.URL.Query().Get("limit") != "10" {
				t.Fatalf("unexpected actor query: %v", r.URL.Query())
			}
			_, _ = io.WriteString(w, `{"actors":[{"did":"did:plc:a","handle":"alice.test"}]}`)
		case "/xrpc/app.bsky.feed.getTimeline":
			_, _ = io.WriteString(w, `{"feed":[
				{"post":{"uri":"at://b/app.bsky.feed.post/1","cid":"1","author":{"did":"b","handle":"bob"},"record":{"text":"hello world"}}},
				{"post":{"uri":"at://a/app.bsky.feed.post/2","cid":"2","author":{"did":"a","handle":"alice"},"record":{"text":"goodbye"}}}
			]}`)
		default:
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
	})
	client, _ := newTestClient(h, &testSession)

	res := NewSearchService(client, DefaultTimelineLimit).SearchPosts(context.Background(), "alice")
	if !res.OK {
		t.Fatalf("search failed: %s", res.Error)
	}
	if len(res.Data.Posts) != 1 || res.Data.Posts[0].Author.Handle != "alice" {
		t.Fatalf("expected handle match only: %#v", res.Data.Posts)
	}
	if len(res.Data.Actors) != 1 || res.Data.Actors[0].DisplayName != "alice.test" {
		t.Fatalf("unexpected actors: %#v", res.Data.Actors)
	}
}

func TestSearchService_SearchPostsFullText(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/xrpc/app.bsky.feed.searchPosts" || r.URL.Query().Get("q") != "go" {
			t.Fatalf("unexpected request: %s %v", r.URL.Path, r.URL.Query())
		}
		_, _ = io.WriteString(w, `{"posts":[{"uri":"at://a/app.bsky.feed.post/1","cid":"1","author":{"did":"a","handle":"a.test"},"record":{"text":"go go"}}]}`)
	})
	client, _ := newTestClient(h, &testSession)
	res := NewSearchService(client, DefaultTimelineLimit).SearchPostsFullText(context.Background(), "go", 25)
	if !res.OK || len(res.Data) != 1 || res.Data[0].Text != "go go" {
		t.Fatalf("unexpected full-text result: %#v", res)
	}
}

func TestTimelineService_FetchThread(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/xrpc/app.bsky.feed.getPostThread" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"thread":{
			"$type":"app.bsky.feed.defs#threadViewPost",
			"post":{"uri":"at://a/app.bsky.feed.post/2","cid":"2","author":{"did":"a","handle":"a.test"},"record":{"text":"middle"}},
			"parent":{"$type":"app.bsky.feed.defs#threadViewPost",
				"post":{"uri":"at://a/app.bsky.feed.post/1","cid":"1","author":{"did":"a","handle":"a.test"},"record":{"text":"root"}}},
			"replies":[
				{"$type":"app.bsky.feed.defs#threadViewPost",
				 "post":{"uri":"at://b/app.bsky.feed.post/3","cid":"3","author":{"did":"b","handle":"b.test"},"record":{"text":"reply"}},
				 "replies":[{"$type":"app.bsky.feed.defs#threadViewPost","post":{"uri":"at://a/app.bsky.feed.post/4","cid":"4","author":{"did":"a","handle":"a.test"},"record":{"text":"nested"}}}]},
				{"$type":"app.bsky.feed.defs#blockedPost","uri":"at://x/app.bsky.feed.post/9","blocked":true}
			]}}`)
	})
	client, _ := newTestClient(h, &testSession)

	res := NewTimelineService(client).FetchThread(context.Background(), "at://a/app.bsky.feed.post/2")
	if !res.OK {
		t.Fatalf("thread failed: %s", res.Error)
	}
	th := res.Data
	if th.Post.Text != "middle" || len(th.Parents) != 1 || th.Parents[0].Text != "root" {
		t.Fatalf("unexpected thread head: %#v", th)
	}
	if len(th.Replies) != 2 || th.Replies[0].Depth != 1 || th.Replies[1].Depth != 2 || th.Replies[1].Post.Text != "nested" {
		t.Fatalf("unexpected replies: %#v", th.Replies)
	}
}
