package domain

import "testing"

func TestFilterPosts(t *testing.T) {
	posts := []Post{
		{URI: "at://1", Text: "hello world", Author: Author{Handle: "bob", DisplayName: "bob"}},
		{URI: "at://2", Text: "goodbye", Author: Author{Handle: "alice", DisplayName: "Alice Liddell"}},
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "text match", query: "hello", want: []string{"at://1"}},
		{name: "handle match", query: "alice", want: []string{"at://2"}},
		{name: "display name case-insensitive", query: "LIDDELL", want: []string{"at://2"}},
		{name: "text case-insensitive", query: "WORLD", want: []string{"at://1"}},
		{name: "no match", query: "zzz", want: nil},
		{name: "empty query keeps all", query: "", want: []string{"at://1", "at://2"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterPosts(posts, tc.query)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d posts, want %d: %#v", len(got), len(tc.want), got)
			}
			for i, p := range got {
				if p.URI != tc.want[i] {
					t.Fatalf("post %d: got %q want %q", i, p.URI, tc.want[i])
				}
			}
		})
	}
}

func TestResult_Err(t *testing.T) {
	ok := Ok(3)
	if ok.Err() != nil || !ok.OK || ok.Data != 3 {
		t.Fatalf("unexpected ok result: %#v", ok)
	}
	failed := Fail[int](KindUnauthenticated, "Not authenticated")
	if failed.OK || failed.Err() == nil || failed.Err().Error() != "Not authenticated" {
		t.Fatalf("unexpected failed result: %#v", failed)
	}
	if failed.Kind.String() != "unauthenticated" {
		t.Fatalf("unexpected kind string: %s", failed.Kind)
	}
}
