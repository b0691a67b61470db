package feed

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalsky/domain"
)

func TestThread_OpenLoadAndClose(t *testing.T) {
	m, s := loadedModel()
	parent := domain.Post{URI: "at://did:plc:root/app.bsky.feed.post/0", Text: "root post"}
	s.timeline.thread = domain.Thread{
		Parents: []domain.Post{parent},
		Post:    samplePosts()[0],
		Replies: []domain.ThreadReply{{Post: samplePosts()[1], Depth: 1}},
	}

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.InSubview() || !m.threadLoading {
		t.Fatal("expected thread view loading")
	}

	m, _ = m.Update(cmd())
	if m.threadLoading || m.threadCursor != 1 {
		t.Fatalf("expected cursor on the focused post, got %d", m.threadCursor)
	}
	view := m.View()
	if !strings.Contains(view, "root post") || !strings.Contains(view, "1 replies") {
		t.Fatalf("unexpected thread view:\n%s", view)
	}

	p, ok := m.selected()
	if !ok || p.URI != samplePosts()[0].URI {
		t.Fatalf("unexpected selection %#v", p)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.InSubview() {
		t.Fatal("expected thread closed")
	}
}

func TestThread_IgnoresMismatchedOrLateResults(t *testing.T) {
	m, _ := loadedModel()
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = m.Update(ThreadLoadedMsg{URI: "at://other", Result: domain.Ok(domain.Thread{Post: domain.Post{URI: "at://other"}})})
	if !m.threadLoading {
		t.Fatal("result for another post must be ignored")
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = m.Update(ThreadLoadedMsg{URI: samplePosts()[0].URI, Result: domain.Ok(domain.Thread{})})
	if m.showThread {
		t.Fatal("late thread result must not reopen the view")
	}
}

func TestThread_ErrorShown(t *testing.T) {
	m, _ := loadedModel()
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(ThreadLoadedMsg{
		URI:    samplePosts()[0].URI,
		Result: domain.Fail[domain.Thread](domain.KindRemoteRejected, "Post not found"),
	})
	if !strings.Contains(m.View(), "Post not found") {
		t.Fatal("expected thread error in view")
	}
}

func TestProfile_OpenAndIgnoreOtherActor(t *testing.T) {
	m, s := loadedModel()
	s.account.profile = domain.Profile{DID: "did:plc:alice", Handle: "alice.bsky.social", DisplayName: "Alice", FollowersCount: 4}

	m, _ = press(m, keyRunes("j"))
	m, cmd := press(m, keyRunes("u"))
	if !m.showProfile || m.profileActor != "alice.bsky.social" {
		t.Fatalf("unexpected profile state actor=%q", m.profileActor)
	}

	m, _ = m.Update(ProfileLoadedMsg{Actor: "someone.else", Result: domain.Ok(domain.Profile{Handle: "someone.else"})})
	if !m.profileLoading {
		t.Fatal("profile for another actor must be ignored")
	}

	m, _ = m.Update(cmd())
	if m.profileLoading || !strings.Contains(m.View(), "4 followers") {
		t.Fatalf("unexpected profile view:\n%s", m.View())
	}

	m, _ = press(m, keyRunes("q"))
	if m.InSubview() {
		t.Fatal("expected profile closed")
	}
}
