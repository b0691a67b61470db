package feed

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalsky/domain"
)

func (m Model) handleFeedLoadingMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.feedReqSeq++
		if len(m.items) == 0 {
			m.loading = true
		}
		return m, tea.Batch(m.fetchTimeline(m.feedReqSeq), m.scheduleTick())

	case RefreshMsg:
		if msg.Status != "" {
			m.status = msg.Status
		}
		return m.refresh()

	case TimelineLoadedMsg:
		if msg.ReqSeq != m.feedReqSeq {
			m.log.Debug().Int("req_seq", msg.ReqSeq).Int("latest", m.feedReqSeq).Msg("dropping stale timeline")
			return m, nil
		}
		m.loading = false
		if !msg.Result.OK {
			// Keep the previous posts on screen under the error.
			m.err = msg.Result.Error
			return m, nil
		}
		m.err = ""
		m.items = msg.Result.Data
		if m.query != "" && !m.fullTextResults {
			m.results = domain.FilterPosts(m.items, m.query)
		}
		m.clampCursor()
		return m, m.ensureMediaPreviewCmd()

	case SearchLoadedMsg:
		if msg.ReqSeq != m.searchSeq || msg.Query != m.query {
			m.log.Debug().Int("req_seq", msg.ReqSeq).Int("latest", m.searchSeq).Msg("dropping stale search")
			return m, nil
		}
		m.searchLoading = false
		if !msg.Result.OK {
			m.searchErr = msg.Result.Error
			m.actors = nil
			m.results = domain.FilterPosts(m.items, m.query)
			m.fullTextResults = false
			m.clampCursor()
			return m, nil
		}
		m.searchErr = ""
		m.actors = msg.Result.Data.Actors
		m.results = msg.Result.Data.Posts
		m.fullTextResults = m.fullText != nil
		m.cursor = 0
		m.startIndex = 0
		return m, m.ensureMediaPreviewCmd()
	}
	return m, nil
}

// refresh issues a new timeline fetch; any fetch still in flight becomes stale.
func (m Model) refresh() (Model, tea.Cmd) {
	m.feedReqSeq++
	m.loading = true
	return m, m.fetchTimeline(m.feedReqSeq)
}

// startSearch enters search mode. Matches from the current page show at once;
// the remote result replaces them when it lands.
func (m Model) startSearch(query string) (Model, tea.Cmd) {
	m.query = query
	m.searchSeq++
	m.searchLoading = true
	m.searchErr = ""
	m.actors = nil
	m.results = domain.FilterPosts(m.items, query)
	m.fullTextResults = false
	m.cursor = 0
	m.startIndex = 0
	m.confirmDelete = false
	return m, m.runSearch(m.searchSeq, query)
}

// clearSearch returns to timeline mode and re-fetches.
func (m Model) clearSearch() (Model, tea.Cmd) {
	m.query = ""
	m.searchSeq++
	m.searchLoading = false
	m.searchErr = ""
	m.actors = nil
	m.results = nil
	m.fullTextResults = false
	m.searchInput.SetValue("")
	m.cursor = 0
	m.startIndex = 0
	return m.refresh()
}
