package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit        key.Binding
	ForceQuit   key.Binding
	Refresh     key.Binding
	NewEditor   key.Binding // p: compose via $EDITOR
	NewInline   key.Binding // P: compose via inline textarea
	Reply       key.Binding // c: reply via $EDITOR
	ReplyInline key.Binding // C: reply inline
	Like        key.Binding
	Repost      key.Binding
	Follow      key.Binding
	Delete      key.Binding // d: delete own post, asks first
	Search      key.Binding
	Enter       key.Binding // open thread
	Profile     key.Binding
	Open        key.Binding // o: open post in browser
	OpenMedia   key.Binding // O: open embedded images and links
	ToggleMedia key.Binding // i: image previews on/off
	Back        key.Binding
	Up          key.Binding
	Down        key.Binding
	Top         key.Binding
	ToggleHints key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		NewEditor: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "post ($EDITOR)"),
		),
		NewInline: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "post (inline)"),
		),
		Reply: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "reply ($EDITOR)"),
		),
		ReplyInline: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "reply (inline)"),
		),
		Like: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "like"),
		),
		Repost: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "repost"),
		),
		Follow: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "follow"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "thread"),
		),
		Profile: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "profile"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open"),
		),
		OpenMedia: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "open media"),
		),
		ToggleMedia: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "image preview"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		ToggleHints: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "all keys"),
		),
	}
}

// ShortHelp is the hint line shown under the feed.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.NewInline, k.ReplyInline, k.Like, k.Search, k.Refresh, k.ToggleHints, k.Quit}
}

// FullHelp lists every binding, grouped for the hints overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Enter, k.Back},
		{k.NewEditor, k.NewInline, k.Reply, k.ReplyInline},
		{k.Like, k.Repost, k.Follow, k.Delete},
		{k.Search, k.Profile, k.Open, k.OpenMedia, k.ToggleMedia},
		{k.Refresh, k.ToggleHints, k.Quit, k.ForceQuit},
	}
}
