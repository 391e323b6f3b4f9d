package panel

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/clockworks/huepanel/internal/i18n"
)

// keyMap holds the panel key bindings. It implements help.KeyMap so the
// footer can render contextual hints.
type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Section     key.Binding
	SectionBack key.Binding
	Toggle      key.Binding
	BriUp       key.Binding
	BriDown     key.Binding
	HueLeft     key.Binding
	HueRight    key.Binding
	SatDown     key.Binding
	SatUp       key.Binding
	Reload      key.Binding
	More        key.Binding
	Back        key.Binding
	Quit        key.Binding
	Discover    key.Binding
	Pair        key.Binding
	Unpair      key.Binding
}

func newKeyMap(tr *i18n.Translator) keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", tr.T("help-navigate")),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", tr.T("help-navigate")),
		),
		Section: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", tr.T("help-section")),
		),
		SectionBack: key.NewBinding(
			key.WithKeys("shift+tab"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", tr.T("help-toggle")),
		),
		BriUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+/-", tr.T("help-brightness")),
		),
		BriDown: key.NewBinding(
			key.WithKeys("-", "_"),
		),
		HueLeft: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h/l", tr.T("help-hue")),
		),
		HueRight: key.NewBinding(
			key.WithKeys("l"),
		),
		SatDown: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s/S", tr.T("help-saturation")),
		),
		SatUp: key.NewBinding(
			key.WithKeys("S"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", tr.T("help-reload")),
		),
		More: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", tr.T("help-more")),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", tr.T("help-back")),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", tr.T("help-quit")),
		),
		Discover: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", tr.T("help-discover")),
		),
		Pair: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", tr.T("help-pair")),
		),
		Unpair: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", tr.T("unpair-bridge")),
		),
	}
}

// ShortHelp implements help.KeyMap for the paired control view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Section, k.Toggle, k.BriUp, k.HueLeft, k.Reload, k.More, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Section, k.Toggle},
		{k.BriUp, k.HueLeft, k.SatDown, k.Reload},
		{k.More, k.Back, k.Quit},
	}
}

// pairingHelp is the key set shown while unpaired.
type pairingHelp struct{ keys keyMap }

func (p pairingHelp) ShortHelp() []key.Binding {
	return []key.Binding{p.keys.Discover, p.keys.Pair, p.keys.Quit}
}

func (p pairingHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{p.ShortHelp()}
}
