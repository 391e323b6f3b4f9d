// Package panel is the interactive front-end: the Go rendition of the
// applet popup. One bubbletea model covers both the pairing flow and the
// lights/groups/scenes control view; every user action issues one bridge
// call and the result comes back as a message.
package panel

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/clockworks/huepanel/internal/bridge"
	"github.com/clockworks/huepanel/internal/color"
	"github.com/clockworks/huepanel/internal/debounce"
	"github.com/clockworks/huepanel/internal/i18n"
)

// section identifies which collapsible section is expanded. Expanding one
// collapses the others, as the applet behaved.
type section int

const (
	sectionLights section = iota
	sectionGroups
	sectionScenes
)

// Options configures panel behaviour.
type Options struct {
	Debounce       time.Duration
	SceneSettle    time.Duration
	BrightnessStep uint8
	Updates        <-chan bridge.LightUpdate
}

// Model is the root panel model.
type Model struct {
	svc *bridge.Service
	tr  *i18n.Translator

	debounce       time.Duration
	sceneSettle    time.Duration
	brightnessStep uint8
	updates        <-chan bridge.LightUpdate

	// Pairing view state
	paired     bool
	scanning   bool
	pairing    bool
	discovered string

	// Control view state
	catalog  bridge.Catalog
	loading  bool
	section  section
	cursor   int
	moreMenu bool
	status   string
	isError  bool

	briLedger   *debounce.Ledger[uint8]
	colorLedger *debounce.Ledger[color.HSV]

	width   int
	height  int
	keys    keyMap
	help    help.Model
	spinner spinner.Model
}

// New creates the panel model.
func New(svc *bridge.Service, tr *i18n.Translator, opts Options) *Model {
	if opts.Debounce == 0 {
		opts.Debounce = 300 * time.Millisecond
	}
	if opts.SceneSettle == 0 {
		opts.SceneSettle = 10 * time.Second
	}
	if opts.BrightnessStep == 0 {
		opts.BrightnessStep = 16
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(colorAccent))

	return &Model{
		svc:            svc,
		tr:             tr,
		debounce:       opts.Debounce,
		sceneSettle:    opts.SceneSettle,
		brightnessStep: opts.BrightnessStep,
		updates:        opts.Updates,
		paired:         svc.Session().Paired(),
		discovered:     svc.Session().Address(),
		briLedger:      debounce.NewLedger[uint8](),
		colorLedger:    debounce.NewLedger[color.HSV](),
		keys:           newKeyMap(tr),
		help:           help.New(),
		spinner:        s,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.waitForUpdateCmd()}
	if m.paired {
		m.loading = true
		cmds = append(cmds, m.loadCatalogCmd(false))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.scanning || m.pairing || m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case discoveryFinishedMsg:
		m.scanning = false
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.discovered = msg.address
		m.setStatus(m.tr.T("bridge-found", "ip", msg.address))
		return m, nil

	case pairFinishedMsg:
		m.pairing = false
		if msg.err != nil {
			if msg.err == bridge.ErrLinkButtonNotPressed {
				m.setStatusError(m.tr.T("link-button-not-pressed"))
			} else {
				m.setError(msg.err)
			}
			return m, nil
		}
		m.paired = true
		m.loading = true
		m.setStatus("")
		return m, tea.Batch(m.loadCatalogCmd(true), m.spinner.Tick)

	case unpairedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.paired = false
		m.moreMenu = false
		m.discovered = ""
		m.catalog = bridge.Catalog{}
		m.cursor = 0
		m.setStatus(m.tr.T("no-bridge-configured"))
		return m, nil

	case catalogLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.catalog = msg.catalog
		m.clampCursor()
		return m, nil

	case writeDoneMsg:
		if msg.err != nil {
			m.setError(msg.err)
		}
		return m, nil

	case sceneRecalledMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.setStatus(m.tr.T("scene-activated", "name", msg.name))
		return m, m.settleCmd()

	case settleElapsedMsg:
		m.loading = true
		return m, tea.Batch(m.loadCatalogCmd(true), m.spinner.Tick)

	case applyBrightnessMsg:
		return m, m.applyPendingBrightness(msg.key, msg.gen)

	case applyColorMsg:
		return m, m.applyPendingColor(msg.key, msg.gen)

	case lightUpdateMsg:
		m.applyLightUpdate(bridge.LightUpdate(msg))
		return m, m.waitForUpdateCmd()

	case streamClosedMsg:
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		if cmds := m.flushPending(); len(cmds) > 0 {
			return m, tea.Sequence(append(cmds, tea.Quit)...)
		}
		return m, tea.Quit
	}

	if m.moreMenu {
		return m.handleMoreMenuKey(msg)
	}
	if !m.paired {
		return m.handlePairingKey(msg)
	}
	return m.handleControlKey(msg)
}

func (m *Model) handleMoreMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.More):
		m.moreMenu = false
	case key.Matches(msg, m.keys.Unpair):
		return m, m.unpairCmd()
	}
	return m, nil
}

func (m *Model) handlePairingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Discover):
		if m.scanning {
			return m, nil
		}
		m.scanning = true
		m.setStatus(m.tr.T("searching-for-bridges"))
		return m, tea.Batch(m.discoverCmd(), m.spinner.Tick)
	case key.Matches(msg, m.keys.Pair):
		if m.pairing || m.discovered == "" {
			return m, nil
		}
		m.pairing = true
		m.setStatus(m.tr.T("pairing"))
		return m, tea.Batch(m.pairCmd(), m.spinner.Tick)
	}
	return m, nil
}

func (m *Model) handleControlKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.More):
		m.moreMenu = true
	case key.Matches(msg, m.keys.Section):
		m.section = (m.section + 1) % 3
		m.cursor = 0
	case key.Matches(msg, m.keys.SectionBack):
		m.section = (m.section + 2) % 3
		m.cursor = 0
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.sectionLen()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, tea.Batch(m.loadCatalogCmd(true), m.spinner.Tick)
	case key.Matches(msg, m.keys.Toggle):
		return m, m.toggleSelected()
	case key.Matches(msg, m.keys.BriUp):
		return m, m.adjustBrightness(int(m.brightnessStep))
	case key.Matches(msg, m.keys.BriDown):
		return m, m.adjustBrightness(-int(m.brightnessStep))
	case key.Matches(msg, m.keys.HueLeft):
		return m, m.adjustColor(-hueStep, 0)
	case key.Matches(msg, m.keys.HueRight):
		return m, m.adjustColor(hueStep, 0)
	case key.Matches(msg, m.keys.SatDown):
		return m, m.adjustColor(0, -satStep)
	case key.Matches(msg, m.keys.SatUp):
		return m, m.adjustColor(0, satStep)
	}
	return m, nil
}

// hueStep and satStep are the per-keypress color increments; a full hue
// wheel is 16 presses.
const (
	hueStep = 4096
	satStep = 16
)

func (m *Model) sectionLen() int {
	switch m.section {
	case sectionLights:
		return len(m.catalog.Lights)
	case sectionGroups:
		return len(m.catalog.Groups)
	default:
		return len(m.catalog.Scenes)
	}
}

func (m *Model) clampCursor() {
	if n := m.sectionLen(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) selectedLight() *bridge.Light {
	if m.section != sectionLights || m.cursor >= len(m.catalog.Lights) {
		return nil
	}
	return &m.catalog.Lights[m.cursor]
}

func (m *Model) selectedGroup() *bridge.Group {
	if m.section != sectionGroups || m.cursor >= len(m.catalog.Groups) {
		return nil
	}
	return &m.catalog.Groups[m.cursor]
}

func (m *Model) selectedScene() *bridge.Scene {
	if m.section != sectionScenes || m.cursor >= len(m.catalog.Scenes) {
		return nil
	}
	return &m.catalog.Scenes[m.cursor]
}

// toggleSelected flips the selected light or group, or recalls the
// selected scene. The local state flips immediately; the write happens
// async.
func (m *Model) toggleSelected() tea.Cmd {
	switch m.section {
	case sectionLights:
		l := m.selectedLight()
		if l == nil || !l.HasState {
			return nil
		}
		l.On = !l.On
		return m.toggleLightCmd(l.ID, l.On)

	case sectionGroups:
		g := m.selectedGroup()
		if g == nil || !g.HasState {
			return nil
		}
		g.On = !g.On
		// Fan the new state out to member lights so the lights section
		// agrees without a reload
		for _, id := range g.LightIDs {
			if l := m.catalog.LightByID(id); l != nil {
				l.On = g.On
			}
		}
		return m.toggleGroupCmd(g.ID, g.On)

	default:
		sc := m.selectedScene()
		if sc == nil {
			return nil
		}
		return m.recallSceneCmd(*sc)
	}
}

// adjustBrightness nudges the selected light or group and schedules the
// debounced write.
func (m *Model) adjustBrightness(delta int) tea.Cmd {
	switch m.section {
	case sectionLights:
		l := m.selectedLight()
		if l == nil || !l.HasState {
			return nil
		}
		l.Bri = color.ClampBri(int(l.Bri) + delta)
		l.Color.Bri = l.Bri
		key := fmt.Sprintf("light/%d", l.ID)
		gen := m.briLedger.Put(key, l.Bri)
		return m.debounceBrightnessCmd(key, gen)

	case sectionGroups:
		g := m.selectedGroup()
		if g == nil || !g.HasState {
			return nil
		}
		g.Bri = color.ClampBri(int(g.Bri) + delta)
		g.Color.Bri = g.Bri
		for _, id := range g.LightIDs {
			if l := m.catalog.LightByID(id); l != nil {
				l.Bri = g.Bri
				l.Color.Bri = g.Bri
			}
		}
		key := fmt.Sprintf("group/%d", g.ID)
		gen := m.briLedger.Put(key, g.Bri)
		return m.debounceBrightnessCmd(key, gen)
	}
	return nil
}

// adjustColor nudges hue/saturation of the selected light or group and
// schedules the debounced write.
func (m *Model) adjustColor(hueDelta, satDelta int) tea.Cmd {
	switch m.section {
	case sectionLights:
		l := m.selectedLight()
		if l == nil || !l.HasState {
			return nil
		}
		l.Color.Hue = color.ShiftHue(l.Color.Hue, hueDelta)
		l.Color.Sat = color.ShiftSat(l.Color.Sat, satDelta)
		key := fmt.Sprintf("light/%d", l.ID)
		gen := m.colorLedger.Put(key, l.Color)
		return m.debounceColorCmd(key, gen)

	case sectionGroups:
		g := m.selectedGroup()
		if g == nil || !g.HasState {
			return nil
		}
		g.Color.Hue = color.ShiftHue(g.Color.Hue, hueDelta)
		g.Color.Sat = color.ShiftSat(g.Color.Sat, satDelta)
		for _, id := range g.LightIDs {
			if l := m.catalog.LightByID(id); l != nil {
				l.Color = g.Color
			}
		}
		key := fmt.Sprintf("group/%d", g.ID)
		gen := m.colorLedger.Put(key, g.Color)
		return m.debounceColorCmd(key, gen)
	}
	return nil
}

// splitKey parses a ledger key like "light/3" or "group/2".
func splitKey(key string) (kind string, id int, ok bool) {
	if _, err := fmt.Sscanf(key, "light/%d", &id); err == nil {
		return "light", id, true
	}
	if _, err := fmt.Sscanf(key, "group/%d", &id); err == nil {
		return "group", id, true
	}
	return "", 0, false
}

// applyPendingBrightness issues the write for a quiet period that ended
// with its generation still current.
func (m *Model) applyPendingBrightness(key string, gen uint64) tea.Cmd {
	bri, ok := m.briLedger.Take(key, gen)
	if !ok {
		return nil
	}
	kind, id, ok := splitKey(key)
	if !ok {
		return nil
	}
	if kind == "light" {
		return m.applyLightBrightnessCmd(id, bri)
	}
	return m.applyGroupBrightnessCmd(id, bri)
}

// applyPendingColor issues the color write for a still-current generation.
func (m *Model) applyPendingColor(key string, gen uint64) tea.Cmd {
	c, ok := m.colorLedger.Take(key, gen)
	if !ok {
		return nil
	}
	kind, id, ok := splitKey(key)
	if !ok {
		return nil
	}
	if kind == "light" {
		return m.applyLightColorCmd(id, c)
	}
	return m.applyGroupColorCmd(id, c)
}

// flushPending turns values still inside their quiet period into writes,
// so quitting mid-scrub does not lose the last change.
func (m *Model) flushPending() []tea.Cmd {
	var cmds []tea.Cmd
	for k, bri := range m.briLedger.Flush() {
		kind, id, ok := splitKey(k)
		if !ok {
			continue
		}
		if kind == "light" {
			cmds = append(cmds, m.applyLightBrightnessCmd(id, bri))
		} else {
			cmds = append(cmds, m.applyGroupBrightnessCmd(id, bri))
		}
	}
	for k, c := range m.colorLedger.Flush() {
		kind, id, ok := splitKey(k)
		if !ok {
			continue
		}
		if kind == "light" {
			cmds = append(cmds, m.applyLightColorCmd(id, c))
		} else {
			cmds = append(cmds, m.applyGroupColorCmd(id, c))
		}
	}
	return cmds
}

// applyLightUpdate folds an event stream observation into the catalog.
// Groups borrowing their slider position from the updated light follow.
func (m *Model) applyLightUpdate(u bridge.LightUpdate) {
	l := m.catalog.LightByID(u.LightID)
	if l == nil {
		return
	}
	if u.On != nil {
		l.On = *u.On
	}
	if u.Bri != nil {
		l.Bri = *u.Bri
		l.Color.Bri = *u.Bri
	}

	for i := range m.catalog.Groups {
		g := &m.catalog.Groups[i]
		if len(g.LightIDs) > 0 && g.LightIDs[0] == u.LightID {
			g.Bri = l.Bri
			g.Color = l.Color
		}
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.isError = false
}

func (m *Model) setStatusError(s string) {
	m.status = s
	m.isError = true
}

func (m *Model) setError(err error) {
	m.setStatusError(m.tr.T("error", "error", err.Error()))
}
