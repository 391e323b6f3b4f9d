package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/clockworks/huepanel/internal/bridge"
	"github.com/clockworks/huepanel/internal/color"
)

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(m.tr.T("app-title")))
	if m.paired {
		b.WriteString("  ")
		b.WriteString(styles.Muted.Render(m.tr.T("bridge", "ip", m.svc.Session().Address())))
	}
	b.WriteString("\n\n")

	switch {
	case m.moreMenu:
		b.WriteString(m.viewMoreMenu())
	case !m.paired:
		b.WriteString(m.viewPairing())
	default:
		b.WriteString(m.viewControl())
	}

	b.WriteString("\n")
	if m.status != "" {
		if m.isError {
			b.WriteString(styles.Error.Render(m.status))
		} else {
			b.WriteString(styles.Muted.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.viewHelp())

	return b.String()
}

func (m *Model) viewPairing() string {
	var b strings.Builder

	switch {
	case m.scanning:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(styles.Normal.Render(m.tr.T("searching-for-bridges")))
		b.WriteString("\n")
	case m.pairing:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(styles.Normal.Render(m.tr.T("pairing")))
		b.WriteString("\n")
	case m.discovered != "":
		b.WriteString(styles.Normal.Render(m.tr.T("bridge-found", "ip", m.discovered)))
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render(m.tr.T("bridge-found-description")))
		b.WriteString("\n")
	default:
		b.WriteString(styles.Muted.Render(m.tr.T("no-bridge-configured")))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *Model) viewControl() string {
	if m.loading && len(m.catalog.Lights) == 0 && len(m.catalog.Groups) == 0 {
		return m.spinner.View() + " " + styles.Muted.Render(m.tr.T("loading")) + "\n"
	}

	var b strings.Builder
	b.WriteString(m.viewSection(sectionLights, m.tr.T("lights"), m.tr.T("no-lights-found")))
	b.WriteString(m.viewSection(sectionGroups, m.tr.T("groups"), m.tr.T("no-groups-found")))
	b.WriteString(m.viewSection(sectionScenes, m.tr.T("scenes"), m.tr.T("no-scenes-found")))
	return b.String()
}

// viewSection renders one section header plus, when the section is the
// expanded one, its rows.
func (m *Model) viewSection(s section, title, empty string) string {
	var b strings.Builder

	marker := "▸"
	if m.section == s {
		marker = "▾"
	}
	b.WriteString(styles.Section.Render(marker + " " + title))
	b.WriteString("\n")

	if m.section != s {
		return b.String()
	}

	switch s {
	case sectionLights:
		if len(m.catalog.Lights) == 0 {
			b.WriteString("  " + styles.Muted.Render(empty) + "\n")
			break
		}
		for i := range m.catalog.Lights {
			b.WriteString(m.viewLightRow(&m.catalog.Lights[i], i == m.cursor))
		}
	case sectionGroups:
		if len(m.catalog.Groups) == 0 {
			b.WriteString("  " + styles.Muted.Render(empty) + "\n")
			break
		}
		for i := range m.catalog.Groups {
			b.WriteString(m.viewGroupRow(&m.catalog.Groups[i], i == m.cursor))
		}
	case sectionScenes:
		if len(m.catalog.Scenes) == 0 {
			b.WriteString("  " + styles.Muted.Render(empty) + "\n")
			break
		}
		for i := range m.catalog.Scenes {
			b.WriteString(m.viewSceneRow(&m.catalog.Scenes[i], i == m.cursor))
		}
	}

	return b.String()
}

func (m *Model) viewLightRow(l *bridge.Light, selected bool) string {
	if !l.HasState {
		return rowLine(selected, styles.Muted.Render(m.tr.T("light-has-no-state", "name", l.Name)))
	}
	return rowLine(selected, statefulRow(m.tr.T("on"), m.tr.T("off"), l.Name, l.On, l.Bri, l.Color))
}

func (m *Model) viewGroupRow(g *bridge.Group, selected bool) string {
	if !g.HasState {
		return rowLine(selected, styles.Muted.Render(g.Name))
	}
	return rowLine(selected, statefulRow(m.tr.T("on"), m.tr.T("off"), g.Name, g.On, g.Bri, g.Color))
}

func (m *Model) viewSceneRow(sc *bridge.Scene, selected bool) string {
	label := sc.Name
	if g := m.catalog.GroupByID(sc.GroupID); g != nil {
		label += " " + styles.Muted.Render("("+g.Name+")")
	}
	return rowLine(selected, styles.Normal.Render(label))
}

// statefulRow renders "name  on  42%  ██" for a light or group.
func statefulRow(onLabel, offLabel, name string, on bool, bri uint8, c color.HSV) string {
	state := styles.Off.Render(offLabel)
	if on {
		state = styles.On.Render(onLabel)
	}
	return fmt.Sprintf("%s  %s  %3d%%  %s",
		styles.Normal.Render(name), state, color.BriPercent(bri), swatch(c.Hex()))
}

func rowLine(selected bool, content string) string {
	prefix := "  "
	if selected {
		prefix = styles.Selected.Render("> ")
	}
	return prefix + content + "\n"
}

func (m *Model) viewMoreMenu() string {
	lines := []string{
		styles.Muted.Render(m.tr.T("bridge-ip")+": ") + styles.Normal.Render(m.svc.Session().Address()),
		"",
		styles.Danger.Render("u") + " " + styles.Normal.Render(m.tr.T("unpair-bridge")),
	}
	return styles.Box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)) + "\n"
}

func (m *Model) viewHelp() string {
	if !m.paired {
		return m.help.View(pairingHelp{keys: m.keys})
	}
	return m.help.View(m.keys)
}
