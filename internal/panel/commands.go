package panel

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/clockworks/huepanel/internal/bridge"
	"github.com/clockworks/huepanel/internal/color"
)

func (m *Model) discoverCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		address, err := svc.Session().Discover(context.Background())
		return discoveryFinishedMsg{address: address, err: err}
	}
}

func (m *Model) pairCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		username, err := svc.Session().Pair(context.Background())
		return pairFinishedMsg{username: username, err: err}
	}
}

func (m *Model) unpairCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return unpairedMsg{err: svc.Session().Unpair()}
	}
}

func (m *Model) loadCatalogCmd(force bool) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		catalog, err := svc.Catalog(context.Background(), force)
		return catalogLoadedMsg{catalog: catalog, err: err}
	}
}

func (m *Model) toggleLightCmd(id int, on bool) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return writeDoneMsg{err: svc.SetLightOn(context.Background(), id, on)}
	}
}

func (m *Model) toggleGroupCmd(id int, on bool) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return writeDoneMsg{err: svc.SetGroupOn(context.Background(), id, on)}
	}
}

func (m *Model) applyLightBrightnessCmd(id int, bri uint8) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return writeDoneMsg{err: svc.SetLightBrightness(context.Background(), id, bri)}
	}
}

func (m *Model) applyGroupBrightnessCmd(id int, bri uint8) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return writeDoneMsg{err: svc.SetGroupBrightness(context.Background(), id, bri)}
	}
}

func (m *Model) applyLightColorCmd(id int, c color.HSV) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return writeDoneMsg{err: svc.SetLightColor(context.Background(), id, c)}
	}
}

func (m *Model) applyGroupColorCmd(id int, c color.HSV) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return writeDoneMsg{err: svc.SetGroupColor(context.Background(), id, c)}
	}
}

func (m *Model) recallSceneCmd(sc bridge.Scene) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		err := svc.RecallScene(context.Background(), sc.ID, sc.GroupID)
		return sceneRecalledMsg{name: sc.Name, err: err}
	}
}

// settleCmd waits out the post-recall settle delay before a reload, so the
// bridge's transition ramp is not captured as the final state.
func (m *Model) settleCmd() tea.Cmd {
	return tea.Tick(m.sceneSettle, func(time.Time) tea.Msg {
		return settleElapsedMsg{}
	})
}

// debounceBrightnessCmd schedules the end of a brightness quiet period.
func (m *Model) debounceBrightnessCmd(key string, gen uint64) tea.Cmd {
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return applyBrightnessMsg{key: key, gen: gen}
	})
}

// debounceColorCmd schedules the end of a color quiet period.
func (m *Model) debounceColorCmd(key string, gen uint64) tea.Cmd {
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return applyColorMsg{key: key, gen: gen}
	})
}

// waitForUpdateCmd blocks on the event stream channel and re-arms after
// every received update.
func (m *Model) waitForUpdateCmd() tea.Cmd {
	ch := m.updates
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		update, ok := <-ch
		if !ok {
			return streamClosedMsg{}
		}
		return lightUpdateMsg(update)
	}
}
