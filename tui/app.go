// ABOUTME: Top-level Bubble Tea AppModel for the terminal dashboard: site cycling, payload range keys, and panels.
// ABOUTME: Every control change recomputes both view models directly; the two computations are independent.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/2389-research/launchdash/aggregate"
	"github.com/2389-research/launchdash/dataset"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Payload slider limits and step, matching the web controls.
const (
	SliderMin  = 0.0
	SliderMax  = 10000.0
	SliderStep = 1000.0
)

// AppModel is the top-level Bubble Tea model for the dashboard.
type AppModel struct {
	ds    *dataset.Dataset
	sites []string // index 0 is aggregate.AllSites

	siteIdx int
	low     float64
	high    float64

	boundsLow  float64
	boundsHigh float64

	filter    aggregate.FilterState
	pie       PiePanelModel
	scatter   ScatterPanelModel
	statusBar StatusBarModel

	keys KeyMap
	help help.Model

	width  int
	height int
}

// NewAppModel creates an AppModel showing all sites over the full payload
// range of d.
func NewAppModel(d *dataset.Dataset) AppModel {
	lo, hi, err := dataset.Bounds(d)
	if err != nil {
		lo, hi = 0, 0
	}
	source := ""
	records := 0
	var sites []string
	if d != nil {
		source = d.Source()
		records = d.Len()
		sites = d.Sites()
	}

	m := AppModel{
		ds:         d,
		sites:      append([]string{aggregate.AllSites}, sites...),
		low:        lo,
		high:       hi,
		boundsLow:  lo,
		boundsHigh: hi,
		pie:        NewPiePanelModel(),
		scatter:    NewScatterPanelModel(),
		statusBar:  NewStatusBarModel(source, records),
		keys:       DefaultKeyMap(),
		help:       help.New(),
	}
	m.recompute()
	return m
}

// Filter returns the normalized filter currently displayed.
func (m AppModel) Filter() aggregate.FilterState {
	return m.filter
}

// recompute resolves the controls and refreshes both panels.
func (m *AppModel) recompute() {
	site := m.sites[m.siteIdx]
	payload := []float64{m.low, m.high}

	m.filter = aggregate.Resolve(m.ds, site, payload)
	m.pie.SetViewModel(aggregate.ComputeSiteSummary(m.ds, site))
	m.scatter.SetViewModel(aggregate.ComputeScatterSubset(m.ds, site, payload))
	m.statusBar.SetFilter(m.filter)
}

// Init implements tea.Model.
func (m AppModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.statusBar.SetWidth(msg.Width)
		m.pie.SetBarWidth(msg.Width / 3)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

// handleKeyMsg applies control changes and app-level shortcuts.
func (m AppModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextSite):
		m.siteIdx = (m.siteIdx + 1) % len(m.sites)

	case key.Matches(msg, m.keys.PrevSite):
		m.siteIdx = (m.siteIdx - 1 + len(m.sites)) % len(m.sites)

	case key.Matches(msg, m.keys.LowDown):
		m.low = max(m.low-SliderStep, min(SliderMin, m.boundsLow))

	case key.Matches(msg, m.keys.LowUp):
		m.low = min(m.low+SliderStep, m.high)

	case key.Matches(msg, m.keys.HighDown):
		m.high = max(m.high-SliderStep, m.low)

	case key.Matches(msg, m.keys.HighUp):
		m.high = min(m.high+SliderStep, max(SliderMax, m.boundsHigh))

	case key.Matches(msg, m.keys.Reset):
		m.siteIdx = 0
		m.low, m.high = m.boundsLow, m.boundsHigh

	case key.Matches(msg, m.keys.ToggleAll):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	default:
		return m, nil
	}

	m.recompute()
	return m, nil
}

// View implements tea.Model.
func (m AppModel) View() string {
	if m.ds == nil || m.ds.Len() == 0 {
		return "No launch records loaded.\n"
	}

	var b strings.Builder
	b.WriteString(HeadingStyle.Render("SpaceX Launch Records Dashboard"))
	b.WriteString("\n\n")
	b.WriteString(m.siteSelector())
	b.WriteString("\n\n")

	panels := []string{
		BorderStyle.Render(m.pie.View()),
		BorderStyle.Render(m.scatter.View()),
	}
	if m.width >= 100 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panels...))
	} else {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, panels...))
	}
	b.WriteString("\n")
	b.WriteString(m.statusBar.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// siteSelector renders the dropdown equivalent: every option with the
// current one highlighted.
func (m AppModel) siteSelector() string {
	parts := make([]string, len(m.sites))
	for i, s := range m.sites {
		label := s
		if s == aggregate.AllSites {
			label = aggregate.AllSitesLabel
		}
		if i == m.siteIdx {
			parts[i] = TitleStyle.Render(fmt.Sprintf("[%s]", label))
		} else {
			parts[i] = MutedStyle.Render(label)
		}
	}
	return "Site: " + strings.Join(parts, "  ")
}

// Run starts the dashboard on the terminal and blocks until the user quits
// or ctx is cancelled.
func Run(ctx context.Context, d *dataset.Dataset, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(NewAppModel(d), opts...)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
