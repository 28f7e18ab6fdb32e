package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fifteen/internal/config"
	"github.com/vovakirdan/fifteen/internal/core"
)

// PresetOption is one line of the board size picker.
type PresetOption struct {
	Label  string
	Preset config.Preset // Empty keeps the loaded configuration
}

// presetOptions lists the picker lines for a configured board of w x h.
func presetOptions(w, h int) []PresetOption {
	opts := []PresetOption{{Label: fmt.Sprintf("Configured (%dx%d)", w, h)}}
	for _, p := range config.Presets {
		side := config.GridForPreset(p)
		name := strings.ToUpper(string(p[:1])) + string(p[1:])
		opts = append(opts, PresetOption{
			Label:  fmt.Sprintf("%s (%dx%d)", name, side, side),
			Preset: p,
		})
	}
	return opts
}

// PresetModel lets the user pick a board size before a configurable game.
type PresetModel struct {
	options  []PresetOption
	cursor   int
	width    int
	height   int
	keys     MenuKeyMap
	help     help.Model
	selected *PresetOption
	quitting bool
	back     bool
}

// NewPresetModel creates a picker for a configured board of w x h.
func NewPresetModel(width, height, w, h int) PresetModel {
	hm := help.New()
	hm.Width = width
	return PresetModel{
		options: presetOptions(w, h),
		width:   width,
		height:  height,
		keys:    DefaultMenuKeyMap(),
		help:    hm,
	}
}

// Init initializes the model.
func (m PresetModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m PresetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m PresetModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		opt := m.options[m.cursor]
		m.selected = &opt
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the picker.
func (m PresetModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText("BOARD SIZE", m.width))
	b.WriteString("\n\n")

	for i, opt := range m.options {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+opt.Label, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	return b.String()
}

// Selected returns the chosen option, or nil if the user backed out.
func (m PresetModel) Selected() *PresetOption {
	return m.selected
}

// RunPresetSelector asks for a board size. It returns nil when the user goes
// back or quits.
func RunPresetSelector(cfg core.RuntimeConfig, w, h int) (*PresetOption, error) {
	p := tea.NewProgram(
		NewPresetModel(cfg.ScreenW, cfg.ScreenH, w, h),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(PresetModel)
	if !ok {
		return nil, nil
	}
	return m.Selected(), nil
}
