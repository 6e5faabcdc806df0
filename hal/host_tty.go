//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RunTTY shows the panel in the terminal, drawn with half-block glyphs.
// Log output must not go to the terminal while it runs.
func RunTTY(ctx context.Context, cfg HostConfig, newApp func(HAL) func() error, hz int) error {
	if hz <= 0 {
		hz = 30
	}
	h := newHost(cfg)
	m := &ttyModel{
		h:        h,
		step:     newApp(h),
		interval: time.Second / time.Duration(hz),
		frame:    make([]byte, len(h.fb.buf)),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
		help: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return m.err
}

type ttyTick struct{}

type ttyModel struct {
	h        *hostHAL
	step     func() error
	interval time.Duration

	frame  []byte
	frames uint64
	err    error

	panel lipgloss.Style
	help  lipgloss.Style
}

var ttyKeymap = map[string]KeyCode{
	"up":        KeyUp,
	"k":         KeyUp,
	"down":      KeyDown,
	"j":         KeyDown,
	"left":      KeyLeft,
	"h":         KeyLeft,
	"right":     KeyRight,
	"l":         KeyRight,
	"enter":     KeyEnter,
	" ":         KeyEnter,
	"esc":       KeyBack,
	"backspace": KeyBack,
}

func (m *ttyModel) Init() tea.Cmd { return m.tick() }

func (m *ttyModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return ttyTick{} })
}

func (m *ttyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch s := msg.String(); s {
		case "ctrl+c", "q":
			return m, tea.Quit
		default:
			if code, ok := ttyKeymap[s]; ok {
				m.h.kbd.push(code)
			}
		}
	case ttyTick:
		if m.step != nil {
			if err := m.step(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
		m.frames = m.h.fb.Snapshot(m.frame)
		return m, m.tick()
	}
	return m, nil
}

func (m *ttyModel) View() string {
	fb := m.h.fb
	return lipgloss.JoinVertical(lipgloss.Left,
		m.panel.Render(Blocks(m.frame, fb.width, fb.height)),
		m.help.Render("arrows/hjkl move  enter select  esc back  q quit"),
	)
}
