package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/tiltball/internal/session"
	"github.com/san-kum/tiltball/internal/tilt"
)

const (
	historyCapacity = 120
	maxTilt         = 90.0
)

type TickMsg time.Time

type permissionMsg struct {
	perm session.Permission
}

type Options struct {
	FPS      int
	Width    int
	Height   int
	TiltStep float64
	Theme    string
}

// Model renders a session and plays the role of the device: arrow keys
// tilt it and every tick emits one orientation sample on the feed.
type Model struct {
	ctx     context.Context
	sess    *session.Session
	feed    *session.Feed
	gate    *session.PromptGate
	props   tilt.Properties
	opts    Options
	canvas  *Canvas
	theme   Theme
	styles  styles
	beta    float64
	gamma   float64
	running bool
	status  string
	speeds  []float64
}

// NewModel wires a model to its session. gate may be nil when the session
// needs no prompt.
func NewModel(ctx context.Context, sess *session.Session, feed *session.Feed, gate *session.PromptGate, opts Options) Model {
	theme := GetTheme(opts.Theme)
	props := sess.Properties()
	return Model{
		ctx:     ctx,
		sess:    sess,
		feed:    feed,
		gate:    gate,
		props:   props,
		opts:    opts,
		canvas:  NewCanvas(opts.Width, opts.Height),
		theme:   theme,
		styles:  newStyles(theme, props.Color),
		running: true,
		status:  "press p to enable motion",
		speeds:  make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) requestPermission() tea.Cmd {
	sess, ctx := m.sess, m.ctx
	return func() tea.Msg {
		return permissionMsg{perm: sess.RequestPermission(ctx)}
	}
}

// Update handles input events and feeds the session.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.sess.Close()
			return m, tea.Quit
		case "p", "enter":
			if m.sess.Permission() == session.Pending {
				return m, nil
			}
			if m.gate != nil {
				m.status = "allow motion access? (y/n)"
			}
			m.speeds = m.speeds[:0]
			return m, m.requestPermission()
		case "y":
			if m.gate != nil {
				m.gate.Answer(session.OutcomeGranted)
			}
		case "n":
			if m.gate != nil {
				m.gate.Answer(session.OutcomeDenied)
			}
		case "up", "k":
			m.beta = max(-maxTilt, m.beta-m.opts.TiltStep)
		case "down", "j":
			m.beta = min(maxTilt, m.beta+m.opts.TiltStep)
		case "left", "h":
			m.gamma = max(-maxTilt, m.gamma-m.opts.TiltStep)
		case "right", "l":
			m.gamma = min(maxTilt, m.gamma+m.opts.TiltStep)
		case "0":
			m.beta, m.gamma = 0, 0
		case " ":
			m.running = !m.running
		case "t":
			m.theme = NextTheme(m.theme)
			m.styles = newStyles(m.theme, m.props.Color)
		}
	case permissionMsg:
		m.status = m.permissionStatus(msg.perm)
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) permissionStatus(p session.Permission) string {
	if err := m.sess.Err(); err != nil {
		return err.Error()
	}
	if out := m.sess.Outcome(); out != "" {
		return out
	}
	return p.String()
}

func (m *Model) step() {
	m.feed.Emit(tilt.Sample{Beta: tilt.Degrees(m.beta), Gamma: tilt.Degrees(m.gamma)})
	if m.sess.Permission() != session.Granted {
		return
	}
	v := m.sess.Snapshot().Velocity
	m.speeds = append(m.speeds, v.X*v.X+v.Y*v.Y)
	if len(m.speeds) > historyCapacity {
		m.speeds = m.speeds[1:]
	}
}

// project maps percentage coordinates to canvas sub-pixels.
func (m Model) project(c tilt.Coordinate) (int, int) {
	w, h := m.canvas.PixelSize()
	return int(c.X / 100 * float64(w-1)), int(c.Y / 100 * float64(h-1))
}

func (m Model) ballRadius() int {
	_, h := m.canvas.PixelSize()
	r := int(m.props.Radius / 1000 * float64(h))
	return max(1, r)
}

func (m Model) draw(st tilt.State) string {
	m.canvas.Clear()
	m.canvas.Frame()
	x, y := m.project(st.Position)
	m.canvas.FillDisc(x, y, m.ballRadius())
	return m.styles.ball.Render(m.canvas.String())
}

func (m Model) readout(name string, v float64) string {
	return m.styles.label.Render(name) + m.styles.value.Render(fmt.Sprintf("%.2f", v)) + "\n"
}

// View renders the TUI interface.
func (m Model) View() string {
	st := m.sess.Snapshot()
	canvasView := m.styles.canvas.Render(m.draw(st))

	var s strings.Builder
	s.WriteString(m.styles.header.Render("TILTBALL") + "\n")

	perm := m.sess.Permission()
	permStyle := m.styles.warn
	switch perm {
	case session.Granted:
		permStyle = m.styles.ok
	case session.Denied:
		permStyle = m.styles.bad
	}
	s.WriteString(m.styles.label.Render("motion") + permStyle.Render(perm.String()) + "\n")
	s.WriteString(m.styles.label.Render("phase") + m.styles.value.Render(m.sess.Phase().String()) + "\n")
	if !m.running {
		s.WriteString(m.styles.warn.Render("PAUSED") + "\n")
	}
	s.WriteString(m.styles.value.Render(m.status) + "\n\n")

	s.WriteString(m.readout("x", st.Position.X))
	s.WriteString(m.readout("y", st.Position.Y))
	s.WriteString(m.readout("velocity.x", st.Velocity.X))
	s.WriteString(m.readout("velocity.y", st.Velocity.Y))
	s.WriteString("\n")

	s.WriteString(m.styles.label.Render("beta") + TiltGauge(m.beta, maxTilt, 15) + fmt.Sprintf(" %+.0f°\n", m.beta))
	s.WriteString(m.styles.label.Render("gamma") + TiltGauge(m.gamma, maxTilt, 15) + fmt.Sprintf(" %+.0f°\n", m.gamma))

	if len(m.speeds) > 1 {
		chart := asciigraph.Plot(m.speeds, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("speed²"))
		s.WriteString(m.styles.graph.Render(chart) + "\n")
	}

	s.WriteString(m.styles.help.Render("P:Motion ←↑↓→:Tilt 0:Level\nSP:Pause T:Theme Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.styles.panel.Render(s.String()))
}
