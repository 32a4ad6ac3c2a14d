package tui

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/reentry/internal/dynamo"
	"github.com/san-kum/reentry/internal/physics"
	"github.com/san-kum/reentry/internal/trajectory"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type traceMsg trajectory.Trace

func waitTrace(ch <-chan trajectory.Trace) tea.Cmd {
	return func() tea.Msg {
		t, ok := <-ch
		if !ok {
			return traceMsg{Canceled: true}
		}
		return traceMsg(t)
	}
}

// Model watches one asynchronous run. Samples arrive through a Feed that
// must be registered as an observer on the runner; the final Trace arrives
// on the RunAsync channel.
type Model struct {
	title  string
	body   physics.Body
	start  dynamo.Vec2
	feed   *Feed
	traces <-chan trajectory.Trace
	cancel context.CancelFunc

	view     FeedView
	trace    *trajectory.Trace
	stopping bool

	width  int
	height int
}

func NewModel(title string, body physics.Body, start dynamo.Vec2, feed *Feed, traces <-chan trajectory.Trace, cancel context.CancelFunc) Model {
	return Model{
		title:  title,
		body:   body,
		start:  start,
		feed:   feed,
		traces: traces,
		cancel: cancel,
		width:  80,
		height: 24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), waitTrace(m.traces))
}

// Trace returns the delivered trace, if the run has finished.
func (m Model) Trace() (trajectory.Trace, bool) {
	if m.trace == nil {
		return trajectory.Trace{}, false
	}
	return *m.trace, true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		m.view = m.feed.View()
		if m.trace == nil {
			return m, tick()
		}
		return m, nil
	case traceMsg:
		t := trajectory.Trace(msg)
		m.trace = &t
		m.view = m.feed.View()
		if m.stopping {
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		if m.trace != nil || m.stopping {
			return m, tea.Quit
		}
		m.stopping = true
		m.cancel()
		return m, nil
	case "+", "=":
		m.feed.SetDelay(m.feed.Delay() / 2)
	case "-", "_":
		d := m.feed.Delay() * 2
		if d == 0 {
			d = time.Millisecond
		}
		m.feed.SetDelay(d)
	case "s":
		m.feed.SetDelay(0)
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("\n   %s %s  %s\n", m.statusIcon(), cyan.Render(m.title), m.statusText()))

	s := m.view.Latest
	h0 := m.start.Len() - m.body.Radius()
	progress := 0.0
	if h0 > 0 && m.view.Count > 0 {
		progress = math.Max(0, math.Min(1, (h0-s.Altitude)/h0))
	}
	barWidth := 36
	filled := int(progress * float64(barWidth))
	bar := cyan.Render(strings.Repeat("━", filled)) + dimmer.Render(strings.Repeat("─", barWidth-filled))
	b.WriteString(fmt.Sprintf("   %s %s  %s\n\n", bar,
		dim.Render(fmt.Sprintf("step %d  t=%.1fs", m.view.Count, s.Time)),
		dim.Render(m.pace())))

	cw := m.width - 6
	ch := m.height - 14
	if cw < 40 {
		cw = 40
	}
	if ch < 8 {
		ch = 8
	}
	for _, row := range strings.Split(strings.TrimRight(m.plot(cw, ch), "\n"), "\n") {
		b.WriteString("   " + row + "\n")
	}

	b.WriteString("\n   ")
	b.WriteString(dim.Render("alt ") + white.Render(fmt.Sprintf("%.2fkm", s.Altitude/1000)) + "  ")
	b.WriteString(dim.Render("speed ") + white.Render(fmt.Sprintf("%.3fkm/s", s.Velocity.Len()/1000)) + "  ")
	b.WriteString(dim.Render("T ") + white.Render(fmt.Sprintf("%.0fK", s.Temperature)) + "  ")
	b.WriteString(dim.Render("q ") + white.Render(fmt.Sprintf("%.1fkPa", s.DynamicPressure()/1000)) + "\n")

	if len(m.view.Temps) > 1 {
		b.WriteString(fmt.Sprintf("   %s %s  %s\n", dim.Render("T"),
			magenta.Render(sparkline(m.view.Temps, 36)),
			dim.Render(fmt.Sprintf("peak %.0fK", m.view.PeakTemp))))
	}

	if line := m.outcome(); line != "" {
		b.WriteString("\n   " + line + "\n")
	}

	b.WriteString("\n" + dim.Render("   ±pace  s skip  q quit") + "\n")
	return b.String()
}

func (m Model) statusIcon() string {
	switch {
	case m.trace == nil && m.stopping:
		return yellow.Render("○")
	case m.trace == nil:
		return green.Render("●")
	case m.trace.Err != nil:
		return magenta.Render("✕")
	default:
		return cyan.Render("◆")
	}
}

func (m Model) statusText() string {
	switch {
	case m.trace == nil && m.stopping:
		return yellow.Render("stopping")
	case m.trace == nil:
		return green.Render("running")
	case m.trace.Canceled:
		return yellow.Render("cancelled")
	case m.trace.Err != nil:
		return magenta.Render(m.trace.Termination.String())
	default:
		return green.Render(m.trace.Termination.String())
	}
}

func (m Model) outcome() string {
	if m.trace == nil {
		return ""
	}
	if m.trace.Err != nil {
		return magenta.Render(m.trace.Err.Error())
	}
	if l := m.trace.Landing; l != nil {
		return fmt.Sprintf("%s %s  %s %s  %s %s",
			dim.Render("landing"), white.Render(fmt.Sprintf("%.3f°", l.Point.Angle)),
			dim.Render("impact"), white.Render(fmt.Sprintf("%.2fs", l.ImpactTime)),
			dim.Render("T"), white.Render(fmt.Sprintf("%.0fK", l.Temperature)))
	}
	return ""
}

func (m Model) pace() string {
	d := m.feed.Delay()
	if d == 0 {
		return "max pace"
	}
	return fmt.Sprintf("%s/step", d)
}

// plot draws altitude against downrange distance from the start point,
// with the surface at the bottom and the atmosphere ceiling dotted.
func (m Model) plot(w, h int) string {
	c := newCanvas(w, h)
	pts := append(m.view.Trail, m.view.Latest.Position)
	if m.view.Count == 0 {
		pts = []dynamo.Vec2{m.start}
	}

	xs := make([]float64, 0, len(pts)+1)
	ys := make([]float64, 0, len(pts)+1)
	x0, y0 := project(m.body, m.start, m.start)
	xs, ys = append(xs, x0), append(ys, y0)
	for _, p := range pts {
		x, y := project(m.body, m.start, p)
		xs, ys = append(xs, x), append(ys, y)
	}

	xmin, xmax := bounds(xs)
	_, ymax := bounds(ys)
	if m.body.HasAtmosphere() {
		ymax = math.Max(ymax, m.body.AtmosphereHeight())
	}
	ymax *= 1.05
	f := newFrame(c, xmin, xmax, 0, ymax)

	f.hline(0, 1)
	if m.body.HasAtmosphere() {
		f.hline(m.body.AtmosphereHeight(), 4)
	}
	for i := 1; i < len(xs); i++ {
		f.line(xs[i-1], math.Max(ys[i-1], 0), xs[i], math.Max(ys[i], 0))
	}
	return c.String()
}

// project returns the downrange arc length along the surface from start to
// p, and the altitude of p.
func project(b physics.Body, start, p dynamo.Vec2) (float64, float64) {
	cross := start.X*p.Y - start.Y*p.X
	theta := math.Atan2(cross, start.Dot(p))
	return -theta * b.Radius(), p.Len() - b.Radius()
}

func bounds(v []float64) (float64, float64) {
	lo, hi := v[0], v[0]
	for _, x := range v {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return lo, hi
}

func sparkline(data []float64, width int) string {
	if len(data) == 0 {
		return ""
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	minVal, maxVal := bounds(data)
	rang := maxVal - minVal
	if rang == 0 {
		rang = 1
	}
	step := len(data) / width
	if step < 1 {
		step = 1
	}
	var sb strings.Builder
	for i := 0; i < width && i*step < len(data); i++ {
		v := data[i*step]
		idx := int((v - minVal) / rang * 7)
		if idx > 7 {
			idx = 7
		}
		if idx < 0 {
			idx = 0
		}
		sb.WriteRune(chars[idx])
	}
	return sb.String()
}

// RunTrace starts r asynchronously and shows it until the user quits. feed
// must already be registered on r with trajectory.WithObserver. Quitting
// early cancels the run and returns the partial trace.
func RunTrace(ctx context.Context, title string, r *trajectory.Runner, feed *Feed) (trajectory.Trace, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	traces := r.RunAsync(ctx)
	m := NewModel(title, r.Body(), r.Snapshot().Position, feed, traces, cancel)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		cancel()
		<-traces
		return trajectory.Trace{}, err
	}
	if t, ok := final.(Model).Trace(); ok {
		return t, nil
	}
	cancel()
	if t, ok := <-traces; ok {
		return t, nil
	}
	return trajectory.Trace{Canceled: true}, nil
}
