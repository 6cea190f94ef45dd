package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/ooblahman/graph-turbulence/internal/field"
	"github.com/ooblahman/graph-turbulence/internal/transport"
)

const (
	heatCols        = 28
	heatRows        = 14
	historyCapacity = 240
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	plotStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

type frameMsg *transport.DataMessage

type streamClosedMsg struct{ err error }

// plotView is the render state for one observable.
type plotView struct {
	id      string
	desc    string
	pal     Palette
	lo, hi  float64
	showBar bool
	pts     [][2]float64
	vals    []float64
	history []float64
	heat    *Heatmap
}

func (p *plotView) push(vals []float64) {
	p.vals = vals
	mean := 0.0
	for _, v := range vals {
		mean += v
	}
	if len(vals) > 0 {
		mean /= float64(len(vals))
	}
	p.history = append(p.history, mean)
	if len(p.history) > historyCapacity {
		p.history = p.history[1:]
	}
}

// Model is the viewer. In local mode it owns sys and advances it each tick;
// in remote mode sub delivers frames and the publisher controls time.
type Model struct {
	desc    string
	plots   []*plotView
	sys     field.Simulation
	sub     *transport.Subscriber
	dt      float64
	fps     int
	t       float64
	running bool
	err     error
}

// NewLocal builds a viewer that steps sys by dt once per frame.
func NewLocal(sys field.Simulation, dt float64, fps int) Model {
	m := Model{
		desc:    sys.Desc(),
		sys:     sys,
		dt:      dt,
		fps:     fps,
		running: true,
	}
	for _, o := range sys.Observables() {
		m.plots = append(m.plots, newPlotView(
			o.ID(), o.Desc(), o.Render(), localPoints(o)))
	}
	return m
}

// NewRemote builds a viewer fed by sub. It consumes the publisher's init
// message before returning.
func NewRemote(sub *transport.Subscriber, fps int) (Model, error) {
	raw, err := sub.Next()
	if err != nil {
		return Model{}, fmt.Errorf("viz: waiting for init message: %w", err)
	}
	init, ok := raw.(*transport.InitMessage)
	if !ok {
		return Model{}, fmt.Errorf("viz: expected init message, got %T", raw)
	}

	m := Model{sub: sub, fps: fps, running: true}
	descs := make([]string, 0, len(init.Systems))
	for _, si := range init.Systems {
		descs = append(descs, si.Desc)
		for _, pi := range si.Plots {
			m.plots = append(m.plots, newPlotView(pi.ID, pi.Desc,
				field.RenderParams{Palette: pi.Palette, Lo: pi.Lo, Hi: pi.Hi, ShowBar: pi.ShowBar},
				remotePoints(si.Graph, pi.Kind)))
		}
	}
	m.desc = strings.Join(descs, " + ")
	return m, nil
}

func newPlotView(id, desc string, r field.RenderParams, pts [][2]float64) *plotView {
	return &plotView{
		id:      id,
		desc:    desc,
		pal:     Lookup(r.Palette),
		lo:      r.Lo,
		hi:      r.Hi,
		showBar: r.ShowBar,
		pts:     pts,
		history: make([]float64, 0, historyCapacity),
		heat:    NewHeatmap(heatCols, heatRows),
	}
}

// localPoints derives layout positions for an observable's domain: vertex
// fields plot at vertex positions, edge fields at edge midpoints.
func localPoints(o field.Observable) [][2]float64 {
	g := o.Graph()
	switch f := o.(type) {
	case *field.VertexField:
		pts := make([][2]float64, 0, o.Len())
		for _, v := range f.Elements() {
			p, _ := g.Pos(v)
			pts = append(pts, p)
		}
		return pts
	case *field.EdgeField:
		pts := make([][2]float64, 0, o.Len())
		for _, e := range f.Elements() {
			pu, _ := g.Pos(e.U)
			pv, _ := g.Pos(e.V)
			pts = append(pts, [2]float64{(pu[0] + pv[0]) / 2, (pu[1] + pv[1]) / 2})
		}
		return pts
	}
	return nil
}

// remotePoints reconstructs the same layout from the wire description.
func remotePoints(gd transport.GraphData, kind string) [][2]float64 {
	pos := make(map[string][2]float64, len(gd.Nodes))
	for _, n := range gd.Nodes {
		if n.Pos != nil {
			pos[n.ID] = *n.Pos
		}
	}
	if kind == field.KindEdge.String() {
		pts := make([][2]float64, 0, len(gd.Links))
		for _, l := range gd.Links {
			pu, pv := pos[l.Source], pos[l.Target]
			pts = append(pts, [2]float64{(pu[0] + pv[0]) / 2, (pu[1] + pv[1]) / 2})
		}
		return pts
	}
	pts := make([][2]float64, 0, len(gd.Nodes))
	for _, n := range gd.Nodes {
		pts = append(pts, pos[n.ID])
	}
	return pts
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) waitFrame() tea.Cmd {
	sub := m.sub
	return func() tea.Msg {
		for {
			raw, err := sub.Next()
			if err != nil {
				return streamClosedMsg{err}
			}
			if data, ok := raw.(*transport.DataMessage); ok {
				return frameMsg(data)
			}
		}
	}
}

func (m Model) Init() tea.Cmd {
	if m.sub != nil {
		return m.waitFrame()
	}
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.sub != nil {
				m.sub.Close()
			}
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			if m.sys != nil {
				if err := m.sys.Reset(); err != nil {
					m.err = err
					return m, tea.Quit
				}
				m.t = m.sys.T()
				for _, p := range m.plots {
					p.history = p.history[:0]
				}
			}
		}
	case TickMsg:
		if m.running {
			if err := m.advance(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
		return m, m.tick()
	case frameMsg:
		if m.running {
			m.t = msg.T
			for _, p := range m.plots {
				if vals, ok := msg.Plots[p.id]; ok {
					p.push(vals)
				}
			}
		}
		return m, m.waitFrame()
	case streamClosedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("viz: stream closed: %w", msg.err)
		}
		return m, tea.Quit
	}
	return m, nil
}

// advance steps the local simulation one display frame.
func (m *Model) advance() error {
	if err := m.sys.Step(m.dt); err != nil {
		return err
	}
	vecs, err := m.sys.Measure()
	if err != nil {
		return err
	}
	m.t = m.sys.T()
	for i, p := range m.plots {
		if i < len(vecs) {
			p.push(vecs[i])
		}
	}
	return nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(m.desc) + "\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	mode := "local"
	if m.sub != nil {
		mode = "remote"
	}
	b.WriteString(labelStyle.Render("t=") + valueStyle.Render(fmt.Sprintf("%.3f", m.t)))
	b.WriteString(labelStyle.Render("  ") + valueStyle.Render(status))
	b.WriteString(labelStyle.Render("  mode=") + valueStyle.Render(mode) + "\n\n")

	panels := make([]string, 0, len(m.plots))
	for _, p := range m.plots {
		panels = append(panels, plotStyle.Render(p.render()))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panels...))

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(m.err.Error()))
	}
	help := "SP:Pause  Q:Quit"
	if m.sys != nil {
		help = "SP:Pause  R:Reset  Q:Quit"
	}
	b.WriteString(helpStyle.Render("\n" + help))
	return b.String()
}

func (p *plotView) render() string {
	var b strings.Builder
	b.WriteString(valueStyle.Render(p.desc) + "\n")
	p.heat.Clear()
	p.heat.Plot(p.pts, p.vals)
	b.WriteString(p.heat.Render(p.pal, p.lo, p.hi) + "\n")
	if p.showBar {
		b.WriteString(ColorBar(p.pal, p.lo, p.hi, heatCols) + "\n")
	}
	if len(p.history) > 1 {
		chart := asciigraph.Plot(p.history,
			asciigraph.Height(4), asciigraph.Width(2*heatCols), asciigraph.Caption("mean"))
		b.WriteString(graphStyle.Render(chart))
	}
	return b.String()
}

// Err reports the error that ended the session, if any.
func (m Model) Err() error { return m.err }
