package viz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/attractorlab/attractor/internal/particle"
	"github.com/attractorlab/attractor/internal/physics"
	"github.com/attractorlab/attractor/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	burstSize       = 5
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model polls the engine for fresh snapshots at display rate and renders
// the particle cloud. It is the single frame consumer; the simulation keeps
// its own pace on its goroutine regardless of how fast we draw.
type Model struct {
	engine    *sim.Engine
	fieldName string
	canvas    *Canvas
	camera    *Camera
	rng       *rand.Rand

	frame      *particle.Snapshot
	paused     bool
	popHistory []float64
	seeded     int
	dropped    int
}

func NewModel(engine *sim.Engine, fieldName string, seed int64) Model {
	return Model{
		engine:     engine,
		fieldName:  fieldName,
		canvas:     NewCanvas(width, height),
		camera:     NewCamera(),
		rng:        rand.New(rand.NewSource(seed)),
		popHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.engine.Running() {
				m.engine.Stop()
			}
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "s":
			m.seedBurst()
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "z":
			m.camera.RotateZ(0.1)
		case "Z":
			m.camera.RotateZ(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		}
	case TickMsg:
		if !m.paused {
			if frame := m.engine.OnFrame(); frame != nil {
				m.frame = frame
				m.popHistory = append(m.popHistory, float64(len(frame.Particles)))
				if len(m.popHistory) > historyCapacity {
					m.popHistory = m.popHistory[1:]
				}
			}
			// slow orbit unless the user took the camera
			if m.camera.RotX == 0 && m.camera.RotZ == 0 {
				m.camera.RotY += 0.005
			}
		}
		m.draw()
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// seedBurst injects a handful of fresh particles near the attractor.
func (m *Model) seedBurst() {
	for i := 0; i < burstSize; i++ {
		p := particle.Particle{
			Pos: physics.Vec3{
				m.rng.Float32()*40 - 20,
				m.rng.Float32()*40 - 20,
				m.rng.Float32()*40 - 20,
			},
			Color: particle.RandomColor(m.rng, 32),
		}
		if err := m.engine.SeedParticle(p); err != nil {
			m.dropped++
			continue
		}
		m.seeded++
	}
}

func (m *Model) draw() {
	m.canvas.Clear()
	if m.frame == nil {
		return
	}
	for _, p := range m.frame.Particles {
		if x, y, ok := m.camera.Project(normalize(m.fieldName, p.Pos), width, height); ok {
			m.canvas.Set(x, y)
		}
	}
}

func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.fieldName)) + "\n")
	if m.paused {
		s.WriteString("PAUSED\n\n")
	} else {
		s.WriteString("RUNNING\n\n")
	}

	if len(m.popHistory) > 1 {
		chart := asciigraph.Plot(m.popHistory, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("Population"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	gen, t, count := uint64(0), 0.0, 0
	if m.frame != nil {
		gen, t, count = m.frame.Generation, m.frame.Time, len(m.frame.Particles)
	}
	s.WriteString(labelStyle.Render("Generation") + valueStyle.Render(fmt.Sprintf("%d", gen)) + "\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", t)) + "\n")
	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d", count)) + "\n")
	s.WriteString(labelStyle.Render("Seeded") + valueStyle.Render(fmt.Sprintf("%d", m.seeded)) + "\n")
	if m.dropped > 0 {
		s.WriteString(labelStyle.Render("Dropped") + valueStyle.Render(fmt.Sprintf("%d", m.dropped)) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause S:Seed Q:Quit\nXYZ:Rotate +/-:Zoom"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// Run starts the engine, drives the TUI until the user quits, and makes
// sure the simulation goroutine is stopped on the way out.
func Run(engine *sim.Engine, fieldName string, seed int64) error {
	if err := engine.Start(); err != nil {
		return err
	}
	p := tea.NewProgram(NewModel(engine, fieldName, seed), tea.WithAltScreen())
	_, err := p.Run()
	if engine.Running() {
		engine.Stop()
	}
	return err
}
