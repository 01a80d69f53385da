package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/hupe1980/pointsearch/render"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"})
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := titleStyle.Render(fmt.Sprintf(" pointsearch ─ %s, %d points, %d centroids ",
		m.cfg.Index.IndexName(), m.cfg.Index.Len(), len(m.cfg.Centroids)))

	info := fmt.Sprintf(" radius=%f  step=%g  matches=%d", m.radius, m.step, m.matches.Len())
	if m.pending {
		info += "  …"
	}
	if m.coverage != "" {
		info += "  " + m.coverage
	}

	status := dimStyle.Render(" " + m.status)
	if m.err != nil {
		status = errStyle.Render(" " + m.status)
	}

	helpView := m.help.View(m.keys)

	plotH := m.height - 3 - lipgloss.Height(helpView)
	plotH = max(plotH, 1)

	plot := render.Plot(render.Scene{
		Points:    m.cfg.Index.Store().Points(),
		Matches:   m.matches,
		Centroids: m.cfg.Centroids,
		Radius:    m.radius,
	}, m.width, plotH)

	return lipgloss.JoinVertical(lipgloss.Left, header, plot, info, status, helpView)
}
