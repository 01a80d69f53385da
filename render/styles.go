package render

import "github.com/charmbracelet/lipgloss"

// Styles colours the plot layers.
type Styles struct {
	Point    lipgloss.Style
	Match    lipgloss.Style
	Centroid lipgloss.Style
	Circle   lipgloss.Style
}

// DefaultStyles dims unmatched points and highlights matches and centroids.
func DefaultStyles() Styles {
	return Styles{
		Point:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}),
		Match:    lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true),
		Centroid: lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true),
		Circle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")),
	}
}

// PlainStyles renders without any terminal escapes.
func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{Point: s, Match: s, Centroid: s, Circle: s}
}
