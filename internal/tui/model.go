// Package tui is an interactive viewer for radius queries over an index.
package tui

import (
	"context"
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hupe1980/pointsearch"
	"github.com/hupe1980/pointsearch/coverage"
	"github.com/hupe1980/pointsearch/matchset"
	"github.com/hupe1980/pointsearch/model"
)

const minStep = 1e-9

// Config describes what the viewer shows.
type Config struct {
	Index     *pointsearch.Index
	Centroids []model.Centroid

	// Radius is the initial query radius.
	Radius float64

	// Step is the radius increment. Defaults to Radius/10, or 1 for a zero radius.
	Step float64

	// Fraction is the coverage target used by the coverage key. Defaults to 0.5.
	Fraction float64
}

// Model is the bubbletea model of the viewer.
type Model struct {
	ctx context.Context
	cfg Config

	width  int
	height int

	radius float64
	step   float64

	seq     int
	matches *matchset.MatchSet
	pending bool

	status   string
	coverage string
	err      error

	keys keyMap
	help help.Model
}

// New creates the viewer model.
func New(ctx context.Context, cfg Config) Model {
	if cfg.Fraction <= 0 || cfg.Fraction > 1 {
		cfg.Fraction = 0.5
	}
	if !(cfg.Radius >= 0) || math.IsInf(cfg.Radius, 0) {
		cfg.Radius = 0
	}
	if !(cfg.Step > 0) {
		cfg.Step = cfg.Radius / 10
		if cfg.Step == 0 {
			cfg.Step = 1
		}
	}

	return Model{
		ctx:     ctx,
		cfg:     cfg,
		radius:  cfg.Radius,
		step:    cfg.Step,
		status:  "ready",
		pending: true,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
}

// Run starts the viewer on the alternate screen and blocks until it quits.
func Run(ctx context.Context, cfg Config) error {
	p := tea.NewProgram(New(ctx, cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Radius returns the current query radius.
func (m Model) Radius() float64 { return m.radius }

// Step returns the current radius increment.
func (m Model) Step() float64 { return m.step }

// Matches returns the result of the last completed query.
func (m Model) Matches() *matchset.MatchSet { return m.matches }

// Err returns the last query error, if any.
func (m Model) Err() error { return m.err }

type matchMsg struct {
	seq     int
	radius  float64
	matches *matchset.MatchSet
	err     error
}

type coverageMsg struct {
	res coverage.Result
	err error
}

func (m Model) Init() tea.Cmd {
	return m.query(m.seq, m.radius)
}

func (m Model) query(seq int, r float64) tea.Cmd {
	idx, centroids, ctx := m.cfg.Index, m.cfg.Centroids, m.ctx
	return func() tea.Msg {
		set, err := idx.MatchAny(ctx, centroids, r)
		return matchMsg{seq: seq, radius: r, matches: set, err: err}
	}
}

func (m Model) searchCoverage() tea.Cmd {
	idx, centroids, ctx, p := m.cfg.Index, m.cfg.Centroids, m.ctx, m.cfg.Fraction
	return func() tea.Msg {
		res, err := idx.FindRadiusForCoverage(ctx, centroids, p)
		return coverageMsg{res: res, err: err}
	}
}

// setRadius issues a query for r; replies to older queries are dropped.
func (m Model) setRadius(r float64) (Model, tea.Cmd) {
	m.radius = max(0, r)
	m.seq++
	m.pending = true
	return m, m.query(m.seq, m.radius)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case matchMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.pending = false
		m.err = msg.err
		if msg.err != nil {
			m.status = "query failed: " + msg.err.Error()
			return m, nil
		}
		m.matches = msg.matches
		m.status = fmt.Sprintf("%d points within %f", msg.matches.Len(), msg.radius)
		return m, nil

	case coverageMsg:
		m.err = msg.err
		if msg.err != nil {
			m.pending = false
			m.status = "coverage search failed: " + msg.err.Error()
			return m, nil
		}
		m.step = max(msg.res.Radius/10, minStep)
		m.coverage = fmt.Sprintf("coverage %.0f%%: %d of %d points in %d iterations",
			m.cfg.Fraction*100, msg.res.Count, msg.res.Target, msg.res.Iterations)
		return m.setRadius(msg.res.Radius)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Grow):
			m.coverage = ""
			return m.setRadius(m.radius + m.step)
		case key.Matches(msg, m.keys.Shrink):
			m.coverage = ""
			return m.setRadius(m.radius - m.step)
		case key.Matches(msg, m.keys.StepUp):
			m.step *= 2
			return m, nil
		case key.Matches(msg, m.keys.StepDown):
			m.step = max(m.step/2, minStep)
			return m, nil
		case key.Matches(msg, m.keys.Coverage):
			m.pending = true
			m.status = fmt.Sprintf("searching radius for %.0f%% coverage", m.cfg.Fraction*100)
			return m, m.searchCoverage()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	return m, nil
}
