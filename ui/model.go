package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lepinkainen/photoheading/scheduler"
)

// PairLogEntry is one finished pair in the processed list
type PairLogEntry struct {
	Index    int
	Filename string
	Status   scheduler.Status
	Detail   string // last progress line, skip reason or error
}

func (p PairLogEntry) FilterValue() string { return p.Filename }
func (p PairLogEntry) Title() string       { return fmt.Sprintf("#%d %s", p.Index, p.Filename) }
func (p PairLogEntry) Description() string {
	switch p.Status {
	case scheduler.StatusFailed:
		return fmt.Sprintf("❌ %s", p.Detail)
	case scheduler.StatusSkipped:
		return fmt.Sprintf("⚠️  %s", p.Detail)
	case scheduler.StatusCompleted:
		return fmt.Sprintf("✓ %s", p.Detail)
	}
	return "🔄 Processing..."
}

// WorkerState tracks what one worker is doing
type WorkerState struct {
	ID          int
	CurrentFile string
	LastMessage string
	Status      string // "idle", "processing"
}

// TUIModel shows batch progress fed by scheduler events
type TUIModel struct {
	totalPairs    int
	finishedPairs int
	workers       []*WorkerState
	entries       []PairLogEntry
	lastMessage   map[int]string // pair index -> latest progress line
	summary       *scheduler.Summary

	overallProgress progress.Model
	pairList        list.Model

	width  int
	height int

	quitting bool

	Version string
}

// NewTUIModel creates a model for a batch of pairs processed by numWorkers workers
func NewTUIModel(numPairs, numWorkers int, version string) TUIModel {
	workers := make([]*WorkerState, numWorkers)
	for i := range workers {
		workers[i] = &WorkerState{ID: i, Status: "idle"}
	}

	pairList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	pairList.Title = "Processed Pairs"

	return TUIModel{
		totalPairs:      numPairs,
		workers:         workers,
		lastMessage:     make(map[int]string),
		overallProgress: progress.New(progress.WithDefaultGradient()),
		pairList:        pairList,
		Version:         version,
	}
}

// Init implements tea.Model
func (m TUIModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.pairList.SetSize(msg.Width-4, msg.Height/3)

	case BatchStartedMsg:
		m.totalPairs = msg.Pairs
		if len(m.workers) != msg.Workers {
			m.workers = make([]*WorkerState, msg.Workers)
			for i := range m.workers {
				m.workers[i] = &WorkerState{ID: i, Status: "idle"}
			}
		}

	case PairStartedMsg:
		if w := m.worker(msg.WorkerID); w != nil {
			w.CurrentFile = msg.Filename
			w.LastMessage = ""
			w.Status = "processing"
		}

	case PairMessageMsg:
		m.lastMessage[msg.Index] = msg.Text
		if w := m.worker(msg.WorkerID); w != nil {
			w.LastMessage = msg.Text
		}

	case PairFinishedMsg:
		res := msg.Result
		if w := m.worker(res.WorkerID); w != nil {
			w.Status = "idle"
			w.CurrentFile = ""
			w.LastMessage = ""
		}

		entry := PairLogEntry{Index: res.Index, Filename: res.Label, Status: res.Status}
		switch res.Status {
		case scheduler.StatusFailed:
			if res.Err != nil {
				entry.Detail = res.Err.Error()
			}
		case scheduler.StatusSkipped:
			entry.Detail = res.Reason
		default:
			entry.Detail = m.lastMessage[res.Index]
		}
		delete(m.lastMessage, res.Index)

		m.entries = append(m.entries, entry)
		items := make([]list.Item, len(m.entries))
		for i, e := range m.entries {
			items[i] = e
		}
		m.pairList.SetItems(items)
		m.finishedPairs = msg.Finished

	case BatchFinishedMsg:
		sum := msg.Summary
		m.summary = &sum
		return m, tea.Quit
	}

	return m, nil
}

func (m TUIModel) worker(id int) *WorkerState {
	if id < 0 || id >= len(m.workers) {
		return nil
	}
	return m.workers[id]
}

// Finished reports whether the batch summary has arrived
func (m TUIModel) Finished() bool {
	return m.summary != nil
}

// View implements tea.Model
func (m TUIModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	header := HeaderStyle.Render(fmt.Sprintf("PhotoHeading %s", m.Version))

	overallPercent := 0.0
	if m.totalPairs > 0 {
		overallPercent = float64(m.finishedPairs) / float64(m.totalPairs)
	}
	overallView := fmt.Sprintf("Overall Progress: %s (%d/%d)",
		m.overallProgress.ViewAs(overallPercent),
		m.finishedPairs,
		m.totalPairs)

	workerViews := []string{"Worker Status:"}
	for _, w := range m.workers {
		status := fmt.Sprintf("Worker %d: %-10s %s", w.ID+1, w.Status, w.CurrentFile)
		if w.LastMessage != "" {
			status += " " + DimStyle.Render(w.LastMessage)
		}
		workerViews = append(workerViews, status)
	}

	sections := []string{
		header,
		overallView,
		strings.Join(workerViews, "\n"),
		m.pairList.View(),
	}
	if m.summary != nil {
		sections = append(sections, SummaryLine(*m.summary))
	}
	sections = append(sections, "Controls: [q] Quit")

	return strings.Join(sections, "\n\n")
}
