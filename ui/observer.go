package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lepinkainen/photoheading/scheduler"
)

// Sender is the part of *tea.Program the observer needs
type Sender interface {
	Send(msg tea.Msg)
}

// ProgramObserver forwards scheduler events to a running bubbletea program
type ProgramObserver struct {
	Program Sender
}

func (o ProgramObserver) BatchStarted(pairs, workers int) {
	o.Program.Send(BatchStartedMsg{Pairs: pairs, Workers: workers})
}

func (o ProgramObserver) TaskStarted(workerID, index int, label string) {
	o.Program.Send(PairStartedMsg{WorkerID: workerID, Index: index, Filename: label})
}

func (o ProgramObserver) TaskMessage(workerID, index int, label, message string) {
	o.Program.Send(PairMessageMsg{WorkerID: workerID, Index: index, Filename: label, Text: message})
}

func (o ProgramObserver) TaskFinished(res scheduler.Result, finished, total int) {
	o.Program.Send(PairFinishedMsg{Result: res, Finished: finished, Total: total})
}

func (o ProgramObserver) BatchFinished(sum scheduler.Summary) {
	o.Program.Send(BatchFinishedMsg{Summary: sum})
}
