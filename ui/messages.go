package ui

import "github.com/lepinkainen/photoheading/scheduler"

// TUI message types fed from scheduler events
type PairStartedMsg struct {
	WorkerID int
	Index    int
	Filename string
}

type PairMessageMsg struct {
	WorkerID int
	Index    int
	Filename string
	Text     string
}

type PairFinishedMsg struct {
	Result   scheduler.Result
	Finished int
	Total    int
}

type BatchStartedMsg struct {
	Pairs   int
	Workers int
}

type BatchFinishedMsg struct {
	Summary scheduler.Summary
}
