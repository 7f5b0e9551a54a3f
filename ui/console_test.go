package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lepinkainen/photoheading/scheduler"
)

func TestConsoleObserver_OneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	obs := &ConsoleObserver{Out: &buf}

	obs.BatchStarted(3, 2)
	obs.TaskStarted(0, 1, "IMG_0001.jpg")
	obs.TaskMessage(0, 1, "IMG_0001.jpg", "Processing IMG_0001.jpg, direction: 90.00°")
	obs.TaskFinished(scheduler.Result{Index: 1, Label: "IMG_0001.jpg", Status: scheduler.StatusCompleted}, 1, 3)
	obs.TaskFinished(scheduler.Result{Index: 2, Label: "IMG_0002.jpg", Status: scheduler.StatusSkipped, Reason: "missing position"}, 2, 3)
	obs.TaskFinished(scheduler.Result{Index: 3, Label: "IMG_0003.jpg", Status: scheduler.StatusFailed, Err: errors.New("disk full")}, 3, 3)
	obs.BatchFinished(scheduler.Summary{Pairs: 3, Finished: 3, Succeeded: 1, Skipped: 1, Failed: 1})

	out := buf.String()
	for _, want := range []string{
		"Processing 3 pairs with 2 workers",
		"direction: 90.00°",
		"IMG_0002.jpg: missing position",
		"IMG_0003.jpg: disk full",
		"Completed: 1",
		"Failed: 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Worker 1") {
		t.Error("Task start lines should only be printed in verbose mode")
	}
}

func TestConsoleObserver_Verbose(t *testing.T) {
	var buf bytes.Buffer
	obs := &ConsoleObserver{Out: &buf, Verbose: true}
	obs.TaskStarted(1, 4, "IMG_0004.jpg")

	if !strings.Contains(buf.String(), "Worker 2: IMG_0004.jpg") {
		t.Errorf("Expected a worker start line, got %q", buf.String())
	}
}

type recordingSender struct {
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) { r.msgs = append(r.msgs, msg) }

func TestProgramObserver_ForwardsEvents(t *testing.T) {
	rec := &recordingSender{}
	var obs scheduler.Observer = ProgramObserver{Program: rec}

	obs.BatchStarted(1, 1)
	obs.TaskStarted(0, 1, "a.jpg")
	obs.TaskMessage(0, 1, "a.jpg", "hello")
	obs.TaskFinished(scheduler.Result{Index: 1}, 1, 1)
	obs.BatchFinished(scheduler.Summary{Pairs: 1})

	if len(rec.msgs) != 5 {
		t.Fatalf("Expected 5 messages, got %d", len(rec.msgs))
	}
	if _, ok := rec.msgs[0].(BatchStartedMsg); !ok {
		t.Errorf("First message should be BatchStartedMsg, got %T", rec.msgs[0])
	}
	if m, ok := rec.msgs[2].(PairMessageMsg); !ok || m.Text != "hello" {
		t.Errorf("Third message should carry the progress line, got %#v", rec.msgs[2])
	}
	if _, ok := rec.msgs[4].(BatchFinishedMsg); !ok {
		t.Errorf("Last message should be BatchFinishedMsg, got %T", rec.msgs[4])
	}
}
