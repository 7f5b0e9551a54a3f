package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lepinkainen/photoheading/scheduler"
)

// ConsoleObserver prints one styled line per scheduler event
type ConsoleObserver struct {
	Out     io.Writer
	Verbose bool // also print a line when a worker picks up a pair
}

// NewConsoleObserver returns an observer writing to stdout
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{Out: os.Stdout}
}

func (c *ConsoleObserver) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *ConsoleObserver) BatchStarted(pairs, workers int) {
	fmt.Fprintln(c.out(), ProcessingStyle.Render(fmt.Sprintf("Processing %d pairs with %d workers:", pairs, workers)))
}

func (c *ConsoleObserver) TaskStarted(workerID, index int, label string) {
	if c.Verbose {
		fmt.Fprintln(c.out(), DimStyle.Render(fmt.Sprintf("🔄 Worker %d: %s", workerID+1, label)))
	}
}

func (c *ConsoleObserver) TaskMessage(workerID, index int, label, message string) {
	fmt.Fprintln(c.out(), message)
}

func (c *ConsoleObserver) TaskFinished(res scheduler.Result, finished, total int) {
	switch res.Status {
	case scheduler.StatusSkipped:
		fmt.Fprintln(c.out(), WarnStyle.Render(fmt.Sprintf("⚠️  Skipping %s: %s", res.Label, res.Reason)))
	case scheduler.StatusFailed:
		fmt.Fprintln(c.out(), ErrorStyle.Render(fmt.Sprintf("❌ %s: %v", res.Label, res.Err)))
	}
}

func (c *ConsoleObserver) BatchFinished(sum scheduler.Summary) {
	fmt.Fprintf(c.out(), "\n%s\n", SummaryLine(sum))
}

// SummaryLine renders the completion summary of a batch
func SummaryLine(sum scheduler.Summary) string {
	line := fmt.Sprintf("✅ Completed: %d, ⚠️  Skipped: %d, ❌ Failed: %d (%d pairs in %s)",
		sum.Succeeded, sum.Skipped, sum.Failed, sum.Pairs, sum.Duration.Round(time.Millisecond))
	if sum.Failed > 0 {
		return ErrorStyle.Render(line)
	}
	return SuccessStyle.Render(line)
}
