// Package scheduler runs a handler over every consecutive pair of a sequence
// with a fixed number of workers.
//
// Workers share no mutable state. They receive tasks and send status messages
// back over channels; only the coordinating goroutine (the caller of Run)
// touches the batch bookkeeping.
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// DefaultWorkers is the concurrency ceiling used when none is configured
const DefaultWorkers = 4

// Options configures a Run
type Options[T any] struct {
	// Workers is the maximum number of pairs in flight. <= 0 means DefaultWorkers.
	Workers int
	// Label names a task for display, derived from the pair's current item
	Label func(item T) string
	// Observer receives progress events; nil discards them
	Observer Observer
}

type messageKind int

const (
	msgStarted messageKind = iota
	msgLog
	msgFinished
)

type message struct {
	kind     messageKind
	workerID int
	index    int
	label    string
	text     string
	result   Result
}

// batchState is owned by the coordinator and mutated only on message receipt
type batchState struct {
	total    int
	statuses map[int]Status
	results  []Result
	finished int
}

func newBatchState(total int) *batchState {
	statuses := make(map[int]Status, total)
	for i := 1; i <= total; i++ {
		statuses[i] = StatusPending
	}
	return &batchState{
		total:    total,
		statuses: statuses,
		results:  make([]Result, 0, total),
	}
}

// apply records a message and reports whether it was a new terminal result
func (s *batchState) apply(msg message) bool {
	switch msg.kind {
	case msgStarted:
		if s.statuses[msg.index] == StatusPending {
			s.statuses[msg.index] = StatusRunning
		}
	case msgFinished:
		if s.statuses[msg.index].Terminal() {
			return false
		}
		s.statuses[msg.index] = msg.result.Status
		s.results = append(s.results, msg.result)
		s.finished++
		return true
	}
	return false
}

func (s *batchState) summary(workers int, elapsed time.Duration) Summary {
	sum := Summary{
		Pairs:    s.total,
		Workers:  workers,
		Finished: s.finished,
		Duration: elapsed,
		Results:  append([]Result(nil), s.results...),
	}
	for _, r := range s.results {
		switch r.Status {
		case StatusCompleted:
			sum.Succeeded++
		case StatusSkipped:
			sum.Skipped++
		case StatusFailed:
			sum.Failed++
		}
	}
	sort.Slice(sum.Results, func(i, j int) bool {
		return sum.Results[i].Index < sum.Results[j].Index
	})
	return sum
}

// Run dispatches the pairs (items[i-1], items[i]) for i = 1..len(items)-1 in
// ascending index order, keeping at most Workers of them in flight. A new pair
// is admitted as soon as a worker frees up. Failures and panics in one pair do
// not affect the others. Run returns once every pair has reported a terminal
// result; ctx is passed to handlers for their own I/O bounds and does not
// cancel the batch.
func Run[T any](ctx context.Context, items []T, handler Handler[T], opts Options[T]) Summary {
	obs := opts.Observer
	if obs == nil {
		obs = nopObserver{}
	}
	label := opts.Label
	if label == nil {
		label = func(T) string { return "" }
	}

	total := 0
	if len(items) >= 2 {
		total = len(items) - 1
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > total {
		workers = total
	}

	started := time.Now()
	state := newBatchState(total)
	obs.BatchStarted(total, workers)

	if total == 0 {
		sum := state.summary(workers, time.Since(started))
		obs.BatchFinished(sum)
		return sum
	}

	tasks := make(chan Task[T])
	inbox := make(chan message)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			work(ctx, workerID, tasks, inbox, handler, label)
		}(i)
	}

	next := 1
	for state.finished < total {
		var dispatch chan<- Task[T]
		var task Task[T]
		if next <= total {
			dispatch = tasks
			task = Task[T]{
				Index:       next,
				Previous:    items[next-1],
				Current:     items[next],
				IsFirstPair: next == 1,
			}
		}

		select {
		case dispatch <- task:
			next++
		case msg := <-inbox:
			switch msg.kind {
			case msgStarted:
				state.apply(msg)
				obs.TaskStarted(msg.workerID, msg.index, msg.label)
			case msgLog:
				obs.TaskMessage(msg.workerID, msg.index, msg.label, msg.text)
			case msgFinished:
				if state.apply(msg) {
					obs.TaskFinished(msg.result, state.finished, total)
				}
			}
		}
	}

	close(tasks)
	wg.Wait()

	sum := state.summary(workers, time.Since(started))
	obs.BatchFinished(sum)
	return sum
}

func work[T any](ctx context.Context, workerID int, tasks <-chan Task[T], inbox chan<- message, handler Handler[T], label func(T) string) {
	for task := range tasks {
		name := label(task.Current)
		inbox <- message{kind: msgStarted, workerID: workerID, index: task.Index, label: name}

		report := func(text string) {
			inbox <- message{kind: msgLog, workerID: workerID, index: task.Index, label: name, text: text}
		}

		start := time.Now()
		err := runHandler(ctx, handler, task, report)

		res := Result{
			Index:    task.Index,
			WorkerID: workerID,
			Label:    name,
			Status:   StatusCompleted,
			Duration: time.Since(start),
		}
		if reason, ok := IsSkip(err); ok {
			res.Status = StatusSkipped
			res.Reason = reason
		} else if err != nil {
			res.Status = StatusFailed
			res.Err = err
		}

		inbox <- message{kind: msgFinished, workerID: workerID, index: task.Index, label: name, result: res}
	}
}

// runHandler converts a handler panic into a failed result
func runHandler[T any](ctx context.Context, handler Handler[T], task Task[T], report func(string)) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker panic: %v", r)
		}
	}()
	return handler(ctx, task, report)
}
