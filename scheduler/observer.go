package scheduler

// Observer receives batch progress. All methods are called from the
// coordinating goroutine only, one at a time, so implementations need no locking.
// Worker IDs run from 0 to workers-1.
type Observer interface {
	BatchStarted(pairs, workers int)
	TaskStarted(workerID, index int, label string)
	TaskMessage(workerID, index int, label, message string)
	TaskFinished(res Result, finished, total int)
	BatchFinished(sum Summary)
}

type nopObserver struct{}

func (nopObserver) BatchStarted(int, int) {}
func (nopObserver) TaskStarted(int, int, string) {}
func (nopObserver) TaskMessage(int, int, string, string) {}
func (nopObserver) TaskFinished(Result, int, int) {}
func (nopObserver) BatchFinished(Summary) {}
