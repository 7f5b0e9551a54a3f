package photo

import (
	"context"

	"github.com/lepinkainen/photoheading/scheduler"
)

// PositionCount returns how many photos in the batch carry coordinates
func (b *OrderedBatch) PositionCount() int {
	n := 0
	for _, r := range b.records {
		if r.HasPosition() {
			n++
		}
	}
	return n
}

// RunBatch walks every consecutive pair of the batch through handler and
// releases the batch's records once the last pair has finished
func RunBatch(ctx context.Context, batch *OrderedBatch, handler scheduler.Handler[PhotoRecord], workers int, obs scheduler.Observer) scheduler.Summary {
	defer batch.Release()

	return scheduler.Run(ctx, batch.Records(), handler, scheduler.Options[PhotoRecord]{
		Workers:  workers,
		Label:    func(r PhotoRecord) string { return r.Name },
		Observer: obs,
	})
}
