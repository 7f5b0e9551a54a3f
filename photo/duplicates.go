package photo

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/lepinkainen/photoheading/scheduler"
	"github.com/lepinkainen/photoheading/utils"
)

// DuplicateMover moves the current photo of a pair into OutputDir when it was
// taken at exactly the same position as its predecessor
type DuplicateMover struct {
	OutputDir string
}

// ProcessPair is a scheduler.Handler for PhotoRecord pairs
func (m *DuplicateMover) ProcessPair(ctx context.Context, task scheduler.Task[PhotoRecord], report func(string)) error {
	prev, curr := task.Previous, task.Current

	if !prev.HasPosition() || !curr.HasPosition() {
		return scheduler.Skip(ErrMissingPosition.Error())
	}

	report(fmt.Sprintf("Processing %s, current: (%f, %f), previous: (%f, %f)",
		curr.Name, curr.Coordinates.Lat, curr.Coordinates.Lon, prev.Coordinates.Lat, prev.Coordinates.Lon))

	if !curr.Coordinates.Equal(*prev.Coordinates) {
		return nil
	}

	dst := filepath.Join(m.OutputDir, curr.Name)
	if err := utils.MoveFile(curr.Path, dst); err != nil {
		return fmt.Errorf("failed to move %s: %w", curr.Name, err)
	}

	report(fmt.Sprintf("Moved: %s", curr.Name))
	return nil
}
