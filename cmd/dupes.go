package cmd

import (
	"context"
	"fmt"

	"github.com/lepinkainen/photoheading/exifcodec"
	"github.com/lepinkainen/photoheading/photo"
	"github.com/lepinkainen/photoheading/types"
	"github.com/lepinkainen/photoheading/ui"
)

type DupesCmd struct {
	InputDir  string   `arg:"" name:"input" help:"Directory of photos to check" type:"existingdir"`
	OutputDir string   `arg:"" name:"output" help:"Directory that receives photos taken at the same position as their predecessor" type:"path"`
	Workers   int      `help:"Number of parallel workers (0 = auto)" default:"4" env:"PHOTOHEADING_WORKERS"`
	Ext       []string `help:"Photo file extensions to include" default:".jpg"`
}

func (cmd *DupesCmd) Run(appCtx *types.AppContext) error {
	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("PhotoHeading %s", appVersion(appCtx))))

	codec, err := exifcodec.New()
	if err != nil {
		return err
	}

	batch, err := photo.SequenceDirectory(cmd.InputDir, cmd.Ext, codec, photo.SequenceOptions{Warn: warnFile})
	if err != nil {
		return fmt.Errorf("failed to read photos: %w", err)
	}
	fmt.Println(ui.InfoStyle.Render(fmt.Sprintf("Found %d photos (%d with GPS)", batch.Len(), batch.PositionCount())))

	mover := &photo.DuplicateMover{OutputDir: cmd.OutputDir}
	photo.RunBatch(context.Background(), batch, mover.ProcessPair, resolveWorkers(cmd.Workers, cmd.InputDir), ui.NewConsoleObserver())
	return nil
}
