package cmd

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lepinkainen/photoheading/exifcodec"
	"github.com/lepinkainen/photoheading/photo"
	"github.com/lepinkainen/photoheading/scheduler"
	"github.com/lepinkainen/photoheading/types"
	"github.com/lepinkainen/photoheading/ui"
	"github.com/lepinkainen/photoheading/utils"
)

type HeadingCmd struct {
	Directory  string        `arg:"" name:"directory" help:"Directory of photos to process" type:"existingdir"`
	Adjustment float64       `arg:"" optional:"" name:"adjustment" help:"Degrees added to every heading (pass negative values after --)" default:"0"`
	Workers    int           `help:"Number of parallel workers (0 = auto)" default:"4" env:"PHOTOHEADING_WORKERS"`
	IOTimeout  time.Duration `name:"io-timeout" help:"Timeout for a single metadata write (0 disables). A timed out write keeps running; if the process exits first its hidden temp file is removed on the next run" default:"30s"`
	Ext        []string      `help:"Photo file extensions to include" default:".jpg"`
	DryRun     bool          `name:"dry-run" help:"Compute and log headings without writing files"`
	TUI        bool          `name:"tui" help:"Show an interactive progress view"`
	Verbose    bool          `short:"v" help:"Log when a worker picks up a pair"`
}

func (cmd *HeadingCmd) Run(appCtx *types.AppContext) error {
	version := appVersion(appCtx)

	codec, err := exifcodec.New()
	if err != nil {
		return err
	}

	if !cmd.TUI {
		fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("PhotoHeading %s", version)))
	}

	if !cmd.DryRun {
		if removed, err := utils.RemoveStaleTempFiles(cmd.Directory); err != nil {
			warnFile(cmd.Directory, fmt.Errorf("failed to remove stale temp files: %w", err))
		} else if len(removed) > 0 {
			fmt.Println(ui.InfoStyle.Render(fmt.Sprintf("Removed %d stale temp files from an interrupted run", len(removed))))
		}
	}

	batch, err := photo.SequenceDirectory(cmd.Directory, cmd.Ext, codec, photo.SequenceOptions{Warn: warnFile})
	if err != nil {
		return fmt.Errorf("failed to read photos: %w", err)
	}

	workers := resolveWorkers(cmd.Workers, cmd.Directory)
	fmt.Println(ui.InfoStyle.Render(fmt.Sprintf("Found %d photos (%d with GPS)", batch.Len(), batch.PositionCount())))
	if cmd.DryRun {
		fmt.Println(ui.WarnStyle.Render("Dry run, no files will be modified"))
	}

	proc := &photo.HeadingProcessor{
		Codec:      codec,
		Adjustment: cmd.Adjustment,
		IOTimeout:  cmd.IOTimeout,
		DryRun:     cmd.DryRun,
	}

	if cmd.TUI && batch.PairCount() > 0 {
		return runWithTUI(batch, proc.ProcessPair, workers, version)
	}

	photo.RunBatch(context.Background(), batch, proc.ProcessPair, workers, &ui.ConsoleObserver{Verbose: cmd.Verbose})
	return nil
}

// runWithTUI drives the batch from a goroutine while bubbletea owns the terminal
func runWithTUI(batch *photo.OrderedBatch, handler scheduler.Handler[photo.PhotoRecord], workers int, version string) error {
	model := ui.NewTUIModel(batch.PairCount(), min(workers, batch.PairCount()), version)
	p := tea.NewProgram(model, tea.WithAltScreen())

	done := make(chan scheduler.Summary, 1)
	go func() {
		done <- photo.RunBatch(context.Background(), batch, handler, workers, ui.ProgramObserver{Program: p})
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI failed: %w", err)
	}

	// quitting early leaves the batch running, wait for it so no file is left half written
	sum := <-done
	fmt.Println(ui.SummaryLine(sum))
	return nil
}
