package cmd

import (
	"context"
	"fmt"

	"github.com/lepinkainen/photoheading/exifcodec"
	"github.com/lepinkainen/photoheading/photo"
	"github.com/lepinkainen/photoheading/types"
	"github.com/lepinkainen/photoheading/ui"
	"github.com/lepinkainen/photoheading/utils"
	"github.com/schollz/progressbar/v3"
)

type GeotagCmd struct {
	InputDir   string   `arg:"" name:"input" help:"Directory of photos to geotag" type:"existingdir"`
	GPXFile    string   `arg:"" name:"gpx" help:"GPX track to take positions from" type:"existingfile"`
	OutputDir  string   `arg:"" name:"output" help:"Directory that receives geotagged copies" type:"path"`
	MaxIntSecs int      `name:"max-int-secs" help:"Maximum gap between track points to interpolate across, in seconds" default:"3"`
	MaxExtSecs int      `name:"max-ext-secs" help:"Maximum time before or after the track to extrapolate, in seconds" default:"0"`
	Ext        []string `help:"Photo file extensions to include" default:".jpg"`
}

func (cmd *GeotagCmd) Run(appCtx *types.AppContext) error {
	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("PhotoHeading %s", appVersion(appCtx))))

	if err := utils.ValidateExiftoolDependency(); err != nil {
		return err
	}

	codec, err := exifcodec.New()
	if err != nil {
		return err
	}

	files, err := photo.FindPhotoFiles(cmd.InputDir, cmd.Ext)
	if err != nil {
		return fmt.Errorf("failed to read photos: %w", err)
	}
	if len(files) == 0 {
		fmt.Println(ui.WarnStyle.Render("⚠️  No photos found"))
		return nil
	}

	bar := progressbar.Default(int64(len(files)), "Stripping GPS")
	g := &photo.Geotagger{
		StripGPS: codec.StripGPS,
		Options: photo.GeotagOptions{
			MaxIntSecs: cmd.MaxIntSecs,
			MaxExtSecs: cmd.MaxExtSecs,
			Extensions: cmd.Ext,
		},
		OnStripped: func(path string, err error) {
			_ = bar.Add(1)
			if err != nil {
				warnFile(path, err)
			}
		},
	}

	fmt.Println(ui.ProcessingStyle.Render(fmt.Sprintf("Geotagging %d photos against %s:", len(files), cmd.GPXFile)))
	res, err := g.Geotag(context.Background(), files, cmd.GPXFile, cmd.OutputDir)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s\n", ui.SuccessStyle.Render(fmt.Sprintf("✅ Geotagged %d of %d photos into %s", res.Tagged, res.Candidates, cmd.OutputDir)))
	return nil
}
