package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/photoheading/cmd"
	"github.com/lepinkainen/photoheading/types"
)

var Version = types.DefaultVersion

type CLI struct {
	Heading cmd.HeadingCmd `cmd:"" help:"Write the direction of travel into each photo's GPS heading"`
	Dupes   cmd.DupesCmd   `cmd:"" help:"Move photos taken at the same position as the previous photo"`
	Geotag  cmd.GeotagCmd  `cmd:"" help:"Assign positions from a GPX track (requires exiftool)"`

	Version kong.VersionFlag `help:"Show version and exit"`
}

// configPaths lists the JSON files that can supply flag defaults
var configPaths = []string{
	"~/.config/photoheading/config.json",
	"./photoheading.json",
}

func newParser(cli *CLI, appCtx *types.AppContext) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("photoheading"),
		kong.Description("Derive photo headings from consecutive GPS positions."),
		kong.Vars{"version": appCtx.Version},
		kong.Configuration(kong.JSON, configPaths...),
		kong.Bind(appCtx),
	)
}

func main() {
	var cli CLI
	appCtx := &types.AppContext{Version: Version}

	parser, err := newParser(&cli, appCtx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: error: %v\n\n", parser.Model.Name, err)
		if pctx, ok := err.(*kong.ParseError); ok && pctx.Context != nil {
			_ = pctx.Context.PrintUsage(false)
		}
		os.Exit(1)
	}

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}
