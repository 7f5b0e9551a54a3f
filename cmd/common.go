package cmd

import (
	"fmt"

	"github.com/lepinkainen/photoheading/scheduler"
	"github.com/lepinkainen/photoheading/types"
	"github.com/lepinkainen/photoheading/ui"
	"github.com/lepinkainen/photoheading/utils"
)

func appVersion(appCtx *types.AppContext) string {
	if appCtx == nil || appCtx.Version == "" {
		return types.DefaultVersion
	}
	return appCtx.Version
}

// resolveWorkers applies the network drive rule and announces it
func resolveWorkers(requested int, directory string) int {
	workers := utils.ResolveWorkers(requested, directory, scheduler.DefaultWorkers)
	if requested <= 0 && workers == 1 {
		fmt.Printf("⚠️  Network drive detected, using 1 worker for optimal performance\n")
	}
	return workers
}

func warnFile(path string, err error) {
	fmt.Println(ui.WarnStyle.Render(fmt.Sprintf("⚠️  %s: %v", path, err)))
}
