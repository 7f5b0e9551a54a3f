package photo

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// GeotagOptions holds the exiftool geotagging limits
type GeotagOptions struct {
	MaxIntSecs int      // max gap between track points to interpolate across
	MaxExtSecs int      // max distance before/after the track to extrapolate
	Extensions []string // photo extensions passed to exiftool -ext
}

// DefaultGeotagOptions returns the limits used when none are configured
func DefaultGeotagOptions() GeotagOptions {
	return GeotagOptions{
		MaxIntSecs: 3,
		MaxExtSecs: 0,
		Extensions: DefaultExtensions,
	}
}

// GeotagResult holds the outcome of a geotagging run
type GeotagResult struct {
	Candidates int // photos found in the input directory
	Stripped   int // photos copied into the work directory
	Tagged     int // photos that gained coordinates and were copied out
}

// CommandRunner runs an external command and returns its combined output
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Geotagger assigns coordinates from a GPX track through exiftool
type Geotagger struct {
	StripGPS func(src, dst string) error
	Run      CommandRunner
	Options  GeotagOptions

	// OnStripped is called after every strip attempt, err is nil on success
	OnStripped func(path string, err error)
}

// Geotag copies files into a temporary work directory without their old
// GPS data, geotags them against gpxFile and copies every photo that got
// coordinates into outputDir.
func (g *Geotagger) Geotag(ctx context.Context, files []string, gpxFile, outputDir string) (GeotagResult, error) {
	result := GeotagResult{Candidates: len(files)}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return result, fmt.Errorf("failed to create output directory: %w", err)
	}

	workDir, err := os.MkdirTemp("", "photoheading-geotag-*")
	if err != nil {
		return result, fmt.Errorf("failed to create work directory: %w", err)
	}
	defer func() {
		_ = os.RemoveAll(workDir)
	}()

	for _, f := range files {
		err := g.StripGPS(f, filepath.Join(workDir, filepath.Base(f)))
		if err == nil {
			result.Stripped++
		}
		if g.OnStripped != nil {
			g.OnStripped(f, err)
		}
	}

	if result.Stripped == 0 {
		return result, nil
	}

	if out, err := g.runner()(ctx, "exiftool", g.geotagArgs(gpxFile, workDir)...); err != nil {
		return result, fmt.Errorf("exiftool geotag failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	// exiftool never overwrites with -o, so only names missing before the copy are new
	existing := fileNames(outputDir)

	if out, err := g.runner()(ctx, "exiftool", g.collectArgs(workDir, outputDir)...); err != nil {
		// exiftool exits 1 when the -if condition rejects any file
		if !strings.Contains(string(out), "failed condition") {
			return result, fmt.Errorf("exiftool copy failed: %w: %s", err, strings.TrimSpace(string(out)))
		}
	}

	for _, f := range files {
		name := filepath.Base(f)
		if existing[name] {
			continue
		}
		if _, err := os.Stat(filepath.Join(outputDir, name)); err == nil {
			result.Tagged++
		}
	}

	return result, nil
}

func (g *Geotagger) runner() CommandRunner {
	if g.Run == nil {
		return ExecRunner
	}
	return g.Run
}

func (g *Geotagger) geotagArgs(gpxFile, workDir string) []string {
	args := []string{"-r", "-geotag", gpxFile}
	args = append(args, extArgs(g.Options.Extensions)...)
	args = append(args,
		"-overwrite_original",
		"-api", fmt.Sprintf("GeoMaxIntSecs=%d", g.Options.MaxIntSecs),
		"-api", fmt.Sprintf("GeoMaxExtSecs=%d", g.Options.MaxExtSecs),
		workDir,
	)
	return args
}

func (g *Geotagger) collectArgs(workDir, outputDir string) []string {
	args := []string{"-r", "-if", "$gpslatitude and $gpslongitude"}
	args = append(args, extArgs(g.Options.Extensions)...)
	// trailing slash makes exiftool treat -o as a directory
	args = append(args, "-o", strings.TrimRight(outputDir, "/")+"/", workDir)
	return args
}

func extArgs(extensions []string) []string {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	var args []string
	for _, ext := range extensions {
		args = append(args, "-ext", strings.TrimPrefix(strings.ToLower(ext), "."))
	}
	return args
}

func fileNames(dir string) map[string]bool {
	names := make(map[string]bool)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return names
	}
	for _, e := range entries {
		if !e.IsDir() {
			names[e.Name()] = true
		}
	}
	return names
}
