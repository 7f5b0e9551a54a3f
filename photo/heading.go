package photo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lepinkainen/photoheading/scheduler"
)

// DirectionRefTrue marks GPSImgDirection as a true (not magnetic) heading
const DirectionRefTrue = "T"

// MetadataCodec reads and rewrites a photo's EXIF block
type MetadataCodec interface {
	MetadataReader
	Write(path string, md *Metadata) error
}

// SetHeading stores degrees as the image direction with two decimals of precision
func (md *Metadata) SetHeading(degrees float64) {
	if md.GPS == nil {
		md.GPS = &GPSInfo{}
	}

	hundredths := uint32(math.Round(NormalizeDegrees(degrees) * 100))
	if hundredths >= 36000 {
		hundredths = 0
	}
	md.GPS.ImgDirection = &Rational{Numerator: hundredths, Denominator: 100}
	md.GPS.ImgDirectionRef = DirectionRefTrue
}

// Heading returns the stored image direction, if there is a usable one
func (md *Metadata) Heading() (float64, bool) {
	if md == nil || md.GPS == nil || md.GPS.ImgDirection == nil || md.GPS.ImgDirection.Denominator == 0 {
		return 0, false
	}
	return md.GPS.ImgDirection.Float(), true
}

// WriteHeading performs one read-modify-write cycle injecting the heading into path
func WriteHeading(codec MetadataCodec, path string, degrees float64) error {
	md, err := codec.Read(path)
	if err != nil {
		return fmt.Errorf("failed to read EXIF data: %w", err)
	}
	if md == nil {
		md = &Metadata{}
	}

	md.SetHeading(degrees)

	if err := codec.Write(path, md); err != nil {
		return fmt.Errorf("failed to write EXIF data: %w", err)
	}
	return nil
}

// HeadingProcessor annotates the current photo of each pair with the bearing
// from its predecessor. The first pair also annotates its predecessor.
type HeadingProcessor struct {
	Codec      MetadataCodec
	Adjustment float64
	// IOTimeout bounds each write; zero disables the bound
	IOTimeout time.Duration
	DryRun    bool
}

// ProcessPair is a scheduler.Handler for PhotoRecord pairs
func (p *HeadingProcessor) ProcessPair(ctx context.Context, task scheduler.Task[PhotoRecord], report func(string)) error {
	prev, curr := task.Previous, task.Current

	if !prev.HasPosition() || !curr.HasPosition() {
		return scheduler.Skip(ErrMissingPosition.Error())
	}

	direction := Bearing(*prev.Coordinates, *curr.Coordinates, p.Adjustment)
	report(fmt.Sprintf("Processing %s, direction: %.2f° (adjusted by %g°)", curr.Name, direction, p.Adjustment))

	var errs []error

	if err := p.write(ctx, curr.Path, direction); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", curr.Name, err))
	} else {
		report(fmt.Sprintf("Updated direction for: %s", curr.Name))
	}

	// The first photo has no predecessor of its own
	if task.IsFirstPair {
		if err := p.write(ctx, prev.Path, direction); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", prev.Name, err))
		} else {
			report(fmt.Sprintf("Updated direction for first image: %s", prev.Name))
		}
	}

	return errors.Join(errs...)
}

func (p *HeadingProcessor) write(ctx context.Context, path string, degrees float64) error {
	if p.DryRun {
		return nil
	}
	return withTimeout(ctx, p.IOTimeout, func() error {
		return WriteHeading(p.Codec, path, degrees)
	})
}

// withTimeout runs fn and gives up waiting after d. fn keeps running in the
// background after a timeout but only ever touches its own file.
func withTimeout(ctx context.Context, d time.Duration, fn func() error) error {
	if d <= 0 {
		return fn()
	}

	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("write timed out after %s: %w", d, ctx.Err())
	}
}
