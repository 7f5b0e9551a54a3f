package photo

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// OrderedBatch is the canonical processing sequence of one directory run,
// sorted ascending by timestamp with ties kept in enumeration order
type OrderedBatch struct {
	records []PhotoRecord
}

// NewOrderedBatch copies records and stable-sorts them by timestamp
func NewOrderedBatch(records []PhotoRecord) *OrderedBatch {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b PhotoRecord) int {
		return cmp.Compare(a.Timestamp, b.Timestamp)
	})
	return &OrderedBatch{records: sorted}
}

// Len returns the number of photos in the batch
func (b *OrderedBatch) Len() int {
	return len(b.records)
}

// PairCount returns how many consecutive pairs the batch yields
func (b *OrderedBatch) PairCount() int {
	if len(b.records) < 2 {
		return 0
	}
	return len(b.records) - 1
}

// Records returns the ordered records. The slice must not be modified.
func (b *OrderedBatch) Records() []PhotoRecord {
	return b.records
}

// Release drops the batch's records once the run is over
func (b *OrderedBatch) Release() {
	b.records = nil
}

// SequenceOptions tunes how files are turned into records
type SequenceOptions struct {
	// Warn receives non-fatal per-file problems (unreadable metadata, failed stat)
	Warn func(path string, err error)
}

// Sequence extracts every file's metadata and orders the files by capture time,
// falling back to the file modification time when no EXIF timestamp is usable.
// Files that cannot even be stat'ed keep timestamp 0 and are reported through Warn,
// so every input file yields exactly one record.
func Sequence(files []string, reader MetadataReader, opts SequenceOptions) *OrderedBatch {
	warn := opts.Warn
	if warn == nil {
		warn = func(string, error) {}
	}

	records := make([]PhotoRecord, 0, len(files))
	for _, path := range files {
		ex := ExtractFile(reader, path, func(p string, err error) {
			warn(p, fmt.Errorf("failed to read EXIF data: %w", err))
		})

		record := PhotoRecord{
			Name:        filepath.Base(path),
			Path:        path,
			Coordinates: ex.Coordinates,
		}

		if ex.HasTimestamp {
			record.Timestamp = ex.Timestamp
			record.TimeSource = TimeFromExif
		} else {
			if fi, err := os.Stat(path); err != nil {
				warn(path, fmt.Errorf("failed to stat file: %w", err))
				record.TimeSource = TimeUnknown
			} else {
				record.Timestamp = fi.ModTime().UnixMilli()
				record.TimeSource = TimeFromMtime
			}
		}

		records = append(records, record)
	}

	return NewOrderedBatch(records)
}

// SequenceDirectory lists the photos in directory and sequences them
func SequenceDirectory(directory string, extensions []string, reader MetadataReader, opts SequenceOptions) (*OrderedBatch, error) {
	files, err := FindPhotoFiles(directory, extensions)
	if err != nil {
		return nil, err
	}
	return Sequence(files, reader, opts), nil
}
