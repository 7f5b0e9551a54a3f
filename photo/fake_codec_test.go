package photo

import (
	"fmt"
	"os"
	"sync"
)

// fakeCodec keeps metadata in memory, keyed by path
type fakeCodec struct {
	mu       sync.Mutex
	files    map[string]*Metadata
	readErr  map[string]error
	writeErr map[string]error
	writes   map[string]int
}

func newFakeCodec() *fakeCodec {
	return &fakeCodec{
		files:    make(map[string]*Metadata),
		readErr:  make(map[string]error),
		writeErr: make(map[string]error),
		writes:   make(map[string]int),
	}
}

func (f *fakeCodec) Read(path string) (*Metadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.readErr[path]; err != nil {
		return nil, err
	}
	md, ok := f.files[path]
	if !ok {
		return &Metadata{}, nil
	}
	cp := *md
	if md.GPS != nil {
		gps := *md.GPS
		cp.GPS = &gps
	}
	return &cp, nil
}

func (f *fakeCodec) Write(path string, md *Metadata) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.writeErr[path]; err != nil {
		return err
	}
	f.files[path] = md
	f.writes[path]++
	return nil
}

func (f *fakeCodec) heading(path string) (float64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.files[path].Heading()
}

func (f *fakeCodec) writeCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes[path]
}

// geoMetadata builds metadata for a whole-degree position
func geoMetadata(dateTime string, lat, lon float64) *Metadata {
	toDMS := func(v float64) ([]Rational, bool) {
		neg := v < 0
		if neg {
			v = -v
		}
		return []Rational{{uint32(v * 1e6), 1e6}, {0, 1}, {0, 1}}, neg
	}

	latDMS, south := toDMS(lat)
	lonDMS, west := toDMS(lon)
	latRef, lonRef := "N", "E"
	if south {
		latRef = "S"
	}
	if west {
		lonRef = "W"
	}

	return &Metadata{
		DateTimeOriginal: dateTime,
		GPS: &GPSInfo{
			Latitude: latDMS, LatitudeRef: latRef,
			Longitude: lonDMS, LongitudeRef: lonRef,
		},
	}
}

// touch creates an empty file so mtime fallbacks and moves have something to work on
func touch(path string) error {
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	return nil
}
