package photo

import (
	"strings"
	"time"
)

// exifDateTimeLayout is the fixed-width EXIF date format "YYYY:MM:DD HH:MM:SS"
const exifDateTimeLayout = "2006:01:02 15:04:05"

// MetadataReader loads the EXIF subset of a photo
type MetadataReader interface {
	Read(path string) (*Metadata, error)
}

// Extraction is what the extractor learns about a single photo
type Extraction struct {
	Timestamp    int64 // epoch millis, valid when HasTimestamp is set
	HasTimestamp bool
	Coordinates  *Coordinate
}

// ConvertDMSToDD converts a degrees/minutes/seconds rational triple to decimal degrees.
// A hemisphere reference of S or W negates the result. Anything other than three
// rationals with non-zero denominators is malformed.
func ConvertDMSToDD(dms []Rational, ref string) (float64, bool) {
	if len(dms) != 3 {
		return 0, false
	}
	for _, r := range dms {
		if r.Denominator == 0 {
			return 0, false
		}
	}

	dd := dms[0].Float() + dms[1].Float()/60 + dms[2].Float()/3600

	switch strings.ToUpper(strings.TrimSpace(ref)) {
	case "S", "W":
		dd = -dd
	}
	return dd, true
}

// ParseExifDateTime parses an EXIF date string in local wall-clock time and
// returns epoch milliseconds
func ParseExifDateTime(value string) (int64, bool) {
	value = strings.TrimSpace(strings.TrimRight(value, "\x00"))
	if value == "" {
		return 0, false
	}

	t, err := time.ParseInLocation(exifDateTimeLayout, value, time.Local)
	if err != nil {
		return 0, false
	}
	return t.UnixMilli(), true
}

// ExtractFromMetadata derives the timestamp and coordinates from decoded metadata
func ExtractFromMetadata(md *Metadata) Extraction {
	var ex Extraction
	if md == nil {
		return ex
	}

	// DateTimeOriginal wins over DateTime
	for _, candidate := range []string{md.DateTimeOriginal, md.DateTime} {
		if strings.TrimSpace(candidate) == "" {
			continue
		}
		if ts, ok := ParseExifDateTime(candidate); ok {
			ex.Timestamp = ts
			ex.HasTimestamp = true
		}
		break
	}

	ex.Coordinates = coordinatesFromGPS(md.GPS)
	return ex
}

func coordinatesFromGPS(gps *GPSInfo) *Coordinate {
	if gps == nil || len(gps.Latitude) == 0 || len(gps.Longitude) == 0 {
		return nil
	}

	lat, ok := ConvertDMSToDD(gps.Latitude, gps.LatitudeRef)
	if !ok || lat < -90 || lat > 90 {
		return nil
	}
	lon, ok := ConvertDMSToDD(gps.Longitude, gps.LongitudeRef)
	if !ok || lon < -180 || lon > 180 {
		return nil
	}

	return &Coordinate{Lat: lat, Lon: lon}
}

// ExtractFile reads a photo's metadata and extracts timestamp and coordinates.
// Read failures are reported through onError and yield an empty extraction.
func ExtractFile(reader MetadataReader, path string, onError func(path string, err error)) Extraction {
	md, err := reader.Read(path)
	if err != nil {
		if onError != nil {
			onError(path, err)
		}
		return Extraction{}
	}
	return ExtractFromMetadata(md)
}
