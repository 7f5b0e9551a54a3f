package photo

import "errors"

// ErrMissingPosition marks a pair that cannot be processed because one of
// its photos has no usable GPS position.
var ErrMissingPosition = errors.New("missing GPS position")

// Rational is an unsigned EXIF rational value
type Rational struct {
	Numerator   uint32
	Denominator uint32
}

// Float returns the rational as a float64. The caller must check the denominator.
func (r Rational) Float() float64 {
	return float64(r.Numerator) / float64(r.Denominator)
}

// GPSInfo holds the GPS fields the pipelines read and write
type GPSInfo struct {
	Latitude     []Rational
	LatitudeRef  string
	Longitude    []Rational
	LongitudeRef string

	ImgDirection    *Rational
	ImgDirectionRef string
}

// Metadata is the decoded subset of a photo's EXIF block.
// Empty fields are absent in the file and are left untouched on write.
type Metadata struct {
	DateTimeOriginal string
	DateTime         string
	GPS              *GPSInfo
}

// Coordinate is a position in decimal degrees
type Coordinate struct {
	Lat float64
	Lon float64
}

// Equal reports whether two coordinates are exactly the same position
func (c Coordinate) Equal(o Coordinate) bool {
	return c.Lat == o.Lat && c.Lon == o.Lon
}

// TimeSource tells where a record's ordering timestamp came from
type TimeSource string

const (
	TimeFromExif  TimeSource = "exif"
	TimeFromMtime TimeSource = "mtime"
	TimeUnknown   TimeSource = "unknown" // no EXIF time and stat failed, sorts first
)

// PhotoRecord is one scanned photo. It is immutable once the batch is built.
type PhotoRecord struct {
	Name        string
	Path        string
	Timestamp   int64 // epoch millis
	TimeSource  TimeSource
	Coordinates *Coordinate
}

// HasPosition reports whether the record carries usable coordinates
func (r PhotoRecord) HasPosition() bool {
	return r.Coordinates != nil
}
