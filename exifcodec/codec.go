// Package exifcodec reads and rewrites the EXIF block of JPEG files.
//
// Reading decodes only the tags the photo pipelines care about. Writing
// rebuilds the EXIF segment from the file's existing IFD tree, sets the
// populated fields of a photo.Metadata on top of it and atomically replaces
// the file, so all other tags survive.
package exifcodec

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	jis "github.com/dsoprea/go-jpeg-image-structure/v2"

	"github.com/lepinkainen/photoheading/photo"
	"github.com/lepinkainen/photoheading/utils"
)

const (
	gpsIfdPath  = "IFD/GPSInfo"
	exifIfdPath = "IFD/Exif"
)

// Codec implements photo.MetadataCodec on top of dsoprea/go-exif
type Codec struct {
	mapping  *exifcommon.IfdMapping
	tagIndex *exif.TagIndex
}

// New creates a codec with the standard IFD mapping
func New() (*Codec, error) {
	im, err := exifcommon.NewIfdMappingWithStandard()
	if err != nil {
		return nil, fmt.Errorf("failed to build IFD mapping: %w", err)
	}
	return &Codec{
		mapping:  im,
		tagIndex: exif.NewTagIndex(),
	}, nil
}

// Read decodes the photo's EXIF block. A file without EXIF yields an empty Metadata.
func (c *Codec) Read(path string) (*photo.Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return c.Decode(data)
}

// Decode is Read for an in-memory image
func (c *Codec) Decode(data []byte) (md *photo.Metadata, err error) {
	// go-exif panics on some malformed input
	defer func() {
		if r := recover(); r != nil {
			md, err = nil, fmt.Errorf("corrupt EXIF data: %v", r)
		}
	}()

	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		if errors.Is(err, exif.ErrNoExif) {
			return &photo.Metadata{}, nil
		}
		return nil, fmt.Errorf("failed to locate EXIF data: %w", err)
	}

	_, index, err := exif.Collect(c.mapping, c.tagIndex, rawExif)
	if err != nil {
		return nil, fmt.Errorf("failed to parse EXIF data: %w", err)
	}

	md = &photo.Metadata{}
	root := index.RootIfd

	md.DateTime = stringTag(root, "DateTime")

	if exifIfd, err := root.ChildWithIfdPath(exifcommon.IfdExifStandardIfdIdentity); err == nil {
		md.DateTimeOriginal = stringTag(exifIfd, "DateTimeOriginal")
	}

	if gpsIfd, err := root.ChildWithIfdPath(exifcommon.IfdGpsInfoStandardIfdIdentity); err == nil {
		gps := &photo.GPSInfo{
			Latitude:        rationalTag(gpsIfd, "GPSLatitude"),
			LatitudeRef:     stringTag(gpsIfd, "GPSLatitudeRef"),
			Longitude:       rationalTag(gpsIfd, "GPSLongitude"),
			LongitudeRef:    stringTag(gpsIfd, "GPSLongitudeRef"),
			ImgDirectionRef: stringTag(gpsIfd, "GPSImgDirectionRef"),
		}
		if dir := rationalTag(gpsIfd, "GPSImgDirection"); len(dir) == 1 {
			gps.ImgDirection = &dir[0]
		}
		md.GPS = gps
	}

	return md, nil
}

// Write sets the populated fields of md in the file's EXIF block and replaces
// the file atomically
func (c *Codec) Write(path string, md *photo.Metadata) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	out, err := c.Encode(data, md)
	if err != nil {
		return err
	}

	return utils.WriteFileAtomic(path, out)
}

// Encode is Write for an in-memory image; it returns the new image bytes
func (c *Codec) Encode(data []byte, md *photo.Metadata) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("failed to encode EXIF data: %v", r)
		}
	}()

	sl, err := parseSegments(data)
	if err != nil {
		return nil, err
	}

	rootIb, err := c.rootBuilder(sl)
	if err != nil {
		return nil, err
	}

	if err := applyMetadata(rootIb, md); err != nil {
		return nil, err
	}

	return writeSegments(sl, rootIb)
}

// StripGPS writes a copy of src without its GPS IFD to dst
func (c *Codec) StripGPS(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	out, err := c.stripGPS(data)
	if err != nil {
		return err
	}

	return utils.WriteFileAtomic(dst, out)
}

func (c *Codec) stripGPS(data []byte) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("failed to strip GPS data: %v", r)
		}
	}()

	sl, err := parseSegments(data)
	if err != nil {
		return nil, err
	}

	if _, _, err := sl.FindExif(); err != nil {
		// nothing to strip
		return data, nil
	}

	rootIb, err := sl.ConstructExifBuilder()
	if err != nil {
		return nil, fmt.Errorf("failed to load EXIF data: %w", err)
	}

	if _, err := rootIb.DeleteAll(exifcommon.IfdGpsInfoStandardIfdIdentity.TagId()); err != nil {
		return nil, fmt.Errorf("failed to remove GPS data: %w", err)
	}

	return writeSegments(sl, rootIb)
}

// rootBuilder loads the existing IFD tree, or starts an empty one when the
// image has no EXIF segment at all
func (c *Codec) rootBuilder(sl *jis.SegmentList) (*exif.IfdBuilder, error) {
	rootIb, err := sl.ConstructExifBuilder()
	if err == nil {
		return rootIb, nil
	}

	if _, _, findErr := sl.FindExif(); findErr == nil {
		// an EXIF segment exists but cannot be decoded; rewriting would lose it
		return nil, fmt.Errorf("failed to load EXIF data: %w", err)
	}

	return exif.NewIfdBuilder(c.mapping, c.tagIndex, exifcommon.IfdStandardIfdIdentity, exifcommon.EncodeDefaultByteOrder), nil
}

func parseSegments(data []byte) (*jis.SegmentList, error) {
	jmp := jis.NewJpegMediaParser()

	intfc, err := jmp.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JPEG: %w", err)
	}

	sl, ok := intfc.(*jis.SegmentList)
	if !ok {
		return nil, fmt.Errorf("unexpected JPEG structure %T", intfc)
	}
	return sl, nil
}

func writeSegments(sl *jis.SegmentList, rootIb *exif.IfdBuilder) ([]byte, error) {
	if err := sl.SetExif(rootIb); err != nil {
		return nil, fmt.Errorf("failed to update EXIF segment: %w", err)
	}

	var buf bytes.Buffer
	if err := sl.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

func applyMetadata(rootIb *exif.IfdBuilder, md *photo.Metadata) error {
	if md == nil {
		return nil
	}

	if md.DateTime != "" {
		if err := rootIb.SetStandardWithName("DateTime", md.DateTime); err != nil {
			return fmt.Errorf("failed to set DateTime: %w", err)
		}
	}

	if md.DateTimeOriginal != "" {
		exifIb, err := exif.GetOrCreateIbFromRootIb(rootIb, exifIfdPath)
		if err != nil {
			return fmt.Errorf("failed to open Exif IFD: %w", err)
		}
		if err := exifIb.SetStandardWithName("DateTimeOriginal", md.DateTimeOriginal); err != nil {
			return fmt.Errorf("failed to set DateTimeOriginal: %w", err)
		}
	}

	if md.GPS == nil {
		return nil
	}

	gpsIb, err := exif.GetOrCreateIbFromRootIb(rootIb, gpsIfdPath)
	if err != nil {
		return fmt.Errorf("failed to open GPS IFD: %w", err)
	}

	gps := md.GPS
	var fields []tagValue
	if len(gps.Latitude) > 0 {
		fields = append(fields,
			tagValue{"GPSLatitudeRef", gps.LatitudeRef},
			tagValue{"GPSLatitude", toExifRationals(gps.Latitude)})
	}
	if len(gps.Longitude) > 0 {
		fields = append(fields,
			tagValue{"GPSLongitudeRef", gps.LongitudeRef},
			tagValue{"GPSLongitude", toExifRationals(gps.Longitude)})
	}
	if gps.ImgDirection != nil {
		fields = append(fields,
			tagValue{"GPSImgDirectionRef", gps.ImgDirectionRef},
			tagValue{"GPSImgDirection", toExifRationals([]photo.Rational{*gps.ImgDirection})})
	}

	for _, f := range fields {
		if s, ok := f.value.(string); ok && s == "" {
			continue
		}
		if err := gpsIb.SetStandardWithName(f.name, f.value); err != nil {
			return fmt.Errorf("failed to set %s: %w", f.name, err)
		}
	}
	return nil
}

type tagValue struct {
	name  string
	value interface{}
}

func toExifRationals(in []photo.Rational) []exifcommon.Rational {
	out := make([]exifcommon.Rational, len(in))
	for i, r := range in {
		out[i] = exifcommon.Rational{Numerator: r.Numerator, Denominator: r.Denominator}
	}
	return out
}

func firstTagValue(ifd *exif.Ifd, name string) interface{} {
	results, err := ifd.FindTagWithName(name)
	if err != nil || len(results) == 0 {
		return nil
	}
	value, err := results[0].Value()
	if err != nil {
		return nil
	}
	return value
}

func stringTag(ifd *exif.Ifd, name string) string {
	s, ok := firstTagValue(ifd, name).(string)
	if !ok {
		return ""
	}
	return strings.TrimRight(s, "\x00 ")
}

func rationalTag(ifd *exif.Ifd, name string) []photo.Rational {
	values, ok := firstTagValue(ifd, name).([]exifcommon.Rational)
	if !ok {
		return nil
	}
	out := make([]photo.Rational, len(values))
	for i, r := range values {
		out[i] = photo.Rational{Numerator: r.Numerator, Denominator: r.Denominator}
	}
	return out
}
