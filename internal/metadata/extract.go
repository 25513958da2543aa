package metadata

import (
	"bytes"
	"log/slog"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
	"github.com/rwcarlsen/goexif/tiff"
)

// GPSInfoKey is the mapping key holding the nested GPS tags
const GPSInfoKey = "GPSInfo"

// goexif names tags it has no name for with this prefix
const unknownTagPrefix = "UnknownTag_"

// Mapping holds EXIF tag values keyed by tag name
type Mapping map[string]any

// GPSInfo holds GPS tag values keyed by GPS tag index
type GPSInfo map[uint16]any

// Rational is a numerator/denominator pair as stored in EXIF
type Rational struct {
	Num int64
	Den int64
}

func init() {
	// Register manufacturer-specific note parsers so vendor fields decode
	exif.RegisterParsers(mknote.All...)
}

// Extract reads the EXIF segment from raw image bytes. It never fails: an
// image without metadata, or with metadata that cannot be parsed, yields an
// empty mapping.
func Extract(data []byte) (m Mapping) {
	m = Mapping{}

	defer func() {
		if r := recover(); r != nil {
			slog.Debug("EXIF parser panicked", "panic", r)
			m = Mapping{}
		}
	}()

	x, err := exif.Decode(bytes.NewReader(data))
	if x == nil || (err != nil && exif.IsCriticalError(err)) {
		slog.Debug("No usable EXIF data", "err", err)
		return m
	}

	w := &walker{out: m, gps: GPSInfo{}}
	if err := x.Walk(w); err != nil {
		slog.Debug("Failed to walk EXIF tags", "err", err)
		return Mapping{}
	}
	if len(w.gps) > 0 {
		m[GPSInfoKey] = w.gps
	}

	return m
}

type walker struct {
	out Mapping
	gps GPSInfo
}

func (w *walker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	n := string(name)
	if strings.HasPrefix(n, unknownTagPrefix) || tag == nil {
		return nil
	}

	v, ok := tagValue(tag)
	if !ok {
		return nil
	}

	if strings.HasPrefix(n, "GPS") && name != exif.GPSInfoIFDPointer {
		w.gps[tag.Id] = v
		return nil
	}
	w.out[n] = v
	return nil
}

// tagValue converts a tiff tag into a plain Go value. Single-count numeric
// tags become scalars, everything else keeps its slice form.
func tagValue(tag *tiff.Tag) (any, bool) {
	count := int(tag.Count)

	switch tag.Format() {
	case tiff.StringVal:
		s, err := tag.StringVal()
		if err != nil {
			return nil, false
		}
		return s, true
	case tiff.RatVal:
		vals := make([]Rational, 0, count)
		for i := 0; i < count; i++ {
			num, den, err := tag.Rat2(i)
			if err != nil {
				return nil, false
			}
			vals = append(vals, Rational{Num: num, Den: den})
		}
		if count == 1 {
			return vals[0], true
		}
		return vals, true
	case tiff.IntVal:
		vals := make([]int64, 0, count)
		for i := 0; i < count; i++ {
			v, err := tag.Int64(i)
			if err != nil {
				return nil, false
			}
			vals = append(vals, v)
		}
		if count == 1 {
			return vals[0], true
		}
		return vals, true
	case tiff.FloatVal:
		vals := make([]float64, 0, count)
		for i := 0; i < count; i++ {
			v, err := tag.Float(i)
			if err != nil {
				return nil, false
			}
			vals = append(vals, v)
		}
		if count == 1 {
			return vals[0], true
		}
		return vals, true
	default:
		raw := make([]byte, len(tag.Val))
		copy(raw, tag.Val)
		return raw, true
	}
}
