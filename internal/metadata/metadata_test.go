package metadata

import (
	"math"
	"testing"

	"github.com/lehigh-university-libraries/treeslice/internal/testsupport"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

var pittsburgh = testsupport.GPS{
	LatitudeRef:  "N",
	Latitude:     [3][2]uint32{{40, 1}, {26, 1}, {4600, 100}},
	LongitudeRef: "W",
	Longitude:    [3][2]uint32{{79, 1}, {58, 1}, {56, 1}},
}

func TestExtractWithoutExif(t *testing.T) {
	img := testsupport.Pattern(32, 32, 0)

	tests := []struct {
		name string
		data []byte
	}{
		{name: "plain jpeg", data: testsupport.JPEG(t, img)},
		{name: "png", data: testsupport.PNG(t, img)},
		{name: "garbage", data: []byte("not an image at all")},
		{name: "empty", data: nil},
		{name: "truncated exif", data: testsupport.TIFF(testsupport.Exif{DateTime: "2024:01:01 00:00:00"})[:12]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Extract(tt.data)
			if m == nil {
				t.Fatal("Expected non-nil mapping")
			}
			if len(m) != 0 {
				t.Errorf("Expected empty mapping, got %v", m)
			}
			if _, ok := Timestamp(m); ok {
				t.Error("Expected absent timestamp")
			}
			if _, ok := Geolocation(m); ok {
				t.Error("Expected absent geolocation")
			}
		})
	}
}

func TestExtractTaggedJPEG(t *testing.T) {
	data := testsupport.TaggedJPEG(t, 0, testsupport.Exif{
		Make:             "Canon",
		DateTime:         "2024:05:02 08:00:00",
		DateTimeOriginal: "2024:05:01 10:30:00",
		GPS:              &pittsburgh,
	})

	m := Extract(data)

	if got := m["Make"]; got != "Canon" {
		t.Errorf("Expected Make=Canon, got %v", got)
	}
	if got := m["DateTimeOriginal"]; got != "2024:05:01 10:30:00" {
		t.Errorf("Expected DateTimeOriginal, got %v", got)
	}

	gps, ok := m[GPSInfoKey].(GPSInfo)
	if !ok {
		t.Fatalf("Expected GPSInfo mapping, got %T", m[GPSInfoKey])
	}
	if gps[1] != "N" || gps[3] != "W" {
		t.Errorf("Expected hemisphere refs N/W, got %v/%v", gps[1], gps[3])
	}
	lat, ok := gps[2].([]Rational)
	if !ok || len(lat) != 3 {
		t.Fatalf("Expected latitude triple, got %#v", gps[2])
	}
	if lat[2] != (Rational{Num: 4600, Den: 100}) {
		t.Errorf("Expected seconds 4600/100, got %v", lat[2])
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	data := testsupport.TaggedJPEG(t, 1, testsupport.Exif{DateTime: "2023:11:11 11:11:11", GPS: &pittsburgh})

	first := Extract(data)
	second := Extract(data)

	if len(first) != len(second) {
		t.Fatalf("Expected same tag count, got %d and %d", len(first), len(second))
	}
	for k, v := range first {
		if k == GPSInfoKey {
			continue
		}
		if _, ok := second[k]; !ok {
			t.Errorf("Tag %s missing on second pass (value %v)", k, v)
		}
	}
}

func TestTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		mapping  Mapping
		expected string
		ok       bool
	}{
		{
			name:     "prefers original capture",
			mapping:  Mapping{"DateTimeOriginal": "2024:05:01 10:30:00", "DateTime": "2024:05:02 08:00:00"},
			expected: "2024:05:01 10:30:00",
			ok:       true,
		},
		{
			name:     "falls back to modification",
			mapping:  Mapping{"DateTime": "2024:05:02 08:00:00"},
			expected: "2024:05:02 08:00:00",
			ok:       true,
		},
		{
			name:     "returns malformed value verbatim",
			mapping:  Mapping{"DateTime": "yesterday-ish"},
			expected: "yesterday-ish",
			ok:       true,
		},
		{
			name:    "absent",
			mapping: Mapping{"Make": "Canon"},
		},
		{
			name:    "wrong type",
			mapping: Mapping{"DateTimeOriginal": int64(4)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Timestamp(tt.mapping)
			if ok != tt.ok || got != tt.expected {
				t.Errorf("Expected (%q, %v), got (%q, %v)", tt.expected, tt.ok, got, ok)
			}
		})
	}
}

func TestGeolocationFromImage(t *testing.T) {
	m := Extract(testsupport.TaggedJPEG(t, 0, testsupport.Exif{GPS: &pittsburgh}))

	geo, ok := Geolocation(m)
	if !ok {
		t.Fatal("Expected geolocation")
	}
	if !almostEqual(geo.Latitude, 40+26.0/60+46.0/3600) {
		t.Errorf("Expected latitude 40.4461, got %f", geo.Latitude)
	}
	if !almostEqual(geo.Longitude, -(79 + 58.0/60 + 56.0/3600)) {
		t.Errorf("Expected longitude -79.9822, got %f", geo.Longitude)
	}
}

func TestGeolocationHemispheres(t *testing.T) {
	triple := []Rational{{10, 1}, {30, 1}, {0, 1}}
	magnitude := 10.5

	tests := []struct {
		latRef, lonRef string
		lat, lon       float64
	}{
		{"N", "E", magnitude, magnitude},
		{"S", "E", -magnitude, magnitude},
		{"N", "W", magnitude, -magnitude},
		{"S", "W", -magnitude, -magnitude},
	}

	for _, tt := range tests {
		t.Run(tt.latRef+tt.lonRef, func(t *testing.T) {
			m := Mapping{GPSInfoKey: GPSInfo{1: tt.latRef, 2: triple, 3: tt.lonRef, 4: triple}}
			geo, ok := Geolocation(m)
			if !ok {
				t.Fatal("Expected geolocation")
			}
			if !almostEqual(geo.Latitude, tt.lat) || !almostEqual(geo.Longitude, tt.lon) {
				t.Errorf("Expected (%f, %f), got (%f, %f)", tt.lat, tt.lon, geo.Latitude, geo.Longitude)
			}
		})
	}
}

func TestGeolocationMalformed(t *testing.T) {
	good := []Rational{{10, 1}, {0, 1}, {0, 1}}

	tests := []struct {
		name    string
		mapping Mapping
	}{
		{name: "no gps", mapping: Mapping{}},
		{name: "gps wrong type", mapping: Mapping{GPSInfoKey: "nope"}},
		{name: "missing longitude", mapping: Mapping{GPSInfoKey: GPSInfo{1: "N", 2: good, 3: "E"}}},
		{name: "missing ref", mapping: Mapping{GPSInfoKey: GPSInfo{2: good, 3: "E", 4: good}}},
		{name: "zero denominator", mapping: Mapping{GPSInfoKey: GPSInfo{1: "N", 2: []Rational{{10, 0}, {0, 1}, {0, 1}}, 3: "E", 4: good}}},
		{name: "short triple", mapping: Mapping{GPSInfoKey: GPSInfo{1: "N", 2: good[:2], 3: "E", 4: good}}},
		{name: "scalar rational", mapping: Mapping{GPSInfoKey: GPSInfo{1: "N", 2: Rational{10, 1}, 3: "E", 4: good}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if geo, ok := Geolocation(tt.mapping); ok {
				t.Errorf("Expected absent geolocation, got %+v", geo)
			}
		})
	}
}
