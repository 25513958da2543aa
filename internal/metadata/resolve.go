package metadata

import (
	"github.com/lehigh-university-libraries/treeslice/internal/models"
)

// GPS tag indices inside GPSInfo
const (
	gpsLatitudeRef  uint16 = 1
	gpsLatitude     uint16 = 2
	gpsLongitudeRef uint16 = 3
	gpsLongitude    uint16 = 4
)

// Timestamp returns the capture time string, preferring the original capture
// tag over the modification tag. The value is returned verbatim.
func Timestamp(m Mapping) (string, bool) {
	for _, key := range []string{"DateTimeOriginal", "DateTime"} {
		if s, ok := m[key].(string); ok {
			return s, true
		}
	}
	return "", false
}

// Geolocation converts the GPS degree/minute/second rationals into signed
// decimal degrees. Any missing or malformed piece yields false.
func Geolocation(m Mapping) (models.Geolocation, bool) {
	gps, ok := m[GPSInfoKey].(GPSInfo)
	if !ok || len(gps) == 0 {
		return models.Geolocation{}, false
	}

	lat, ok := coordinate(gps, gpsLatitude, gpsLatitudeRef, "S")
	if !ok {
		return models.Geolocation{}, false
	}
	lon, ok := coordinate(gps, gpsLongitude, gpsLongitudeRef, "W")
	if !ok {
		return models.Geolocation{}, false
	}

	return models.Geolocation{Latitude: lat, Longitude: lon}, true
}

func coordinate(gps GPSInfo, valueKey, refKey uint16, negative string) (float64, bool) {
	ref, ok := gps[refKey].(string)
	if !ok {
		return 0, false
	}
	dms, ok := gps[valueKey].([]Rational)
	if !ok {
		return 0, false
	}
	v, ok := DMSToDegrees(dms)
	if !ok {
		return 0, false
	}
	if ref == negative {
		v = -v
	}
	return v, true
}

// DMSToDegrees converts a degree/minute/second rational triple to decimal degrees
func DMSToDegrees(dms []Rational) (float64, bool) {
	if len(dms) != 3 {
		return 0, false
	}
	var parts [3]float64
	for i, r := range dms {
		if r.Den == 0 {
			return 0, false
		}
		parts[i] = float64(r.Num) / float64(r.Den)
	}
	return parts[0] + parts[1]/60 + parts[2]/3600, true
}
