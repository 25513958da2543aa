package measurement

import "math"

// Category thresholds in centimeters. Each bound belongs to the upper category.
const (
	CategoryAMinCM = 40.0
	CategoryBMinCM = 30.0
)

// Measurement is a diameter together with the values derived from it
type Measurement struct {
	DiameterCM float64
	AreaCM2    float64
	Category   string
}

// Classify derives the cross-sectional area and size category from a diameter.
// It accepts any non-negative diameter, including zero.
func Classify(diameterCM float64) Measurement {
	return Measurement{
		DiameterCM: diameterCM,
		AreaCM2:    Area(diameterCM),
		Category:   Category(diameterCM),
	}
}

// Area returns pi*(d/2)^2 rounded to two decimals
func Area(diameterCM float64) float64 {
	r := diameterCM / 2
	return math.Round(math.Pi*r*r*100) / 100
}

func Category(diameterCM float64) string {
	switch {
	case diameterCM >= CategoryAMinCM:
		return "A"
	case diameterCM >= CategoryBMinCM:
		return "B"
	default:
		return "C"
	}
}
