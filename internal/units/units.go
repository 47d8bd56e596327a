// Package units converts body measurements between metric and imperial units.
// Stored values are always centimeters and kilograms; conversion happens only
// when reading input or printing output.
package units

import (
	"fmt"
	"math"
	"strings"
)

const (
	// KgToLbsFactor is pounds per kilogram
	KgToLbsFactor = 2.20462
	// CmPerInch is centimeters per inch
	CmPerInch = 2.54
	// InchesPerFoot is inches per foot
	InchesPerFoot = 12
)

// WeightUnit is the unit a weight is entered or displayed in
type WeightUnit string

// HeightUnit is the unit a height is entered or displayed in
type HeightUnit string

const (
	Kg  WeightUnit = "kg"
	Lbs WeightUnit = "lbs"

	Cm HeightUnit = "cm"
	Ft HeightUnit = "ft"
)

// ParseWeightUnit accepts kg or lbs (lb is an alias)
func ParseWeightUnit(s string) (WeightUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "kg":
		return Kg, nil
	case "lb", "lbs":
		return Lbs, nil
	default:
		return "", fmt.Errorf("unknown weight unit: %q (kg|lbs)", s)
	}
}

// ParseHeightUnit accepts cm or ft
func ParseHeightUnit(s string) (HeightUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cm":
		return Cm, nil
	case "ft", "in", "ftin":
		return Ft, nil
	default:
		return "", fmt.Errorf("unknown height unit: %q (cm|ft)", s)
	}
}

// CmToFeetInches splits a height into whole feet and rounded inches.
// When the inches round up to 12 they carry into feet.
func CmToFeetInches(cm float64) (feet, inches int) {
	totalInches := cm / CmPerInch
	feet = int(math.Floor(totalInches / InchesPerFoot))
	inches = int(math.Round(math.Mod(totalInches, InchesPerFoot)))
	if inches == InchesPerFoot {
		feet++
		inches = 0
	}
	return feet, inches
}

// FeetInchesToCm converts feet and inches to whole centimeters
func FeetInchesToCm(feet, inches int) float64 {
	return math.Round(float64(feet*InchesPerFoot+inches) * CmPerInch)
}

// KgToLbs converts kilograms to pounds
func KgToLbs(kg float64) float64 {
	return kg * KgToLbsFactor
}

// LbsToKg converts pounds to kilograms
func LbsToKg(lbs float64) float64 {
	return lbs / KgToLbsFactor
}

// Round1 rounds to one decimal place
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// WeightToKg converts an entered weight to kilograms. Kilograms are kept as
// typed; pounds are converted and rounded to one decimal.
func WeightToKg(value float64, unit WeightUnit) float64 {
	if unit == Lbs {
		return Round1(LbsToKg(value))
	}
	return value
}

// WeightFromKg converts a stored weight to the display unit, rounded to one decimal
func WeightFromKg(kg float64, unit WeightUnit) float64 {
	if unit == Lbs {
		return Round1(KgToLbs(kg))
	}
	return Round1(kg)
}

// FormatWeight renders a stored weight in the display unit
func FormatWeight(kg float64, unit WeightUnit) string {
	if unit == "" {
		unit = Kg
	}
	return fmt.Sprintf("%.1f %s", WeightFromKg(kg, unit), unit)
}

// FormatHeight renders a stored height in the display unit
func FormatHeight(cm float64, unit HeightUnit) string {
	if unit == Ft {
		feet, inches := CmToFeetInches(cm)
		return fmt.Sprintf("%d'%d\"", feet, inches)
	}
	return fmt.Sprintf("%.0f cm", cm)
}
