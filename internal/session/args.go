package session

import (
	"fmt"
	"strconv"
	"strings"

	"ironpulse/local-app/internal/units"
)

func parseInt(name, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q is not a whole number", name, s)
	}
	return v, nil
}

func parseFloat(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q is not a number", name, s)
	}
	return v, nil
}

// parseFeetInches reads a height given as 5'11, 5'11" or as separate feet and inches args
func parseFeetInches(value string, rest []string) (feet, inches int, err error) {
	value = strings.TrimSuffix(strings.TrimSpace(value), "\"")
	if ft, in, ok := strings.Cut(value, "'"); ok {
		if feet, err = parseInt("feet", ft); err != nil {
			return 0, 0, err
		}
		if in != "" {
			if inches, err = parseInt("inches", in); err != nil {
				return 0, 0, err
			}
		}
	} else {
		if feet, err = parseInt("feet", value); err != nil {
			return 0, 0, err
		}
		if len(rest) > 0 {
			if inches, err = parseInt("inches", rest[0]); err != nil {
				return 0, 0, err
			}
		}
	}
	if inches < 0 || inches >= units.InchesPerFoot {
		return 0, 0, fmt.Errorf("invalid inches: %d (0-11)", inches)
	}
	return feet, inches, nil
}

// parseHeightCm reads a height in the session's height unit and returns centimeters
func (s *Session) parseHeightCm(value string, rest []string) (float64, error) {
	if s.heightUnit == units.Ft {
		feet, inches, err := parseFeetInches(value, rest)
		if err != nil {
			return 0, err
		}
		return units.FeetInchesToCm(feet, inches), nil
	}
	return parseFloat("height", value)
}

// parseWeightKg reads a weight in the session's weight unit and returns kilograms
func (s *Session) parseWeightKg(value string) (float64, error) {
	w, err := parseFloat("weight", value)
	if err != nil {
		return 0, err
	}
	return units.WeightToKg(w, s.weightUnit), nil
}
