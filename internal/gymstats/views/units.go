package views

import (
	"fmt"
	"math"
)

type Unit string

const (
	UnitKg Unit = "kg"
	UnitLb Unit = "lb"
)

const LbsPerKg = 2.20462

func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case "", UnitKg:
		return UnitKg, nil
	case UnitLb, "lbs":
		return UnitLb, nil
	default:
		return "", fmt.Errorf("unknown unit: %q", s)
	}
}

func KgToLbs(kg float64) float64 {
	return kg * LbsPerKg
}

func LbsToKg(lbs float64) float64 {
	return lbs / LbsPerKg
}

// ToDisplay converts a stored kg value into the given display unit.
func ToDisplay(kg float64, unit Unit) float64 {
	if unit == UnitLb {
		return KgToLbs(kg)
	}
	return kg
}

// FromDisplay converts a value entered in the display unit back to kg.
func FromDisplay(v float64, unit Unit) float64 {
	if unit == UnitLb {
		return LbsToKg(v)
	}
	return v
}

// Round1 rounds to one decimal, the precision weights are shown with.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
