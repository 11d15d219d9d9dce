package views

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/2beens/fitlog/internal/gymstats/favorites"
	"github.com/2beens/fitlog/internal/gymstats/workouts"
	"github.com/2beens/fitlog/internal/users"
)

type MonthlyAverage struct {
	Year    int        `json:"year"`
	Month   time.Month `json:"month"`
	Average float64    `json:"average"`
	Count   int        `json:"count"`
}

// Key is in the "2006-01" form.
func (m MonthlyAverage) Key() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// MonthlyAverages groups items by year and month and averages their values.
// Groups come sorted from the most recent month.
func MonthlyAverages[T any](items []T, dateOf func(T) time.Time, valueOf func(T) float64) []MonthlyAverage {
	type monthKey struct {
		year  int
		month time.Month
	}
	type acc struct {
		sum   float64
		count int
	}

	groups := make(map[monthKey]*acc)
	for _, item := range items {
		d := dateOf(item)
		k := monthKey{year: d.Year(), month: d.Month()}
		a, ok := groups[k]
		if !ok {
			a = &acc{}
			groups[k] = a
		}
		a.sum += valueOf(item)
		a.count++
	}

	averages := make([]MonthlyAverage, 0, len(groups))
	for k, a := range groups {
		averages = append(averages, MonthlyAverage{
			Year:    k.year,
			Month:   k.month,
			Average: a.sum / float64(a.count),
			Count:   a.count,
		})
	}
	sort.Slice(averages, func(i, j int) bool {
		if averages[i].Year != averages[j].Year {
			return averages[i].Year > averages[j].Year
		}
		return averages[i].Month > averages[j].Month
	})
	return averages
}

type DeltaColor string

const (
	ColorNeutral DeltaColor = "neutral"
	ColorGood    DeltaColor = "green"
	ColorBad     DeltaColor = "red"
)

// ColorForDelta tells if a weight change is moving towards the user's goal.
func ColorForDelta(delta float64, goalMode users.GoalMode) DeltaColor {
	if delta == 0 {
		return ColorNeutral
	}
	switch goalMode {
	case users.GoalModeLose:
		if delta < 0 {
			return ColorGood
		}
		return ColorBad
	case users.GoalModeGain:
		if delta > 0 {
			return ColorGood
		}
		return ColorBad
	default:
		return ColorNeutral
	}
}

type Delta struct {
	// Value is nil for the oldest entry, it has nothing to compare to.
	Value *float64   `json:"delta"`
	Color DeltaColor `json:"color"`
}

// Deltas expects values ordered from the most recent, each entry is compared
// with the next older one.
func Deltas(values []float64, goalMode users.GoalMode) []Delta {
	deltas := make([]Delta, len(values))
	for i := range values {
		if i == len(values)-1 {
			deltas[i] = Delta{Color: ColorNeutral}
			continue
		}
		d := values[i] - values[i+1]
		deltas[i] = Delta{Value: &d, Color: ColorForDelta(d, goalMode)}
	}
	return deltas
}

// TotalVolume sums weight*reps over every set of every workout.
func TotalVolume(list []workouts.Workout) float64 {
	var total float64
	for _, w := range list {
		total += w.Volume()
	}
	return total
}

// IsFavoritedTitle reports if a saved workout already uses title, ignoring case and surrounding spaces.
func IsFavoritedTitle(title string, saved []favorites.SavedWorkout) bool {
	normalized := strings.ToLower(strings.TrimSpace(title))
	for _, sw := range saved {
		if strings.ToLower(strings.TrimSpace(sw.Title)) == normalized {
			return true
		}
	}
	return false
}
