package views

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// AllYears disables the year filter.
const AllYears = "All Years"

type Range string

const (
	RangeOneMonth    Range = "1mo"
	RangeThreeMonths Range = "3mo"
	RangeAll         Range = "all"
)

var ErrInvalidFilter = errors.New("invalid filter")

func ParseRange(s string) (Range, error) {
	switch Range(s) {
	case "", RangeAll:
		return RangeAll, nil
	case RangeOneMonth, RangeThreeMonths:
		return Range(s), nil
	default:
		return "", fmt.Errorf("%w: range %q", ErrInvalidFilter, s)
	}
}

// ParseYear returns 0 for the all years sentinel.
func ParseYear(s string) (int, error) {
	if s == "" || s == AllYears {
		return 0, nil
	}
	year, err := strconv.Atoi(s)
	if err != nil || year < 1 {
		return 0, fmt.Errorf("%w: year %q", ErrInvalidFilter, s)
	}
	return year, nil
}

// FilterByYear keeps items dated in the given calendar year, year 0 keeps everything.
func FilterByYear[T any](items []T, year int, dateOf func(T) time.Time) []T {
	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if year == 0 || dateOf(item).Year() == year {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// FilterByRange keeps items not older than the range cutoff. The cutoff is
// computed from the latest item in items, not from the current time.
func FilterByRange[T any](items []T, rng Range, dateOf func(T) time.Time) []T {
	if rng == RangeAll || len(items) == 0 {
		return append(make([]T, 0, len(items)), items...)
	}

	latest := dateOf(items[0])
	for _, item := range items[1:] {
		if d := dateOf(item); d.After(latest) {
			latest = d
		}
	}

	var cutoff time.Time
	switch rng {
	case RangeOneMonth:
		cutoff = latest.AddDate(0, 0, -30)
	case RangeThreeMonths:
		cutoff = latest.AddDate(0, -3, 0)
	}

	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if !dateOf(item).Before(cutoff) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Filter applies the year filter first and then the range filter on its result.
// The order matters: the range cutoff is relative to the latest entry of the selected year.
func Filter[T any](items []T, year int, rng Range, dateOf func(T) time.Time) []T {
	byYear := FilterByYear(items, year, dateOf)
	return FilterByRange(byYear, rng, dateOf)
}

// AvailableYears lists distinct years present in items, most recent first.
func AvailableYears[T any](items []T, dateOf func(T) time.Time) []int {
	seen := make(map[int]struct{})
	years := make([]int, 0)
	for _, item := range items {
		y := dateOf(item).Year()
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
