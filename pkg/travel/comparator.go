package travel

import (
	"fmt"
	"sort"
	"time"
)

// Criterion selects which derived field search results are ordered by.
type Criterion uint8

const (
	ByCost Criterion = iota
	ByDuration
)

func ParseCriterion(value string) (Criterion, error) {
	switch value {
	case "cost":
		return ByCost, nil
	case "duration":
		return ByDuration, nil
	}

	return 0, fmt.Errorf("unknown sort criterion %q", value)
}

// SortSegments orders segments in place by the given criterion.
func SortSegments(segments []Segment, criterion Criterion, descending bool) {
	sortTravels(segments, criterion, descending,
		func(s Segment) float64 { return s.Cost },
		func(s Segment) time.Duration { return s.Duration() },
	)
}

// SortItineraries orders itineraries in place by the given criterion.
func SortItineraries(itineraries []*Itinerary, criterion Criterion, descending bool) {
	sortTravels(itineraries, criterion, descending,
		func(it *Itinerary) float64 { return it.Cost() },
		func(it *Itinerary) time.Duration { return it.Duration() },
	)
}

func sortTravels[T any](travels []T, criterion Criterion, descending bool, cost func(T) float64, duration func(T) time.Duration) {
	less := func(i, j int) bool {
		if criterion == ByDuration {
			return duration(travels[i]) < duration(travels[j])
		}

		return cost(travels[i]) < cost(travels[j])
	}

	if descending {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}

	sort.SliceStable(travels, less)
}
