package control

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/wayfare/wayfare/pkg/travel"
)

// FilterSegments keeps the segments matching a boolean filter expression,
// e.g. `Cost < 300 && Carrier == "Sparrow Air"`.
func FilterSegments(segments []travel.Segment, source string) ([]travel.Segment, error) {
	program, err := expr.Compile(source, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter: %w", err)
	}

	var matched []travel.Segment
	for _, segment := range segments {
		keep, err := runFilter(program, map[string]any{
			"ID":              segment.ID,
			"Origin":          segment.Origin,
			"Destination":     segment.Destination,
			"Carrier":         segment.Carrier,
			"Cost":            segment.Cost,
			"DurationMinutes": segment.Duration().Minutes(),
		})
		if err != nil {
			return nil, err
		}
		if keep {
			matched = append(matched, segment)
		}
	}

	return matched, nil
}

// FilterItineraries keeps the itineraries matching a boolean filter
// expression, e.g. `Legs <= 2 && Cost < 900`.
func FilterItineraries(itineraries []*travel.Itinerary, source string) ([]*travel.Itinerary, error) {
	program, err := expr.Compile(source, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter: %w", err)
	}

	var matched []*travel.Itinerary
	for _, itinerary := range itineraries {
		keep, err := runFilter(program, map[string]any{
			"Origin":          itinerary.Origin(),
			"Destination":     itinerary.Destination(),
			"Cost":            itinerary.Cost(),
			"Legs":            itinerary.Len(),
			"DurationMinutes": itinerary.Duration().Minutes(),
		})
		if err != nil {
			return nil, err
		}
		if keep {
			matched = append(matched, itinerary)
		}
	}

	return matched, nil
}

func runFilter(program *vm.Program, env map[string]any) (bool, error) {
	output, err := expr.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("failed to run filter: %w", err)
	}

	return output.(bool), nil
}
