package travel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ErrInvalidChain is returned when a segment cannot legally extend an
// itinerary. Hitting it during enumeration indicates a bug in the search, not
// bad input data, so callers must not swallow it silently.
var ErrInvalidChain = errors.New("segment does not extend the itinerary")

// Itinerary is a non-empty ordered chain of segments where every leg departs
// at or after the previous leg's arrival, departs from the previous leg's
// destination, and never revisits an origin. Aggregates are always derived
// from the chain so they cannot drift out of sync with it.
type Itinerary struct {
	legs    []Segment
	visited map[string]bool
}

func NewItinerary() *Itinerary {
	return &Itinerary{
		visited: map[string]bool{},
	}
}

// Add appends a segment to the chain, or returns an error wrapping
// ErrInvalidChain when the segment breaks the chain invariants.
func (it *Itinerary) Add(segment Segment) error {
	if len(it.legs) > 0 {
		if segment.Start.Before(it.End()) || segment.Origin != it.Destination() || it.ContainsOrigin(segment.Origin) {
			return fmt.Errorf(
				"%w: it must leave %s at or after %s but leaves %s at %s",
				ErrInvalidChain,
				it.Destination(), it.End().Format(DateTimeFormat),
				segment.Origin, segment.Start.Format(DateTimeFormat),
			)
		}
	}

	it.legs = append(it.legs, segment)
	it.visited[segment.Origin] = true

	return nil
}

// RemoveLast drops the most recently added leg. The enumeration uses it to
// backtrack after exploring a branch.
func (it *Itinerary) RemoveLast() {
	if len(it.legs) == 0 {
		return
	}

	last := it.legs[len(it.legs)-1]
	it.legs = it.legs[:len(it.legs)-1]
	delete(it.visited, last.Origin)
}

// Copy returns an itinerary with its own chain structure. Segments themselves
// are immutable values so they are shared as-is.
func (it *Itinerary) Copy() *Itinerary {
	return &Itinerary{
		legs:    slices.Clone(it.legs),
		visited: maps.Clone(it.visited),
	}
}

func (it *Itinerary) Contains(segment Segment) bool {
	return slices.Contains(it.legs, segment)
}

// ContainsOrigin reports whether any leg already departs from the location.
func (it *Itinerary) ContainsOrigin(location string) bool {
	return it.visited[location]
}

func (it *Itinerary) Len() int {
	return len(it.legs)
}

func (it *Itinerary) IsEmpty() bool {
	return len(it.legs) == 0
}

func (it *Itinerary) Legs() []Segment {
	return slices.Clone(it.legs)
}

// Equal reports whether both itineraries chain exactly the same segments in
// the same order.
func (it *Itinerary) Equal(other *Itinerary) bool {
	return slices.Equal(it.legs, other.legs)
}

func (it *Itinerary) Start() time.Time {
	if it.IsEmpty() {
		return time.Time{}
	}

	return it.legs[0].Start
}

func (it *Itinerary) End() time.Time {
	if it.IsEmpty() {
		return time.Time{}
	}

	return it.legs[len(it.legs)-1].End
}

func (it *Itinerary) Origin() string {
	if it.IsEmpty() {
		return ""
	}

	return it.legs[0].Origin
}

func (it *Itinerary) Destination() string {
	if it.IsEmpty() {
		return ""
	}

	return it.legs[len(it.legs)-1].Destination
}

func (it *Itinerary) Cost() float64 {
	total := 0.0
	for _, leg := range it.legs {
		total += leg.Cost
	}

	return total
}

func (it *Itinerary) Duration() time.Duration {
	return it.End().Sub(it.Start())
}

func (it *Itinerary) String() string {
	var builder strings.Builder
	for _, leg := range it.legs {
		builder.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%s\n",
			leg.ID,
			leg.Start.Format(DateTimeFormat), leg.End.Format(DateTimeFormat),
			leg.Carrier, leg.Origin, leg.Destination,
		))
	}
	builder.WriteString(fmt.Sprintf("%.2f\n", it.Cost()))

	duration := it.Duration()
	builder.WriteString(fmt.Sprintf("%02d:%02d", int(duration.Hours()), int(duration.Minutes())%60))

	return builder.String()
}
