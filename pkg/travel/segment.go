package travel

import (
	"errors"
	"fmt"
	"time"
)

const (
	DateFormat     = "2006-01-02"
	DateTimeFormat = "2006-01-02 15:04"
)

// DefaultMaxStopover is the largest gap allowed between a segment's arrival
// and the next segment's departure within an itinerary.
const DefaultMaxStopover = 6 * time.Hour

var (
	ErrInvertedTimeRange = errors.New("segment ends before it starts")
	ErrCyclicSegment     = errors.New("segment origin and destination are the same")
	ErrUnknownCategory   = errors.New("unknown travel category")
)

// Category is the closed set of travel kinds the catalogue stores. New
// categories are appended to the end as the snapshot format stores ordinals.
type Category uint8

const (
	CategoryFlight Category = iota
)

func Categories() []Category {
	return []Category{CategoryFlight}
}

func (c Category) String() string {
	switch c {
	case CategoryFlight:
		return "flight"
	}

	return fmt.Sprintf("category(%d)", uint8(c))
}

func ParseCategory(value string) (Category, error) {
	for _, category := range Categories() {
		if category.String() == value {
			return category, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, value)
}

// Segment is one scheduled travel unit. Identity for replacement cascades is
// value equality over every field, so the struct must stay comparable.
type Segment struct {
	ID       string   `groups:"basic"`
	Category Category `groups:"basic"`

	Start time.Time `groups:"basic"`
	End   time.Time `groups:"basic"`

	Origin      string `groups:"basic"`
	Destination string `groups:"basic"`

	Cost float64 `groups:"basic"`

	// Flight specific
	Carrier string `groups:"detailed"`
}

func (s Segment) Identifier() string {
	return s.ID
}

func (s Segment) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Validate reports the first domain invariant the segment breaks.
func (s Segment) Validate() error {
	if s.End.Before(s.Start) {
		return ErrInvertedTimeRange
	}
	if s.Origin == s.Destination {
		return ErrCyclicSegment
	}

	return nil
}

// StartsOnDay reports whether the segment departs on the given calendar day.
func (s Segment) StartsOnDay(day time.Time) bool {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	return s.StartsWithin(dayStart, time.Time{})
}

// StartsWithin reports whether the segment departs inside [lower, upper]
// (inclusive). A zero upper leaves the range unbounded above. The departure
// must also fall on the same calendar day as one of the bounds; an itinerary
// leg can therefore follow its predecessor across midnight only while the
// stopover window reaches into the next day.
func (s Segment) StartsWithin(lower, upper time.Time) bool {
	if s.Start.Before(lower) {
		return false
	}
	if !upper.IsZero() && s.Start.After(upper) {
		return false
	}

	return sameDay(s.Start, lower) || (!upper.IsZero() && sameDay(s.Start, upper))
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func (s Segment) String() string {
	return fmt.Sprintf("%s,%s,%s,%s,%s,%s,%.2f",
		s.ID,
		s.Start.Format(DateTimeFormat), s.End.Format(DateTimeFormat),
		s.Carrier,
		s.Origin, s.Destination,
		s.Cost,
	)
}
