package store

import (
	"time"

	"github.com/wayfare/wayfare/pkg/travel"
)

// TravelStore holds every segment of one category.
type TravelStore struct {
	*IdentifiableStore[string, travel.Segment]

	category travel.Category
}

func NewTravelStore(category travel.Category) *TravelStore {
	return &TravelStore{
		IdentifiableStore: NewIdentifiableStore[string, travel.Segment](),
		category:          category,
	}
}

func (ts *TravelStore) Category() travel.Category {
	return ts.category
}

// Search returns every segment of this category departing from origin on the
// given calendar day. An empty destination matches all destinations. Results
// come back in store iteration (identifier) order.
func (ts *TravelStore) Search(day time.Time, origin string, destination string) []travel.Segment {
	var matched []travel.Segment
	for _, segment := range ts.All() {
		if segment.StartsOnDay(day) && segment.Origin == origin &&
			(destination == "" || segment.Destination == destination) {
			matched = append(matched, segment)
		}
	}

	return matched
}
