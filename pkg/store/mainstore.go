package store

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wayfare/wayfare/pkg/travel"
	"github.com/wayfare/wayfare/pkg/user"
	"github.com/wayfare/wayfare/pkg/util"
)

// MainStore owns one TravelStore per category, the user store, and an
// origin-keyed index over all segments that drives itinerary enumeration.
//
// A single coarse lock keeps replace cascades atomic to readers: a reader can
// never observe a segment gone from its category store but still present in
// the origin index, or the other way round.
type MainStore struct {
	mu sync.RWMutex

	travels map[travel.Category]*TravelStore
	users   *UserStore

	// origin token -> segments departing from it, in insertion order
	originIndex map[string][]travel.Segment

	maxStopover time.Duration
}

func NewMainStore(maxStopover time.Duration) *MainStore {
	if maxStopover <= 0 {
		maxStopover = travel.DefaultMaxStopover
	}

	travels := map[travel.Category]*TravelStore{}
	for _, category := range travel.Categories() {
		travels[category] = NewTravelStore(category)
	}

	return &MainStore{
		travels:     travels,
		users:       NewUserStore(),
		originIndex: map[string][]travel.Segment{},
		maxStopover: maxStopover,
	}
}

func (ms *MainStore) MaxStopover() time.Duration {
	return ms.maxStopover
}

// AddSegment validates and stores a segment. An invalid segment is logged and
// dropped. Replacing an existing segment removes the old one from the origin
// index and purges every booked itinerary that referenced it before the new
// segment is indexed.
func (ms *MainStore) AddSegment(segment travel.Segment) {
	if err := segment.Validate(); err != nil {
		log.Info().
			Str("id", segment.ID).
			Str("category", segment.Category.String()).
			Err(err).
			Msg("Segment has invalid data, skipping")

		return
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	displaced, replaced := ms.travels[segment.Category].Put(segment)
	if replaced {
		ms.removeFromIndex(displaced)

		for _, account := range ms.users.All() {
			account.PurgeSegment(displaced)
		}
	}

	ms.addToIndex(segment)
}

func (ms *MainStore) AddSegments(segments []travel.Segment) {
	for _, segment := range segments {
		ms.AddSegment(segment)
	}
}

func (ms *MainStore) removeFromIndex(segment travel.Segment) {
	bucket, ok := ms.originIndex[segment.Origin]
	if !ok {
		return
	}

	util.InPlaceFilter(&bucket, func(indexed travel.Segment) bool {
		return indexed != segment
	})

	if len(bucket) == 0 {
		delete(ms.originIndex, segment.Origin)
	} else {
		ms.originIndex[segment.Origin] = bucket
	}
}

func (ms *MainStore) addToIndex(segment travel.Segment) {
	ms.originIndex[segment.Origin] = append(ms.originIndex[segment.Origin], segment)
}

func (ms *MainStore) AddUser(account *user.Account) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.users.Put(account)
}

func (ms *MainStore) AddUsers(accounts []*user.Account) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.users.PutAll(accounts)
}

func (ms *MainStore) User(id string) (*user.Account, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	return ms.users.Get(id)
}

func (ms *MainStore) Users() []*user.Account {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	return ms.users.All()
}

func (ms *MainStore) SearchUsersByName(firstNames string, lastName string) []*user.Account {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	return ms.users.SearchByName(firstNames, lastName)
}

func (ms *MainStore) Travel(category travel.Category, id string) (travel.Segment, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	return ms.travels[category].Get(id)
}

func (ms *MainStore) Travels(category travel.Category) []travel.Segment {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	return ms.travels[category].All()
}

// SearchSegments returns single segments departing from origin on the given
// calendar day. A nil category searches every category through the origin
// index; an empty destination matches all destinations.
func (ms *MainStore) SearchSegments(day time.Time, origin string, destination string, category *travel.Category) []travel.Segment {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	if category != nil {
		return ms.travels[*category].Search(day, origin, destination)
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	return ms.listBetween(dayStart, time.Time{}, origin, destination)
}

// listBetween reads the origin index bucket for origin and keeps the segments
// departing within [lower, upper]. Callers must hold at least a read lock.
func (ms *MainStore) listBetween(lower, upper time.Time, origin string, destination string) []travel.Segment {
	bucket, ok := ms.originIndex[origin]
	if !ok {
		return nil
	}

	var matched []travel.Segment
	for _, segment := range bucket {
		if (destination == "" || segment.Destination == destination) && segment.StartsWithin(lower, upper) {
			matched = append(matched, segment)
		}
	}

	return matched
}

// SearchItineraries enumerates every valid chain of segments departing from
// origin on the given calendar day and ending at destination. The first leg
// matches by day; each later leg must depart between the previous leg's
// arrival and that arrival plus the maximum stopover. The enumeration is
// deliberately exhaustive, so its worst case is exponential; ctx bounds how
// long a query may run.
func (ms *MainStore) SearchItineraries(ctx context.Context, day time.Time, origin string, destination string) []*travel.Itinerary {
	if origin == destination {
		log.Warn().
			Str("origin", origin).
			Msg("Itinerary search rejected, origin and destination are the same")

		return nil
	}

	ms.mu.RLock()
	defer ms.mu.RUnlock()

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	var results []*travel.Itinerary
	ms.enumerate(ctx, dayStart, time.Time{}, origin, destination, travel.NewItinerary(), &results)

	return results
}

func (ms *MainStore) enumerate(ctx context.Context, lower, upper time.Time, origin, destination string, partial *travel.Itinerary, results *[]*travel.Itinerary) {
	if ctx.Err() != nil {
		return
	}

	if origin == destination {
		// reached the destination, the partial chain is a result; copy it
		// because later branches keep extending the shared prefix
		*results = append(*results, partial.Copy())

		return
	}

	for _, candidate := range ms.listBetween(lower, upper, origin, "") {
		if partial.ContainsOrigin(candidate.Destination) {
			continue
		}

		if err := partial.Add(candidate); err != nil {
			log.Error().Err(err).Str("id", candidate.ID).Msg("Enumeration produced an invalid chain extension")

			continue
		}

		ms.enumerate(ctx, candidate.End, candidate.End.Add(ms.maxStopover), candidate.Destination, destination, partial, results)

		partial.RemoveLast()
	}
}

// Clear empties every store and the origin index.
func (ms *MainStore) Clear() {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.users.Clear()
	for _, travelStore := range ms.travels {
		travelStore.Clear()
	}

	for origin := range ms.originIndex {
		delete(ms.originIndex, origin)
	}
}
