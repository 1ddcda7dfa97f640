package travel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSegments(t *testing.T) (Segment, Segment) {
	t.Helper()

	first := Segment{
		ID:          "AC100",
		Category:    CategoryFlight,
		Start:       mustTime(t, "2016-09-30 09:00"),
		End:         mustTime(t, "2016-09-30 11:00"),
		Origin:      "Toronto",
		Destination: "Chicago",
		Cost:        300,
		Carrier:     "Air Canada",
	}
	second := Segment{
		ID:          "UA250",
		Category:    CategoryFlight,
		Start:       mustTime(t, "2016-09-30 12:00"),
		End:         mustTime(t, "2016-09-30 14:00"),
		Origin:      "Chicago",
		Destination: "Denver",
		Cost:        150,
		Carrier:     "United",
	}

	return first, second
}

func TestItineraryChainInvariants(t *testing.T) {
	first, second := testSegments(t)

	itinerary := NewItinerary()
	require.NoError(t, itinerary.Add(first))
	require.NoError(t, itinerary.Add(second))

	assert.Equal(t, 2, itinerary.Len())
	assert.Equal(t, "Toronto", itinerary.Origin())
	assert.Equal(t, "Denver", itinerary.Destination())
	assert.Equal(t, first.Start, itinerary.Start())
	assert.Equal(t, second.End, itinerary.End())
	assert.Equal(t, 450.0, itinerary.Cost())
	assert.Equal(t, second.End.Sub(first.Start), itinerary.Duration())
}

func TestItineraryAddRejectsBrokenChains(t *testing.T) {
	first, second := testSegments(t)

	departsTooEarly := second
	departsTooEarly.Start = mustTime(t, "2016-09-30 10:00")

	wrongOrigin := second
	wrongOrigin.Origin = "Boston"

	itinerary := NewItinerary()
	require.NoError(t, itinerary.Add(first))

	assert.ErrorIs(t, itinerary.Add(departsTooEarly), ErrInvalidChain)
	assert.ErrorIs(t, itinerary.Add(wrongOrigin), ErrInvalidChain)
	assert.Equal(t, 1, itinerary.Len())

	require.NoError(t, itinerary.Add(second))

	// arriving back at a visited location is legal at the chain level, but
	// leaving from it again is not
	returnLeg := Segment{
		ID:          "AC900",
		Category:    CategoryFlight,
		Start:       mustTime(t, "2016-09-30 15:00"),
		End:         mustTime(t, "2016-09-30 17:00"),
		Origin:      "Denver",
		Destination: "Toronto",
	}
	require.NoError(t, itinerary.Add(returnLeg))

	leaveAgain := Segment{
		ID:          "AC901",
		Category:    CategoryFlight,
		Start:       mustTime(t, "2016-09-30 18:00"),
		End:         mustTime(t, "2016-09-30 20:00"),
		Origin:      "Toronto",
		Destination: "Boston",
	}
	assert.ErrorIs(t, itinerary.Add(leaveAgain), ErrInvalidChain)
}

func TestItineraryCopyIsIndependent(t *testing.T) {
	first, second := testSegments(t)

	itinerary := NewItinerary()
	require.NoError(t, itinerary.Add(first))

	copied := itinerary.Copy()
	require.NoError(t, itinerary.Add(second))

	assert.Equal(t, 2, itinerary.Len())
	assert.Equal(t, 1, copied.Len())
	assert.Equal(t, "Chicago", copied.Destination())
	assert.False(t, copied.ContainsOrigin("Chicago"))
}

func TestItineraryRemoveLastBacktracks(t *testing.T) {
	first, second := testSegments(t)

	itinerary := NewItinerary()
	require.NoError(t, itinerary.Add(first))
	require.NoError(t, itinerary.Add(second))

	itinerary.RemoveLast()

	assert.Equal(t, 1, itinerary.Len())
	assert.False(t, itinerary.ContainsOrigin("Chicago"))

	// the leg can be re-added after backtracking
	require.NoError(t, itinerary.Add(second))
}

func TestItineraryEqual(t *testing.T) {
	first, second := testSegments(t)

	a := NewItinerary()
	require.NoError(t, a.Add(first))
	require.NoError(t, a.Add(second))

	b := NewItinerary()
	require.NoError(t, b.Add(first))

	assert.False(t, a.Equal(b))

	require.NoError(t, b.Add(second))
	assert.True(t, a.Equal(b))
}

func TestItineraryContains(t *testing.T) {
	first, second := testSegments(t)

	itinerary := NewItinerary()
	require.NoError(t, itinerary.Add(first))

	assert.True(t, itinerary.Contains(first))
	assert.False(t, itinerary.Contains(second))
}
