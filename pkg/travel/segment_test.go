package travel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse(DateTimeFormat, value)
	require.NoError(t, err)

	return parsed
}

func TestSegmentValidate(t *testing.T) {
	segment := Segment{
		ID:          "AC100",
		Category:    CategoryFlight,
		Start:       mustTime(t, "2016-09-30 09:00"),
		End:         mustTime(t, "2016-09-30 11:00"),
		Origin:      "Toronto",
		Destination: "Chicago",
		Cost:        300,
	}
	assert.NoError(t, segment.Validate())

	inverted := segment
	inverted.Start, inverted.End = inverted.End, inverted.Start
	assert.ErrorIs(t, inverted.Validate(), ErrInvertedTimeRange)

	cyclic := segment
	cyclic.Destination = cyclic.Origin
	assert.ErrorIs(t, cyclic.Validate(), ErrCyclicSegment)
}

func TestSegmentStartsOnDay(t *testing.T) {
	segment := Segment{
		Start: mustTime(t, "2016-09-30 16:37"),
		End:   mustTime(t, "2016-09-30 21:10"),
	}

	assert.True(t, segment.StartsOnDay(mustTime(t, "2016-09-30 00:00")))
	// any instant of the day matches, the check is calendar-day equality
	assert.True(t, segment.StartsOnDay(mustTime(t, "2016-09-30 23:59")))
	assert.False(t, segment.StartsOnDay(mustTime(t, "2016-10-01 00:00")))
}

func TestSegmentStartsWithin(t *testing.T) {
	segment := Segment{Start: mustTime(t, "2016-09-30 12:00")}

	assert.True(t, segment.StartsWithin(mustTime(t, "2016-09-30 11:00"), mustTime(t, "2016-09-30 15:00")))
	// bounds are inclusive
	assert.True(t, segment.StartsWithin(mustTime(t, "2016-09-30 12:00"), mustTime(t, "2016-09-30 12:00")))
	assert.False(t, segment.StartsWithin(mustTime(t, "2016-09-30 12:01"), mustTime(t, "2016-09-30 15:00")))
	assert.False(t, segment.StartsWithin(mustTime(t, "2016-09-30 08:00"), mustTime(t, "2016-09-30 11:59")))

	// a zero upper bound leaves the range open above but still requires the
	// departure to share the lower bound's calendar day
	assert.True(t, segment.StartsWithin(mustTime(t, "2016-09-30 00:00"), time.Time{}))
	late := Segment{Start: mustTime(t, "2016-10-01 09:00")}
	assert.False(t, late.StartsWithin(mustTime(t, "2016-09-30 00:00"), time.Time{}))

	// an overnight window anchors the following day through its upper bound
	overnight := Segment{Start: mustTime(t, "2016-10-01 01:00")}
	assert.True(t, overnight.StartsWithin(mustTime(t, "2016-09-30 23:00"), mustTime(t, "2016-10-01 03:00")))
}

func TestParseCategory(t *testing.T) {
	category, err := ParseCategory("flight")
	require.NoError(t, err)
	assert.Equal(t, CategoryFlight, category)

	_, err = ParseCategory("teleport")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestParseCriterion(t *testing.T) {
	criterion, err := ParseCriterion("duration")
	require.NoError(t, err)
	assert.Equal(t, ByDuration, criterion)

	_, err = ParseCriterion("shiny")
	assert.Error(t, err)
}
