package ingest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfare/wayfare/pkg/travel"
	"github.com/wayfare/wayfare/pkg/user"
)

const travelLines = `AC100,2016-09-30 09:00,2016-09-30 11:00,Air Canada,Toronto,Chicago,300.00
UA250,2016-09-30 12:00,2016-09-30 14:00,United,Chicago,Denver,150.50
BAD1,2016-09-30 12:00,United,Chicago,Denver,150.50
BAD2,not-a-date,2016-09-30 14:00,United,Chicago,Denver,150.50
BAD3,2016-09-30 12:00,2016-09-30 14:00,United,Chicago,Denver,-5
`

func TestReadSegmentsSkipsMalformedLines(t *testing.T) {
	segments := ReadSegments(strings.NewReader(travelLines), travel.CategoryFlight)

	require.Len(t, segments, 2)

	first := segments[0]
	assert.Equal(t, "AC100", first.ID)
	assert.Equal(t, travel.CategoryFlight, first.Category)
	assert.Equal(t, "Air Canada", first.Carrier)
	assert.Equal(t, "Toronto", first.Origin)
	assert.Equal(t, "Chicago", first.Destination)
	assert.Equal(t, 300.0, first.Cost)
	assert.Equal(t, "2016-09-30 09:00", first.Start.Format(travel.DateTimeFormat))
	assert.Equal(t, "2016-09-30 11:00", first.End.Format(travel.DateTimeFormat))

	assert.Equal(t, 150.5, segments[1].Cost)
}

const userLines = `Doe,Jane Marie,jane@example.com,10 Front Street,4012888888881881,2019-08-01
Doeson,John,john@example.com,22 King Street,4012888888881882,not-a-date
Short,Line,three
`

func TestReadAccountsSkipsMalformedLines(t *testing.T) {
	accounts := ReadAccounts(strings.NewReader(userLines), user.TypeClient)

	require.Len(t, accounts, 1)

	account := accounts[0]
	assert.Equal(t, "jane@example.com", account.Email)
	assert.Equal(t, user.TypeClient, account.Type)
	assert.Equal(t, "Jane Marie", account.FirstNames)
	assert.Equal(t, "Doe", account.LastName)
	assert.Equal(t, "10 Front Street", account.Address)
	assert.Equal(t, "4012888888881881", account.CreditCard)
	assert.Equal(t, "2019-08-01", account.CardExpiry.Format(travel.DateFormat))
}

func TestSegmentsRoundTripThroughExport(t *testing.T) {
	original := ReadSegments(strings.NewReader(travelLines), travel.CategoryFlight)
	require.Len(t, original, 2)

	var out bytes.Buffer
	require.NoError(t, WriteSegments(&out, original))

	reread := ReadSegments(&out, travel.CategoryFlight)
	assert.Equal(t, original, reread)
}

func TestAccountsRoundTripThroughExport(t *testing.T) {
	original := ReadAccounts(strings.NewReader(userLines), user.TypeClient)
	require.Len(t, original, 1)

	var out bytes.Buffer
	require.NoError(t, WriteAccounts(&out, original))

	reread := ReadAccounts(&out, user.TypeClient)
	require.Len(t, reread, 1)
	assert.Equal(t, original[0].String(), reread[0].String())
}
