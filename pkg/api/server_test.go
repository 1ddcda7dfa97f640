package api

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfare/wayfare/pkg/store"
	"github.com/wayfare/wayfare/pkg/travel"
	"github.com/wayfare/wayfare/pkg/user"
)

func testStore(t *testing.T) *store.MainStore {
	t.Helper()

	ms := store.NewMainStore(0)
	ms.AddSegments([]travel.Segment{
		{
			ID:          "AC100",
			Category:    travel.CategoryFlight,
			Start:       time.Date(2016, time.September, 30, 9, 0, 0, 0, time.UTC),
			End:         time.Date(2016, time.September, 30, 11, 0, 0, 0, time.UTC),
			Origin:      "Toronto",
			Destination: "Chicago",
			Cost:        300,
			Carrier:     "Air Canada",
		},
		{
			ID:          "UA250",
			Category:    travel.CategoryFlight,
			Start:       time.Date(2016, time.September, 30, 12, 0, 0, 0, time.UTC),
			End:         time.Date(2016, time.September, 30, 14, 0, 0, 0, time.UTC),
			Origin:      "Chicago",
			Destination: "Denver",
			Cost:        150.50,
			Carrier:     "United",
		},
	})

	admin := &user.Account{
		Email:      "admin@example.com",
		Type:       user.TypeAdministrator,
		FirstNames: "Ada",
		LastName:   "Admin",
	}
	client := &user.Account{
		Email:      "jane@example.com",
		Type:       user.TypeClient,
		FirstNames: "Jane Marie",
		LastName:   "Doe",
	}
	ms.AddUsers([]*user.Account{admin, client})

	return ms
}

func TestSegmentsSearch(t *testing.T) {
	app := NewApp(testStore(t))

	request := httptest.NewRequest("GET", "/core/segments/search?date=2016-09-30&origin=Toronto", nil)
	response, err := app.Test(request)
	require.NoError(t, err)
	assert.Equal(t, 200, response.StatusCode)

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)

	var segments []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &segments))
	require.Len(t, segments, 1)
	assert.Equal(t, "AC100", segments[0]["ID"])
	assert.NotContains(t, segments[0], "Carrier")
}

func TestSegmentsSearchDetailed(t *testing.T) {
	app := NewApp(testStore(t))

	request := httptest.NewRequest(
		"GET", "/core/segments/search?date=2016-09-30&origin=Toronto&detailed=true", nil)
	response, err := app.Test(request)
	require.NoError(t, err)
	assert.Equal(t, 200, response.StatusCode)

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)

	var segments []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &segments))
	require.Len(t, segments, 1)
	assert.Equal(t, "Air Canada", segments[0]["Carrier"])
}

func TestSegmentsSearchRejectsBadQuery(t *testing.T) {
	app := NewApp(testStore(t))

	response, err := app.Test(httptest.NewRequest("GET", "/core/segments/search?date=2016-09-30", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, response.StatusCode)

	response, err = app.Test(httptest.NewRequest("GET", "/core/segments/search?date=30-09-2016&origin=Toronto", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, response.StatusCode)
}

func TestPlannerSearch(t *testing.T) {
	app := NewApp(testStore(t))

	request := httptest.NewRequest("GET", "/core/planner/Toronto/Denver?date=2016-09-30", nil)
	response, err := app.Test(request)
	require.NoError(t, err)
	assert.Equal(t, 200, response.StatusCode)

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)

	var itineraries []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &itineraries))
	require.Len(t, itineraries, 1)
	assert.Equal(t, "Toronto", itineraries[0]["Origin"])
	assert.Equal(t, "Denver", itineraries[0]["Destination"])
}

func TestAccountsRequirePrivilege(t *testing.T) {
	app := NewApp(testStore(t))

	response, err := app.Test(httptest.NewRequest("GET", "/core/accounts/jane@example.com", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, response.StatusCode)

	request := httptest.NewRequest("GET", "/core/accounts/jane@example.com", nil)
	request.Header.Set(AccountHeader, "jane@example.com")
	response, err = app.Test(request)
	require.NoError(t, err)
	assert.Equal(t, 403, response.StatusCode)

	request = httptest.NewRequest("GET", "/core/accounts/jane@example.com", nil)
	request.Header.Set(AccountHeader, "admin@example.com")
	response, err = app.Test(request)
	require.NoError(t, err)
	assert.Equal(t, 200, response.StatusCode)
}
