package routes

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"

	"github.com/wayfare/wayfare/pkg/store"
	"github.com/wayfare/wayfare/pkg/travel"
)

// enumeration budget per request
const plannerTimeout = 10 * time.Second

type itineraryResponse struct {
	Legs []travel.Segment

	Origin      string
	Destination string

	Start time.Time
	End   time.Time

	Cost     float64
	Duration time.Duration
}

func PlannerRouter(router fiber.Router, ms *store.MainStore) {
	router.Get("/:origin/:destination", func(c *fiber.Ctx) error {
		return planBetweenLocations(c, ms)
	})
}

func planBetweenLocations(c *fiber.Ctx, ms *store.MainStore) error {
	origin := c.Params("origin")
	destination := c.Params("destination")

	count, err := strconv.Atoi(c.Query("count", "25"))
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter count should be an integer",
		})
	}

	day, err := time.Parse(travel.DateFormat, c.Query("date"))
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter date should be a YYYY-MM-DD day",
		})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), plannerTimeout)
	defer cancel()

	itineraries := ms.SearchItineraries(ctx, day, origin, destination)

	// Order itineraries by departure time
	sort.SliceStable(itineraries, func(i, j int) bool {
		return itineraries[i].Start().Before(itineraries[j].Start())
	})

	// Once sorted cut off any records higher than our max count
	if len(itineraries) > count {
		itineraries = itineraries[:count]
	}

	responses := make([]itineraryResponse, 0, len(itineraries))
	for _, itinerary := range itineraries {
		var response itineraryResponse
		if err := copier.Copy(&response, itinerary); err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Could not map Itinerary",
			})
		}

		responses = append(responses, response)
	}

	return c.JSON(responses)
}
