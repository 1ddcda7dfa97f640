package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"

	"github.com/wayfare/wayfare/pkg/store"
	"github.com/wayfare/wayfare/pkg/travel"
)

func SegmentsRouter(router fiber.Router, ms *store.MainStore) {
	router.Get("/search", func(c *fiber.Ctx) error {
		return searchSegments(c, ms)
	})
}

func searchSegments(c *fiber.Ctx, ms *store.MainStore) error {
	origin := c.Query("origin")
	if origin == "" {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter origin must be supplied",
		})
	}

	day, err := time.Parse(travel.DateFormat, c.Query("date"))
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter date should be a YYYY-MM-DD day",
		})
	}

	var category *travel.Category
	if categoryQuery := c.Query("category"); categoryQuery != "" {
		parsed, err := travel.ParseCategory(categoryQuery)
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		category = &parsed
	}

	segments := ms.SearchSegments(day, origin, c.Query("destination"), category)

	if sortQuery := c.Query("sort"); sortQuery != "" {
		criterion, err := travel.ParseCriterion(sortQuery)
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		travel.SortSegments(segments, criterion, c.QueryBool("descending", false))
	}

	groups := []string{"basic"}
	if c.QueryBool("detailed", false) {
		groups = append(groups, "detailed")
	}

	segmentsReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, segments)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce Segments",
		})
	}

	return c.JSON(segmentsReduced)
}
