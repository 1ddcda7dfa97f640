package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"

	"github.com/wayfare/wayfare/pkg/store"
)

// accountResponse deliberately has no payment or password fields.
type accountResponse struct {
	Email      string
	FirstNames string
	LastName   string
	Address    string

	BookedItineraries int
}

func AccountsRouter(router fiber.Router, ms *store.MainStore) {
	router.Get("/search", func(c *fiber.Ctx) error {
		return searchAccounts(c, ms)
	})
	router.Get("/:email", func(c *fiber.Ctx) error {
		return getAccount(c, ms)
	})
}

func searchAccounts(c *fiber.Ctx, ms *store.MainStore) error {
	accounts := ms.SearchUsersByName(c.Query("first"), c.Query("last"))

	responses := make([]accountResponse, 0, len(accounts))
	for _, account := range accounts {
		var response accountResponse
		if err := copier.Copy(&response, account); err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Could not map Account",
			})
		}
		response.BookedItineraries = len(account.Booked())

		responses = append(responses, response)
	}

	return c.JSON(responses)
}

func getAccount(c *fiber.Ctx, ms *store.MainStore) error {
	account, ok := ms.User(c.Params("email"))
	if !ok {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "No account is registered under that email",
		})
	}

	var response accountResponse
	if err := copier.Copy(&response, account); err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Could not map Account",
		})
	}
	response.BookedItineraries = len(account.Booked())

	return c.JSON(response)
}
