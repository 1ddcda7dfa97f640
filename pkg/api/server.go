package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wayfare/wayfare/pkg/api/routes"
	"github.com/wayfare/wayfare/pkg/store"
	"github.com/wayfare/wayfare/pkg/user"
)

// AccountHeader names the registered account a request acts as. Requests
// without it run at privilege level zero.
const AccountHeader = "X-Wayfare-Account"

func NewApp(ms *store.MainStore) *fiber.App {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.SegmentsRouter(group.Group("/segments"), ms)
	routes.PlannerRouter(group.Group("/planner"), ms)
	routes.AccountsRouter(group.Group("/accounts", RequirePrivilege(ms, user.PrivilegeViewOther)), ms)

	return webApp
}

func SetupServer(listen string, ms *store.MainStore) error {
	return NewApp(ms).Listen(listen)
}

// RequirePrivilege rejects requests whose acting account, named by the
// account header, does not reach the required privilege level.
func RequirePrivilege(ms *store.MainStore, required int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := c.Get(AccountHeader)
		if email == "" {
			c.SendStatus(fiber.StatusUnauthorized)
			return c.JSON(fiber.Map{
				"error": "An account header must be supplied for this request",
			})
		}

		account, ok := ms.User(email)
		if !ok || !account.HasPrivilege(required) {
			c.SendStatus(fiber.StatusForbidden)
			return c.JSON(fiber.Map{
				"error": "The account does not have the privileges for this request",
			})
		}

		return c.Next()
	}
}
