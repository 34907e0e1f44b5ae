package api

import (
	"github.com/gofiber/fiber/v2"
)

// DeleteUser removes the account and everything hanging off it; groups the
// deletion empties go with it.
func (handler *Handler) DeleteUser(c *fiber.Ctx) error {
	identity := identityFrom(c)

	if err := handler.repos.Users.DeleteAccount(identity.UserID); err != nil {
		return handler.serviceError(c, err)
	}
	handler.clearSessionCookie(c)

	return c.JSON(fiber.Map{"success": "account deleted."})
}
