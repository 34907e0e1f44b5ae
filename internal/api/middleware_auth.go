package api

import (
	"github.com/gofiber/fiber/v2"

	"pickaname/internal/services"
)

const (
	localsSessionPayload = "session_payload"
	localsIdentity       = "identity"
)

// AuthRequired decodes and validates the session cookie before letting a
// request through. Handlers behind it read the payload and identity out of
// Locals.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	payload, err := decodeSessionPayload(c.Cookies(sessionCookieName))
	if err != nil {
		return handler.serviceError(c, err)
	}

	identity, err := handler.sessions.Validate(payload.SessionToken, payload.UserID)
	if err != nil {
		return handler.serviceError(c, err)
	}

	c.Locals(localsSessionPayload, payload)
	c.Locals(localsIdentity, identity)
	return c.Next()
}

func sessionPayloadFrom(c *fiber.Ctx) SessionPayload {
	payload, _ := c.Locals(localsSessionPayload).(SessionPayload)
	return payload
}

func identityFrom(c *fiber.Ctx) services.Identity {
	identity, _ := c.Locals(localsIdentity).(services.Identity)
	return identity
}

// optionalUserID validates the cookie if one is present and usable; the
// search routes use it to filter rated names for logged-in callers while
// still serving guests and callers with broken cookies.
func (handler *Handler) optionalUserID(c *fiber.Ctx) *uint {
	payload, err := decodeSessionPayload(c.Cookies(sessionCookieName))
	if err != nil {
		return nil
	}
	identity, err := handler.sessions.Validate(payload.SessionToken, payload.UserID)
	if err != nil {
		return nil
	}
	return &identity.UserID
}
