package api

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"pickaname/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"detail": message})
}

// serviceError translates a service outcome into the HTTP answer. Anything
// without a mapping is an infrastructure failure: logged in full, reported
// only generically.
func (handler *Handler) serviceError(c *fiber.Ctx, err error) error {
	var rateLimited *services.RateLimitedError
	if errors.As(err, &rateLimited) {
		return apiError(c, fiber.StatusTooManyRequests,
			fmt.Sprintf("error: ip locked for %d seconds.", rateLimited.RemainingSeconds()))
	}

	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		return apiError(c, fiber.StatusUnauthorized, "error: incorrect username or password.")
	case errors.Is(err, services.ErrInvalidSession), errors.Is(err, services.ErrMalformedPayload):
		return apiError(c, fiber.StatusUnauthorized, "error: invalid session.")
	case errors.Is(err, services.ErrExpiredSession):
		return apiError(c, fiber.StatusUnauthorized, "error: session expired.")
	case errors.Is(err, services.ErrUsernameTaken):
		return apiError(c, fiber.StatusBadRequest, "error: username is already taken.")
	case errors.Is(err, services.ErrUserNotFound):
		return apiError(c, fiber.StatusNotFound, "error: username not found.")
	case errors.Is(err, services.ErrRecoveryMismatch):
		return apiError(c, fiber.StatusUnauthorized, "error: recovery code does not match.")
	case errors.Is(err, services.ErrGroupNotFound):
		return apiError(c, fiber.StatusNotFound, "error: group does not exist.")
	case errors.Is(err, services.ErrGroupLimit):
		return apiError(c, fiber.StatusBadRequest, "error: user already has 2 groups.")
	case errors.Is(err, services.ErrGroupFull):
		return apiError(c, fiber.StatusBadRequest, "error: group already has 2 users.")
	case errors.Is(err, services.ErrNotGroupMember):
		return apiError(c, fiber.StatusForbidden, "error: user is not in this group.")
	}

	handler.log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	return apiError(c, fiber.StatusInternalServerError, "error: database error.")
}

func validationError(c *fiber.Ctx, message string) error {
	return apiError(c, fiber.StatusUnprocessableEntity, message)
}
