package api

import (
	"github.com/gofiber/fiber/v2"
)

type credentialsInput struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type recoveryInput struct {
	Username      string `json:"username" form:"username"`
	RecoveryToken string `json:"recovery_token" form:"recovery_token"`
	NewPassword   string `json:"new_password" form:"new_password"`
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var credentials credentialsInput
	if err := c.BodyParser(&credentials); err != nil {
		return apiError(c, fiber.StatusBadRequest, "error: invalid input.")
	}

	result, err := handler.auth.Login(credentials.Username, credentials.Password, clientIP(c))
	if err != nil {
		return handler.serviceError(c, err)
	}

	payload := SessionPayload{
		UserID:       result.UserID,
		SessionToken: result.SessionToken,
		Username:     result.Username,
		GroupCodes:   result.GroupCodes,
	}
	if err := handler.setSessionCookie(c, payload); err != nil {
		return handler.serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":     result.Username,
		"id":          result.UserID,
		"group_codes": payload.GroupCodes,
	})
}

func (handler *Handler) NewUser(c *fiber.Ctx) error {
	var credentials credentialsInput
	if err := c.BodyParser(&credentials); err != nil {
		return apiError(c, fiber.StatusBadRequest, "error: invalid input.")
	}
	if message := validateUsername(credentials.Username); message != "" {
		return validationError(c, message)
	}
	if message := validatePassword(credentials.Password); message != "" {
		return validationError(c, message)
	}

	result, err := handler.auth.Register(credentials.Username, credentials.Password)
	if err != nil {
		return handler.serviceError(c, err)
	}

	payload := SessionPayload{
		UserID:       result.UserID,
		SessionToken: result.SessionToken,
		Username:     result.Username,
		GroupCodes:   map[string]string{},
	}
	if err := handler.setSessionCookie(c, payload); err != nil {
		return handler.serviceError(c, err)
	}

	// The recovery token is shown this one time only.
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":        result.Username,
		"id":             result.UserID,
		"recovery_token": result.RecoveryToken,
	})
}

// RenewCookie re-derives the display fields and applies the anti-churn
// renewal; while more than 23 hours of validity remain the token in the
// refreshed cookie is the one already stored.
func (handler *Handler) RenewCookie(c *fiber.Ctx) error {
	identity := identityFrom(c)

	token, _, err := handler.sessions.Renew(identity.UserID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	groupCodes, err := handler.groups.Codes(identity.UserID)
	if err != nil {
		return handler.serviceError(c, err)
	}

	payload := SessionPayload{
		UserID:       identity.UserID,
		SessionToken: token,
		Username:     identity.Username,
		GroupCodes:   groupCodes,
	}
	if err := handler.setSessionCookie(c, payload); err != nil {
		return handler.serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":     identity.Username,
		"id":          identity.UserID,
		"group_codes": groupCodes,
	})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	identity := identityFrom(c)

	if err := handler.sessions.Logout(identity.UserID); err != nil {
		return handler.serviceError(c, err)
	}
	handler.clearSessionCookie(c)

	return c.JSON(fiber.Map{"success": "logged out."})
}

func (handler *Handler) AccountRecovery(c *fiber.Ctx) error {
	var input recoveryInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "error: invalid input.")
	}
	if message := validateRecoveryToken(input.RecoveryToken); message != "" {
		return validationError(c, message)
	}
	if message := validatePassword(input.NewPassword); message != "" {
		return validationError(c, message)
	}

	if err := handler.auth.Recover(input.Username, input.RecoveryToken, input.NewPassword); err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": "password changed."})
}
