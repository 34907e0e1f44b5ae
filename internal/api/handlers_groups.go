package api

import (
	"github.com/gofiber/fiber/v2"
)

type groupCodeInput struct {
	GroupCode string `json:"group_code" form:"group_code"`
}

func (handler *Handler) NewGroup(c *fiber.Ctx) error {
	identity := identityFrom(c)

	code, err := handler.groups.Create(identity.UserID)
	if err != nil {
		return handler.serviceError(c, err)
	}

	groupCodes, err := handler.refreshGroupCodes(c)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     code,
		"group_codes": groupCodes,
	})
}

func (handler *Handler) AddToGroup(c *fiber.Ctx) error {
	var input groupCodeInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "error: invalid input.")
	}
	if message := validateGroupCode(input.GroupCode); message != "" {
		return validationError(c, message)
	}

	identity := identityFrom(c)
	if err := handler.groups.Join(identity.UserID, input.GroupCode); err != nil {
		return handler.serviceError(c, err)
	}

	groupCodes, err := handler.refreshGroupCodes(c)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":     input.GroupCode,
		"group_codes": groupCodes,
	})
}

func (handler *Handler) DeleteGroup(c *fiber.Ctx) error {
	var input groupCodeInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "error: invalid input.")
	}
	if message := validateGroupCode(input.GroupCode); message != "" {
		return validationError(c, message)
	}

	identity := identityFrom(c)
	if err := handler.groups.Leave(identity.UserID, input.GroupCode); err != nil {
		return handler.serviceError(c, err)
	}

	groupCodes, err := handler.refreshGroupCodes(c)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":     "group deleted.",
		"group_codes": groupCodes,
	})
}

func (handler *Handler) GroupLiked(c *fiber.Ctx) error {
	identity := identityFrom(c)

	liked, err := handler.groups.Liked(identity.UserID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(liked)
}

func (handler *Handler) CompareLikes(c *fiber.Ctx) error {
	code := c.Query("group_code")
	if message := validateGroupCode(code); message != "" {
		return validationError(c, message)
	}

	identity := identityFrom(c)
	entries, err := handler.groups.CompareLikes(identity.UserID, code)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(entries)
}

// refreshGroupCodes recomputes the caller's group codes and rewrites the
// cookie so the payload's display fields keep up with membership changes.
func (handler *Handler) refreshGroupCodes(c *fiber.Ctx) (map[string]string, error) {
	identity := identityFrom(c)

	groupCodes, err := handler.groups.Codes(identity.UserID)
	if err != nil {
		return nil, err
	}

	payload := sessionPayloadFrom(c)
	payload.GroupCodes = groupCodes
	if err := handler.setSessionCookie(c, payload); err != nil {
		return nil, err
	}
	return groupCodes, nil
}
