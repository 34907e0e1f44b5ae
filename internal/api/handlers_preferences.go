package api

import (
	"github.com/gofiber/fiber/v2"
)

type preferencesInput struct {
	Liked    []uint `json:"liked" form:"liked"`
	Disliked []uint `json:"disliked" form:"disliked"`
}

type nameIDsInput struct {
	NameIDs []uint `json:"name_ids" form:"name_ids"`
}

// Preferences records one batch of likes and dislikes together.
func (handler *Handler) Preferences(c *fiber.Ctx) error {
	var input preferencesInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "error: invalid input.")
	}

	identity := identityFrom(c)
	if err := handler.prefs.Apply(identity.UserID, input.Liked, input.Disliked); err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": "preferences saved."})
}

func (handler *Handler) LikeNames(c *fiber.Ctx) error {
	return handler.applyRating(c, handler.prefs.Like, "names liked.")
}

func (handler *Handler) DislikeNames(c *fiber.Ctx) error {
	return handler.applyRating(c, handler.prefs.Dislike, "names disliked.")
}

func (handler *Handler) UnlikeNames(c *fiber.Ctx) error {
	return handler.applyRating(c, handler.prefs.Unlike, "names unliked.")
}

func (handler *Handler) UndislikeNames(c *fiber.Ctx) error {
	return handler.applyRating(c, handler.prefs.Undislike, "names undisliked.")
}

func (handler *Handler) applyRating(c *fiber.Ctx, rate func(uint, []uint) error, success string) error {
	var input nameIDsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "error: invalid input.")
	}

	identity := identityFrom(c)
	if err := rate(identity.UserID, input.NameIDs); err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": success})
}

func (handler *Handler) LikesList(c *fiber.Ctx) error {
	identity := identityFrom(c)
	entries, err := handler.names.Liked(identity.UserID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(entries)
}

func (handler *Handler) DislikeList(c *fiber.Ctx) error {
	identity := identityFrom(c)
	entries, err := handler.names.Disliked(identity.UserID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(entries)
}
