package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"pickaname/internal/services"
)

func (handler *Handler) SearchNames(c *fiber.Ctx) error {
	letter := strings.TrimSpace(c.Query("letter"))
	if message := validateSearchLetter(letter); message != "" {
		return validationError(c, message)
	}

	genders := splitQueryList(c.Query("gender"))
	for _, gender := range genders {
		if message := validateSearchGender(gender); message != "" {
			return validationError(c, message)
		}
	}

	query := services.SearchQuery{
		Letter:    letter,
		Anywhere:  c.Query("start") == "0",
		Genders:   genders,
		Countries: splitQueryList(c.Query("country")),
	}

	entries, err := handler.names.Search(query, handler.optionalUserID(c))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(entries)
}

func (handler *Handler) SimilarNames(c *fiber.Ctx) error {
	nameID, err := strconv.ParseUint(c.Query("name_id"), 10, 32)
	if err != nil || nameID == 0 {
		return validationError(c, "error: name_id must be a positive integer.")
	}

	entries, err := handler.names.Similar(uint(nameID), handler.optionalUserID(c))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(entries)
}

func splitQueryList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
