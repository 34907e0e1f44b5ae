package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// clientIP resolves the caller's address for the lockout ledger: the first
// X-Forwarded-For entry when a proxy fronts the service, otherwise the peer
// address. Unresolvable origins share the "unknown" bucket, which locks
// them out together rather than not at all.
func clientIP(c *fiber.Ctx) string {
	forwarded := c.Get(fiber.HeaderXForwardedFor)
	if forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return first
		}
	}

	if peer := c.IP(); peer != "" {
		return peer
	}
	return "unknown"
}
