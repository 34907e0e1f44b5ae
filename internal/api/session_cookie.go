package api

import (
	"encoding/json"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"pickaname/internal/services"
)

// sessionCookieName holds the whole payload, not just the token.
const sessionCookieName = "session_token"

// SessionPayload is the cookie body: plain JSON, URL-escaped so it survives
// as a cookie value. The frontend reads username and group_codes straight
// out of it; only the embedded token carries any authority, and the server
// re-derives the display fields on login and renewal.
type SessionPayload struct {
	UserID       uint              `json:"id"`
	SessionToken string            `json:"session_token"`
	Username     string            `json:"username"`
	GroupCodes   map[string]string `json:"group_codes"`
}

func encodeSessionPayload(payload SessionPayload) (string, error) {
	if payload.GroupCodes == nil {
		payload.GroupCodes = map[string]string{}
	}
	serialized, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return url.QueryEscape(string(serialized)), nil
}

// decodeSessionPayload parses a cookie value back into a payload. Any
// undecodable or incomplete value is a malformed payload; the caller treats
// it exactly like a missing cookie.
func decodeSessionPayload(raw string) (SessionPayload, error) {
	if raw == "" {
		return SessionPayload{}, services.ErrMalformedPayload
	}

	unescaped, err := url.QueryUnescape(raw)
	if err != nil {
		unescaped = raw
	}

	var payload SessionPayload
	if err := json.Unmarshal([]byte(unescaped), &payload); err != nil {
		return SessionPayload{}, services.ErrMalformedPayload
	}
	if payload.UserID == 0 || payload.SessionToken == "" || payload.Username == "" {
		return SessionPayload{}, services.ErrMalformedPayload
	}
	if payload.GroupCodes == nil {
		payload.GroupCodes = map[string]string{}
	}
	return payload, nil
}

func (handler *Handler) setSessionCookie(c *fiber.Ctx, payload SessionPayload) error {
	value, err := encodeSessionPayload(payload)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		Domain:   handler.cookieDomain,
		MaxAge:   int(services.SessionTTL.Seconds()),
		Secure:   handler.cookieSecure,
		HTTPOnly: false,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

func (handler *Handler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   handler.cookieDomain,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   handler.cookieSecure,
		HTTPOnly: false,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
