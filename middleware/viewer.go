// middleware/viewer.go
package middleware

import (
	"crypto/subtle"
	"strings"

	"next2play/services"

	"github.com/gofiber/fiber/v2"
)

// EditTokenHeader and EditTokenCookie carry the edit token.
const (
	EditTokenHeader = "X-Edit-Token"
	EditTokenCookie = "n2p_edit"
)

// ViewerMiddleware decides whether the viewer may edit the backlog and
// stores the answer as services.LocalCanEdit. With viewOnly set nobody
// edits; with an empty token everybody does.
func ViewerMiddleware(editToken string, viewOnly bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(services.LocalCanEdit, canEdit(c, editToken, viewOnly))
		return c.Next()
	}
}

func canEdit(c *fiber.Ctx, editToken string, viewOnly bool) bool {
	if viewOnly {
		return false
	}
	if editToken == "" {
		return true
	}

	token := c.Get(EditTokenHeader)
	if token == "" {
		token = strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
	}
	if token == "" {
		token = c.Cookies(EditTokenCookie)
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(editToken)) == 1
}
