// middleware/session.go
package middleware

import (
	"log"
	"time"

	"next2play/services"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie carries the viewer's session id.
const SessionCookie = "n2p_session"

// SessionMiddleware resolves (or opens) the viewer's session and attaches
// it to the request as services.LocalSession.
func SessionMiddleware(store *services.SessionStore, idle time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, created := store.Get(c.Cookies(SessionCookie))
		if created {
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookie,
				Value:    sess.ID,
				Path:     "/",
				Expires:  time.Now().Add(idle),
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
			log.Printf("👤 [SESSION] Opened session %s for %s", sess.ID, c.IP())
		}

		c.Locals(services.LocalSession, sess)
		return c.Next()
	}
}
