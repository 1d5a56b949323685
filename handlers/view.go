// handlers/view.go
package handlers

import (
	"time"

	"next2play/middleware"
	"next2play/services"

	"github.com/gofiber/fiber/v2"
)

// ViewAuth configures who may edit and how long sessions live.
type ViewAuth struct {
	EditToken   string
	ViewOnly    bool
	SessionIdle time.Duration
}

// SetupViewRoutes mounts the list view under /view. Every route runs with
// a session and the viewer's edit capability attached.
func SetupViewRoutes(app *fiber.App, view *services.ViewService, auth ViewAuth) fiber.Router {
	group := app.Group("/view",
		middleware.SessionMiddleware(view.Sessions, auth.SessionIdle),
		middleware.ViewerMiddleware(auth.EditToken, auth.ViewOnly),
	)

	group.Get("/state", view.State)
	group.Get("/cards", view.RenderCards)
	group.Put("/filters", view.SetFilters)
	group.Get("/preferences", view.GetPreferences)
	group.Put("/preferences", view.UpdatePreferences)
	group.Get("/images/:id", view.ResolveImage)
	group.Post("/highlight/:id", view.Highlight)
	group.Post("/random", view.RandomGame)
	group.Post("/ui/:panel/toggle", view.TogglePanel)

	group.Get("/notifications", view.Notifications)
	group.Get("/notifications/stream", view.StreamNotifications)

	SetupGameRoutes(group, view)
	return group
}
