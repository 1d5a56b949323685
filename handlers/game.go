// handlers/game.go
package handlers

import (
	"next2play/services"

	"github.com/gofiber/fiber/v2"
)

// SetupGameRoutes mounts the remote game actions. Mutations check the
// viewer's edit capability in the service.
func SetupGameRoutes(router fiber.Router, view *services.ViewService) {
	router.Post("/events", view.Dispatch)

	router.Post("/search", view.Search)
	router.Post("/candidates/close", view.CloseCandidates)
	router.Post("/candidates/:id/select", view.SelectCandidate)

	router.Post("/games/:id/status", view.UpdateStatus)
	router.Delete("/games/:id", view.DeleteGame)
	router.Post("/refresh", view.RefreshGames)
	router.Get("/recent", view.RecentGames)
}
