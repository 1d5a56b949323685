// services/actions.go
package services

import (
	"context"
	"errors"

	"next2play/models"

	"github.com/gofiber/fiber/v2"
)

// EventRequest is a card event forwarded by the shell.
type EventRequest struct {
	GameID  models.GameID     `json:"game_id"`
	Action  models.CardAction `json:"action"`
	Value   string            `json:"value,omitempty"`
	Confirm bool              `json:"confirm,omitempty"`
}

// ActionResult is the common response of every view action.
type ActionResult struct {
	Status       int                  `json:"-"`
	Error        string               `json:"error,omitempty"`
	Confirm      string               `json:"confirm,omitempty"`
	Notification *models.Notification `json:"notification,omitempty"`
	Card         *models.Card         `json:"card,omitempty"`
	Insert       *int                 `json:"insert,omitempty"`
	Removed      *models.GameID       `json:"removed,omitempty"`
	Reveal       *Reveal              `json:"reveal,omitempty"`
	Batch        *Batch               `json:"batch,omitempty"`
	Candidates   []models.Candidate   `json:"candidates,omitempty"`
	Recent       []RecentItem         `json:"recent,omitempty"`
	UI           *models.UIState      `json:"ui,omitempty"`
}

type actionContext struct {
	ctx     context.Context
	sess    *Session
	prefs   models.DisplayPreferences
	canEdit bool
}

type cardHandler func(ac actionContext, req EventRequest) ActionResult

func (s *ViewService) dispatchTable() map[models.CardAction]cardHandler {
	return map[models.CardAction]cardHandler{
		models.ActionUpdateStatus: s.updateStatus,
		models.ActionDeleteGame:   s.deleteGame,
		models.ActionHighlight: func(ac actionContext, req EventRequest) ActionResult {
			return s.highlight(ac.ctx, ac.sess, ac.prefs, ac.canEdit, req.GameID)
		},
	}
}

func (s *ViewService) actionContext(c *fiber.Ctx) actionContext {
	return actionContext{
		ctx:     c.UserContext(),
		sess:    sessionFrom(c),
		prefs:   s.Prefs.Load(c),
		canEdit: canEditFrom(c),
	}
}

func (s *ViewService) run(ac actionContext, req EventRequest) ActionResult {
	h, ok := s.dispatch[req.Action]
	if !ok {
		return ActionResult{Status: fiber.StatusBadRequest, Error: ErrUnknownAction.Error()}
	}
	return h(ac, req)
}

func respond(c *fiber.Ctx, res ActionResult) error {
	if res.Status == 0 {
		res.Status = fiber.StatusOK
	}
	return c.Status(res.Status).JSON(res)
}

func forbidden() ActionResult {
	return ActionResult{Status: fiber.StatusForbidden, Error: ErrEditForbidden.Error()}
}

// failure logs err and queues the matching notice. An answer without
// success reads as "Failed to ..."; anything else as "Error ...".
func failure(sess *Session, op string, err error, failed, errored string) ActionResult {
	logAction(op, err)
	msg := errored
	if errors.Is(err, ErrUnconfirmed) {
		msg = failed
	}
	note := sess.notices.Push(msg, models.NoticeError)
	return ActionResult{Status: fiber.StatusBadGateway, Error: err.Error(), Notification: &note}
}

// Dispatch routes a card event through the dispatch table.
func (s *ViewService) Dispatch(c *fiber.Ctx) error {
	var req EventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid event payload"})
	}
	return respond(c, s.run(s.actionContext(c), req))
}

type statusRequest struct {
	Status models.ProgressStatus `json:"status"`
}

func (s *ViewService) UpdateStatus(c *fiber.Ctx) error {
	id, err := gameIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid game id"})
	}
	var body statusRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid status payload"})
	}
	req := EventRequest{GameID: id, Action: models.ActionUpdateStatus, Value: string(body.Status)}
	return respond(c, s.run(s.actionContext(c), req))
}

func (s *ViewService) DeleteGame(c *fiber.Ctx) error {
	id, err := gameIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid game id"})
	}
	req := EventRequest{GameID: id, Action: models.ActionDeleteGame, Confirm: c.QueryBool("confirm", false)}
	return respond(c, s.run(s.actionContext(c), req))
}

func (s *ViewService) updateStatus(ac actionContext, req EventRequest) ActionResult {
	if !ac.canEdit {
		return forbidden()
	}
	status := models.ProgressStatus(req.Value)
	if !status.Valid() {
		return ActionResult{Status: fiber.StatusBadRequest, Error: "unknown progress status"}
	}

	if err := s.Backend.UpdateStatus(ac.ctx, req.GameID, status); err != nil {
		return failure(ac.sess, "update status", err, "Failed to update status", "Error updating status")
	}

	res := ActionResult{Status: fiber.StatusOK}
	if snap, pos, ok := s.Sessions.PatchStatus(s.Collection, req.GameID, status, ac.sess); ok {
		g, _ := snap.Find(req.GameID)
		card := s.Cards.Build(g, ac.canEdit)
		res.Card = &card
		if pos >= 0 {
			res.Insert = &pos
		}
	}
	note := ac.sess.notices.Push("Status updated successfully!", models.NoticeSuccess)
	res.Notification = &note
	s.Resync.Schedule(s.opts.ResyncDelay)
	return res
}

func (s *ViewService) deleteGame(ac actionContext, req EventRequest) ActionResult {
	if !ac.canEdit {
		return forbidden()
	}
	if !req.Confirm {
		return ActionResult{
			Status:  fiber.StatusPreconditionRequired,
			Error:   ErrConfirmationRequired.Error(),
			Confirm: deleteConfirmPrompt,
		}
	}

	if err := s.Backend.Delete(ac.ctx, req.GameID); err != nil {
		return failure(ac.sess, "delete game", err, "Failed to delete game", "Error deleting game")
	}

	s.Sessions.RemoveGame(s.Collection, req.GameID)
	id := req.GameID
	note := ac.sess.notices.Push("Game deleted successfully!", models.NoticeSuccess)
	return ActionResult{Status: fiber.StatusOK, Removed: &id, Notification: &note}
}

type searchRequest struct {
	Name string `json:"name"`
}

// Search looks a title up on the backend and opens the candidate popup.
func (s *ViewService) Search(c *fiber.Ctx) error {
	var req searchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid search payload"})
	}
	name := trimmed(req.Name)
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "game name is required"})
	}
	sess := sessionFrom(c)

	cands, err := s.Backend.Search(c.UserContext(), name)
	if err != nil {
		logAction("search", err)
		note := sess.notices.Push("Error searching for game", models.NoticeError)
		return respond(c, ActionResult{Status: fiber.StatusBadGateway, Error: err.Error(), Notification: &note})
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if len(cands) == 0 {
		sess.candidates = nil
		sess.ui.CandidatePopup = false
		ui := sess.ui
		note := sess.notices.Push("No games found", models.NoticeError)
		return respond(c, ActionResult{Notification: &note, UI: &ui})
	}
	sess.candidates = cands
	sess.ui.CandidatePopup = true
	ui := sess.ui
	return respond(c, ActionResult{Candidates: cands, UI: &ui})
}

// SelectCandidate adds one of the last search's candidates.
func (s *ViewService) SelectCandidate(c *fiber.Ctx) error {
	if !canEditFrom(c) {
		return respond(c, forbidden())
	}
	id, err := gameIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid game id"})
	}
	sess := sessionFrom(c)

	sess.mu.Lock()
	var (
		cand  models.Candidate
		found bool
	)
	for _, cd := range sess.candidates {
		if cd.ID == id {
			cand, found = cd, true
			break
		}
	}
	sess.mu.Unlock()
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "candidate not found"})
	}

	outcome, err := s.Backend.Add(c.UserContext(), cand)
	if err != nil {
		res := failure(sess, "add game", err, "Failed to add game", "Error adding game")
		res.UI = closeCandidates(sess)
		return respond(c, res)
	}

	res := ActionResult{Status: fiber.StatusOK}
	var note models.Notification
	switch outcome {
	case AddDuplicate:
		note = sess.notices.Push("This game is already in your collection", models.NoticeWarning)
	default:
		s.Collection.Append(models.Game{
			GameID:         cand.ID,
			GameName:       cand.Name,
			ImageURL:       cand.ImageURL,
			ReleaseYear:    cand.ReleaseDate,
			HowLongToBeat:  cand.HoursToBeat,
			ProgressStatus: models.StatusNotStarted,
		})
		note = sess.notices.Push("Game added successfully!", models.NoticeSuccess)
		res.Recent, _ = s.refreshRecent(c.UserContext(), sess)
		s.Resync.Schedule(s.opts.ResyncDelay)
	}
	res.Notification = &note
	res.UI = closeCandidates(sess)
	return respond(c, res)
}

func (s *ViewService) CloseCandidates(c *fiber.Ctx) error {
	return respond(c, ActionResult{UI: closeCandidates(sessionFrom(c))})
}

func closeCandidates(sess *Session) *models.UIState {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.candidates = nil
	sess.ui.CandidatePopup = false
	ui := sess.ui
	return &ui
}

// RefreshGames asks the backend to refresh every game's metadata, then
// re-synchronises and re-renders from the top.
func (s *ViewService) RefreshGames(c *fiber.Ctx) error {
	if !canEditFrom(c) {
		return respond(c, forbidden())
	}
	sess := sessionFrom(c)
	ctx := c.UserContext()

	if err := s.Backend.RefreshAll(ctx); err != nil {
		return respond(c, failure(sess, "refresh games", err, "Failed to update games", "Error updating games"))
	}
	note := sess.notices.Push("Games updated successfully!", models.NoticeSuccess)
	if _, err := s.Resync.Now(ctx); err != nil {
		logAction("re-sync after refresh", err)
	}

	prefs := s.Prefs.Load(c)
	sess.mu.Lock()
	batch := s.renderLocked(sess, prefs, true, canEditFrom(c))
	sess.mu.Unlock()
	return respond(c, ActionResult{Notification: &note, Batch: &batch})
}

// RecentGames re-fetches the side panel list.
func (s *ViewService) RecentGames(c *fiber.Ctx) error {
	items, note := s.refreshRecent(c.UserContext(), sessionFrom(c))
	return respond(c, ActionResult{Recent: items, Notification: note})
}

// refreshRecent falls back to the cached list when the backend fails.
func (s *ViewService) refreshRecent(ctx context.Context, sess *Session) ([]RecentItem, *models.Notification) {
	games, err := s.Recent.Refresh(ctx)
	if err != nil {
		logAction("recent games", err)
		note := sess.notices.Push("Error loading recent games", models.NoticeError)
		cached, _ := s.Recent.Cached()
		return RecentItems(cached, s.Cards), &note
	}
	return RecentItems(games, s.Cards), nil
}
