// services/view_service.go
package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"next2play/models"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the middleware.
const (
	LocalSession = "session"
	LocalCanEdit = "can_edit"
)

// Backend is the set of remote game actions the view depends on.
type Backend interface {
	CollectionSource
	RecentSource
	Search(ctx context.Context, name string) ([]models.Candidate, error)
	Add(ctx context.Context, cand models.Candidate) (AddOutcome, error)
	UpdateStatus(ctx context.Context, id models.GameID, status models.ProgressStatus) error
	Delete(ctx context.Context, id models.GameID) error
	RefreshAll(ctx context.Context) error
}

// Resynchronizer brings the collection back in line with the backend.
type Resynchronizer interface {
	Now(ctx context.Context) (Snapshot, error)
	Schedule(delay time.Duration)
}

// ViewOptions are the tunables of the list view.
type ViewOptions struct {
	ResyncDelay       time.Duration
	HighlightDuration time.Duration
	RevealPause       time.Duration
}

// ViewService serves the backlog list: rendering, filters, preferences,
// lazy images, highlight, random pick, overlays and remote actions.
type ViewService struct {
	Collection *Collection
	Sessions   *SessionStore
	Backend    Backend
	Prefs      *PreferenceStore
	Cards      CardBuilder
	Resync     Resynchronizer
	Recent     *RecentGames
	Picker     *Picker

	opts     ViewOptions
	dispatch map[models.CardAction]cardHandler
}

func NewViewService(coll *Collection, sessions *SessionStore, backend Backend, resync Resynchronizer, cards CardBuilder, opts ViewOptions) *ViewService {
	if opts.HighlightDuration <= 0 {
		opts.HighlightDuration = DefaultHighlightDuration
	}
	s := &ViewService{
		Collection: coll,
		Sessions:   sessions,
		Backend:    backend,
		Prefs:      NewPreferenceStore(),
		Cards:      cards,
		Resync:     resync,
		Recent:     NewRecentGames(backend),
		Picker:     NewPicker(nil),
		opts:       opts,
	}
	s.dispatch = s.dispatchTable()
	return s
}

func sessionFrom(c *fiber.Ctx) *Session {
	s, _ := c.Locals(LocalSession).(*Session)
	return s
}

func canEditFrom(c *fiber.Ctx) bool {
	ok, _ := c.Locals(LocalCanEdit).(bool)
	return ok
}

func (s *ViewService) builder(canEdit bool) func(models.Game) models.Card {
	return func(g models.Game) models.Card { return s.Cards.Build(g, canEdit) }
}

// viewLocked derives the current filtered view for sess. Caller holds sess.mu.
func (s *ViewService) viewLocked(sess *Session, prefs models.DisplayPreferences) View {
	return NewView(s.Collection.Snapshot(), sess.criteria.WithPreferences(prefs))
}

// renderLocked renders the next (or first) batch. Caller holds sess.mu.
func (s *ViewService) renderLocked(sess *Session, prefs models.DisplayPreferences, reset, canEdit bool) Batch {
	b := sess.renderer.Render(s.viewLocked(sess, prefs), reset, s.builder(canEdit))
	if b.Reset {
		sess.images.Reset()
	}
	return b
}

// revealLocked renders through id and builds the highlight directive.
func (s *ViewService) revealLocked(ctx context.Context, sess *Session, prefs models.DisplayPreferences, canEdit bool, id models.GameID) (Reveal, error) {
	v := s.viewLocked(sess, prefs)
	b, err := RevealThrough(ctx, sess.renderer, v, id, s.opts.RevealPause, s.builder(canEdit))
	if err != nil {
		return Reveal{}, err
	}
	sess.images.Reset()
	g := v.Games[IndexOf(v.Games, id)]
	return Reveal{
		Batch: b,
		Highlight: HighlightDirective{
			GameID:     id,
			Anchor:     CardAnchor(g),
			Class:      "highlighted",
			DurationMS: s.opts.HighlightDuration.Milliseconds(),
		},
		Image: sess.images.Force(id, s.Cards.ImageSource(g)),
	}, nil
}

// State returns everything a freshly loaded shell needs.
func (s *ViewService) State(c *fiber.Ctx) error {
	sess := sessionFrom(c)
	prefs := s.Prefs.Load(c)
	canEdit := canEditFrom(c)

	sess.mu.Lock()
	batch := s.renderLocked(sess, prefs, true, canEdit)
	criteria := sess.criteria
	ui := sess.ui
	sess.mu.Unlock()

	return c.JSON(fiber.Map{
		"session":       sess.ID,
		"can_edit":      canEdit,
		"preferences":   prefs,
		"filters":       criteria,
		"statuses":      models.AllStatuses,
		"ui":            ui,
		"batch":         batch,
		"notifications": sess.notices.Active(),
	})
}

// Cards renders the next batch, or the first one when ?reset=true.
func (s *ViewService) RenderCards(c *fiber.Ctx) error {
	sess := sessionFrom(c)
	prefs := s.Prefs.Load(c)

	sess.mu.Lock()
	batch := s.renderLocked(sess, prefs, c.QueryBool("reset", false), canEditFrom(c))
	sess.mu.Unlock()

	return c.JSON(fiber.Map{"batch": batch})
}

type filterRequest struct {
	Status string `json:"status"`
	Search string `json:"search"`
}

// SetFilters changes the status selector and search text and re-renders.
func (s *ViewService) SetFilters(c *fiber.Ctx) error {
	var req filterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid filter payload"})
	}
	if req.Status != "" && req.Status != models.StatusFilterAll && !models.ProgressStatus(req.Status).Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown status filter"})
	}

	sess := sessionFrom(c)
	prefs := s.Prefs.Load(c)

	sess.mu.Lock()
	sess.criteria.Status = req.Status
	sess.criteria.Search = req.Search
	batch := s.renderLocked(sess, prefs, true, canEditFrom(c))
	criteria := sess.criteria
	sess.mu.Unlock()

	return c.JSON(fiber.Map{"filters": criteria, "batch": batch})
}

func (s *ViewService) GetPreferences(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"preferences": s.Prefs.Load(c)})
}

// UpdatePreferences persists both toggles and re-renders from the top.
func (s *ViewService) UpdatePreferences(c *fiber.Ctx) error {
	var prefs models.DisplayPreferences
	if err := c.BodyParser(&prefs); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid preferences payload"})
	}
	s.Prefs.Save(c, prefs)

	sess := sessionFrom(c)
	sess.mu.Lock()
	batch := s.renderLocked(sess, prefs, true, canEditFrom(c))
	sess.mu.Unlock()

	return c.JSON(fiber.Map{"preferences": prefs, "batch": batch})
}

// ResolveImage swaps in a rendered card's real poster, once.
func (s *ViewService) ResolveImage(c *fiber.Ctx) error {
	id, err := gameIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid game id"})
	}
	g, ok := s.Collection.Snapshot().Find(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "game not found"})
	}

	sess := sessionFrom(c)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if !sess.renderer.Rendered(id) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "card is not rendered"})
	}
	return c.JSON(sess.images.Resolve(id, s.Cards.ImageSource(g)))
}

// Highlight renders through a game, then asks the shell to scroll to it.
func (s *ViewService) Highlight(c *fiber.Ctx) error {
	id, err := gameIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid game id"})
	}
	return respond(c, s.highlight(c.UserContext(), sessionFrom(c), s.Prefs.Load(c), canEditFrom(c), id))
}

func (s *ViewService) highlight(ctx context.Context, sess *Session, prefs models.DisplayPreferences, canEdit bool, id models.GameID) ActionResult {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	rev, err := s.revealLocked(ctx, sess, prefs, canEdit, id)
	if errors.Is(err, ErrNotFound) {
		note := sess.notices.Push("Game is not in the current view", models.NoticeWarning)
		return ActionResult{Status: fiber.StatusNotFound, Error: err.Error(), Notification: &note}
	}
	if err != nil {
		return ActionResult{Status: fiber.StatusRequestTimeout, Error: err.Error()}
	}
	return ActionResult{Status: fiber.StatusOK, Reveal: &rev}
}

// RandomGame picks an unstarted game from the current view and reveals it.
func (s *ViewService) RandomGame(c *fiber.Ctx) error {
	sess := sessionFrom(c)
	prefs := s.Prefs.Load(c)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	v := s.viewLocked(sess, prefs)
	g, ok := s.Picker.Pick(v.Games)
	if !ok {
		note := sess.notices.Push("No unstarted games available", models.NoticeError)
		return respond(c, ActionResult{Notification: &note})
	}

	note := sess.notices.Push("Random game selected: "+g.GameName, models.NoticeSuccess)
	rev, err := s.revealLocked(c.UserContext(), sess, prefs, canEditFrom(c), g.GameID)
	if err != nil {
		return respond(c, ActionResult{Status: fiber.StatusRequestTimeout, Error: err.Error(), Notification: &note})
	}
	sess.ui.MobileMenu = false
	ui := sess.ui
	return respond(c, ActionResult{Notification: &note, Reveal: &rev, UI: &ui})
}

// TogglePanel flips one overlay: mobile-menu, options or recent.
func (s *ViewService) TogglePanel(c *fiber.Ctx) error {
	sess := sessionFrom(c)
	panel := c.Params("panel")

	sess.mu.Lock()
	switch panel {
	case "mobile-menu":
		sess.ui.MobileMenu = !sess.ui.MobileMenu
	case "options":
		sess.ui.OptionsPopup = !sess.ui.OptionsPopup
		sess.ui.MobileMenu = false
	case "recent":
		sess.ui.RecentPanel = !sess.ui.RecentPanel
	default:
		sess.mu.Unlock()
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown panel"})
	}
	ui := sess.ui
	sess.mu.Unlock()

	resp := fiber.Map{"ui": ui}
	switch panel {
	case "options":
		if ui.OptionsPopup {
			resp["preferences"] = s.Prefs.Load(c)
		}
	case "recent":
		items, note := s.refreshRecent(c.UserContext(), sess)
		resp["recent"] = items
		if note != nil {
			resp["notification"] = note
		}
	}
	return c.JSON(resp)
}

// Notifications lists the messages still on screen.
func (s *ViewService) Notifications(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"notifications": sessionFrom(c).notices.Active()})
}

func gameIDParam(c *fiber.Ctx) (models.GameID, error) {
	n, err := c.ParamsInt("id")
	if err != nil {
		return 0, err
	}
	return models.GameID(n), nil
}

func trimmed(s string) string { return strings.TrimSpace(s) }

func logAction(op string, err error) {
	log.Printf("[ACTIONS] ❌ %s failed: %v", op, err)
}
