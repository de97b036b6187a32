package handlers

import (
	"net/http"

	"github.com/dimitrije/amazing-calendar/internal/middleware"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
)

type Router struct {
	Events       *EventHandler
	Participants *ParticipantHandler
	Users        *UserHandler
	Tokens       middleware.TokenValidator
	Release      bool
}

// Handler builds the drift application serving /health and the /api routes.
func (r Router) Handler() http.Handler {
	app := drift.New()

	if r.Release {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(driftmw.Recovery())
	app.Use(driftmw.CORSWithConfig(driftmw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(driftmw.BodyParser())

	app.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	api := app.Group("/api")

	// A static segment may not share a level with a :param sibling in drift.
	api.Get("/users/events", r.Events.ListForUser)
	api.Get("/events/:eventId/participants", r.Participants.List)

	optional := api.Group("")
	optional.Use(middleware.OptionalAuth(r.Tokens))
	optional.Get("/events", r.Events.List)

	protected := api.Group("")
	protected.Use(middleware.Auth(r.Tokens))

	protected.Post("/events", r.Events.Create)
	protected.Put("/events/:eventId", r.Events.Update)
	protected.Patch("/events/:eventId", r.Events.Update)
	protected.Delete("/events/:eventId", r.Events.Delete)

	protected.Post("/events/:eventId/invite", r.Participants.Invite)
	protected.Post("/events/:eventId/respond", r.Participants.Respond)
	protected.Delete("/events/:eventId/participants/:participantId", r.Participants.Remove)

	protected.Get("/users/me", r.Users.GetMe)
	protected.Get("/me/events/upcoming", r.Events.Upcoming)
	protected.Get("/me/events/past", r.Events.Past)
	protected.Get("/invitations", r.Participants.ListMine)

	return app
}
