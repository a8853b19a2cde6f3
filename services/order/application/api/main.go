package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/ghuser/pizzaorder/pkg/app"
	"github.com/ghuser/pizzaorder/pkg/logger"
	"github.com/ghuser/pizzaorder/pkg/session"
	"github.com/ghuser/pizzaorder/services/order/application/handlers"
	appsvcs "github.com/ghuser/pizzaorder/services/order/application/services"
	"github.com/ghuser/pizzaorder/services/order/application/web"
)

// OrderRoutes builds the order services from a and registers the order
// pages, the form API and the static assets on r. The services are returned
// so the caller can run the idle-form sweeper.
func OrderRoutes(r chi.Router, a *app.Application) *appsvcs.Services {
	svcs := appsvcs.New(a)
	Mount(r, svcs, a.SessionStore, a.Logger)
	return svcs
}

// Mount registers the order endpoints backed by svcs.
func Mount(r chi.Router, svcs *appsvcs.Services, store sessions.Store, log logger.Logger) {
	pages := handlers.NewPageHandler(svcs, log)
	form := handlers.NewFormAPIHandler(svcs)

	r.Handle("/static/*", http.StripPrefix("/static/", web.StaticHandler()))
	r.Get("/", pages.Home)

	r.Group(func(r chi.Router) {
		r.Use(session.RequireFormSession(store, log))

		r.Route("/order", func(r chi.Router) {
			r.Get("/", pages.Order)
			r.Post("/", pages.PostOrder)
		})
		r.Route("/api/form", func(r chi.Router) {
			r.Get("/", form.Get)
			r.Post("/change", form.Change)
			r.Post("/submit", form.Submit)
		})
	})
}
