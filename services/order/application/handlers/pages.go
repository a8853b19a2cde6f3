package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ghuser/pizzaorder/pkg/errhttp"
	"github.com/ghuser/pizzaorder/pkg/logger"
	"github.com/ghuser/pizzaorder/pkg/session"
	"github.com/ghuser/pizzaorder/services/order/application/controller"
	appsvcs "github.com/ghuser/pizzaorder/services/order/application/services"
	"github.com/ghuser/pizzaorder/services/order/application/web"
	orderdomain "github.com/ghuser/pizzaorder/services/order/domain"
	domainsvcs "github.com/ghuser/pizzaorder/services/order/domain/services"
)

// PageHandler renders the HTML pages.
type PageHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

// NewPageHandler returns a PageHandler backed by the given services.
func NewPageHandler(svc *appsvcs.Services, log logger.Logger) *PageHandler {
	return &PageHandler{svc: svc, log: log}
}

// Home handles GET /.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, web.PageHome, web.PageData{Title: "Bloom Pizza", Active: web.PageHome})
}

// Order handles GET /order.
func (h *PageHandler) Order(w http.ResponseWriter, r *http.Request) {
	formID, err := session.FormIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	st, err := h.svc.Forms.State(r.Context(), formID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	h.renderOrder(w, r, http.StatusOK, st)
}

// PostOrder handles POST /order for browsers without JavaScript. The posted
// values are replayed into the form; action=submit then submits it. The page
// is re-rendered with the resulting state.
func (h *PageHandler) PostOrder(w http.ResponseWriter, r *http.Request) {
	formID, err := session.FormIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	st, err := h.svc.Forms.Replay(r.Context(), formID,
		r.PostForm.Get(domainsvcs.FieldFullName),
		r.PostForm.Get(domainsvcs.FieldSize),
		r.PostForm[domainsvcs.FieldToppings],
	)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	status := http.StatusOK
	if strings.EqualFold(r.PostForm.Get("action"), "submit") {
		st, err = h.svc.Forms.Submit(r.Context(), formID)
		switch {
		case errors.Is(err, orderdomain.ErrSubmitDisabled), errors.Is(err, orderdomain.ErrSubmissionInFlight):
			// The page already shows why submission is unavailable.
			status = errhttp.StatusFor(err)
		case err != nil:
			errhttp.WriteError(w, err)
			return
		}
	}
	h.renderOrder(w, r, status, st)
}

func (h *PageHandler) renderOrder(w http.ResponseWriter, r *http.Request, status int, st controller.FormState) {
	h.render(w, r, status, web.PageOrder, web.PageData{
		Title:  "Order Your Pizza",
		Active: web.PageOrder,
		Order:  web.NewOrderView(h.svc.Menu, st),
	})
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, page string, data web.PageData) {
	if err := web.Render(w, status, page, data); err != nil {
		h.log.ErrorContext(r.Context(), "render page failed", "page", page, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
