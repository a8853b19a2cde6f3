package handlers

import (
	"net/http"

	"github.com/ghuser/pizzaorder/pkg/errhttp"
	"github.com/ghuser/pizzaorder/pkg/httpx"
	"github.com/ghuser/pizzaorder/pkg/session"
	pkgvalidator "github.com/ghuser/pizzaorder/pkg/validator"
	appsvcs "github.com/ghuser/pizzaorder/services/order/application/services"
)

// ChangeRequest is the request body for POST /api/form/change.
type ChangeRequest struct {
	Field   string `json:"field"   validate:"required,oneof=fullName size toppings" example:"size"`
	Value   string `json:"value"   validate:"max=255"                               example:"M"`
	Checked bool   `json:"checked"                                                  example:"false"`
} // @name ChangeRequest

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"submission in flight"`
} // @name ErrorResponse

// FormAPIHandler serves the JSON endpoints driven by order.js.
type FormAPIHandler struct {
	svc *appsvcs.Services
}

// NewFormAPIHandler returns a FormAPIHandler backed by the given services.
func NewFormAPIHandler(svc *appsvcs.Services) *FormAPIHandler {
	return &FormAPIHandler{svc: svc}
}

// Get returns the visitor's current form state.
//
//	@Summary		Get form state
//	@Description	Returns the draft, field errors, submit flag and last result of the visitor's form
//	@Tags			form
//	@Produce		json
//	@Success		200	{object}	controller.FormState
//	@Failure		500	{object}	ErrorResponse
//	@Router			/form [get]
func (h *FormAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
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
	httpx.JSON(w, http.StatusOK, st)
}

// Change applies one field event.
//
//	@Summary		Change a field
//	@Description	Replaces fullName or size, or toggles one topping when field is toppings
//	@Tags			form
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ChangeRequest	true	"Field event"
//	@Success		200		{object}	controller.FormState
//	@Failure		400		{object}	ErrorResponse
//	@Failure		413		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/form/change [post]
func (h *FormAPIHandler) Change(w http.ResponseWriter, r *http.Request) {
	formID, err := session.FormIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[ChangeRequest](w, r)
	if !ok {
		return
	}

	st, err := h.svc.Forms.Change(r.Context(), formID, appsvcs.FieldEvent{
		Field:   req.Field,
		Value:   req.Value,
		Checked: req.Checked,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, st)
}

// Submit sends the visitor's draft to the order endpoint. Both outcomes are
// reported with 200; the outcome is in result.
//
//	@Summary		Submit the order
//	@Description	Submits a valid draft; a rejected order is reported in result.kind
//	@Tags			form
//	@Produce		json
//	@Success		200	{object}	controller.FormState
//	@Failure		409	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Router			/form/submit [post]
func (h *FormAPIHandler) Submit(w http.ResponseWriter, r *http.Request) {
	formID, err := session.FormIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	st, err := h.svc.Forms.Submit(r.Context(), formID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, st)
}
