// Package controller implements the order form controller: it owns the draft,
// the per-field errors and the submission state, and pushes an immutable
// snapshot to its observers after every mutation.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	orderdomain "github.com/ghuser/pizzaorder/services/order/domain"
	"github.com/ghuser/pizzaorder/services/order/domain/gateways"
	"github.com/ghuser/pizzaorder/services/order/domain/models"
	domainsvcs "github.com/ghuser/pizzaorder/services/order/domain/services"
)

// ChangeKind names the mutation that produced a Change.
type ChangeKind string

const (
	FieldChanged    ChangeKind = "field_changed"
	SubmitStarted   ChangeKind = "submit_started"
	SubmitSucceeded ChangeKind = "submit_succeeded"
	SubmitFailed    ChangeKind = "submit_failed"
	Restored        ChangeKind = "restored"
)

// FormState is a snapshot of everything the presentation layer renders.
type FormState struct {
	Draft         models.OrderDraft       `json:"draft"`
	Errors        models.FieldErrors      `json:"errors"`
	Valid         bool                    `json:"valid"`
	SubmitEnabled bool                    `json:"submitEnabled"`
	Submitting    bool                    `json:"submitting"`
	Result        models.SubmissionResult `json:"result"`
}

// Change is delivered to observers after each mutation. Cause is set on
// SubmitFailed with the gateway error.
type Change struct {
	Kind  ChangeKind
	State FormState
	Cause error
}

// Observer receives changes synchronously, after the controller lock is released.
type Observer func(Change)

type observerEntry struct {
	id int
	fn Observer
}

// Controller is safe for concurrent use.
type Controller struct {
	gw gateways.SubmissionGateway

	mu         sync.Mutex
	draft      models.OrderDraft
	errors     models.FieldErrors
	valid      bool
	submitting bool
	result     models.SubmissionResult
	observers  []observerEntry
	nextID     int
}

// New returns a controller holding the initial empty draft.
func New(gw gateways.SubmissionGateway) *Controller {
	c := &Controller{
		gw:     gw,
		draft:  models.NewDraft(),
		result: models.NoResult(),
	}
	c.recomputeLocked()
	return c
}

// Subscribe registers fn and returns a function that removes it.
func (c *Controller) Subscribe(fn Observer) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := c.nextID
	c.observers = append(c.observers, observerEntry{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i, o := range c.observers {
				if o.id == id {
					c.observers = append(c.observers[:i:i], c.observers[i+1:]...)
					return
				}
			}
		})
	}
}

// OnFieldChange applies one input event. Checkbox events toggle the topping
// id carried in raw; other events replace the named scalar field. fullName
// and size are re-validated immediately and only that field's error changes.
func (c *Controller) OnFieldChange(field, raw string, isCheckbox, checked bool) error {
	c.mu.Lock()

	if isCheckbox {
		if err := c.toggleToppingLocked(raw, checked); err != nil {
			c.mu.Unlock()
			return err
		}
	} else {
		switch field {
		case domainsvcs.FieldFullName:
			c.draft.FullName = raw
			c.errors.FullName = domainsvcs.ValidateFullName(raw)
		case domainsvcs.FieldSize:
			c.draft.Size = raw
			c.errors.Size = domainsvcs.ValidateSize(raw)
		default:
			c.mu.Unlock()
			return fmt.Errorf("%w: %q", orderdomain.ErrUnknownField, field)
		}
	}

	c.recomputeLocked()
	change, observers := c.changeLocked(FieldChanged, nil)
	c.mu.Unlock()

	notify(observers, change)
	return nil
}

func (c *Controller) toggleToppingLocked(id string, checked bool) error {
	id = strings.TrimSpace(id)
	if !checked {
		c.draft.Toppings = c.draft.Toppings.Remove(id)
		return nil
	}
	next, err := c.draft.Toppings.Add(id)
	if err != nil {
		return fmt.Errorf("%w: %w", orderdomain.ErrUnknownTopping, err)
	}
	c.draft.Toppings = next
	return nil
}

// SubmitEnabled reports whether the whole draft validates and no submission
// is pending.
func (c *Controller) SubmitEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.valid && !c.submitting
}

// State returns the current snapshot.
func (c *Controller) State() FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Restore replaces the draft, e.g. when rehydrating a session. Errors are
// shown only for fields that hold a value. The submission result is cleared.
func (c *Controller) Restore(d models.OrderDraft) {
	c.mu.Lock()
	c.draft = d
	c.errors = models.FieldErrors{}
	if d.FullName != "" {
		c.errors.FullName = domainsvcs.ValidateFullName(d.FullName)
	}
	if d.Size != "" {
		c.errors.Size = domainsvcs.ValidateSize(d.Size)
	}
	c.result = models.NoResult()
	c.recomputeLocked()
	change, observers := c.changeLocked(Restored, nil)
	c.mu.Unlock()

	notify(observers, change)
}

// Submit sends the current draft to the gateway. It returns
// ErrSubmitDisabled when the draft is invalid and ErrSubmissionInFlight when
// another submission is pending; gateway failures are reported through the
// returned result, not the error.
func (c *Controller) Submit(ctx context.Context) (models.SubmissionResult, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return models.SubmissionResult{}, orderdomain.ErrSubmissionInFlight
	}
	if !c.valid {
		c.mu.Unlock()
		return models.SubmissionResult{}, orderdomain.ErrSubmitDisabled
	}
	draft := c.draft
	c.submitting = true
	change, observers := c.changeLocked(SubmitStarted, nil)
	c.mu.Unlock()

	notify(observers, change)

	receipt, err := c.gw.SubmitOrder(ctx, draft)

	c.mu.Lock()
	c.submitting = false
	kind := SubmitSucceeded
	if err != nil {
		kind = SubmitFailed
		c.result = models.Failure(failureMessage(err))
	} else {
		msg := ""
		if receipt != nil {
			msg = receipt.Message
		}
		c.result = models.Success(msg)
		c.draft = models.NewDraft()
		c.errors = models.FieldErrors{}
	}
	c.recomputeLocked()
	result := c.result
	change, observers = c.changeLocked(kind, err)
	c.mu.Unlock()

	notify(observers, change)
	return result, nil
}

func failureMessage(err error) string {
	var rej *gateways.RejectionError
	if errors.As(err, &rej) && strings.TrimSpace(rej.Message) != "" {
		return rej.Message
	}
	return orderdomain.DefaultFailureMessage
}

func (c *Controller) recomputeLocked() {
	c.valid = domainsvcs.ValidateDraft(c.draft).Valid
}

func (c *Controller) stateLocked() FormState {
	return FormState{
		Draft:         c.draft,
		Errors:        c.errors,
		Valid:         c.valid,
		SubmitEnabled: c.valid && !c.submitting,
		Submitting:    c.submitting,
		Result:        c.result,
	}
}

func (c *Controller) changeLocked(kind ChangeKind, cause error) (Change, []Observer) {
	observers := make([]Observer, len(c.observers))
	for i, o := range c.observers {
		observers[i] = o.fn
	}
	return Change{Kind: kind, State: c.stateLocked(), Cause: cause}, observers
}

func notify(observers []Observer, change Change) {
	for _, fn := range observers {
		fn(change)
	}
}
