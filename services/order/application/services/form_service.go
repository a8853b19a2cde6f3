package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/pizzaorder/pkg/cache"
	"github.com/ghuser/pizzaorder/pkg/logger"
	"github.com/ghuser/pizzaorder/pkg/telemetry"
	"github.com/ghuser/pizzaorder/services/order/application/controller"
	orderdomain "github.com/ghuser/pizzaorder/services/order/domain"
	orderevents "github.com/ghuser/pizzaorder/services/order/domain/events"
	"github.com/ghuser/pizzaorder/services/order/domain/gateways"
	"github.com/ghuser/pizzaorder/services/order/domain/models"
	domainsvcs "github.com/ghuser/pizzaorder/services/order/domain/services"
)

const (
	// DefaultIdleTTL applies when NewFormService is given a non-positive TTL.
	DefaultIdleTTL = 30 * time.Minute

	sideEffectTimeout = 2 * time.Second
	eventVersion      = 1
)

// DraftStore persists in-progress drafts across restarts.
// *pkgcache.DraftCache implements it; Get returns redis.Nil on a miss.
type DraftStore interface {
	Get(ctx context.Context, formID uuid.UUID) (*pkgcache.CachedDraft, error)
	Set(ctx context.Context, d *pkgcache.CachedDraft) error
	Delete(ctx context.Context, formID uuid.UUID) error
}

// EventPublisher is the slice of events.EventBus the service needs.
type EventPublisher interface {
	PublishJSON(ctx context.Context, topic string, v any) error
}

// FieldEvent is one input event from a presentation shell.
type FieldEvent struct {
	Field   string
	Value   string
	Checked bool
}

// FormService owns one controller per form ID. Drafts are persisted through
// the optional DraftStore and submission outcomes are published as domain
// events. Controllers idle longer than the TTL are evicted by Sweep.
type FormService struct {
	gw      gateways.SubmissionGateway
	drafts  DraftStore
	bus     EventPublisher
	metrics *telemetry.OrderMetrics
	log     logger.Logger
	idleTTL time.Duration
	now     func() time.Time

	mu    sync.Mutex
	forms map[uuid.UUID]*formEntry
}

type formEntry struct {
	ctrl        *controller.Controller
	unsubscribe func()
	lastSeen    time.Time
}

// FormServiceOption configures a FormService.
type FormServiceOption func(*FormService)

// WithDraftStore enables draft persistence.
func WithDraftStore(d DraftStore) FormServiceOption {
	return func(s *FormService) { s.drafts = d }
}

// WithEventPublisher enables domain event publication.
func WithEventPublisher(p EventPublisher) FormServiceOption {
	return func(s *FormService) { s.bus = p }
}

// WithMetrics enables order metrics.
func WithMetrics(m *telemetry.OrderMetrics) FormServiceOption {
	return func(s *FormService) { s.metrics = m }
}

// WithIdleTTL sets how long an untouched controller is kept in memory.
func WithIdleTTL(ttl time.Duration) FormServiceOption {
	return func(s *FormService) {
		if ttl > 0 {
			s.idleTTL = ttl
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) FormServiceOption {
	return func(s *FormService) { s.now = now }
}

// NewFormService returns a FormService submitting through gw.
func NewFormService(gw gateways.SubmissionGateway, log logger.Logger, opts ...FormServiceOption) *FormService {
	s := &FormService{
		gw:      gw,
		log:     log,
		idleTTL: DefaultIdleTTL,
		now:     time.Now,
		forms:   make(map[uuid.UUID]*formEntry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Form returns the controller for formID, creating it on first use. A new
// controller is restored from the DraftStore when a draft is cached. The
// store is read without holding the registry lock; when two requests create
// the same form concurrently the first registered controller wins.
func (s *FormService) Form(ctx context.Context, formID uuid.UUID) (*controller.Controller, error) {
	if formID == uuid.Nil {
		return nil, orderdomain.ErrFormNotFound
	}

	if ctrl, ok := s.lookup(formID); ok {
		return ctrl, nil
	}

	ctrl := controller.New(s.gw)
	if d, ok := s.loadDraft(ctx, formID); ok {
		ctrl.Restore(d)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.forms[formID]; ok {
		e.lastSeen = s.now()
		return e.ctrl, nil
	}
	e := &formEntry{ctrl: ctrl, lastSeen: s.now()}
	e.unsubscribe = ctrl.Subscribe(s.observer(formID))
	s.forms[formID] = e
	return ctrl, nil
}

func (s *FormService) lookup(formID uuid.UUID) (*controller.Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.forms[formID]
	if !ok {
		return nil, false
	}
	e.lastSeen = s.now()
	return e.ctrl, true
}

// State returns the current snapshot for formID.
func (s *FormService) State(ctx context.Context, formID uuid.UUID) (controller.FormState, error) {
	ctrl, err := s.Form(ctx, formID)
	if err != nil {
		return controller.FormState{}, err
	}
	return ctrl.State(), nil
}

// Change applies one input event. Events for the toppings field are checkbox
// toggles; the others replace the named scalar.
func (s *FormService) Change(ctx context.Context, formID uuid.UUID, ev FieldEvent) (controller.FormState, error) {
	ctrl, err := s.Form(ctx, formID)
	if err != nil {
		return controller.FormState{}, err
	}
	isCheckbox := ev.Field == domainsvcs.FieldToppings
	if err := ctrl.OnFieldChange(ev.Field, ev.Value, isCheckbox, ev.Checked); err != nil {
		return ctrl.State(), fmt.Errorf("change %s: %w", ev.Field, err)
	}
	s.metrics.FieldChanged(ctx, ev.Field)
	return ctrl.State(), nil
}

// Replay applies a full set of posted form values, as sent by a browser
// without JavaScript: scalars that differ are changed and toppings are
// toggled by the symmetric difference with the current draft. Posted topping
// ids are checked first so a bad post changes nothing.
func (s *FormService) Replay(ctx context.Context, formID uuid.UUID, fullName, size string, toppings []string) (controller.FormState, error) {
	menu := models.DefaultMenu()
	for _, id := range toppings {
		if !menu.HasTopping(id) {
			return controller.FormState{}, fmt.Errorf("%w: %q", orderdomain.ErrUnknownTopping, id)
		}
	}

	ctrl, err := s.Form(ctx, formID)
	if err != nil {
		return controller.FormState{}, err
	}
	current := ctrl.State().Draft

	var events []FieldEvent
	if fullName != current.FullName {
		events = append(events, FieldEvent{Field: domainsvcs.FieldFullName, Value: fullName})
	}
	if size != current.Size {
		events = append(events, FieldEvent{Field: domainsvcs.FieldSize, Value: size})
	}
	posted := make(map[string]struct{}, len(toppings))
	for _, id := range toppings {
		posted[id] = struct{}{}
		if !current.Toppings.Has(id) {
			events = append(events, FieldEvent{Field: domainsvcs.FieldToppings, Value: id, Checked: true})
		}
	}
	for _, id := range current.Toppings.IDs() {
		if _, ok := posted[id]; !ok {
			events = append(events, FieldEvent{Field: domainsvcs.FieldToppings, Value: id, Checked: false})
		}
	}

	for _, ev := range events {
		if _, err := s.Change(ctx, formID, ev); err != nil {
			return ctrl.State(), err
		}
	}
	return ctrl.State(), nil
}

// Submit submits the draft for formID. Gateway failures are part of the
// returned state; the error is ErrSubmitDisabled, ErrSubmissionInFlight or
// ErrFormNotFound.
func (s *FormService) Submit(ctx context.Context, formID uuid.UUID) (controller.FormState, error) {
	ctrl, err := s.Form(ctx, formID)
	if err != nil {
		return controller.FormState{}, err
	}

	start := s.now()
	result, err := ctrl.Submit(ctx)
	if err != nil {
		return ctrl.State(), err
	}

	outcome := telemetry.OutcomeSuccess
	if result.Failed() {
		outcome = telemetry.OutcomeFailure
	}
	s.metrics.SubmissionFinished(ctx, outcome, s.now().Sub(start))
	s.log.InfoContext(ctx, "order submission finished", "outcome", outcome, "message", result.Message)
	return ctrl.State(), nil
}

// Sweep evicts controllers not used for longer than the idle TTL and returns
// how many were removed. Persisted drafts are kept so a returning visitor is
// restored from the DraftStore. A controller with a submission in flight is
// kept until its outcome has been observed.
func (s *FormService) Sweep() int {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	var evicted []*formEntry
	for id, e := range s.forms {
		if e.lastSeen.Before(cutoff) && !e.ctrl.State().Submitting {
			evicted = append(evicted, e)
			delete(s.forms, id)
		}
	}
	s.mu.Unlock()

	for _, e := range evicted {
		e.unsubscribe()
	}
	return len(evicted)
}

// Len returns the number of live controllers.
func (s *FormService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.forms)
}

// Run calls Sweep every interval until ctx is done.
func (s *FormService) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.log.InfoContext(ctx, "evicted idle order forms", "count", n, "live", s.Len())
			}
		}
	}
}

func (s *FormService) loadDraft(ctx context.Context, formID uuid.UUID) (models.OrderDraft, bool) {
	if s.drafts == nil {
		return models.OrderDraft{}, false
	}
	cached, err := s.drafts.Get(ctx, formID)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "failed to load cached draft", "error", err)
		}
		return models.OrderDraft{}, false
	}
	toppings, err := models.NewToppingSet(cached.Toppings...)
	if err != nil {
		s.log.WarnContext(ctx, "discarding cached draft", "error", err)
		return models.OrderDraft{}, false
	}
	return models.OrderDraft{FullName: cached.FullName, Size: cached.Size, Toppings: toppings}, true
}

// observer persists drafts and publishes submission outcomes for one form.
// Observers run without a request context, so side effects get their own
// bounded one.
func (s *FormService) observer(formID uuid.UUID) controller.Observer {
	var (
		mu        sync.Mutex
		submitted models.OrderDraft
	)
	return func(ch controller.Change) {
		ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
		defer cancel()

		switch ch.Kind {
		case controller.FieldChanged:
			s.saveDraft(ctx, formID, ch.State.Draft)
		case controller.SubmitStarted:
			mu.Lock()
			submitted = ch.State.Draft
			mu.Unlock()
		case controller.SubmitSucceeded:
			mu.Lock()
			d := submitted
			mu.Unlock()
			s.deleteDraft(ctx, formID)
			s.publish(ctx, orderevents.TopicOrderSubmitted, orderevents.OrderSubmittedEvent{
				EventID:    uuid.New(),
				Version:    eventVersion,
				FormID:     formID,
				Size:       d.Size,
				Toppings:   d.Toppings.IDs(),
				Message:    ch.State.Result.Message,
				OccurredAt: s.now().UTC(),
			})
		case controller.SubmitFailed:
			if ch.Cause != nil {
				telemetry.CaptureError(ctx, ch.Cause)
			}
			s.publish(ctx, orderevents.TopicOrderRejected, orderevents.OrderRejectedEvent{
				EventID:    uuid.New(),
				Version:    eventVersion,
				FormID:     formID,
				Message:    ch.State.Result.Message,
				OccurredAt: s.now().UTC(),
			})
		}
	}
}

func (s *FormService) saveDraft(ctx context.Context, formID uuid.UUID, d models.OrderDraft) {
	if s.drafts == nil {
		return
	}
	err := s.drafts.Set(ctx, &pkgcache.CachedDraft{
		FormID:    formID,
		FullName:  d.FullName,
		Size:      d.Size,
		Toppings:  d.Toppings.IDs(),
		UpdatedAt: s.now().UTC(),
	})
	if err != nil {
		s.log.WarnContext(ctx, "failed to persist draft", "form_id", formID.String(), "error", err)
	}
}

func (s *FormService) deleteDraft(ctx context.Context, formID uuid.UUID) {
	if s.drafts == nil {
		return
	}
	if err := s.drafts.Delete(ctx, formID); err != nil {
		s.log.WarnContext(ctx, "failed to delete draft", "form_id", formID.String(), "error", err)
	}
}

func (s *FormService) publish(ctx context.Context, topic string, v any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.PublishJSON(ctx, topic, v); err != nil {
		s.log.WarnContext(ctx, "failed to publish event", "topic", topic, "error", err)
	}
}
