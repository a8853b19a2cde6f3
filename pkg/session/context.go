package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type contextKey string

const formIDKey contextKey = "form_id"

// ErrFormIDNotFound is returned when no form ID exists in the request context,
// which means RequireFormSession did not run for the route.
var ErrFormIDNotFound = errors.New("form_id not found in context")

// FormIDFromCtx extracts the visitor's form ID from the request context.
func FormIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(formIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, ErrFormIDNotFound
	}
	return id, nil
}

// WithFormID returns a new context with the given form ID attached.
func WithFormID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, formIDKey, id)
}
