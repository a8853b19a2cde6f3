package session

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/pizzaorder/pkg/httpx"
	"github.com/ghuser/pizzaorder/pkg/logger"
)

// CookieName is the name of the session cookie carrying the visitor's form.
const CookieName = "order_session"

const sessionFormIDKey = "form_id"

// RequireFormSession is a chi middleware that binds every request to a form.
// A visitor without a valid session gets a fresh form ID and a new cookie;
// an existing session keeps its form ID. The ID is injected into the request
// context (see FormIDFromCtx) and into every log record made with it.
func RequireFormSession(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := store.Get(r, CookieName)
			if err != nil {
				// Tampered or stale cookie: gorilla still returns a usable new session.
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
			}
			if s == nil {
				httpx.JSON(w, http.StatusInternalServerError, map[string]string{"error": "session unavailable"})
				return
			}

			formID, ok := formIDFromSession(s)
			if !ok {
				formID = uuid.New()
				s.Values[sessionFormIDKey] = formID.String()
				if err := s.Save(r, w); err != nil {
					log.ErrorContext(r.Context(), "failed to save session", "error", err)
					httpx.JSON(w, http.StatusInternalServerError, map[string]string{"error": "session unavailable"})
					return
				}
				log.DebugContext(r.Context(), "new form session", "form_id", formID.String())
			}

			ctx := WithFormID(r.Context(), formID)
			ctx = logger.AppendCtx(ctx, slog.String("form_id", formID.String()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func formIDFromSession(s *sessions.Session) (uuid.UUID, bool) {
	raw, ok := s.Values[sessionFormIDKey].(string)
	if !ok || raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
