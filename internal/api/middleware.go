package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/SergeyKozhin/studyspot-backend/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
)

type contextKey string

const (
	contextKeyID      = contextKey("id")
	contextKeyEventID = contextKey("event_id")
	contextKeyUserID  = contextKey("user_id")
)

var (
	errCantRetrieveID      = errors.New("can't retrieve id")
	errCantRetrieveEventID = errors.New("can't retrieve event id")
	errCantRetrieveUserID  = errors.New("can't retrieve user id")
)

func (a *Api) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" {
			a.unauthorizedResponse(w, r, errors.New("no token provided"))
			return
		}

		token = strings.TrimPrefix(token, "Bearer ")

		id, err := a.jwts.GetIdFromToken(token)
		if err != nil {
			invalidTokenErr := &jwt.InvalidTokenError{}
			switch {
			case errors.As(err, &invalidTokenErr):
				a.unauthorizedResponse(w, r, invalidTokenErr)
			default:
				a.serverErrorResponse(w, r, err)
			}
			return
		}

		idContext := context.WithValue(r.Context(), contextKeyID, id)
		next.ServeHTTP(w, r.WithContext(idContext))
	})
}

func (a *Api) eventIDCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		eventID, err := parseID(chi.URLParam(r, "eventID"))
		if err != nil {
			a.notFoundResponse(w, r)
			return
		}

		eventCtx := context.WithValue(r.Context(), contextKeyEventID, eventID)
		next.ServeHTTP(w, r.WithContext(eventCtx))
	})
}

func (a *Api) userIDCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseID(chi.URLParam(r, "userID"))
		if err != nil {
			a.notFoundResponse(w, r)
			return
		}

		userCtx := context.WithValue(r.Context(), contextKeyUserID, userID)
		next.ServeHTTP(w, r.WithContext(userCtx))
	})
}

// selfOnly lets through requests where the path user is the authenticated one.
func (a *Api) selfOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := r.Context().Value(contextKeyID).(int64)
		if !ok {
			a.serverErrorResponse(w, r, errCantRetrieveID)
			return
		}

		userID, ok := r.Context().Value(contextKeyUserID).(int64)
		if !ok {
			a.serverErrorResponse(w, r, errCantRetrieveUserID)
			return
		}

		if id != userID {
			a.forbiddenResponse(w, r, "not allowed to access another user's data")
			return
		}

		next.ServeHTTP(w, r)
	})
}
