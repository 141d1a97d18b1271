package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (a *Api) getNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(contextKeyUserID).(int64)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveUserID)
		return
	}

	ns, err := a.social.Notifications(r.Context(), userID)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("get notifications: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapSlice(ns, mapToNotificationResp), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) markNotificationReadHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(contextKeyUserID).(int64)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveUserID)
		return
	}

	id, err := parseID(chi.URLParam(r, "notificationID"))
	if err != nil {
		a.notFoundResponse(w, r)
		return
	}

	if err := a.social.MarkNotificationRead(r.Context(), userID, id); err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("mark notification %d read: %w", id, err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
