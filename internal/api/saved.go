package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/SergeyKozhin/studyspot-backend/internal/ics"
	"github.com/go-chi/chi/v5"
)

type savedResp struct {
	EventID int64 `json:"event_id"`
	Saved   bool  `json:"saved"`
}

func (a *Api) getSavedEventsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(contextKeyUserID).(int64)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveUserID)
		return
	}

	events, err := a.events.GetSavedEvents(r.Context(), userID)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("get saved events: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapSlice(events, mapToEventResp), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) exportSavedEventsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(contextKeyUserID).(int64)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveUserID)
		return
	}

	events, err := a.events.GetSavedEvents(r.Context(), userID)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("get saved events: %w", err))
		return
	}

	buf := &bytes.Buffer{}
	if err := ics.Export(buf, events, a.calendarDomain, a.now()); err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("export calendar: %w", err))
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="saved-events.ics"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (a *Api) isSavedHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(contextKeyUserID).(int64)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveUserID)
		return
	}

	eventID, err := parseID(chi.URLParam(r, "eventID"))
	if err != nil {
		a.notFoundResponse(w, r)
		return
	}

	saved, err := a.events.IsSaved(r.Context(), userID, eventID)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("is saved: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, &savedResp{EventID: eventID, Saved: saved}, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) saveEventHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(contextKeyUserID).(int64)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveUserID)
		return
	}

	eventID, err := parseID(chi.URLParam(r, "eventID"))
	if err != nil {
		a.notFoundResponse(w, r)
		return
	}

	if err := a.events.SaveEvent(r.Context(), userID, eventID); err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("save event: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, &savedResp{EventID: eventID, Saved: true}, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) unsaveEventHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(contextKeyUserID).(int64)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveUserID)
		return
	}

	eventID, err := parseID(chi.URLParam(r, "eventID"))
	if err != nil {
		a.notFoundResponse(w, r)
		return
	}

	if err := a.events.UnsaveEvent(r.Context(), userID, eventID); err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("unsave event: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, &savedResp{EventID: eventID, Saved: false}, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}
