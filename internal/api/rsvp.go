package api

import (
	"fmt"
	"net/http"

	"github.com/SergeyKozhin/studyspot-backend/internal/model"
)

func (a *Api) getRSVPHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := a.currentUserID(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	eventID, ok := r.Context().Value(contextKeyEventID).(int64)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveEventID)
		return
	}

	rsvp, err := a.events.GetRSVP(r.Context(), userID, eventID)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("get rsvp: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToRSVPResp(rsvp), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) setRSVPHandler(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		Status string `json:"status"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	status, err := model.ParseRSVPStatus(req.Status)
	if err != nil {
		a.failedValidationResponse(w, r, map[string]string{"status": "status must be one of none, accepted, declined"})
		return
	}

	a.writeRSVP(w, r, status)
}

func (a *Api) clearRSVPHandler(w http.ResponseWriter, r *http.Request) {
	a.writeRSVP(w, r, model.RSVPNone)
}

func (a *Api) writeRSVP(w http.ResponseWriter, r *http.Request, status model.RSVPStatus) {
	userID, err := a.currentUserID(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	eventID, ok := r.Context().Value(contextKeyEventID).(int64)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveEventID)
		return
	}

	rsvp, err := a.events.SetRSVP(r.Context(), userID, eventID, status)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("set rsvp: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToRSVPResp(rsvp), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}
