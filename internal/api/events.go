package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SergeyKozhin/studyspot-backend/internal/model"
	"github.com/SergeyKozhin/studyspot-backend/internal/pkg/validator"
)

func (a *Api) createEventHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := a.currentUserID(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	req := &struct {
		Title       string           `json:"title"`
		Description string           `json:"description"`
		Location    string           `json:"location"`
		StartsAt    time.Time        `json:"starts_at"`
		Capacity    int              `json:"capacity"`
		Tags        []string         `json:"tags"`
		RepeatType  model.RepeatType `json:"repeat_type"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()

	v.Check(len(req.Title) != 0, "title", "title must be provided")
	v.Check(len(req.Title) <= 200, "title", "title must not be longer than 200 characters")
	v.Check(!req.StartsAt.IsZero(), "starts_at", "starts_at must be provided")
	v.Check(req.Capacity >= 0, "capacity", "capacity must not be negative")
	v.Check(req.RepeatType.Valid(), "repeat_type", "unknown repeat type")
	v.Check(len(req.Tags) <= 20, "tags", "too many tags")
	for _, tag := range req.Tags {
		v.Check(validator.Matches(tag, validator.TagRX), "tags", fmt.Sprintf("invalid tag %q", tag))
	}

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	event, err := a.events.CreateEvent(r.Context(), &model.EventCreate{
		CreatorID:   userID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		Capacity:    req.Capacity,
		Tags:        req.Tags,
		RepeatType:  req.RepeatType,
	})
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("create event: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusCreated, mapToEventResp(event), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getEventsHandler(w http.ResponseWriter, r *http.Request) {
	events, err := a.events.GetEvents(r.Context())
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("get events: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapSlice(events, mapToEventResp), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getEventHandler(w http.ResponseWriter, r *http.Request) {
	eventID, ok := r.Context().Value(contextKeyEventID).(int64)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveEventID)
		return
	}

	event, err := a.events.GetEventByID(r.Context(), eventID)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("get event %d: %w", eventID, err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToEventResp(event), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) deleteEventHandler(w http.ResponseWriter, r *http.Request) {
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

	if err := a.events.DeleteEvent(r.Context(), userID, eventID); err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("delete event %d: %w", eventID, err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) inviteHandler(w http.ResponseWriter, r *http.Request) {
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

	req := &struct {
		UserIDs []int64 `json:"user_ids"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(len(req.UserIDs) != 0, "user_ids", "user_ids must be provided")
	v.Check(len(req.UserIDs) <= 100, "user_ids", "at most 100 users can be invited at once")
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	if err := a.events.Invite(r.Context(), userID, eventID, req.UserIDs); err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("invite to event %d: %w", eventID, err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) getCommentsHandler(w http.ResponseWriter, r *http.Request) {
	eventID, ok := r.Context().Value(contextKeyEventID).(int64)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveEventID)
		return
	}

	comments, err := a.events.GetComments(r.Context(), eventID)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("get comments: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapSlice(comments, mapToCommentResp), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) addCommentHandler(w http.ResponseWriter, r *http.Request) {
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

	req := &struct {
		Body string `json:"body"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(len(req.Body) != 0, "body", "body must be provided")
	v.Check(len(req.Body) <= 2000, "body", "body must not be longer than 2000 characters")
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	comment, err := a.events.AddComment(r.Context(), userID, eventID, req.Body)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("add comment: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusCreated, mapToCommentResp(comment), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}
