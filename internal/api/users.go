package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SergeyKozhin/studyspot-backend/internal/model"
	"github.com/SergeyKozhin/studyspot-backend/internal/pkg/validator"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

func (a *Api) registerHandler(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Bio      string `json:"bio"`
		Photo    string `json:"photo"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	v := validator.New()
	v.Check(len(req.FullName) != 0, "full_name", "full_name must be provided")
	v.Check(validator.IsEmail(req.Email), "email", "email must be a valid email address")
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	user, token, err := a.social.Register(r.Context(), &model.UserCreate{
		FullName: req.FullName,
		Email:    req.Email,
		Bio:      req.Bio,
		Photo:    req.Photo,
	})
	if err != nil {
		switch {
		case errors.Is(err, model.ErrAlreadyExists):
			a.failedValidationResponse(w, r, map[string]string{"email": "a user with this email already exists"})
		default:
			a.serverErrorResponse(w, r, fmt.Errorf("register: %w", err))
		}
		return
	}

	resp := &struct {
		User        *userResp `json:"user"`
		AccessToken string    `json:"access_token"`
	}{
		User:        mapToUserResp(user.ID)(user),
		AccessToken: token,
	}

	if err := a.writeJSON(w, http.StatusCreated, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) searchUsersHandler(w http.ResponseWriter, r *http.Request) {
	viewerID, err := a.currentUserID(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	limit, err := a.readIntQuery(r, "limit", defaultSearchLimit)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	page, err := a.readIntQuery(r, "page", 0)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(limit > 0 && limit <= maxSearchLimit, "limit", fmt.Sprintf("limit must be between 1 and %d", maxSearchLimit))
	v.Check(page >= 0, "page", "page must not be negative")
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	users, err := a.social.SearchUsers(r.Context(), viewerID, model.UserSearchFilter{
		Query: strings.TrimSpace(r.URL.Query().Get("query")),
		Limit: limit,
		Page:  page,
	})
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("search users: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapSlice(users, mapToUserResp(viewerID)), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getProfileHandler(w http.ResponseWriter, r *http.Request) {
	viewerID, err := a.currentUserID(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	userID, ok := r.Context().Value(contextKeyUserID).(int64)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveUserID)
		return
	}

	user, err := a.social.GetProfile(r.Context(), viewerID, userID)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("get profile %d: %w", userID, err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToUserResp(viewerID)(user), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) updateProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(contextKeyUserID).(int64)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveUserID)
		return
	}

	req := &struct {
		FullName *string `json:"full_name"`
		Bio      *string `json:"bio"`
		Photo    *string `json:"photo"`
		Notify   *bool   `json:"notify"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	if req.FullName != nil {
		v.Check(len(*req.FullName) != 0, "full_name", "full_name must not be empty")
	}
	if req.Bio != nil {
		v.Check(len(*req.Bio) <= 500, "bio", "bio must not be longer than 500 characters")
	}
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	user, err := a.social.UpdateProfile(r.Context(), userID, &model.UserUpdate{
		FullName: req.FullName,
		Bio:      req.Bio,
		Photo:    req.Photo,
		Notify:   req.Notify,
	})
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("update profile: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToUserResp(userID)(user), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) deleteAccountHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(contextKeyUserID).(int64)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveUserID)
		return
	}

	if err := a.social.DeleteAccount(r.Context(), userID); err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("delete account: %w", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) updatePushTokenHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(contextKeyUserID).(int64)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveUserID)
		return
	}

	req := &struct {
		Token string `json:"token"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	if err := a.social.UpdatePushToken(r.Context(), userID, req.Token); err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("update push token: %w", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
