package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/SergeyKozhin/studyspot-backend/internal/model"
	"github.com/go-chi/chi/v5"
)

func (a *Api) getFriendsHandler(w http.ResponseWriter, r *http.Request) {
	a.listUsers(w, r, a.social.Friends)
}

func (a *Api) getFollowersHandler(w http.ResponseWriter, r *http.Request) {
	a.listUsers(w, r, a.social.Followers)
}

func (a *Api) getFollowingHandler(w http.ResponseWriter, r *http.Request) {
	a.listUsers(w, r, a.social.Following)
}

func (a *Api) getBlocksHandler(w http.ResponseWriter, r *http.Request) {
	a.listUsers(w, r, a.social.Blocks)
}

func (a *Api) listUsers(w http.ResponseWriter, r *http.Request, list func(context.Context, int64) ([]*model.User, error)) {
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

	users, err := list(r.Context(), userID)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("list users for %d: %w", userID, err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapSlice(users, mapToUserResp(viewerID)), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) followHandler(w http.ResponseWriter, r *http.Request) {
	a.changeRelation(w, r, a.social.Follow)
}

func (a *Api) unfollowHandler(w http.ResponseWriter, r *http.Request) {
	a.changeRelation(w, r, a.social.Unfollow)
}

func (a *Api) blockHandler(w http.ResponseWriter, r *http.Request) {
	a.changeRelation(w, r, a.social.Block)
}

func (a *Api) unblockHandler(w http.ResponseWriter, r *http.Request) {
	a.changeRelation(w, r, a.social.Unblock)
}

func (a *Api) changeRelation(w http.ResponseWriter, r *http.Request, change func(context.Context, int64, int64) error) {
	userID, ok := r.Context().Value(contextKeyUserID).(int64)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveUserID)
		return
	}

	targetID, err := parseID(chi.URLParam(r, "targetID"))
	if err != nil {
		a.notFoundResponse(w, r)
		return
	}

	if err := change(r.Context(), userID, targetID); err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("change relation %d -> %d: %w", userID, targetID, err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
