package api

import (
	"time"

	"github.com/SergeyKozhin/studyspot-backend/internal/model"
)

type coordinatesResp struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type eventResp struct {
	ID             int64            `json:"id"`
	CreatorID      int64            `json:"creator_id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Location       string           `json:"location"`
	Coordinates    *coordinatesResp `json:"coordinates"`
	StartsAt       time.Time        `json:"starts_at"`
	NextOccurrence *time.Time       `json:"next_occurrence,omitempty"`
	Capacity       int              `json:"capacity"`
	Tags           []string         `json:"tags"`
	RepeatType     model.RepeatType `json:"repeat_type"`
	AcceptedCount  int              `json:"accepted_count"`
	AcceptedIDs    []int64          `json:"accepted_ids"`
	InvitedIDs     []int64          `json:"invited_ids"`
	DeclinedIDs    []int64          `json:"declined_ids"`
	CreatedAt      time.Time        `json:"created_at"`
}

func mapToEventResp(e *model.Event) *eventResp {
	resp := &eventResp{
		ID:             e.ID,
		CreatorID:      e.CreatorID,
		Title:          e.Title,
		Description:    e.Description,
		Location:       e.Location,
		StartsAt:       e.StartsAt,
		NextOccurrence: e.NextOccurrence,
		Capacity:       e.Capacity,
		Tags:           nonNil(e.Tags),
		RepeatType:     e.RepeatType,
		AcceptedCount:  e.AcceptedCount(),
		AcceptedIDs:    nonNil(e.AcceptedIDs),
		InvitedIDs:     nonNil(e.InvitedIDs),
		DeclinedIDs:    nonNil(e.DeclinedIDs),
		CreatedAt:      e.CreatedAt,
	}

	if e.Coordinates != nil {
		resp.Coordinates = &coordinatesResp{Lat: e.Coordinates.Lat, Lng: e.Coordinates.Lng}
	}

	return resp
}

type userResp struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Photo    string `json:"photo,omitempty"`
	Notify   *bool  `json:"notify,omitempty"`
}

// mapToUserResp hides email and settings unless the user views itself.
func mapToUserResp(viewerID int64) func(*model.User) *userResp {
	return func(user *model.User) *userResp {
		resp := &userResp{
			ID:       user.ID,
			FullName: user.FullName,
			Bio:      user.Bio,
			Photo:    user.Photo,
		}

		if user.ID == viewerID {
			notify := user.Notify
			resp.Email = user.Email
			resp.Notify = &notify
		}

		return resp
	}
}

type rsvpResp struct {
	EventID       int64            `json:"event_id"`
	Status        model.RSVPStatus `json:"status"`
	AcceptedCount int              `json:"accepted_count"`
}

func mapToRSVPResp(rsvp *model.RSVP) *rsvpResp {
	status := rsvp.Status
	if status == model.RSVPInvited {
		status = model.RSVPNone
	}

	return &rsvpResp{
		EventID:       rsvp.EventID,
		Status:        status,
		AcceptedCount: rsvp.AcceptedCount,
	}
}

type commentResp struct {
	ID        int64     `json:"id"`
	EventID   int64     `json:"event_id"`
	AuthorID  int64     `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func mapToCommentResp(c *model.Comment) *commentResp {
	return &commentResp{
		ID:        c.ID,
		EventID:   c.EventID,
		AuthorID:  c.AuthorID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
	}
}

type notificationResp struct {
	ID        int64                  `json:"id"`
	Kind      model.NotificationKind `json:"kind"`
	EventID   *int64                 `json:"event_id,omitempty"`
	ActorID   *int64                 `json:"actor_id,omitempty"`
	Text      string                 `json:"text"`
	Read      bool                   `json:"read"`
	CreatedAt time.Time              `json:"created_at"`
}

func mapToNotificationResp(n *model.Notification) *notificationResp {
	return &notificationResp{
		ID:        n.ID,
		Kind:      n.Kind,
		EventID:   n.EventID,
		ActorID:   n.ActorID,
		Text:      n.Text,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
