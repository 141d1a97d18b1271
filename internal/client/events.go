package client

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Event struct {
	ID             int64        `json:"id"`
	CreatorID      int64        `json:"creator_id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Location       string       `json:"location"`
	Coordinates    *Coordinates `json:"coordinates"`
	StartsAt       time.Time    `json:"starts_at"`
	NextOccurrence *time.Time   `json:"next_occurrence"`
	Capacity       int          `json:"capacity"`
	Tags           []string     `json:"tags"`
	AcceptedCount  int          `json:"accepted_count"`
}

type RSVP struct {
	EventID       int64  `json:"event_id"`
	Status        string `json:"status"`
	AcceptedCount int    `json:"accepted_count"`
}

const (
	RSVPNone     = "none"
	RSVPAccepted = "accepted"
	RSVPDeclined = "declined"
)

func (c *Client) ListEvents(ctx context.Context) ([]*Event, error) {
	var events []*Event
	if err := c.do(ctx, http.MethodGet, "/events", nil, nil, &events); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	return events, nil
}

func (c *Client) GetEvent(ctx context.Context, id int64) (*Event, error) {
	event := &Event{}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/events/%d", id), nil, nil, event); err != nil {
		return nil, fmt.Errorf("get event %d: %w", id, err)
	}

	return event, nil
}

func (c *Client) GetRSVP(ctx context.Context, eventID int64) (*RSVP, error) {
	rsvp := &RSVP{}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/events/%d/rsvpd", eventID), nil, nil, rsvp); err != nil {
		return nil, fmt.Errorf("get rsvp %d: %w", eventID, err)
	}

	return rsvp, nil
}

func (c *Client) SetRSVP(ctx context.Context, eventID int64, status string) (*RSVP, error) {
	req := &struct {
		Status string `json:"status"`
	}{Status: status}

	rsvp := &RSVP{}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/events/%d/rsvpd", eventID), nil, req, rsvp); err != nil {
		return nil, fmt.Errorf("set rsvp %d: %w", eventID, err)
	}

	return rsvp, nil
}

func (c *Client) ClearRSVP(ctx context.Context, eventID int64) (*RSVP, error) {
	rsvp := &RSVP{}
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/events/%d/rsvpd", eventID), nil, nil, rsvp); err != nil {
		return nil, fmt.Errorf("clear rsvp %d: %w", eventID, err)
	}

	return rsvp, nil
}

type savedResp struct {
	EventID int64 `json:"event_id"`
	Saved   bool  `json:"saved"`
}

func (c *Client) savedPath(eventID int64) string {
	return fmt.Sprintf("/users/%d/saved-events/%d", c.userID, eventID)
}

func (c *Client) IsSaved(ctx context.Context, eventID int64) (bool, error) {
	resp := &savedResp{}
	if err := c.do(ctx, http.MethodGet, c.savedPath(eventID), nil, nil, resp); err != nil {
		return false, fmt.Errorf("is saved %d: %w", eventID, err)
	}

	return resp.Saved, nil
}

func (c *Client) SaveEvent(ctx context.Context, eventID int64) error {
	if err := c.do(ctx, http.MethodPut, c.savedPath(eventID), nil, nil, nil); err != nil {
		return fmt.Errorf("save event %d: %w", eventID, err)
	}

	return nil
}

func (c *Client) UnsaveEvent(ctx context.Context, eventID int64) error {
	if err := c.do(ctx, http.MethodDelete, c.savedPath(eventID), nil, nil, nil); err != nil {
		return fmt.Errorf("unsave event %d: %w", eventID, err)
	}

	return nil
}
