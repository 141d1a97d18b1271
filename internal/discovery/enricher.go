package discovery

import (
	"context"
	"fmt"
	"strings"

	"github.com/SergeyKozhin/studyspot-backend/internal/client"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Enricher loads events and attaches coordinates and the user's RSVP and saved state.
type Enricher struct {
	backend  Backend
	geocoder geocoder
	logger   *zap.SugaredLogger
}

// NewEnricher accepts a nil geocoder; events without coordinates then stay unplaced.
func NewEnricher(backend Backend, geocoder geocoder, logger *zap.SugaredLogger) *Enricher {
	return &Enricher{
		backend:  backend,
		geocoder: geocoder,
		logger:   logger,
	}
}

// Fetch returns all events, enriched one after another. Lookup failures for
// a single event are logged and leave that field at its default.
func (e *Enricher) Fetch(ctx context.Context) ([]*Event, error) {
	raw, err := e.backend.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("backend.ListEvents: %w", err)
	}

	events := make([]*Event, 0, len(raw))
	for _, r := range raw {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		events = append(events, e.enrich(ctx, r))
	}

	return events, nil
}

// Load fetches and replaces the store contents.
func (e *Enricher) Load(ctx context.Context, store *Store) error {
	events, err := e.Fetch(ctx)
	if err != nil {
		return err
	}

	store.Replace(events)
	e.logger.Debugw("events loaded", "count", len(events))

	return nil
}

func (e *Enricher) enrich(ctx context.Context, r *client.Event) *Event {
	event := fromClient(r)
	logger := e.logger.With("event_id", event.ID)

	var g errgroup.Group

	if event.Coordinates == nil && e.geocoder != nil && strings.TrimSpace(event.Location) != "" {
		g.Go(func() error {
			p, err := e.geocoder.Geocode(ctx, event.Location)
			if err != nil {
				logger.Warnw("failed to geocode event", "location", event.Location, "err", err)
				return nil
			}
			if !p.Valid() {
				logger.Warnw("geocoder returned invalid point", "location", event.Location)
				return nil
			}
			event.Coordinates = &p
			return nil
		})
	}

	var rsvp *client.RSVP
	g.Go(func() error {
		res, err := e.backend.GetRSVP(ctx, event.ID)
		if err != nil {
			logger.Warnw("failed to get rsvp status", "err", err)
			return nil
		}
		rsvp = res
		return nil
	})

	var saved bool
	g.Go(func() error {
		res, err := e.backend.IsSaved(ctx, event.ID)
		if err != nil {
			logger.Warnw("failed to get saved status", "err", err)
			return nil
		}
		saved = res
		return nil
	})

	_ = g.Wait()

	if rsvp != nil {
		event.IsRSVPed = rsvp.Status == client.RSVPAccepted
		event.AcceptedCount = rsvp.AcceptedCount
	}
	event.IsSaved = saved

	return event
}
