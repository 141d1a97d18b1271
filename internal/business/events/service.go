package events

import (
	"context"
	"fmt"
	"time"

	"github.com/SergeyKozhin/studyspot-backend/internal/database"
	"github.com/SergeyKozhin/studyspot-backend/internal/model"
	"github.com/SergeyKozhin/studyspot-backend/internal/pkg/geo"
	"go.uber.org/zap"
)

type Service struct {
	db        database.PGX
	logger    *zap.SugaredLogger
	events    eventsRepository
	attendees attendeesRepository
	saved     savedRepository
	comments  commentsRepository
	blocks    blocksRepository
	notifier  notifier
	geocoder  geocoder
	now       func() time.Time
}

type eventsRepository interface {
	CreateEvent(ctx context.Context, q database.Queryable, event *model.Event) (int64, error)
	GetEventByID(ctx context.Context, q database.Queryable, id int64) (*model.Event, error)
	GetEventForUpdate(ctx context.Context, q database.Queryable, id int64) error
	GetEvents(ctx context.Context, q database.Queryable) ([]*model.Event, error)
	GetEventsByIDs(ctx context.Context, q database.Queryable, ids []int64) ([]*model.Event, error)
	GetEventsStartingBetween(ctx context.Context, q database.Queryable, from, to time.Time) ([]*model.Event, error)
	UpdateCoordinates(ctx context.Context, q database.Queryable, id int64, coords *model.Coordinates) error
	DeleteEvent(ctx context.Context, q database.Queryable, id int64) error
}

type attendeesRepository interface {
	GetStatus(ctx context.Context, q database.Queryable, eventID, userID int64) (model.RSVPStatus, error)
	CountAccepted(ctx context.Context, q database.Queryable, eventID int64) (int, error)
	SetStatus(ctx context.Context, q database.Queryable, eventID, userID int64, status model.RSVPStatus) error
	DeleteStatus(ctx context.Context, q database.Queryable, eventID, userID int64) error
	Invite(ctx context.Context, q database.Queryable, eventID int64, userIDs []int64) error
}

type savedRepository interface {
	IsSaved(ctx context.Context, q database.Queryable, userID, eventID int64) (bool, error)
	GetSavedEventIDs(ctx context.Context, q database.Queryable, userID int64) ([]int64, error)
	Save(ctx context.Context, q database.Queryable, userID, eventID int64) error
	Unsave(ctx context.Context, q database.Queryable, userID, eventID int64) error
}

type commentsRepository interface {
	CreateComment(ctx context.Context, q database.Queryable, c *model.Comment) (*model.Comment, error)
	GetComments(ctx context.Context, q database.Queryable, eventID int64) ([]*model.Comment, error)
}

type blocksRepository interface {
	IsBlockedEitherWay(ctx context.Context, q database.Queryable, a, b int64) (bool, error)
}

type notifier interface {
	Notify(ctx context.Context, ns ...*model.NotificationCreate) error
}

type geocoder interface {
	Geocode(ctx context.Context, address string) (geo.Point, error)
}

type Repositories struct {
	Events    eventsRepository
	Attendees attendeesRepository
	Saved     savedRepository
	Comments  commentsRepository
	Blocks    blocksRepository
}

func NewService(
	db database.PGX,
	logger *zap.SugaredLogger,
	repos Repositories,
	notifier notifier,
	geocoder geocoder,
) *Service {
	return &Service{
		db:        db,
		logger:    logger,
		events:    repos.Events,
		attendees: repos.Attendees,
		saved:     repos.Saved,
		comments:  repos.Comments,
		blocks:    repos.Blocks,
		notifier:  notifier,
		geocoder:  geocoder,
		now:       time.Now,
	}
}

func (s *Service) notify(ctx context.Context, ns ...*model.NotificationCreate) {
	if err := s.notifier.Notify(ctx, ns...); err != nil {
		s.logger.Errorw("failed to notify", "count", len(ns), "err", err)
	}
}

func (s *Service) geocode(ctx context.Context, address string) *model.Coordinates {
	if address == "" || s.geocoder == nil {
		return nil
	}

	p, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		s.logger.Warnw("failed to geocode event location", "location", address, "err", err)
		return nil
	}

	return &model.Coordinates{Lat: p.Lat, Lng: p.Lng}
}

func (s *Service) checkBlocked(ctx context.Context, q database.Queryable, a, b int64) error {
	if a == b {
		return nil
	}

	blocked, err := s.blocks.IsBlockedEitherWay(ctx, q, a, b)
	if err != nil {
		return fmt.Errorf("blocks.IsBlockedEitherWay: %w", err)
	}

	if blocked {
		return model.ErrBlocked
	}

	return nil
}
