package api

import (
	"context"
	"net/http"
	"time"

	"github.com/SergeyKozhin/studyspot-backend/internal/model"
	"github.com/SergeyKozhin/studyspot-backend/internal/pkg/geo"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Api struct {
	handler http.Handler
	logger  *zap.SugaredLogger
	now     func() time.Time

	jwts     jwtManager
	events   eventsService
	social   socialService
	geocoder geocoder

	calendarDomain string
}

type jwtManager interface {
	GetIdFromToken(token string) (int64, error)
}

type eventsService interface {
	CreateEvent(ctx context.Context, info *model.EventCreate) (*model.Event, error)
	GetEvents(ctx context.Context) ([]*model.Event, error)
	GetEventByID(ctx context.Context, id int64) (*model.Event, error)
	DeleteEvent(ctx context.Context, userID, id int64) error

	GetRSVP(ctx context.Context, userID, eventID int64) (*model.RSVP, error)
	SetRSVP(ctx context.Context, userID, eventID int64, status model.RSVPStatus) (*model.RSVP, error)
	Invite(ctx context.Context, userID, eventID int64, inviteeIDs []int64) error

	AddComment(ctx context.Context, userID, eventID int64, body string) (*model.Comment, error)
	GetComments(ctx context.Context, eventID int64) ([]*model.Comment, error)

	IsSaved(ctx context.Context, userID, eventID int64) (bool, error)
	SaveEvent(ctx context.Context, userID, eventID int64) error
	UnsaveEvent(ctx context.Context, userID, eventID int64) error
	GetSavedEvents(ctx context.Context, userID int64) ([]*model.Event, error)
}

type socialService interface {
	Register(ctx context.Context, info *model.UserCreate) (*model.User, string, error)
	GetProfile(ctx context.Context, viewerID, userID int64) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int64, upd *model.UserUpdate) (*model.User, error)
	UpdatePushToken(ctx context.Context, userID int64, token string) error
	DeleteAccount(ctx context.Context, userID int64) error
	SearchUsers(ctx context.Context, viewerID int64, filter model.UserSearchFilter) ([]*model.User, error)

	Follow(ctx context.Context, userID, targetID int64) error
	Unfollow(ctx context.Context, userID, targetID int64) error
	Followers(ctx context.Context, userID int64) ([]*model.User, error)
	Following(ctx context.Context, userID int64) ([]*model.User, error)
	Friends(ctx context.Context, userID int64) ([]*model.User, error)

	Block(ctx context.Context, userID, targetID int64) error
	Unblock(ctx context.Context, userID, targetID int64) error
	Blocks(ctx context.Context, userID int64) ([]*model.User, error)

	Notifications(ctx context.Context, userID int64) ([]*model.Notification, error)
	MarkNotificationRead(ctx context.Context, userID, id int64) error
}

type geocoder interface {
	Geocode(ctx context.Context, address string) (geo.Point, error)
}

func NewApi(
	logger *zap.SugaredLogger,
	jwts jwtManager,
	events eventsService,
	social socialService,
	geocoder geocoder,
	calendarDomain string,
) (*Api, error) {
	a := &Api{
		logger:         logger,
		now:            time.Now,
		jwts:           jwts,
		events:         events,
		social:         social,
		geocoder:       geocoder,
		calendarDomain: calendarDomain,
	}
	a.setupHandler()

	return a, nil
}

func (a *Api) setupHandler() {
	middleware.DefaultLogger = func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a.logger.Debugw(r.URL.RequestURI(),
				"addr", r.RemoteAddr,
				"protocol", r.Proto,
				"method", r.Method,
				"request_id", middleware.GetReqID(r.Context()),
			)
			next.ServeHTTP(w, r)
		})
	}

	r := chi.NewMux()

	r.Use(middleware.RequestID, middleware.Logger, middleware.Recoverer, middleware.StripSlashes)
	r.NotFound(a.notFoundResponse)
	r.MethodNotAllowed(a.methodNotAllowedResponse)

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Post("/users", a.registerHandler)

	r.Group(func(r chi.Router) {
		r.Use(a.auth)

		r.Get("/users", a.searchUsersHandler)
		r.Get("/geocode", a.geocodeHandler)

		r.Route("/events", func(r chi.Router) {
			r.Get("/", a.getEventsHandler)
			r.Post("/", a.createEventHandler)

			r.Route("/{eventID}", func(r chi.Router) {
				r.Use(a.eventIDCtx)

				r.Get("/", a.getEventHandler)
				r.Delete("/", a.deleteEventHandler)

				r.Get("/rsvpd", a.getRSVPHandler)
				r.Post("/rsvpd", a.setRSVPHandler)
				r.Delete("/rsvpd", a.clearRSVPHandler)

				r.Post("/invite", a.inviteHandler)

				r.Get("/comments", a.getCommentsHandler)
				r.Post("/comments", a.addCommentHandler)
			})
		})

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Use(a.userIDCtx)

			r.Get("/profile", a.getProfileHandler)
			r.Get("/friends", a.getFriendsHandler)
			r.Get("/followers", a.getFollowersHandler)
			r.Get("/following", a.getFollowingHandler)

			r.Group(func(r chi.Router) {
				r.Use(a.selfOnly)

				r.Patch("/profile", a.updateProfileHandler)
				r.Delete("/account", a.deleteAccountHandler)
				r.Put("/push-token", a.updatePushTokenHandler)

				r.Get("/saved-events", a.getSavedEventsHandler)
				r.Get("/saved-events.ics", a.exportSavedEventsHandler)
				r.Get("/saved-events/{eventID}", a.isSavedHandler)
				r.Put("/saved-events/{eventID}", a.saveEventHandler)
				r.Delete("/saved-events/{eventID}", a.unsaveEventHandler)

				r.Put("/follow/{targetID}", a.followHandler)
				r.Delete("/follow/{targetID}", a.unfollowHandler)

				r.Get("/blocks", a.getBlocksHandler)
				r.Put("/blocks/{targetID}", a.blockHandler)
				r.Delete("/blocks/{targetID}", a.unblockHandler)

				r.Get("/notifications", a.getNotificationsHandler)
				r.Post("/notifications/{notificationID}/read", a.markNotificationReadHandler)
			})
		})
	})

	a.handler = r
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}
