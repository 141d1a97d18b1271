package main

import (
	"context"
	"log"
	"net/http"

	"github.com/SergeyKozhin/studyspot-backend/internal/api"
	events_service "github.com/SergeyKozhin/studyspot-backend/internal/business/events"
	social_service "github.com/SergeyKozhin/studyspot-backend/internal/business/social"
	"github.com/SergeyKozhin/studyspot-backend/internal/config"
	"github.com/SergeyKozhin/studyspot-backend/internal/database"
	"github.com/SergeyKozhin/studyspot-backend/internal/database/attendees"
	"github.com/SergeyKozhin/studyspot-backend/internal/database/comments"
	"github.com/SergeyKozhin/studyspot-backend/internal/database/events"
	notifications_repo "github.com/SergeyKozhin/studyspot-backend/internal/database/notifications"
	"github.com/SergeyKozhin/studyspot-backend/internal/database/saved"
	"github.com/SergeyKozhin/studyspot-backend/internal/database/social"
	"github.com/SergeyKozhin/studyspot-backend/internal/database/user"
	"github.com/SergeyKozhin/studyspot-backend/internal/notifications"
	"github.com/SergeyKozhin/studyspot-backend/internal/pkg/fcm"
	"github.com/SergeyKozhin/studyspot-backend/internal/pkg/geocode"
	"github.com/SergeyKozhin/studyspot-backend/internal/pkg/jwt"
	"github.com/SergeyKozhin/studyspot-backend/internal/redis"
	"github.com/xlab/closer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx := context.Background()

	logger, err := initLogger()
	if err != nil {
		log.Fatalf("unable to initializae logger: %v", err)
	}

	if err := database.Migrate(config.PostgresURL()); err != nil {
		logger.Fatalw("unable to migrate db", "err", err)
	}

	db, err := database.NewPGX(ctx, config.PostgresURL())
	if err != nil {
		logger.Fatalw("unable to initializae db", "err", err)
	}

	jwts := jwt.NewManager(config.Secret(), config.JwtTTL())

	redisPool := redis.NewRedisPool(config.RedisURL(), logger)
	geocoder := redis.NewGeocodeCache(
		redisPool,
		geocode.NewClient(config.GeocodingAPIKey(), config.GeocodingURL()),
		config.GeocodeCacheTTL(),
		logger,
	)

	usersRepository := user.NewRepository()
	socialRepository := social.NewRepository()
	notificationsRepository := notifications_repo.NewRepository()

	var sender *notifications.Sender
	if path := config.FirebaseCredentialsPath(); path != "" {
		fcmService, err := fcm.NewService(ctx, path)
		if err != nil {
			logger.Fatalw("unable to initializae fcm service", "err", err)
		}
		sender = notifications.NewSender(db, logger, notificationsRepository, usersRepository, fcmService)
	} else {
		logger.Warn("firebase credentials not set, push notifications disabled")
		sender = notifications.NewSender(db, logger, notificationsRepository, usersRepository, nil)
	}

	eventsService := events_service.NewService(db, logger, events_service.Repositories{
		Events:    events.NewRepository(),
		Attendees: attendees.NewRepository(),
		Saved:     saved.NewRepository(),
		Comments:  comments.NewRepository(),
		Blocks:    socialRepository,
	}, sender, geocoder)

	socialService := social_service.NewService(
		db,
		logger,
		usersRepository,
		socialRepository,
		notificationsRepository,
		sender,
		jwts,
	)

	reminder := notifications.NewReminder(logger, eventsService, sender, config.ReminderLead())
	if err := reminder.Start(ctx, config.ReminderSchedule()); err != nil {
		logger.Fatalw("unable to start reminders", "err", err)
	}

	api, err := api.NewApi(
		logger,
		jwts,
		eventsService,
		socialService,
		geocoder,
		config.CalendarDomain(),
	)
	if err != nil {
		logger.Fatalw("unable to initializae api", "err", err)
	}

	errLogger, err := zap.NewStdLogAt(logger.Desugar(), zap.ErrorLevel)
	if err != nil {
		logger.Fatalw("error initiating server logger", "err", err)
	}

	server := &http.Server{
		Addr:     ":" + config.Port(),
		Handler:  api,
		ErrorLog: errLogger,
	}

	closer.Bind(func() {
		_ = server.Shutdown(context.Background())
	})

	logger.Infow("Started server", "port", config.Port())
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Errorw("server error", "err", err)
	}
	closer.Close()
}

func initLogger() (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	if config.Production() {
		logger, err = zap.NewProduction()
	} else {
		conf := zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = conf.Build()
	}

	if err != nil {
		return nil, err
	}

	closer.Bind(func() {
		_ = logger.Sync()
	})

	return logger.Sugar(), nil
}
