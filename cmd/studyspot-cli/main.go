package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/SergeyKozhin/studyspot-backend/internal/client"
	"github.com/SergeyKozhin/studyspot-backend/internal/discovery"
	"github.com/SergeyKozhin/studyspot-backend/internal/pkg/geocode"
	"github.com/mattn/go-runewidth"
	"github.com/xlab/closer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const usage = `usage: studyspot-cli [-config path] <command> [args]

commands:
  list [-pins]   show events sorted by distance and filtered
  rsvp <id>      toggle RSVP for an event
  save <id>      toggle saved state for an event
`

func main() {
	configPath := flag.String("config", "studyspot.yaml", "path to the YAML config")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	conf, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("unable to load config: %v", err)
	}

	logger, err := initLogger(conf.Production)
	if err != nil {
		log.Fatalf("unable to initializae logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	closer.Bind(stop)

	if err := run(ctx, conf, logger, flag.Args(), os.Stdout); err != nil {
		logger.Errorw("command failed", "err", err)
		closer.Exit(1)
	}
	closer.Close()
}

func run(ctx context.Context, conf *Config, logger *zap.SugaredLogger, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("no command given")
	}

	backend := client.New(client.Config{
		BaseURL: conf.Backend.URL,
		Token:   conf.Backend.Token,
		UserID:  conf.Backend.UserID,
		Timeout: conf.Backend.Timeout,
	}, logger)

	var enricher *discovery.Enricher
	switch conf.Geocoder.Mode {
	case geocoderGoogle:
		enricher = discovery.NewEnricher(backend, geocode.NewClient(conf.Geocoder.APIKey, conf.Geocoder.URL), logger)
	case geocoderBackend:
		enricher = discovery.NewEnricher(backend, backend, logger)
	default:
		enricher = discovery.NewEnricher(backend, nil, logger)
	}

	store := discovery.NewStore()

	switch cmd := args[0]; cmd {
	case "list":
		fs := flag.NewFlagSet("list", flag.ContinueOnError)
		pins := fs.Bool("pins", false, "only events that can be placed on a map")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		if err := enricher.Load(ctx, store); err != nil {
			return err
		}

		events := store.List()
		if conf.Origin != nil {
			events = discovery.SortByDistance(events, conf.origin())
		}
		events = conf.Filters.Apply(events)
		if *pins {
			events = discovery.MapPins(events)
		}

		return printEvents(out, events, conf)
	case "rsvp", "save":
		if len(args) != 2 {
			return fmt.Errorf("%s: expected exactly one event id", cmd)
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil || id < 1 {
			return fmt.Errorf("%s: invalid event id %q", cmd, args[1])
		}

		if err := enricher.Load(ctx, store); err != nil {
			return err
		}

		return toggle(ctx, store, backend, logger, conf.ReconcileDelay, discovery.Action(cmd), id, out)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func toggle(
	ctx context.Context,
	store *discovery.Store,
	backend discovery.Backend,
	logger *zap.SugaredLogger,
	delay time.Duration,
	action discovery.Action,
	id int64,
	out io.Writer,
) error {
	controller := discovery.NewController(store, backend, logger,
		discovery.WithReconcileDelay(delay),
		discovery.WithAlert(func(action discovery.Action, eventID int64, err error) {
			fmt.Fprintf(out, "could not %s event %d: %v\n", action, eventID, err)
		}),
	)
	defer controller.Close()

	var err error
	if action == discovery.ActionRSVP {
		err = controller.ToggleRSVP(ctx, id)
	} else {
		err = controller.ToggleSave(ctx, id)
	}
	if err != nil {
		return err
	}

	e, _ := store.Get(id)
	fmt.Fprintf(out, "optimistic: %s\n", describe(e))

	ticker := time.NewTicker(max(delay/4, time.Millisecond))
	defer ticker.Stop()
	for controller.State(id, action) != discovery.StateIdle {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	e, _ = store.Get(id)
	fmt.Fprintf(out, "confirmed:  %s\n", describe(e))

	return nil
}

func describe(e discovery.Event) string {
	return fmt.Sprintf("#%d %q rsvped=%t attendees=%s saved=%t",
		e.ID, e.Title, e.IsRSVPed, attendees(e), e.IsSaved)
}

func attendees(e discovery.Event) string {
	if e.Capacity == 0 {
		return strconv.Itoa(e.AcceptedCount)
	}
	return fmt.Sprintf("%d/%d", e.AcceptedCount, e.Capacity)
}

const maxColumnWidth = 32

func printEvents(out io.Writer, events []discovery.Event, conf *Config) error {
	rows := [][]string{{"ID", "TITLE", "STARTS", "DISTANCE", "ATTENDEES", "RSVP", "SAVED", "LOCATION"}}
	for _, e := range events {
		distance := "-"
		if e.DistanceKm != nil {
			distance = fmt.Sprintf("%.2f %s", conf.Filters.Unit.FromKm(*e.DistanceKm), conf.Filters.Unit)
		}
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			runewidth.Truncate(e.Title, maxColumnWidth, "…"),
			e.StartsAt.Local().Format("Mon Jan 2 15:04"),
			distance,
			attendees(e),
			strconv.FormatBool(e.IsRSVPed),
			strconv.FormatBool(e.IsSaved),
			runewidth.Truncate(e.Location, maxColumnWidth, "…"),
		})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	var sb strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			if i == len(row)-1 {
				sb.WriteString(cell)
				break
			}
			sb.WriteString(runewidth.FillRight(cell, widths[i]+2))
		}
		sb.WriteString("\n")
	}

	_, err := io.WriteString(out, sb.String())
	return err
}

func initLogger(production bool) (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	if production {
		logger, err = zap.NewProduction()
	} else {
		conf := zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		conf.OutputPaths = []string{"stderr"}
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
