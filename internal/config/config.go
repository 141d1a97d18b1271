package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
)

type config struct {
	Production              bool          `env:"PRODUCTION" envDefault:"false"`
	Port                    string        `env:"PORT" envDefault:"80"`
	PostgresUrl             string        `env:"POSTGRES_URL,required"`
	RedisUrl                string        `env:"REDIS_URL" envDefault:"redis:6379"`
	JwtTTL                  time.Duration `env:"TOKEN_TTL" envDefault:"720h"`
	Secret                  string        `env:"SECRET,required"`
	GeocodingApiKey         string        `env:"GEOCODING_API_KEY" envDefault:""`
	GeocodingURL            string        `env:"GEOCODING_URL" envDefault:"https://maps.googleapis.com/maps/api"`
	GeocodeCacheTTL         time.Duration `env:"GEOCODE_CACHE_TTL" envDefault:"168h"`
	FirebaseCredentialsPath string        `env:"FIREBASE_CREDENTIALS_PATH" envDefault:""`
	ReminderSchedule        string        `env:"REMINDER_SCHEDULE" envDefault:"@every 1m"`
	ReminderLead            time.Duration `env:"REMINDER_LEAD" envDefault:"1h"`
	CalendarDomain          string        `env:"CALENDAR_DOMAIN" envDefault:"studyspot.app"`
}

var conf config

func init() {
	if err := env.Parse(&conf); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
}

func Production() bool {
	return conf.Production
}

func Port() string {
	return conf.Port
}

func PostgresURL() string {
	return conf.PostgresUrl
}

func RedisURL() string {
	return conf.RedisUrl
}

func JwtTTL() time.Duration {
	return conf.JwtTTL
}

func Secret() string {
	return conf.Secret
}

func GeocodingAPIKey() string {
	return conf.GeocodingApiKey
}

func GeocodingURL() string {
	return conf.GeocodingURL
}

func GeocodeCacheTTL() time.Duration {
	return conf.GeocodeCacheTTL
}

// FirebaseCredentialsPath is empty when push delivery is disabled.
func FirebaseCredentialsPath() string {
	return conf.FirebaseCredentialsPath
}

func ReminderSchedule() string {
	return conf.ReminderSchedule
}

func ReminderLead() time.Duration {
	return conf.ReminderLead
}

// CalendarDomain is the right-hand side of exported calendar UIDs.
func CalendarDomain() string {
	return conf.CalendarDomain
}
