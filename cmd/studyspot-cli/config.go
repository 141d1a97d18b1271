package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/SergeyKozhin/studyspot-backend/internal/discovery"
	"github.com/SergeyKozhin/studyspot-backend/internal/pkg/geo"
	"gopkg.in/yaml.v3"
)

const (
	geocoderBackend = "backend"
	geocoderGoogle  = "google"
	geocoderNone    = "none"
)

type backendConfig struct {
	URL     string        `yaml:"url"`
	Token   string        `yaml:"token"`
	UserID  int64         `yaml:"user_id"`
	Timeout time.Duration `yaml:"timeout"`
}

type geocoderConfig struct {
	// Mode is one of "backend", "google" or "none".
	Mode   string `yaml:"mode"`
	APIKey string `yaml:"api_key"`
	URL    string `yaml:"url"`
}

type originConfig struct {
	Lat float64 `yaml:"lat"`
	Lng float64 `yaml:"lng"`
}

type Config struct {
	Production     bool              `yaml:"production"`
	Backend        backendConfig     `yaml:"backend"`
	Geocoder       geocoderConfig    `yaml:"geocoder"`
	Origin         *originConfig     `yaml:"origin,omitempty"`
	Filters        discovery.Filters `yaml:"filters"`
	ReconcileDelay time.Duration     `yaml:"reconcile_delay"`
}

func DefaultConfig() *Config {
	return &Config{
		Backend: backendConfig{
			URL:     "http://localhost:80",
			Timeout: 10 * time.Second,
		},
		Geocoder: geocoderConfig{
			Mode: geocoderBackend,
			URL:  "https://maps.googleapis.com/maps/api",
		},
		ReconcileDelay: discovery.DefaultReconcileDelay,
	}
}

// Normalize fills zero values left by a partial config file.
func (c *Config) Normalize() error {
	def := DefaultConfig()

	if c.Backend.URL == "" {
		c.Backend.URL = def.Backend.URL
	}
	if c.Backend.Timeout <= 0 {
		c.Backend.Timeout = def.Backend.Timeout
	}
	if c.Geocoder.Mode == "" {
		c.Geocoder.Mode = def.Geocoder.Mode
	}
	if c.Geocoder.URL == "" {
		c.Geocoder.URL = def.Geocoder.URL
	}
	if c.ReconcileDelay <= 0 {
		c.ReconcileDelay = def.ReconcileDelay
	}

	switch c.Geocoder.Mode {
	case geocoderBackend, geocoderNone:
	case geocoderGoogle:
		if c.Geocoder.APIKey == "" {
			return errors.New("geocoder.api_key is required for google geocoder")
		}
	default:
		return fmt.Errorf("unknown geocoder mode %q", c.Geocoder.Mode)
	}

	unit, err := geo.ParseUnit(string(c.Filters.Unit))
	if err != nil {
		return fmt.Errorf("filters.unit: %w", err)
	}
	c.Filters.Unit = unit

	if c.Origin != nil && !c.origin().Valid() {
		return fmt.Errorf("origin %v,%v is out of range", c.Origin.Lat, c.Origin.Lng)
	}

	return nil
}

func (c *Config) origin() geo.Point {
	if c.Origin == nil {
		return geo.Point{}
	}
	return geo.Point{Lat: c.Origin.Lat, Lng: c.Origin.Lng}
}

// LoadConfig reads path, falling back to defaults when the file does not exist.
func LoadConfig(path string) (*Config, error) {
	conf := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, conf); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := conf.Normalize(); err != nil {
		return nil, err
	}

	return conf, nil
}
