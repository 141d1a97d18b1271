package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeServer struct {
	mu    sync.Mutex
	saved map[string]bool
}

func newFakeServer(t *testing.T) *httptest.Server {
	t.Helper()

	s := &fakeServer{saved: map[string]bool{}}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /events", func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, []map[string]interface{}{
			{"id": 1, "title": "Far", "location": "Midtown", "coordinates": map[string]float64{"lat": 40.7580, "lng": -73.9855}, "accepted_count": 1, "tags": []string{"quiet"}},
			{"id": 2, "title": "Near", "location": "Village", "coordinates": map[string]float64{"lat": 40.7306, "lng": -73.9866}, "accepted_count": 6, "tags": []string{"quiet"}},
			{"id": 3, "title": "Nowhere", "location": "", "accepted_count": 0, "tags": []string{"quiet"}},
			{"id": 4, "title": "Close", "location": "Bobst", "coordinates": map[string]float64{"lat": 40.7295, "lng": -73.9972}, "accepted_count": 2, "tags": []string{"quiet"}},
		})
	})
	mux.HandleFunc("GET /events/{id}/rsvpd", func(w http.ResponseWriter, r *http.Request) {
		counts := map[string]int{"1": 1, "2": 6, "3": 0, "4": 2}
		writeTestJSON(w, map[string]interface{}{"status": "none", "accepted_count": counts[r.PathValue("id")]})
	})
	mux.HandleFunc("/users/7/saved-events/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		s.mu.Lock()
		defer s.mu.Unlock()

		switch r.Method {
		case http.MethodPut:
			s.saved[id] = true
			w.WriteHeader(http.StatusNoContent)
		case http.MethodDelete:
			delete(s.saved, id)
			w.WriteHeader(http.StatusNoContent)
		default:
			writeTestJSON(w, map[string]interface{}{"saved": s.saved[id]})
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func writeTestJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func testConfig(t *testing.T, url string) *Config {
	t.Helper()

	conf := DefaultConfig()
	conf.Backend.URL = url
	conf.Backend.UserID = 7
	conf.Geocoder.Mode = geocoderNone
	conf.ReconcileDelay = 10 * time.Millisecond
	if err := conf.Normalize(); err != nil {
		t.Fatal(err)
	}

	return conf
}

func TestRunList(t *testing.T) {
	srv := newFakeServer(t)
	conf := testConfig(t, srv.URL)
	conf.Origin = &originConfig{Lat: 40.7295, Lng: -73.9965}
	attendees := 5
	conf.Filters.Attendees = &attendees

	var out bytes.Buffer
	if err := run(context.Background(), conf, zap.NewNop().Sugar(), []string{"list"}, &out); err != nil {
		t.Fatalf("run() error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), out.String())
	}

	want := []string{"Close", "Far", "Nowhere"}
	for i, title := range want {
		if !strings.Contains(lines[i+1], title) {
			t.Errorf("line %d = %q, want %s", i+1, lines[i+1], title)
		}
	}

	out.Reset()
	if err := run(context.Background(), conf, zap.NewNop().Sugar(), []string{"list", "-pins"}, &out); err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if strings.Contains(out.String(), "Nowhere") {
		t.Errorf("pins include event without coordinates:\n%s", out.String())
	}
}

func TestRunSave(t *testing.T) {
	srv := newFakeServer(t)
	conf := testConfig(t, srv.URL)

	var out bytes.Buffer
	if err := run(context.Background(), conf, zap.NewNop().Sugar(), []string{"save", "2"}, &out); err != nil {
		t.Fatalf("run() error: %v", err)
	}

	if !strings.Contains(out.String(), "confirmed:  #2 \"Near\" rsvped=false attendees=6 saved=true") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestRunErrors(t *testing.T) {
	srv := newFakeServer(t)
	conf := testConfig(t, srv.URL)

	tests := [][]string{
		nil,
		{"dance"},
		{"rsvp"},
		{"rsvp", "abc"},
		{"save", "99"},
	}

	for _, args := range tests {
		var out bytes.Buffer
		if err := run(context.Background(), conf, zap.NewNop().Sugar(), args, &out); err == nil {
			t.Errorf("run(%v) succeeded", args)
		}
	}
}
